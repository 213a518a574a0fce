package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCooldownScalesWithPoolSize(t *testing.T) {
	// Reference pool of 50 gives the 24h base.
	cd := CooldownFor(1, 50, testNow)
	assert.InDelta(t, 24, cd.DurationHours, 1e-9)
	assert.Equal(t, testNow.Add(24*time.Hour), cd.Until)
}

func TestCooldownClampedAtExtremes(t *testing.T) {
	tiny := CooldownFor(1, 1, testNow)
	assert.InDelta(t, 12, tiny.DurationHours, 1e-9)

	huge := CooldownFor(1, 10000, testNow)
	assert.InDelta(t, 48, huge.DurationHours, 1e-9)

	for _, size := range []int{0, 1, 5, 50, 200, 10000} {
		cd := CooldownFor(1, size, testNow)
		assert.GreaterOrEqual(t, cd.DurationHours, 12.0, "pool size %d", size)
		assert.LessOrEqual(t, cd.DurationHours, 72.0, "pool size %d", size)
	}
}

func TestCooldownUntilMatchesDuration(t *testing.T) {
	cd := CooldownFor(7, 40, testNow)
	assert.Equal(t, 7, cd.ParticipantID)
	assert.InDelta(t, cd.DurationHours, cd.Until.Sub(testNow).Hours(), 1e-6)
	assert.False(t, cd.Expired(testNow))
	assert.True(t, cd.Expired(cd.Until))
}
