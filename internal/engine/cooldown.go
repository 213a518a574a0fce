// internal/engine/cooldown.go
package engine

import (
	"math"
	"time"

	"github.com/hypetribe/engagement-backend/internal/model"
)

const (
	cooldownBaseHours    = 24.0
	cooldownMinHours     = 12.0
	cooldownMaxHours     = 72.0
	cooldownReferencePool = 50.0
	cooldownMaxMultiplier = 2.0
)

// CooldownFor computes the rest window for one assigned participant. Bigger
// batches earn longer cooldowns, clamped to [12, 72] hours.
func CooldownFor(participantID, poolSize int, now time.Time) model.Cooldown {
	mult := math.Min(cooldownMaxMultiplier, float64(poolSize)/cooldownReferencePool)
	hours := cooldownBaseHours * mult
	if hours < cooldownMinHours {
		hours = cooldownMinHours
	}
	if hours > cooldownMaxHours {
		hours = cooldownMaxHours
	}
	return model.Cooldown{
		ParticipantID: participantID,
		Until:         now.Add(time.Duration(hours * float64(time.Hour))),
		DurationHours: hours,
	}
}
