// internal/engine/schedule.go
package engine

import (
	"time"

	"github.com/hypetribe/engagement-backend/internal/model"
)

// Per-role base stagger. Initiators post first so replies, retweets and
// quotes land on an existing conversation.
var roleBaseDelay = map[model.Role]time.Duration{
	model.RoleInitiator: 0,
	model.RoleReplier:   30 * time.Minute,
	model.RoleRetweeter: 60 * time.Minute,
	model.RoleQuoter:    90 * time.Minute,
}

const scheduleJitter = 60 * time.Minute

// ScheduleAt returns the absolute posting time for a role: batch time plus
// the role's base stagger plus uniform jitter in [0, 60) minutes. Never
// before now.
func (e *Engine) ScheduleAt(role model.Role, now time.Time) time.Time {
	jitter := time.Duration(e.Rand.Float64() * float64(scheduleJitter))
	return now.Add(roleBaseDelay[role] + jitter)
}
