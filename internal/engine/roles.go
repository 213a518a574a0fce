// internal/engine/roles.go
package engine

import (
	"math"

	"github.com/hypetribe/engagement-backend/internal/model"
)

// Target role proportions over the selected participants.
var roleShares = map[model.Role]float64{
	model.RoleInitiator: 0.20,
	model.RoleReplier:   0.40,
	model.RoleRetweeter: 0.25,
	model.RoleQuoter:    0.15,
}

// Participants above this authenticity score get first pick of the scarce
// initiator slots.
const initiatorAuthenticityMin = 80

// DistributeRoles assigns exactly one role to every selected participant.
// The returned slice is aligned with selected. High-authenticity completed
// profiles fill the initiator target first; everyone else draws from a
// shuffled slot list so role order carries no bias.
func (e *Engine) DistributeRoles(selected []model.Participant) []model.Role {
	t := len(selected)
	if t == 0 {
		return nil
	}

	targets := roleTargets(t)
	roles := make([]model.Role, t)
	taken := make([]bool, t)

	initiators := 0
	for i, p := range selected {
		if initiators >= targets[model.RoleInitiator] {
			break
		}
		if p.ProfileCompleted && p.AuthenticityScore > initiatorAuthenticityMin {
			roles[i] = model.RoleInitiator
			taken[i] = true
			initiators++
		}
	}

	// Remaining slots, including any initiator slots the authentic subset
	// could not fill, get shuffled before assignment.
	slots := make([]model.Role, 0, t)
	for i := initiators; i < targets[model.RoleInitiator]; i++ {
		slots = append(slots, model.RoleInitiator)
	}
	for _, role := range []model.Role{model.RoleReplier, model.RoleRetweeter, model.RoleQuoter} {
		for i := 0; i < targets[role]; i++ {
			slots = append(slots, role)
		}
	}
	e.Rand.Shuffle(len(slots), func(i, j int) {
		slots[i], slots[j] = slots[j], slots[i]
	})

	next := 0
	for i := range selected {
		if taken[i] {
			continue
		}
		if next < len(slots) {
			roles[i] = slots[next]
			next++
		} else {
			// Rounding left us short on slots; replier absorbs overflow.
			roles[i] = model.RoleReplier
		}
	}
	return roles
}

// roleTargets computes per-role counts for t participants: shares rounded
// up, then reconciled down when the sum overflows t. Replier gives up to
// half the excess first, retweeter the rest, neither below one.
func roleTargets(t int) map[model.Role]int {
	targets := make(map[model.Role]int, len(roleShares))
	sum := 0
	for role, share := range roleShares {
		targets[role] = int(math.Ceil(float64(t) * share))
		sum += targets[role]
	}

	excess := sum - t
	if excess > 0 {
		if trim := min(excess/2, targets[model.RoleReplier]-1); trim > 0 {
			targets[model.RoleReplier] -= trim
			excess -= trim
		}
		if trim := min(excess, targets[model.RoleRetweeter]-1); trim > 0 {
			targets[model.RoleRetweeter] -= trim
		}
	}
	return targets
}
