// internal/engine/engine.go
package engine

import (
	"math/rand"
	"sort"
	"time"

	"github.com/hypetribe/engagement-backend/internal/model"
)

// Engine builds scheduled role assignments for a campaign out of a
// participant pool. All computation is pure given the injected clock and
// random source; persistence and notification belong to the caller.
type Engine struct {
	Now     func() time.Time
	Rand    *rand.Rand
	Content ContentGenerator
}

// New returns an engine with a wall clock, a seeded random source and the
// static content generator.
func New() *Engine {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Engine{
		Now:     time.Now,
		Rand:    r,
		Content: &StaticContentGenerator{Rand: r},
	}
}

// Draft is one scheduled role assignment produced for a campaign batch,
// before it is persisted as an Assignment.
type Draft struct {
	ParticipantID    int
	Role             model.Role
	ScheduledAt      time.Time
	EstimatedEarning int64
	Content          string
	IsProfileMatch   bool
}

// BuildAssignments runs the full pipeline: eligibility, scoring, selection,
// role distribution, scheduling and payout estimation. An empty result means
// no eligible participants; that is not an error and the caller should skip
// the batch.
func (e *Engine) BuildAssignments(c *model.Campaign, pool []model.Participant, cooldowns map[int]time.Time) []Draft {
	now := e.Now()

	eligible := Eligible(pool, cooldowns, now)
	if len(eligible) == 0 {
		return nil
	}

	target := min(len(eligible), c.EstimatedParticipants)
	selected := SelectTop(eligible, now, target)
	roles := e.DistributeRoles(selected)

	drafts := make([]Draft, 0, len(selected))
	for i, p := range selected {
		role := roles[i]
		drafts = append(drafts, Draft{
			ParticipantID:    p.ID,
			Role:             role,
			ScheduledAt:      e.ScheduleAt(role, now),
			EstimatedEarning: EstimateEarning(c, role),
			Content:          e.Content.Suggest(role, c),
			IsProfileMatch:   IsProfileMatch(p, c),
		})
	}
	return drafts
}

// Eligible filters the pool down to participants with a verified handle,
// an active account and no unexpired cooldown.
func Eligible(pool []model.Participant, cooldowns map[int]time.Time, now time.Time) []model.Participant {
	eligible := []model.Participant{}
	for _, p := range pool {
		if !p.Active || !p.HandleVerified {
			continue
		}
		if until, ok := cooldowns[p.ID]; ok && now.Before(until) {
			continue
		}
		eligible = append(eligible, p)
	}
	return eligible
}

const (
	defaultEngagementRate = 5.0
	recencyScoreCap       = 10.0
	engagementWeight      = 0.6
	recencyWeight         = 0.4
	completedProfileBonus = 1.0
)

// Score rates a participant for selection. Engagement rate dominates;
// recency since last participation keeps rotation fair; the profile bonus
// stays small so it can never outrank either.
func Score(p model.Participant, now time.Time) float64 {
	since := p.RegisteredAt
	if p.LastParticipationAt != nil {
		since = *p.LastParticipationAt
	}

	recency := now.Sub(since).Hours() / 24
	if recency > recencyScoreCap {
		recency = recencyScoreCap
	}
	if recency < 0 {
		recency = 0
	}

	rate := p.EngagementRate
	if rate <= 0 {
		rate = defaultEngagementRate
	}

	score := engagementWeight*rate + recencyWeight*recency
	if p.ProfileCompleted {
		score += completedProfileBonus
	}
	return score
}

// SelectTop ranks participants by descending score and keeps the first
// target entries. Ties keep pool order (stable sort). target <= 0 returns
// empty.
func SelectTop(pool []model.Participant, now time.Time, target int) []model.Participant {
	if target <= 0 {
		return []model.Participant{}
	}
	if target > len(pool) {
		target = len(pool)
	}

	ranked := make([]model.Participant, len(pool))
	copy(ranked, pool)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Score(ranked[i], now) > Score(ranked[j], now)
	})
	return ranked[:target]
}
