// internal/engine/payout.go
package engine

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/hypetribe/engagement-backend/internal/model"
)

// Share of the campaign budget that funds base earnings. Profile bonuses
// are paid on top of this pool, so a batch with many matched profiles can
// exceed it; that gap is a business decision, not something we cap here.
const payoutPoolShare = "0.65"

// Role weights relative to the replier baseline of 200.
var roleWeights = map[model.Role]int64{
	model.RoleInitiator: 300,
	model.RoleReplier:   200,
	model.RoleRetweeter: 100,
	model.RoleQuoter:    250,
}

const baselineWeight = 200

// EstimateEarning computes the base earning for one assignment:
// budget * 0.65 / estimatedParticipants, weighted by role. The caller must
// have validated estimatedParticipants >= 1.
func EstimateEarning(c *model.Campaign, role model.Role) int64 {
	pool := decimal.NewFromInt(c.Budget).Mul(decimal.RequireFromString(payoutPoolShare))
	base := pool.Div(decimal.NewFromInt(int64(c.EstimatedParticipants)))
	weighted := base.Mul(decimal.NewFromInt(roleWeights[role])).Div(decimal.NewFromInt(baselineWeight))
	return weighted.Round(0).IntPart()
}

const (
	profileBonusRate   = "0.15"
	matchBonusRate     = "0.10"
	matchAuthenticity  = 80
	alwaysMatchScore   = 85
	minKeywordLen      = 3
)

// EarningWithBonuses applies the notification-time bonus layer on a base
// earning: +15% for a completed profile, a further +10% when the profile is
// both highly authentic and a match for the campaign. Bonuses stack on the
// base, they do not compound.
func EarningWithBonuses(p model.Participant, c *model.Campaign, base int64) int64 {
	if !p.ProfileCompleted {
		return base
	}
	b := decimal.NewFromInt(base)
	total := base + b.Mul(decimal.RequireFromString(profileBonusRate)).Round(0).IntPart()
	if p.AuthenticityScore > matchAuthenticity && IsProfileMatch(p, c) {
		total += b.Mul(decimal.RequireFromString(matchBonusRate)).Round(0).IntPart()
	}
	return total
}

// IsProfileMatch judges whether a participant's persona fits the campaign:
// keyword overlap between the target-audience text and the profile label,
// spending power aligned with the package tier, or an authenticity score
// above 85 unconditionally.
func IsProfileMatch(p model.Participant, c *model.Campaign) bool {
	if !p.ProfileCompleted {
		return false
	}
	if p.AuthenticityScore > alwaysMatchScore {
		return true
	}
	if keywordOverlap(c.TargetAudience, p.ProfileLabel) {
		return true
	}
	return spendingAligned(p.SpendingPower, c.Package)
}

func keywordOverlap(audience, label string) bool {
	labelWords := map[string]bool{}
	for _, w := range splitKeywords(label) {
		labelWords[w] = true
	}
	if len(labelWords) == 0 {
		return false
	}
	for _, w := range splitKeywords(audience) {
		if labelWords[w] {
			return true
		}
	}
	return false
}

func splitKeywords(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := fields[:0]
	for _, f := range fields {
		if len(f) >= minKeywordLen {
			words = append(words, f)
		}
	}
	return words
}

// Package tiers mapped to the spending power they are pitched at.
var packageSpending = map[string]string{
	"starter":    "low",
	"basic":      "low",
	"standard":   "medium",
	"growth":     "medium",
	"premium":    "high",
	"enterprise": "high",
}

func spendingAligned(spendingPower, pkg string) bool {
	want, ok := packageSpending[strings.ToLower(pkg)]
	return ok && want == strings.ToLower(spendingPower)
}
