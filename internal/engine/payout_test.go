package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hypetribe/engagement-backend/internal/model"
)

func benchmarkCampaign() *model.Campaign {
	return &model.Campaign{
		BrandName:             "Safilink",
		TargetAudience:        "tech savvy young professionals",
		Package:               "premium",
		Budget:                225000,
		EstimatedParticipants: 40,
	}
}

func TestEstimateEarningBenchmarkScenario(t *testing.T) {
	c := benchmarkCampaign()

	// 225000 * 0.65 / 40 = 3656.25 per participant at replier weight.
	assert.Equal(t, int64(3656), EstimateEarning(c, model.RoleReplier))
	assert.Equal(t, int64(5484), EstimateEarning(c, model.RoleInitiator))
	assert.Equal(t, int64(1828), EstimateEarning(c, model.RoleRetweeter))
	assert.Equal(t, int64(4570), EstimateEarning(c, model.RoleQuoter))
}

func TestEstimateEarningIsPure(t *testing.T) {
	c := benchmarkCampaign()
	for _, role := range model.Roles {
		first := EstimateEarning(c, role)
		assert.Equal(t, first, EstimateEarning(c, role))
	}
}

func TestEarningWithBonusesStacksAdditively(t *testing.T) {
	c := benchmarkCampaign()

	noProfile := model.Participant{}
	assert.Equal(t, int64(1000), EarningWithBonuses(noProfile, c, 1000))

	profiled := model.Participant{ProfileCompleted: true, ProfileLabel: "gamer", AuthenticityScore: 50}
	assert.Equal(t, int64(1150), EarningWithBonuses(profiled, c, 1000))

	// Authentic and matched: +15% and +10% on the base, not compounding.
	matched := model.Participant{ProfileCompleted: true, ProfileLabel: "tech reviewer", AuthenticityScore: 84}
	assert.Equal(t, int64(1250), EarningWithBonuses(matched, c, 1000))
}

func TestIsProfileMatchKeywordOverlap(t *testing.T) {
	c := benchmarkCampaign()

	p := model.Participant{ProfileCompleted: true, ProfileLabel: "tech early adopter", AuthenticityScore: 40}
	assert.True(t, IsProfileMatch(p, c))

	p.ProfileLabel = "foodie"
	assert.False(t, IsProfileMatch(p, c))
}

func TestIsProfileMatchSpendingAlignment(t *testing.T) {
	c := benchmarkCampaign() // premium package

	p := model.Participant{ProfileCompleted: true, ProfileLabel: "foodie", SpendingPower: "high", AuthenticityScore: 40}
	assert.True(t, IsProfileMatch(p, c))

	p.SpendingPower = "low"
	assert.False(t, IsProfileMatch(p, c))
}

func TestIsProfileMatchHighAuthenticityAlwaysMatches(t *testing.T) {
	c := benchmarkCampaign()
	p := model.Participant{ProfileCompleted: true, ProfileLabel: "foodie", SpendingPower: "low", AuthenticityScore: 90}
	assert.True(t, IsProfileMatch(p, c))
}

func TestIsProfileMatchRequiresCompletedProfile(t *testing.T) {
	c := benchmarkCampaign()
	p := model.Participant{ProfileCompleted: false, AuthenticityScore: 99}
	assert.False(t, IsProfileMatch(p, c))
}
