// internal/engine/content.go
package engine

import (
	"math/rand"
	"strings"

	"github.com/hypetribe/engagement-backend/internal/model"
)

// ContentGenerator suggests post content for an assignment. It is a
// replaceable collaborator so a smarter generator can be swapped in without
// touching the engine.
type ContentGenerator interface {
	Suggest(role model.Role, c *model.Campaign) string
}

// StaticContentGenerator picks one of four stock phrases per role and fills
// in the brand name.
type StaticContentGenerator struct {
	Rand *rand.Rand
}

var roleTemplates = map[model.Role][]string{
	model.RoleInitiator: {
		"Just came across {brand} and honestly, impressed 👀",
		"Has anyone else tried {brand}? Curious what you think",
		"Okay, {brand} might actually be onto something here",
		"Giving {brand} a shot this week, first impressions soon",
	},
	model.RoleReplier: {
		"Been using it for a while now, totally worth it",
		"Same here, the quality genuinely surprised me",
		"Can confirm, had a great experience with them",
		"This! Their support actually responds, which is rare",
	},
	model.RoleRetweeter: {
		"Worth a share 🔁",
		"Signal boost, more people should see {brand}",
		"Passing this one along",
		"Sharing because this deserves more eyes",
	},
	model.RoleQuoter: {
		"Adding my two cents: {brand} delivers",
		"Quoting because this matches my own experience",
		"This thread says it all about {brand}",
		"My take: seriously underrated",
	},
}

func (g *StaticContentGenerator) Suggest(role model.Role, c *model.Campaign) string {
	templates := roleTemplates[role]
	if len(templates) == 0 {
		templates = roleTemplates[model.RoleReplier]
	}
	picked := templates[g.Rand.Intn(len(templates))]
	return RenderTemplate(picked, map[string]string{"brand": c.BrandName})
}

// RenderTemplate substitutes {key} placeholders in a template.
func RenderTemplate(template string, data map[string]string) string {
	result := template
	for k, v := range data {
		result = strings.ReplaceAll(result, "{"+k+"}", v)
	}
	return result
}
