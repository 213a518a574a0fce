// internal/model/participant.go
package model

import (
	"time"

	"github.com/lib/pq"
)

// Participant is a registered individual who can be assigned engagement
// roles on campaigns. Participants are deactivated, never deleted.
type Participant struct {
	ID                  int            `db:"id" json:"id"`
	TelegramChatID      int64          `db:"telegram_chat_id" json:"telegram_chat_id"`
	Handle              string         `db:"handle" json:"handle"`
	HandleVerified      bool           `db:"handle_verified" json:"handle_verified"`
	Active              bool           `db:"active" json:"active"`
	EngagementRate      float64        `db:"engagement_rate" json:"engagement_rate"`
	LastParticipationAt *time.Time     `db:"last_participation_at" json:"last_participation_at,omitempty"`
	RegisteredAt        time.Time      `db:"registered_at" json:"registered_at"`
	ProfileCompleted    bool           `db:"profile_completed" json:"profile_completed"`
	ProfileLabel        string         `db:"profile_label" json:"profile_label,omitempty"`
	SpendingPower       string         `db:"spending_power" json:"spending_power,omitempty"`
	AuthenticityScore   int            `db:"authenticity_score" json:"authenticity_score"`
	RecommendedTypes    pq.StringArray `db:"recommended_types" json:"recommended_types,omitempty"`
}
