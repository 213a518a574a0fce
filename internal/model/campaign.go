// internal/model/campaign.go
package model

import "time"

type Campaign struct {
	ID                    int        `db:"id" json:"id"`
	BrandName             string     `db:"brand_name" json:"brand_name"`
	Description           string     `db:"description" json:"description"`
	TargetAudience        string     `db:"target_audience" json:"target_audience"`
	Package               string     `db:"package" json:"package"`
	Budget                int64      `db:"budget" json:"budget"`
	DurationHours         int        `db:"duration_hours" json:"duration_hours"`
	EstimatedParticipants int        `db:"estimated_participants" json:"estimated_participants"`
	EstimatedReach        int        `db:"estimated_reach" json:"estimated_reach"`
	Status                string     `db:"status" json:"status"` // pending, active, completed, cancelled
	TotalEngagement       int        `db:"total_engagement" json:"total_engagement"`
	CreatedAt             time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt             *time.Time `db:"updated_at" json:"updated_at,omitempty"`

	// ParticipantIDs is derived from the campaign's assignments, not a column.
	ParticipantIDs []int `db:"-" json:"participant_ids,omitempty"`
}
