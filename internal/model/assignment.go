// internal/model/assignment.go
package model

import "time"

// Role is the kind of engagement action a participant is asked to perform.
type Role string

const (
	RoleInitiator Role = "initiator"
	RoleReplier   Role = "replier"
	RoleRetweeter Role = "retweeter"
	RoleQuoter    Role = "quoter"
)

// Roles lists every role in conversation order (initiators post first).
var Roles = []Role{RoleInitiator, RoleReplier, RoleRetweeter, RoleQuoter}

type Assignment struct {
	ID               int       `db:"id" json:"id"`
	CampaignID       int       `db:"campaign_id" json:"campaign_id"`
	ParticipantID    int       `db:"participant_id" json:"participant_id"`
	Role             Role      `db:"role" json:"role"`
	ScheduledAt      time.Time `db:"scheduled_at" json:"scheduled_at"`
	Status           string    `db:"status" json:"status"` // pending, executed, completed, failed, skipped
	SuggestedContent string    `db:"suggested_content" json:"suggested_content"`
	EstimatedEarning int64     `db:"estimated_earning" json:"estimated_earning"`
	ActualEarning    int64     `db:"actual_earning" json:"actual_earning"`
	IsProfileMatch   bool      `db:"is_profile_match" json:"is_profile_match"`
	Likes            int       `db:"likes" json:"likes"`
	Retweets         int       `db:"retweets" json:"retweets"`
	Replies          int       `db:"replies" json:"replies"`
	Impressions      int       `db:"impressions" json:"impressions"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
