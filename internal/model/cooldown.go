// internal/model/cooldown.go
package model

import "time"

// Cooldown blocks a participant from new assignments until Until passes.
// Records are overwritten per batch and expire passively.
type Cooldown struct {
	ParticipantID int       `db:"participant_id" json:"participant_id"`
	Until         time.Time `db:"until" json:"until"`
	DurationHours float64   `db:"duration_hours" json:"duration_hours"`
}

// Expired reports whether the cooldown no longer blocks the participant.
func (c Cooldown) Expired(now time.Time) bool {
	return !now.Before(c.Until)
}
