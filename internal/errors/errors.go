// internal/errors/errors.go
package appErrors

import "fmt"

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
	CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id int) error {
	return &ErrCampaignNotFound{CampaignID: id}
}

// ErrParticipantNotFound is a sentinel error
type ErrParticipantNotFound struct {
	ParticipantID int
}

func (e *ErrParticipantNotFound) Error() string {
	return fmt.Sprintf("participant with ID %d not found", e.ParticipantID)
}

func NewParticipantNotFound(id int) error {
	return &ErrParticipantNotFound{ParticipantID: id}
}

// ErrInvalidCampaign rejects a campaign before the assignment engine can
// ever see bad numbers (zero budget, zero participants, missing brand).
type ErrInvalidCampaign struct {
	Reason string
}

func (e *ErrInvalidCampaign) Error() string {
	return fmt.Sprintf("invalid campaign: %s", e.Reason)
}

func NewInvalidCampaign(reason string) error {
	return &ErrInvalidCampaign{Reason: reason}
}
