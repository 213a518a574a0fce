// internal/service/participant_service.go
package service

import (
	"fmt"
	"strings"

	"github.com/hypetribe/engagement-backend/internal/model"
	"github.com/hypetribe/engagement-backend/internal/onboarding"
	"github.com/hypetribe/engagement-backend/internal/repository"
)

type ParticipantService struct {
	ParticipantRepo repository.ParticipantRepositoryInterface
	Verifier        onboarding.Verifier
}

// Register creates a new active, unverified participant with the baseline
// engagement rate.
func (s *ParticipantService) Register(telegramChatID int64, handle string) (*model.Participant, error) {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if handle == "" {
		return nil, fmt.Errorf("handle is required")
	}

	p := &model.Participant{
		TelegramChatID: telegramChatID,
		Handle:         handle,
		EngagementRate: 5,
	}
	if err := s.ParticipantRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// VerifyHandle checks the participant's bio for the verification code and
// flips the verified flag when it is found.
func (s *ParticipantService) VerifyHandle(id int, code string) (bool, error) {
	p, err := s.ParticipantRepo.GetByID(id)
	if err != nil {
		return false, err
	}

	ok, err := s.Verifier.BioContainsCode(p.Handle, code)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if err := s.ParticipantRepo.SetHandleVerified(id); err != nil {
		return false, err
	}
	return true, nil
}

// CompleteProfile stores the self-reported persona used for bonus matching.
func (s *ParticipantService) CompleteProfile(id int, label, spendingPower string, authenticityScore int, recommendedTypes []string) error {
	if authenticityScore < 0 || authenticityScore > 100 {
		return fmt.Errorf("authenticity score must be between 0 and 100")
	}
	if _, err := s.ParticipantRepo.GetByID(id); err != nil {
		return err
	}
	return s.ParticipantRepo.CompleteProfile(id, label, spendingPower, authenticityScore, recommendedTypes)
}

// Deactivate takes a participant out of rotation. Rows are never deleted.
func (s *ParticipantService) Deactivate(id int) error {
	if _, err := s.ParticipantRepo.GetByID(id); err != nil {
		return err
	}
	return s.ParticipantRepo.Deactivate(id)
}
