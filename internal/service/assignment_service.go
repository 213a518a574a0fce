// internal/service/assignment_service.go
package service

import (
	"fmt"
	"log"
	"time"

	"github.com/hypetribe/engagement-backend/internal/engine"
	appErrors "github.com/hypetribe/engagement-backend/internal/errors"
	"github.com/hypetribe/engagement-backend/internal/model"
	"github.com/hypetribe/engagement-backend/internal/notify"
	"github.com/hypetribe/engagement-backend/internal/repository"
)

// AssignmentService runs one campaign's assignment batch: eligibility,
// selection, roles, scheduling and payouts come from the engine; this
// service does the persistence and the notification fan-out around it.
type AssignmentService struct {
	CampaignRepo    repository.CampaignRepositoryInterface
	ParticipantRepo repository.ParticipantRepositoryInterface
	AssignmentRepo  repository.AssignmentRepositoryInterface
	CooldownRepo    repository.CooldownRepositoryInterface
	Engine          *engine.Engine
	Notifier        notify.Notifier
	NotifyDelay     time.Duration
}

// Result struct for BuildAssignments
type BuildResult struct {
	CampaignID    int
	Assigned      int
	AssignmentIDs []int
}

// BuildAssignments creates the scheduled assignment batch for a pending
// campaign. Redelivered jobs are no-ops once the campaign left pending.
// An empty eligible pool is not an error: the batch is skipped and the
// campaign stays pending.
func (s *AssignmentService) BuildAssignments(campaignID int) (*BuildResult, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}

	result := &BuildResult{CampaignID: campaignID, AssignmentIDs: []int{}}

	if campaign.Status != "pending" {
		log.Println("campaign", campaignID, "already processed, status:", campaign.Status)
		return result, nil
	}
	if campaign.Budget <= 0 {
		return nil, appErrors.NewInvalidCampaign("budget must be positive")
	}
	if campaign.EstimatedParticipants < 1 {
		return nil, appErrors.NewInvalidCampaign("estimated participants must be at least 1")
	}

	pool, err := s.ParticipantRepo.ListActive()
	if err != nil {
		return nil, err
	}

	now := s.Engine.Now()
	cooldowns, err := s.CooldownRepo.ActiveUntil(now)
	if err != nil {
		return nil, err
	}

	drafts := s.Engine.BuildAssignments(campaign, pool, cooldowns)
	if len(drafts) == 0 {
		log.Println("no eligible participants for campaign", campaignID, "- skipping batch")
		return result, nil
	}

	byID := make(map[int]model.Participant, len(pool))
	for _, p := range pool {
		byID[p.ID] = p
	}

	created := []model.Assignment{}
	for _, d := range drafts {
		a := &model.Assignment{
			CampaignID:       campaignID,
			ParticipantID:    d.ParticipantID,
			Role:             d.Role,
			ScheduledAt:      d.ScheduledAt,
			Status:           "pending",
			SuggestedContent: d.Content,
			EstimatedEarning: d.EstimatedEarning,
			IsProfileMatch:   d.IsProfileMatch,
		}
		if err := s.AssignmentRepo.Create(a); err != nil {
			log.Println("⚠️ failed to create assignment for participant", d.ParticipantID, ":", err)
			continue
		}
		created = append(created, *a)
		result.AssignmentIDs = append(result.AssignmentIDs, a.ID)
	}
	result.Assigned = len(created)

	if err := s.CampaignRepo.UpdateStatus(campaignID, "active"); err != nil {
		return result, err
	}

	// Cooldowns scale with the size of the assigned batch.
	for _, a := range created {
		cd := engine.CooldownFor(a.ParticipantID, len(created), now)
		if err := s.CooldownRepo.Upsert(cd); err != nil {
			log.Println("⚠️ failed to upsert cooldown for participant", a.ParticipantID, ":", err)
		}
		if err := s.ParticipantRepo.TouchParticipation(a.ParticipantID, now); err != nil {
			log.Println("⚠️ failed to touch participation for participant", a.ParticipantID, ":", err)
		}
	}

	s.notifyAll(campaign, created, byID)

	log.Println("✅ Assigned", result.Assigned, "participants to campaign", campaignID)
	return result, nil
}

// notifyAll fans out sequentially with a fixed delay between messages to
// respect the chat transport's rate limit. Failures are logged only.
func (s *AssignmentService) notifyAll(campaign *model.Campaign, assignments []model.Assignment, byID map[int]model.Participant) {
	if s.Notifier == nil {
		return
	}
	for i, a := range assignments {
		p, ok := byID[a.ParticipantID]
		if !ok {
			continue
		}
		// The bonus layer is applied at notification time, on top of the
		// base earning the batch was scheduled with.
		total := engine.EarningWithBonuses(p, campaign, a.EstimatedEarning)
		msg := fmt.Sprintf(
			"New %s assignment for %s! Post around %s. Suggested: %q. Estimated earning: %d",
			a.Role, campaign.BrandName, a.ScheduledAt.Format(time.RFC1123), a.SuggestedContent, total,
		)
		if err := s.Notifier.Notify(p, msg); err != nil {
			log.Println("⚠️ failed to notify participant", p.ID, ":", err)
		}
		if i < len(assignments)-1 && s.NotifyDelay > 0 {
			time.Sleep(s.NotifyDelay)
		}
	}
}
