// internal/service/campaign_service.go
package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/hypetribe/engagement-backend/internal/errors"
	"github.com/hypetribe/engagement-backend/internal/model"
	"github.com/hypetribe/engagement-backend/internal/queue"
	"github.com/hypetribe/engagement-backend/internal/repository"
)

type CampaignService struct {
	CampaignRepo   repository.CampaignRepositoryInterface
	AssignmentRepo repository.AssignmentRepositoryInterface
	Queue          queue.Queue
}

type CreateCampaignInput struct {
	BrandName             string `json:"brand_name"`
	Description           string `json:"description"`
	TargetAudience        string `json:"target_audience"`
	Package               string `json:"package"`
	Budget                int64  `json:"budget"`
	DurationHours         int    `json:"duration_hours"`
	EstimatedParticipants int    `json:"estimated_participants"`
	EstimatedReach        int    `json:"estimated_reach"`
}

type CampaignDetails struct {
	ID                    int            `json:"id"`
	BrandName             string         `json:"brand_name"`
	Description           string         `json:"description"`
	TargetAudience        string         `json:"target_audience"`
	Package               string         `json:"package"`
	Budget                int64          `json:"budget"`
	DurationHours         int            `json:"duration_hours"`
	EstimatedParticipants int            `json:"estimated_participants"`
	EstimatedReach        int            `json:"estimated_reach"`
	Status                string         `json:"status"`
	TotalEngagement       int            `json:"total_engagement"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             *time.Time     `json:"updated_at"`
	ParticipantIDs        []int          `json:"participant_ids"`
	Stats                 map[string]int `json:"stats"`
}

// CreateCampaign validates the descriptor, persists the campaign as pending
// and enqueues the assignment job. The request does not wait for the batch.
func (s *CampaignService) CreateCampaign(in CreateCampaignInput) (*model.Campaign, error) {
	if strings.TrimSpace(in.BrandName) == "" {
		return nil, appErrors.NewInvalidCampaign("brand name is required")
	}
	if in.Budget <= 0 {
		return nil, appErrors.NewInvalidCampaign("budget must be positive")
	}
	if in.EstimatedParticipants < 1 {
		return nil, appErrors.NewInvalidCampaign("estimated participants must be at least 1")
	}
	if in.DurationHours <= 0 {
		return nil, appErrors.NewInvalidCampaign("duration must be positive")
	}

	c := &model.Campaign{
		BrandName:             in.BrandName,
		Description:           in.Description,
		TargetAudience:        in.TargetAudience,
		Package:               in.Package,
		Budget:                in.Budget,
		DurationHours:         in.DurationHours,
		EstimatedParticipants: in.EstimatedParticipants,
		EstimatedReach:        in.EstimatedReach,
		Status:                "pending",
	}

	if err := s.CampaignRepo.Create(c); err != nil {
		return nil, err
	}

	// Fire-and-forget: the queue retries on failure, and a manual /assign
	// re-trigger exists if the job is lost entirely.
	if s.Queue != nil {
		job := queue.AssignmentJob{JobID: uuid.NewString(), CampaignID: c.ID}
		if err := s.Queue.Publish(queue.TopicAssignments, job); err != nil {
			log.Println("⚠️ failed to enqueue assignment job for campaign", c.ID, ":", err)
		}
	}

	return c, nil
}

// ListCampaigns fetches campaigns with pagination
func (s *CampaignService) ListCampaigns(page, pageSize int, status, pkg string) ([]model.Campaign, map[string]int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	ptrs, total, err := s.CampaignRepo.ListCampaigns(offset, pageSize, status, pkg)
	if err != nil {
		return nil, nil, err
	}

	campaigns := make([]model.Campaign, len(ptrs))
	for i, c := range ptrs {
		campaigns[i] = *c
	}

	totalPages := (total + pageSize - 1) / pageSize
	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": totalPages,
	}

	return campaigns, pagination, nil
}

// GetCampaignDetails fetches a campaign by ID
func (s *CampaignService) GetCampaignDetails(id int) (*model.Campaign, error) {
	return s.CampaignRepo.GetByID(id)
}

func (s *CampaignService) GetCampaignDetailsWithStats(campaignID int) (*CampaignDetails, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}

	stats, err := s.AssignmentRepo.GetCampaignStats(campaignID)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, count := range stats {
		total += count
	}
	stats["total"] = total

	participantIDs, err := s.AssignmentRepo.ParticipantIDs(campaignID)
	if err != nil {
		return nil, err
	}

	return &CampaignDetails{
		ID:                    campaign.ID,
		BrandName:             campaign.BrandName,
		Description:           campaign.Description,
		TargetAudience:        campaign.TargetAudience,
		Package:               campaign.Package,
		Budget:                campaign.Budget,
		DurationHours:         campaign.DurationHours,
		EstimatedParticipants: campaign.EstimatedParticipants,
		EstimatedReach:        campaign.EstimatedReach,
		Status:                campaign.Status,
		TotalEngagement:       campaign.TotalEngagement,
		CreatedAt:             campaign.CreatedAt,
		UpdatedAt:             campaign.UpdatedAt,
		ParticipantIDs:        participantIDs,
		Stats:                 stats,
	}, nil
}

// RecordEngagement stores the collector's post-hoc metrics on an assignment
// and rolls their sum into the campaign counter.
func (s *CampaignService) RecordEngagement(assignmentID, likes, retweets, replies, impressions int) error {
	a, err := s.AssignmentRepo.GetByID(assignmentID)
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("assignment %d not found", assignmentID)
	}

	if err := s.AssignmentRepo.RecordEngagement(assignmentID, likes, retweets, replies, impressions); err != nil {
		return err
	}
	return s.CampaignRepo.AddEngagement(a.CampaignID, likes+retweets+replies)
}

// ListAssignments returns a campaign's batch in schedule order.
func (s *CampaignService) ListAssignments(campaignID int) ([]model.Assignment, error) {
	if _, err := s.CampaignRepo.GetByID(campaignID); err != nil {
		return nil, err
	}
	return s.AssignmentRepo.ListByCampaign(campaignID)
}
