package repository

import (
	"database/sql"
	"time"

	"github.com/hypetribe/engagement-backend/internal/model"
)

type AssignmentRepositoryInterface interface {
	Create(a *model.Assignment) error
	GetByID(id int) (*model.Assignment, error)
	ListByCampaign(campaignID int) ([]model.Assignment, error)
	UpdateStatus(id int, status string) error
	RecordEngagement(id, likes, retweets, replies, impressions int) error
	GetCampaignStats(campaignID int) (map[string]int, error)
	ParticipantIDs(campaignID int) ([]int, error)
}

type AssignmentRepository struct {
	DB *sql.DB
}

const assignmentColumns = `id, campaign_id, participant_id, role, scheduled_at, status,
        suggested_content, estimated_earning, actual_earning, is_profile_match,
        likes, retweets, replies, impressions, created_at, updated_at`

func (r *AssignmentRepository) Create(a *model.Assignment) error {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Status == "" {
		a.Status = "pending"
	}

	// One assignment per participant per campaign; conflicts keep the first.
	query := `
        INSERT INTO assignments
        (campaign_id, participant_id, role, scheduled_at, status, suggested_content,
         estimated_earning, actual_earning, is_profile_match, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        ON CONFLICT (campaign_id, participant_id) DO NOTHING
        RETURNING id
    `
	err := r.DB.QueryRow(query,
		a.CampaignID, a.ParticipantID, a.Role, a.ScheduledAt, a.Status, a.SuggestedContent,
		a.EstimatedEarning, a.ActualEarning, a.IsProfileMatch, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err == sql.ErrNoRows {
		// Already assigned on a previous delivery of the same job.
		existing, err := r.getByCampaignAndParticipant(a.CampaignID, a.ParticipantID)
		if err != nil {
			return err
		}
		*a = *existing
		return nil
	}
	return err
}

func (r *AssignmentRepository) getByCampaignAndParticipant(campaignID, participantID int) (*model.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE campaign_id=$1 AND participant_id=$2`
	return r.scanOne(r.DB.QueryRow(query, campaignID, participantID))
}

func (r *AssignmentRepository) GetByID(id int) (*model.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id=$1`
	a, err := r.scanOne(r.DB.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

func (r *AssignmentRepository) scanOne(row *sql.Row) (*model.Assignment, error) {
	var a model.Assignment
	err := row.Scan(
		&a.ID, &a.CampaignID, &a.ParticipantID, &a.Role, &a.ScheduledAt, &a.Status,
		&a.SuggestedContent, &a.EstimatedEarning, &a.ActualEarning, &a.IsProfileMatch,
		&a.Likes, &a.Retweets, &a.Replies, &a.Impressions, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepository) ListByCampaign(campaignID int) ([]model.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE campaign_id=$1 ORDER BY scheduled_at`
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := []model.Assignment{}
	for rows.Next() {
		var a model.Assignment
		if err := rows.Scan(
			&a.ID, &a.CampaignID, &a.ParticipantID, &a.Role, &a.ScheduledAt, &a.Status,
			&a.SuggestedContent, &a.EstimatedEarning, &a.ActualEarning, &a.IsProfileMatch,
			&a.Likes, &a.Retweets, &a.Replies, &a.Impressions, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *AssignmentRepository) UpdateStatus(id int, status string) error {
	query := `UPDATE assignments SET status=$1, updated_at=$2 WHERE id=$3`
	_, err := r.DB.Exec(query, status, time.Now(), id)
	return err
}

// RecordEngagement stores collector metrics and marks the assignment completed.
func (r *AssignmentRepository) RecordEngagement(id, likes, retweets, replies, impressions int) error {
	query := `
        UPDATE assignments
        SET likes=$1, retweets=$2, replies=$3, impressions=$4, status='completed', updated_at=$5
        WHERE id=$6
    `
	_, err := r.DB.Exec(query, likes, retweets, replies, impressions, time.Now(), id)
	return err
}

func (r *AssignmentRepository) GetCampaignStats(campaignID int) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM assignments WHERE campaign_id=$1 GROUP BY status`
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{"pending": 0, "executed": 0, "completed": 0, "failed": 0, "skipped": 0}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

func (r *AssignmentRepository) ParticipantIDs(campaignID int) ([]int, error) {
	rows, err := r.DB.Query(`SELECT participant_id FROM assignments WHERE campaign_id=$1 ORDER BY id`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

var _ AssignmentRepositoryInterface = (*AssignmentRepository)(nil)
