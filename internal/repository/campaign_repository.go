package repository

import (
	"database/sql"
	"fmt"
	"time"

	appErrors "github.com/hypetribe/engagement-backend/internal/errors"
	"github.com/hypetribe/engagement-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	Create(c *model.Campaign) error
	GetByID(id int) (*model.Campaign, error)
	ListCampaigns(offset, limit int, status, pkg string) ([]*model.Campaign, int, error)
	UpdateStatus(campaignID int, status string) error
	AddEngagement(campaignID, delta int) error
}

type CampaignRepository struct {
	DB *sql.DB
}

const campaignColumns = `id, brand_name, description, target_audience, package, budget,
        duration_hours, estimated_participants, estimated_reach, status,
        total_engagement, created_at, updated_at`

func (r *CampaignRepository) Create(c *model.Campaign) error {
	c.CreatedAt = time.Now()
	if c.Status == "" {
		c.Status = "pending"
	}
	query := `
        INSERT INTO campaigns
        (brand_name, description, target_audience, package, budget, duration_hours,
         estimated_participants, estimated_reach, status, total_engagement, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, $10)
        RETURNING id
    `
	return r.DB.QueryRow(query,
		c.BrandName, c.Description, c.TargetAudience, c.Package, c.Budget, c.DurationHours,
		c.EstimatedParticipants, c.EstimatedReach, c.Status, c.CreatedAt,
	).Scan(&c.ID)
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id=$1`
	var c model.Campaign
	err := r.DB.QueryRow(query, id).Scan(
		&c.ID, &c.BrandName, &c.Description, &c.TargetAudience, &c.Package, &c.Budget,
		&c.DurationHours, &c.EstimatedParticipants, &c.EstimatedReach, &c.Status,
		&c.TotalEngagement, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) ListCampaigns(offset, limit int, status, pkg string) ([]*model.Campaign, int, error) {
	campaigns := []*model.Campaign{}
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}
	if pkg != "" {
		query += fmt.Sprintf(" AND package=$%d", argPos)
		args = append(args, pkg)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		c := &model.Campaign{}
		if err := rows.Scan(
			&c.ID, &c.BrandName, &c.Description, &c.TargetAudience, &c.Package, &c.Budget,
			&c.DurationHours, &c.EstimatedParticipants, &c.EstimatedReach, &c.Status,
			&c.TotalEngagement, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		campaigns = append(campaigns, c)
	}

	// Count total
	countQuery := `SELECT COUNT(*) FROM campaigns WHERE 1=1`
	argsCount := []interface{}{}
	argPosCount := 1
	if status != "" {
		countQuery += fmt.Sprintf(" AND status=$%d", argPosCount)
		argsCount = append(argsCount, status)
		argPosCount++
	}
	if pkg != "" {
		countQuery += fmt.Sprintf(" AND package=$%d", argPosCount)
		argsCount = append(argsCount, pkg)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

func (r *CampaignRepository) UpdateStatus(campaignID int, status string) error {
	query := `UPDATE campaigns SET status=$1, updated_at=$2 WHERE id=$3`
	_, err := r.DB.Exec(query, status, time.Now(), campaignID)
	return err
}

// AddEngagement rolls post-hoc engagement metrics into the campaign counter.
func (r *CampaignRepository) AddEngagement(campaignID, delta int) error {
	query := `UPDATE campaigns SET total_engagement = total_engagement + $1, updated_at=$2 WHERE id=$3`
	_, err := r.DB.Exec(query, delta, time.Now(), campaignID)
	return err
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
