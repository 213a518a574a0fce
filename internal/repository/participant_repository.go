package repository

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	appErrors "github.com/hypetribe/engagement-backend/internal/errors"
	"github.com/hypetribe/engagement-backend/internal/model"
)

// ParticipantRepositoryInterface defines methods used by services
type ParticipantRepositoryInterface interface {
	Create(p *model.Participant) error
	GetByID(id int) (*model.Participant, error)
	ListActive() ([]model.Participant, error)
	SetHandleVerified(id int) error
	CompleteProfile(id int, label, spendingPower string, authenticityScore int, recommendedTypes []string) error
	TouchParticipation(id int, at time.Time) error
	Deactivate(id int) error
}

// ParticipantRepository is the concrete implementation
type ParticipantRepository struct {
	DB *sql.DB
}

const participantColumns = `id, telegram_chat_id, handle, handle_verified, active, engagement_rate,
        last_participation_at, registered_at, profile_completed, profile_label,
        spending_power, authenticity_score, recommended_types`

func (r *ParticipantRepository) Create(p *model.Participant) error {
	p.RegisteredAt = time.Now()
	if p.EngagementRate <= 0 {
		p.EngagementRate = 5
	}
	p.Active = true

	query := `
        INSERT INTO participants
        (telegram_chat_id, handle, handle_verified, active, engagement_rate, registered_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	return r.DB.QueryRow(query, p.TelegramChatID, p.Handle, p.HandleVerified, p.Active, p.EngagementRate, p.RegisteredAt).Scan(&p.ID)
}

func (r *ParticipantRepository) GetByID(id int) (*model.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE id=$1`
	var p model.Participant
	err := r.DB.QueryRow(query, id).Scan(
		&p.ID, &p.TelegramChatID, &p.Handle, &p.HandleVerified, &p.Active, &p.EngagementRate,
		&p.LastParticipationAt, &p.RegisteredAt, &p.ProfileCompleted, &p.ProfileLabel,
		&p.SpendingPower, &p.AuthenticityScore, &p.RecommendedTypes,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewParticipantNotFound(id)
		}
		return nil, err
	}
	return &p, nil
}

// ListActive fetches every active participant. The engine filters further
// (verified handle, cooldown); deactivated accounts never leave the DB.
func (r *ParticipantRepository) ListActive() ([]model.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE active = TRUE`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := []model.Participant{}
	for rows.Next() {
		var p model.Participant
		if err := rows.Scan(
			&p.ID, &p.TelegramChatID, &p.Handle, &p.HandleVerified, &p.Active, &p.EngagementRate,
			&p.LastParticipationAt, &p.RegisteredAt, &p.ProfileCompleted, &p.ProfileLabel,
			&p.SpendingPower, &p.AuthenticityScore, &p.RecommendedTypes,
		); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (r *ParticipantRepository) SetHandleVerified(id int) error {
	query := `UPDATE participants SET handle_verified = TRUE WHERE id=$1`
	_, err := r.DB.Exec(query, id)
	return err
}

func (r *ParticipantRepository) CompleteProfile(id int, label, spendingPower string, authenticityScore int, recommendedTypes []string) error {
	query := `
        UPDATE participants
        SET profile_completed = TRUE, profile_label=$1, spending_power=$2,
            authenticity_score=$3, recommended_types=$4
        WHERE id=$5
    `
	_, err := r.DB.Exec(query, label, spendingPower, authenticityScore, pq.Array(recommendedTypes), id)
	return err
}

func (r *ParticipantRepository) TouchParticipation(id int, at time.Time) error {
	query := `UPDATE participants SET last_participation_at=$1 WHERE id=$2`
	_, err := r.DB.Exec(query, at, id)
	return err
}

func (r *ParticipantRepository) Deactivate(id int) error {
	query := `UPDATE participants SET active = FALSE WHERE id=$1`
	_, err := r.DB.Exec(query, id)
	return err
}

var _ ParticipantRepositoryInterface = (*ParticipantRepository)(nil)
