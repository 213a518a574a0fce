package repository

import (
	"database/sql"
	"time"

	"github.com/hypetribe/engagement-backend/internal/model"
)

type CooldownRepositoryInterface interface {
	Upsert(c model.Cooldown) error
	GetByParticipant(participantID int) (*model.Cooldown, error)
	ActiveUntil(now time.Time) (map[int]time.Time, error)
}

type CooldownRepository struct {
	DB *sql.DB
}

// Upsert is last-write-wins: a new batch replaces any prior cooldown.
func (r *CooldownRepository) Upsert(c model.Cooldown) error {
	query := `
        INSERT INTO cooldowns (participant_id, until, duration_hours)
        VALUES ($1, $2, $3)
        ON CONFLICT (participant_id) DO UPDATE SET until=EXCLUDED.until, duration_hours=EXCLUDED.duration_hours
    `
	_, err := r.DB.Exec(query, c.ParticipantID, c.Until, c.DurationHours)
	return err
}

func (r *CooldownRepository) GetByParticipant(participantID int) (*model.Cooldown, error) {
	query := `SELECT participant_id, until, duration_hours FROM cooldowns WHERE participant_id=$1`
	var c model.Cooldown
	err := r.DB.QueryRow(query, participantID).Scan(&c.ParticipantID, &c.Until, &c.DurationHours)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// ActiveUntil returns unexpired cooldowns keyed by participant. Expired rows
// stay in the table; they just stop mattering.
func (r *CooldownRepository) ActiveUntil(now time.Time) (map[int]time.Time, error) {
	rows, err := r.DB.Query(`SELECT participant_id, until FROM cooldowns WHERE until > $1`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	active := map[int]time.Time{}
	for rows.Next() {
		var id int
		var until time.Time
		if err := rows.Scan(&id, &until); err != nil {
			return nil, err
		}
		active[id] = until
	}
	return active, rows.Err()
}

var _ CooldownRepositoryInterface = (*CooldownRepository)(nil)
