package trainer

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) UpsertProfile(ctx context.Context, userID int, name, bio string, hourlyRateCents int64) (*Trainer, error) {
	query := `
		INSERT INTO trainers (user_id, name, bio, hourly_rate_cents)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET name = EXCLUDED.name, bio = EXCLUDED.bio, hourly_rate_cents = EXCLUDED.hourly_rate_cents
		RETURNING id, user_id, name, bio, hourly_rate_cents, created_at
	`

	var t Trainer
	err := r.db.GetContext(ctx, &t, query, userID, name, bio, hourlyRateCents)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Trainer, error) {
	query := `
		SELECT id, user_id, name, bio, hourly_rate_cents, created_at
		FROM trainers
		WHERE id = $1
	`

	var t Trainer
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID int) (*Trainer, error) {
	query := `
		SELECT id, user_id, name, bio, hourly_rate_cents, created_at
		FROM trainers
		WHERE user_id = $1
	`

	var t Trainer
	err := r.db.GetContext(ctx, &t, query, userID)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *repository) ListTrainers(ctx context.Context) ([]Trainer, error) {
	query := `
		SELECT id, user_id, name, bio, hourly_rate_cents, created_at
		FROM trainers
		ORDER BY name ASC
	`

	var trainers []Trainer
	err := r.db.SelectContext(ctx, &trainers, query)
	if err != nil {
		return nil, err
	}

	return trainers, nil
}

// GetAvailability returns nil hours without error when the trainer has not
// configured a schedule yet.
func (r *repository) GetAvailability(ctx context.Context, trainerID int) (WeeklyHours, error) {
	query := `
		SELECT weekly_hours
		FROM trainer_availability
		WHERE trainer_id = $1
	`

	var raw []byte
	err := r.db.GetContext(ctx, &raw, query, trainerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var hours WeeklyHours
	if err := json.Unmarshal(raw, &hours); err != nil {
		return nil, err
	}

	return hours, nil
}

func (r *repository) UpsertAvailability(ctx context.Context, trainerID int, hours WeeklyHours) error {
	raw, err := json.Marshal(hours)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO trainer_availability (trainer_id, weekly_hours, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (trainer_id) DO UPDATE
		SET weekly_hours = EXCLUDED.weekly_hours, updated_at = NOW()
	`

	_, err = r.db.ExecContext(ctx, query, trainerID, raw)
	return err
}
