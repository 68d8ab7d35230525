package trainer

import "time"

type Trainer struct {
	ID              int       `db:"id" json:"id"`
	UserID          int       `db:"user_id" json:"user_id"`
	Name            string    `db:"name" json:"name"`
	Bio             string    `db:"bio" json:"bio"`
	HourlyRateCents int64     `db:"hourly_rate_cents" json:"hourly_rate_cents"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

type TrainerWithAvailability struct {
	Trainer
	WeeklyHours WeeklyHours `json:"weekly_hours,omitempty"`
}

type UpsertProfileRequest struct {
	Name            string `json:"name" binding:"required"`
	Bio             string `json:"bio"`
	HourlyRateCents int64  `json:"hourly_rate_cents" binding:"required,min=1"`
}
