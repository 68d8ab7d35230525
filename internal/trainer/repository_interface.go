package trainer

import "context"

type Repository interface {
	UpsertProfile(ctx context.Context, userID int, name, bio string, hourlyRateCents int64) (*Trainer, error)
	GetByID(ctx context.Context, id int) (*Trainer, error)
	GetByUserID(ctx context.Context, userID int) (*Trainer, error)
	ListTrainers(ctx context.Context) ([]Trainer, error)
	GetAvailability(ctx context.Context, trainerID int) (WeeklyHours, error)
	UpsertAvailability(ctx context.Context, trainerID int, hours WeeklyHours) error
}
