package trainer

import (
	"context"
	"errors"
)

var ErrTrainerNotFound = errors.New("trainer not found")

type Service interface {
	UpsertProfile(ctx context.Context, userID int, req UpsertProfileRequest) (*Trainer, error)
	GetTrainer(ctx context.Context, id int) (*TrainerWithAvailability, error)
	ListTrainers(ctx context.Context) ([]Trainer, error)
	GetAvailability(ctx context.Context, trainerID int) (WeeklyHours, error)
	SetAvailability(ctx context.Context, userID int, hours WeeklyHours) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) UpsertProfile(ctx context.Context, userID int, req UpsertProfileRequest) (*Trainer, error) {
	return s.repo.UpsertProfile(ctx, userID, req.Name, req.Bio, req.HourlyRateCents)
}

func (s *service) GetTrainer(ctx context.Context, id int) (*TrainerWithAvailability, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrTrainerNotFound
	}

	hours, err := s.repo.GetAvailability(ctx, id)
	if err != nil {
		return nil, err
	}

	return &TrainerWithAvailability{Trainer: *t, WeeklyHours: hours}, nil
}

func (s *service) ListTrainers(ctx context.Context) ([]Trainer, error) {
	return s.repo.ListTrainers(ctx)
}

func (s *service) GetAvailability(ctx context.Context, trainerID int) (WeeklyHours, error) {
	if _, err := s.repo.GetByID(ctx, trainerID); err != nil {
		return nil, ErrTrainerNotFound
	}
	return s.repo.GetAvailability(ctx, trainerID)
}

// SetAvailability replaces the weekly schedule of the trainer owned by userID.
func (s *service) SetAvailability(ctx context.Context, userID int, hours WeeklyHours) error {
	t, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return ErrTrainerNotFound
	}

	if err := hours.Validate(); err != nil {
		return err
	}

	return s.repo.UpsertAvailability(ctx, t.ID, hours)
}
