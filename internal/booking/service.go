package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"coachslot/internal/trainer"

	"github.com/lib/pq"
)

var (
	ErrValidation          = errors.New("invalid booking request")
	ErrSlotInPast          = errors.New("session start is in the past")
	ErrOutsideWorkingHours = errors.New("session start is outside the trainer's working hours")
	ErrSlotUnavailable     = errors.New("slot is already booked")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrForbidden           = errors.New("booking belongs to another user")
	ErrAlreadyCancelled    = errors.New("booking is already cancelled")
)

// CancellationWindow is the notice a client must give to cancel for free.
// Anything shorter incurs a fee of half the session price.
const CancellationWindow = 24 * time.Hour

type Service interface {
	Reserve(ctx context.Context, clientID, trainerID int, req ReserveRequest) (*Booking, error)
	Cancel(ctx context.Context, bookingID, clientID int) (*CancelResponse, error)
	IsSlotAvailable(ctx context.Context, trainerID int, date time.Time, startMin, durationMin int) (bool, error)
	GetUserBookings(ctx context.Context, clientID int) ([]BookingWithDetails, error)
	GetTrainerBookings(ctx context.Context, trainerID int, date *time.Time) ([]BookingWithDetails, error)
	GetBookingDetails(ctx context.Context, bookingID int) (*BookingWithDetails, error)
	MarkPaid(ctx context.Context, bookingID int) error
	MarkRefunded(ctx context.Context, bookingID int) error
	GetStatsByDay(ctx context.Context, from, to time.Time) ([]DayStat, error)
	GetStatsByTrainer(ctx context.Context, from, to time.Time) ([]TrainerStat, error)
}

type service struct {
	repo        Repository
	trainerRepo trainer.Repository
	now         func() time.Time
}

func NewService(repo Repository, trainerRepo trainer.Repository) Service {
	return &service{
		repo:        repo,
		trainerRepo: trainerRepo,
		now:         time.Now,
	}
}

// IsSlotAvailable checks the requested interval against the trainer's
// active bookings on that date. A storage error reports the slot as
// unavailable rather than risking a double booking.
func (s *service) IsSlotAvailable(ctx context.Context, trainerID int, date time.Time, startMin, durationMin int) (bool, error) {
	existing, err := s.repo.GetActiveByTrainerAndDate(ctx, trainerID, date)
	if err != nil {
		return false, err
	}

	return !conflictsWith(startMin, durationMin, existing), nil
}

func (s *service) Reserve(ctx context.Context, clientID, trainerID int, req ReserveRequest) (*Booking, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrValidation, req.Date)
	}

	startMin, err := trainer.ParseClock(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: bad start time %q", ErrValidation, req.StartTime)
	}

	durationMin := req.DurationMin
	if durationMin == 0 {
		durationMin = DefaultDurationMin
	}
	if durationMin < 0 {
		return nil, fmt.Errorf("%w: negative duration", ErrValidation)
	}

	t, err := s.trainerRepo.GetByID(ctx, trainerID)
	if err != nil {
		return nil, trainer.ErrTrainerNotFound
	}

	priceCents := req.PriceCents
	if priceCents == 0 {
		priceCents = t.HourlyRateCents * int64(durationMin) / 60
	}
	if priceCents < 0 {
		return nil, fmt.Errorf("%w: negative price", ErrValidation)
	}

	sessionStart := date.Add(time.Duration(startMin) * time.Minute)
	if sessionStart.Before(s.now()) {
		return nil, ErrSlotInPast
	}

	hours, err := s.trainerRepo.GetAvailability(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	if !withinWorkingHours(hours, date, startMin) {
		return nil, ErrOutsideWorkingHours
	}

	available, err := s.IsSlotAvailable(ctx, trainerID, date, startMin, durationMin)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrSlotUnavailable
	}

	created, err := s.repo.Create(ctx, &Booking{
		TrainerID:     trainerID,
		ClientID:      clientID,
		SessionDate:   date,
		StartMin:      startMin,
		DurationMin:   durationMin,
		PriceCents:    priceCents,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
	})
	if err != nil {
		// The exclusion constraint is the final arbiter: a concurrent
		// insert that slipped past the pre-check lands here.
		if isSlotConstraintErr(err) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}

	return created, nil
}

// Cancel applies the cancellation policy: with less than 24 hours of
// notice the client forfeits half the price, otherwise the full amount
// is refunded. Fee and refund always sum to the session price.
func (s *service) Cancel(ctx context.Context, bookingID, clientID int) (*CancelResponse, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if b.ClientID != clientID {
		return nil, ErrForbidden
	}

	if b.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	now := s.now()

	var feeCents int64
	if b.SessionStart().Sub(now) < CancellationWindow {
		feeCents = b.PriceCents / 2
	}
	refundCents := b.PriceCents - feeCents

	if err := s.repo.CancelBooking(ctx, bookingID, feeCents, refundCents, now); err != nil {
		return nil, err
	}

	b.Status = StatusCancelled
	b.CancellationFeeCents = &feeCents
	b.RefundCents = &refundCents
	b.CancelledAt = &now

	return &CancelResponse{
		Booking:              b,
		CancellationFeeCents: feeCents,
		RefundCents:          refundCents,
	}, nil
}

func (s *service) GetUserBookings(ctx context.Context, clientID int) ([]BookingWithDetails, error) {
	return s.repo.GetUserBookings(ctx, clientID)
}

func (s *service) GetTrainerBookings(ctx context.Context, trainerID int, date *time.Time) ([]BookingWithDetails, error) {
	return s.repo.GetTrainerBookings(ctx, trainerID, date)
}

func (s *service) GetBookingDetails(ctx context.Context, bookingID int) (*BookingWithDetails, error) {
	b, err := s.repo.GetDetailsByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *service) MarkPaid(ctx context.Context, bookingID int) error {
	return s.repo.UpdatePaymentStatus(ctx, bookingID, PaymentPaid)
}

func (s *service) MarkRefunded(ctx context.Context, bookingID int) error {
	return s.repo.UpdatePaymentStatus(ctx, bookingID, PaymentRefunded)
}

func (s *service) GetStatsByDay(ctx context.Context, from, to time.Time) ([]DayStat, error) {
	return s.repo.GetStatsByDay(ctx, from, to)
}

func (s *service) GetStatsByTrainer(ctx context.Context, from, to time.Time) ([]TrainerStat, error) {
	return s.repo.GetStatsByTrainer(ctx, from, to)
}

// isSlotConstraintErr matches the unique and exclusion constraint
// violations raised by the bookings overlap guard.
func isSlotConstraintErr(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" || pqErr.Code == "23P01"
	}
	return false
}
