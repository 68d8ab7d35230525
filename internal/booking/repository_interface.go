package booking

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) (*Booking, error)
	GetByID(ctx context.Context, id int) (*Booking, error)
	GetDetailsByID(ctx context.Context, id int) (*BookingWithDetails, error)
	GetActiveByTrainerAndDate(ctx context.Context, trainerID int, date time.Time) ([]Booking, error)
	GetUserBookings(ctx context.Context, clientID int) ([]BookingWithDetails, error)
	GetTrainerBookings(ctx context.Context, trainerID int, date *time.Time) ([]BookingWithDetails, error)
	CancelBooking(ctx context.Context, id int, feeCents, refundCents int64, cancelledAt time.Time) error
	UpdatePaymentStatus(ctx context.Context, id int, status string) error
	GetStatsByDay(ctx context.Context, from, to time.Time) ([]DayStat, error)
	GetStatsByTrainer(ctx context.Context, from, to time.Time) ([]TrainerStat, error)
}
