package booking

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"

	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"

	DefaultDurationMin = 60
)

type Booking struct {
	ID                   int        `db:"id" json:"id"`
	TrainerID            int        `db:"trainer_id" json:"trainer_id"`
	ClientID             int        `db:"client_id" json:"client_id"`
	SessionDate          time.Time  `db:"session_date" json:"session_date"`
	StartMin             int        `db:"start_min" json:"start_min"`
	DurationMin          int        `db:"duration_min" json:"duration_min"`
	PriceCents           int64      `db:"price_cents" json:"price_cents"`
	Status               string     `db:"status" json:"status"`
	PaymentStatus        string     `db:"payment_status" json:"payment_status"`
	CancellationFeeCents *int64     `db:"cancellation_fee_cents" json:"cancellation_fee_cents,omitempty"`
	RefundCents          *int64     `db:"refund_cents" json:"refund_cents,omitempty"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	CancelledAt          *time.Time `db:"cancelled_at" json:"cancelled_at,omitempty"`
}

// EndMin is the exclusive end of the session interval.
func (b *Booking) EndMin() int {
	return b.StartMin + b.DurationMin
}

// SessionStart combines the session date and start time into one instant.
func (b *Booking) SessionStart() time.Time {
	d := b.SessionDate
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location()).
		Add(time.Duration(b.StartMin) * time.Minute)
}

type BookingWithDetails struct {
	Booking
	TrainerName string `db:"trainer_name" json:"trainer_name"`
	ClientName  string `db:"client_name" json:"client_name"`
	ClientEmail string `db:"client_email" json:"client_email"`
}

type ReserveRequest struct {
	Date        string `json:"date" binding:"required" example:"2025-06-02"`
	StartTime   string `json:"start_time" binding:"required" example:"10:00"`
	DurationMin int    `json:"duration_min" example:"60"`
	PriceCents  int64  `json:"price_cents" example:"5000"`
}

type CancelResponse struct {
	Booking              *Booking `json:"booking"`
	CancellationFeeCents int64    `json:"cancellation_fee_cents"`
	RefundCents          int64    `json:"refund_cents"`
}

type DayStat struct {
	Day       time.Time `db:"day" json:"day"`
	Total     int       `db:"total" json:"total"`
	Cancelled int       `db:"cancelled" json:"cancelled"`
}

type TrainerStat struct {
	TrainerID   int    `db:"trainer_id" json:"trainer_id"`
	TrainerName string `db:"trainer_name" json:"trainer_name"`
	Total       int    `db:"total" json:"total"`
	Cancelled   int    `db:"cancelled" json:"cancelled"`
}
