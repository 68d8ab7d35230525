package booking

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *Booking) (*Booking, error) {
	query := `
		INSERT INTO bookings (trainer_id, client_id, session_date, start_min, duration_min, price_cents, status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, trainer_id, client_id, session_date, start_min, duration_min, price_cents,
		          status, payment_status, cancellation_fee_cents, refund_cents, created_at, cancelled_at`

	// session_date is a DATE column; sending the plain date string keeps
	// the value independent of the server's session timezone.
	var created Booking
	err := r.db.GetContext(ctx, &created, query,
		b.TrainerID, b.ClientID, b.SessionDate.Format("2006-01-02"), b.StartMin, b.DurationMin, b.PriceCents, b.Status, b.PaymentStatus)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Booking, error) {
	query := `
		SELECT id, trainer_id, client_id, session_date, start_min, duration_min, price_cents,
		       status, payment_status, cancellation_fee_cents, refund_cents, created_at, cancelled_at
		FROM bookings
		WHERE id = $1`

	var b Booking
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *repository) GetDetailsByID(ctx context.Context, id int) (*BookingWithDetails, error) {
	query := `
		SELECT b.id, b.trainer_id, b.client_id, b.session_date, b.start_min, b.duration_min, b.price_cents,
		       b.status, b.payment_status, b.cancellation_fee_cents, b.refund_cents, b.created_at, b.cancelled_at,
		       t.name AS trainer_name, u.name AS client_name, u.email AS client_email
		FROM bookings b
		JOIN trainers t ON t.id = b.trainer_id
		JOIN users u ON u.id = b.client_id
		WHERE b.id = $1`

	var b BookingWithDetails
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		return nil, err
	}

	return &b, nil
}

// GetActiveByTrainerAndDate returns bookings that still hold the slot.
// Cancelled and completed sessions do not block new reservations.
func (r *repository) GetActiveByTrainerAndDate(ctx context.Context, trainerID int, date time.Time) ([]Booking, error) {
	query := `
		SELECT id, trainer_id, client_id, session_date, start_min, duration_min, price_cents,
		       status, payment_status, cancellation_fee_cents, refund_cents, created_at, cancelled_at
		FROM bookings
		WHERE trainer_id = $1 AND session_date = $2 AND status IN ('pending', 'confirmed')
		ORDER BY start_min`

	var bookings []Booking
	if err := r.db.SelectContext(ctx, &bookings, query, trainerID, date.Format("2006-01-02")); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) GetUserBookings(ctx context.Context, clientID int) ([]BookingWithDetails, error) {
	query := `
		SELECT b.id, b.trainer_id, b.client_id, b.session_date, b.start_min, b.duration_min, b.price_cents,
		       b.status, b.payment_status, b.cancellation_fee_cents, b.refund_cents, b.created_at, b.cancelled_at,
		       t.name AS trainer_name, u.name AS client_name, u.email AS client_email
		FROM bookings b
		JOIN trainers t ON t.id = b.trainer_id
		JOIN users u ON u.id = b.client_id
		WHERE b.client_id = $1
		ORDER BY b.session_date DESC, b.start_min DESC`

	var bookings []BookingWithDetails
	if err := r.db.SelectContext(ctx, &bookings, query, clientID); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) GetTrainerBookings(ctx context.Context, trainerID int, date *time.Time) ([]BookingWithDetails, error) {
	query := `
		SELECT b.id, b.trainer_id, b.client_id, b.session_date, b.start_min, b.duration_min, b.price_cents,
		       b.status, b.payment_status, b.cancellation_fee_cents, b.refund_cents, b.created_at, b.cancelled_at,
		       t.name AS trainer_name, u.name AS client_name, u.email AS client_email
		FROM bookings b
		JOIN trainers t ON t.id = b.trainer_id
		JOIN users u ON u.id = b.client_id
		WHERE b.trainer_id = $1`

	args := []interface{}{trainerID}
	if date != nil {
		query += ` AND b.session_date = $2`
		args = append(args, date.Format("2006-01-02"))
	}
	query += ` ORDER BY b.session_date DESC, b.start_min DESC`

	var bookings []BookingWithDetails
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, err
	}

	return bookings, nil
}

// CancelBooking flips the booking to cancelled and records the fee split.
// The status guard makes a second cancel a no-op at the SQL level.
func (r *repository) CancelBooking(ctx context.Context, id int, feeCents, refundCents int64, cancelledAt time.Time) error {
	query := `
		UPDATE bookings
		SET status = 'cancelled', cancellation_fee_cents = $2, refund_cents = $3, cancelled_at = $4
		WHERE id = $1 AND status <> 'cancelled'`

	result, err := r.db.ExecContext(ctx, query, id, feeCents, refundCents, cancelledAt)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAlreadyCancelled
	}

	return nil
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, id int, status string) error {
	query := `UPDATE bookings SET payment_status = $2 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}

func (r *repository) GetStatsByDay(ctx context.Context, from, to time.Time) ([]DayStat, error) {
	query := `
		SELECT session_date AS day,
		       COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled
		FROM bookings
		WHERE session_date BETWEEN $1 AND $2
		GROUP BY session_date
		ORDER BY session_date`

	var stats []DayStat
	if err := r.db.SelectContext(ctx, &stats, query, from.Format("2006-01-02"), to.Format("2006-01-02")); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *repository) GetStatsByTrainer(ctx context.Context, from, to time.Time) ([]TrainerStat, error) {
	query := `
		SELECT b.trainer_id,
		       t.name AS trainer_name,
		       COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE b.status = 'cancelled') AS cancelled
		FROM bookings b
		JOIN trainers t ON t.id = b.trainer_id
		WHERE b.session_date BETWEEN $1 AND $2
		GROUP BY b.trainer_id, t.name
		ORDER BY total DESC`

	var stats []TrainerStat
	if err := r.db.SelectContext(ctx, &stats, query, from.Format("2006-01-02"), to.Format("2006-01-02")); err != nil {
		return nil, err
	}

	return stats, nil
}
