package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

var bookingCols = []string{
	"id", "trainer_id", "client_id", "session_date", "start_min", "duration_min",
	"price_cents", "status", "payment_status", "cancellation_fee_cents",
	"refund_cents", "created_at", "cancelled_at",
}

func TestCreateBooking(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(1, 7, "2025-06-02", 600, 60, int64(5000), StatusPending, PaymentPending).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(42, 1, 7, date, 600, 60, 5000, StatusPending, PaymentPending, nil, nil, now, nil))

	got, err := repo.Create(context.Background(), &Booking{
		TrainerID: 1, ClientID: 7, SessionDate: date,
		StartMin: 600, DurationMin: 60, PriceCents: 5000,
		Status: StatusPending, PaymentStatus: PaymentPending,
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got.ID)
	assert.Nil(t, got.CancellationFeeCents)
}

func TestGetActiveByTrainerAndDate(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	// The zone on the date value must not leak into the query: the DATE
	// column is always compared against the plain date string.
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM bookings\s+WHERE trainer_id = \$1 AND session_date = \$2 AND status IN \('pending', 'confirmed'\)`).
		WithArgs(1, "2025-06-02").
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(42, 1, 7, date, 600, 60, 5000, StatusConfirmed, PaymentPaid, nil, nil, now, nil).
			AddRow(43, 1, 8, date, 660, 60, 5000, StatusPending, PaymentPending, nil, nil, now, nil))

	got, err := repo.GetActiveByTrainerAndDate(context.Background(), 1, date)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 600, got[0].StartMin)
	assert.Equal(t, 720, got[1].EndMin())
}

func TestCancelBookingRepo(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	cancelledAt := time.Now()

	t.Run("first cancel", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings\s+SET status = 'cancelled'.+WHERE id = \$1 AND status <> 'cancelled'`).
			WithArgs(42, int64(2500), int64(2500), cancelledAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.CancelBooking(context.Background(), 42, 2500, 2500, cancelledAt)
		require.NoError(t, err)
	})

	t.Run("already cancelled", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings\s+SET status = 'cancelled'`).
			WithArgs(42, int64(2500), int64(2500), cancelledAt).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.CancelBooking(context.Background(), 42, 2500, 2500, cancelledAt)
		assert.ErrorIs(t, err, ErrAlreadyCancelled)
	})
}

func TestUpdatePaymentStatus(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE bookings SET payment_status = $2 WHERE id = $1`)).
		WithArgs(42, PaymentPaid).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdatePaymentStatus(context.Background(), 42, PaymentPaid)
	require.NoError(t, err)
}

func TestGetStatsByDay(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT session_date AS day`).
		WithArgs("2025-06-01", "2025-06-30").
		WillReturnRows(sqlmock.NewRows([]string{"day", "total", "cancelled"}).
			AddRow(day, 5, 1))

	got, err := repo.GetStatsByDay(context.Background(), from, to)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].Total)
	assert.Equal(t, 1, got[0].Cancelled)
}
