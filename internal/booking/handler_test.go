package booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coachslot/internal/email"
	"coachslot/internal/wallet"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) GetWallet(ctx context.Context, userID int) (*wallet.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletService) TopUp(ctx context.Context, userID int, amountCents int64) (*wallet.Wallet, error) {
	args := m.Called(ctx, userID, amountCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletService) Charge(ctx context.Context, userID int, amountCents int64, description string) error {
	args := m.Called(ctx, userID, amountCents, description)
	return args.Error(0)
}

func (m *MockWalletService) Refund(ctx context.Context, userID int, amountCents int64, description string) error {
	args := m.Called(ctx, userID, amountCents, description)
	return args.Error(0)
}

func (m *MockWalletService) GetTransactions(ctx context.Context, userID int) ([]wallet.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]wallet.Transaction), args.Error(1)
}

func newCancelContext(t *testing.T, bookingID string, clientID int) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/bookings/"+bookingID+"/cancel", nil)
	c.Params = gin.Params{{Key: "bookingID", Value: bookingID}}
	c.Set("user_id", clientID)

	return c, w
}

func TestCancelHandler_RefundsPaidBooking(t *testing.T) {
	repo := new(MockBookingRepo)
	trainerRepo := new(MockTrainerRepo)
	wallets := new(MockWalletService)
	redisClient, _ := redismock.NewClientMock()
	mailer := email.NewWithClient("noreply@coachslot.io", "CoachSlot", "localhost", "1025", "", "", redisClient)

	paid := &Booking{
		ID: 42, TrainerID: 1, ClientID: 7,
		SessionDate: time.Now().AddDate(0, 0, 7),
		StartMin:    600, DurationMin: 60, PriceCents: 5000,
		Status: StatusPending, PaymentStatus: PaymentPaid,
	}

	repo.On("GetByID", mock.Anything, 42).Return(paid, nil)
	repo.On("CancelBooking", mock.Anything, 42, int64(0), int64(5000), mock.Anything).Return(nil)
	repo.On("UpdatePaymentStatus", mock.Anything, 42, PaymentRefunded).Return(nil)
	// A flaky details read must not cost the client the refund; only the
	// cancellation email depends on it.
	repo.On("GetDetailsByID", mock.Anything, 42).Return(nil, errors.New("connection reset"))
	wallets.On("Refund", mock.Anything, 7, int64(5000), mock.Anything).Return(nil)

	h := &Handler{service: NewService(repo, trainerRepo), wallets: wallets, mailer: mailer}

	c, w := newCancelContext(t, "42", 7)
	h.Cancel(c)

	require.Equal(t, http.StatusOK, w.Code)
	wallets.AssertCalled(t, "Refund", mock.Anything, 7, int64(5000), mock.Anything)
	repo.AssertCalled(t, "UpdatePaymentStatus", mock.Anything, 42, PaymentRefunded)
}

func TestCancelHandler_UnpaidBookingNotRefunded(t *testing.T) {
	repo := new(MockBookingRepo)
	trainerRepo := new(MockTrainerRepo)
	wallets := new(MockWalletService)
	redisClient, redisMock := redismock.NewClientMock()
	mailer := email.NewWithClient("noreply@coachslot.io", "CoachSlot", "localhost", "1025", "", "", redisClient)

	unpaid := &Booking{
		ID: 43, TrainerID: 1, ClientID: 7,
		SessionDate: time.Now().AddDate(0, 0, 7),
		StartMin:    600, DurationMin: 60, PriceCents: 5000,
		Status: StatusPending, PaymentStatus: PaymentPending,
	}

	repo.On("GetByID", mock.Anything, 43).Return(unpaid, nil)
	repo.On("CancelBooking", mock.Anything, 43, int64(0), int64(5000), mock.Anything).Return(nil)
	repo.On("GetDetailsByID", mock.Anything, 43).Return(&BookingWithDetails{
		Booking: *unpaid, TrainerName: "Anna", ClientName: "Ivan", ClientEmail: "ivan@test.com",
	}, nil)
	redisMock.Regexp().ExpectLPush("emails", `.*cancellation.*`).SetVal(1)

	h := &Handler{service: NewService(repo, trainerRepo), wallets: wallets, mailer: mailer}

	c, w := newCancelContext(t, "43", 7)
	h.Cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	wallets.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}
