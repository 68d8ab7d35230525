package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, redismock.ClientMock) {
	client, mock := redismock.NewClientMock()
	svc := NewWithClient("noreply@coachslot.dev", "CoachSlot", "localhost", "1025", "", "", client)
	return svc, mock
}

func TestSendBookingConfirmation(t *testing.T) {
	svc, mock := newTestService()
	mock.Regexp().ExpectLPush(queueKey, `.*booking_confirmation.*`).SetVal(1)

	when := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	err := svc.SendBookingConfirmation(context.Background(), "client@example.com", "Ivan", "Anna", when, "10:00")

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSendCancellation(t *testing.T) {
	svc, mock := newTestService()
	mock.Regexp().ExpectLPush(queueKey, `.*cancellation.*`).SetVal(1)

	when := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	err := svc.SendCancellation(context.Background(), "client@example.com", "Ivan", "Anna", when, 2500, 2500)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnqueueRedisDown(t *testing.T) {
	svc, mock := newTestService()
	mock.Regexp().ExpectLPush(queueKey, `.*`).SetErr(errors.New("connection refused"))

	when := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	err := svc.SendReminder(context.Background(), "client@example.com", "Ivan", "Anna", when, "10:00")

	assert.Error(t, err)
}

func TestQueueLength(t *testing.T) {
	svc, mock := newTestService()
	mock.ExpectLLen(queueKey).SetVal(4)

	assert.Equal(t, int64(4), svc.QueueLength(context.Background()))
}
