package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/bookings", "200", 0.5)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/bookings", "200"))
	assert.Equal(t, float64(1), count)
}

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/auth/login", "200", 0.1)
	RecordHTTPRequest("POST", "/auth/login", "200", 0.2)
	RecordHTTPRequest("POST", "/auth/login", "401", 0.05)

	successCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "200"))
	failCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "401"))

	assert.Equal(t, float64(2), successCount)
	assert.Equal(t, float64(1), failCount)
}

func TestRecordReservation(t *testing.T) {
	ReservationsTotal.Reset()

	RecordReservation("created")
	RecordReservation("created")
	RecordReservation("slot_unavailable")
	RecordReservation("outside_hours")

	created := testutil.ToFloat64(ReservationsTotal.WithLabelValues("created"))
	unavailable := testutil.ToFloat64(ReservationsTotal.WithLabelValues("slot_unavailable"))
	outside := testutil.ToFloat64(ReservationsTotal.WithLabelValues("outside_hours"))

	assert.Equal(t, float64(2), created)
	assert.Equal(t, float64(1), unavailable)
	assert.Equal(t, float64(1), outside)
}

func TestRecordCancellation(t *testing.T) {
	CancellationsTotal.Reset()

	RecordCancellation("free")
	RecordCancellation("late")
	RecordCancellation("late")

	free := testutil.ToFloat64(CancellationsTotal.WithLabelValues("free"))
	late := testutil.ToFloat64(CancellationsTotal.WithLabelValues("late"))

	assert.Equal(t, float64(1), free)
	assert.Equal(t, float64(2), late)
}

func TestRecordEmail(t *testing.T) {
	EmailsSentTotal.Reset()

	RecordEmail("booking_confirmation", "success")
	RecordEmail("booking_confirmation", "failed")
	RecordEmail("cancellation", "success")

	confirmSuccess := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("booking_confirmation", "success"))
	confirmFailed := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("booking_confirmation", "failed"))
	cancelSuccess := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("cancellation", "success"))

	assert.Equal(t, float64(1), confirmSuccess)
	assert.Equal(t, float64(1), confirmFailed)
	assert.Equal(t, float64(1), cancelSuccess)
}
