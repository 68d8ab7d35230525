package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coachslot_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coachslot_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReservationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coachslot_reservations_total",
			Help: "Total number of session reservation attempts",
		},
		[]string{"result"},
	)

	CancellationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coachslot_cancellations_total",
			Help: "Total number of booking cancellations",
		},
		[]string{"fee_tier"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coachslot_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "coachslot_email_queue_length",
			Help: "Current length of email queue",
		},
	)

	WalletTopUpsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coachslot_wallet_topups_total",
			Help: "Total number of wallet top-ups",
		},
	)

	RefundsRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coachslot_refunds_recorded_total",
			Help: "Total number of refunds recorded on cancelled bookings",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordReservation counts a reservation attempt by outcome:
// created, outside_hours, slot_unavailable, error.
func RecordReservation(result string) {
	ReservationsTotal.WithLabelValues(result).Inc()
}

// RecordCancellation counts a cancellation by fee tier: free or late.
func RecordCancellation(feeTier string) {
	CancellationsTotal.WithLabelValues(feeTier).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func RecordWalletTopUp() {
	WalletTopUpsTotal.Inc()
}

func RecordRefund() {
	RefundsRecordedTotal.Inc()
}
