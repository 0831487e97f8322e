package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorslot_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tutorslot_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorslot_bookings_total",
			Help: "Total number of booking attempts",
		},
		[]string{"outcome"},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tutorslot_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	TicketEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorslot_ticket_entries_total",
			Help: "Total number of ticket ledger entries written",
		},
		[]string{"reason"},
	)

	TicketPurchasesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tutorslot_ticket_purchases_total",
			Help: "Total number of completed ticket purchases",
		},
	)

	LessonReportsCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tutorslot_lesson_reports_completed_total",
			Help: "Total number of completed lesson reports",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorslot_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tutorslot_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(outcome string) {
	BookingsTotal.WithLabelValues(outcome).Inc()
}

func RecordBookingCancellation() {
	BookingCancellationsTotal.Inc()
}

func RecordTicketEntry(reason string) {
	TicketEntriesTotal.WithLabelValues(reason).Inc()
}

func RecordTicketPurchase() {
	TicketPurchasesTotal.Inc()
}

func RecordLessonReportCompleted() {
	LessonReportsCompletedTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func SetEmailQueueLength(length float64) {
	EmailQueueLength.Set(length)
}
