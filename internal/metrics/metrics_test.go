package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/api/bookings", "200", 0.5)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/bookings", "200"))
	assert.Equal(t, float64(1), count)
}

func TestRecordBooking(t *testing.T) {
	BookingsTotal.Reset()

	RecordBooking("confirmed")
	RecordBooking("confirmed")
	RecordBooking("rejected")

	assert.Equal(t, float64(2), testutil.ToFloat64(BookingsTotal.WithLabelValues("confirmed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(BookingsTotal.WithLabelValues("rejected")))
}

func TestRecordTicketEntry(t *testing.T) {
	TicketEntriesTotal.Reset()

	RecordTicketEntry("booking")
	RecordTicketEntry("refund")

	assert.Equal(t, float64(1), testutil.ToFloat64(TicketEntriesTotal.WithLabelValues("booking")))
	assert.Equal(t, float64(1), testutil.ToFloat64(TicketEntriesTotal.WithLabelValues("refund")))
}

func TestRecordEmail(t *testing.T) {
	EmailsSentTotal.Reset()

	RecordEmail("booking_confirmation", "sent")
	RecordEmail("booking_confirmation", "failed")

	assert.Equal(t, float64(1), testutil.ToFloat64(EmailsSentTotal.WithLabelValues("booking_confirmation", "sent")))
	assert.Equal(t, float64(1), testutil.ToFloat64(EmailsSentTotal.WithLabelValues("booking_confirmation", "failed")))
}
