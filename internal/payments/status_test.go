package payments

import (
	"testing"

	"tiketbus/internal/bookings"

	"github.com/stretchr/testify/assert"
)

func TestMapGatewayStatus(t *testing.T) {
	tests := []struct {
		status      string
		wantPayment bookings.PaymentStatus
		wantBooking bookings.BookingStatus
		wantKnown   bool
	}{
		{"PAID", bookings.PaymentStatusPaid, bookings.BookingStatusConfirmed, true},
		{"SETTLED", bookings.PaymentStatusPaid, bookings.BookingStatusConfirmed, true},
		{"paid", bookings.PaymentStatusPaid, bookings.BookingStatusConfirmed, true},
		{"EXPIRED", bookings.PaymentStatusFailed, bookings.BookingStatusCancelled, true},
		{"FAILED", bookings.PaymentStatusFailed, bookings.BookingStatusCancelled, true},
		{"PENDING", bookings.PaymentStatusPending, bookings.BookingStatusPending, true},
		{"VOIDED", bookings.PaymentStatusPending, bookings.BookingStatusPending, false},
		{"", bookings.PaymentStatusPending, bookings.BookingStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			outcome := mapGatewayStatus(tt.status)
			assert.Equal(t, tt.wantPayment, outcome.Payment)
			assert.Equal(t, tt.wantBooking, outcome.Booking)
			assert.Equal(t, tt.wantKnown, outcome.Known)
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(bookings.PaymentStatusPending))
	assert.True(t, isTerminal(bookings.PaymentStatusPaid))
	assert.True(t, isTerminal(bookings.PaymentStatusFailed))
	assert.True(t, isTerminal(bookings.PaymentStatusRefunded))
}
