package payments

import (
	"strings"

	"tiketbus/internal/bookings"
)

// gatewayOutcome is what a webhook status means for the payment and its
// booking.
type gatewayOutcome struct {
	Payment bookings.PaymentStatus
	Booking bookings.BookingStatus
	Known   bool
}

// mapGatewayStatus translates the gateway's invoice status vocabulary into
// local payment and booking states. Unknown statuses leave both pending so a
// later webhook can still settle the invoice.
func mapGatewayStatus(status string) gatewayOutcome {
	switch strings.ToUpper(status) {
	case "PAID", "SETTLED":
		return gatewayOutcome{
			Payment: bookings.PaymentStatusPaid,
			Booking: bookings.BookingStatusConfirmed,
			Known:   true,
		}
	case "EXPIRED", "FAILED":
		return gatewayOutcome{
			Payment: bookings.PaymentStatusFailed,
			Booking: bookings.BookingStatusCancelled,
			Known:   true,
		}
	case "PENDING":
		return gatewayOutcome{
			Payment: bookings.PaymentStatusPending,
			Booking: bookings.BookingStatusPending,
			Known:   true,
		}
	default:
		return gatewayOutcome{
			Payment: bookings.PaymentStatusPending,
			Booking: bookings.BookingStatusPending,
			Known:   false,
		}
	}
}

// bookingStatusFor is the booking state a settled payment status implies.
// Used to report webhook outcomes when no row is updated.
func bookingStatusFor(status bookings.PaymentStatus) bookings.BookingStatus {
	switch status {
	case bookings.PaymentStatusPaid:
		return bookings.BookingStatusConfirmed
	case bookings.PaymentStatusFailed, bookings.PaymentStatusRefunded:
		return bookings.BookingStatusCancelled
	}
	return bookings.BookingStatusPending
}

// isTerminal reports whether a payment status may no longer change. Terminal
// states stick: a late or replayed webhook cannot flip them.
func isTerminal(status bookings.PaymentStatus) bool {
	switch status {
	case bookings.PaymentStatusPaid, bookings.PaymentStatusFailed, bookings.PaymentStatusRefunded:
		return true
	}
	return false
}
