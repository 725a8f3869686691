package tickets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"tiketbus/internal/bookings"

	"github.com/phpdave11/gofpdf"
)

// ErrTicketUnavailable is returned for bookings that are not confirmed and
// paid. Tickets only exist once the money is in.
var ErrTicketUnavailable = errors.New("ticket is only available for confirmed paid bookings")

// BookingSource is the slice of the booking layer the ticket renderer needs.
type BookingSource interface {
	GetByIDWithRelations(ctx context.Context, id string) (*bookings.Booking, error)
}

type Service interface {
	// GenerateTicket renders the e-ticket PDF for a confirmed booking and
	// returns the document bytes and a download filename.
	GenerateTicket(ctx context.Context, userID, bookingID string) ([]byte, string, error)
}

type service struct {
	bookings BookingSource
}

// NewService creates a new ticket service instance
func NewService(bookingSource BookingSource) Service {
	return &service{bookings: bookingSource}
}

func (s *service) GenerateTicket(ctx context.Context, userID, bookingID string) ([]byte, string, error) {
	booking, err := s.bookings.GetByIDWithRelations(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	if booking.UserID != userID {
		return nil, "", bookings.ErrForbidden
	}
	if booking.Status != bookings.BookingStatusConfirmed || booking.PaymentStatus != bookings.PaymentStatusPaid {
		return nil, "", ErrTicketUnavailable
	}

	data, err := renderTicket(booking)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render ticket: %w", err)
	}

	return data, fmt.Sprintf("ticket-%s.pdf", booking.ID), nil
}

func renderTicket(booking *bookings.Booking) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "TiketBus E-Ticket")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Booking: %s", booking.ID))
	pdf.Ln(8)

	if booking.Schedule != nil {
		schedule := booking.Schedule
		if schedule.Route != nil {
			pdf.SetFont("Arial", "B", 13)
			pdf.Cell(0, 8, fmt.Sprintf("%s  ->  %s", schedule.Route.Origin, schedule.Route.Destination))
			pdf.Ln(10)
		}

		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 6, fmt.Sprintf("Departure: %s", schedule.DepartureTime.Format("Mon, 02 Jan 2006 15:04")))
		pdf.Ln(6)
		pdf.Cell(0, 6, fmt.Sprintf("Arrival:   %s", schedule.ArrivalTime.Format("Mon, 02 Jan 2006 15:04")))
		pdf.Ln(8)

		if schedule.Bus != nil {
			pdf.Cell(0, 6, fmt.Sprintf("Operator: %s (%s)", schedule.Bus.Operator, schedule.Bus.Type))
			pdf.Ln(8)
		}
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Seats: %s", strings.Join(booking.SeatIDs, ", ")))
	pdf.Ln(9)

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, "Passengers")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 10)
	for i, passenger := range booking.Passengers {
		seat := ""
		if i < len(booking.SeatIDs) {
			seat = booking.SeatIDs[i]
		}
		pdf.Cell(0, 6, fmt.Sprintf("%s  (age %d, %s)  seat %s",
			passenger.Name, passenger.Age, passenger.Gender, seat))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Total Paid: IDR %d", booking.TotalAmount))
	pdf.Ln(10)

	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(0, 5, "Show this ticket and a valid ID when boarding.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
