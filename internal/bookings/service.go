package bookings

import (
	"context"
	"time"

	"tiketbus/internal/schedules"
	"tiketbus/pkg/logger"
)

// CreateBookingRequest carries everything needed to hold seats on a schedule.
// ScheduleID may be a synthesized candidate id that has never been persisted.
type CreateBookingRequest struct {
	ScheduleID string
	SeatIDs    []string
	Passengers []Passenger
	TravelDate *time.Time
}

type Service interface {
	Create(ctx context.Context, userID string, req CreateBookingRequest) (*Booking, error)
	Cancel(ctx context.Context, userID, bookingID string) (*Booking, error)
	GetByID(ctx context.Context, userID, bookingID string) (*Booking, error)
	ListByUser(ctx context.Context, userID string) ([]Booking, error)
	ListBookedSeats(ctx context.Context, scheduleID string) ([]string, error)
}

type service struct {
	repo      Repository
	schedules schedules.Service
	log       *logger.Logger
}

// NewService creates a new booking service instance
func NewService(repo Repository, scheduleService schedules.Service) Service {
	return &service{
		repo:      repo,
		schedules: scheduleService,
		log:       logger.GetDefault(),
	}
}

// Create materializes the referenced schedule if needed, then books the seats
// atomically. The total charged is the materialized fare times the seat count,
// so the price cannot drift from what the search listing showed.
func (s *service) Create(ctx context.Context, userID string, req CreateBookingRequest) (*Booking, error) {
	if len(req.Passengers) != len(req.SeatIDs) {
		return nil, ErrPassengerMismatch
	}

	schedule, err := s.schedules.Materialize(ctx, req.ScheduleID, req.TravelDate)
	if err != nil {
		return nil, err
	}

	booking := &Booking{
		UserID:        userID,
		ScheduleID:    schedule.ID,
		SeatIDs:       req.SeatIDs,
		Passengers:    req.Passengers,
		TotalAmount:   schedule.Fare * int64(len(req.SeatIDs)),
		Status:        BookingStatusPending,
		PaymentStatus: PaymentStatusPending,
	}

	if err := s.repo.CreateWithSeatCheck(ctx, booking); err != nil {
		return nil, err
	}

	s.log.LogBookingCreated(ctx, booking.ID, booking.ScheduleID, userID)
	return booking, nil
}

// Cancel releases the booking's seats and marks any payment refunded. Only
// the owner may cancel, and only once.
func (s *service) Cancel(ctx context.Context, userID, bookingID string) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrForbidden
	}

	cancelled, err := s.repo.Cancel(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.log.LogBookingCancelled(ctx, bookingID, userID)
	return cancelled, nil
}

func (s *service) GetByID(ctx context.Context, userID, bookingID string) (*Booking, error) {
	booking, err := s.repo.GetByIDWithRelations(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrForbidden
	}
	return booking, nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListBookedSeats reports taken seats for a schedule id. An unmaterialized
// candidate simply has no bookings yet, so no materialization happens here.
func (s *service) ListBookedSeats(ctx context.Context, scheduleID string) ([]string, error) {
	return s.repo.ListBookedSeats(ctx, scheduleID)
}
