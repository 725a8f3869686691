package bookings

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// CreateWithSeatCheck inserts the booking inside one transaction that
	// locks the schedule row, re-checks availability and seat overlap, and
	// decrements the schedule's available seats.
	CreateWithSeatCheck(ctx context.Context, booking *Booking) error

	// Cancel marks the booking cancelled, returns its seats to the
	// schedule and flags any payment row refunded, all in one transaction.
	Cancel(ctx context.Context, bookingID string) (*Booking, error)

	GetByID(ctx context.Context, id string) (*Booking, error)
	GetByIDWithRelations(ctx context.Context, id string) (*Booking, error)
	ListByUser(ctx context.Context, userID string) ([]Booking, error)

	// ListBookedSeats returns the seat numbers held by pending or
	// confirmed bookings on a schedule.
	ListBookedSeats(ctx context.Context, scheduleID string) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithSeatCheck(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the schedule row so concurrent bookings for the same
		// departure serialize here.
		var schedule struct {
			ID             string
			AvailableSeats int
		}
		err := tx.Table("schedules").
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "available_seats").
			Where("id = ?", booking.ScheduleID).
			Take(&schedule).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if schedule.AvailableSeats < len(booking.SeatIDs) {
			return ErrInsufficientSeats
		}

		var conflicts int64
		err = tx.Model(&Booking{}).
			Where("schedule_id = ?", booking.ScheduleID).
			Where("status IN ?", []string{string(BookingStatusPending), string(BookingStatusConfirmed)}).
			Where("seat_ids && ?", pq.StringArray(booking.SeatIDs)).
			Count(&conflicts).Error
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrSeatConflict
		}

		if err := tx.Create(booking).Error; err != nil {
			return err
		}

		return tx.Table("schedules").
			Where("id = ?", booking.ScheduleID).
			UpdateColumn("available_seats", gorm.Expr("available_seats - ?", len(booking.SeatIDs))).Error
	})
}

func (r *repository) Cancel(ctx context.Context, bookingID string) (*Booking, error) {
	var cancelled Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", bookingID).
			First(&cancelled).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if cancelled.Status == BookingStatusCancelled {
			return ErrAlreadyCancelled
		}

		err = tx.Model(&cancelled).Updates(map[string]interface{}{
			"status":         BookingStatusCancelled,
			"payment_status": PaymentStatusRefunded,
		}).Error
		if err != nil {
			return err
		}
		cancelled.Status = BookingStatusCancelled
		cancelled.PaymentStatus = PaymentStatusRefunded

		err = tx.Table("schedules").
			Where("id = ?", cancelled.ScheduleID).
			UpdateColumn("available_seats", gorm.Expr("available_seats + ?", len(cancelled.SeatIDs))).Error
		if err != nil {
			return err
		}

		// Flag the gateway payment refunded as well, if one was created.
		return tx.Table("payments").
			Where("booking_id = ?", bookingID).
			Update("status", "REFUNDED").Error
	})
	if err != nil {
		return nil, err
	}
	return &cancelled, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByIDWithRelations(ctx context.Context, id string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Schedule").
		Preload("Schedule.Bus").
		Preload("Schedule.Route").
		Preload("User").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Booking, error) {
	var results []Booking
	err := r.db.WithContext(ctx).
		Preload("Schedule").
		Preload("Schedule.Bus").
		Preload("Schedule.Route").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error
	return results, err
}

func (r *repository) ListBookedSeats(ctx context.Context, scheduleID string) ([]string, error) {
	var rows []pq.StringArray
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("schedule_id = ?", scheduleID).
		Where("status IN ?", []string{string(BookingStatusPending), string(BookingStatusConfirmed)}).
		Pluck("seat_ids", &rows).Error
	if err != nil {
		return nil, err
	}

	seats := make([]string, 0)
	for _, row := range rows {
		seats = append(seats, row...)
	}
	return seats, nil
}
