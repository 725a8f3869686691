package schedules

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Schedule, error)
	GetByIDWithDetails(ctx context.Context, id string) (*Schedule, error)
	Create(ctx context.Context, schedule *Schedule) error

	// CountConfirmedSeats sums the seats held by CONFIRMED bookings that
	// reference the given schedule id (persisted or not yet materialized).
	CountConfirmedSeats(ctx context.Context, scheduleID string) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id string) (*Schedule, error) {
	var schedule Schedule
	err := r.db.WithContext(ctx).
		Preload("Bus").
		Preload("Route").
		Where("id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *repository) GetByIDWithDetails(ctx context.Context, id string) (*Schedule, error) {
	var schedule Schedule
	err := r.db.WithContext(ctx).
		Preload("Bus").
		Preload("Bus.Seats", func(db *gorm.DB) *gorm.DB {
			return db.Order("seats.number ASC")
		}).
		Preload("Route").
		Where("id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *repository) Create(ctx context.Context, schedule *Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *repository) CountConfirmedSeats(ctx context.Context, scheduleID string) (int, error) {
	var booked int
	err := r.db.WithContext(ctx).
		Table("bookings").
		Where("schedule_id = ?", scheduleID).
		Where("status = ?", "CONFIRMED").
		Select("COALESCE(SUM(cardinality(seat_ids)), 0)").
		Scan(&booked).Error
	return booked, err
}
