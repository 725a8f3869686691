package buses

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// ListOrdered returns the whole fleet in a stable order. The schedule
	// generator depends on this order being identical across calls.
	ListOrdered(ctx context.Context) ([]Bus, error)
	GetByID(ctx context.Context, id string) (*Bus, error)
	// Create inserts the bus and any seats attached to it.
	Create(ctx context.Context, bus *Bus) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListOrdered(ctx context.Context) ([]Bus, error) {
	var fleet []Bus
	err := r.db.WithContext(ctx).Order("id ASC").Find(&fleet).Error
	return fleet, err
}

func (r *repository) GetByID(ctx context.Context, id string) (*Bus, error) {
	var bus Bus
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&bus).Error
	if err != nil {
		return nil, err
	}
	return &bus, nil
}

func (r *repository) Create(ctx context.Context, bus *Bus) error {
	return r.db.WithContext(ctx).Create(bus).Error
}
