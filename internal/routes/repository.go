package routes

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Route, error)
	// Search matches origin/destination case-insensitively as substrings,
	// so "jakarta" finds "Jakarta". Empty arguments match everything.
	Search(ctx context.Context, origin, destination string) ([]Route, error)
	Create(ctx context.Context, route *Route) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id string) (*Route, error) {
	var route Route
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&route).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *repository) Search(ctx context.Context, origin, destination string) ([]Route, error) {
	query := r.db.WithContext(ctx).Model(&Route{})
	if origin != "" {
		query = query.Where("origin ILIKE ?", "%"+origin+"%")
	}
	if destination != "" {
		query = query.Where("destination ILIKE ?", "%"+destination+"%")
	}

	var results []Route
	err := query.Order("origin ASC, destination ASC").Find(&results).Error
	return results, err
}

func (r *repository) Create(ctx context.Context, route *Route) error {
	return r.db.WithContext(ctx).Create(route).Error
}
