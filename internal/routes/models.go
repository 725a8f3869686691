package routes

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Route connects two cities. Duration is in minutes; 0 means unknown and the
// schedule generator falls back to its default travel time.
type Route struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Origin      string    `gorm:"index;not null" json:"origin"`
	Destination string    `gorm:"index;not null" json:"destination"`
	Distance    int       `json:"distance"` // km
	Duration    int       `json:"duration"` // minutes
	BaseFare    int64     `gorm:"not null" json:"base_fare"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName sets the table name for Route
func (Route) TableName() string {
	return "routes"
}

func (r *Route) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
