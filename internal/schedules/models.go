package schedules

import (
	"time"

	"tiketbus/internal/buses"
	"tiketbus/internal/routes"
)

// Schedule is a departure of a bus on a route. Concrete rows carry the
// synthesized candidate id they materialized under, so searches and bookings
// agree on identity. Invariant: 0 <= AvailableSeats <= Bus.TotalSeats.
type Schedule struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	BusID          string    `gorm:"type:uuid;index;not null" json:"bus_id"`
	RouteID        string    `gorm:"type:uuid;index;not null" json:"route_id"`
	DepartureTime  time.Time `gorm:"not null" json:"departure_time"`
	ArrivalTime    time.Time `gorm:"not null" json:"arrival_time"`
	AvailableSeats int       `gorm:"not null" json:"available_seats"`
	Fare           int64     `gorm:"not null" json:"fare"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relationships (snapshots embedded in search results for display)
	Bus   *buses.Bus    `json:"bus,omitempty" gorm:"foreignKey:BusID"`
	Route *routes.Route `json:"route,omitempty" gorm:"foreignKey:RouteID"`
}

// TableName sets the table name for Schedule
func (Schedule) TableName() string {
	return "schedules"
}
