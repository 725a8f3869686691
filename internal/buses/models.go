package buses

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Seat types
const (
	SeatTypeWindow = "WINDOW"
	SeatTypeAisle  = "AISLE"
)

// Bus is an operator's vehicle. Seats are created once alongside the bus and
// never deleted; the fleet only changes through admin tooling.
type Bus struct {
	ID         string         `gorm:"type:uuid;primaryKey" json:"id"`
	Operator   string         `gorm:"not null" json:"operator"`
	Type       string         `gorm:"not null" json:"type"` // e.g. "AC Sleeper", "Executive"
	TotalSeats int            `gorm:"not null" json:"total_seats"`
	Amenities  pq.StringArray `gorm:"type:text[]" json:"amenities"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`

	// Relationships
	Seats []Seat `json:"seats,omitempty" gorm:"foreignKey:BusID;constraint:OnDelete:CASCADE;"`
}

// Seat belongs to exactly one bus.
type Seat struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	BusID     string    `gorm:"type:uuid;index;not null" json:"bus_id"`
	Number    string    `gorm:"not null" json:"number"`
	Type      string    `gorm:"type:varchar(10);check:type IN ('WINDOW', 'AISLE')" json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for Bus
func (Bus) TableName() string {
	return "buses"
}

// TableName sets the table name for Seat
func (Seat) TableName() string {
	return "seats"
}

func (b *Bus) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

func (s *Seat) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
