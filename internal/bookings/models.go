package bookings

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"tiketbus/internal/schedules"
	"tiketbus/internal/users"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// Passenger is the per-seat passenger record stored with a booking.
type Passenger struct {
	Name   string `json:"name" binding:"required"`
	Age    int    `json:"age" binding:"required,gt=0"`
	Gender string `json:"gender" binding:"required,oneof=male female other"`
}

// PassengerList stores passengers as a jsonb column.
type PassengerList []Passenger

func (p PassengerList) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *PassengerList) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return errors.New("unsupported type for PassengerList")
	}
}

// Booking holds seats on a schedule for one user. SeatIDs are seat numbers on
// the schedule's bus; a seat is taken while any PENDING or CONFIRMED booking
// on the same schedule lists it.
type Booking struct {
	ID            string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string         `gorm:"type:uuid;index;not null" json:"user_id"`
	ScheduleID    string         `gorm:"index;not null" json:"schedule_id"`
	SeatIDs       pq.StringArray `gorm:"type:text[];not null" json:"seat_ids"`
	Passengers    PassengerList  `gorm:"type:jsonb" json:"passengers"`
	TotalAmount   int64          `gorm:"not null" json:"total_amount"`
	Status        BookingStatus  `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	PaymentStatus PaymentStatus  `gorm:"type:varchar(20);not null;default:'PENDING'" json:"payment_status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	// Relationships
	Schedule *schedules.Schedule `json:"schedule,omitempty" gorm:"foreignKey:ScheduleID"`
	User     *users.User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
