package payments

import (
	"time"

	"tiketbus/internal/bookings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is the gateway-side record for one booking. A booking has at most
// one payment; XenditID is the invoice id webhooks reference.
type Payment struct {
	ID         string                 `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID  string                 `gorm:"type:uuid;uniqueIndex;not null" json:"booking_id"`
	XenditID   string                 `gorm:"index" json:"xendit_id"`
	InvoiceURL string                 `json:"invoice_url"`
	Amount     int64                  `gorm:"not null" json:"amount"`
	Method     string                 `gorm:"not null;default:'XENDIT_INVOICE'" json:"method"`
	Status     bookings.PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// TableName sets the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
