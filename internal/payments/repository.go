package payments

import (
	"context"
	"errors"

	"tiketbus/internal/bookings"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	GetByBookingID(ctx context.Context, bookingID string) (*Payment, error)
	GetByXenditID(ctx context.Context, xenditID string) (*Payment, error)

	// UpdateStatusWithBooking moves the payment and its booking to the
	// given states in one transaction, so a webhook can never confirm a
	// booking without marking its payment or vice versa.
	UpdateStatusWithBooking(ctx context.Context, payment *Payment,
		paymentStatus bookings.PaymentStatus, bookingStatus bookings.BookingStatus) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, payment *Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repository) GetByBookingID(ctx context.Context, bookingID string) (*Payment, error) {
	var payment Payment
	err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *repository) GetByXenditID(ctx context.Context, xenditID string) (*Payment, error) {
	var payment Payment
	err := r.db.WithContext(ctx).Where("xendit_id = ?", xenditID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *repository) UpdateStatusWithBooking(ctx context.Context, payment *Payment,
	paymentStatus bookings.PaymentStatus, bookingStatus bookings.BookingStatus) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&Payment{}).
			Where("id = ?", payment.ID).
			Update("status", paymentStatus).Error
		if err != nil {
			return err
		}

		return tx.Table("bookings").
			Where("id = ?", payment.BookingID).
			Updates(map[string]interface{}{
				"status":         bookingStatus,
				"payment_status": paymentStatus,
			}).Error
	})
}
