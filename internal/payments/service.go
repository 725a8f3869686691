package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tiketbus/internal/bookings"
	"tiketbus/pkg/logger"
	"tiketbus/pkg/xendit"
)

var (
	// ErrNotConfigured is returned when no gateway secret key is set.
	ErrNotConfigured = errors.New("payment gateway is not configured")

	// ErrInvalidGatewayResponse is returned when the gateway answers
	// without an invoice id or payment URL.
	ErrInvalidGatewayResponse = errors.New("gateway returned an unusable invoice")

	// ErrInvalidToken is returned when a webhook carries the wrong
	// callback token.
	ErrInvalidToken = errors.New("invalid webhook callback token")

	// ErrNotFound is returned when no payment matches the lookup.
	ErrNotFound = errors.New("payment not found")
)

// BookingSource is the slice of the booking layer payments need: full booking
// rows with user and schedule attached for building invoices.
type BookingSource interface {
	GetByIDWithRelations(ctx context.Context, id string) (*bookings.Booking, error)
}

// InvoiceClient is the gateway surface the service depends on.
type InvoiceClient interface {
	Configured() bool
	CreateInvoice(ctx context.Context, req xendit.CreateInvoiceRequest) (*xendit.Invoice, error)
}

// Options carries the deploy-specific knobs for the payment flow.
type Options struct {
	// AppURL is the public base URL redirect links point back to.
	AppURL string

	// WebhookToken is Xendit's callback token. It is enforced only in
	// production; elsewhere mismatches are logged and the callback is
	// still processed.
	WebhookToken string

	Production bool
}

// WebhookPayload is the slice of Xendit's invoice callback the flow needs.
type WebhookPayload struct {
	ID         string `json:"id" binding:"required"`
	ExternalID string `json:"external_id"`
	Status     string `json:"status" binding:"required"`
}

// WebhookResult reports the reconciled payment and booking state after a
// gateway callback, whether or not anything changed.
type WebhookResult struct {
	PaymentID     string                 `json:"payment_id"`
	BookingID     string                 `json:"booking_id"`
	PaymentStatus bookings.PaymentStatus `json:"payment_status"`
	BookingStatus bookings.BookingStatus `json:"booking_status"`
}

// CreatePaymentRequest asks for a hosted invoice for a booking.
type CreatePaymentRequest struct {
	BookingID     string `json:"booking_id" binding:"required"`
	PaymentMethod string `json:"payment_method"`
}

type Service interface {
	CreateInvoice(ctx context.Context, userID string, req CreatePaymentRequest) (*Payment, error)
	HandleWebhook(ctx context.Context, token string, payload WebhookPayload) (*WebhookResult, error)
	SimulateWebhook(ctx context.Context, bookingID string) error
	GetByBookingID(ctx context.Context, userID, bookingID string) (*Payment, error)
}

type service struct {
	repo     Repository
	bookings BookingSource
	client   InvoiceClient
	opts     Options
	log      *logger.Logger
}

// NewService creates a new payment service instance
func NewService(repo Repository, bookingSource BookingSource, client InvoiceClient, opts Options) Service {
	return &service{
		repo:     repo,
		bookings: bookingSource,
		client:   client,
		opts:     opts,
		log:      logger.GetDefault(),
	}
}

// CreateInvoice creates a hosted gateway invoice for the booking and records
// the pending payment. Repeated calls for the same booking return the
// existing payment instead of invoicing twice.
func (s *service) CreateInvoice(ctx context.Context, userID string, req CreatePaymentRequest) (*Payment, error) {
	if !s.client.Configured() {
		return nil, ErrNotConfigured
	}

	booking, err := s.bookings.GetByIDWithRelations(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, bookings.ErrForbidden
	}

	if existing, err := s.repo.GetByBookingID(ctx, booking.ID); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	invoice, err := s.client.CreateInvoice(ctx, s.buildInvoiceRequest(booking, req.PaymentMethod))
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway invoice: %w", err)
	}
	if invoice.ID == "" || invoice.InvoiceURL == "" {
		return nil, ErrInvalidGatewayResponse
	}

	payment := &Payment{
		BookingID:  booking.ID,
		XenditID:   invoice.ID,
		InvoiceURL: invoice.InvoiceURL,
		Amount:     booking.TotalAmount,
		Method:     "XENDIT_INVOICE",
		Status:     bookings.PaymentStatusPending,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *service) buildInvoiceRequest(booking *bookings.Booking, paymentMethod string) xendit.CreateInvoiceRequest {
	request := xendit.CreateInvoiceRequest{
		ExternalID:         fmt.Sprintf("booking-%s-%d", booking.ID, time.Now().UnixMilli()),
		Amount:             booking.TotalAmount,
		Description:        fmt.Sprintf("Bus ticket from %s", routeLabel(booking)),
		Currency:           "IDR",
		SuccessRedirectURL: fmt.Sprintf("%s/payment/success?bookingId=%s", s.opts.AppURL, booking.ID),
		FailureRedirectURL: fmt.Sprintf("%s/payment/failed?bookingId=%s", s.opts.AppURL, booking.ID),
		Metadata: map[string]interface{}{
			"booking_id":               booking.ID,
			"user_id":                  booking.UserID,
			"schedule_id":              booking.ScheduleID,
			"preferred_payment_method": paymentMethod,
		},
		PaymentMethods: gatewayChannels(paymentMethod),
	}

	if booking.User != nil {
		request.Customer = &xendit.Customer{
			GivenNames:   booking.User.Name,
			Email:        booking.User.Email,
			MobileNumber: booking.User.Phone,
		}
	}

	seats := int64(len(booking.SeatIDs))
	perSeat := booking.TotalAmount
	if seats > 0 {
		perSeat = booking.TotalAmount / seats
	}
	request.Items = []xendit.InvoiceItem{{
		Name:     routeLabel(booking),
		Quantity: len(booking.SeatIDs),
		Price:    perSeat,
		Category: "Transportation",
	}}

	return request
}

// routeLabel renders "Origin to Destination" for invoice copy. Relations are
// preloaded by the booking lookup; the fallback only covers corrupt rows.
func routeLabel(booking *bookings.Booking) string {
	if booking.Schedule != nil && booking.Schedule.Route != nil {
		route := booking.Schedule.Route
		return fmt.Sprintf("%s to %s", route.Origin, route.Destination)
	}
	return fmt.Sprintf("booking %s", booking.ID)
}

// gatewayChannels maps the client-facing payment method to the gateway's
// channel codes. Empty means the hosted page offers every enabled method.
func gatewayChannels(method string) []string {
	switch method {
	case "credit_card":
		return []string{"CREDIT_CARD"}
	case "gopay":
		return []string{"GOPAY"}
	case "ovo":
		return []string{"OVO"}
	case "dana":
		return []string{"DANA"}
	case "qris":
		return []string{"QRIS"}
	case "bank_transfer":
		return []string{"BCA", "MANDIRI", "BNI", "BRI"}
	default:
		return nil
	}
}

// HandleWebhook reconciles a gateway invoice callback with the local payment
// and booking, and reports the resulting state. Replays and out-of-order
// deliveries are safe: terminal payment states never change, and an unchanged
// status is a no-op. The callback token is enforced only in production.
func (s *service) HandleWebhook(ctx context.Context, token string, payload WebhookPayload) (*WebhookResult, error) {
	switch {
	case s.opts.Production:
		if s.opts.WebhookToken == "" || token != s.opts.WebhookToken {
			return nil, ErrInvalidToken
		}
	case s.opts.WebhookToken == "":
		s.log.WarnContext(ctx, "Webhook token verification skipped: no token configured")
	case token != s.opts.WebhookToken:
		s.log.WarnContext(ctx, "Webhook token mismatch ignored outside production")
	}

	s.log.LogWebhookReceived(ctx, payload.ID, payload.Status)

	payment, err := s.repo.GetByXenditID(ctx, payload.ID)
	if err != nil {
		return nil, err
	}

	result := &WebhookResult{PaymentID: payment.ID, BookingID: payment.BookingID}

	if isTerminal(payment.Status) {
		result.PaymentStatus = payment.Status
		result.BookingStatus = bookingStatusFor(payment.Status)
		return result, nil
	}

	outcome := mapGatewayStatus(payload.Status)
	if !outcome.Known {
		s.log.LogUnknownGatewayStatus(ctx, payload.ID, payload.Status)
	}

	result.PaymentStatus = outcome.Payment
	result.BookingStatus = outcome.Booking

	if outcome.Payment == payment.Status {
		return result, nil
	}

	if err := s.repo.UpdateStatusWithBooking(ctx, payment, outcome.Payment, outcome.Booking); err != nil {
		return nil, err
	}
	return result, nil
}

// SimulateWebhook applies a successful payment to a booking's invoice the
// same way a real paid callback would. Development helper only.
func (s *service) SimulateWebhook(ctx context.Context, bookingID string) error {
	payment, err := s.repo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return err
	}
	if isTerminal(payment.Status) {
		return nil
	}
	outcome := mapGatewayStatus("PAID")
	return s.repo.UpdateStatusWithBooking(ctx, payment, outcome.Payment, outcome.Booking)
}

func (s *service) GetByBookingID(ctx context.Context, userID, bookingID string) (*Payment, error) {
	booking, err := s.bookings.GetByIDWithRelations(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, bookings.ErrForbidden
	}
	return s.repo.GetByBookingID(ctx, bookingID)
}
