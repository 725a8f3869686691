package bookings

import (
	"context"
	"testing"
	"time"

	"tiketbus/internal/schedules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUserID     = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	testOtherUser  = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
	testScheduleID = "generated-11111111-1111-1111-1111-111111111111-22222222-2222-2222-2222-222222222222-0"
)

type fakeScheduleService struct {
	schedule     *schedules.Schedule
	err          error
	materialized int
	lastDate     *time.Time
}

func (f *fakeScheduleService) ListCandidates(_ context.Context, _ schedules.CandidateQuery) ([]schedules.Schedule, error) {
	return nil, nil
}

func (f *fakeScheduleService) Materialize(_ context.Context, _ string, travelDate *time.Time) (*schedules.Schedule, error) {
	f.materialized++
	f.lastDate = travelDate
	if f.err != nil {
		return nil, f.err
	}
	return f.schedule, nil
}

func (f *fakeScheduleService) GetSchedule(_ context.Context, _ string, _ *time.Time) (*schedules.Schedule, error) {
	return f.schedule, f.err
}

type fakeBookingRepo struct {
	bookings  map[string]*Booking
	createErr error
	cancelErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]*Booking{}}
}

func (r *fakeBookingRepo) CreateWithSeatCheck(_ context.Context, booking *Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	booking.ID = "cccccccc-cccc-cccc-cccc-cccccccccccc"
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, bookingID string) (*Booking, error) {
	if r.cancelErr != nil {
		return nil, r.cancelErr
	}
	booking, ok := r.bookings[bookingID]
	if !ok {
		return nil, ErrNotFound
	}
	if booking.Status == BookingStatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	booking.Status = BookingStatusCancelled
	booking.PaymentStatus = PaymentStatusRefunded
	return booking, nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return booking, nil
}

func (r *fakeBookingRepo) GetByIDWithRelations(ctx context.Context, id string) (*Booking, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeBookingRepo) ListByUser(_ context.Context, userID string) ([]Booking, error) {
	var results []Booking
	for _, booking := range r.bookings {
		if booking.UserID == userID {
			results = append(results, *booking)
		}
	}
	return results, nil
}

func (r *fakeBookingRepo) ListBookedSeats(_ context.Context, scheduleID string) ([]string, error) {
	seats := make([]string, 0)
	for _, booking := range r.bookings {
		if booking.ScheduleID != scheduleID || booking.Status == BookingStatusCancelled {
			continue
		}
		seats = append(seats, booking.SeatIDs...)
	}
	return seats, nil
}

func bookingFixture() (*fakeBookingRepo, *fakeScheduleService, Service) {
	repo := newFakeBookingRepo()
	scheduleSvc := &fakeScheduleService{
		schedule: &schedules.Schedule{
			ID:             testScheduleID,
			AvailableSeats: 40,
			Fare:           180000,
		},
	}
	return repo, scheduleSvc, NewService(repo, scheduleSvc)
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		ScheduleID: testScheduleID,
		SeatIDs:    []string{"A1", "A2"},
		Passengers: []Passenger{
			{Name: "Budi Santoso", Age: 34, Gender: "male"},
			{Name: "Siti Rahma", Age: 29, Gender: "female"},
		},
	}
}

func TestCreateBookingMaterializesScheduleAndPrices(t *testing.T) {
	repo, scheduleSvc, svc := bookingFixture()

	booking, err := svc.Create(context.Background(), testUserID, validRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, scheduleSvc.materialized)
	assert.Equal(t, testScheduleID, booking.ScheduleID)
	assert.Equal(t, int64(360000), booking.TotalAmount, "fare times seat count")
	assert.Equal(t, BookingStatusPending, booking.Status)
	assert.Equal(t, PaymentStatusPending, booking.PaymentStatus)
	assert.Len(t, repo.bookings, 1)
}

func TestCreateBookingPassesTravelDateThrough(t *testing.T) {
	_, scheduleSvc, svc := bookingFixture()

	travel := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	req := validRequest()
	req.TravelDate = &travel

	_, err := svc.Create(context.Background(), testUserID, req)
	require.NoError(t, err)
	require.NotNil(t, scheduleSvc.lastDate)
	assert.True(t, scheduleSvc.lastDate.Equal(travel))
}

func TestCreateBookingRejectsPassengerMismatch(t *testing.T) {
	_, scheduleSvc, svc := bookingFixture()

	req := validRequest()
	req.Passengers = req.Passengers[:1]

	_, err := svc.Create(context.Background(), testUserID, req)
	assert.ErrorIs(t, err, ErrPassengerMismatch)
	assert.Zero(t, scheduleSvc.materialized, "validation happens before any lookup")
}

func TestCreateBookingPropagatesScheduleNotFound(t *testing.T) {
	_, scheduleSvc, svc := bookingFixture()
	scheduleSvc.err = schedules.ErrNotFound

	_, err := svc.Create(context.Background(), testUserID, validRequest())
	assert.ErrorIs(t, err, schedules.ErrNotFound)
}

func TestCreateBookingPropagatesSeatErrors(t *testing.T) {
	repo, _, svc := bookingFixture()
	repo.createErr = ErrSeatConflict

	_, err := svc.Create(context.Background(), testUserID, validRequest())
	assert.ErrorIs(t, err, ErrSeatConflict)

	repo.createErr = ErrInsufficientSeats
	_, err = svc.Create(context.Background(), testUserID, validRequest())
	assert.ErrorIs(t, err, ErrInsufficientSeats)
}

func TestCancelBookingReleasesSeats(t *testing.T) {
	repo, _, svc := bookingFixture()

	booking, err := svc.Create(context.Background(), testUserID, validRequest())
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), testUserID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, BookingStatusCancelled, cancelled.Status)
	assert.Equal(t, PaymentStatusRefunded, cancelled.PaymentStatus)

	seats, err := repo.ListBookedSeats(context.Background(), testScheduleID)
	require.NoError(t, err)
	assert.Empty(t, seats)
}

func TestCancelBookingTwiceFails(t *testing.T) {
	_, _, svc := bookingFixture()

	booking, err := svc.Create(context.Background(), testUserID, validRequest())
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), testUserID, booking.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), testUserID, booking.ID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancelBookingRequiresOwnership(t *testing.T) {
	_, _, svc := bookingFixture()

	booking, err := svc.Create(context.Background(), testUserID, validRequest())
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), testOtherUser, booking.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetBookingRequiresOwnership(t *testing.T) {
	_, _, svc := bookingFixture()

	booking, err := svc.Create(context.Background(), testUserID, validRequest())
	require.NoError(t, err)

	fetched, err := svc.GetByID(context.Background(), testUserID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, fetched.ID)

	_, err = svc.GetByID(context.Background(), testOtherUser, booking.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetByID(context.Background(), testUserID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
