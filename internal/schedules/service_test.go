package schedules

import (
	"context"
	"strings"
	"testing"
	"time"

	"tiketbus/internal/buses"
	"tiketbus/internal/routes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

type fakeScheduleRepo struct {
	rows       map[string]Schedule
	confirmed  map[string]int
	createHook func(*Schedule) error
	creates    int
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{rows: map[string]Schedule{}, confirmed: map[string]int{}}
}

func (r *fakeScheduleRepo) GetByID(_ context.Context, id string) (*Schedule, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *fakeScheduleRepo) GetByIDWithDetails(ctx context.Context, id string) (*Schedule, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeScheduleRepo) Create(_ context.Context, schedule *Schedule) error {
	r.creates++
	if r.createHook != nil {
		if err := r.createHook(schedule); err != nil {
			return err
		}
	}
	r.rows[schedule.ID] = *schedule
	return nil
}

func (r *fakeScheduleRepo) CountConfirmedSeats(_ context.Context, scheduleID string) (int, error) {
	return r.confirmed[scheduleID], nil
}

type fakeBusRepo struct {
	fleet []buses.Bus
}

func (r *fakeBusRepo) ListOrdered(_ context.Context) ([]buses.Bus, error) {
	return r.fleet, nil
}

func (r *fakeBusRepo) GetByID(_ context.Context, id string) (*buses.Bus, error) {
	for i := range r.fleet {
		if r.fleet[i].ID == id {
			return &r.fleet[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBusRepo) Create(_ context.Context, _ *buses.Bus) error { return nil }

type fakeRouteRepo struct {
	routes []routes.Route
}

func (r *fakeRouteRepo) GetByID(_ context.Context, id string) (*routes.Route, error) {
	for i := range r.routes {
		if r.routes[i].ID == id {
			return &r.routes[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRouteRepo) Search(_ context.Context, origin, destination string) ([]routes.Route, error) {
	var matched []routes.Route
	for _, route := range r.routes {
		if (origin == "" || containsFold(route.Origin, origin)) &&
			(destination == "" || containsFold(route.Destination, destination)) {
			matched = append(matched, route)
		}
	}
	return matched, nil
}

func (r *fakeRouteRepo) Create(_ context.Context, _ *routes.Route) error { return nil }

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func testFixture() (*fakeScheduleRepo, *fakeBusRepo, *fakeRouteRepo, fakeClock) {
	repo := newFakeScheduleRepo()
	busRepo := &fakeBusRepo{fleet: []buses.Bus{
		{ID: "22222222-2222-2222-2222-222222222222", Operator: "Primajasa", Type: "AC", TotalSeats: 40},
		{ID: "33333333-3333-3333-3333-333333333333", Operator: "Rosalia Indah", Type: "Executive", TotalSeats: 30},
	}}
	routeRepo := &fakeRouteRepo{routes: []routes.Route{
		{ID: "11111111-1111-1111-1111-111111111111", Origin: "Jakarta", Destination: "Bandung", Duration: 180, BaseFare: 150000},
		{ID: "44444444-4444-4444-4444-444444444444", Origin: "Surabaya", Destination: "Malang", Duration: 120, BaseFare: 80000},
	}}
	clock := fakeClock{now: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}
	return repo, busRepo, routeRepo, clock
}

func TestListCandidatesIsDeterministic(t *testing.T) {
	repo, busRepo, routeRepo, clock := testFixture()
	svc := NewService(repo, busRepo, routeRepo, clock)

	query := CandidateQuery{Origin: "jakarta", Destination: "bandung"}

	first, err := svc.ListCandidates(context.Background(), query)
	require.NoError(t, err)
	second, err := svc.ListCandidates(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first, 2, "two buses cap the route at two slots")
}

func TestListCandidatesSortedByDeparture(t *testing.T) {
	repo, busRepo, routeRepo, clock := testFixture()
	svc := NewService(repo, busRepo, routeRepo, clock)

	candidates, err := svc.ListCandidates(context.Background(), CandidateQuery{Origin: "a"})
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	for i := 1; i < len(candidates); i++ {
		assert.False(t, candidates[i].DepartureTime.Before(candidates[i-1].DepartureTime))
	}
}

func TestListCandidatesClampsPastDates(t *testing.T) {
	repo, busRepo, routeRepo, clock := testFixture()
	svc := NewService(repo, busRepo, routeRepo, clock)

	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	candidates, err := svc.ListCandidates(context.Background(), CandidateQuery{
		RouteID: "11111111-1111-1111-1111-111111111111",
		Date:    &past,
	})
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	for _, candidate := range candidates {
		assert.Equal(t, clock.now.Year(), candidate.DepartureTime.Year())
		assert.Equal(t, clock.now.Month(), candidate.DepartureTime.Month())
		assert.Equal(t, clock.now.Day(), candidate.DepartureTime.Day())
	}
}

func TestListCandidatesSubtractsConfirmedSeats(t *testing.T) {
	repo, busRepo, routeRepo, clock := testFixture()
	svc := NewService(repo, busRepo, routeRepo, clock)

	key := CandidateKey{
		RouteID:   "11111111-1111-1111-1111-111111111111",
		BusID:     "22222222-2222-2222-2222-222222222222",
		SlotIndex: 0,
	}
	repo.confirmed[key.ID()] = 3

	candidates, err := svc.ListCandidates(context.Background(), CandidateQuery{RouteID: key.RouteID})
	require.NoError(t, err)

	var found bool
	for _, candidate := range candidates {
		if candidate.ID == key.ID() {
			found = true
			assert.Equal(t, 37, candidate.AvailableSeats)
		}
	}
	assert.True(t, found)
}

func TestListCandidatesFloorsAvailabilityAtZero(t *testing.T) {
	repo, busRepo, routeRepo, clock := testFixture()
	svc := NewService(repo, busRepo, routeRepo, clock)

	key := CandidateKey{
		RouteID:   "11111111-1111-1111-1111-111111111111",
		BusID:     "22222222-2222-2222-2222-222222222222",
		SlotIndex: 0,
	}
	repo.confirmed[key.ID()] = 100

	candidates, err := svc.ListCandidates(context.Background(), CandidateQuery{RouteID: key.RouteID})
	require.NoError(t, err)

	for _, candidate := range candidates {
		if candidate.ID == key.ID() {
			assert.Equal(t, 0, candidate.AvailableSeats)
		}
	}
}

func TestListCandidatesUnknownRouteReturnsEmpty(t *testing.T) {
	repo, busRepo, routeRepo, clock := testFixture()
	svc := NewService(repo, busRepo, routeRepo, clock)

	candidates, err := svc.ListCandidates(context.Background(), CandidateQuery{
		RouteID: "99999999-9999-9999-9999-999999999999",
	})
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestMaterializeCreatesRowOnce(t *testing.T) {
	repo, busRepo, routeRepo, clock := testFixture()
	svc := NewService(repo, busRepo, routeRepo, clock)

	key := CandidateKey{
		RouteID:   "11111111-1111-1111-1111-111111111111",
		BusID:     "22222222-2222-2222-2222-222222222222",
		SlotIndex: 1,
	}

	first, err := svc.Materialize(context.Background(), key.ID(), nil)
	require.NoError(t, err)
	assert.Equal(t, key.ID(), first.ID)
	assert.Equal(t, 40, first.AvailableSeats)
	// No travel date defaults to tomorrow.
	assert.Equal(t, clock.now.Day()+1, first.DepartureTime.Day())
	assert.Equal(t, 9, first.DepartureTime.Hour())
	assert.Equal(t, 15, first.DepartureTime.Minute())

	second, err := svc.Materialize(context.Background(), key.ID(), nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, repo.creates, "existing row must be returned unchanged")
}

func TestMaterializeHonorsTravelDate(t *testing.T) {
	repo, busRepo, routeRepo, clock := testFixture()
	svc := NewService(repo, busRepo, routeRepo, clock)

	key := CandidateKey{
		RouteID:   "44444444-4444-4444-4444-444444444444",
		BusID:     "33333333-3333-3333-3333-333333333333",
		SlotIndex: 0,
	}
	travel := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	schedule, err := svc.Materialize(context.Background(), key.ID(), &travel)
	require.NoError(t, err)
	assert.Equal(t, 10, schedule.DepartureTime.Day())
	assert.Equal(t, 7, schedule.DepartureTime.Hour())
	assert.Equal(t, int64(96000), schedule.Fare)
}

func TestMaterializeRejectsUnknownIDs(t *testing.T) {
	repo, busRepo, routeRepo, clock := testFixture()
	svc := NewService(repo, busRepo, routeRepo, clock)

	_, err := svc.Materialize(context.Background(), "not-a-schedule", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	ghost := CandidateKey{
		RouteID:   "99999999-9999-9999-9999-999999999999",
		BusID:     "22222222-2222-2222-2222-222222222222",
		SlotIndex: 0,
	}
	_, err = svc.Materialize(context.Background(), ghost.ID(), nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMaterializeSurvivesCreateRace(t *testing.T) {
	repo, busRepo, routeRepo, clock := testFixture()
	svc := NewService(repo, busRepo, routeRepo, clock)

	key := CandidateKey{
		RouteID:   "11111111-1111-1111-1111-111111111111",
		BusID:     "22222222-2222-2222-2222-222222222222",
		SlotIndex: 0,
	}

	// Another request wins the insert between our lookup and create.
	repo.createHook = func(schedule *Schedule) error {
		repo.rows[key.ID()] = Schedule{ID: key.ID(), AvailableSeats: 12}
		return gorm.ErrDuplicatedKey
	}

	schedule, err := svc.Materialize(context.Background(), key.ID(), nil)
	require.NoError(t, err)
	assert.Equal(t, 12, schedule.AvailableSeats)
}
