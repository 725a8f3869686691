package schedules

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"tiketbus/internal/buses"
	"tiketbus/internal/routes"
	"tiketbus/pkg/logger"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a schedule id resolves to nothing: no concrete
// row, and either a malformed candidate id or a route/bus that does not exist.
var ErrNotFound = errors.New("schedule not found")

// CandidateQuery selects the routes to generate candidates for. Either
// RouteID or both Origin and Destination must be set.
type CandidateQuery struct {
	RouteID     string
	Origin      string
	Destination string
	Date        *time.Time
}

// Service generates candidate schedules on the fly and lazily persists them
// the first time a booking or direct lookup references one.
type Service interface {
	ListCandidates(ctx context.Context, query CandidateQuery) ([]Schedule, error)
	Materialize(ctx context.Context, scheduleID string, travelDate *time.Time) (*Schedule, error)
	GetSchedule(ctx context.Context, scheduleID string, travelDate *time.Time) (*Schedule, error)
}

type service struct {
	repo      Repository
	busRepo   buses.Repository
	routeRepo routes.Repository
	clock     Clock
	log       *logger.Logger
}

// NewService creates a new schedule service instance
func NewService(repo Repository, busRepo buses.Repository, routeRepo routes.Repository, clock Clock) Service {
	return &service{
		repo:      repo,
		busRepo:   busRepo,
		routeRepo: routeRepo,
		clock:     clock,
		log:       logger.GetDefault(),
	}
}

// ListCandidates computes candidate departures for the matching routes on the
// requested date. Pure read: nothing is persisted, but available seats are
// reduced by confirmed bookings already recorded under each candidate id.
func (s *service) ListCandidates(ctx context.Context, query CandidateQuery) ([]Schedule, error) {
	matched, err := s.resolveRoutes(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		return []Schedule{}, nil
	}

	fleet, err := s.busRepo.ListOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list buses: %w", err)
	}
	if len(fleet) == 0 {
		return []Schedule{}, nil
	}

	day := s.travelDay(query.Date)

	candidates := make([]Schedule, 0, len(matched)*maxSlotsPerRoute)
	for i := range matched {
		route := &matched[i]

		slots := maxSlotsPerRoute
		if len(fleet) < slots {
			slots = len(fleet)
		}

		for slot := 0; slot < slots; slot++ {
			bus := &fleet[slot%len(fleet)]
			candidate := BuildCandidate(route, bus, slot, day)

			booked, err := s.repo.CountConfirmedSeats(ctx, candidate.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to count booked seats: %w", err)
			}
			candidate.AvailableSeats = clampSeats(bus.TotalSeats, booked)

			candidates = append(candidates, candidate)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].DepartureTime.Equal(candidates[j].DepartureTime) {
			return candidates[i].ID < candidates[j].ID
		}
		return candidates[i].DepartureTime.Before(candidates[j].DepartureTime)
	})

	return candidates, nil
}

// Materialize turns a candidate id into a concrete schedule row. Idempotent:
// an existing row is returned unchanged. Available seats are recomputed from
// confirmed bookings at materialization time; departure, arrival and fare come
// from the same formula the search listing used.
func (s *service) Materialize(ctx context.Context, scheduleID string, travelDate *time.Time) (*Schedule, error) {
	existing, err := s.repo.GetByID(ctx, scheduleID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up schedule: %w", err)
	}

	key, ok := ParseCandidateID(scheduleID)
	if !ok {
		return nil, ErrNotFound
	}

	route, err := s.routeRepo.GetByID(ctx, key.RouteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up route: %w", err)
	}

	bus, err := s.busRepo.GetByID(ctx, key.BusID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up bus: %w", err)
	}

	// No explicit travel date means the booking is for tomorrow.
	var day time.Time
	if travelDate != nil {
		day = *travelDate
	} else {
		day = s.clock.Now().AddDate(0, 0, 1)
	}

	candidate := BuildCandidate(route, bus, key.SlotIndex, day)

	booked, err := s.repo.CountConfirmedSeats(ctx, candidate.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count booked seats: %w", err)
	}
	candidate.AvailableSeats = clampSeats(bus.TotalSeats, booked)

	if err := s.repo.Create(ctx, &candidate); err != nil {
		// A concurrent request materialized the same candidate first;
		// its row is the authoritative one.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.repo.GetByID(ctx, scheduleID)
		}
		return nil, fmt.Errorf("failed to materialize schedule: %w", err)
	}

	s.log.LogScheduleMaterialized(ctx, candidate.ID)
	return &candidate, nil
}

// GetSchedule resolves a schedule id (materializing a candidate if needed)
// and returns it with bus, seats and route attached.
func (s *service) GetSchedule(ctx context.Context, scheduleID string, travelDate *time.Time) (*Schedule, error) {
	if _, err := s.Materialize(ctx, scheduleID, travelDate); err != nil {
		return nil, err
	}
	return s.repo.GetByIDWithDetails(ctx, scheduleID)
}

func (s *service) resolveRoutes(ctx context.Context, query CandidateQuery) ([]routes.Route, error) {
	if query.RouteID != "" {
		route, err := s.routeRepo.GetByID(ctx, query.RouteID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to look up route: %w", err)
		}
		return []routes.Route{*route}, nil
	}

	matched, err := s.routeRepo.Search(ctx, query.Origin, query.Destination)
	if err != nil {
		return nil, fmt.Errorf("failed to search routes: %w", err)
	}
	return matched, nil
}

// travelDay normalizes the requested date to midnight and clamps past dates
// to today.
func (s *service) travelDay(requested *time.Time) time.Time {
	today := dateOnly(s.clock.Now())
	if requested == nil {
		return today
	}
	day := dateOnly(*requested)
	if day.Before(today) {
		return today
	}
	return day
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func clampSeats(total, booked int) int {
	available := total - booked
	if available < 0 {
		return 0
	}
	return available
}
