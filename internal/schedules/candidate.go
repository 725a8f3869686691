package schedules

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tiketbus/internal/buses"
	"tiketbus/internal/routes"
)

const (
	// CandidateIDPrefix marks schedule ids derived from a route+bus+slot
	// combination rather than seeded rows.
	CandidateIDPrefix = "generated-"

	// defaultDurationMinutes is used when a route has no recorded duration.
	defaultDurationMinutes = 180

	// maxSlotsPerRoute caps how many candidate departures a route gets.
	maxSlotsPerRoute = 5

	// slotStaggerMinutes spreads departures within the hour per slot.
	slotStaggerMinutes = 15
)

var candidateIDPattern = regexp.MustCompile(
	`^generated-([0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})-([0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})-(\d+)$`)

// CandidateKey identifies a virtual schedule: a route, a bus and a departure
// slot. It is the typed form of the synthesized id; the string form only
// exists at the storage and HTTP boundary.
type CandidateKey struct {
	RouteID   string
	BusID     string
	SlotIndex int
}

// ID renders the key as the stable string id used in search results and as
// the primary key of the materialized row.
func (k CandidateKey) ID() string {
	return fmt.Sprintf("%s%s-%s-%d", CandidateIDPrefix, k.RouteID, k.BusID, k.SlotIndex)
}

// ParseCandidateID parses a synthesized schedule id back into its key.
// Returns false for anything that is not a well-formed candidate id.
func ParseCandidateID(id string) (CandidateKey, bool) {
	m := candidateIDPattern.FindStringSubmatch(id)
	if m == nil {
		return CandidateKey{}, false
	}
	slot, err := strconv.Atoi(m[3])
	if err != nil {
		return CandidateKey{}, false
	}
	return CandidateKey{RouteID: m[1], BusID: m[2], SlotIndex: slot}, true
}

// IsCandidateID reports whether the id looks like a synthesized schedule id.
func IsCandidateID(id string) bool {
	return strings.HasPrefix(id, CandidateIDPrefix)
}

// FareMultiplier returns the fare multiplier for a bus type. Sleeper is
// checked after Executive and wins when a type matches both.
func FareMultiplier(busType string) float64 {
	multiplier := 1.0
	if strings.Contains(busType, "Executive") {
		multiplier = 1.2
	}
	if strings.Contains(busType, "Sleeper") {
		multiplier = 1.4
	}
	return multiplier
}

// BuildCandidate computes the departure, arrival and fare for a candidate
// slot on the given travel day. This is the single formula shared by the
// search listing and materialization; both sides must agree on what the
// user saw, so neither may compute these values any other way.
func BuildCandidate(route *routes.Route, bus *buses.Bus, slot int, day time.Time) Schedule {
	// Jakarta departures start earlier and spread wider across the day.
	baseHour := 7 + 2*slot
	if strings.Contains(strings.ToLower(route.Origin), "jakarta") {
		baseHour = 6 + 3*slot
	}
	departureHour := baseHour % 24

	departure := time.Date(day.Year(), day.Month(), day.Day(),
		departureHour, slot*slotStaggerMinutes, 0, 0, day.Location())

	duration := route.Duration
	if duration <= 0 {
		duration = defaultDurationMinutes
	}
	arrival := departure.Add(time.Duration(duration) * time.Minute)

	fare := int64(math.Round(float64(route.BaseFare) * FareMultiplier(bus.Type)))

	key := CandidateKey{RouteID: route.ID, BusID: bus.ID, SlotIndex: slot}
	return Schedule{
		ID:             key.ID(),
		BusID:          bus.ID,
		RouteID:        route.ID,
		DepartureTime:  departure,
		ArrivalTime:    arrival,
		AvailableSeats: bus.TotalSeats,
		Fare:           fare,
		Bus:            bus,
		Route:          route,
	}
}
