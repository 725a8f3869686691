package schedules

import (
	"testing"
	"time"

	"tiketbus/internal/buses"
	"tiketbus/internal/routes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRouteID = "11111111-1111-1111-1111-111111111111"
	testBusID   = "22222222-2222-2222-2222-222222222222"
)

func TestCandidateKeyRoundTrip(t *testing.T) {
	key := CandidateKey{RouteID: testRouteID, BusID: testBusID, SlotIndex: 3}
	id := key.ID()

	assert.Equal(t, "generated-"+testRouteID+"-"+testBusID+"-3", id)

	parsed, ok := ParseCandidateID(id)
	require.True(t, ok)
	assert.Equal(t, key, parsed)
}

func TestParseCandidateIDRejectsMalformedIDs(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"plain uuid", testRouteID},
		{"missing slot", "generated-" + testRouteID + "-" + testBusID},
		{"non numeric slot", "generated-" + testRouteID + "-" + testBusID + "-x"},
		{"truncated bus id", "generated-" + testRouteID + "-2222-0"},
		{"wrong prefix", "schedule-" + testRouteID + "-" + testBusID + "-0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseCandidateID(tt.id)
			assert.False(t, ok)
		})
	}
}

func TestFareMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, FareMultiplier("AC"))
	assert.Equal(t, 1.2, FareMultiplier("Executive"))
	assert.Equal(t, 1.4, FareMultiplier("Sleeper"))
	// Sleeper wins when a type matches both.
	assert.Equal(t, 1.4, FareMultiplier("Executive Sleeper"))
}

func TestBuildCandidateDepartureSlots(t *testing.T) {
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	route := &routes.Route{ID: testRouteID, Origin: "Surabaya", Destination: "Malang", Duration: 120, BaseFare: 100000}
	bus := &buses.Bus{ID: testBusID, Operator: "Sinar Jaya", Type: "AC", TotalSeats: 40}

	tests := []struct {
		slot       int
		wantHour   int
		wantMinute int
	}{
		{0, 7, 0},
		{1, 9, 15},
		{2, 11, 30},
		{3, 13, 45},
		{4, 16, 0}, // the 60 minute stagger rolls into the next hour
	}

	for _, tt := range tests {
		candidate := BuildCandidate(route, bus, tt.slot, day)
		assert.Equal(t, tt.wantHour, candidate.DepartureTime.Hour(), "slot %d hour", tt.slot)
		assert.Equal(t, tt.wantMinute, candidate.DepartureTime.Minute(), "slot %d minute", tt.slot)
	}

	candidate := BuildCandidate(route, bus, 1, day)
	assert.Equal(t, candidate.DepartureTime.Add(2*time.Hour), candidate.ArrivalTime)
}

func TestBuildCandidateJakartaStartsEarlier(t *testing.T) {
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	route := &routes.Route{ID: testRouteID, Origin: "Jakarta", Destination: "Bandung", Duration: 180, BaseFare: 150000}
	bus := &buses.Bus{ID: testBusID, Operator: "Primajasa", Type: "AC", TotalSeats: 40}

	first := BuildCandidate(route, bus, 0, day)
	assert.Equal(t, 6, first.DepartureTime.Hour())

	second := BuildCandidate(route, bus, 1, day)
	assert.Equal(t, 9, second.DepartureTime.Hour())
	assert.Equal(t, 15, second.DepartureTime.Minute())
}

func TestBuildCandidateFares(t *testing.T) {
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	route := &routes.Route{ID: testRouteID, Origin: "Jakarta", Destination: "Bandung", BaseFare: 150000}

	standard := BuildCandidate(route, &buses.Bus{ID: testBusID, Type: "AC", TotalSeats: 40}, 0, day)
	assert.Equal(t, int64(150000), standard.Fare)

	executive := BuildCandidate(route, &buses.Bus{ID: testBusID, Type: "Executive", TotalSeats: 30}, 0, day)
	assert.Equal(t, int64(180000), executive.Fare)

	sleeper := BuildCandidate(route, &buses.Bus{ID: testBusID, Type: "Sleeper", TotalSeats: 20}, 0, day)
	assert.Equal(t, int64(210000), sleeper.Fare)

	// Odd base fares round to the nearest rupiah.
	oddRoute := &routes.Route{ID: testRouteID, Origin: "Solo", Destination: "Semarang", BaseFare: 99999}
	odd := BuildCandidate(oddRoute, &buses.Bus{ID: testBusID, Type: "Executive", TotalSeats: 30}, 0, day)
	assert.Equal(t, int64(119999), odd.Fare)
}

func TestBuildCandidateDefaultDuration(t *testing.T) {
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	route := &routes.Route{ID: testRouteID, Origin: "Solo", Destination: "Semarang", Duration: 0, BaseFare: 80000}
	bus := &buses.Bus{ID: testBusID, Type: "AC", TotalSeats: 40}

	candidate := BuildCandidate(route, bus, 0, day)
	assert.Equal(t, candidate.DepartureTime.Add(3*time.Hour), candidate.ArrivalTime)
}

func TestBuildCandidateIsDeterministic(t *testing.T) {
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	route := &routes.Route{ID: testRouteID, Origin: "Jakarta", Destination: "Bandung", Duration: 180, BaseFare: 150000}
	bus := &buses.Bus{ID: testBusID, Type: "Executive", TotalSeats: 30}

	first := BuildCandidate(route, bus, 2, day)
	second := BuildCandidate(route, bus, 2, day)
	assert.Equal(t, first, second)
}
