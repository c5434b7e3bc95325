package graph

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttpr0/go-raptor/comps"
	"github.com/ttpr0/go-raptor/raptor"
	"github.com/ttpr0/go-raptor/structs"
	. "github.com/ttpr0/go-raptor/util"
)

func tripTimes(id string, times ...int32) structs.TripTimes {
	return structs.TripTimes{TripID: id, Arrivals: times, Departures: times}
}

func newPattern(route string, mode structs.TransitMode, stops ...int32) comps.Pattern {
	flags := NewArray[byte](len(stops))
	flags.Fill(comps.BOARDING_ALLOWED | comps.ALIGHTING_ALLOWED)
	return comps.Pattern{RouteID: route, Mode: mode, Stops: stops, Flags: flags}
}

// A -L1-> B -L2-> C -L3-> D
func newTestTransit(constraints ...structs.ConstrainedTransfer) *comps.Transit {
	stops := Array[structs.Stop]{
		{ID: "A", Name: "A", Loc: orb.Point{8.0, 50.0}},
		{ID: "B", Name: "B", Loc: orb.Point{8.001, 50.0}},
		{ID: "C", Name: "C", Loc: orb.Point{8.01, 50.0}},
		{ID: "D", Name: "D", Loc: orb.Point{8.1, 50.0}},
	}
	patterns := Array[comps.Pattern]{
		newPattern("L1", structs.BUS, 0, 1),
		newPattern("L2", structs.TRAM, 1, 2),
		newPattern("L3", structs.RAIL, 2, 3),
	}
	trips := Array[Array[structs.TripTimes]]{
		{tripTimes("L1-0", 100, 200), tripTimes("L1-1", 300, 400)},
		{tripTimes("L2-0", 190, 290), tripTimes("L2-1", 210, 310), tripTimes("L2-2", 260, 360)},
		{tripTimes("L3-0", 500, 600)},
	}
	transfers := Array[structs.Transfer]{{From: 0, To: 1, Duration: 60}}
	return comps.NewTransit(stops, patterns, trips, transfers, constraints)
}

func constraint(from_trip, to_trip int32, typ structs.ConstraintType, min int32) structs.ConstrainedTransfer {
	return structs.ConstrainedTransfer{
		FromPattern: 0, FromTrip: from_trip, FromStopPos: 1,
		ToPattern: 1, ToTrip: to_trip, ToStopPos: 0,
		Constraint: structs.TransferConstraint{Type: typ, MinTransferTime: min},
	}
}

func collect(iter IIntIterator) []int32 {
	values := []int32{}
	for iter.HasNext() {
		values = append(values, iter.Next())
	}
	return values
}

func TestTransitDataRouteFilter(t *testing.T) {
	graph := NewTransitGraph(newTestTransit())

	tests := []struct {
		name   string
		filter RouteFilter
		stop   int32
		want   []int32
	}{
		{"all", RouteFilter{}, 1, []int32{0, 1}},
		{"banned", RouteFilter{BannedRoutes: []string{"L1"}}, 1, []int32{1}},
		{"modes", RouteFilter{Modes: []structs.TransitMode{structs.RAIL}}, 2, []int32{2}},
		{"no mode", RouteFilter{Modes: []structs.TransitMode{structs.FERRY}}, 2, []int32{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := NewTransitData(graph, tt.filter)
			require.NoError(t, data.Setup())
			got := collect(data.RouteIndexIterator(NewArrayIterator(Array[int32]{tt.stop})))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransitDataRoutes(t *testing.T) {
	data := NewTransitData(NewTransitGraph(newTestTransit()), RouteFilter{})
	require.NoError(t, data.Setup())

	assert.Equal(t, int32(4), data.StopCount())
	route := data.GetRouteForIndex(1)
	assert.Equal(t, int32(1), route.Pattern.PatternIndex())
	assert.Equal(t, int32(2), route.Pattern.NumberOfStopsInPattern())
	assert.Equal(t, int32(2), route.Pattern.StopIndex(1))
	assert.Equal(t, "tram L2", route.Pattern.DebugInfo())
	assert.Equal(t, int32(3), route.TimeTable.NumberOfTripSchedules())
	trip := route.TimeTable.GetTripSchedule(1)
	assert.Equal(t, "L2-1", trip.TripID())
	assert.Equal(t, int32(310), trip.Arrival(1))
	assert.Equal(t, int32(1), trip.Pattern().PatternIndex())

	assert.Len(t, data.GetTransfersFromStop(0), 1)
	assert.Len(t, data.GetTransfersToStop(1), 1)
	assert.Empty(t, data.GetTransfersToStop(0))
	assert.Nil(t, data.TransferConstraintsSearch(1, true))
}

func TestTransitDataSetupInconsistent(t *testing.T) {
	stops := Array[structs.Stop]{{ID: "A"}, {ID: "B"}}
	tests := []struct {
		name        string
		patterns    Array[comps.Pattern]
		trips       Array[Array[structs.TripTimes]]
		transfers   Array[structs.Transfer]
		constraints Array[structs.ConstrainedTransfer]
	}{
		{
			name:     "empty pattern",
			patterns: Array[comps.Pattern]{newPattern("L1", structs.BUS)},
			trips:    Array[Array[structs.TripTimes]]{{}},
		},
		{
			name:     "unknown stop",
			patterns: Array[comps.Pattern]{newPattern("L1", structs.BUS, 0, 5)},
			trips:    Array[Array[structs.TripTimes]]{{}},
		},
		{
			name:     "trip length",
			patterns: Array[comps.Pattern]{newPattern("L1", structs.BUS, 0, 1)},
			trips:    Array[Array[structs.TripTimes]]{{tripTimes("t", 100)}},
		},
		{
			name:      "negative transfer",
			patterns:  Array[comps.Pattern]{newPattern("L1", structs.BUS, 0, 1)},
			trips:     Array[Array[structs.TripTimes]]{{}},
			transfers: Array[structs.Transfer]{{From: 0, To: 1, Duration: -5}},
		},
		{
			name:        "constraint position",
			patterns:    Array[comps.Pattern]{newPattern("L1", structs.BUS, 0, 1)},
			trips:       Array[Array[structs.TripTimes]]{{}},
			constraints: Array[structs.ConstrainedTransfer]{{FromPattern: 0, FromStopPos: 4, ToPattern: 0, ToStopPos: 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transit := comps.NewTransit(stops, tt.patterns, tt.trips, tt.transfers, tt.constraints)
			data := NewTransitData(NewTransitGraph(transit), RouteFilter{})
			assert.ErrorIs(t, data.Setup(), raptor.ErrDataInconsistency)
		})
	}
}

func TestConstrainedBoardingForward(t *testing.T) {
	tests := []struct {
		name        string
		constraints []structs.ConstrainedTransfer
		kind        raptor.BoardingKind
		trip        int32
	}{
		{"guaranteed", []structs.ConstrainedTransfer{constraint(-1, -1, structs.GUARANTEED, 0)}, raptor.CONSTRAINED_TIME, 1},
		{"min transfer time", []structs.ConstrainedTransfer{constraint(-1, -1, structs.MIN_TRANSFER_TIME, 50)}, raptor.CONSTRAINED_TIME, 2},
		{"not allowed", []structs.ConstrainedTransfer{constraint(-1, -1, structs.NOT_ALLOWED, 0)}, raptor.BLOCKED, 0},
		{"not allowed for trip", []structs.ConstrainedTransfer{constraint(-1, 1, structs.NOT_ALLOWED, 0)}, raptor.CONSTRAINED_TIME, 2},
		{"not allowed for all trips", []structs.ConstrainedTransfer{
			constraint(-1, -1, structs.NOT_ALLOWED, 0),
			constraint(0, 2, structs.GUARANTEED, 0),
		}, raptor.BLOCKED, 0},
		{"regular", []structs.ConstrainedTransfer{constraint(-1, -1, structs.REGULAR, 0)}, raptor.REGULAR_ALLOWED, 0},
		{"other source trip", []structs.ConstrainedTransfer{constraint(1, -1, structs.GUARANTEED, 0)}, raptor.REGULAR_ALLOWED, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			graph := NewTransitGraph(newTestTransit(tt.constraints...))
			data := NewTransitData(graph, RouteFilter{})
			require.NoError(t, data.Setup())

			search := data.TransferConstraintsSearch(1, true)
			require.NotNil(t, search)
			assert.True(t, search.TransferExist(0))
			assert.False(t, search.TransferExist(1))

			source := graph.GetTimeTable(0).GetTripSchedule(0)
			result := search.Find(graph.GetTimeTable(1), source, 1, 200, 0, 240)
			assert.Equal(t, tt.kind, result.Kind)
			if tt.kind == raptor.CONSTRAINED_TIME {
				assert.Equal(t, tt.trip, result.Event.TripIndex)
				assert.Equal(t, result.Event.Trip.Departure(0), result.Event.Time)
			}
		})
	}
}

func TestConstrainedBoardingGuaranteedTimes(t *testing.T) {
	graph := NewTransitGraph(newTestTransit(constraint(0, -1, structs.GUARANTEED, 0)))
	search := graph.forward_searches[1]

	source := graph.GetTimeTable(0).GetTripSchedule(0)
	result := search.Find(graph.GetTimeTable(1), source, 1, 200, 0, 240)
	require.Equal(t, raptor.CONSTRAINED_TIME, result.Kind)
	assert.Equal(t, int32(210), result.Event.Time)
	assert.Equal(t, int32(200), result.Event.EarliestBoardTime)
	assert.True(t, result.Event.Constraint.IsFacilitated())
}

func TestConstrainedBoardingReverse(t *testing.T) {
	graph := NewTransitGraph(newTestTransit(constraint(-1, 1, structs.GUARANTEED, 0)))
	data := NewTransitData(graph, RouteFilter{})
	require.NoError(t, data.Setup())

	assert.Nil(t, data.TransferConstraintsSearch(1, false))
	search := data.TransferConstraintsSearch(0, false)
	require.NotNil(t, search)
	assert.True(t, search.TransferExist(1))

	// leaving B on L2-1 at 210, latest arrival on L1 at B
	source := graph.GetTimeTable(1).GetTripSchedule(1)
	result := search.Find(graph.GetTimeTable(0), source, 0, 210, 1, 150)
	require.Equal(t, raptor.CONSTRAINED_TIME, result.Kind)
	assert.Equal(t, int32(0), result.Event.TripIndex)
	assert.Equal(t, int32(200), result.Event.Time)

	// the constraint is bound to L2-1
	other := graph.GetTimeTable(1).GetTripSchedule(2)
	result = search.Find(graph.GetTimeTable(0), other, 0, 260, 1, 250)
	assert.Equal(t, raptor.REGULAR_ALLOWED, result.Kind)
}

func TestStopIndex(t *testing.T) {
	graph := NewTransitGraph(newTestTransit())

	stops := graph.GetStopsWithin(orb.Point{8.0, 50.0}, 200)
	require.Len(t, stops, 2)
	assert.Equal(t, int32(0), stops[0].A)
	assert.InDelta(t, 0, stops[0].B, 0.001)
	assert.Equal(t, int32(1), stops[1].A)
	assert.InDelta(t, 71.5, stops[1].B, 1)

	stop, ok := graph.GetClosestStop(orb.Point{8.0095, 50.0}, 500)
	assert.True(t, ok)
	assert.Equal(t, int32(2), stop)

	_, ok = graph.GetClosestStop(orb.Point{9.0, 50.0}, 500)
	assert.False(t, ok)
}
