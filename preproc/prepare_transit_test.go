package preproc

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttpr0/go-raptor/structs"
	. "github.com/ttpr0/go-raptor/util"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		value string
		want  int32
		err   bool
	}{
		{"08:00:00", 28800, false},
		{"25:10:05", 90605, false},
		{" 00:00:01", 1, false},
		{"8:5", 0, true},
		{"08:61:00", 0, true},
		{"aa:00:00", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTime(tt.value)
		if tt.err {
			assert.Error(t, err, tt.value)
			continue
		}
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.want, got, tt.value)
	}
}

func TestGenerateTransfers(t *testing.T) {
	stops := Array[structs.Stop]{
		{ID: "A", Loc: orb.Point{8.0, 50.0}},
		{ID: "B", Loc: orb.Point{8.0, 50.01}},
		{ID: "C", Loc: orb.Point{8.0, 50.002}},
	}

	transfers := GenerateTransfers(stops, 500, 1.0)
	require.Len(t, transfers, 2)
	for _, transfer := range transfers {
		assert.ElementsMatch(t, []int32{0, 2}, []int32{transfer.From, transfer.To})
		assert.InDelta(t, 223, transfer.Duration, 1)
	}

	assert.Empty(t, GenerateTransfers(stops, 0, 1.0))
}

func stopTimes(trip string, stops []string, times ...string) []StopTimeInput {
	inputs := []StopTimeInput{}
	for i, stop := range stops {
		inputs = append(inputs, StopTimeInput{TripID: trip, StopID: stop, Sequence: int32(i + 1), Arrival: times[i], Departure: times[i]})
	}
	return inputs
}

func TestPrepareTransit(t *testing.T) {
	stops := []StopInput{
		{ID: "A", Name: "A", Lat: 50.0, Lon: 8.0},
		{ID: "B", Name: "B", Lat: 50.0, Lon: 8.01},
		{ID: "C", Name: "C", Lat: 50.0, Lon: 8.02},
	}
	trips := []TripInput{
		{TripID: "T1", RouteID: "R", Mode: "bus"},
		{TripID: "T2", RouteID: "R", Mode: "bus"},
		{TripID: "T3", RouteID: "R", Mode: "bus"},
		{TripID: "S1", RouteID: "S", Mode: "tram"},
		{TripID: "X1", RouteID: "X", Mode: "bus"},
	}
	abc := []string{"A", "B", "C"}
	stop_times := []StopTimeInput{}
	stop_times = append(stop_times, stopTimes("T1", abc, "08:00:00", "08:10:00", "08:20:00")...)
	stop_times = append(stop_times, stopTimes("T2", abc, "07:00:00", "07:10:00", "07:20:00")...)
	stop_times = append(stop_times, stopTimes("T3", abc, "07:50:00", "08:05:00", "08:25:00")...)
	stop_times = append(stop_times, stopTimes("S1", []string{"B", "C"}, "07:15:00", "07:30:00")...)
	stop_times = append(stop_times, stopTimes("X1", []string{"A", "Z"}, "07:15:00", "07:30:00")...)
	transfers := []TransferInput{{FromStopID: "A", ToStopID: "C", Duration: 300}}
	constraints := []ConstraintInput{
		{FromTripID: "T2", FromStopID: "B", ToRouteID: "S", ToStopID: "B", Type: "guaranteed"},
		{FromTripID: "T9", FromStopID: "B", ToRouteID: "S", ToStopID: "B", Type: "guaranteed"},
	}
	options := DefaultTransitOptions()
	options.GenerateTransfers = false

	transit, err := PrepareTransit(stops, trips, stop_times, transfers, constraints, options)
	require.NoError(t, err)

	assert.Equal(t, 3, transit.StopCount())
	require.Equal(t, 3, transit.PatternCount())
	ids := func(pattern int32) []string {
		values := []string{}
		for _, trip := range transit.GetTrips(pattern) {
			values = append(values, trip.TripID)
		}
		return values
	}
	// T1 is overtaken by T3
	assert.Equal(t, []string{"T2", "T3"}, ids(0))
	assert.Equal(t, []string{"T1"}, ids(1))
	assert.Equal(t, []string{"S1"}, ids(2))
	assert.Equal(t, "S", transit.GetPattern(2).RouteID)
	assert.Equal(t, structs.TRAM, transit.GetPattern(2).Mode)
	assert.Equal(t, int32(7*3600+15*60), transit.GetTrips(2)[0].Departures[0])
	assert.True(t, transit.GetPattern(0).BoardingAllowed(1))

	require.Equal(t, 1, transit.TransferCount())
	assert.Equal(t, int32(300), transit.GetTransfersFrom(0)[0].Duration)

	require.Equal(t, 1, transit.ConstrainedTransfers().Length())
	constraint := transit.ConstrainedTransfers()[0]
	assert.Equal(t, structs.ConstrainedTransfer{
		FromPattern: 0, FromTrip: 0, FromStopPos: 1,
		ToPattern: 2, ToTrip: -1, ToStopPos: 0,
		Constraint: structs.TransferConstraint{Type: structs.GUARANTEED},
	}, constraint)
}

func TestPrepareTransitPickupFlags(t *testing.T) {
	stops := []StopInput{{ID: "A", Lat: 50.0, Lon: 8.0}, {ID: "B", Lat: 50.0, Lon: 8.01}}
	trips := []TripInput{{TripID: "T1", RouteID: "R", Mode: "rail"}, {TripID: "T2", RouteID: "R", Mode: "rail"}}
	stop_times := stopTimes("T1", []string{"A", "B"}, "08:00:00", "08:10:00")
	stop_times = append(stop_times, stopTimes("T2", []string{"A", "B"}, "09:00:00", "09:10:00")...)
	stop_times[len(stop_times)-1].NoPickup = true

	transit, err := PrepareTransit(stops, trips, stop_times, nil, nil, DefaultTransitOptions())
	require.NoError(t, err)
	require.Equal(t, 2, transit.PatternCount())
	assert.False(t, transit.GetPattern(1).BoardingAllowed(1))
	assert.True(t, transit.GetPattern(1).AlightingAllowed(1))
	// stops are 715m apart
	assert.Equal(t, 0, transit.TransferCount())
}

func TestPrepareTransitErrors(t *testing.T) {
	_, err := PrepareTransit(nil, nil, nil, nil, nil, DefaultTransitOptions())
	assert.Error(t, err)

	stops := []StopInput{{ID: "A"}, {ID: "B"}}
	_, err = PrepareTransit(stops, []TripInput{{TripID: "T1", Mode: "zeppelin"}}, nil, nil, nil, DefaultTransitOptions())
	assert.Error(t, err)

	_, err = PrepareTransit([]StopInput{{ID: "A"}, {ID: "A"}}, nil, nil, nil, nil, DefaultTransitOptions())
	assert.Error(t, err)

	constraints := []ConstraintInput{{FromStopID: "A", ToStopID: "B", Type: "sometimes"}}
	_, err = PrepareTransit(stops, nil, nil, nil, constraints, DefaultTransitOptions())
	assert.Error(t, err)
}
