package raptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTimeTable(n int, first, headway int32) ITimeTable {
	pattern := &testPattern{name: "T", stops: []int32{0, 1}}
	timetable := &testTimeTable{}
	for i := 0; i < n; i++ {
		dep := first + int32(i)*headway
		timetable.trips = append(timetable.trips, &testTrip{pattern: pattern, index: int32(i), times: []int32{dep, dep + 100}})
	}
	return timetable
}

func TestTripBoardSearch(t *testing.T) {
	for _, n := range []int{5, 200} {
		timetable := newTimeTable(n, 1000, 60)
		search := NewTripBoardSearch(timetable)

		event, ok := search.Search(1000, 0, UNBOUNDED_TRIP_INDEX)
		require.True(t, ok)
		assert.Equal(t, int32(0), event.TripIndex)
		assert.Equal(t, int32(1000), event.Time)

		event, ok = search.Search(1061, 0, UNBOUNDED_TRIP_INDEX)
		require.True(t, ok)
		assert.Equal(t, int32(2), event.TripIndex)
		assert.Equal(t, int32(1061), event.EarliestBoardTime)

		_, ok = search.Search(1061, 0, 2)
		assert.False(t, ok, "trips at or after the limit are skipped")

		_, ok = search.Search(1000+int32(n)*60, 0, UNBOUNDED_TRIP_INDEX)
		assert.False(t, ok)
	}
}

func TestTripAlightSearch(t *testing.T) {
	for _, n := range []int{5, 200} {
		timetable := newTimeTable(n, 1000, 60)
		search := NewTripAlightSearch(timetable)

		event, ok := search.Search(1100, 1, UNBOUNDED_TRIP_INDEX)
		require.True(t, ok)
		assert.Equal(t, int32(0), event.TripIndex)
		assert.Equal(t, int32(1100), event.Time)

		event, ok = search.Search(1219, 1, UNBOUNDED_TRIP_INDEX)
		require.True(t, ok)
		assert.Equal(t, int32(1), event.TripIndex)

		_, ok = search.Search(1219, 1, 1)
		assert.False(t, ok, "trips at or before the limit are skipped")

		_, ok = search.Search(1099, 1, UNBOUNDED_TRIP_INDEX)
		assert.False(t, ok)
	}
}

func TestExactTripSearch(t *testing.T) {
	timetable := newTimeTable(3, 1000, 120)
	calc := NewForwardCalculator(0, TIME_NOT_SET, 600, 60)
	search := NewExactTripSearch(NewTripBoardSearch(timetable), calc)

	event, ok := search.Search(970, 0, UNBOUNDED_TRIP_INDEX)
	require.True(t, ok)
	assert.Equal(t, int32(1000), event.Time)

	_, ok = search.Search(940, 0, UNBOUNDED_TRIP_INDEX)
	assert.False(t, ok, "departure outside of the iteration step")
}
