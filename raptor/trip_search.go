package raptor

import (
	"github.com/ttpr0/go-raptor/structs"
)

// Result of a trip search or a constrained boarding.
type TripEvent struct {
	Trip      ITripSchedule
	TripIndex int32
	StopPos   int32
	// departure of the trip at StopPos (arrival in reverse searches)
	Time              int32
	EarliestBoardTime int32
	Constraint        structs.TransferConstraint
}

type ITripSearch interface {
	// Searches the best trip boardable at stop_pos not before (after in
	// reverse) earliest_time. Only trips better than trip_index_limit are
	// considered, UNBOUNDED_TRIP_INDEX disables the limit.
	Search(earliest_time int32, stop_pos int32, trip_index_limit int32) (TripEvent, bool)
}

// timetables with more trips are searched using binary search
const BINARY_SEARCH_THRESHOLD = 50

//*******************************************
// forward board search
//*******************************************

type TripBoardSearch struct {
	timetable ITimeTable
}

func NewTripBoardSearch(timetable ITimeTable) *TripBoardSearch {
	return &TripBoardSearch{
		timetable: timetable,
	}
}

// Finds the earliest trip departing at or after earliest_time.
func (self *TripBoardSearch) Search(earliest_time int32, stop_pos int32, trip_index_limit int32) (TripEvent, bool) {
	upper := self.timetable.NumberOfTripSchedules()
	if trip_index_limit != UNBOUNDED_TRIP_INDEX && trip_index_limit < upper {
		upper = trip_index_limit
	}
	if upper <= 0 {
		return TripEvent{}, false
	}

	candidate := int32(-1)
	if upper > BINARY_SEARCH_THRESHOLD {
		low := int32(0)
		high := upper
		for low < high {
			mid := (low + high) / 2
			if self.timetable.GetTripSchedule(mid).Departure(stop_pos) >= earliest_time {
				high = mid
			} else {
				low = mid + 1
			}
		}
		if low < upper {
			candidate = low
		}
	} else {
		for i := upper - 1; i >= 0; i-- {
			if self.timetable.GetTripSchedule(i).Departure(stop_pos) < earliest_time {
				break
			}
			candidate = i
		}
	}
	if candidate == -1 {
		return TripEvent{}, false
	}
	trip := self.timetable.GetTripSchedule(candidate)
	return TripEvent{
		Trip:              trip,
		TripIndex:         candidate,
		StopPos:           stop_pos,
		Time:              trip.Departure(stop_pos),
		EarliestBoardTime: earliest_time,
	}, true
}

//*******************************************
// reverse alight search
//*******************************************

type TripAlightSearch struct {
	timetable ITimeTable
}

func NewTripAlightSearch(timetable ITimeTable) *TripAlightSearch {
	return &TripAlightSearch{
		timetable: timetable,
	}
}

// Finds the latest trip arriving at or before latest_time.
func (self *TripAlightSearch) Search(latest_time int32, stop_pos int32, trip_index_limit int32) (TripEvent, bool) {
	n := self.timetable.NumberOfTripSchedules()
	lower := int32(0)
	if trip_index_limit != UNBOUNDED_TRIP_INDEX {
		lower = trip_index_limit + 1
	}
	if lower >= n {
		return TripEvent{}, false
	}

	candidate := int32(-1)
	if n-lower > BINARY_SEARCH_THRESHOLD {
		low := lower
		high := n
		for low < high {
			mid := (low + high) / 2
			if self.timetable.GetTripSchedule(mid).Arrival(stop_pos) <= latest_time {
				low = mid + 1
			} else {
				high = mid
			}
		}
		if low > lower {
			candidate = low - 1
		}
	} else {
		for i := lower; i < n; i++ {
			if self.timetable.GetTripSchedule(i).Arrival(stop_pos) > latest_time {
				break
			}
			candidate = i
		}
	}
	if candidate == -1 {
		return TripEvent{}, false
	}
	trip := self.timetable.GetTripSchedule(candidate)
	return TripEvent{
		Trip:              trip,
		TripIndex:         candidate,
		StopPos:           stop_pos,
		Time:              trip.Arrival(stop_pos),
		EarliestBoardTime: latest_time,
	}, true
}

//*******************************************
// exact trip search
//*******************************************

// Restricts a trip search to trips departing within one iteration step.
//
// Used in the first round of every iteration but the first, later
// departures have already been found by previous iterations.
type ExactTripSearch struct {
	search         ITripSearch
	calc           ITransitCalculator
	iteration_step int32
}

func NewExactTripSearch(search ITripSearch, calc ITransitCalculator) *ExactTripSearch {
	return &ExactTripSearch{
		search:         search,
		calc:           calc,
		iteration_step: calc.IterationStep(),
	}
}

func (self *ExactTripSearch) Search(earliest_time int32, stop_pos int32, trip_index_limit int32) (TripEvent, bool) {
	event, ok := self.search.Search(earliest_time, stop_pos, trip_index_limit)
	if !ok {
		return event, false
	}
	if !self.calc.IsBefore(event.Time, self.calc.PlusDuration(earliest_time, self.iteration_step)) {
		return TripEvent{}, false
	}
	return event, true
}
