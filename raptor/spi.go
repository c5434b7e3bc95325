package raptor

import (
	"math"

	"github.com/ttpr0/go-raptor/structs"
	. "github.com/ttpr0/go-raptor/util"
)

const (
	TIME_NOT_SET         int32 = -999_999_999
	UNREACHED_FORWARD    int32 = math.MaxInt32
	UNREACHED_REVERSE    int32 = math.MinInt32
	UNBOUNDED_TRIP_INDEX int32 = -1
)

//*******************************************
// transit data provider interfaces
//*******************************************

type ITripSchedule interface {
	Arrival(stop_pos int32) int32
	Departure(stop_pos int32) int32
	// index of the trip in its timetable
	TripSortIndex() int32
	Pattern() IPattern
	TripID() string
}

type IPattern interface {
	PatternIndex() int32
	NumberOfStopsInPattern() int32
	StopIndex(stop_pos int32) int32
	SlackIndex() int32
	BoardingPossibleAt(stop_pos int32) bool
	AlightingPossibleAt(stop_pos int32) bool
	DebugInfo() string
}

// Trips of one pattern sorted by departure time at every stop.
type ITimeTable interface {
	NumberOfTripSchedules() int32
	GetTripSchedule(index int32) ITripSchedule
}

type Route struct {
	Pattern   IPattern
	TimeTable ITimeTable
}

// Read-only view of a transit snapshot used by a single search.
type ITransitDataProvider interface {
	// Called once before the first iteration, returns an error if the
	// snapshot is inconsistent.
	Setup() error
	StopCount() int32
	// Iterates all routes visiting at least one of the given stops.
	RouteIndexIterator(stops IIntIterator) IIntIterator
	GetRouteForIndex(route_index int32) Route
	GetTransfersFromStop(stop int32) []structs.Transfer
	GetTransfersToStop(stop int32) []structs.Transfer
	// Returns nil if no constrained transfer targets the route.
	TransferConstraintsSearch(route_index int32, forward bool) ITransferConstraintsSearch
	ConstrainedTransfers() []structs.ConstrainedTransfer
}

//*******************************************
// constrained transfers
//*******************************************

type BoardingKind byte

const (
	// no constraint applies, the regular trip search is used
	REGULAR_ALLOWED BoardingKind = 0
	// board the given trip at the given time
	CONSTRAINED_TIME BoardingKind = 1
	// boarding is not possible, the regular search must not run
	BLOCKED BoardingKind = 2
)

type ConstrainedBoarding struct {
	Kind  BoardingKind
	Event TripEvent
}

type ITransferConstraintsSearch interface {
	TransferExist(target_stop_pos int32) bool
	// Finds the trip to board at target_stop_pos coming from source_trip.
	//
	// source_time is the arrival (departure in reverse) of the source trip
	// without slack, earliest_board_time is the regular boarding limit.
	Find(timetable ITimeTable, source_trip ITripSchedule, source_stop_pos int32, source_time int32, target_stop_pos int32, earliest_board_time int32) ConstrainedBoarding
}
