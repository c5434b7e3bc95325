package raptor

import (
	"github.com/ttpr0/go-raptor/structs"
	. "github.com/ttpr0/go-raptor/util"
)

//*******************************************
// stop arrivals
//*******************************************

type ArrivalType byte

const (
	ACCESS_ARRIVAL   ArrivalType = 0
	TRANSIT_ARRIVAL  ArrivalType = 1
	TRANSFER_ARRIVAL ArrivalType = 2
)

func (self ArrivalType) String() string {
	switch self {
	case ACCESS_ARRIVAL:
		return "access"
	case TRANSIT_ARRIVAL:
		return "transit"
	case TRANSFER_ARRIVAL:
		return "transfer"
	default:
		panic("unknown arrival type")
	}
}

// Arrival at a stop in the search direction. Arrivals are immutable once
// added to the arena and linked through the handle of their predecessor.
type StopArrival struct {
	Type  ArrivalType
	Stop  int32
	Round int32
	// arrival time including alight slack
	Time      int32
	Cost      int32
	Previous  int32
	Iteration int32

	// access arrivals
	Access *AccessEgress

	// transit arrivals
	Trip       ITripSchedule
	BoardPos   int32
	AlightPos  int32
	BoardTime  int32
	Constraint structs.TransferConstraint

	// transfer arrivals
	Duration int32
}

// Transit arrivals count twice the round, transfers one more.
func (self *StopArrival) ParetoRound() int32 {
	if self.ArrivedOnBoard() {
		return 2 * self.Round
	}
	return 2*self.Round + 1
}

func (self *StopArrival) ArrivedOnBoard() bool {
	switch self.Type {
	case TRANSIT_ARRIVAL:
		return true
	case ACCESS_ARRIVAL:
		return self.Access.StopReachedOnBoard
	default:
		return false
	}
}

func (self *StopArrival) BoardStop() int32 {
	return self.Trip.Pattern().StopIndex(self.BoardPos)
}

//*******************************************
// arrival arena
//*******************************************

// Stores all arrivals of a search, addressed by int32 handles.
type ArrivalArena struct {
	arrivals List[StopArrival]
}

func NewArrivalArena(cap int) *ArrivalArena {
	return &ArrivalArena{
		arrivals: NewList[StopArrival](cap),
	}
}

func (self *ArrivalArena) Add(arrival StopArrival) int32 {
	self.arrivals.Add(arrival)
	return int32(len(self.arrivals) - 1)
}

// The pointer is only valid until the next call to Add.
func (self *ArrivalArena) Get(handle int32) *StopArrival {
	return &self.arrivals[handle]
}

// Removes the last added arrival, only allowed if no handle to it exists.
func (self *ArrivalArena) RemoveLast() {
	self.arrivals = self.arrivals[:len(self.arrivals)-1]
}

func (self *ArrivalArena) Length() int {
	return len(self.arrivals)
}

// Collects the chain of arrivals ending at handle, last arrival first.
func (self *ArrivalArena) Chain(handle int32) List[StopArrival] {
	chain := NewList[StopArrival](8)
	for handle != -1 {
		arrival := self.arrivals[handle]
		chain.Add(arrival)
		handle = arrival.Previous
	}
	return chain
}

//*******************************************
// destination arrivals
//*******************************************

type DestinationArrival struct {
	Previous int32
	Egress   *AccessEgress
	Time     int32
	Cost     int32
	// number of boardings minus one
	NumberOfTransfers int32
	Iteration         int32
}

//*******************************************
// stop arrivals result
//*******************************************

// Best values per stop over the whole search.
type StopArrivals struct {
	calc               ITransitCalculator
	best_times         Array[int32]
	best_transit_times Array[int32]
	best_rounds        Array[int32]
}

func NewStopArrivals(calc ITransitCalculator, stop_count int32) *StopArrivals {
	best_times := NewArray[int32](int(stop_count))
	best_times.Fill(calc.UnreachedTime())
	best_transit_times := NewArray[int32](int(stop_count))
	best_transit_times.Fill(calc.UnreachedTime())
	best_rounds := NewArray[int32](int(stop_count))
	best_rounds.Fill(-1)
	return &StopArrivals{
		calc:               calc,
		best_times:         best_times,
		best_transit_times: best_transit_times,
		best_rounds:        best_rounds,
	}
}

func (self *StopArrivals) update(arrival *StopArrival) {
	stop := arrival.Stop
	if self.calc.IsBefore(arrival.Time, self.best_times[stop]) {
		self.best_times[stop] = arrival.Time
	}
	if arrival.ArrivedOnBoard() && self.calc.IsBefore(arrival.Time, self.best_transit_times[stop]) {
		self.best_transit_times[stop] = arrival.Time
	}
	if self.best_rounds[stop] == -1 || arrival.Round < self.best_rounds[stop] {
		self.best_rounds[stop] = arrival.Round
	}
}

func (self *StopArrivals) StopCount() int32 {
	return int32(len(self.best_times))
}
func (self *StopArrivals) Reached(stop int32) bool {
	return self.best_rounds[stop] != -1
}
func (self *StopArrivals) ReachedByTransit(stop int32) bool {
	return self.best_transit_times[stop] != self.calc.UnreachedTime()
}
func (self *StopArrivals) BestArrivalTime(stop int32) int32 {
	return self.best_times[stop]
}
func (self *StopArrivals) BestTransitArrivalTime(stop int32) int32 {
	return self.best_transit_times[stop]
}

// Fewest transfers needed to reach stop, -1 if not reached.
func (self *StopArrivals) SmallestNumberOfTransfers(stop int32) int32 {
	round := self.best_rounds[stop]
	if round <= 0 {
		return round
	}
	return round - 1
}
