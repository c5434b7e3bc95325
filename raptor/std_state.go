package raptor

import (
	"github.com/pkg/errors"

	"github.com/ttpr0/go-raptor/structs"
	. "github.com/ttpr0/go-raptor/util"
)

//*******************************************
// standard worker state
//*******************************************

// Single criterion state, keeps the best arrival per stop and round.
//
// An arrival is better if it is earlier, or equally early with fewer rounds,
// or equal in both with a lower cost.
type StdWorkerState struct {
	calc          ITransitCalculator
	rounds        *RoundTracker
	costs         *CostCalculator
	arena         *ArrivalArena
	egress        *EgressPaths
	destination   *DestinationArrivals
	stop_arrivals *StopArrivals
	debug         *debugHandler
	stop_count    int32
	iteration     int32

	best_times          Array[int32]
	best_rounds         Array[int32]
	best_transit_times  Array[int32]
	best_transit_rounds Array[int32]
	best_costs          Array[int32]
	best_transit_costs  Array[int32]
	// handles per round and stop, -1 if not set
	arrivals         List[Array[int32]]
	transit_arrivals List[Array[int32]]

	reached_current            BitSet
	reached_previous           BitSet
	reached_by_transit_current BitSet
}

// destination may be nil if no paths are needed.
func NewStdWorkerState(calc ITransitCalculator, rounds *RoundTracker, costs *CostCalculator, arena *ArrivalArena, egress *EgressPaths, destination *DestinationArrivals, stop_count int32, debug *debugHandler) *StdWorkerState {
	best_times := NewArray[int32](int(stop_count))
	best_times.Fill(calc.UnreachedTime())
	best_rounds := NewArray[int32](int(stop_count))
	best_rounds.Fill(-1)
	best_transit_times := NewArray[int32](int(stop_count))
	best_transit_times.Fill(calc.UnreachedTime())
	best_transit_rounds := NewArray[int32](int(stop_count))
	best_transit_rounds.Fill(-1)
	best_costs := NewArray[int32](int(stop_count))
	best_transit_costs := NewArray[int32](int(stop_count))
	return &StdWorkerState{
		calc:                       calc,
		rounds:                     rounds,
		costs:                      costs,
		arena:                      arena,
		egress:                     egress,
		destination:                destination,
		stop_arrivals:              NewStopArrivals(calc, stop_count),
		debug:                      debug,
		stop_count:                 stop_count,
		iteration:                  -1,
		best_times:                 best_times,
		best_rounds:                best_rounds,
		best_transit_times:         best_transit_times,
		best_transit_rounds:        best_transit_rounds,
		best_costs:                 best_costs,
		best_transit_costs:         best_transit_costs,
		arrivals:                   NewList[Array[int32]](8),
		transit_arrivals:           NewList[Array[int32]](8),
		reached_current:            NewBitSet(int(stop_count)),
		reached_previous:           NewBitSet(int(stop_count)),
		reached_by_transit_current: NewBitSet(int(stop_count)),
	}
}

func (self *StdWorkerState) SetupIteration(departure_time int32) {
	self.iteration += 1
	self.ensureRound(0)
	self.reached_current.Clear()
	self.reached_previous.Clear()
	self.reached_by_transit_current.Clear()
}

func (self *StdWorkerState) PrepareForNextRound(round int32) {
	self.ensureRound(round)
	self.reached_previous.CopyFrom(&self.reached_current)
	self.reached_current.Clear()
	self.reached_by_transit_current.Clear()
	if self.destination != nil {
		self.destination.ClearReachedCurrentRound()
	}
}

func (self *StdWorkerState) IterationComplete() {
	self.reached_current.Clear()
	self.reached_previous.Clear()
	self.reached_by_transit_current.Clear()
}

func (self *StdWorkerState) IsNewRoundAvailable() bool {
	return !self.reached_current.IsEmpty()
}
func (self *StdWorkerState) IsDestinationReachedInCurrentRound() bool {
	return self.destination != nil && self.destination.ReachedCurrentRound()
}
func (self *StdWorkerState) StopsTouchedPreviousRound() IIntIterator {
	return self.reached_previous.Iterator()
}
func (self *StdWorkerState) StopsTouchedByTransitCurrentRound() IIntIterator {
	return self.reached_by_transit_current.Iterator()
}
func (self *StdWorkerState) IsStopReachedPreviousRound(stop int32) bool {
	return self.reached_previous.Contains(stop)
}
func (self *StdWorkerState) Arrival(handle int32) *StopArrival {
	return self.arena.Get(handle)
}

// Handle of the best arrival at stop in the previous round.
func (self *StdWorkerState) BestArrivalPreviousRound(stop int32) int32 {
	return self.arrivals[self.rounds.Round()-1][stop]
}

func (self *StdWorkerState) SetAccessToStop(access *AccessEgress, departure_time int32) {
	arrival, ok := newAccessArrival(self.calc, access, departure_time, self.rounds.Round(), self.iteration)
	if !ok {
		return
	}
	if access.StopReachedOnBoard {
		self.TransitToStop(arrival)
	} else {
		self.transferToStop(arrival)
	}
}

// Adds an arrival on-board a vehicle, transit or on-board access.
func (self *StdWorkerState) TransitToStop(arrival StopArrival) {
	stop := arrival.Stop
	if self.calc.ExceedsTimeLimit(arrival.Time) {
		self.debug.arrival(REJECTED, &arrival, "exceeds time limit")
		return
	}
	if !self.isBetter(&arrival, self.best_transit_times[stop], self.best_transit_rounds[stop], self.best_transit_costs[stop]) {
		self.debug.arrival(REJECTED, &arrival, "not better than best transit arrival")
		return
	}
	round := arrival.Round
	handle := self.arena.Add(arrival)
	self.best_transit_times[stop] = arrival.Time
	self.best_transit_rounds[stop] = arrival.ParetoRound()
	self.best_transit_costs[stop] = arrival.Cost
	self.transit_arrivals[round][stop] = handle
	self.reached_by_transit_current.Set(stop)
	if self.isBetter(&arrival, self.best_times[stop], self.best_rounds[stop], self.best_costs[stop]) {
		self.setBestArrival(handle, &arrival)
	}
	self.stop_arrivals.update(&arrival)
	self.debug.arrival(ACCEPTED, &arrival, "")
	arriveAtDestination(self.calc, self.costs, self.egress, self.destination, handle, &arrival)
}

func (self *StdWorkerState) TransferToStops(from_stop int32, transfers []structs.Transfer) error {
	handle := self.transit_arrivals[self.rounds.Round()][from_stop]
	from := *self.arena.Get(handle)
	for _, transfer := range transfers {
		target := self.calc.TransferTarget(transfer)
		if target < 0 || target >= self.stop_count {
			return errors.Wrapf(ErrDataInconsistency, "transfer from stop %d to unknown stop %d", from_stop, target)
		}
		self.transferToStop(newTransferArrival(self.calc, self.costs, handle, &from, transfer))
	}
	return nil
}

func (self *StdWorkerState) transferToStop(arrival StopArrival) {
	if self.calc.ExceedsTimeLimit(arrival.Time) {
		self.debug.arrival(REJECTED, &arrival, "exceeds time limit")
		return
	}
	stop := arrival.Stop
	if !self.isBetter(&arrival, self.best_times[stop], self.best_rounds[stop], self.best_costs[stop]) {
		self.debug.arrival(REJECTED, &arrival, "not better than best arrival")
		return
	}
	handle := self.arena.Add(arrival)
	self.setBestArrival(handle, &arrival)
	self.stop_arrivals.update(&arrival)
	self.debug.arrival(ACCEPTED, &arrival, "")
	arriveAtDestination(self.calc, self.costs, self.egress, self.destination, handle, &arrival)
}

func (self *StdWorkerState) setBestArrival(handle int32, arrival *StopArrival) {
	stop := arrival.Stop
	self.best_times[stop] = arrival.Time
	self.best_rounds[stop] = arrival.ParetoRound()
	self.best_costs[stop] = arrival.Cost
	self.arrivals[arrival.Round][stop] = handle
	self.reached_current.Set(stop)
}

func (self *StdWorkerState) isBetter(arrival *StopArrival, best_time, best_round, best_cost int32) bool {
	if self.calc.IsBefore(arrival.Time, best_time) {
		return true
	}
	if arrival.Time != best_time || best_round == -1 {
		return false
	}
	if round := arrival.ParetoRound(); round != best_round {
		return round < best_round
	}
	return arrival.Cost < best_cost
}

func (self *StdWorkerState) ensureRound(round int32) {
	for int32(len(self.arrivals)) <= round {
		arrivals := NewArray[int32](int(self.stop_count))
		arrivals.Fill(-1)
		self.arrivals.Add(arrivals)
		transit_arrivals := NewArray[int32](int(self.stop_count))
		transit_arrivals.Fill(-1)
		self.transit_arrivals.Add(transit_arrivals)
	}
}

func (self *StdWorkerState) ExtractPaths() List[*Path] {
	if self.destination == nil {
		return NewList[*Path](0)
	}
	return self.destination.Paths()
}

func (self *StdWorkerState) ExtractStopArrivals() *StopArrivals {
	return self.stop_arrivals
}
