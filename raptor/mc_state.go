package raptor

import (
	"github.com/pkg/errors"

	"github.com/ttpr0/go-raptor/structs"
	. "github.com/ttpr0/go-raptor/util"
)

//*******************************************
// multi-criteria worker state
//*******************************************

// Keeps a pareto set of arrivals per stop over arrival time, pareto round
// and generalized cost.
type McWorkerState struct {
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

	arrivals  Array[*ParetoSet[int32]]
	dominates func(l, r int32) bool
	// reused by ArrivalsPreviousRound
	scratch List[int32]

	touched_current            BitSet
	touched_previous           BitSet
	touched_by_transit_current BitSet
}

func NewMcWorkerState(calc ITransitCalculator, rounds *RoundTracker, costs *CostCalculator, arena *ArrivalArena, egress *EgressPaths, destination *DestinationArrivals, stop_count int32, debug *debugHandler) *McWorkerState {
	state := &McWorkerState{
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
		arrivals:                   NewArray[*ParetoSet[int32]](int(stop_count)),
		scratch:                    NewList[int32](8),
		touched_current:            NewBitSet(int(stop_count)),
		touched_previous:           NewBitSet(int(stop_count)),
		touched_by_transit_current: NewBitSet(int(stop_count)),
	}
	state.dominates = func(l, r int32) bool {
		a := state.arena.Get(l)
		b := state.arena.Get(r)
		if calc.IsBefore(b.Time, a.Time) {
			return false
		}
		if a.ParetoRound() > b.ParetoRound() {
			return false
		}
		return a.Cost <= b.Cost
	}
	return state
}

func (self *McWorkerState) SetupIteration(departure_time int32) {
	self.iteration += 1
	self.touched_current.Clear()
	self.touched_previous.Clear()
	self.touched_by_transit_current.Clear()
}

func (self *McWorkerState) PrepareForNextRound(round int32) {
	self.touched_previous.CopyFrom(&self.touched_current)
	self.touched_current.Clear()
	self.touched_by_transit_current.Clear()
	if self.destination != nil {
		self.destination.ClearReachedCurrentRound()
	}
}

func (self *McWorkerState) IterationComplete() {
	self.touched_current.Clear()
	self.touched_previous.Clear()
	self.touched_by_transit_current.Clear()
}

func (self *McWorkerState) IsNewRoundAvailable() bool {
	return !self.touched_current.IsEmpty()
}
func (self *McWorkerState) IsDestinationReachedInCurrentRound() bool {
	return self.destination != nil && self.destination.ReachedCurrentRound()
}
func (self *McWorkerState) StopsTouchedPreviousRound() IIntIterator {
	return self.touched_previous.Iterator()
}
func (self *McWorkerState) StopsTouchedByTransitCurrentRound() IIntIterator {
	return self.touched_by_transit_current.Iterator()
}
func (self *McWorkerState) Arrival(handle int32) *StopArrival {
	return self.arena.Get(handle)
}

// Handles of the arrivals at stop added in the previous round of this iteration.
//
// The list is only valid until the next call.
func (self *McWorkerState) ArrivalsPreviousRound(stop int32) List[int32] {
	set := self.arrivals[stop]
	if set == nil || !self.touched_previous.Contains(stop) {
		return nil
	}
	round := self.rounds.Round() - 1
	self.scratch.Clear()
	for i := 0; i < set.Length(); i++ {
		handle := set.Get(i)
		arrival := self.arena.Get(handle)
		if arrival.Round == round && arrival.Iteration == self.iteration {
			self.scratch.Add(handle)
		}
	}
	return self.scratch
}

func (self *McWorkerState) SetAccessToStop(access *AccessEgress, departure_time int32) {
	arrival, ok := newAccessArrival(self.calc, access, departure_time, self.rounds.Round(), self.iteration)
	if !ok {
		return
	}
	self.addArrival(arrival)
}

func (self *McWorkerState) TransitToStop(arrival StopArrival) {
	self.addArrival(arrival)
}

func (self *McWorkerState) TransferToStops(from_stop int32, transfers []structs.Transfer) error {
	set := self.arrivals[from_stop]
	if set == nil {
		return nil
	}
	round := self.rounds.Round()
	for _, handle := range set.Elements() {
		from := *self.arena.Get(handle)
		if from.Round != round || from.Iteration != self.iteration || !from.ArrivedOnBoard() {
			continue
		}
		for _, transfer := range transfers {
			target := self.calc.TransferTarget(transfer)
			if target < 0 || target >= self.stop_count {
				return errors.Wrapf(ErrDataInconsistency, "transfer from stop %d to unknown stop %d", from_stop, target)
			}
			self.addArrival(newTransferArrival(self.calc, self.costs, handle, &from, transfer))
		}
	}
	return nil
}

func (self *McWorkerState) addArrival(arrival StopArrival) {
	if self.calc.ExceedsTimeLimit(arrival.Time) {
		self.debug.arrival(REJECTED, &arrival, "exceeds time limit")
		return
	}
	stop := arrival.Stop
	set := self.arrivals[stop]
	if set == nil {
		set = NewParetoSet(self.dominates)
		set.OnDrop(func(dropped int32, by int32) {
			self.debug.arrival(DROPPED, self.arena.Get(dropped), "dominated")
		})
		self.arrivals[stop] = set
	}
	handle := self.arena.Add(arrival)
	if !set.Add(handle) {
		self.arena.RemoveLast()
		self.debug.arrival(REJECTED, &arrival, "dominated")
		return
	}
	self.touched_current.Set(stop)
	if arrival.ArrivedOnBoard() {
		self.touched_by_transit_current.Set(stop)
	}
	self.stop_arrivals.update(&arrival)
	self.debug.arrival(ACCEPTED, &arrival, "")
	arriveAtDestination(self.calc, self.costs, self.egress, self.destination, handle, &arrival)
}

func (self *McWorkerState) ExtractPaths() List[*Path] {
	if self.destination == nil {
		return NewList[*Path](0)
	}
	return self.destination.Paths()
}

func (self *McWorkerState) ExtractStopArrivals() *StopArrivals {
	return self.stop_arrivals
}
