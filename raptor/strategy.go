package raptor

import (
	"github.com/ttpr0/go-raptor/structs"
)

//*******************************************
// routing strategy
//*******************************************

// Boarding and alighting rules of a search, the worker only drives the
// pattern scan.
type IRoutingStrategy interface {
	PrepareForTransitWith(route Route)
	Alight(stop int32, stop_pos int32, alight_slack int32)
	// Calls fn for every arrival at stop usable for boarding in the current round.
	ForEachBoarding(stop int32, fn func(prev int32))
	// Trips with a worse index than this can be skipped by the trip search.
	OnTripIndex() int32
	Board(stop int32, stop_pos int32, prev int32, event TripEvent)
	// Called if no better trip was found at the stop.
	BoardSameTrip(earliest_board_time int32, stop_pos int32, stop int32)
}

func boardingCost(calc ITransitCalculator, costs *CostCalculator, prev *StopArrival, event TripEvent) int32 {
	first_boarding := prev.Type == ACCESS_ARRIVAL && !prev.Access.HasRides()
	wait := calc.Duration(prev.Time, event.Time)
	return prev.Cost + costs.BoardingCost(first_boarding, wait, event.Constraint)
}

//*******************************************
// standard strategy
//*******************************************

type StdRoutingStrategy struct {
	state  *StdWorkerState
	calc   ITransitCalculator
	costs  *CostCalculator
	rounds *RoundTracker

	on_trip            ITripSchedule
	on_trip_index      int32
	on_trip_board_pos  int32
	on_trip_board_time int32
	on_trip_prev       int32
	on_trip_cost       int32
	on_trip_constraint structs.TransferConstraint
}

func NewStdRoutingStrategy(state *StdWorkerState, calc ITransitCalculator, costs *CostCalculator, rounds *RoundTracker) *StdRoutingStrategy {
	return &StdRoutingStrategy{
		state:         state,
		calc:          calc,
		costs:         costs,
		rounds:        rounds,
		on_trip_index: UNBOUNDED_TRIP_INDEX,
	}
}

func (self *StdRoutingStrategy) PrepareForTransitWith(route Route) {
	self.on_trip = nil
	self.on_trip_index = UNBOUNDED_TRIP_INDEX
}

func (self *StdRoutingStrategy) Alight(stop int32, stop_pos int32, alight_slack int32) {
	if self.on_trip == nil {
		return
	}
	time := self.calc.StopArrivalTime(self.on_trip, stop_pos, alight_slack)
	ride_time := self.calc.Duration(self.on_trip_board_time, time) - alight_slack
	self.state.TransitToStop(StopArrival{
		Type:       TRANSIT_ARRIVAL,
		Stop:       stop,
		Round:      self.rounds.Round(),
		Time:       time,
		Cost:       self.on_trip_cost + self.costs.TransitArrivalCost(ride_time),
		Previous:   self.on_trip_prev,
		Iteration:  self.state.iteration,
		Trip:       self.on_trip,
		BoardPos:   self.on_trip_board_pos,
		AlightPos:  stop_pos,
		BoardTime:  self.on_trip_board_time,
		Constraint: self.on_trip_constraint,
	})
}

func (self *StdRoutingStrategy) ForEachBoarding(stop int32, fn func(prev int32)) {
	if self.state.IsStopReachedPreviousRound(stop) {
		fn(self.state.BestArrivalPreviousRound(stop))
	}
}

func (self *StdRoutingStrategy) OnTripIndex() int32 {
	return self.on_trip_index
}

func (self *StdRoutingStrategy) Board(stop int32, stop_pos int32, prev int32, event TripEvent) {
	if self.on_trip != nil && self.calc.IsBefore(self.on_trip_index, event.TripIndex) {
		return
	}
	arrival := self.state.Arrival(prev)
	self.on_trip = event.Trip
	self.on_trip_index = event.TripIndex
	self.on_trip_board_pos = stop_pos
	self.on_trip_board_time = event.Time
	self.on_trip_prev = prev
	self.on_trip_cost = boardingCost(self.calc, self.costs, arrival, event)
	self.on_trip_constraint = event.Constraint
}

func (self *StdRoutingStrategy) BoardSameTrip(earliest_board_time int32, stop_pos int32, stop int32) {
}

//*******************************************
// multi-criteria strategy
//*******************************************

// Trip boarded in the current pattern scan.
type patternRide struct {
	prev       int32
	trip       ITripSchedule
	trip_index int32
	board_pos  int32
	board_time int32
	// cost after boarding
	cost       int32
	constraint structs.TransferConstraint
	// cost at boarding corrected by the ride time from a fixed reference
	relative_cost int32
}

type McRoutingStrategy struct {
	state  *McWorkerState
	calc   ITransitCalculator
	costs  *CostCalculator
	rounds *RoundTracker
	rides  *ParetoSet[patternRide]
}

func NewMcRoutingStrategy(state *McWorkerState, calc ITransitCalculator, costs *CostCalculator, rounds *RoundTracker) *McRoutingStrategy {
	rides := NewParetoSet(func(l, r patternRide) bool {
		if calc.IsBefore(r.trip_index, l.trip_index) {
			return false
		}
		return l.relative_cost <= r.relative_cost
	})
	return &McRoutingStrategy{
		state:  state,
		calc:   calc,
		costs:  costs,
		rounds: rounds,
		rides:  rides,
	}
}

func (self *McRoutingStrategy) PrepareForTransitWith(route Route) {
	self.rides.Clear()
}

func (self *McRoutingStrategy) Alight(stop int32, stop_pos int32, alight_slack int32) {
	for _, ride := range self.rides.Elements() {
		time := self.calc.StopArrivalTime(ride.trip, stop_pos, alight_slack)
		ride_time := self.calc.Duration(ride.board_time, time) - alight_slack
		self.state.TransitToStop(StopArrival{
			Type:       TRANSIT_ARRIVAL,
			Stop:       stop,
			Round:      self.rounds.Round(),
			Time:       time,
			Cost:       ride.cost + self.costs.TransitArrivalCost(ride_time),
			Previous:   ride.prev,
			Iteration:  self.state.iteration,
			Trip:       ride.trip,
			BoardPos:   ride.board_pos,
			AlightPos:  stop_pos,
			BoardTime:  ride.board_time,
			Constraint: ride.constraint,
		})
	}
}

func (self *McRoutingStrategy) ForEachBoarding(stop int32, fn func(prev int32)) {
	for _, handle := range self.state.ArrivalsPreviousRound(stop) {
		fn(handle)
	}
}

func (self *McRoutingStrategy) OnTripIndex() int32 {
	return UNBOUNDED_TRIP_INDEX
}

func (self *McRoutingStrategy) Board(stop int32, stop_pos int32, prev int32, event TripEvent) {
	arrival := self.state.Arrival(prev)
	cost := boardingCost(self.calc, self.costs, arrival, event)
	self.rides.Add(patternRide{
		prev:          prev,
		trip:          event.Trip,
		trip_index:    event.TripIndex,
		board_pos:     stop_pos,
		board_time:    event.Time,
		cost:          cost,
		constraint:    event.Constraint,
		relative_cost: cost - self.costs.TransitCost(self.calc.Duration(self.calc.SearchStartTime(), event.Time)),
	})
}

func (self *McRoutingStrategy) BoardSameTrip(earliest_board_time int32, stop_pos int32, stop int32) {
}
