package raptor

import (
	"context"

	"github.com/pkg/errors"

	. "github.com/ttpr0/go-raptor/util"
)

//*******************************************
// range raptor worker
//*******************************************

type RaptorWorkerResult struct {
	Paths        List[*Path]
	StopArrivals *StopArrivals
	Iterations   int32
}

// Runs the rounds of every range raptor iteration. Boarding, alighting and
// arrival bookkeeping is left to the strategy and the state.
type RangeRaptorWorker struct {
	data      ITransitDataProvider
	calc      ITransitCalculator
	slack     ISlackProvider
	state     IWorkerState
	strategy  IRoutingStrategy
	rounds    *RoundTracker
	lifecycle *LifeCycle
	access    *AccessPaths

	enable_constraints        bool
	min_number_of_rounds      int32
	has_time_dependent_access bool

	in_first_iteration       bool
	penalty_iteration        bool
	iteration_departure_time int32
	iterations               int32
}

func NewRangeRaptorWorker(data ITransitDataProvider, calc ITransitCalculator, slack ISlackProvider, state IWorkerState, strategy IRoutingStrategy, rounds *RoundTracker, lifecycle *LifeCycle, access *AccessPaths, enable_constraints bool) *RangeRaptorWorker {
	return &RangeRaptorWorker{
		data:                      data,
		calc:                      calc,
		slack:                     slack,
		state:                     state,
		strategy:                  strategy,
		rounds:                    rounds,
		lifecycle:                 lifecycle,
		access:                    access,
		enable_constraints:        enable_constraints,
		min_number_of_rounds:      access.CalculateMaxNumberOfRides(),
		has_time_dependent_access: access.HasTimeDependentAccess(),
		in_first_iteration:        true,
	}
}

func (self *RangeRaptorWorker) Route(ctx context.Context) (RaptorWorkerResult, error) {
	self.lifecycle.RouteSearch(self.calc.SearchForward())
	if err := self.runIterations(ctx, self.calc.RangeRaptorMinutes()); err != nil {
		return RaptorWorkerResult{}, err
	}
	if self.access.HasTimePenalty() {
		self.penalty_iteration = true
		if err := self.runIterations(ctx, self.calc.PenaltyMinutes(self.access.MaxTimePenalty())); err != nil {
			return RaptorWorkerResult{}, err
		}
	}
	return RaptorWorkerResult{
		Paths:        self.state.ExtractPaths(),
		StopArrivals: self.state.ExtractStopArrivals(),
		Iterations:   self.iterations,
	}, nil
}

func (self *RangeRaptorWorker) runIterations(ctx context.Context, minutes IIntIterator) error {
	for minutes.HasNext() {
		if err := checkTimeout(ctx); err != nil {
			return err
		}
		self.iteration_departure_time = minutes.Next()
		self.lifecycle.SetupIteration(self.iteration_departure_time)
		if err := self.runRaptorForMinute(); err != nil {
			return err
		}
		self.lifecycle.IterationComplete()
		self.in_first_iteration = false
		self.iterations += 1
	}
	return nil
}

func (self *RangeRaptorWorker) runRaptorForMinute() error {
	self.findAccessOnStreetForRound()

	for self.hasMoreRounds() {
		round := self.rounds.NextRound()
		self.lifecycle.PrepareForNextRound(round)

		if err := self.findTransitForRound(); err != nil {
			return err
		}
		self.findAccessOnBoardForRound()
		self.lifecycle.TransitsForRoundComplete()

		if err := self.findTransfersForRound(); err != nil {
			return err
		}
		self.lifecycle.TransfersForRoundComplete()

		self.findAccessOnStreetForRound()
		self.lifecycle.RoundComplete(self.state.IsDestinationReachedInCurrentRound())
	}
	return nil
}

// Access legs with rides force the rounds needed to insert them.
func (self *RangeRaptorWorker) hasMoreRounds() bool {
	if self.rounds.Round() < self.min_number_of_rounds {
		return true
	}
	return self.state.IsNewRoundAvailable() && self.rounds.HasMoreRounds()
}

func (self *RangeRaptorWorker) findTransitForRound() error {
	stops := self.state.StopsTouchedPreviousRound()
	routes := self.data.RouteIndexIterator(stops)
	for routes.HasNext() {
		route_index := routes.Next()
		route := self.data.GetRouteForIndex(route_index)
		pattern := route.Pattern
		number_of_stops := pattern.NumberOfStopsInPattern()
		if number_of_stops == 0 {
			return errors.Wrapf(ErrDataInconsistency, "pattern %d has no stops", pattern.PatternIndex())
		}

		trip_search := self.createTripSearch(route.TimeTable)
		var tx_search ITransferConstraintsSearch
		if self.enable_constraints {
			tx_search = self.data.TransferConstraintsSearch(route_index, self.calc.SearchForward())
		}
		board_slack := self.slack.BoardSlack(pattern.SlackIndex())
		alight_slack := self.slack.AlightSlack(pattern.SlackIndex())

		self.strategy.PrepareForTransitWith(route)

		positions := self.calc.PatternStopIterator(number_of_stops)
		for positions.HasNext() {
			stop_pos := positions.Next()
			stop := pattern.StopIndex(stop_pos)

			if self.calc.AlightingPossibleAt(pattern, stop_pos) {
				self.strategy.Alight(stop, stop_pos, alight_slack)
			}
			if !self.calc.BoardingPossibleAt(pattern, stop_pos) {
				continue
			}
			self.strategy.ForEachBoarding(stop, func(prev int32) {
				arrival := self.state.Arrival(prev)
				earliest_board_time := self.calc.PlusDuration(arrival.Time, board_slack)
				if tx_search != nil && self.boardWithConstrainedTransfer(tx_search, route.TimeTable, arrival, stop, stop_pos, prev, earliest_board_time) {
					return
				}
				event, ok := trip_search.Search(earliest_board_time, stop_pos, self.strategy.OnTripIndex())
				if ok {
					self.strategy.Board(stop, stop_pos, prev, event)
				} else {
					self.strategy.BoardSameTrip(earliest_board_time, stop_pos, stop)
				}
			})
		}
	}
	return nil
}

// Returns true if the constraint decided the boarding, the regular trip
// search must not run then. Constraints also apply when the arrival walked
// from the alighting stop, they are matched against the alighted trip.
func (self *RangeRaptorWorker) boardWithConstrainedTransfer(tx_search ITransferConstraintsSearch, timetable ITimeTable, arrival *StopArrival, stop, stop_pos, prev, earliest_board_time int32) bool {
	if !tx_search.TransferExist(stop_pos) {
		return false
	}
	arrival = self.alightedTransit(arrival)
	if arrival == nil {
		return false
	}
	source_slack := self.slack.AlightSlack(arrival.Trip.Pattern().SlackIndex())
	source_time := self.calc.MinusDuration(arrival.Time, source_slack)
	result := tx_search.Find(timetable, arrival.Trip, arrival.AlightPos, source_time, stop_pos, earliest_board_time)
	switch result.Kind {
	case BLOCKED:
		return true
	case CONSTRAINED_TIME:
		self.strategy.Board(stop, stop_pos, prev, result.Event)
		return true
	default:
		return false
	}
}

// Follows walking transfers back to the transit arrival they started from,
// nil for access arrivals.
func (self *RangeRaptorWorker) alightedTransit(arrival *StopArrival) *StopArrival {
	for arrival.Type == TRANSFER_ARRIVAL {
		arrival = self.state.Arrival(arrival.Previous)
	}
	if arrival.Type != TRANSIT_ARRIVAL {
		return nil
	}
	return arrival
}

func (self *RangeRaptorWorker) createTripSearch(timetable ITimeTable) ITripSearch {
	search := self.calc.CreateTripSearch(timetable)
	if self.in_first_iteration || !self.rounds.IsFirstRound() || self.has_time_dependent_access || self.penalty_iteration {
		return search
	}
	return NewExactTripSearch(search, self.calc)
}

func (self *RangeRaptorWorker) findTransfersForRound() error {
	stops := self.state.StopsTouchedByTransitCurrentRound()
	for stops.HasNext() {
		stop := stops.Next()
		if err := self.state.TransferToStops(stop, self.calc.GetTransfers(self.data, stop)); err != nil {
			return err
		}
	}
	return nil
}

func (self *RangeRaptorWorker) findAccessOnStreetForRound() {
	self.addAccessPaths(self.access.ArrivedOnStreetByNumOfRides(self.rounds.Round()))
}

func (self *RangeRaptorWorker) findAccessOnBoardForRound() {
	self.addAccessPaths(self.access.ArrivedOnBoardByNumOfRides(self.rounds.Round()))
}

// Penalty iterations only insert legs with a time penalty whose shifted
// departure lies inside the search window.
func (self *RangeRaptorWorker) addAccessPaths(paths List[*AccessEgress]) {
	for _, access := range paths {
		if self.penalty_iteration {
			if !access.HasTimePenalty() {
				continue
			}
			if self.calc.IsBefore(self.calc.PlusDuration(self.iteration_departure_time, access.TimePenalty), self.calc.SearchStartTime()) {
				continue
			}
		}
		self.state.SetAccessToStop(access, self.iteration_departure_time)
	}
}

func checkTimeout(ctx context.Context) error {
	err := ctx.Err()
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(ErrSearchTimeout, err.Error())
	}
	return errors.Wrap(err, "search canceled")
}
