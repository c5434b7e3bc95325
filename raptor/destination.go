package raptor

import (
	"strings"

	"golang.org/x/exp/slices"

	. "github.com/ttpr0/go-raptor/util"
)

//*******************************************
// destination arrivals
//*******************************************

// Pareto set of paths reaching the destination.
type DestinationArrivals struct {
	calc                  ITransitCalculator
	mapper                *PathMapper
	paths                 *ParetoSet[*Path]
	debug                 *debugHandler
	reached_current_round bool
	best_time             int32
}

// Paths are compared by arrival time and number of transfers, optionally by
// cost and departure time. Without cost as a criterion, cost still breaks
// ties between otherwise equal paths.
func NewDestinationArrivals(calc ITransitCalculator, mapper *PathMapper, include_cost bool, timetable bool, debug *debugHandler) *DestinationArrivals {
	dominates := func(l, r *Path) bool {
		if calc.IsBefore(searchArrival(calc, r), searchArrival(calc, l)) {
			return false
		}
		if l.NumberOfTransfers > r.NumberOfTransfers {
			return false
		}
		if include_cost && l.Cost > r.Cost {
			return false
		}
		if timetable && calc.IsBefore(searchDeparture(calc, l), searchDeparture(calc, r)) {
			return false
		}
		if !include_cost && isTie(calc, l, r, timetable) {
			return l.Cost <= r.Cost
		}
		return true
	}
	paths := NewParetoSet(dominates)
	paths.OnDrop(func(dropped *Path, by *Path) {
		debug.path(DROPPED, dropped, "dominated by "+by.String())
	})
	return &DestinationArrivals{
		calc:      calc,
		mapper:    mapper,
		paths:     paths,
		debug:     debug,
		best_time: calc.UnreachedTime(),
	}
}

func (self *DestinationArrivals) Add(arrival DestinationArrival) bool {
	path := self.mapper.MapToPath(arrival)
	if !self.paths.Add(path) {
		self.debug.path(REJECTED, path, "dominated")
		return false
	}
	self.debug.path(ACCEPTED, path, "")
	self.reached_current_round = true
	if self.calc.IsBefore(arrival.Time, self.best_time) {
		self.best_time = arrival.Time
	}
	return true
}

func (self *DestinationArrivals) ClearReachedCurrentRound() {
	self.reached_current_round = false
}
func (self *DestinationArrivals) ReachedCurrentRound() bool {
	return self.reached_current_round
}
func (self *DestinationArrivals) BestTime() int32 {
	return self.best_time
}

// Surviving paths ordered by arrival, transfers, cost and departure.
func (self *DestinationArrivals) Paths() List[*Path] {
	paths := self.paths.Elements()
	slices.SortStableFunc(paths, func(a, b *Path) int {
		if a.EndTime != b.EndTime {
			return int(a.EndTime - b.EndTime)
		}
		if a.NumberOfTransfers != b.NumberOfTransfers {
			return int(a.NumberOfTransfers - b.NumberOfTransfers)
		}
		if a.Cost != b.Cost {
			return int(a.Cost - b.Cost)
		}
		if a.StartTime != b.StartTime {
			return int(b.StartTime - a.StartTime)
		}
		return strings.Compare(a.String(), b.String())
	})
	return paths
}

func searchArrival(calc ITransitCalculator, path *Path) int32 {
	if calc.SearchForward() {
		return path.EndTime
	}
	return path.StartTime
}

func searchDeparture(calc ITransitCalculator, path *Path) int32 {
	if calc.SearchForward() {
		return path.StartTime
	}
	return path.EndTime
}

func isTie(calc ITransitCalculator, l, r *Path, timetable bool) bool {
	if searchArrival(calc, l) != searchArrival(calc, r) || l.NumberOfTransfers != r.NumberOfTransfers {
		return false
	}
	return !timetable || searchDeparture(calc, l) == searchDeparture(calc, r)
}
