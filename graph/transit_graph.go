package graph

import (
	"fmt"
	"sync"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"github.com/ttpr0/go-raptor/comps"
	"github.com/ttpr0/go-raptor/raptor"
	"github.com/ttpr0/go-raptor/structs"
	. "github.com/ttpr0/go-raptor/util"
)

//*******************************************
// transit-graph
//******************************************

// Raptor view of a transit snapshot, shared by all searches.
func NewTransitGraph(transit *comps.Transit) *TransitGraph {
	pattern_count := transit.PatternCount()
	patterns := NewArray[TripPattern](pattern_count)
	timetables := NewArray[TimeTable](pattern_count)
	for i := 0; i < pattern_count; i++ {
		patterns[i] = TripPattern{
			index:   int32(i),
			pattern: transit.GetPattern(int32(i)),
		}
		trips := transit.GetTrips(int32(i))
		schedules := NewArray[TripSchedule](trips.Length())
		for j := range trips {
			schedules[j] = TripSchedule{
				index:   int32(j),
				times:   &trips[j],
				pattern: &patterns[i],
			}
		}
		timetables[i] = TimeTable{schedules: schedules}
	}

	forward_searches := NewArray[*ConstrainedBoardingSearch](pattern_count)
	reverse_searches := NewArray[*ConstrainedBoardingSearch](pattern_count)
	for _, transfer := range transit.ConstrainedTransfers() {
		if transfer.ToPattern >= 0 && int(transfer.ToPattern) < pattern_count {
			if forward_searches[transfer.ToPattern] == nil {
				forward_searches[transfer.ToPattern] = NewConstrainedBoardingSearch(true)
			}
			forward_searches[transfer.ToPattern].add(transfer)
		}
		if transfer.FromPattern >= 0 && int(transfer.FromPattern) < pattern_count {
			if reverse_searches[transfer.FromPattern] == nil {
				reverse_searches[transfer.FromPattern] = NewConstrainedBoardingSearch(false)
			}
			reverse_searches[transfer.FromPattern].add(transfer)
		}
	}

	return &TransitGraph{
		transit:          transit,
		patterns:         patterns,
		timetables:       timetables,
		forward_searches: forward_searches,
		reverse_searches: reverse_searches,
	}
}

type TransitGraph struct {
	transit          *comps.Transit
	patterns         Array[TripPattern]
	timetables       Array[TimeTable]
	forward_searches Array[*ConstrainedBoardingSearch]
	reverse_searches Array[*ConstrainedBoardingSearch]

	validate_once sync.Once
	validate_err  error

	index_once sync.Once
	index      Optional[*StopIndex]
}

func (self *TransitGraph) StopCount() int {
	return self.transit.StopCount()
}
func (self *TransitGraph) GetStop(stop int32) structs.Stop {
	return self.transit.GetStop(stop)
}
func (self *TransitGraph) FindStop(id string) (int32, bool) {
	return self.transit.FindStop(id)
}
func (self *TransitGraph) PatternCount() int {
	return self.patterns.Length()
}
func (self *TransitGraph) GetPattern(pattern int32) *TripPattern {
	return &self.patterns[pattern]
}
func (self *TransitGraph) GetTimeTable(pattern int32) *TimeTable {
	return &self.timetables[pattern]
}
func (self *TransitGraph) GetTransit() *comps.Transit {
	return self.transit
}

// Stops within max_distance meters of point, closest first.
func (self *TransitGraph) GetStopsWithin(point orb.Point, max_distance float64) List[Tuple[int32, float64]] {
	return self.getIndex().GetStopsWithin(point, max_distance)
}
func (self *TransitGraph) GetClosestStop(point orb.Point, max_distance float64) (int32, bool) {
	return self.getIndex().GetClosestStop(point, max_distance)
}

// The index is built on first use.
func (self *TransitGraph) getIndex() *StopIndex {
	self.index_once.Do(func() {
		self.index = Some(NewStopIndex(self.transit))
	})
	return self.index.Value
}

// Checks the snapshot once, the result is cached.
func (self *TransitGraph) Validate() error {
	self.validate_once.Do(func() {
		self.validate_err = self.validate()
	})
	return self.validate_err
}

func (self *TransitGraph) validate() error {
	stop_count := int32(self.transit.StopCount())
	for i := range self.patterns {
		pattern := self.patterns[i].pattern
		if pattern.Stops.Length() == 0 {
			return errors.Wrapf(raptor.ErrDataInconsistency, "pattern %d has no stops", i)
		}
		if pattern.Flags.Length() != pattern.Stops.Length() {
			return errors.Wrapf(raptor.ErrDataInconsistency, "pattern %d has %d flags for %d stops", i, pattern.Flags.Length(), pattern.Stops.Length())
		}
		for _, stop := range pattern.Stops {
			if stop < 0 || stop >= stop_count {
				return errors.Wrapf(raptor.ErrDataInconsistency, "pattern %d references unknown stop %d", i, stop)
			}
		}
		for _, trip := range self.transit.GetTrips(int32(i)) {
			if len(trip.Arrivals) != pattern.Stops.Length() || len(trip.Departures) != pattern.Stops.Length() {
				return errors.Wrapf(raptor.ErrDataInconsistency, "trip %v does not match the stops of pattern %d", trip.TripID, i)
			}
		}
	}
	for stop := int32(0); stop < stop_count; stop++ {
		for _, transfer := range self.transit.GetTransfersFrom(stop) {
			if transfer.To < 0 || transfer.To >= stop_count || transfer.Duration < 0 {
				return errors.Wrapf(raptor.ErrDataInconsistency, "invalid transfer from stop %d to %d", transfer.From, transfer.To)
			}
		}
	}
	pattern_count := int32(self.patterns.Length())
	for _, transfer := range self.transit.ConstrainedTransfers() {
		if transfer.FromPattern < 0 || transfer.FromPattern >= pattern_count || transfer.ToPattern < 0 || transfer.ToPattern >= pattern_count {
			return errors.Wrapf(raptor.ErrDataInconsistency, "constrained transfer between unknown patterns %d and %d", transfer.FromPattern, transfer.ToPattern)
		}
		if transfer.FromStopPos < 0 || int(transfer.FromStopPos) >= self.patterns[transfer.FromPattern].pattern.Stops.Length() {
			return errors.Wrapf(raptor.ErrDataInconsistency, "constrained transfer from unknown position %d", transfer.FromStopPos)
		}
		if transfer.ToStopPos < 0 || int(transfer.ToStopPos) >= self.patterns[transfer.ToPattern].pattern.Stops.Length() {
			return errors.Wrapf(raptor.ErrDataInconsistency, "constrained transfer to unknown position %d", transfer.ToStopPos)
		}
	}
	return nil
}

//*******************************************
// patterns and trips
//*******************************************

type TripPattern struct {
	index   int32
	pattern *comps.Pattern
}

func (self *TripPattern) PatternIndex() int32 {
	return self.index
}
func (self *TripPattern) NumberOfStopsInPattern() int32 {
	return int32(self.pattern.Stops.Length())
}
func (self *TripPattern) StopIndex(stop_pos int32) int32 {
	return self.pattern.Stops[stop_pos]
}
func (self *TripPattern) SlackIndex() int32 {
	return self.pattern.SlackIndex
}
func (self *TripPattern) BoardingPossibleAt(stop_pos int32) bool {
	return self.pattern.BoardingAllowed(stop_pos)
}
func (self *TripPattern) AlightingPossibleAt(stop_pos int32) bool {
	return self.pattern.AlightingAllowed(stop_pos)
}
func (self *TripPattern) RouteID() string {
	return self.pattern.RouteID
}
func (self *TripPattern) Mode() structs.TransitMode {
	return self.pattern.Mode
}
func (self *TripPattern) DebugInfo() string {
	return fmt.Sprintf("%s %s", self.pattern.Mode.String(), self.pattern.RouteID)
}

type TripSchedule struct {
	index   int32
	times   *structs.TripTimes
	pattern *TripPattern
}

func (self *TripSchedule) Arrival(stop_pos int32) int32 {
	return self.times.Arrivals[stop_pos]
}
func (self *TripSchedule) Departure(stop_pos int32) int32 {
	return self.times.Departures[stop_pos]
}
func (self *TripSchedule) TripSortIndex() int32 {
	return self.index
}
func (self *TripSchedule) Pattern() raptor.IPattern {
	return self.pattern
}
func (self *TripSchedule) TripID() string {
	return self.times.TripID
}

type TimeTable struct {
	schedules Array[TripSchedule]
}

func (self *TimeTable) NumberOfTripSchedules() int32 {
	return int32(self.schedules.Length())
}
func (self *TimeTable) GetTripSchedule(index int32) raptor.ITripSchedule {
	return &self.schedules[index]
}
