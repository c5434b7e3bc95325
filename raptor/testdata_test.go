package raptor

import (
	"fmt"

	"github.com/ttpr0/go-raptor/structs"
	. "github.com/ttpr0/go-raptor/util"
)

//*******************************************
// in memory test network
//*******************************************

type testPattern struct {
	index int32
	name  string
	stops []int32
}

func (self *testPattern) PatternIndex() int32 { return self.index }
func (self *testPattern) NumberOfStopsInPattern() int32 { return int32(len(self.stops)) }
func (self *testPattern) StopIndex(stop_pos int32) int32 { return self.stops[stop_pos] }
func (self *testPattern) SlackIndex() int32 { return 0 }
func (self *testPattern) BoardingPossibleAt(stop_pos int32) bool { return true }
func (self *testPattern) AlightingPossibleAt(stop_pos int32) bool { return true }
func (self *testPattern) DebugInfo() string { return self.name }

type testTrip struct {
	pattern *testPattern
	index   int32
	times   []int32
}

func (self *testTrip) Arrival(stop_pos int32) int32 { return self.times[stop_pos] }
func (self *testTrip) Departure(stop_pos int32) int32 { return self.times[stop_pos] }
func (self *testTrip) TripSortIndex() int32 { return self.index }
func (self *testTrip) Pattern() IPattern { return self.pattern }
func (self *testTrip) TripID() string { return fmt.Sprintf("%s-%d", self.pattern.name, self.index) }

type testTimeTable struct {
	trips []*testTrip
}

func (self *testTimeTable) NumberOfTripSchedules() int32 { return int32(len(self.trips)) }
func (self *testTimeTable) GetTripSchedule(index int32) ITripSchedule {
	return self.trips[index]
}

type testData struct {
	stop_count     int32
	routes         []Route
	routes_by_stop [][]int32
	transfers_from [][]structs.Transfer
	transfers_to   [][]structs.Transfer
	constraints    []structs.ConstrainedTransfer
	setup_calls    int
}

func newTestData(stop_count int32) *testData {
	return &testData{
		stop_count:     stop_count,
		routes_by_stop: make([][]int32, stop_count),
		transfers_from: make([][]structs.Transfer, stop_count),
		transfers_to:   make([][]structs.Transfer, stop_count),
	}
}

// Adds a pattern, every trip gives one time per stop (no dwell time).
func (self *testData) addRoute(name string, stops []int32, trips ...[]int32) int32 {
	index := int32(len(self.routes))
	pattern := &testPattern{index: index, name: name, stops: stops}
	timetable := &testTimeTable{}
	for i, times := range trips {
		timetable.trips = append(timetable.trips, &testTrip{pattern: pattern, index: int32(i), times: times})
	}
	self.routes = append(self.routes, Route{Pattern: pattern, TimeTable: timetable})
	for _, stop := range stops {
		self.routes_by_stop[stop] = append(self.routes_by_stop[stop], index)
	}
	return index
}

func (self *testData) addTransfer(from, to, duration int32) {
	transfer := structs.Transfer{From: from, To: to, Duration: duration}
	self.transfers_from[from] = append(self.transfers_from[from], transfer)
	self.transfers_to[to] = append(self.transfers_to[to], transfer)
}

func (self *testData) Setup() error {
	self.setup_calls += 1
	return nil
}
func (self *testData) StopCount() int32 {
	return self.stop_count
}
func (self *testData) RouteIndexIterator(stops IIntIterator) IIntIterator {
	seen := NewBitSet(len(self.routes))
	for stops.HasNext() {
		for _, route := range self.routes_by_stop[stops.Next()] {
			seen.Set(route)
		}
	}
	return seen.Iterator()
}
func (self *testData) GetRouteForIndex(route_index int32) Route {
	return self.routes[route_index]
}
func (self *testData) GetTransfersFromStop(stop int32) []structs.Transfer {
	return self.transfers_from[stop]
}
func (self *testData) GetTransfersToStop(stop int32) []structs.Transfer {
	return self.transfers_to[stop]
}
func (self *testData) TransferConstraintsSearch(route_index int32, forward bool) ITransferConstraintsSearch {
	search := &testConstraintSearch{}
	for _, transfer := range self.constraints {
		if transfer.ToPattern == route_index {
			search.transfers = append(search.transfers, transfer)
		}
	}
	if len(search.transfers) == 0 {
		return nil
	}
	return search
}
func (self *testData) ConstrainedTransfers() []structs.ConstrainedTransfer {
	return self.constraints
}

// Forward only constraint search.
type testConstraintSearch struct {
	transfers []structs.ConstrainedTransfer
}

func (self *testConstraintSearch) TransferExist(target_stop_pos int32) bool {
	for _, transfer := range self.transfers {
		if transfer.ToStopPos == target_stop_pos {
			return true
		}
	}
	return false
}

func (self *testConstraintSearch) Find(timetable ITimeTable, source_trip ITripSchedule, source_stop_pos int32, source_time int32, target_stop_pos int32, earliest_board_time int32) ConstrainedBoarding {
	for _, transfer := range self.transfers {
		if transfer.ToStopPos != target_stop_pos || transfer.FromStopPos != source_stop_pos {
			continue
		}
		if transfer.FromPattern != source_trip.Pattern().PatternIndex() || !transfer.MatchesFromTrip(source_trip.TripSortIndex()) {
			continue
		}
		if transfer.Constraint.IsNotAllowed() {
			return ConstrainedBoarding{Kind: BLOCKED}
		}
		earliest := source_time
		if transfer.Constraint.Type == structs.MIN_TRANSFER_TIME {
			earliest = source_time + transfer.Constraint.MinTransferTime
		}
		for i := int32(0); i < timetable.NumberOfTripSchedules(); i++ {
			trip := timetable.GetTripSchedule(i)
			if trip.Departure(target_stop_pos) >= earliest {
				return ConstrainedBoarding{
					Kind: CONSTRAINED_TIME,
					Event: TripEvent{
						Trip:              trip,
						TripIndex:         i,
						StopPos:           target_stop_pos,
						Time:              trip.Departure(target_stop_pos),
						EarliestBoardTime: earliest,
						Constraint:        transfer.Constraint,
					},
				}
			}
		}
		return ConstrainedBoarding{Kind: BLOCKED}
	}
	return ConstrainedBoarding{Kind: REGULAR_ALLOWED}
}

//*******************************************
// recording debug listener
//*******************************************

type recordingListener struct {
	arrivals []ArrivalEvent
	paths    []PathEvent
}

func (self *recordingListener) Stops() []int32 {
	return nil
}
func (self *recordingListener) OnStopArrival(event ArrivalEvent) {
	self.arrivals = append(self.arrivals, event)
}
func (self *recordingListener) OnPath(event PathEvent) {
	self.paths = append(self.paths, event)
}

func (self *recordingListener) accepted(typ ArrivalType, stop int32) []ArrivalEvent {
	events := []ArrivalEvent{}
	for _, event := range self.arrivals {
		if event.Type == ACCEPTED && event.Arrival.Type == typ && event.Arrival.Stop == stop {
			events = append(events, event)
		}
	}
	return events
}

//*******************************************
// request helpers
//*******************************************

func newTestRequest(profile SearchProfile, edt int32, access []AccessEgress, egress []AccessEgress) RaptorRequest {
	request := NewRaptorRequest()
	request.Profile = profile
	request.EarliestDepartureTime = edt
	request.AccessPaths = access
	request.EgressPaths = egress
	return request
}

func walk(stop, duration int32) AccessEgress {
	return NewWalkAccessEgress(stop, duration, duration*2)
}

func structsTransfer(from, to int32) structs.Transfer {
	return structs.Transfer{From: from, To: to, Duration: 10}
}
