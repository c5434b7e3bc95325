package raptor

import (
	"github.com/ttpr0/go-raptor/structs"
	. "github.com/ttpr0/go-raptor/util"
)

// Encapsulates everything that depends on the search direction.
//
// In a reverse search times run backwards, boarding becomes alighting and
// "before" means later in real time.
type ITransitCalculator interface {
	SearchForward() bool
	// a is strictly better than b
	IsBefore(a, b int32) bool
	IsAfter(a, b int32) bool
	PlusDuration(time, duration int32) int32
	MinusDuration(time, duration int32) int32
	// absolute duration between two times
	Duration(a, b int32) int32
	UnreachedTime() int32
	// earliest departure (latest arrival in reverse) of the search
	SearchStartTime() int32
	ExceedsTimeLimit(time int32) bool
	IterationStep() int32
	// iteration departure times, the best one first
	RangeRaptorMinutes() IIntIterator
	// extra iterations before the search window used by access legs with time penalty
	PenaltyMinutes(max_penalty int32) IIntIterator
	PatternStopIterator(number_of_stops int32) IIntIterator
	BoardingPossibleAt(pattern IPattern, stop_pos int32) bool
	AlightingPossibleAt(pattern IPattern, stop_pos int32) bool
	// arrival at stop_pos including alight slack
	StopArrivalTime(trip ITripSchedule, stop_pos int32, slack int32) int32
	CreateTripSearch(timetable ITimeTable) ITripSearch
	DepartureTime(leg *AccessEgress, time int32) int32
	GetTransfers(data ITransitDataProvider, stop int32) []structs.Transfer
	TransferTarget(transfer structs.Transfer) int32
}

//*******************************************
// forward calculator
//*******************************************

type ForwardCalculator struct {
	earliest_departure_time int32
	latest_arrival_time     int32
	search_window           int32
	iteration_step          int32
}

func NewForwardCalculator(earliest_departure_time, latest_arrival_time, search_window, iteration_step int32) *ForwardCalculator {
	return &ForwardCalculator{
		earliest_departure_time: earliest_departure_time,
		latest_arrival_time:     latest_arrival_time,
		search_window:           search_window,
		iteration_step:          iteration_step,
	}
}

func (self *ForwardCalculator) SearchForward() bool {
	return true
}
func (self *ForwardCalculator) IsBefore(a, b int32) bool {
	return a < b
}
func (self *ForwardCalculator) IsAfter(a, b int32) bool {
	return a > b
}
func (self *ForwardCalculator) PlusDuration(time, duration int32) int32 {
	return time + duration
}
func (self *ForwardCalculator) MinusDuration(time, duration int32) int32 {
	return time - duration
}
func (self *ForwardCalculator) Duration(a, b int32) int32 {
	return b - a
}
func (self *ForwardCalculator) UnreachedTime() int32 {
	return UNREACHED_FORWARD
}
func (self *ForwardCalculator) SearchStartTime() int32 {
	return self.earliest_departure_time
}
func (self *ForwardCalculator) ExceedsTimeLimit(time int32) bool {
	return self.latest_arrival_time != TIME_NOT_SET && time > self.latest_arrival_time
}
func (self *ForwardCalculator) IterationStep() int32 {
	return self.iteration_step
}
func (self *ForwardCalculator) RangeRaptorMinutes() IIntIterator {
	if self.search_window <= 0 {
		return NewIntIterator(self.earliest_departure_time, self.earliest_departure_time-1, -1)
	}
	start := self.earliest_departure_time + (numberOfIterations(self.search_window, self.iteration_step)-1)*self.iteration_step
	return NewIntIterator(start, self.earliest_departure_time-1, -self.iteration_step)
}
func (self *ForwardCalculator) PenaltyMinutes(max_penalty int32) IIntIterator {
	if max_penalty <= 0 {
		return EMPTY_ITERATOR
	}
	start := self.earliest_departure_time - self.iteration_step
	return NewIntIterator(start, self.earliest_departure_time-max_penalty-1, -self.iteration_step)
}
func (self *ForwardCalculator) PatternStopIterator(number_of_stops int32) IIntIterator {
	return NewIntIterator(0, number_of_stops, 1)
}
func (self *ForwardCalculator) BoardingPossibleAt(pattern IPattern, stop_pos int32) bool {
	return pattern.BoardingPossibleAt(stop_pos)
}
func (self *ForwardCalculator) AlightingPossibleAt(pattern IPattern, stop_pos int32) bool {
	return pattern.AlightingPossibleAt(stop_pos)
}
func (self *ForwardCalculator) StopArrivalTime(trip ITripSchedule, stop_pos int32, slack int32) int32 {
	return trip.Arrival(stop_pos) + slack
}
func (self *ForwardCalculator) CreateTripSearch(timetable ITimeTable) ITripSearch {
	return NewTripBoardSearch(timetable)
}
func (self *ForwardCalculator) DepartureTime(leg *AccessEgress, time int32) int32 {
	return leg.EarliestDepartureTime(time)
}
func (self *ForwardCalculator) GetTransfers(data ITransitDataProvider, stop int32) []structs.Transfer {
	return data.GetTransfersFromStop(stop)
}
func (self *ForwardCalculator) TransferTarget(transfer structs.Transfer) int32 {
	return transfer.To
}

//*******************************************
// reverse calculator
//*******************************************

type ReverseCalculator struct {
	earliest_departure_time int32
	latest_arrival_time     int32
	search_window           int32
	iteration_step          int32
}

func NewReverseCalculator(earliest_departure_time, latest_arrival_time, search_window, iteration_step int32) *ReverseCalculator {
	return &ReverseCalculator{
		earliest_departure_time: earliest_departure_time,
		latest_arrival_time:     latest_arrival_time,
		search_window:           search_window,
		iteration_step:          iteration_step,
	}
}

func (self *ReverseCalculator) SearchForward() bool {
	return false
}
func (self *ReverseCalculator) IsBefore(a, b int32) bool {
	return a > b
}
func (self *ReverseCalculator) IsAfter(a, b int32) bool {
	return a < b
}
func (self *ReverseCalculator) PlusDuration(time, duration int32) int32 {
	return time - duration
}
func (self *ReverseCalculator) MinusDuration(time, duration int32) int32 {
	return time + duration
}
func (self *ReverseCalculator) Duration(a, b int32) int32 {
	return a - b
}
func (self *ReverseCalculator) UnreachedTime() int32 {
	return UNREACHED_REVERSE
}
func (self *ReverseCalculator) SearchStartTime() int32 {
	return self.latest_arrival_time
}
func (self *ReverseCalculator) ExceedsTimeLimit(time int32) bool {
	return self.earliest_departure_time != TIME_NOT_SET && time < self.earliest_departure_time
}
func (self *ReverseCalculator) IterationStep() int32 {
	return self.iteration_step
}
func (self *ReverseCalculator) RangeRaptorMinutes() IIntIterator {
	if self.search_window <= 0 {
		return NewIntIterator(self.latest_arrival_time, self.latest_arrival_time+1, 1)
	}
	start := self.latest_arrival_time - (numberOfIterations(self.search_window, self.iteration_step)-1)*self.iteration_step
	return NewIntIterator(start, self.latest_arrival_time+1, self.iteration_step)
}
func (self *ReverseCalculator) PenaltyMinutes(max_penalty int32) IIntIterator {
	if max_penalty <= 0 {
		return EMPTY_ITERATOR
	}
	start := self.latest_arrival_time + self.iteration_step
	return NewIntIterator(start, self.latest_arrival_time+max_penalty+1, self.iteration_step)
}
func (self *ReverseCalculator) PatternStopIterator(number_of_stops int32) IIntIterator {
	return NewIntIterator(number_of_stops-1, -1, -1)
}
func (self *ReverseCalculator) BoardingPossibleAt(pattern IPattern, stop_pos int32) bool {
	return pattern.AlightingPossibleAt(stop_pos)
}
func (self *ReverseCalculator) AlightingPossibleAt(pattern IPattern, stop_pos int32) bool {
	return pattern.BoardingPossibleAt(stop_pos)
}
func (self *ReverseCalculator) StopArrivalTime(trip ITripSchedule, stop_pos int32, slack int32) int32 {
	return trip.Departure(stop_pos) - slack
}
func (self *ReverseCalculator) CreateTripSearch(timetable ITimeTable) ITripSearch {
	return NewTripAlightSearch(timetable)
}
func (self *ReverseCalculator) DepartureTime(leg *AccessEgress, time int32) int32 {
	return leg.LatestArrivalTime(time)
}
func (self *ReverseCalculator) GetTransfers(data ITransitDataProvider, stop int32) []structs.Transfer {
	return data.GetTransfersToStop(stop)
}
func (self *ReverseCalculator) TransferTarget(transfer structs.Transfer) int32 {
	return transfer.From
}

func numberOfIterations(search_window, iteration_step int32) int32 {
	return (search_window + iteration_step - 1) / iteration_step
}
