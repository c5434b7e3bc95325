package raptor

import (
	. "github.com/ttpr0/go-raptor/util"
)

//*******************************************
// worker lifecycle
//*******************************************

// Publishes the phases of a search to the subscribed components.
type LifeCycle struct {
	setup_iteration      List[func(int32)]
	prepare_next_round   List[func(int32)]
	transits_complete    List[func()]
	transfers_complete   List[func()]
	round_complete       List[func(bool)]
	iteration_complete   List[func()]
	route_search_started List[func(bool)]
}

func NewLifeCycle() *LifeCycle {
	return &LifeCycle{
		setup_iteration:      NewList[func(int32)](4),
		prepare_next_round:   NewList[func(int32)](4),
		transits_complete:    NewList[func()](4),
		transfers_complete:   NewList[func()](4),
		round_complete:       NewList[func(bool)](4),
		iteration_complete:   NewList[func()](4),
		route_search_started: NewList[func(bool)](4),
	}
}

func (self *LifeCycle) OnSetupIteration(fn func(departure_time int32)) {
	self.setup_iteration.Add(fn)
}
func (self *LifeCycle) OnPrepareForNextRound(fn func(round int32)) {
	self.prepare_next_round.Add(fn)
}
func (self *LifeCycle) OnTransitsForRoundComplete(fn func()) {
	self.transits_complete.Add(fn)
}
func (self *LifeCycle) OnTransfersForRoundComplete(fn func()) {
	self.transfers_complete.Add(fn)
}
func (self *LifeCycle) OnRoundComplete(fn func(destination_reached bool)) {
	self.round_complete.Add(fn)
}
func (self *LifeCycle) OnIterationComplete(fn func()) {
	self.iteration_complete.Add(fn)
}
func (self *LifeCycle) OnRouteSearch(fn func(forward bool)) {
	self.route_search_started.Add(fn)
}

func (self *LifeCycle) SetupIteration(departure_time int32) {
	for _, fn := range self.setup_iteration {
		fn(departure_time)
	}
}
func (self *LifeCycle) PrepareForNextRound(round int32) {
	for _, fn := range self.prepare_next_round {
		fn(round)
	}
}
func (self *LifeCycle) TransitsForRoundComplete() {
	for _, fn := range self.transits_complete {
		fn()
	}
}
func (self *LifeCycle) TransfersForRoundComplete() {
	for _, fn := range self.transfers_complete {
		fn()
	}
}
func (self *LifeCycle) RoundComplete(destination_reached bool) {
	for _, fn := range self.round_complete {
		fn(destination_reached)
	}
}
func (self *LifeCycle) IterationComplete() {
	for _, fn := range self.iteration_complete {
		fn()
	}
}
func (self *LifeCycle) RouteSearch(forward bool) {
	for _, fn := range self.route_search_started {
		fn(forward)
	}
}
