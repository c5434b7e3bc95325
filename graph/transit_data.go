package graph

import (
	"github.com/ttpr0/go-raptor/raptor"
	"github.com/ttpr0/go-raptor/structs"
	. "github.com/ttpr0/go-raptor/util"
)

//*******************************************
// route filter
//*******************************************

type RouteFilter struct {
	BannedRoutes []string `json:"banned_routes" yaml:"banned-routes"`
	// empty allows every mode
	Modes []structs.TransitMode `json:"modes" yaml:"modes"`
}

func (self *RouteFilter) IsEmpty() bool {
	return len(self.BannedRoutes) == 0 && len(self.Modes) == 0
}

func (self *RouteFilter) Allows(pattern *TripPattern) bool {
	for _, route := range self.BannedRoutes {
		if route == pattern.RouteID() {
			return false
		}
	}
	if len(self.Modes) == 0 {
		return true
	}
	for _, mode := range self.Modes {
		if mode == pattern.Mode() {
			return true
		}
	}
	return false
}

//*******************************************
// transit data
//*******************************************

// Request scoped view of a TransitGraph.
//
// A TransitData must not be shared between concurrent searches.
func NewTransitData(graph *TransitGraph, filter RouteFilter) *TransitData {
	return &TransitData{
		graph:  graph,
		filter: filter,
	}
}

type TransitData struct {
	graph   *TransitGraph
	filter  RouteFilter
	allowed Array[bool]
	touched BitSet
}

func (self *TransitData) Setup() error {
	if err := self.graph.Validate(); err != nil {
		return err
	}
	count := self.graph.PatternCount()
	self.allowed = NewArray[bool](count)
	for i := 0; i < count; i++ {
		self.allowed[i] = self.filter.Allows(self.graph.GetPattern(int32(i)))
	}
	self.touched = NewBitSet(count)
	return nil
}

func (self *TransitData) StopCount() int32 {
	return int32(self.graph.StopCount())
}

// The returned iterator is invalidated by the next call.
func (self *TransitData) RouteIndexIterator(stops IIntIterator) IIntIterator {
	self.touched.Clear()
	transit := self.graph.GetTransit()
	for stops.HasNext() {
		for _, pattern := range transit.GetPatternsAtStop(stops.Next()) {
			if self.allowed[pattern] {
				self.touched.Set(pattern)
			}
		}
	}
	return self.touched.Iterator()
}

func (self *TransitData) GetRouteForIndex(route_index int32) raptor.Route {
	return raptor.Route{
		Pattern:   self.graph.GetPattern(route_index),
		TimeTable: self.graph.GetTimeTable(route_index),
	}
}

func (self *TransitData) GetTransfersFromStop(stop int32) []structs.Transfer {
	return self.graph.GetTransit().GetTransfersFrom(stop)
}
func (self *TransitData) GetTransfersToStop(stop int32) []structs.Transfer {
	return self.graph.GetTransit().GetTransfersTo(stop)
}

func (self *TransitData) TransferConstraintsSearch(route_index int32, forward bool) raptor.ITransferConstraintsSearch {
	var search *ConstrainedBoardingSearch
	if forward {
		search = self.graph.forward_searches[route_index]
	} else {
		search = self.graph.reverse_searches[route_index]
	}
	if search == nil {
		return nil
	}
	return search
}

func (self *TransitData) ConstrainedTransfers() []structs.ConstrainedTransfer {
	return self.graph.GetTransit().ConstrainedTransfers()
}
