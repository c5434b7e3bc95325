package raptor

import (
	"golang.org/x/exp/slices"

	. "github.com/ttpr0/go-raptor/util"
)

//*******************************************
// access paths
//*******************************************

// Access legs grouped by the number of rides needed to reach the stop.
type AccessPaths struct {
	on_street   Dict[int32, List[*AccessEgress]]
	on_board    Dict[int32, List[*AccessEgress]]
	max_rides   int32
	max_penalty int32
}

func NewAccessPaths(paths []AccessEgress) *AccessPaths {
	access := &AccessPaths{
		on_street: NewDict[int32, List[*AccessEgress]](4),
		on_board:  NewDict[int32, List[*AccessEgress]](4),
	}
	for i := range paths {
		path := &paths[i]
		var group Dict[int32, List[*AccessEgress]]
		if path.StopReachedByWalking() {
			group = access.on_street
		} else {
			group = access.on_board
		}
		list := group.Get(path.NumberOfRides)
		list.Add(path)
		group.Set(path.NumberOfRides, list)
		if path.NumberOfRides > access.max_rides {
			access.max_rides = path.NumberOfRides
		}
		if path.TimePenalty > access.max_penalty {
			access.max_penalty = path.TimePenalty
		}
	}
	return access
}

func (self *AccessPaths) ArrivedOnStreetByNumOfRides(rides int32) List[*AccessEgress] {
	return self.on_street.Get(rides)
}
func (self *AccessPaths) ArrivedOnBoardByNumOfRides(rides int32) List[*AccessEgress] {
	return self.on_board.Get(rides)
}

// Rounds needed to insert all access legs.
func (self *AccessPaths) CalculateMaxNumberOfRides() int32 {
	return self.max_rides
}
func (self *AccessPaths) HasTimePenalty() bool {
	return self.max_penalty > 0
}
func (self *AccessPaths) MaxTimePenalty() int32 {
	return self.max_penalty
}
func (self *AccessPaths) HasTimeDependentAccess() bool {
	for _, group := range []Dict[int32, List[*AccessEgress]]{self.on_street, self.on_board} {
		for _, list := range group {
			for _, path := range list {
				if path.HasOpeningHours() {
					return true
				}
			}
		}
	}
	return false
}

//*******************************************
// egress paths
//*******************************************

// Egress legs indexed by their stop.
type EgressPaths struct {
	by_stop Dict[int32, List[*AccessEgress]]
}

func NewEgressPaths(paths []AccessEgress) *EgressPaths {
	egress := &EgressPaths{
		by_stop: NewDict[int32, List[*AccessEgress]](len(paths)),
	}
	for i := range paths {
		path := &paths[i]
		list := egress.by_stop.Get(path.Stop)
		list.Add(path)
		egress.by_stop.Set(path.Stop, list)
	}
	return egress
}

func (self *EgressPaths) IsEgressStop(stop int32) bool {
	return self.by_stop.ContainsKey(stop)
}

func (self *EgressPaths) EgressAtStop(stop int32) List[*AccessEgress] {
	return self.by_stop.Get(stop)
}

func (self *EgressPaths) Stops() List[int32] {
	stops := NewList[int32](self.by_stop.Length())
	for stop := range self.by_stop {
		stops.Add(stop)
	}
	slices.Sort(stops)
	return stops
}
