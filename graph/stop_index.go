package graph

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/quadtree"
	"golang.org/x/exp/slices"

	"github.com/ttpr0/go-raptor/comps"
	. "github.com/ttpr0/go-raptor/util"
)

//*******************************************
// stop index
//*******************************************

type stopPoint struct {
	stop int32
	loc  orb.Point
}

func (self stopPoint) Point() orb.Point {
	return self.loc
}

// Spatial index over the stop locations.
type StopIndex struct {
	tree *quadtree.Quadtree
}

func NewStopIndex(transit *comps.Transit) *StopIndex {
	points := make(orb.MultiPoint, transit.StopCount())
	for i := 0; i < transit.StopCount(); i++ {
		points[i] = transit.GetStop(int32(i)).Loc
	}
	tree := quadtree.New(points.Bound())
	for i, point := range points {
		tree.Add(stopPoint{stop: int32(i), loc: point})
	}
	return &StopIndex{
		tree: tree,
	}
}

// Returns (stop, distance in meters) of every stop within max_distance, closest first.
func (self *StopIndex) GetStopsWithin(point orb.Point, max_distance float64) List[Tuple[int32, float64]] {
	bound := geo.NewBoundAroundPoint(point, max_distance)
	found := self.tree.InBound(nil, bound)
	stops := NewList[Tuple[int32, float64]](len(found))
	for _, p := range found {
		sp := p.(stopPoint)
		dist := geo.Distance(point, sp.loc)
		if dist > max_distance {
			continue
		}
		stops.Add(MakeTuple(sp.stop, dist))
	}
	slices.SortFunc(stops, func(a, b Tuple[int32, float64]) int {
		if a.B != b.B {
			if a.B < b.B {
				return -1
			}
			return 1
		}
		return int(a.A - b.A)
	})
	return stops
}

// Returns the stop closest to point within max_distance.
func (self *StopIndex) GetClosestStop(point orb.Point, max_distance float64) (int32, bool) {
	found := self.tree.Find(point)
	if found == nil {
		return -1, false
	}
	sp := found.(stopPoint)
	if geo.Distance(point, sp.loc) > max_distance {
		return -1, false
	}
	return sp.stop, true
}
