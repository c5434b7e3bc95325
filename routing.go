package main

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"github.com/ttpr0/go-raptor/graph"
	"github.com/ttpr0/go-raptor/preproc"
	"github.com/ttpr0/go-raptor/raptor"
)

//**********************************************************
// request mapping
//**********************************************************

func BuildRaptorRequest(transit *graph.TransitGraph, config Config, req SearchRequest) (raptor.RaptorRequest, error) {
	time, err := preproc.ParseTime(req.Time)
	if err != nil {
		return raptor.RaptorRequest{}, errors.Wrap(raptor.ErrInvalidConfiguration, err.Error())
	}
	options := config.Routing

	request := raptor.NewRaptorRequest()
	request.Profile = options.Profile
	if req.Profile != nil {
		request.Profile = *req.Profile
	}
	request.SearchWindow = options.SearchWindow
	if req.SearchWindow != nil {
		request.SearchWindow = *req.SearchWindow
	}
	request.MaxNumberOfTransfers = options.MaxTransfers
	if req.MaxTransfers != nil {
		request.MaxNumberOfTransfers = *req.MaxTransfers
	}
	request.IterationStep = options.IterationStep
	request.AdditionalTransfers = options.AdditionalTransfers
	request.Timeout = options.Timeout
	request.Slack = options.Slack
	request.Cost = options.Cost
	request.Timetable = req.Timetable
	request.EnableTransferConstraints = req.TransferConstraints
	if req.ArriveBy {
		request.Direction = raptor.REVERSE
		request.LatestArrivalTime = time
	} else {
		request.Direction = raptor.FORWARD
		request.EarliestDepartureTime = time
	}

	walk_speed := config.Transit.Options.WalkSpeed
	request.AccessPaths, err = mapLocation(transit, req.From, options.MaxAccessDistance, walk_speed, options.Cost)
	if err != nil {
		return request, errors.Wrap(err, "from")
	}
	request.EgressPaths, err = mapLocation(transit, req.To, options.MaxAccessDistance, walk_speed, options.Cost)
	if err != nil {
		return request, errors.Wrap(err, "to")
	}

	if len(req.DebugStops) > 0 {
		stops := make([]int32, 0, len(req.DebugStops))
		for _, id := range req.DebugStops {
			if stop, ok := transit.FindStop(id); ok {
				stops = append(stops, stop)
			}
		}
		request.DebugListener = raptor.NewLogDebugListener(req.ID, stops)
	}
	return request, nil
}

// Stops are reached without walking, coordinates by walking to all stops
// within max_distance.
func mapLocation(transit *graph.TransitGraph, location LocationParams, max_distance, walk_speed float64, cost raptor.CostParams) ([]raptor.AccessEgress, error) {
	paths := make([]raptor.AccessEgress, 0, 4)
	for _, id := range location.StopIDs {
		stop, ok := transit.FindStop(id)
		if !ok {
			return nil, errors.Wrapf(raptor.ErrInvalidConfiguration, "unknown stop %v", id)
		}
		paths = append(paths, raptor.NewWalkAccessEgress(stop, 0, 0))
	}
	if len(location.Coord) == 2 {
		calc := raptor.NewCostCalculator(cost)
		point := orb.Point{location.Coord[0], location.Coord[1]}
		for _, item := range transit.GetStopsWithin(point, max_distance) {
			duration := int32(math.Ceil(item.B / walk_speed))
			paths = append(paths, raptor.NewWalkAccessEgress(item.A, duration, calc.WalkCost(duration)))
		}
	}
	if len(paths) == 0 {
		return nil, errors.Wrap(raptor.ErrInvalidConfiguration, "no stop found for location")
	}
	return paths, nil
}

//**********************************************************
// response mapping
//**********************************************************

func BuildSearchResponse(transit *graph.TransitGraph, id string, result raptor.RaptorWorkerResult, with_arrivals bool) SearchResponse {
	resp := SearchResponse{
		ID:          id,
		Itineraries: make([]Itinerary, 0, result.Paths.Length()),
		Iterations:  result.Iterations,
	}
	for _, path := range result.Paths {
		resp.Itineraries = append(resp.Itineraries, NewItinerary(transit, path))
	}
	if with_arrivals && result.StopArrivals != nil {
		arrivals := result.StopArrivals
		for stop := int32(0); stop < arrivals.StopCount(); stop++ {
			if !arrivals.Reached(stop) {
				continue
			}
			item := StopArrivalResponse{
				Stop:        newStopRef(transit, stop),
				Arrival:     raptor.FormatTime(arrivals.BestArrivalTime(stop)),
				NumTransfer: arrivals.SmallestNumberOfTransfers(stop),
			}
			if arrivals.ReachedByTransit(stop) {
				item.Transit = raptor.FormatTime(arrivals.BestTransitArrivalTime(stop))
			}
			resp.StopArrivals = append(resp.StopArrivals, item)
		}
	}
	return resp
}

func NewItinerary(transit *graph.TransitGraph, path *raptor.Path) Itinerary {
	itinerary := Itinerary{
		Departure: raptor.FormatTime(path.StartTime),
		Arrival:   raptor.FormatTime(path.EndTime),
		Duration:  path.Duration(),
		Transfers: path.NumberOfTransfers,
		Cost:      path.Cost,
		Legs:      make([]LegResponse, 0, len(path.Legs)),
	}
	for _, leg := range path.Legs {
		item := LegResponse{
			Type:      leg.Type.String(),
			Departure: raptor.FormatTime(leg.FromTime),
			Arrival:   raptor.FormatTime(leg.ToTime),
			Duration:  leg.Duration,
		}
		if leg.FromStop != -1 {
			ref := newStopRef(transit, leg.FromStop)
			item.From = &ref
		}
		if leg.ToStop != -1 {
			ref := newStopRef(transit, leg.ToStop)
			item.To = &ref
		}
		if leg.Type == raptor.TRANSIT_LEG {
			item.TripID = leg.Trip.TripID()
			if pattern, ok := leg.Trip.Pattern().(*graph.TripPattern); ok {
				item.Route = pattern.RouteID()
				item.Mode = pattern.Mode().String()
			}
			if !leg.Constraint.IsRegular() {
				item.Constraint = leg.Constraint.Type.String()
			}
		}
		itinerary.Legs = append(itinerary.Legs, item)
	}
	return itinerary
}

func newStopRef(transit *graph.TransitGraph, stop int32) StopRef {
	s := transit.GetStop(stop)
	return StopRef{
		ID:   s.ID,
		Name: s.Name,
		Lon:  s.Loc.Lon(),
		Lat:  s.Loc.Lat(),
	}
}
