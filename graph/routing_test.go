package graph_test

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttpr0/go-raptor/comps"
	"github.com/ttpr0/go-raptor/graph"
	"github.com/ttpr0/go-raptor/raptor"
	"github.com/ttpr0/go-raptor/structs"
	. "github.com/ttpr0/go-raptor/util"
)

func buildTransit(constraints ...structs.ConstrainedTransfer) *graph.TransitGraph {
	stop := func(id string, lon float64) structs.Stop {
		return structs.Stop{ID: id, Name: id, Loc: orb.Point{lon, 50.0}}
	}
	pattern := func(route string, mode structs.TransitMode, stops ...int32) comps.Pattern {
		flags := NewArray[byte](len(stops))
		flags.Fill(comps.BOARDING_ALLOWED | comps.ALIGHTING_ALLOWED)
		return comps.Pattern{RouteID: route, Mode: mode, Stops: stops, Flags: flags}
	}
	trip := func(id string, times ...int32) structs.TripTimes {
		return structs.TripTimes{TripID: id, Arrivals: times, Departures: times}
	}
	transit := comps.NewTransit(
		Array[structs.Stop]{stop("A", 8.0), stop("B", 8.01), stop("C", 8.02)},
		Array[comps.Pattern]{pattern("L1", structs.BUS, 0, 1), pattern("L2", structs.TRAM, 1, 2)},
		Array[Array[structs.TripTimes]]{
			{trip("L1-0", 100, 200)},
			{trip("L2-0", 190, 290), trip("L2-1", 210, 310), trip("L2-2", 260, 360)},
		},
		nil,
		constraints,
	)
	return graph.NewTransitGraph(transit)
}

func newRequest(profile raptor.SearchProfile) raptor.RaptorRequest {
	request := raptor.NewRaptorRequest()
	request.Profile = profile
	request.EarliestDepartureTime = 0
	request.AccessPaths = []raptor.AccessEgress{raptor.NewWalkAccessEgress(0, 0, 0)}
	request.EgressPaths = []raptor.AccessEgress{raptor.NewWalkAccessEgress(2, 0, 0)}
	return request
}

func TestRouteThroughTransitData(t *testing.T) {
	for _, profile := range []raptor.SearchProfile{raptor.STANDARD, raptor.MULTI_CRITERIA} {
		t.Run(profile.String(), func(t *testing.T) {
			data := graph.NewTransitData(buildTransit(), graph.RouteFilter{})

			result, err := raptor.NewRaptorService().Route(context.Background(), newRequest(profile), data)
			require.NoError(t, err)
			require.Len(t, result.Paths, 1)
			path := result.Paths[0]
			assert.Equal(t, int32(310), path.EndTime)
			assert.Equal(t, int32(1), path.NumberOfTransfers)
			legs := path.TransitLegs()
			require.Len(t, legs, 2)
			assert.Equal(t, "L1-0", legs[0].Trip.TripID())
			assert.Equal(t, "L2-1", legs[1].Trip.TripID())
		})
	}
}

func TestRouteWithBannedRoute(t *testing.T) {
	data := graph.NewTransitData(buildTransit(), graph.RouteFilter{BannedRoutes: []string{"L2"}})

	result, err := raptor.NewRaptorService().Route(context.Background(), newRequest(raptor.STANDARD), data)
	require.NoError(t, err)
	assert.Empty(t, result.Paths)
}

func TestRouteWithGuaranteedTransfer(t *testing.T) {
	guaranteed := structs.ConstrainedTransfer{
		FromPattern: 0, FromTrip: 0, FromStopPos: 1,
		ToPattern: 1, ToTrip: -1, ToStopPos: 0,
		Constraint: structs.TransferConstraint{Type: structs.GUARANTEED},
	}
	tests := []struct {
		name        string
		constraints []structs.ConstrainedTransfer
		enabled     bool
		end_time    int32
	}{
		{"without constraint", nil, true, 360},
		{"disabled", []structs.ConstrainedTransfer{guaranteed}, false, 360},
		{"guaranteed", []structs.ConstrainedTransfer{guaranteed}, true, 310},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := graph.NewTransitData(buildTransit(tt.constraints...), graph.RouteFilter{})
			request := newRequest(raptor.STANDARD)
			request.Slack = raptor.SlackParams{BoardSlack: 30}
			request.EnableTransferConstraints = tt.enabled

			result, err := raptor.NewRaptorService().Route(context.Background(), request, data)
			require.NoError(t, err)
			require.Len(t, result.Paths, 1)
			assert.Equal(t, tt.end_time, result.Paths[0].EndTime)
		})
	}
}

func TestRouteInconsistentData(t *testing.T) {
	transit := comps.NewTransit(
		Array[structs.Stop]{{ID: "A"}, {ID: "B"}},
		Array[comps.Pattern]{{RouteID: "L1"}},
		Array[Array[structs.TripTimes]]{{}},
		nil,
		nil,
	)
	data := graph.NewTransitData(graph.NewTransitGraph(transit), graph.RouteFilter{})
	request := newRequest(raptor.STANDARD)
	request.EgressPaths = []raptor.AccessEgress{raptor.NewWalkAccessEgress(1, 0, 0)}

	_, err := raptor.NewRaptorService().Route(context.Background(), request, data)
	assert.ErrorIs(t, err, raptor.ErrDataInconsistency)
}

func TestReverseRouteWithConstraints(t *testing.T) {
	constraint := func(typ structs.ConstraintType, from_trip int32) structs.ConstrainedTransfer {
		return structs.ConstrainedTransfer{
			FromPattern: 0, FromTrip: from_trip, FromStopPos: 1,
			ToPattern: 1, ToTrip: -1, ToStopPos: 0,
			Constraint: structs.TransferConstraint{Type: typ},
		}
	}
	reverse := func(profile raptor.SearchProfile, board_slack int32, enabled bool) raptor.RaptorRequest {
		request := newRequest(profile)
		request.Direction = raptor.REVERSE
		request.EarliestDepartureTime = raptor.TIME_NOT_SET
		request.LatestArrivalTime = 400
		request.Slack = raptor.SlackParams{BoardSlack: board_slack}
		request.EnableTransferConstraints = enabled
		return request
	}

	t.Run("not allowed", func(t *testing.T) {
		data := graph.NewTransitData(buildTransit(constraint(structs.NOT_ALLOWED, -1)), graph.RouteFilter{})
		for _, profile := range []raptor.SearchProfile{raptor.STANDARD, raptor.MULTI_CRITERIA} {
			result, err := raptor.NewRaptorService().Route(context.Background(), reverse(profile, 0, false), data)
			require.NoError(t, err)
			require.NotEmpty(t, result.Paths, profile.String())

			result, err = raptor.NewRaptorService().Route(context.Background(), reverse(profile, 0, true), data)
			require.NoError(t, err)
			assert.Empty(t, result.Paths, profile.String())
		}
	})

	t.Run("guaranteed", func(t *testing.T) {
		data := graph.NewTransitData(buildTransit(constraint(structs.GUARANTEED, 0)), graph.RouteFilter{})

		// the board slack rules out every regular transfer at B
		result, err := raptor.NewRaptorService().Route(context.Background(), reverse(raptor.STANDARD, 100, false), data)
		require.NoError(t, err)
		assert.Empty(t, result.Paths)

		result, err = raptor.NewRaptorService().Route(context.Background(), reverse(raptor.STANDARD, 100, true), data)
		require.NoError(t, err)
		require.Len(t, result.Paths, 1)
		path := result.Paths[0]
		assert.Equal(t, int32(360), path.EndTime)
		legs := path.TransitLegs()
		require.Len(t, legs, 2)
		assert.Equal(t, "L1-0", legs[0].Trip.TripID())
		assert.Equal(t, "L2-2", legs[1].Trip.TripID())
		assert.Equal(t, structs.GUARANTEED, legs[1].Constraint.Type)
	})
}
