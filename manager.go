package main

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"

	"github.com/ttpr0/go-raptor/comps"
	"github.com/ttpr0/go-raptor/graph"
	"github.com/ttpr0/go-raptor/raptor"
	. "github.com/ttpr0/go-raptor/util"
)

var validate = validator.New()

// Loads the snapshot, it is prepared first if missing or if rebuild is set.
func NewRoutingManager(config Config) (*RoutingManager, error) {
	build := config.Transit.Rebuild
	if !FileExists(config.Transit.Path + "-transit") {
		build = true
	}
	if build {
		transit, err := PrepareSnapshot(config.Transit)
		if err != nil {
			return nil, err
		}
		return NewRoutingManagerFromTransit(transit, config)
	}

	meta, err := ReadJSONFromFile[SnapshotMeta](config.Transit.Path + "-meta")
	if err == nil {
		slog.Info(fmt.Sprintf("loading transit prepared at %v from %v", meta.Created, meta.Source))
	}
	transit, err := comps.Load[*comps.Transit](config.Transit.Path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load transit snapshot")
	}
	return NewRoutingManagerFromTransit(transit, config)
}

func NewRoutingManagerFromTransit(transit *comps.Transit, config Config) (*RoutingManager, error) {
	g := graph.NewTransitGraph(transit)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	slog.Info(fmt.Sprintf("loaded transit with %v stops and %v patterns", g.StopCount(), g.PatternCount()))
	return &RoutingManager{
		config:  config,
		graph:   g,
		service: raptor.NewRaptorService(),
	}, nil
}

// Shares one snapshot between all searches.
type RoutingManager struct {
	config  Config
	graph   *graph.TransitGraph
	service *raptor.RaptorService
}

func (self *RoutingManager) Route(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if err := validate.Struct(req); err != nil {
		return SearchResponse{ID: req.ID}, errors.Wrap(raptor.ErrInvalidConfiguration, err.Error())
	}
	request, err := BuildRaptorRequest(self.graph, self.config, req)
	if err != nil {
		return SearchResponse{ID: req.ID}, err
	}
	data := graph.NewTransitData(self.graph, req.Filter)
	slog.Debug(fmt.Sprintf("routing request %v", req.ID))
	result, err := self.service.Route(ctx, request, data)
	if err != nil {
		return SearchResponse{ID: req.ID}, err
	}
	return BuildSearchResponse(self.graph, req.ID, result, request.Profile == raptor.BEST_TIME), nil
}

// Routes independent requests in parallel.
//
// Failed requests carry their error in the response, only inconsistent
// transit data aborts the whole batch.
func (self *RoutingManager) RouteMany(ctx context.Context, reqs []SearchRequest) ([]SearchResponse, error) {
	responses := make([]SearchResponse, len(reqs))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(self.config.Workers)
	for i, req := range reqs {
		i, req := i, req
		group.Go(func() error {
			resp, err := self.Route(ctx, req)
			if err != nil {
				if errors.Is(err, raptor.ErrDataInconsistency) {
					return err
				}
				slog.Warn(fmt.Sprintf("request %v failed: %v", resp.ID, err))
				resp.Error = err.Error()
			}
			responses[i] = resp
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return responses, nil
}
