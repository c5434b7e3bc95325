package raptor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/exp/slog"

	"github.com/ttpr0/go-raptor/structs"
)

//*******************************************
// raptor service
//*******************************************

// Creates and runs a worker for every request.
type RaptorService struct {
	logger *slog.Logger
}

func NewRaptorService() *RaptorService {
	return &RaptorService{
		logger: slog.Default(),
	}
}

func (self *RaptorService) Route(ctx context.Context, request RaptorRequest, data ITransitDataProvider) (RaptorWorkerResult, error) {
	search_id := uuid.New().String()
	logger := self.logger.With(slog.String("search", search_id))

	if err := data.Setup(); err != nil {
		return RaptorWorkerResult{}, err
	}
	if err := request.Validate(data.StopCount()); err != nil {
		return RaptorWorkerResult{}, err
	}
	slack := NewDefaultSlackProvider(request.Slack)
	if request.EnableTransferConstraints {
		if err := validateConstraints(data, slack); err != nil {
			return RaptorWorkerResult{}, err
		}
	}
	if request.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, request.Timeout)
		defer cancel()
	}

	worker := self.createWorker(ctx, logger, request, data, slack)
	logger.Debug("starting search",
		slog.String("profile", request.Profile.String()),
		slog.String("direction", request.Direction.String()),
	)
	start := time.Now()
	result, err := worker.Route(ctx)
	if err != nil {
		logger.Debug("search failed", slog.String("error", err.Error()))
		return RaptorWorkerResult{}, err
	}
	logger.Debug("search finished",
		slog.Int("iterations", int(result.Iterations)),
		slog.Int("paths", result.Paths.Length()),
		slog.Duration("took", time.Since(start)),
	)
	return result, nil
}

func (self *RaptorService) createWorker(ctx context.Context, logger *slog.Logger, request RaptorRequest, data ITransitDataProvider, slack *DefaultSlackProvider) *RangeRaptorWorker {
	var calc ITransitCalculator
	var search_slack ISlackProvider
	access_paths := request.AccessPaths
	egress_paths := request.EgressPaths
	if request.SearchForward() {
		calc = NewForwardCalculator(request.EarliestDepartureTime, request.LatestArrivalTime, request.SearchWindow, request.IterationStep)
		search_slack = slack
	} else {
		calc = NewReverseCalculator(request.EarliestDepartureTime, request.LatestArrivalTime, request.SearchWindow, request.IterationStep)
		search_slack = NewReverseSlackProvider(slack)
		access_paths, egress_paths = egress_paths, access_paths
	}

	rounds := NewRoundTracker(request.MaxNumberOfRounds(), request.AdditionalTransfers)
	round_slack := NewRoundSlackProvider(search_slack, rounds)
	costs := NewCostCalculator(request.Cost)
	debug := newDebugHandler(request.DebugListener)
	arena := NewArrivalArena(1024)
	access := NewAccessPaths(access_paths)
	egress := NewEgressPaths(egress_paths)

	var destination *DestinationArrivals
	if request.Profile != BEST_TIME {
		mapper := NewPathMapper(calc, slack, arena)
		destination = NewDestinationArrivals(calc, mapper, request.Profile == MULTI_CRITERIA, request.Timetable, debug)
	}

	lifecycle := NewLifeCycle()
	lifecycle.OnSetupIteration(rounds.SetupIteration)
	lifecycle.OnRoundComplete(rounds.RoundComplete)

	var state IWorkerState
	var strategy IRoutingStrategy
	if request.Profile == MULTI_CRITERIA {
		mc_state := NewMcWorkerState(calc, rounds, costs, arena, egress, destination, data.StopCount(), debug)
		state = mc_state
		strategy = NewMcRoutingStrategy(mc_state, calc, costs, rounds)
	} else {
		std_state := NewStdWorkerState(calc, rounds, costs, arena, egress, destination, data.StopCount(), debug)
		state = std_state
		strategy = NewStdRoutingStrategy(std_state, calc, costs, rounds)
	}
	lifecycle.OnSetupIteration(state.SetupIteration)
	lifecycle.OnPrepareForNextRound(state.PrepareForNextRound)
	lifecycle.OnIterationComplete(state.IterationComplete)
	if logger.Enabled(ctx, slog.LevelDebug) {
		subscribeRoundLog(lifecycle, logger, rounds)
	}

	return NewRangeRaptorWorker(data, calc, round_slack, state, strategy, rounds, lifecycle, access, request.EnableTransferConstraints)
}

func subscribeRoundLog(lifecycle *LifeCycle, logger *slog.Logger, rounds *RoundTracker) {
	lifecycle.OnRouteSearch(func(forward bool) {
		logger.Debug("route search", slog.Bool("forward", forward))
	})
	lifecycle.OnTransitsForRoundComplete(func() {
		logger.Debug("transits for round complete", slog.Int("round", int(rounds.Round())))
	})
	lifecycle.OnTransfersForRoundComplete(func() {
		logger.Debug("transfers for round complete", slog.Int("round", int(rounds.Round())))
	})
}

// A minimum transfer time below the regular slack can not be honored.
func validateConstraints(data ITransitDataProvider, slack ISlackProvider) error {
	for _, transfer := range data.ConstrainedTransfers() {
		if transfer.Constraint.Type != structs.MIN_TRANSFER_TIME {
			continue
		}
		from := data.GetRouteForIndex(transfer.FromPattern).Pattern
		to := data.GetRouteForIndex(transfer.ToPattern).Pattern
		regular := slack.AlightSlack(from.SlackIndex()) + slack.BoardSlack(to.SlackIndex())
		if transfer.Constraint.MinTransferTime < regular {
			return errors.Wrapf(ErrInvalidConfiguration, "min transfer time %d between pattern %d and %d is below the regular slack %d", transfer.Constraint.MinTransferTime, transfer.FromPattern, transfer.ToPattern, regular)
		}
	}
	return nil
}
