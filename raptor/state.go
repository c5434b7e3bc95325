package raptor

import (
	"github.com/ttpr0/go-raptor/structs"
	. "github.com/ttpr0/go-raptor/util"
)

//*******************************************
// worker state
//*******************************************

// Arrivals of a search. Everything reachable through StopsTouched* is
// reset between iterations, best values and arrivals are kept.
type IWorkerState interface {
	SetupIteration(departure_time int32)
	PrepareForNextRound(round int32)
	IterationComplete()
	IsNewRoundAvailable() bool
	IsDestinationReachedInCurrentRound() bool
	StopsTouchedPreviousRound() IIntIterator
	StopsTouchedByTransitCurrentRound() IIntIterator
	// Arrival with the given handle, only valid until the next arrival is added.
	Arrival(handle int32) *StopArrival
	SetAccessToStop(access *AccessEgress, departure_time int32)
	TransferToStops(from_stop int32, transfers []structs.Transfer) error
	ExtractPaths() List[*Path]
	ExtractStopArrivals() *StopArrivals
}

// Adds destination arrivals for all egress legs at the arrival's stop.
//
// Walking egress legs may only follow arrivals on-board a vehicle.
func arriveAtDestination(calc ITransitCalculator, costs *CostCalculator, egress *EgressPaths, destination *DestinationArrivals, handle int32, arrival *StopArrival) {
	if destination == nil || !egress.IsEgressStop(arrival.Stop) {
		return
	}
	candidate := *arrival
	for _, leg := range egress.EgressAtStop(candidate.Stop) {
		if !candidate.ArrivedOnBoard() && !leg.HasRides() {
			continue
		}
		departure := calc.DepartureTime(leg, candidate.Time)
		if departure == TIME_NOT_SET {
			continue
		}
		time := calc.PlusDuration(departure, leg.DurationInSearch())
		if calc.ExceedsTimeLimit(time) {
			continue
		}
		destination.Add(DestinationArrival{
			Previous:          handle,
			Egress:            leg,
			Time:              time,
			Cost:              candidate.Cost + leg.Cost + costs.WaitCost(calc.Duration(candidate.Time, departure)),
			NumberOfTransfers: candidate.Round + leg.NumberOfRides - 1,
			Iteration:         candidate.Iteration,
		})
	}
}

func newAccessArrival(calc ITransitCalculator, access *AccessEgress, departure_time int32, round int32, iteration int32) (StopArrival, bool) {
	departure := calc.DepartureTime(access, departure_time)
	if departure == TIME_NOT_SET {
		return StopArrival{}, false
	}
	return StopArrival{
		Type:      ACCESS_ARRIVAL,
		Stop:      access.Stop,
		Round:     round,
		Time:      calc.PlusDuration(departure, access.DurationInSearch()),
		Cost:      access.Cost,
		Previous:  -1,
		Iteration: iteration,
		Access:    access,
	}, true
}

func newTransferArrival(calc ITransitCalculator, costs *CostCalculator, from int32, arrival *StopArrival, transfer structs.Transfer) StopArrival {
	return StopArrival{
		Type:      TRANSFER_ARRIVAL,
		Stop:      calc.TransferTarget(transfer),
		Round:     arrival.Round,
		Time:      calc.PlusDuration(arrival.Time, transfer.Duration),
		Cost:      arrival.Cost + costs.WalkCost(transfer.Duration),
		Previous:  from,
		Iteration: arrival.Iteration,
		Duration:  transfer.Duration,
	}
}
