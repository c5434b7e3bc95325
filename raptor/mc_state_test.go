package raptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrivalsPreviousRound(t *testing.T) {
	calc := NewForwardCalculator(100, TIME_NOT_SET, 0, 60)
	rounds := NewRoundTracker(5, 0)
	state := NewMcWorkerState(calc, rounds, NewCostCalculator(DefaultCostParams()), NewArrivalArena(16), NewEgressPaths(nil), nil, 3, nil)

	access := []AccessEgress{walk(0, 30), walk(0, 10), walk(1, 20)}
	rounds.SetupIteration(100)
	state.SetupIteration(100)
	for i := range access {
		state.SetAccessToStop(&access[i], 100)
	}
	state.PrepareForNextRound(rounds.NextRound())

	at_0 := state.ArrivalsPreviousRound(0)
	require.Len(t, at_0, 1)
	assert.Equal(t, int32(110), state.Arrival(at_0[0]).Time)

	at_1 := state.ArrivalsPreviousRound(1)
	require.Len(t, at_1, 1)
	assert.Equal(t, int32(120), state.Arrival(at_1[0]).Time)
	assert.Empty(t, state.ArrivalsPreviousRound(2))

	allocs := testing.AllocsPerRun(100, func() {
		state.ArrivalsPreviousRound(0)
		state.ArrivalsPreviousRound(1)
	})
	assert.Zero(t, allocs)
}
