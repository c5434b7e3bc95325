package raptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTracker(t *testing.T) {
	rounds := NewRoundTracker(5, 1)
	rounds.SetupIteration(0)
	assert.Equal(t, int32(0), rounds.Round())
	assert.True(t, rounds.IsFirstRound())

	assert.Equal(t, int32(1), rounds.NextRound())
	assert.True(t, rounds.IsFirstRound())
	rounds.RoundComplete(false)
	rounds.NextRound()
	assert.False(t, rounds.IsFirstRound())

	// destination reached in round 2 allows one more round
	rounds.RoundComplete(true)
	assert.True(t, rounds.HasMoreRounds())
	rounds.NextRound()
	rounds.RoundComplete(true)
	assert.False(t, rounds.HasMoreRounds())

	// the limit survives new iterations
	rounds.SetupIteration(0)
	rounds.NextRound()
	rounds.NextRound()
	assert.True(t, rounds.HasMoreRounds())
	rounds.NextRound()
	assert.False(t, rounds.HasMoreRounds())
}

func TestRoundTrackerMaxRounds(t *testing.T) {
	rounds := NewRoundTracker(2, 5)
	rounds.SetupIteration(0)
	rounds.NextRound()
	rounds.RoundComplete(true)
	assert.True(t, rounds.HasMoreRounds())
	rounds.NextRound()
	assert.False(t, rounds.HasMoreRounds())
}
