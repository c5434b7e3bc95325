package raptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlackProviders(t *testing.T) {
	slack := NewDefaultSlackProvider(SlackParams{
		TransferSlack:      60,
		BoardSlack:         10,
		AlightSlack:        20,
		BoardSlackForIndex: []int32{30, 40},
	})
	assert.Equal(t, int32(40), slack.BoardSlack(1))
	assert.Equal(t, int32(10), slack.BoardSlack(5))
	assert.Equal(t, int32(20), slack.AlightSlack(1))

	reverse := NewReverseSlackProvider(slack)
	assert.Equal(t, int32(20), reverse.BoardSlack(5))
	assert.Equal(t, int32(10), reverse.AlightSlack(5))

	rounds := NewRoundTracker(5, 5)
	adapter := NewRoundSlackProvider(slack, rounds)
	rounds.SetupIteration(0)
	rounds.NextRound()
	assert.Equal(t, int32(10), adapter.BoardSlack(5))
	rounds.NextRound()
	assert.Equal(t, int32(70), adapter.BoardSlack(5))
	assert.Equal(t, int32(20), adapter.AlightSlack(5))
}
