package raptor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/ttpr0/go-raptor/util"
)

func collect(it IIntIterator) []int32 {
	values := []int32{}
	for it.HasNext() {
		values = append(values, it.Next())
	}
	return values
}

func TestForwardMinutes(t *testing.T) {
	calc := NewForwardCalculator(28740, TIME_NOT_SET, 120, 60)
	assert.Equal(t, []int32{28800, 28740}, collect(calc.RangeRaptorMinutes()))

	calc = NewForwardCalculator(1000, TIME_NOT_SET, 90, 60)
	assert.Equal(t, []int32{1060, 1000}, collect(calc.RangeRaptorMinutes()))

	calc = NewForwardCalculator(1000, TIME_NOT_SET, 0, 60)
	assert.Equal(t, []int32{1000}, collect(calc.RangeRaptorMinutes()))
	assert.Equal(t, []int32{940, 880}, collect(calc.PenaltyMinutes(120)))
	assert.Empty(t, collect(calc.PenaltyMinutes(0)))
}

func TestReverseMinutes(t *testing.T) {
	calc := NewReverseCalculator(TIME_NOT_SET, 2000, 180, 60)
	assert.Equal(t, []int32{1880, 1940, 2000}, collect(calc.RangeRaptorMinutes()))
	assert.Equal(t, []int32{2060}, collect(calc.PenaltyMinutes(60)))
}

func TestCalculatorDirection(t *testing.T) {
	forward := NewForwardCalculator(0, 500, 0, 60)
	assert.True(t, forward.IsBefore(1, 2))
	assert.Equal(t, int32(15), forward.PlusDuration(10, 5))
	assert.Equal(t, int32(5), forward.Duration(10, 15))
	assert.True(t, forward.ExceedsTimeLimit(501))
	assert.False(t, forward.ExceedsTimeLimit(500))
	assert.Equal(t, []int32{0, 1, 2}, collect(forward.PatternStopIterator(3)))
	assert.Equal(t, int32(3), forward.TransferTarget(structsTransfer(1, 3)))

	reverse := NewReverseCalculator(100, 500, 0, 60)
	assert.True(t, reverse.IsBefore(2, 1))
	assert.Equal(t, int32(5), reverse.PlusDuration(10, 5))
	assert.Equal(t, int32(5), reverse.Duration(15, 10))
	assert.True(t, reverse.ExceedsTimeLimit(99))
	assert.Equal(t, []int32{2, 1, 0}, collect(reverse.PatternStopIterator(3)))
	assert.Equal(t, int32(1), reverse.TransferTarget(structsTransfer(1, 3)))
	assert.Equal(t, UNREACHED_REVERSE, reverse.UnreachedTime())

	// reverse boarding happens where the real trip alights
	pattern := &restrictedPattern{testPattern: testPattern{stops: []int32{0, 1}}, no_alight: 1}
	assert.True(t, forward.BoardingPossibleAt(pattern, 1))
	assert.False(t, reverse.BoardingPossibleAt(pattern, 1))
}

type restrictedPattern struct {
	testPattern
	no_alight int32
}

func (self *restrictedPattern) AlightingPossibleAt(stop_pos int32) bool {
	return stop_pos != self.no_alight
}
