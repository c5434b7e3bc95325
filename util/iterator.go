package util

//*******************************************
// int iterators
//*******************************************

type IIntIterator interface {
	HasNext() bool
	Next() int32
}

// Iterates from start towards end (exclusive) in steps of step.
//
// A negative step iterates downwards.
func NewIntIterator(start, end, step int32) *IntIterator {
	return &IntIterator{
		curr: start,
		end:  end,
		step: step,
	}
}

type IntIterator struct {
	curr int32
	end  int32
	step int32
}

func (self *IntIterator) HasNext() bool {
	if self.step > 0 {
		return self.curr < self.end
	}
	return self.curr > self.end
}
func (self *IntIterator) Next() int32 {
	v := self.curr
	self.curr += self.step
	return v
}

// Iterator over the values of an array.
func NewArrayIterator(values Array[int32]) *ArrayIterator {
	return &ArrayIterator{values: values}
}

type ArrayIterator struct {
	values Array[int32]
	index  int
}

func (self *ArrayIterator) HasNext() bool {
	return self.index < len(self.values)
}
func (self *ArrayIterator) Next() int32 {
	v := self.values[self.index]
	self.index += 1
	return v
}

var EMPTY_ITERATOR IIntIterator = NewArrayIterator(nil)
