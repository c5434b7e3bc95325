package util

import (
	"math/bits"
)

//*******************************************
// bitset
//*******************************************

// Fixed size set of non-negative integers.
type BitSet struct {
	words []uint64
	size  int
}

func NewBitSet(size int) BitSet {
	return BitSet{
		words: make([]uint64, (size+63)/64),
		size:  size,
	}
}

func (self *BitSet) Size() int {
	return self.size
}
func (self *BitSet) Set(index int32) {
	self.words[index>>6] |= 1 << (uint(index) & 63)
}
func (self *BitSet) Contains(index int32) bool {
	return self.words[index>>6]&(1<<(uint(index)&63)) != 0
}
func (self *BitSet) IsEmpty() bool {
	for _, w := range self.words {
		if w != 0 {
			return false
		}
	}
	return true
}
func (self *BitSet) Clear() {
	for i := range self.words {
		self.words[i] = 0
	}
}

// Copies all bits of other into self, sizes have to match.
func (self *BitSet) CopyFrom(other *BitSet) {
	copy(self.words, other.words)
}

// Calls fn for every set bit in ascending order.
func (self *BitSet) ForEach(fn func(int32)) {
	for i, w := range self.words {
		for w != 0 {
			t := bits.TrailingZeros64(w)
			fn(int32(i*64 + t))
			w &= w - 1
		}
	}
}

// Returns an iterator over all set bits in ascending order.
//
// The set must not be modified while iterating.
func (self *BitSet) Iterator() *BitSetIterator {
	return &BitSetIterator{set: self, word: 0, curr: self.firstWord(0)}
}

func (self *BitSet) firstWord(i int) uint64 {
	if i < len(self.words) {
		return self.words[i]
	}
	return 0
}

type BitSetIterator struct {
	set  *BitSet
	word int
	curr uint64
}

func (self *BitSetIterator) HasNext() bool {
	for self.curr == 0 {
		self.word += 1
		if self.word >= len(self.set.words) {
			return false
		}
		self.curr = self.set.words[self.word]
	}
	return true
}
func (self *BitSetIterator) Next() int32 {
	t := bits.TrailingZeros64(self.curr)
	self.curr &= self.curr - 1
	return int32(self.word*64 + t)
}
