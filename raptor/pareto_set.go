package raptor

import (
	. "github.com/ttpr0/go-raptor/util"
)

//*******************************************
// pareto set
//*******************************************

// Set of mutually non-dominated elements.
//
// Insertion order of the surviving elements is kept.
type ParetoSet[T any] struct {
	elements List[T]
	// l is at least as good as r in every criterion
	dominates func(l, r T) bool
	on_drop   func(dropped T, by T)
}

func NewParetoSet[T any](dominates func(l, r T) bool) *ParetoSet[T] {
	return &ParetoSet[T]{
		elements:  NewList[T](4),
		dominates: dominates,
	}
}

// Registers a callback invoked for every element removed by a new one.
func (self *ParetoSet[T]) OnDrop(fn func(dropped T, by T)) {
	self.on_drop = fn
}

// Adds value if no element dominates it, removes all elements dominated by value.
//
// A candidate equal to an element in all criteria is rejected.
func (self *ParetoSet[T]) Add(value T) bool {
	for _, element := range self.elements {
		if self.dominates(element, value) {
			return false
		}
	}
	count := 0
	for _, element := range self.elements {
		if self.dominates(value, element) {
			if self.on_drop != nil {
				self.on_drop(element, value)
			}
			continue
		}
		self.elements[count] = element
		count += 1
	}
	var empty T
	for i := count; i < len(self.elements); i++ {
		self.elements[i] = empty
	}
	self.elements = self.elements[:count]
	self.elements.Add(value)
	return true
}

// Returns true if some element dominates value.
func (self *ParetoSet[T]) IsDominated(value T) bool {
	for _, element := range self.elements {
		if self.dominates(element, value) {
			return true
		}
	}
	return false
}

func (self *ParetoSet[T]) Length() int {
	return len(self.elements)
}
func (self *ParetoSet[T]) Get(index int) T {
	return self.elements[index]
}
func (self *ParetoSet[T]) IsEmpty() bool {
	return len(self.elements) == 0
}
func (self *ParetoSet[T]) Clear() {
	self.elements.Clear()
}

// Copy of the current elements.
func (self *ParetoSet[T]) Elements() List[T] {
	elements := NewList[T](len(self.elements))
	for _, element := range self.elements {
		elements.Add(element)
	}
	return elements
}
