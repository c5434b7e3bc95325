package util

import (
	"testing"
)

func TestBitSet(t *testing.T) {
	set := NewBitSet(130)
	if !set.IsEmpty() {
		t.Errorf("new set should be empty")
	}
	set.Set(3)
	set.Set(64)
	set.Set(129)
	if !set.Contains(64) || set.Contains(65) {
		t.Errorf("Contains is wrong")
	}

	values := NewList[int32](3)
	it := set.Iterator()
	for it.HasNext() {
		values.Add(it.Next())
	}
	if values.Length() != 3 || values[0] != 3 || values[1] != 64 || values[2] != 129 {
		t.Errorf("iterator = %v; want [3 64 129]", values)
	}

	count := 0
	set.ForEach(func(int32) { count += 1 })
	if count != 3 {
		t.Errorf("ForEach visited %v; want 3", count)
	}

	set.Clear()
	if !set.IsEmpty() {
		t.Errorf("set should be empty after Clear")
	}
}

func TestIntIterator(t *testing.T) {
	values := NewList[int32](3)
	it := NewIntIterator(180, 0, -60)
	for it.HasNext() {
		values.Add(it.Next())
	}
	if values.Length() != 3 || values[0] != 180 || values[2] != 60 {
		t.Errorf("descending = %v; want [180 120 60]", values)
	}

	values.Clear()
	it = NewIntIterator(0, 3, 1)
	for it.HasNext() {
		values.Add(it.Next())
	}
	if values.Length() != 3 || values[2] != 2 {
		t.Errorf("ascending = %v; want [0 1 2]", values)
	}
}

func TestListSwapRemove(t *testing.T) {
	list := List[int32]{1, 2, 3, 4}
	list.SwapRemove(1)
	if list.Length() != 3 || list[1] != 4 {
		t.Errorf("SwapRemove = %v; want [1 4 3]", list)
	}
}

func TestOptional(t *testing.T) {
	o := None[int32]()
	if o.HasValue() || o.ValueOr(7) != 7 {
		t.Errorf("None should be empty")
	}
	o = Some[int32](3)
	if !o.HasValue() || o.Value != 3 {
		t.Errorf("Some should hold 3")
	}
}
