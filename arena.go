package chash

import (
	"fmt"
	"math"
)

// entryArena maps 1-based handles to entries. Handle 0 is the nil link.
// Handles are recycled through the free list, entries never are: every
// alloc hands out a fresh *Entry, so a pointer kept across a delete keeps
// pointing at the released entry and never at its successor.
type entryArena[V any] struct {
	slots []*Entry[V]
	free  []uint32 // released handles
	live  int
	max   int // 0 = unlimited
}

func (a *entryArena[V]) at(h uint32) *Entry[V] {
	return a.slots[h-1]
}

func (a *entryArena[V]) alloc() (uint32, *Entry[V], error) {
	if a.max > 0 && a.live >= a.max {
		return 0, nil, fmt.Errorf("entry limit %d reached: %w", a.max, ErrAllocation)
	}

	var h uint32
	if n := len(a.free); n > 0 {
		h = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		if uint64(len(a.slots)) >= math.MaxUint32 {
			return 0, nil, fmt.Errorf("entry handles exhausted: %w", ErrAllocation)
		}
		a.slots = append(a.slots, nil)
		h = uint32(len(a.slots))
	}

	e := new(Entry[V])
	a.slots[h-1] = e
	a.live++
	return h, e, nil
}

// release detaches the entry from its handle and marks it deleted.
func (a *entryArena[V]) release(h uint32) {
	a.slots[h-1].retire()
	a.slots[h-1] = nil
	a.free = append(a.free, h)
	a.live--
}

// reset retires every live entry and drops all handles.
func (a *entryArena[V]) reset() {
	for _, e := range a.slots {
		if e != nil {
			e.retire()
		}
	}
	a.slots = nil
	a.free = nil
	a.live = 0
}
