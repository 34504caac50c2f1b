package chash

import (
	"bytes"
	"fmt"

	"go.uber.org/zap"
)

// Entry is a key/value pair stored in a Table.
//
// The pointer returned by Insert or Lookup keeps its address while the table
// grows. Once its key is deleted, or the table destroyed, the entry reports
// Deleted with a nil key and zero value; a later insert of any key gets a
// new entry.
type Entry[V any] struct {
	key     []byte
	value   V
	next    uint32
	deleted bool
}

// Key returns a copy of the stored key
func (e *Entry[V]) Key() []byte {
	return bytes.Clone(e.key)
}

// Value returns the value supplied by the caller.
func (e *Entry[V]) Value() V {
	return e.value
}

// Deleted reports whether the entry has been removed from its table
func (e *Entry[V]) Deleted() bool {
	return e.deleted
}

func (e *Entry[V]) retire() {
	var zero V
	e.key = nil
	e.value = zero
	e.next = 0
	e.deleted = true
}

// Table is a chained hash table keyed by byte strings
type Table[V any] struct {
	dir   []uint32
	arena entryArena[V]
	opts  options

	rehashes       uint64
	skippedGrowths uint64
	destroyed      bool
}

// New creates a table with initialSize empty buckets
func New[V any](initialSize int, opts ...Option) (*Table[V], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	if initialSize <= 0 {
		return nil, fmt.Errorf("initial size %d: %w", initialSize, ErrInvalidArgument)
	}
	if initialSize > o.maxBuckets {
		return nil, fmt.Errorf("initial size %d exceeds %d buckets: %w", initialSize, o.maxBuckets, ErrAllocation)
	}

	return &Table[V]{
		dir:   make([]uint32, initialSize),
		arena: entryArena[V]{max: o.maxEntries},
		opts:  o,
	}, nil
}

func (t *Table[V]) index(key []byte, size int) int {
	return int(t.opts.hasher(key) % uint64(size))
}

// Insert stores value under key. An existing key keeps its chain position
// and has both its stored key and value replaced. A new key is appended to
// the tail of its chain; if that chain was not empty the directory grows.
func (t *Table[V]) Insert(key []byte, value V) (*Entry[V], error) {
	if t.destroyed {
		return nil, ErrDestroyed
	}
	if key == nil {
		return nil, fmt.Errorf("nil key: %w", ErrInvalidArgument)
	}

	idx := t.index(key, len(t.dir))

	// First entry in the bucket
	if t.dir[idx] == 0 {
		h, e, err := t.arena.alloc()
		if err != nil {
			return nil, err
		}
		e.key = bytes.Clone(key)
		e.value = value
		t.dir[idx] = h
		return e, nil
	}

	var tail *Entry[V]
	for h := t.dir[idx]; h != 0; h = tail.next {
		tail = t.arena.at(h)
		if bytes.Equal(tail.key, key) {
			tail.key = bytes.Clone(key)
			tail.value = value
			return tail, nil
		}
	}

	h, e, err := t.arena.alloc()
	if err != nil {
		return nil, err
	}
	e.key = bytes.Clone(key)
	e.value = value
	tail.next = h

	t.grow()
	return e, nil
}

// grow multiplies the directory after a collision. Growth that cannot be
// allocated is skipped and the insert still succeeds.
func (t *Table[V]) grow() {
	from := len(t.dir)
	to := from * t.opts.growthFactor
	if to/t.opts.growthFactor != from || to > t.opts.maxBuckets {
		t.skippedGrowths++
		t.opts.logger.Warn("directory growth skipped",
			zap.Int("from", from),
			zap.Int("to", to),
			zap.Int("max", t.opts.maxBuckets))
		return
	}

	t.opts.logger.Debug("growing directory",
		zap.Int("from", from),
		zap.Int("to", to),
		zap.Int("entries", t.arena.live))
	t.Rehash(to)
}

// Rehash moves every entry into a new directory of newSize buckets. Entries
// are relinked, not copied, and order within a bucket is not preserved.
// It returns false and leaves the table untouched if the directory cannot
// be allocated.
func (t *Table[V]) Rehash(newSize int) bool {
	if t.destroyed || newSize <= 0 || newSize > t.opts.maxBuckets {
		return false
	}

	dir := make([]uint32, newSize)
	for _, h := range t.dir {
		for h != 0 {
			e := t.arena.at(h)
			next := e.next
			idx := t.index(e.key, newSize)
			e.next = dir[idx]
			dir[idx] = h
			h = next
		}
	}
	t.dir = dir
	t.rehashes++

	t.opts.logger.Debug("rehash complete",
		zap.Int("buckets", newSize),
		zap.Int("entries", t.arena.live))
	return true
}

// Lookup returns the entry stored under key
func (t *Table[V]) Lookup(key []byte) (*Entry[V], bool) {
	if t.destroyed || key == nil {
		return nil, false
	}

	for h := t.dir[t.index(key, len(t.dir))]; h != 0; {
		e := t.arena.at(h)
		if bytes.Equal(e.key, key) {
			return e, true
		}
		h = e.next
	}
	return nil, false
}

// Get returns the value stored under key
func (t *Table[V]) Get(key []byte) (V, bool) {
	e, ok := t.Lookup(key)
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Delete unlinks key from its chain and reports whether it was present.
// The directory never shrinks.
func (t *Table[V]) Delete(key []byte) bool {
	if t.destroyed || key == nil {
		return false
	}

	idx := t.index(key, len(t.dir))
	head := t.dir[idx]
	if head == 0 {
		return false
	}

	e := t.arena.at(head)
	if bytes.Equal(e.key, key) {
		t.dir[idx] = e.next
		t.arena.release(head)
		return true
	}

	for e.next != 0 {
		h := e.next
		next := t.arena.at(h)
		if bytes.Equal(next.key, key) {
			e.next = next.next
			t.arena.release(h)
			return true
		}
		e = next
	}
	return false
}

// Destroy releases the directory and every entry. Values are left alone.
func (t *Table[V]) Destroy() {
	if t.destroyed {
		return
	}
	t.dir = nil
	t.arena.reset()
	t.destroyed = true
}

// Len returns the number of stored keys
func (t *Table[V]) Len() int {
	return t.arena.live
}

// Buckets returns the current directory size
func (t *Table[V]) Buckets() int {
	return len(t.dir)
}
