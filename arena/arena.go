package arena

import (
	"errors"
	"iter"
)

// ErrDuplicateOrOutOfRange is returned by GetDisjointMut when two requested
// handles alias the same slot, or any handle is out of range / unfilled.
var ErrDuplicateOrOutOfRange = errors.New("arena: duplicate or out-of-range handle")

// Arena is a dense mapping from 1-based non-zero Handle to *T, with a
// free-list of previously vacated handles for recycling. The zero value is
// a ready-to-use empty arena (slot 0 is reserved and never filled).
type Arena[T any, K any] struct {
	slots []*T
	free  []uint32
}

// New returns an empty Arena. Using the zero value directly also works;
// New exists for symmetry with the rest of the package's constructors.
func New[T any, K any]() *Arena[T, K] {
	return &Arena[T, K]{slots: make([]*T, 1)}
}

func (a *Arena[T, K]) ensureZeroSlot() {
	if a.slots == nil {
		a.slots = make([]*T, 1)
	}
}

// Len reports the number of filled slots (the "size", excluding slot 0).
func (a *Arena[T, K]) Len() int {
	n := 0
	for _, s := range a.slots {
		if s != nil {
			n++
		}
	}
	return n
}

// Cap reports the current backing length, i.e. the exclusive upper bound on
// handle ids that have ever been allocated. Used to size a BitMask.
func (a *Arena[T, K]) Cap() int {
	return len(a.slots)
}

// Insert reuses a freed handle if one is available, otherwise allocates a
// fresh monotonically increasing handle. Never fails.
func (a *Arena[T, K]) Insert(v T) Handle[K] {
	a.ensureZeroSlot()
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[id] = &v
		return Handle[K]{id: id}
	}
	id := uint32(len(a.slots))
	a.slots = append(a.slots, &v)
	return Handle[K]{id: id}
}

// Reserve allocates a handle whose slot is empty, to be filled later by Set.
// Used when two records must reference each other before both exist (e.g.
// a pair of twin half-edges).
func (a *Arena[T, K]) Reserve() Handle[K] {
	a.ensureZeroSlot()
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[id] = nil
		return Handle[K]{id: id}
	}
	id := uint32(len(a.slots))
	a.slots = append(a.slots, nil)
	return Handle[K]{id: id}
}

// Set places v at h, growing the backing storage if h is beyond the
// current length. Intended to fill a slot previously returned by Reserve,
// but works for any handle.
func (a *Arena[T, K]) Set(h Handle[K], v T) {
	a.ensureZeroSlot()
	idx := int(h.id)
	if idx >= len(a.slots) {
		grown := make([]*T, idx+1)
		copy(grown, a.slots)
		a.slots = grown
	}
	a.slots[idx] = &v
}

// Get returns a pointer to the value at h, or nil if h is out of range,
// zero, or the slot is empty. The returned pointer may be mutated directly
// in place of a separate GetMut method.
func (a *Arena[T, K]) Get(h Handle[K]) *T {
	if !h.Valid() || int(h.id) >= len(a.slots) {
		return nil
	}
	return a.slots[h.id]
}

// GetMut is an alias for Get: in Go, a non-nil pointer already grants
// mutable access, so there is no separate read/write accessor pair.
func (a *Arena[T, K]) GetMut(h Handle[K]) *T { return a.Get(h) }

// GetDisjointMut returns simultaneous pointers to N non-aliased, filled
// slots. It fails if any handle repeats, is out of range, or names an
// empty slot.
func (a *Arena[T, K]) GetDisjointMut(handles []Handle[K]) ([]*T, error) {
	seen := make(map[uint32]struct{}, len(handles))
	out := make([]*T, len(handles))
	for i, h := range handles {
		if _, dup := seen[h.id]; dup {
			return nil, ErrDuplicateOrOutOfRange
		}
		seen[h.id] = struct{}{}
		v := a.Get(h)
		if v == nil {
			return nil, ErrDuplicateOrOutOfRange
		}
		out[i] = v
	}
	return out, nil
}

// Remove vacates h, free-listing it for reuse, and returns the value that
// was stored there (ok is false if the slot was already empty).
func (a *Arena[T, K]) Remove(h Handle[K]) (value T, ok bool) {
	if !h.Valid() || int(h.id) >= len(a.slots) || a.slots[h.id] == nil {
		return value, false
	}
	value = *a.slots[h.id]
	a.slots[h.id] = nil
	a.free = append(a.free, h.id)
	return value, true
}

// All iterates (Handle, *T) pairs over every filled slot, skipping slot 0
// and any vacated slot, in ascending handle order.
func (a *Arena[T, K]) All() iter.Seq2[Handle[K], *T] {
	return func(yield func(Handle[K], *T) bool) {
		for id := 1; id < len(a.slots); id++ {
			if a.slots[id] == nil {
				continue
			}
			if !yield(Handle[K]{id: uint32(id)}, a.slots[id]) {
				return
			}
		}
	}
}
