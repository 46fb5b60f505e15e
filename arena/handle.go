// Package arena implements a dense, slotted, generational-style store keyed
// by a 1-based non-zero integer handle with a free-list for recycled slots.
//
// A Handle is cheap to copy and carries no ownership: it stays valid only
// while the slot it names is filled. Handles are tagged with a phantom role
// (VertexKey, EdgeKey, FaceKey, ...) purely at the type level so that an
// edge handle can never be passed where a vertex handle is expected.
package arena

import "fmt"

// Handle is a 1-based non-zero integer tagged with a phantom role K.
// The zero value is the reserved "no handle" sentinel; slot 0 of every
// Arena is never used, so any non-zero Handle is shaped validly.
type Handle[K any] struct {
	id uint32
}

// NewHandle wraps a raw id. It panics if id is zero; callers that need to
// round-trip a possibly-absent handle should use Valid/zero-value instead.
func NewHandle[K any](id uint32) Handle[K] {
	if id == 0 {
		panic("arena: handle id must be non-zero")
	}
	return Handle[K]{id: id}
}

// Valid reports whether h names a slot at all (i.e. is not the zero value).
// It does not report whether the slot is currently filled; use Arena.Get
// for that.
func (h Handle[K]) Valid() bool { return h.id != 0 }

// Raw returns the underlying 1-based id, 0 for the zero value.
func (h Handle[K]) Raw() uint32 { return h.id }

func (h Handle[K]) String() string {
	if !h.Valid() {
		return "<nil>"
	}
	return fmt.Sprintf("%d", h.id)
}

// MarshalJSON encodes a Handle as a bare unsigned integer (0 for the
// zero/absent handle), the representation replication and undo logs use.
func (h Handle[K]) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%d", h.id)), nil
}

// UnmarshalJSON decodes a Handle from a bare unsigned integer.
func (h *Handle[K]) UnmarshalJSON(data []byte) error {
	var id uint32
	if _, err := fmt.Sscanf(string(data), "%d", &id); err != nil {
		return fmt.Errorf("arena: decode handle: %w", err)
	}
	h.id = id
	return nil
}
