package ops

import "github.com/go-dcel/dcel"

// Mekh is a reserved slot: making an edge whose insertion promotes an
// isolated vertex into a hole of the face it lies in. The source this
// engine is grounded on left this operator's semantics unspecified, so it
// stays a typed hole here too — Check always fails, clearly refusing to
// silently no-op.
type Mekh[VW, EW, FW any] struct{}

func (op Mekh[VW, EW, FW]) Check(d *dcel.Dcel[VW, EW, FW]) error { return ErrNotImplemented }

func (op Mekh[VW, EW, FW]) Apply(d *dcel.Dcel[VW, EW, FW]) (Op[VW, EW, FW], error) {
	return nil, ErrNotImplemented
}

// Kemh is Mekh's reserved inverse slot.
type Kemh[VW, EW, FW any] struct{}

func (op Kemh[VW, EW, FW]) Check(d *dcel.Dcel[VW, EW, FW]) error { return ErrNotImplemented }

func (op Kemh[VW, EW, FW]) Apply(d *dcel.Dcel[VW, EW, FW]) (Op[VW, EW, FW], error) {
	return nil, ErrNotImplemented
}
