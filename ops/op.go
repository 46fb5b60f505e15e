// Package ops implements the invertible Euler-operator topology mutations
// (MVVEF/KVVEF, MVH/KVH, MVE/KVE, MEF/KEF, the MEKH/KEMH typed hole, and
// TranslateVertex) plus two combo operators (CollapseEdge/UncollapseEdge)
// built from the primitives, a homogeneous Op history interface, and a
// CommandLog that records inverses for undo/redo.
package ops

import "github.com/go-dcel/dcel"

// Op is implemented by every concrete operator. Its Apply method returns the
// operator's inverse, also as an Op — Go has no closed sum-type construct
// the way the traits this engine is ported from do, so a plain interface
// plays that role: every concrete operator type (Mvvef, Kef, TranslateVertex,
// ...) implements Op, and a type switch over an Op value is this codebase's
// dispatch in place of a hand-rolled tagged enum.
type Op[VW, EW, FW any] interface {
	// Check is a pure precondition test; it must not mutate dcel.
	Check(d *dcel.Dcel[VW, EW, FW]) error
	// Apply mutates dcel and returns the inverse operator. If it fails, the
	// Dcel is left exactly as check promised it would be: Check having
	// already run and succeeded is what makes that guarantee meaningful —
	// Apply itself is not expected to fail once Check has passed.
	Apply(d *dcel.Dcel[VW, EW, FW]) (Op[VW, EW, FW], error)
}

// CheckApply runs Check then, on success, Apply, returning op's inverse.
func CheckApply[VW, EW, FW any](d *dcel.Dcel[VW, EW, FW], op Op[VW, EW, FW]) (Op[VW, EW, FW], error) {
	if err := op.Check(d); err != nil {
		return nil, err
	}
	return op.Apply(d)
}
