package ops

import (
	"errors"

	"github.com/go-dcel/dcel"
)

// ErrNothingToUndo is returned by Undo when the undo stack is empty.
var ErrNothingToUndo = errors.New("ops: nothing to undo")

// ErrNothingToRedo is returned by Redo when the redo stack is empty.
var ErrNothingToRedo = errors.New("ops: nothing to redo")

// Command pairs the log's version at the time an operator was applied with
// the operator itself, for callers that want to label history entries.
type Command[VW, EW, FW any] struct {
	Version uint64
	Op      Op[VW, EW, FW]
}

// CommandLog owns a Dcel and records only the INVERSE of every operator it
// successfully applies. A forward operator is never stored: by the time an
// undo would need it, the data it referenced (a handle's slot) may already
// have been overwritten by a later operator, so only the inverse — computed
// at the moment of application, against the state it actually mutated — is
// safe to replay. Undo pops the inverse stack and applies it, pushing its
// own inverse onto a redo stack; any fresh Apply invalidates the redo stack,
// the same way a text editor's redo history is discarded by a new edit.
type CommandLog[VW, EW, FW any] struct {
	Dcel    *dcel.Dcel[VW, EW, FW]
	version uint64
	undo    []Op[VW, EW, FW]
	redo    []Op[VW, EW, FW]
}

// NewCommandLog wraps an existing Dcel in a command log. The Dcel may
// already carry state; the log only ever knows about operators applied
// through it from this point on.
func NewCommandLog[VW, EW, FW any](d *dcel.Dcel[VW, EW, FW]) *CommandLog[VW, EW, FW] {
	return &CommandLog[VW, EW, FW]{Dcel: d}
}

// Version returns the number of operators currently in effect: Apply and
// Redo raise it by one, Undo lowers it by one.
func (l *CommandLog[VW, EW, FW]) Version() uint64 { return l.version }

// CanUndo reports whether Undo has anything to pop.
func (l *CommandLog[VW, EW, FW]) CanUndo() bool { return len(l.undo) > 0 }

// CanRedo reports whether Redo has anything to pop.
func (l *CommandLog[VW, EW, FW]) CanRedo() bool { return len(l.redo) > 0 }

// Apply runs Check then Apply on op against the log's Dcel. On success it
// pushes the resulting inverse onto the undo stack, discards the redo
// stack, and advances the version counter. On failure the Dcel is
// untouched (per the Check/Apply contract) and the log's state does not
// change.
func (l *CommandLog[VW, EW, FW]) Apply(op Op[VW, EW, FW]) (Command[VW, EW, FW], error) {
	inv, err := CheckApply[VW, EW, FW](l.Dcel, op)
	if err != nil {
		return Command[VW, EW, FW]{}, err
	}
	l.version++
	l.undo = append(l.undo, inv)
	l.redo = l.redo[:0]
	return Command[VW, EW, FW]{Version: l.version, Op: op}, nil
}

// Undo pops the top inverse operator and applies it, restoring the Dcel to
// its state immediately before the corresponding forward Apply. The
// inverse of THAT application is pushed onto the redo stack.
func (l *CommandLog[VW, EW, FW]) Undo() error {
	n := len(l.undo)
	if n == 0 {
		return ErrNothingToUndo
	}
	op := l.undo[n-1]
	l.undo = l.undo[:n-1]

	inv, err := CheckApply[VW, EW, FW](l.Dcel, op)
	if err != nil {
		l.undo = append(l.undo, op)
		return err
	}
	l.version--
	l.redo = append(l.redo, inv)
	return nil
}

// Redo pops the top of the redo stack and re-applies it, pushing its
// inverse back onto the undo stack, as if the undone operator had just
// been applied again.
func (l *CommandLog[VW, EW, FW]) Redo() error {
	n := len(l.redo)
	if n == 0 {
		return ErrNothingToRedo
	}
	op := l.redo[n-1]
	l.redo = l.redo[:n-1]

	inv, err := CheckApply[VW, EW, FW](l.Dcel, op)
	if err != nil {
		l.redo = append(l.redo, op)
		return err
	}
	l.version++
	l.undo = append(l.undo, inv)
	return nil
}
