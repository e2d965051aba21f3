// Package action defines the output side of a mapping: a small recursive
// expression language of primitive injector commands, sequences,
// conditionals and fire-time dynamic actions, and the interpreter that runs
// them against an Injector.
package action

import "github.com/soar/PadMouse/internal/control"

// Action is one node of an action tree. The set of implementations is
// closed: Primitive, Sequence, Conditional, Dynamic and NoOp.
type Action interface {
	isAction()
}

// Primitive issues a single injector command.
type Primitive struct {
	Op Op
}

// Sequence runs its elements in order.
type Sequence []Action

// Predicate inspects the value pair that triggered the dispatch.
type Predicate func(current, previous control.Value) bool

// Conditional runs Then only when When holds for the triggering values.
type Conditional struct {
	When Predicate
	Then Action
}

// Dynamic produces the action to run at fire time.
type Dynamic func() Action

// NoOp does nothing.
type NoOp struct{}

func (Primitive) isAction()   {}
func (Sequence) isAction()    {}
func (Conditional) isAction() {}
func (Dynamic) isAction()     {}
func (NoOp) isAction()        {}

// Do wraps an op as a primitive action.
func Do(op Op) Action { return Primitive{Op: op} }

// Seq builds a sequence.
func Seq(actions ...Action) Action { return Sequence(actions) }

// When builds a conditional.
func When(p Predicate, then Action) Action { return Conditional{When: p, Then: then} }

// Snapshot is the value pair a dispatch observed for the control that fired.
type Snapshot struct {
	Current  control.Value
	Previous control.Value
}
