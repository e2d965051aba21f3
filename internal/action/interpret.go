package action

import (
	"fmt"
	"log"
)

const maxDepth = 32

// Injector performs OS-level keyboard and pointer output. Each call reports
// whether the command was accepted.
type Injector interface {
	Key(k Key, d Direction) error
	Button(b MouseButton, d Direction) error
	MoveRelative(dx, dy int32) error
	MoveAbsolute(x, y int32) error
	Scroll(dx, dy int32) error
}

// Interpret runs a against inj. Conditionals are evaluated against snap, the
// value pair that triggered the dispatch, never re-read from a store.
//
// Side effects are not transactional: a Sequence runs every element even
// after one fails, and the first failure is returned.
func Interpret(inj Injector, a Action, snap Snapshot) error {
	return interpret(inj, a, snap, 0)
}

func interpret(inj Injector, a Action, snap Snapshot, depth int) error {
	if depth > maxDepth {
		return ErrDepthExceeded
	}

	switch a := a.(type) {
	case nil, NoOp:
		return nil

	case Primitive:
		if err := Apply(inj, a.Op); err != nil {
			return &InjectionError{Op: a.Op, Err: err}
		}
		return nil

	case Sequence:
		var first error
		for i, step := range a {
			err := interpret(inj, step, snap, depth+1)
			if err == nil {
				continue
			}
			if first == nil {
				first = err
			} else {
				log.Printf("Sequence step %d failed after earlier failure: %v", i, err)
			}
		}
		return first

	case Conditional:
		if a.When == nil || !snap.Current.Valid() || !snap.Previous.Valid() {
			return nil
		}
		if !a.When(snap.Current, snap.Previous) {
			return nil
		}
		return interpret(inj, a.Then, snap, depth+1)

	case Dynamic:
		if a == nil {
			return nil
		}
		return interpret(inj, a(), snap, depth+1)

	default:
		return fmt.Errorf("%w: unsupported action %T", ErrInvalidOp, a)
	}
}

// Apply issues op as exactly one injector call.
func Apply(inj Injector, op Op) error {
	switch op.Code {
	case OpKey:
		return inj.Key(op.Key, op.Direction)
	case OpButton:
		return inj.Button(op.Button, op.Direction)
	case OpMoveRel:
		return inj.MoveRelative(op.X, op.Y)
	case OpMoveAbs:
		return inj.MoveAbsolute(op.X, op.Y)
	case OpScroll:
		return inj.Scroll(op.X, op.Y)
	default:
		return ErrInvalidOp
	}
}

// Describe renders a short label for a, used in logs and the monitor.
// Dynamic actions are not expanded.
func Describe(a Action) string {
	switch a := a.(type) {
	case nil, NoOp:
		return "noop"
	case Primitive:
		return a.Op.String()
	case Sequence:
		s := "seq("
		for i, step := range a {
			if i > 0 {
				s += ", "
			}
			s += Describe(step)
		}
		return s + ")"
	case Conditional:
		return "if(" + Describe(a.Then) + ")"
	case Dynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("%T", a)
	}
}
