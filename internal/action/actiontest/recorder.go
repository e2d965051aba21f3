// Package actiontest provides a recording Injector for tests.
package actiontest

import (
	"errors"

	"github.com/soar/PadMouse/internal/action"
)

// ErrRejected is the failure returned for ops listed in Recorder.Fail.
var ErrRejected = errors.New("rejected")

// Recorder is an action.Injector that records every command it receives.
type Recorder struct {
	Ops []action.Op

	// Fail lists ops that are recorded and then rejected with ErrRejected.
	Fail map[action.Op]bool
}

var _ action.Injector = (*Recorder)(nil)

func (r *Recorder) record(op action.Op) error {
	r.Ops = append(r.Ops, op)
	if r.Fail[op] {
		return ErrRejected
	}
	return nil
}

func (r *Recorder) Key(k action.Key, d action.Direction) error {
	return r.record(action.Op{Code: action.OpKey, Direction: d, Key: k})
}

func (r *Recorder) Button(b action.MouseButton, d action.Direction) error {
	return r.record(action.Op{Code: action.OpButton, Direction: d, Button: b})
}

func (r *Recorder) MoveRelative(dx, dy int32) error {
	return r.record(action.MoveRel(dx, dy))
}

func (r *Recorder) MoveAbsolute(x, y int32) error {
	return r.record(action.MoveAbs(x, y))
}

func (r *Recorder) Scroll(dx, dy int32) error {
	return r.record(action.Scroll(dx, dy))
}

// Count returns how many times op was issued.
func (r *Recorder) Count(op action.Op) int {
	n := 0
	for _, o := range r.Ops {
		if o == op {
			n++
		}
	}
	return n
}

// Reset forgets recorded ops.
func (r *Recorder) Reset() {
	r.Ops = nil
}
