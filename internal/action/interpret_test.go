package action_test

import (
	"errors"
	"testing"

	"github.com/soar/PadMouse/internal/action"
	"github.com/soar/PadMouse/internal/action/actiontest"
	"github.com/soar/PadMouse/internal/control"
)

var pressSnap = action.Snapshot{
	Current:  control.DigitalValue(true),
	Previous: control.DigitalValue(false),
}

func TestInterpretPrimitives(t *testing.T) {
	ops := []action.Op{
		action.KeyPress("a"),
		action.KeyRelease("a"),
		action.KeyClick("enter"),
		action.MousePress(action.MouseLeft),
		action.MouseRelease(action.MouseLeft),
		action.MouseClick(action.MouseRight),
		action.MoveRel(3, -4),
		action.MoveAbs(100, 200),
		action.Scroll(0, -2),
	}

	for _, op := range ops {
		t.Run(op.String(), func(t *testing.T) {
			rec := &actiontest.Recorder{}
			if err := action.Interpret(rec, action.Do(op), pressSnap); err != nil {
				t.Fatalf("Interpret: %v", err)
			}
			if len(rec.Ops) != 1 || rec.Ops[0] != op {
				t.Errorf("injected %v, want [%v]", rec.Ops, op)
			}
		})
	}
}

func TestInterpretSequenceContinuesAndReportsFirstFailure(t *testing.T) {
	a := action.KeyClick("a")
	b := action.KeyClick("b")
	c := action.KeyClick("c")
	rec := &actiontest.Recorder{Fail: map[action.Op]bool{a: true, c: true}}

	err := action.Interpret(rec, action.Seq(action.Do(a), action.Do(b), action.Do(c)), pressSnap)

	var injErr *action.InjectionError
	if !errors.As(err, &injErr) {
		t.Fatalf("err = %v, want *InjectionError", err)
	}
	if injErr.Op != a {
		t.Errorf("reported op = %v, want %v", injErr.Op, a)
	}
	if !errors.Is(err, actiontest.ErrRejected) {
		t.Errorf("err does not unwrap to ErrRejected: %v", err)
	}
	if got := rec.Count(b); got != 1 {
		t.Errorf("b issued %d times after a failed, want 1", got)
	}
	want := []action.Op{a, b, c}
	for i, op := range want {
		if rec.Ops[i] != op {
			t.Errorf("op %d = %v, want %v", i, rec.Ops[i], op)
		}
	}
}

func TestInterpretConditional(t *testing.T) {
	rising := func(cur, prev control.Value) bool { return cur.X > prev.X }
	op := action.Scroll(0, 1)

	tests := []struct {
		name string
		snap action.Snapshot
		want int
	}{
		{"holds", action.Snapshot{Current: control.AxisValue(0.5), Previous: control.AxisValue(0.1)}, 1},
		{"does not hold", action.Snapshot{Current: control.AxisValue(0.1), Previous: control.AxisValue(0.5)}, 0},
		{"previous never observed", action.Snapshot{Current: control.AxisValue(0.5)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &actiontest.Recorder{}
			if err := action.Interpret(rec, action.When(rising, action.Do(op)), tt.snap); err != nil {
				t.Fatalf("Interpret: %v", err)
			}
			if got := rec.Count(op); got != tt.want {
				t.Errorf("issued %d times, want %d", got, tt.want)
			}
		})
	}
}

func TestInterpretConditionalSeesTriggeringSnapshot(t *testing.T) {
	var seen action.Snapshot
	pred := func(cur, prev control.Value) bool {
		seen = action.Snapshot{Current: cur, Previous: prev}
		return false
	}
	snap := action.Snapshot{Current: control.TriggerValue(0.9), Previous: control.TriggerValue(0.2)}

	if err := action.Interpret(&actiontest.Recorder{}, action.When(pred, action.NoOp{}), snap); err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if seen != snap {
		t.Errorf("predicate saw %+v, want %+v", seen, snap)
	}
}

func TestInterpretDynamic(t *testing.T) {
	calls := 0
	dyn := action.Dynamic(func() action.Action {
		calls++
		return action.Do(action.KeyClick("x"))
	})
	rec := &actiontest.Recorder{}

	for i := 0; i < 2; i++ {
		if err := action.Interpret(rec, dyn, pressSnap); err != nil {
			t.Fatalf("Interpret: %v", err)
		}
	}
	if calls != 2 {
		t.Errorf("producer called %d times, want 2", calls)
	}
	if got := rec.Count(action.KeyClick("x")); got != 2 {
		t.Errorf("click issued %d times, want 2", got)
	}

	nilResult := action.Dynamic(func() action.Action { return nil })
	if err := action.Interpret(rec, nilResult, pressSnap); err != nil {
		t.Errorf("nil producer result: %v", err)
	}
}

func TestInterpretDepthLimit(t *testing.T) {
	var loop action.Dynamic
	loop = func() action.Action { return loop }

	err := action.Interpret(&actiontest.Recorder{}, loop, pressSnap)
	if !errors.Is(err, action.ErrDepthExceeded) {
		t.Errorf("err = %v, want ErrDepthExceeded", err)
	}
}

func TestInterpretNoOp(t *testing.T) {
	rec := &actiontest.Recorder{}
	for _, a := range []action.Action{action.NoOp{}, nil, action.Seq()} {
		if err := action.Interpret(rec, a, pressSnap); err != nil {
			t.Errorf("Interpret(%s): %v", action.Describe(a), err)
		}
	}
	if len(rec.Ops) != 0 {
		t.Errorf("no-op actions injected %v", rec.Ops)
	}
}

func TestDescribe(t *testing.T) {
	a := action.Seq(
		action.Do(action.KeyPress("leftalt")),
		action.Do(action.KeyClick("tab")),
		action.When(func(_, _ control.Value) bool { return true }, action.Do(action.MouseClick(action.MouseLeft))),
	)
	want := "seq(key press leftalt, key click tab, if(mouse click left))"
	if got := action.Describe(a); got != want {
		t.Errorf("Describe = %q, want %q", got, want)
	}
}
