package loop

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/soar/PadMouse/internal/action"
	"github.com/soar/PadMouse/internal/action/actiontest"
	"github.com/soar/PadMouse/internal/control"
	"github.com/soar/PadMouse/internal/dispatch"
	"github.com/soar/PadMouse/internal/velocity"
)

type scripted struct {
	events []control.Event
}

func (s *scripted) Next() (control.Event, bool) {
	if len(s.events) == 0 {
		return control.Event{}, false
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, true
}

func newTestRunner(t *testing.T, src Source) (*Runner, *dispatch.Engine, *actiontest.Recorder, *atomic.Bool) {
	t.Helper()
	rec := &actiontest.Recorder{}
	store := control.NewStore()
	engine := dispatch.New(store, rec, dispatch.DefaultOptions())
	in, err := velocity.New(velocity.DefaultConfig())
	if err != nil {
		t.Fatalf("velocity.New: %v", err)
	}
	paused := &atomic.Bool{}
	r := New(Config{
		Source:     src,
		Engine:     engine,
		Store:      store,
		Integrator: in,
		Injector:   rec,
		StickX:     control.LeftX,
		StickY:     control.LeftY,
		Paused:     paused,
	})
	return r, engine, rec, paused
}

func TestPressProducesOneKeyClick(t *testing.T) {
	src := &scripted{events: []control.Event{control.Pressed(control.X)}}
	r, engine, rec, _ := newTestRunner(t, src)
	engine.Bind(control.X, dispatch.OnPress, action.Do(action.KeyClick("a")))

	if n := r.Drain(); n != 1 {
		t.Fatalf("Drain = %d, want 1", n)
	}
	if len(rec.Ops) != 1 || rec.Ops[0] != action.KeyClick("a") {
		t.Errorf("injected %v, want exactly one key click", rec.Ops)
	}
}

func TestDrainPreservesOrder(t *testing.T) {
	src := &scripted{events: []control.Event{
		control.Pressed(control.A),
		control.Released(control.A),
		control.Pressed(control.A),
	}}
	r, engine, rec, _ := newTestRunner(t, src)
	engine.BindHold(control.A,
		action.Do(action.MousePress(action.MouseLeft)),
		action.Do(action.MouseRelease(action.MouseLeft)))

	r.Drain()

	want := []action.Op{
		action.MousePress(action.MouseLeft),
		action.MouseRelease(action.MouseLeft),
		action.MousePress(action.MouseLeft),
	}
	if len(rec.Ops) != len(want) {
		t.Fatalf("injected %v, want %v", rec.Ops, want)
	}
	for i := range want {
		if rec.Ops[i] != want[i] {
			t.Errorf("op %d = %v, want %v", i, rec.Ops[i], want[i])
		}
	}
}

func TestTickMovesPointerFromLatestStickSample(t *testing.T) {
	src := &scripted{events: []control.Event{
		control.Moved(control.LeftX, 0.2),
		control.Moved(control.LeftX, 0.9),
		control.Moved(control.LeftY, 0.9),
	}}
	r, _, rec, _ := newTestRunner(t, src)

	r.Drain()
	r.Tick()

	if len(rec.Ops) != 1 {
		t.Fatalf("injected %v, want one move", rec.Ops)
	}
	op := rec.Ops[0]
	if op.Code != action.OpMoveRel || op.X <= 0 || op.Y >= 0 {
		t.Errorf("move = %v, want right and up", op)
	}
	if v := r.Velocity(); v.X.Velocity != 0.9 || v.Y.Velocity != 0.9 {
		t.Errorf("velocity = %+v, want snapped to 0.9", v)
	}
}

func TestTickAtRestEmitsNothing(t *testing.T) {
	r, _, rec, _ := newTestRunner(t, &scripted{})
	for i := 0; i < 5; i++ {
		r.Tick()
	}
	if len(rec.Ops) != 0 {
		t.Errorf("injected %v at rest", rec.Ops)
	}
}

func TestPausedTracksStateWithoutOutput(t *testing.T) {
	src := &scripted{events: []control.Event{control.Pressed(control.X), control.Moved(control.LeftX, 1)}}
	r, engine, rec, paused := newTestRunner(t, src)
	engine.Bind(control.X, dispatch.OnPress, action.Do(action.KeyClick("a")))

	paused.Store(true)
	r.Drain()
	r.Tick()
	if len(rec.Ops) != 0 {
		t.Fatalf("paused runner injected %v", rec.Ops)
	}

	// X is still held, so resuming must not fire a stale press.
	paused.Store(false)
	src.events = []control.Event{control.Pressed(control.X)}
	r.Drain()
	if rec.Count(action.KeyClick("a")) != 0 {
		t.Errorf("held button fired after resume")
	}
}

func TestFramesArePublishedWithoutBlocking(t *testing.T) {
	src := &scripted{events: []control.Event{
		control.Pressed(control.X),
		control.Released(control.X),
		control.Pressed(control.X),
	}}
	r, engine, _, _ := newTestRunner(t, src)
	engine.Bind(control.X, dispatch.OnPress, action.NoOp{})
	frames := make(chan Frame, 1)
	r.cfg.Frames = frames

	r.Drain()

	f := <-frames
	if f.Event != control.Pressed(control.X) || !f.Match.Fired() {
		t.Errorf("frame = %+v, want the first press", f)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	r, _, _, _ := newTestRunner(t, &scripted{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestPauseReleasesHeldOutput(t *testing.T) {
	src := &scripted{events: []control.Event{control.Pressed(control.A)}}
	r, engine, rec, paused := newTestRunner(t, src)
	down := action.MousePress(action.MouseLeft)
	up := action.MouseRelease(action.MouseLeft)
	engine.BindHold(control.A, action.Do(down), action.Do(up))

	r.Drain()

	paused.Store(true)
	src.events = []control.Event{control.Released(control.A)}
	r.Drain()

	paused.Store(false)
	src.events = []control.Event{control.Pressed(control.A)}
	r.Drain()

	want := []action.Op{down, up, down}
	if len(rec.Ops) != len(want) {
		t.Fatalf("injected %v, want %v", rec.Ops, want)
	}
	for i := range want {
		if rec.Ops[i] != want[i] {
			t.Errorf("op %d = %v, want %v", i, rec.Ops[i], want[i])
		}
	}
}

func TestPausedFramesStillPublished(t *testing.T) {
	src := &scripted{events: []control.Event{control.Moved(control.LeftX, 0.4)}}
	r, _, _, paused := newTestRunner(t, src)
	frames := make(chan Frame, 1)
	r.cfg.Frames = frames
	paused.Store(true)

	r.Drain()

	select {
	case f := <-frames:
		if f.Event != control.Moved(control.LeftX, 0.4) || f.Match.Fired() {
			t.Errorf("frame = %+v, want the observed move with no actions", f)
		}
	default:
		t.Fatal("no frame published while paused")
	}
}
