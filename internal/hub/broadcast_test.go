package hub

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/soar/PadMouse/internal/action"
	"github.com/soar/PadMouse/internal/control"
	"github.com/soar/PadMouse/internal/dispatch"
	"github.com/soar/PadMouse/internal/loop"
)

func newTestBroadcaster() *Broadcaster {
	return NewBroadcaster(NewHub(), nil, &atomic.Bool{})
}

func TestApplyDelta(t *testing.T) {
	b := newTestBroadcaster()

	msgs := b.apply(loop.Frame{Event: control.Moved(control.LeftX, 0.25)})
	if len(msgs) != 1 || msgs[0].Type != "delta" {
		t.Fatalf("got %d messages, want one delta", len(msgs))
	}
	if got := msgs[0].Controls["axis:left_x"]; got != 0.25 {
		t.Errorf("delta value = %v, want 0.25", got)
	}

	// Same value again carries nothing new.
	if msgs := b.apply(loop.Frame{Event: control.Moved(control.LeftX, 0.25)}); len(msgs) != 0 {
		t.Errorf("repeat produced %d messages", len(msgs))
	}
}

func TestApplyAction(t *testing.T) {
	b := newTestBroadcaster()

	m := dispatch.Match{
		ID:      control.Y,
		Combo:   true,
		Main:    control.LB,
		Actions: []action.Action{action.Do(action.KeyClick("tab"))},
	}
	msgs := b.apply(loop.Frame{Event: control.Pressed(control.Y), Match: m, Err: errors.New("boom")})
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want delta and action", len(msgs))
	}
	got := msgs[1]
	if got.Type != "action" || got.Control != "button:y" || got.Combo != "button:lb" {
		t.Errorf("action message = %+v", got)
	}
	if len(got.Actions) != 1 || got.Error != "boom" {
		t.Errorf("actions = %v, error = %q", got.Actions, got.Error)
	}
	if msgs[0].Seq >= got.Seq {
		t.Errorf("sequence not increasing: %d then %d", msgs[0].Seq, got.Seq)
	}
}

func TestApplyPeriodicFullSync(t *testing.T) {
	b := newTestBroadcaster()

	var last *WSMessage
	for i := 1; i <= deltaCountSync; i++ {
		msgs := b.apply(loop.Frame{Event: control.Moved(control.LeftX, float64(i)/1000)})
		if len(msgs) != 1 {
			t.Fatalf("frame %d produced %d messages", i, len(msgs))
		}
		last = msgs[0]
	}
	if last.Type != "full" {
		t.Fatalf("message %d type = %q, want full", deltaCountSync, last.Type)
	}
	if _, ok := last.Controls["axis:left_x"]; !ok {
		t.Error("full sync missing tracked control")
	}
}

func TestSetPaused(t *testing.T) {
	b := newTestBroadcaster()

	b.SetPaused(true)
	if !b.paused.Load() {
		t.Fatal("not paused")
	}
	seq := b.seq
	b.SetPaused(true)
	if b.seq != seq {
		t.Error("repeated pause emitted a message")
	}
	b.SetPaused(false)
	if b.paused.Load() {
		t.Error("still paused")
	}
}
