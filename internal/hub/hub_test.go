package hub

import (
	"context"
	"testing"
	"time"
)

func TestHubLifecycle(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)

	c := NewClient(h, nil)
	h.Register(c)
	if h.Count() != 1 {
		t.Fatalf("Count = %d, want 1", h.Count())
	}
	if !h.Send(c, []byte("hello")) {
		t.Fatal("Send to registered client failed")
	}
	if got := string(<-c.send); got != "hello" {
		t.Errorf("received %q", got)
	}

	h.Broadcast([]byte("all"))
	if got := string(<-c.send); got != "all" {
		t.Errorf("broadcast received %q", got)
	}

	cancel()
	select {
	case _, ok := <-c.send:
		if ok {
			t.Error("send channel still open after stop")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("client not closed on stop")
	}

	late := NewClient(h, nil)
	h.Register(late)
	if _, ok := <-late.send; ok {
		t.Error("late client not closed")
	}
	if h.Send(late, []byte("x")) {
		t.Error("Send to unregistered client succeeded")
	}
}

func TestHubUnregister(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go h.Run(ctx)

	c := NewClient(h, nil)
	h.Register(c)
	h.Unregister(c)
	if _, ok := <-c.send; ok {
		t.Error("send channel still open after unregister")
	}
	if h.Count() != 0 {
		t.Errorf("Count = %d after unregister", h.Count())
	}
}
