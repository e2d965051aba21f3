package hub

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soar/PadMouse/internal/action"
	"github.com/soar/PadMouse/internal/loop"
)

const (
	fullSyncInterval = 5 * time.Second
	deltaCountSync   = 100
)

// Broadcaster turns loop frames into monitor messages and owns the pause
// switch the loop reads.
type Broadcaster struct {
	hub    *Hub
	frames <-chan loop.Frame
	paused *atomic.Bool

	mu         sync.Mutex
	controls   map[string]float64
	seq        int64
	deltaCount int64
}

func NewBroadcaster(h *Hub, frames <-chan loop.Frame, paused *atomic.Bool) *Broadcaster {
	return &Broadcaster{
		hub:      h,
		frames:   frames,
		paused:   paused,
		controls: make(map[string]float64),
	}
}

// Run forwards frames to clients until ctx is cancelled or the frame
// channel is closed. Should be run in a goroutine.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case f, ok := <-b.frames:
			if !ok {
				return
			}
			for _, msg := range b.apply(f) {
				b.send(msg)
			}

		case <-ticker.C:
			b.mu.Lock()
			msg := b.fullLocked()
			b.mu.Unlock()
			b.send(msg)

		case <-ctx.Done():
			return
		}
	}
}

// apply folds a frame into the tracked state and returns the messages it
// produces: a delta (or a periodic full sync) and, if anything fired, an
// action report.
func (b *Broadcaster) apply(f loop.Frame) []*WSMessage {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, v := f.Event.Reading()
	name := id.String()

	var out []*WSMessage
	if last, seen := b.controls[name]; !seen || last != v.X {
		b.controls[name] = v.X
		b.deltaCount++
		if b.deltaCount >= deltaCountSync {
			b.deltaCount = 0
			out = append(out, b.fullLocked())
		} else {
			b.seq++
			msg := newMessage("delta", b.seq, b.paused.Load())
			msg.Controls = map[string]float64{name: v.X}
			out = append(out, msg)
		}
	}

	if f.Match.Fired() || f.Err != nil {
		b.seq++
		msg := newMessage("action", b.seq, b.paused.Load())
		msg.Control = name
		if f.Match.Combo {
			msg.Combo = f.Match.Main.String()
		}
		for _, a := range f.Match.Actions {
			msg.Actions = append(msg.Actions, action.Describe(a))
		}
		if f.Err != nil {
			msg.Error = f.Err.Error()
		}
		out = append(out, msg)
	}
	return out
}

func (b *Broadcaster) fullLocked() *WSMessage {
	b.seq++
	msg := newMessage("full", b.seq, b.paused.Load())
	msg.Controls = make(map[string]float64, len(b.controls))
	for k, v := range b.controls {
		msg.Controls[k] = v
	}
	return msg
}

// SetPaused switches output on or off and tells every client.
func (b *Broadcaster) SetPaused(paused bool) {
	if b.paused.Swap(paused) == paused {
		return
	}
	log.Printf("Output paused: %v", paused)

	b.mu.Lock()
	b.seq++
	msg := newMessage("paused", b.seq, paused)
	b.mu.Unlock()
	b.send(msg)
}

// SendInitialState sends the current full state to a newly connected client.
func (b *Broadcaster) SendInitialState(c *Client) {
	b.mu.Lock()
	msg := b.fullLocked()
	b.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling initial state: %v", err)
		return
	}
	if !b.hub.Send(c, data) {
		log.Println("Initial state not delivered, client already gone")
	}
}

func (b *Broadcaster) send(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling %s message: %v", msg.Type, err)
		return
	}
	b.hub.Broadcast(data)
}
