// Package loop runs the single-threaded, fixed-tick control loop: drain the
// device source, dispatch every event, and once per tick turn the stick into
// a pointer move.
package loop

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/soar/PadMouse/internal/action"
	"github.com/soar/PadMouse/internal/control"
	"github.com/soar/PadMouse/internal/dispatch"
	"github.com/soar/PadMouse/internal/velocity"
)

// idleSleep bounds CPU use between iterations.
const idleSleep = time.Millisecond

// Source yields raw device events without blocking.
type Source interface {
	Next() (control.Event, bool)
}

// Frame is what one iteration publishes to observers.
type Frame struct {
	Event control.Event
	Match dispatch.Match
	Err   error
}

// Config wires a Runner.
type Config struct {
	Source     Source
	Engine     *dispatch.Engine
	Store      *control.Store
	Integrator *velocity.Integrator
	Injector   action.Injector

	// StickX and StickY are the axes that drive the pointer.
	StickX, StickY control.ID

	// Paused, when set and true, keeps state tracking running but suppresses
	// all output.
	Paused *atomic.Bool

	// Frames, when set, receives one frame per dispatched event. Sends never
	// block; frames are dropped if the receiver falls behind.
	Frames chan<- Frame
}

// Runner owns the main loop and all of its state.
type Runner struct {
	cfg      Config
	velocity velocity.State
	tick     time.Duration
	lastTick time.Time
	wasPause bool
}

func New(cfg Config) *Runner {
	return &Runner{
		cfg:  cfg,
		tick: cfg.Integrator.Config().Tick(),
	}
}

// Run loops until ctx is cancelled. Cancellation is checked once per
// iteration.
func (r *Runner) Run(ctx context.Context) {
	log.Printf("Control loop running at %v per tick", r.tick)
	r.lastTick = time.Now()

	for {
		select {
		case <-ctx.Done():
			log.Println("Control loop stopped")
			return
		default:
		}

		r.syncPause()
		r.Drain()

		if now := time.Now(); now.Sub(r.lastTick) >= r.tick {
			r.lastTick = now
			r.Tick()
		}

		time.Sleep(idleSleep)
	}
}

// Drain dispatches every event currently queued in the source, in order.
func (r *Runner) Drain() int {
	n := 0
	for {
		ev, ok := r.cfg.Source.Next()
		if !ok {
			return n
		}
		n++
		r.dispatch(ev)
	}
}

func (r *Runner) dispatch(ev control.Event) {
	if r.syncPause() {
		r.cfg.Engine.Observe(ev)
		r.publish(Frame{Event: ev, Match: dispatch.Match{ID: ev.ID}})
		return
	}

	m, err := r.cfg.Engine.OnEvent(ev)
	if err != nil {
		log.Printf("Action for %s failed: %v", ev, err)
	}
	r.publish(Frame{Event: ev, Match: m, Err: err})
}

// Tick advances the velocity filter by one step and emits at most one
// relative pointer move.
func (r *Runner) Tick() {
	rawX := r.cfg.Store.Level(r.cfg.StickX)
	rawY := r.cfg.Store.Level(r.cfg.StickY)

	dx, dy, ok := r.cfg.Integrator.Step(&r.velocity, rawX, rawY)
	if !ok || r.syncPause() {
		return
	}
	if err := r.cfg.Injector.MoveRelative(dx, dy); err != nil {
		log.Printf("Pointer move %+d,%+d failed: %v", dx, dy, err)
	}
}

// Velocity returns the filter state.
func (r *Runner) Velocity() velocity.State {
	return r.velocity
}

// syncPause reports whether output is paused. On the transition into a
// pause it releases whatever bound actions still hold down.
func (r *Runner) syncPause() bool {
	paused := r.cfg.Paused != nil && r.cfg.Paused.Load()
	if paused && !r.wasPause {
		if err := r.cfg.Engine.ReleaseHeld(); err != nil {
			log.Printf("Releasing held output failed: %v", err)
		}
	}
	r.wasPause = paused
	return paused
}

func (r *Runner) publish(f Frame) {
	if r.cfg.Frames == nil {
		return
	}
	select {
	case r.cfg.Frames <- f:
	default:
	}
}
