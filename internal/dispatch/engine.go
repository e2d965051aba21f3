// Package dispatch owns the mapping tables and decides, for every raw device
// event, which bound actions fire.
package dispatch

import (
	"log"

	"github.com/soar/PadMouse/internal/action"
	"github.com/soar/PadMouse/internal/control"
)

const (
	// DefaultHysteresis is how far past a threshold an analog value must
	// rise before a rising edge fires. Falling edges fire at the threshold.
	DefaultHysteresis = 0.02

	// DefaultActiveThreshold is the level above which an analog control
	// counts as active for combos.
	DefaultActiveThreshold = 0.5
)

type bindingKey struct {
	id      control.ID
	trigger Trigger
}

type comboKey struct {
	main, modifier control.ID
}

type combo struct {
	main   control.ID
	action action.Action
}

type toggle struct {
	on, off action.Action
	engaged bool
}

// Options tunes the engine's analog policies.
type Options struct {
	Hysteresis      float64
	ActiveThreshold float64
	Verbose         bool
}

// Engine evaluates events against its mapping tables and interprets matched
// actions. It is not safe for concurrent use; the main loop owns it.
type Engine struct {
	store *control.Store
	out   *heldOutput
	opts  Options

	single map[bindingKey]action.Action
	order  map[control.ID][]Trigger

	combos     map[comboKey]action.Action
	byModifier map[control.ID][]control.ID

	toggles map[control.ID]*toggle
	latches map[latchKey]*latch

	// chorded marks combo mains that served a combo since they were pressed.
	chorded map[control.ID]bool
}

// New returns an engine that records state in store and injects through inj.
func New(store *control.Store, inj action.Injector, opts Options) *Engine {
	return &Engine{
		store:      store,
		out:        &heldOutput{inj: inj},
		opts:       opts,
		single:     make(map[bindingKey]action.Action),
		order:      make(map[control.ID][]Trigger),
		combos:     make(map[comboKey]action.Action),
		byModifier: make(map[control.ID][]control.ID),
		toggles:    make(map[control.ID]*toggle),
		latches:    make(map[latchKey]*latch),
		chorded:    make(map[control.ID]bool),
	}
}

// DefaultOptions returns the standard analog policy settings.
func DefaultOptions() Options {
	return Options{
		Hysteresis:      DefaultHysteresis,
		ActiveThreshold: DefaultActiveThreshold,
	}
}

// Bind maps a trigger on id to a. Binding the same (id, trigger) again
// replaces the earlier action but keeps its evaluation position.
func (e *Engine) Bind(id control.ID, t Trigger, a action.Action) {
	key := bindingKey{id: id, trigger: t}
	if _, exists := e.single[key]; !exists {
		e.order[id] = append(e.order[id], t)
	}
	e.single[key] = a
}

// BindCombo maps a to modifier changing while main is held. Combos take
// priority over single bindings on the modifier.
func (e *Engine) BindCombo(main, modifier control.ID, a action.Action) {
	key := comboKey{main: main, modifier: modifier}
	if _, exists := e.combos[key]; !exists {
		e.byModifier[modifier] = append(e.byModifier[modifier], main)
	}
	e.combos[key] = a
}

// BindHold runs down when id is pressed and up when it is released.
func (e *Engine) BindHold(id control.ID, down, up action.Action) {
	e.Bind(id, OnPress, down)
	e.Bind(id, OnRelease, up)
}

// BindToggle alternates between on and off on every press of id.
func (e *Engine) BindToggle(id control.ID, on, off action.Action) {
	tg := &toggle{on: on, off: off}
	e.toggles[id] = tg
	e.Bind(id, OnPress, action.Dynamic(func() action.Action {
		tg.engaged = !tg.engaged
		if tg.engaged {
			return tg.on
		}
		return tg.off
	}))
}

// BindTap runs a when id is released, unless id served as the main control
// of a combo while it was held. Use it for combo mains that also have an
// action of their own.
func (e *Engine) BindTap(id control.ID, a action.Action) {
	e.Bind(id, OnRelease, action.Dynamic(func() action.Action {
		if e.chorded[id] {
			return action.NoOp{}
		}
		return a
	}))
}

// ReleaseHeld releases every key and mouse button that bound actions pressed
// and did not release yet, and disengages all toggles. Call it before output
// stops so nothing stays stuck down.
func (e *Engine) ReleaseHeld() error {
	for _, tg := range e.toggles {
		tg.engaged = false
	}
	return e.out.releaseAll()
}

// Toggled reports whether the toggle bound to id is currently engaged.
func (e *Engine) Toggled(id control.ID) bool {
	tg, ok := e.toggles[id]
	return ok && tg.engaged
}

// Match describes what fired for one event.
type Match struct {
	ID      control.ID
	Combo   bool
	Main    control.ID // combo only
	Actions []action.Action
}

// Fired reports whether any binding matched.
func (m Match) Fired() bool {
	return len(m.Actions) > 0
}

// OnEvent records ev, fires every matching binding and then commits the new
// value as the control's previous value. The returned error is the first
// injection failure; later bindings still run.
func (e *Engine) OnEvent(ev control.Event) (Match, error) {
	return e.handle(ev, true)
}

// Observe records ev and advances the store exactly like OnEvent, but
// injects nothing. Used while output is paused so edges stay consistent.
func (e *Engine) Observe(ev control.Event) {
	e.handle(ev, false)
}

func (e *Engine) handle(ev control.Event, inject bool) (Match, error) {
	id, cur := ev.Reading()
	m := Match{ID: id}
	if !cur.Valid() {
		return m, nil
	}

	prev, hasPrev := e.store.Previous(id)
	e.store.Update(id, cur)
	defer e.store.Commit(id, cur)

	snap := action.Snapshot{Current: cur, Previous: prev}

	if cur.Pressed() && !(hasPrev && prev.Pressed()) {
		delete(e.chorded, id)
	}
	edges := e.crossings(id, cur, prev, hasPrev)

	if main, a, ok := e.matchCombo(id, cur, prev, hasPrev); ok {
		m.Combo = true
		m.Main = main
		m.Actions = []action.Action{a}
		e.chorded[main] = true
	} else {
		for _, t := range e.order[id] {
			if t.fires(cur, prev, hasPrev, edges[t.Threshold]) {
				m.Actions = append(m.Actions, e.single[bindingKey{id: id, trigger: t}])
			}
		}
	}

	if !inject {
		return m, nil
	}

	var errs []error
	for _, a := range m.Actions {
		if e.opts.Verbose {
			log.Printf("Fire %s: %s", ev, action.Describe(a))
		}
		if err := action.Interpret(e.out, a, snap); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 1 {
		for _, err := range errs[1:] {
			log.Printf("Binding on %s also failed: %v", id, err)
		}
	}
	if len(errs) > 0 {
		return m, errs[0]
	}
	return m, nil
}

// crossing is what one event did to a threshold latch.
type crossing struct {
	rose, fell bool
}

// fires reports whether t matches the event, given the crossing of t's
// threshold.
func (t Trigger) fires(cur, prev control.Value, hasPrev bool, c crossing) bool {
	switch t.Edge {
	case EdgeRising:
		return c.rose
	case EdgeFalling:
		return c.fell
	default:
		return t.matches(cur, prev, hasPrev)
	}
}

// crossings advances the latch of every analog threshold bound on id. A
// latch first seen without history is settled to the current level and
// reports nothing.
func (e *Engine) crossings(id control.ID, cur, prev control.Value, hasPrev bool) map[float64]crossing {
	if cur.Kind == control.Digital {
		return nil
	}
	var out map[float64]crossing
	for _, t := range e.order[id] {
		if !t.analog() {
			continue
		}
		if _, done := out[t.Threshold]; done {
			continue
		}
		if out == nil {
			out = make(map[float64]crossing)
		}

		key := latchKey{id: id, threshold: t.Threshold}
		l, ok := e.latches[key]
		if !ok {
			l = &latch{}
			e.latches[key] = l
			if !hasPrev {
				l.high = cur.X > t.Threshold
				out[t.Threshold] = crossing{}
				continue
			}
			l.high = prev.X > t.Threshold
		}
		rose, fell := l.cross(cur.X, t.Threshold, e.opts.Hysteresis)
		out[t.Threshold] = crossing{rose: rose, fell: fell}
	}
	return out
}

// matchCombo finds the first combo, in registration order, whose modifier is
// id, whose modifier value changed on this event and where both controls are
// active.
func (e *Engine) matchCombo(id control.ID, cur, prev control.Value, hasPrev bool) (control.ID, action.Action, bool) {
	mains := e.byModifier[id]
	if len(mains) == 0 {
		return control.ID{}, nil, false
	}
	if hasPrev && cur == prev {
		return control.ID{}, nil, false
	}
	if !cur.Active(e.opts.ActiveThreshold) {
		return control.ID{}, nil, false
	}
	for _, main := range mains {
		mv, ok := e.store.Current(main)
		if !ok || !mv.Active(e.opts.ActiveThreshold) {
			continue
		}
		return main, e.combos[comboKey{main: main, modifier: id}], true
	}
	return control.ID{}, nil, false
}
