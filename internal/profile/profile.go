// Package profile assembles the built-in mapping table. The table is built
// once at startup and never changes during a run.
package profile

import (
	"log"

	"github.com/soar/PadMouse/internal/action"
	"github.com/soar/PadMouse/internal/control"
	"github.com/soar/PadMouse/internal/dispatch"
)

const (
	triggerThreshold = 0.5
	flickThreshold   = 0.5
)

// Options carries what the default bindings need from the environment.
type Options struct {
	ScreenWidth  int32
	ScreenHeight int32

	// PointerStick is the stick driving the pointer, "left" or "right".
	// The other stick scrolls.
	PointerStick string

	// Quit is called when the quit combo fires.
	Quit func()
}

func key(k action.Key) action.Action { return action.Do(action.KeyClick(k)) }

func holdKey(e *dispatch.Engine, id control.ID, k action.Key) {
	e.BindHold(id, action.Do(action.KeyPress(k)), action.Do(action.KeyRelease(k)))
}

// chord presses mod, clicks k and releases mod.
func chord(mod, k action.Key) action.Action {
	return action.Seq(
		action.Do(action.KeyPress(mod)),
		action.Do(action.KeyClick(k)),
		action.Do(action.KeyRelease(mod)),
	)
}

// flickedUp holds when an axis has just been pushed past the flick threshold
// in the positive direction.
func flickedUp(cur, prev control.Value) bool {
	return cur.X > flickThreshold && prev.X <= flickThreshold
}

func flickedDown(cur, prev control.Value) bool {
	return cur.X < -flickThreshold && prev.X >= -flickThreshold
}

// Apply registers the default bindings on e.
func Apply(e *dispatch.Engine, opts Options) {
	left := action.MouseLeft

	// Face buttons.
	e.BindHold(control.A, action.Do(action.MousePress(left)), action.Do(action.MouseRelease(left)))
	e.Bind(control.B, dispatch.OnPress, action.Do(action.MouseClick(action.MouseRight)))
	e.Bind(control.X, dispatch.OnPress, key("enter"))
	e.Bind(control.Y, dispatch.OnPress, key("esc"))
	e.Bind(control.L3, dispatch.OnPress, action.Do(action.MouseClick(action.MouseMiddle)))
	e.BindToggle(control.R3, action.Do(action.MousePress(left)), action.Do(action.MouseRelease(left)))

	// D-pad repeats like held arrow keys.
	holdKey(e, control.DpadUp, "up")
	holdKey(e, control.DpadDown, "down")
	holdKey(e, control.DpadLeft, "left")
	holdKey(e, control.DpadRight, "right")

	// Shoulders navigate back and forward. LB and Start also lead combos,
	// so their own actions wait for release.
	e.BindTap(control.LB, chord("leftalt", "left"))
	e.Bind(control.RB, dispatch.OnPress, chord("leftalt", "right"))
	e.Bind(control.Select, dispatch.OnPress, key("tab"))
	e.BindTap(control.Start, key("leftmeta"))

	// Right trigger drags, left trigger right-clicks.
	e.Bind(control.RT, dispatch.OnRisingEdge(triggerThreshold), action.Do(action.MousePress(left)))
	e.Bind(control.RT, dispatch.OnFallingEdge(triggerThreshold), action.Do(action.MouseRelease(left)))
	e.Bind(control.LT, dispatch.OnRisingEdge(triggerThreshold), action.Do(action.MouseClick(action.MouseRight)))

	// Flicks of the stick not driving the pointer scroll one notch.
	scrollX, scrollY := control.RightX, control.RightY
	if opts.PointerStick == "right" {
		scrollX, scrollY = control.LeftX, control.LeftY
	}
	e.Bind(scrollY, dispatch.OnAnyChange, action.Seq(
		action.When(flickedUp, action.Do(action.Scroll(0, 1))),
		action.When(flickedDown, action.Do(action.Scroll(0, -1))),
	))
	e.Bind(scrollX, dispatch.OnAnyChange, action.Seq(
		action.When(flickedUp, action.Do(action.Scroll(1, 0))),
		action.When(flickedDown, action.Do(action.Scroll(-1, 0))),
	))

	// Home recenters the pointer.
	if opts.ScreenWidth > 0 && opts.ScreenHeight > 0 {
		e.Bind(control.Home, dispatch.OnPress, action.Do(action.MoveAbs(opts.ScreenWidth/2, opts.ScreenHeight/2)))
	}

	// Combos with LB held.
	e.BindCombo(control.LB, control.Y, chord("leftalt", "tab"))
	e.BindCombo(control.LB, control.X, chord("leftctrl", "c"))
	e.BindCombo(control.LB, control.B, chord("leftctrl", "v"))

	// Start held, then Select: quit.
	e.BindCombo(control.Start, control.Select, action.Dynamic(func() action.Action {
		log.Println("Quit requested from controller")
		if opts.Quit != nil {
			opts.Quit()
		}
		return action.NoOp{}
	}))
}
