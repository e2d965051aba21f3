package dispatch

import (
	"log"
	"slices"

	"github.com/soar/PadMouse/internal/action"
)

// heldOutput passes commands through to an injector and remembers which keys
// and mouse buttons it has pressed but not yet released.
type heldOutput struct {
	inj  action.Injector
	held []action.Op // release ops, in press order
}

var _ action.Injector = (*heldOutput)(nil)

func (h *heldOutput) track(release action.Op, d action.Direction) {
	i := slices.Index(h.held, release)
	switch {
	case d == action.Press && i < 0:
		h.held = append(h.held, release)
	case d == action.Release && i >= 0:
		h.held = slices.Delete(h.held, i, i+1)
	}
}

func (h *heldOutput) Key(k action.Key, d action.Direction) error {
	if err := h.inj.Key(k, d); err != nil {
		return err
	}
	h.track(action.KeyRelease(k), d)
	return nil
}

func (h *heldOutput) Button(b action.MouseButton, d action.Direction) error {
	if err := h.inj.Button(b, d); err != nil {
		return err
	}
	h.track(action.MouseRelease(b), d)
	return nil
}

func (h *heldOutput) MoveRelative(dx, dy int32) error { return h.inj.MoveRelative(dx, dy) }
func (h *heldOutput) MoveAbsolute(x, y int32) error   { return h.inj.MoveAbsolute(x, y) }
func (h *heldOutput) Scroll(dx, dy int32) error       { return h.inj.Scroll(dx, dy) }

// releaseAll releases everything still held, most recent first. The first
// failure is returned; the held set is cleared either way.
func (h *heldOutput) releaseAll() error {
	var first error
	for i := len(h.held) - 1; i >= 0; i-- {
		if err := action.Apply(h.inj, h.held[i]); err != nil {
			if first == nil {
				first = &action.InjectionError{Op: h.held[i], Err: err}
			} else {
				log.Printf("Release %s failed: %v", h.held[i], err)
			}
		}
	}
	h.held = nil
	return first
}
