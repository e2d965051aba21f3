package gamepad

import (
	"math"

	"github.com/soar/PadMouse/internal/control"
)

const (
	hatUp    uint8 = 0x01
	hatRight uint8 = 0x02
	hatDown  uint8 = 0x04
	hatLeft  uint8 = 0x08
)

var hatBits = []struct {
	bit uint8
	id  control.ID
}{
	{hatUp, control.DpadUp},
	{hatRight, control.DpadRight},
	{hatDown, control.DpadDown},
	{hatLeft, control.DpadLeft},
}

// analogThreshold suppresses axis motion smaller than this between reports.
const analogThreshold = 0.01

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < analogThreshold
}

// padState is what has been reported for the active joystick so far. It
// filters sensor chatter and lets a disconnect release everything held.
type padState struct {
	pressed map[control.ID]bool
	levels  map[control.ID]float64
	hat     uint8
}

func newPadState() *padState {
	return &padState{
		pressed: make(map[control.ID]bool),
		levels:  make(map[control.ID]float64),
	}
}

func (p *padState) button(id control.ID, down bool) []control.Event {
	if p.pressed[id] == down {
		return nil
	}
	p.pressed[id] = down
	if down {
		return []control.Event{control.Pressed(id)}
	}
	return []control.Event{control.Released(id)}
}

// analog reports a trigger or stick level unless it moved by less than
// analogThreshold. Rest and full-scale values are always reported so a
// control can settle exactly.
func (p *padState) analog(id control.ID, v float64, trigger bool) []control.Event {
	last, seen := p.levels[id]
	settled := v == 0 || math.Abs(v) == 1
	if seen && (last == v || (!settled && floatEqual(last, v))) {
		return nil
	}
	p.levels[id] = v
	if trigger {
		return []control.Event{control.Changed(id, v)}
	}
	return []control.Event{control.Moved(id, v)}
}

// dpad converts a hat bitmask into press/release events for the bits that
// changed.
func (p *padState) dpad(hat uint8) []control.Event {
	var out []control.Event
	changed := p.hat ^ hat
	for _, hb := range hatBits {
		if changed&hb.bit == 0 {
			continue
		}
		out = append(out, p.button(hb.id, hat&hb.bit != 0)...)
	}
	p.hat = hat
	return out
}

// reset releases every held button and returns every analog control to rest.
func (p *padState) reset() []control.Event {
	var out []control.Event
	for id, down := range p.pressed {
		if down {
			out = append(out, control.Released(id))
		}
	}
	for id, v := range p.levels {
		if v == 0 {
			continue
		}
		if id.Kind == control.KindAxis {
			out = append(out, control.Moved(id, 0))
		} else {
			out = append(out, control.Changed(id, 0))
		}
	}
	p.pressed = make(map[control.ID]bool)
	p.levels = make(map[control.ID]float64)
	p.hat = 0
	return out
}
