package gamepad

import (
	"log"

	"github.com/soar/PadMouse/internal/control"
)

// triggerDeadzone zeroes trigger pressure below this level. Sticks are
// reported raw; the velocity integrator applies its own deadzone.
const triggerDeadzone = 0.05

// Device describes a connected joystick.
type Device struct {
	ID      uint32
	Name    string
	Vendor  uint16
	Product uint16
	Mapping *DeviceMapping
}

// Tracker follows connected joysticks, picks the active one and translates
// its raw reports into control events. Reports from other joysticks are
// ignored.
type Tracker struct {
	devices   map[uint32]*Device
	order     []uint32
	activeID  uint32 // the first connected joystick
	hasActive bool
	state     *padState
}

func NewTracker() *Tracker {
	return &Tracker{
		devices: make(map[uint32]*Device),
		state:   newPadState(),
	}
}

// Connect registers a joystick and makes it active if none is.
func (t *Tracker) Connect(id uint32, name string, vendor, product uint16) *Device {
	if d, exists := t.devices[id]; exists {
		return d
	}
	d := &Device{
		ID:      id,
		Name:    name,
		Vendor:  vendor,
		Product: product,
		Mapping: Lookup(vendor, product),
	}
	t.devices[id] = d
	t.order = append(t.order, id)

	if !t.hasActive {
		t.activeID = id
		t.hasActive = true
		log.Printf("Active joystick set: %s (ID=%d)", name, id)
	}
	return d
}

// Disconnect forgets a joystick. If it was active, everything it held is
// released and the next connected joystick is promoted.
func (t *Tracker) Disconnect(id uint32) []control.Event {
	d, exists := t.devices[id]
	if !exists {
		return nil
	}
	delete(t.devices, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}

	if !t.hasActive || t.activeID != id {
		return nil
	}
	log.Printf("Active joystick %s disconnected, releasing held controls", d.Name)

	t.hasActive = false
	released := t.state.reset()
	if len(t.order) > 0 {
		next := t.devices[t.order[0]]
		t.activeID = next.ID
		t.hasActive = true
		log.Printf("Active joystick switched to: %s (ID=%d)", next.Name, next.ID)
	}
	return released
}

// Active returns the active joystick, if any.
func (t *Tracker) Active() (*Device, bool) {
	if !t.hasActive {
		return nil, false
	}
	return t.devices[t.activeID], true
}

// Devices lists connected joysticks in connection order.
func (t *Tracker) Devices() []*Device {
	out := make([]*Device, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.devices[id])
	}
	return out
}

func (t *Tracker) mapping(id uint32) (*DeviceMapping, bool) {
	if !t.hasActive || id != t.activeID {
		return nil, false
	}
	return t.devices[id].Mapping, true
}

// Button translates a raw button report.
func (t *Tracker) Button(id uint32, index int32, down bool) []control.Event {
	m, ok := t.mapping(id)
	if !ok {
		return nil
	}
	target, ok := m.button(index)
	if !ok {
		return nil
	}
	return t.state.button(target, down)
}

// Axis translates a raw axis report into a trigger or stick event.
func (t *Tracker) Axis(id uint32, index int32, raw int16) []control.Event {
	m, ok := t.mapping(id)
	if !ok {
		return nil
	}
	am, ok := m.axis(index)
	if !ok {
		return nil
	}
	if am.IsTrigger {
		v := ApplyDeadzone(NormalizeTrigger(raw, am.RawMin, am.RawMax), triggerDeadzone)
		return t.state.analog(am.Target, v, true)
	}
	v := NormalizeAxis(raw)
	if am.Invert {
		v = -v
	}
	return t.state.analog(am.Target, v, false)
}

// Hat translates a report from the first hat into d-pad presses.
func (t *Tracker) Hat(id uint32, hat uint8, value uint8) []control.Event {
	m, ok := t.mapping(id)
	if !ok || !m.HasHat || hat != 0 {
		return nil
	}
	return t.state.dpad(value)
}
