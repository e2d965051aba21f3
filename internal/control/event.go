package control

import "fmt"

// EventType enumerates the raw events a device source yields.
type EventType uint8

const (
	ButtonPressed EventType = iota + 1
	ButtonReleased
	ButtonChanged // trigger pressure, 0..1
	AxisChanged   // stick deflection, -1..1
)

func (t EventType) String() string {
	switch t {
	case ButtonPressed:
		return "pressed"
	case ButtonReleased:
		return "released"
	case ButtonChanged:
		return "changed"
	case AxisChanged:
		return "axis"
	default:
		return "unknown"
	}
}

// Event is one raw input event from a device source.
type Event struct {
	Type  EventType
	ID    ID
	Value float64 // ButtonChanged and AxisChanged only
}

// Pressed builds a ButtonPressed event.
func Pressed(id ID) Event { return Event{Type: ButtonPressed, ID: id} }

// Released builds a ButtonReleased event.
func Released(id ID) Event { return Event{Type: ButtonReleased, ID: id} }

// Changed builds a ButtonChanged event for a pressure-sensitive trigger.
func Changed(id ID, v float64) Event { return Event{Type: ButtonChanged, ID: id, Value: v} }

// Moved builds an AxisChanged event.
func Moved(id ID, v float64) Event { return Event{Type: AxisChanged, ID: id, Value: v} }

// Reading translates the event into the control it touches and the value it
// carries. Out-of-range analog values are clamped.
func (e Event) Reading() (ID, Value) {
	switch e.Type {
	case ButtonPressed:
		return e.ID, DigitalValue(true)
	case ButtonReleased:
		return e.ID, DigitalValue(false)
	case ButtonChanged:
		return e.ID, TriggerValue(e.Value)
	case AxisChanged:
		return e.ID, AxisValue(e.Value)
	default:
		return e.ID, Value{}
	}
}

func (e Event) String() string {
	switch e.Type {
	case ButtonChanged, AxisChanged:
		return fmt.Sprintf("%s %s %.3f", e.ID, e.Type, e.Value)
	default:
		return fmt.Sprintf("%s %s", e.ID, e.Type)
	}
}
