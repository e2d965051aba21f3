package control

import (
	"math"
	"strconv"
)

// ValueKind tags which variant a Value holds.
type ValueKind uint8

const (
	// None is the zero kind: the control has never been observed.
	None ValueKind = iota
	Digital
	Analog01
	AnalogBi
)

// Value is the last observed value of a control. Digital values carry 0 or 1,
// Analog01 values lie in [0,1] and AnalogBi values in [-1,1]. Values are
// comparable with ==.
type Value struct {
	Kind ValueKind
	X    float64
}

// DigitalValue returns a button value.
func DigitalValue(pressed bool) Value {
	if pressed {
		return Value{Kind: Digital, X: 1}
	}
	return Value{Kind: Digital}
}

// TriggerValue returns a pressure value clamped to [0,1].
func TriggerValue(v float64) Value {
	return Value{Kind: Analog01, X: clamp(v, 0, 1)}
}

// AxisValue returns a bidirectional axis value clamped to [-1,1].
func AxisValue(v float64) Value {
	return Value{Kind: AnalogBi, X: clamp(v, -1, 1)}
}

// Valid reports whether the value was actually observed.
func (v Value) Valid() bool { return v.Kind != None }

// Pressed reports whether v is Digital(true).
func (v Value) Pressed() bool { return v.Kind == Digital && v.X != 0 }

// Released reports whether v is Digital(false).
func (v Value) Released() bool { return v.Kind == Digital && v.X == 0 }

// Active reports whether the control counts as engaged: a pressed button, a
// trigger above threshold, or an axis deflected beyond threshold.
func (v Value) Active(threshold float64) bool {
	switch v.Kind {
	case Digital:
		return v.X != 0
	case Analog01:
		return v.X > threshold
	case AnalogBi:
		return math.Abs(v.X) > threshold
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.Kind {
	case Digital:
		if v.Pressed() {
			return "pressed"
		}
		return "released"
	case Analog01, AnalogBi:
		return strconv.FormatFloat(v.X, 'f', 3, 64)
	default:
		return "none"
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
