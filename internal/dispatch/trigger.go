package dispatch

import (
	"fmt"

	"github.com/soar/PadMouse/internal/control"
)

// Edge enumerates matching conditions.
type Edge uint8

const (
	EdgePress Edge = iota + 1
	EdgeRelease
	EdgeRising
	EdgeFalling
	EdgeAnyChange
)

// Trigger is the condition under which a binding fires. Triggers are
// comparable and form part of the binding key.
type Trigger struct {
	Edge      Edge
	Threshold float64
}

var (
	OnPress     = Trigger{Edge: EdgePress}
	OnRelease   = Trigger{Edge: EdgeRelease}
	OnAnyChange = Trigger{Edge: EdgeAnyChange}
)

// OnRisingEdge fires when an analog value rises past t.
func OnRisingEdge(t float64) Trigger { return Trigger{Edge: EdgeRising, Threshold: t} }

// OnFallingEdge fires when an analog value drops back to t or below.
func OnFallingEdge(t float64) Trigger { return Trigger{Edge: EdgeFalling, Threshold: t} }

func (t Trigger) String() string {
	switch t.Edge {
	case EdgePress:
		return "press"
	case EdgeRelease:
		return "release"
	case EdgeRising:
		return fmt.Sprintf("rise>%.2f", t.Threshold)
	case EdgeFalling:
		return fmt.Sprintf("fall<=%.2f", t.Threshold)
	case EdgeAnyChange:
		return "change"
	default:
		return "invalid"
	}
}

// matches applies the digital and change policies to the value pair.
// hasPrev is false when the control had never been committed before this
// event. A digital control with no history counts as released, so the first
// press fires. Analog edges are decided by a level latch instead, see cross.
func (t Trigger) matches(cur, prev control.Value, hasPrev bool) bool {
	switch t.Edge {
	case EdgePress:
		return cur.Pressed() && !(hasPrev && prev.Pressed())
	case EdgeRelease:
		return cur.Released() && hasPrev && prev.Pressed()
	case EdgeAnyChange:
		return hasPrev && cur != prev
	default:
		return false
	}
}

func (t Trigger) analog() bool {
	return t.Edge == EdgeRising || t.Edge == EdgeFalling
}

type latchKey struct {
	id        control.ID
	threshold float64
}

// latch remembers whether a control is above a threshold. It sets only once
// the value exceeds threshold+h and clears once the value is back at or below
// threshold, so the rising and falling edges of one threshold strictly
// alternate. With h = 0 it is exactly "current > t, previous <= t" and its
// mirror.
type latch struct {
	high bool
}

// cross moves the latch to v and reports which edge, if any, that was.
func (l *latch) cross(v, threshold, h float64) (rose, fell bool) {
	switch {
	case !l.high && v > threshold+h:
		l.high = true
		return true, false
	case l.high && v <= threshold:
		l.high = false
		return false, true
	}
	return false, false
}
