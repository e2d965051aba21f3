package action

import "fmt"

// Key names a keyboard key, e.g. "a", "enter", "leftalt".
type Key string

// MouseButton names a pointer button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota + 1
	MouseRight
	MouseMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// Direction selects press, release or a full click.
type Direction uint8

const (
	Press Direction = iota + 1
	Release
	Click
)

func (d Direction) String() string {
	switch d {
	case Press:
		return "press"
	case Release:
		return "release"
	case Click:
		return "click"
	default:
		return "unknown"
	}
}

// OpCode enumerates the injector commands.
type OpCode uint8

const (
	OpKey OpCode = iota + 1
	OpButton
	OpMoveRel
	OpMoveAbs
	OpScroll
)

// Op is a primitive injector command as plain data. Ops are comparable.
type Op struct {
	Code      OpCode
	Direction Direction
	Key       Key
	Button    MouseButton
	X, Y      int32
}

func KeyPress(k Key) Op   { return Op{Code: OpKey, Direction: Press, Key: k} }
func KeyRelease(k Key) Op { return Op{Code: OpKey, Direction: Release, Key: k} }
func KeyClick(k Key) Op   { return Op{Code: OpKey, Direction: Click, Key: k} }

func MousePress(b MouseButton) Op   { return Op{Code: OpButton, Direction: Press, Button: b} }
func MouseRelease(b MouseButton) Op { return Op{Code: OpButton, Direction: Release, Button: b} }
func MouseClick(b MouseButton) Op   { return Op{Code: OpButton, Direction: Click, Button: b} }

// MoveRel moves the pointer by (dx, dy).
func MoveRel(dx, dy int32) Op { return Op{Code: OpMoveRel, X: dx, Y: dy} }

// MoveAbs moves the pointer to (x, y).
func MoveAbs(x, y int32) Op { return Op{Code: OpMoveAbs, X: x, Y: y} }

// Scroll scrolls horizontally by dx and vertically by dy.
func Scroll(dx, dy int32) Op { return Op{Code: OpScroll, X: dx, Y: dy} }

func (o Op) String() string {
	switch o.Code {
	case OpKey:
		return fmt.Sprintf("key %s %s", o.Direction, o.Key)
	case OpButton:
		return fmt.Sprintf("mouse %s %s", o.Direction, o.Button)
	case OpMoveRel:
		return fmt.Sprintf("move %+d,%+d", o.X, o.Y)
	case OpMoveAbs:
		return fmt.Sprintf("move to %d,%d", o.X, o.Y)
	case OpScroll:
		return fmt.Sprintf("scroll %+d,%+d", o.X, o.Y)
	default:
		return "invalid op"
	}
}
