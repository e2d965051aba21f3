// Package inject performs keyboard and pointer output through Linux uinput
// virtual devices.
package inject

import (
	"errors"
	"fmt"
	"log"

	"github.com/bendahl/uinput"

	"github.com/soar/PadMouse/internal/action"
)

var (
	ErrUnknownKey    = errors.New("unknown key")
	ErrUnknownButton = errors.New("unknown mouse button")
	ErrDirection     = errors.New("invalid direction")
)

// Options configures the virtual devices.
type Options struct {
	Path         string // usually /dev/uinput
	Name         string
	ScreenWidth  int32
	ScreenHeight int32
}

// Uinput injects through a virtual keyboard, a relative mouse and an
// absolute touchpad.
type Uinput struct {
	keyboard uinput.Keyboard
	mouse    uinput.Mouse
	touchpad uinput.TouchPad
}

var _ action.Injector = (*Uinput)(nil)

// Open creates the virtual devices. Devices created before a failure are
// closed again.
func Open(opts Options) (*Uinput, error) {
	kb, err := uinput.CreateKeyboard(opts.Path, []byte(opts.Name+" keyboard"))
	if err != nil {
		return nil, fmt.Errorf("create keyboard: %w", err)
	}
	mouse, err := uinput.CreateMouse(opts.Path, []byte(opts.Name+" mouse"))
	if err != nil {
		kb.Close()
		return nil, fmt.Errorf("create mouse: %w", err)
	}
	tp, err := uinput.CreateTouchPad(opts.Path, []byte(opts.Name+" touchpad"), 0, opts.ScreenWidth-1, 0, opts.ScreenHeight-1)
	if err != nil {
		kb.Close()
		mouse.Close()
		return nil, fmt.Errorf("create touchpad: %w", err)
	}

	log.Printf("Virtual input devices created on %s (screen %dx%d)", opts.Path, opts.ScreenWidth, opts.ScreenHeight)
	return &Uinput{keyboard: kb, mouse: mouse, touchpad: tp}, nil
}

// Close destroys the virtual devices.
func (u *Uinput) Close() error {
	return errors.Join(u.keyboard.Close(), u.mouse.Close(), u.touchpad.Close())
}

func (u *Uinput) Key(k action.Key, d action.Direction) error {
	code, ok := KeyCode(k)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, k)
	}
	switch d {
	case action.Press:
		return u.keyboard.KeyDown(code)
	case action.Release:
		return u.keyboard.KeyUp(code)
	case action.Click:
		return u.keyboard.KeyPress(code)
	default:
		return ErrDirection
	}
}

func (u *Uinput) Button(b action.MouseButton, d action.Direction) error {
	type calls struct{ press, release, click func() error }

	var c calls
	switch b {
	case action.MouseLeft:
		c = calls{u.mouse.LeftPress, u.mouse.LeftRelease, u.mouse.LeftClick}
	case action.MouseRight:
		c = calls{u.mouse.RightPress, u.mouse.RightRelease, u.mouse.RightClick}
	case action.MouseMiddle:
		c = calls{u.mouse.MiddlePress, u.mouse.MiddleRelease, u.mouse.MiddleClick}
	default:
		return fmt.Errorf("%w: %d", ErrUnknownButton, b)
	}

	switch d {
	case action.Press:
		return c.press()
	case action.Release:
		return c.release()
	case action.Click:
		return c.click()
	default:
		return ErrDirection
	}
}

func (u *Uinput) MoveRelative(dx, dy int32) error {
	return u.mouse.Move(dx, dy)
}

func (u *Uinput) MoveAbsolute(x, y int32) error {
	return u.touchpad.MoveTo(x, y)
}

// Scroll issues the horizontal wheel step first, then the vertical one.
func (u *Uinput) Scroll(dx, dy int32) error {
	if dx != 0 {
		if err := u.mouse.Wheel(true, dx); err != nil {
			return err
		}
	}
	if dy != 0 {
		return u.mouse.Wheel(false, dy)
	}
	return nil
}
