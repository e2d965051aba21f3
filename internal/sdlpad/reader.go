// Package sdlpad is the SDL3 joystick device source.
package sdlpad

import (
	"errors"
	"fmt"
	"log"
	"runtime"

	"github.com/jupiterrider/purego-sdl3/sdl"

	"github.com/soar/PadMouse/internal/control"
	"github.com/soar/PadMouse/internal/gamepad"
)

var ErrInit = errors.New("sdl joystick init failed")

// Reader is a non-blocking device source. Open, Next and Close must all be
// called from the same goroutine, which Open locks to its OS thread.
type Reader struct {
	tracker   *gamepad.Tracker
	joysticks map[sdl.JoystickID]*sdl.Joystick
	pending   []control.Event
	verbose   bool
}

func NewReader(verbose bool) *Reader {
	return &Reader{
		tracker:   gamepad.NewTracker(),
		joysticks: make(map[sdl.JoystickID]*sdl.Joystick),
		verbose:   verbose,
	}
}

// Open initializes SDL and opens already-connected joysticks.
func (r *Reader) Open() error {
	runtime.LockOSThread()

	if !sdl.Init(sdl.InitJoystick) {
		runtime.UnlockOSThread()
		return fmt.Errorf("%w: %s", ErrInit, sdl.GetError())
	}

	log.Println("SDL3 Joystick subsystem initialized")

	for _, id := range sdl.GetJoysticks() {
		r.openJoystick(id)
	}
	return nil
}

// Close closes every joystick and shuts SDL down.
func (r *Reader) Close() {
	for id, js := range r.joysticks {
		sdl.CloseJoystick(js)
		delete(r.joysticks, id)
	}
	sdl.Quit()
	runtime.UnlockOSThread()
}

// Next returns the next pending control event without blocking. ok is false
// once SDL's queue is drained.
func (r *Reader) Next() (control.Event, bool) {
	for len(r.pending) == 0 {
		var event sdl.Event
		if !sdl.PollEvent(&event) {
			return control.Event{}, false
		}
		r.pending = append(r.pending, r.translate(&event)...)
	}

	ev := r.pending[0]
	r.pending = r.pending[1:]
	if r.verbose {
		log.Printf("[DEBUG] %s", ev)
	}
	return ev, true
}

// Devices lists connected joysticks in connection order.
func (r *Reader) Devices() []*gamepad.Device {
	return r.tracker.Devices()
}

func (r *Reader) translate(event *sdl.Event) []control.Event {
	switch event.Type() {
	case sdl.EventJoystickAdded:
		r.openJoystick(event.JDevice().Which)

	case sdl.EventJoystickRemoved:
		return r.removeJoystick(event.JDevice().Which)

	case sdl.EventJoystickButtonDown, sdl.EventJoystickButtonUp:
		be := event.JButton()
		return r.tracker.Button(uint32(be.Which), int32(be.Button), event.Type() == sdl.EventJoystickButtonDown)

	case sdl.EventJoystickAxisMotion:
		ae := event.JAxis()
		return r.tracker.Axis(uint32(ae.Which), int32(ae.Axis), int16(ae.Value))

	case sdl.EventJoystickHatMotion:
		he := event.JHat()
		return r.tracker.Hat(uint32(he.Which), uint8(he.Hat), uint8(he.Value))
	}
	return nil
}

func (r *Reader) openJoystick(instanceID sdl.JoystickID) {
	if _, exists := r.joysticks[instanceID]; exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		log.Printf("Failed to open joystick %d: %s", instanceID, sdl.GetError())
		return
	}

	jsID := sdl.GetJoystickID(js)
	r.joysticks[jsID] = js
	d := r.tracker.Connect(uint32(jsID), sdl.GetJoystickName(js), sdl.GetJoystickVendor(js), sdl.GetJoystickProduct(js))

	log.Printf("Joystick connected: %s (VID=%04X PID=%04X) mapping=%s axes=%d buttons=%d hats=%d",
		d.Name, d.Vendor, d.Product, d.Mapping.Name,
		sdl.GetNumJoystickAxes(js), sdl.GetNumJoystickButtons(js), sdl.GetNumJoystickHats(js))
}

func (r *Reader) removeJoystick(instanceID sdl.JoystickID) []control.Event {
	js, exists := r.joysticks[instanceID]
	if !exists {
		return nil
	}
	log.Printf("Joystick disconnected: %s", sdl.GetJoystickName(js))
	sdl.CloseJoystick(js)
	delete(r.joysticks, instanceID)
	return r.tracker.Disconnect(uint32(instanceID))
}
