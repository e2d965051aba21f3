package inject

import (
	"strings"

	"github.com/bendahl/uinput"

	"github.com/soar/PadMouse/internal/action"
)

// keyCodes maps key names to uinput key codes. Names are lower case.
var keyCodes = map[string]int{
	"a": uinput.KeyA, "b": uinput.KeyB, "c": uinput.KeyC, "d": uinput.KeyD,
	"e": uinput.KeyE, "f": uinput.KeyF, "g": uinput.KeyG, "h": uinput.KeyH,
	"i": uinput.KeyI, "j": uinput.KeyJ, "k": uinput.KeyK, "l": uinput.KeyL,
	"m": uinput.KeyM, "n": uinput.KeyN, "o": uinput.KeyO, "p": uinput.KeyP,
	"q": uinput.KeyQ, "r": uinput.KeyR, "s": uinput.KeyS, "t": uinput.KeyT,
	"u": uinput.KeyU, "v": uinput.KeyV, "w": uinput.KeyW, "x": uinput.KeyX,
	"y": uinput.KeyY, "z": uinput.KeyZ,

	"1": uinput.Key1, "2": uinput.Key2, "3": uinput.Key3, "4": uinput.Key4,
	"5": uinput.Key5, "6": uinput.Key6, "7": uinput.Key7, "8": uinput.Key8,
	"9": uinput.Key9, "0": uinput.Key0,

	"esc":       uinput.KeyEsc,
	"enter":     uinput.KeyEnter,
	"tab":       uinput.KeyTab,
	"space":     uinput.KeySpace,
	"backspace": uinput.KeyBackspace,
	"delete":    uinput.KeyDelete,
	"insert":    uinput.KeyInsert,
	"home":      uinput.KeyHome,
	"end":       uinput.KeyEnd,
	"pageup":    uinput.KeyPageup,
	"pagedown":  uinput.KeyPagedown,
	"up":        uinput.KeyUp,
	"down":      uinput.KeyDown,
	"left":      uinput.KeyLeft,
	"right":     uinput.KeyRight,

	"leftctrl":   uinput.KeyLeftctrl,
	"leftshift":  uinput.KeyLeftshift,
	"leftalt":    uinput.KeyLeftalt,
	"leftmeta":   uinput.KeyLeftmeta,
	"rightctrl":  uinput.KeyRightctrl,
	"rightshift": uinput.KeyRightshift,
	"rightalt":   uinput.KeyRightalt,

	"f1": uinput.KeyF1, "f2": uinput.KeyF2, "f3": uinput.KeyF3, "f4": uinput.KeyF4,
	"f5": uinput.KeyF5, "f6": uinput.KeyF6, "f7": uinput.KeyF7, "f8": uinput.KeyF8,
	"f9": uinput.KeyF9, "f10": uinput.KeyF10, "f11": uinput.KeyF11, "f12": uinput.KeyF12,

	"volumeup":   uinput.KeyVolumeup,
	"volumedown": uinput.KeyVolumedown,
	"mute":       uinput.KeyMute,
}

// KeyCode resolves a key name to its uinput code.
func KeyCode(k action.Key) (int, bool) {
	code, ok := keyCodes[strings.ToLower(string(k))]
	return code, ok
}
