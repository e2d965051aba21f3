package inject

import (
	"log"

	"github.com/soar/PadMouse/internal/action"
)

// Logger is an action.Injector that only logs. Used for --dry-run.
type Logger struct{}

var _ action.Injector = Logger{}

func (Logger) Key(k action.Key, d action.Direction) error {
	if _, ok := KeyCode(k); !ok {
		return ErrUnknownKey
	}
	log.Printf("[DRY] key %s %s", d, k)
	return nil
}

func (Logger) Button(b action.MouseButton, d action.Direction) error {
	log.Printf("[DRY] mouse %s %s", d, b)
	return nil
}

func (Logger) MoveRelative(dx, dy int32) error {
	log.Printf("[DRY] move %+d,%+d", dx, dy)
	return nil
}

func (Logger) MoveAbsolute(x, y int32) error {
	log.Printf("[DRY] move to %d,%d", x, y)
	return nil
}

func (Logger) Scroll(dx, dy int32) error {
	log.Printf("[DRY] scroll %+d,%+d", dx, dy)
	return nil
}
