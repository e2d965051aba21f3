package action

import (
	"errors"
	"fmt"
)

var (
	// ErrDepthExceeded is returned when nested actions recurse too deeply,
	// typically a Dynamic producer that keeps returning itself.
	ErrDepthExceeded = errors.New("action nesting too deep")

	// ErrInvalidOp is returned for an Op with an unknown code.
	ErrInvalidOp = errors.New("invalid op")
)

// InjectionError reports that the injector rejected a primitive command.
type InjectionError struct {
	Op  Op
	Err error
}

func (e *InjectionError) Error() string {
	return fmt.Sprintf("inject %s: %v", e.Op, e.Err)
}

func (e *InjectionError) Unwrap() error {
	return e.Err
}
