// Package scenario reads simulation inputs and builds the initial population.
package scenario

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/savanna/components"
)

// Fatal input errors. Messages are what the CLI prints.
var (
	ErrInvalidInputs     = errors.New("Invalid inputs")
	ErrInvalidParamCount = errors.New("Invalid number of animal parameters")
)

// Day and population limits accepted by the readers.
const (
	MinDays    = 1
	MaxDays    = 30
	MinAnimals = 1
	MaxAnimals = 20
)

// LineError locates a fatal error in a text input.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Message returns the line the CLI prints for a fatal input error:
// the sentinel's own message when err wraps one, otherwise err.Error().
func Message(err error) string {
	var be *components.BoundError
	switch {
	case errors.As(err, &be):
		return be.Err.Error()
	case errors.Is(err, ErrInvalidParamCount):
		return ErrInvalidParamCount.Error()
	case errors.Is(err, ErrInvalidInputs):
		return ErrInvalidInputs.Error()
	default:
		return err.Error()
	}
}
