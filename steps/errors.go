package steps

import (
	"fmt"
	"strings"
)

// StepError is the failure of a step. Path holds the names of every enclosing step, outermost
// first; Err is the original failure, unchanged, so errors.As and errors.Is see through it.
type StepError struct {
	Path []string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q: %s", strings.Join(e.Path, " / "), e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Name returns the innermost step name.
func (e *StepError) Name() string {
	if len(e.Path) == 0 {
		return ""
	}
	return e.Path[len(e.Path)-1]
}

// PanicError is a panic raised by a step action, converted to an error.
type PanicError struct {
	Value interface{}
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value if it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
