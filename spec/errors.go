package spec

import "fmt"

// InvalidConfigError is returned when a specification is constructed from bad input. It is
// meant to be fatal at setup time; nothing in the harness tries to recover from it.
type InvalidConfigError struct {
	Option  string
	Message string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.Option, e.Message)
}

func invalidConfig(option, format string, args ...interface{}) *InvalidConfigError {
	return &InvalidConfigError{Option: option, Message: fmt.Sprintf(format, args...)}
}
