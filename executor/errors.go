package executor

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const maxBodyInMessage = 500

// ErrNoResponse is returned by Execute when a filter returns neither a response nor an error.
var ErrNoResponse = errors.New("filter chain returned no response")

// ContractViolation means that a response did not have the status code required by the
// response specification. It is a test failure, never a reason to retry.
type ContractViolation struct {
	Expected int
	Actual   int
	Method   string
	URL      string
	Body     string
}

func (e *ContractViolation) Error() string {
	msg := fmt.Sprintf("expected HTTP status %d but got %d", e.Expected, e.Actual)
	if e.Method != "" {
		msg += fmt.Sprintf(" (%s %s)", e.Method, e.URL)
	}
	if e.Body != "" {
		msg += ", response body: " + truncate(e.Body, maxBodyInMessage)
	}
	return msg
}

// truncate shortens s to at most max bytes without splitting a UTF-8 sequence.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
