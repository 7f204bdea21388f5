package binder

import (
	"fmt"
	"unicode/utf8"
)

const maxPayloadInMessage = 200

// MalformedPayloadError means that a JSON body could not be read into the declared model
// shape: it was not valid JSON, or a value had the wrong type, such as an array where an
// object was expected.
type MalformedPayloadError struct {
	Payload string
	Err     error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed payload (%s): %q", e.Err, truncate(e.Payload, maxPayloadInMessage))
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Err
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
