package executor

import (
	"fmt"
	"net/http"
	"time"
)

// RawResponse is a fully read HTTP response. The body has already been consumed and the
// connection released, so a RawResponse can be inspected any number of times.
type RawResponse struct {
	Method     string
	URL        string
	Proto      string
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
	Elapsed    time.Duration
}

// StatusLine returns the status line in the form "HTTP/1.1 201 Created".
func (r *RawResponse) StatusLine() string {
	proto := r.Proto
	if proto == "" {
		proto = "HTTP/1.1"
	}
	if r.Status != "" {
		return fmt.Sprintf("%s %s", proto, r.Status)
	}
	return fmt.Sprintf("%s %d %s", proto, r.StatusCode, http.StatusText(r.StatusCode))
}
