package spec

import "net/http"

// Next continues a filter chain; the last link performs the actual HTTP round trip.
type Next func(*http.Request) (*http.Response, error)

// Filter is a hook that runs around every request made with a RequestSpecification. A filter
// may modify the request, inspect the response, or both. It must call next exactly once unless
// it returns an error.
type Filter interface {
	Apply(req *http.Request, next Next) (*http.Response, error)
}

// FilterFunc adapts a plain function to the Filter interface.
type FilterFunc func(req *http.Request, next Next) (*http.Response, error)

func (f FilterFunc) Apply(req *http.Request, next Next) (*http.Response, error) {
	return f(req, next)
}

// Chain builds a Next that runs filters in order before calling last.
func Chain(filters []Filter, last Next) Next {
	next := last
	for i := len(filters) - 1; i >= 0; i-- {
		f, n := filters[i], next
		next = func(req *http.Request) (*http.Response, error) {
			return f.Apply(req, n)
		}
	}
	return next
}
