package executor

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/launchdarkly/http-contract-tests/spec"
	"github.com/launchdarkly/http-contract-tests/steps"

	"github.com/google/uuid"
)

// RequestIDHeader is the header set by RequestIDFilter.
const RequestIDHeader = "X-Request-Id"

// RequestIDFilter tags each request with a random X-Request-Id, unless it already has one, so
// that a request in the harness log can be matched to the service's own logs.
func RequestIDFilter() spec.Filter {
	return spec.FilterFunc(func(req *http.Request, next spec.Next) (*http.Response, error) {
		if req.Header.Get(RequestIDHeader) == "" {
			req.Header.Set(RequestIDHeader, uuid.NewString())
		}
		return next(req)
	})
}

// AttachmentFilter attaches each request, rendered as a curl command, and its response to the
// step that is running when the request is made. It does nothing if the request's context does
// not carry a step recorder.
func AttachmentFilter() spec.Filter {
	return spec.FilterFunc(func(req *http.Request, next spec.Next) (*http.Response, error) {
		recorder := steps.FromContext(req.Context())
		if recorder == nil {
			return next(req)
		}
		recorder.Attach("Request", RenderCurl(req))
		resp, err := next(req)
		if err != nil {
			recorder.Attach("Response", "transport error: "+err.Error())
			return resp, err
		}
		data, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(data))
		if readErr != nil {
			return resp, readErr
		}
		recorder.Attach("Response", fmt.Sprintf("%s %s\n\n%s", resp.Proto, resp.Status, data))
		return resp, nil
	})
}
