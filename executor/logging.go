package executor

import (
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/launchdarkly/http-contract-tests/framework"
	"github.com/launchdarkly/http-contract-tests/spec"

	"github.com/alessio/shellescape"
)

// requestLogger is always the last filter in the chain, so it sees the request exactly as it
// goes out, including anything earlier filters added.
func requestLogger(logger framework.Logger, s spec.RequestSpecification) spec.Filter {
	return spec.FilterFunc(func(req *http.Request, next spec.Next) (*http.Response, error) {
		safeLog(func() {
			if s.LogMethod() {
				logger.Printf("Request method: %s", req.Method)
			}
			if s.LogURI() {
				logger.Printf("Request URI: %s", req.URL)
			}
			if s.LogHeaders() {
				logger.Printf("Request headers:\n%s", formatHeaders(req.Header))
			}
			if s.LogBody() {
				logger.Printf("Request body: %s", orNone(requestBody(req)))
			}
		})
		return next(req)
	})
}

func logResponse(logger framework.Logger, s spec.ResponseSpecification, resp *RawResponse) {
	safeLog(func() {
		if s.LogStatus() {
			logger.Printf("Response status: %s", resp.StatusLine())
		}
		if s.LogHeaders() {
			logger.Printf("Response headers:\n%s", formatHeaders(resp.Header))
		}
		if s.LogBody() {
			logger.Printf("Response body: %s", orNone(string(resp.Body)))
		}
	})
}

// safeLog runs a logging action and discards any panic from it. Diagnostics must not be able
// to change the outcome of a request.
func safeLog(action func()) {
	defer func() {
		_ = recover()
	}()
	action()
}

// RenderCurl formats a request as an equivalent curl command line.
func RenderCurl(req *http.Request) string {
	parts := []string{"curl", "-X", req.Method}
	for _, name := range sortedHeaderNames(req.Header) {
		for _, v := range req.Header.Values(name) {
			parts = append(parts, "-H", shellescape.Quote(name+": "+v))
		}
	}
	if body := requestBody(req); body != "" {
		parts = append(parts, "--data", shellescape.Quote(body))
	}
	parts = append(parts, shellescape.Quote(req.URL.String()))
	return strings.Join(parts, " ")
}

func requestBody(req *http.Request) string {
	if req.GetBody == nil {
		return ""
	}
	body, err := req.GetBody()
	if err != nil {
		return ""
	}
	defer body.Close()
	data, _ := io.ReadAll(body)
	return string(data)
}

func formatHeaders(h http.Header) string {
	var lines []string
	for _, name := range sortedHeaderNames(h) {
		lines = append(lines, "  "+name+": "+strings.Join(h.Values(name), ", "))
	}
	return strings.Join(lines, "\n")
}

func sortedHeaderNames(h http.Header) []string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func orNone(s string) string {
	if s == "" {
		return "<none>"
	}
	return s
}
