// Package executor performs HTTP calls described by request and response specifications.
package executor

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/launchdarkly/http-contract-tests/binder"
	"github.com/launchdarkly/http-contract-tests/framework"
	"github.com/launchdarkly/http-contract-tests/spec"

	"github.com/pkg/errors"
)

var allowedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPatch:  true,
	http.MethodPut:    true,
	http.MethodDelete: true,
}

// Config contains the options for New.
type Config struct {
	// BaseURI is the scheme and host of the service, such as "https://reqres.in".
	BaseURI string
	// BasePath is prefixed to every request path, such as "/api".
	BasePath string
	// Client performs the requests. If nil, http.DefaultClient is used. Tests can supply a
	// client with a stub transport.
	Client *http.Client
	// Logger receives the diagnostic output requested by specifications. If nil, it is
	// discarded.
	Logger framework.Logger
}

// Executor sends requests to one service. It holds no per-request state and can be shared.
type Executor struct {
	base   *url.URL
	client *http.Client
	logger framework.Logger
}

func New(config Config) (*Executor, error) {
	base, err := url.Parse(config.BaseURI)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, &spec.InvalidConfigError{Option: "baseURI", Message: "not an absolute URL: " + config.BaseURI}
	}
	base.Path = joinPath(base.Path, config.BasePath)
	client := config.Client
	if client == nil {
		client = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Executor{base: base, client: client, logger: logger}, nil
}

// WithLogger returns an Executor that shares this one's settings but logs to a different
// Logger. Test suites use this to capture diagnostics per test.
func (e *Executor) WithLogger(logger framework.Logger) *Executor {
	ret := *e
	if logger == nil {
		logger = framework.NullLogger()
	}
	ret.logger = logger
	return &ret
}

// BaseURL returns the base URI and base path that request paths are relative to.
func (e *Executor) BaseURL() string {
	return e.base.String()
}

// Execute sends one request. The path is relative to the base URI and base path. If model is
// non-nil it is serialized as the request body; otherwise, including when it is a nil pointer,
// no body is sent.
//
// Errors from the transport are returned unchanged. The status code is not checked; see
// ApplyResponseSpec.
func (e *Executor) Execute(
	ctx context.Context,
	requestSpec spec.RequestSpecification,
	method string,
	path string,
	model binder.Serializable,
) (*RawResponse, error) {
	if !allowedMethods[method] {
		return nil, &spec.InvalidConfigError{Option: "method", Message: "unsupported HTTP method " + method}
	}
	target, err := e.resolve(path)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if !binder.IsNil(model) {
		data, err := binder.Serialize(model)
		if err != nil {
			return nil, errors.Wrapf(err, "could not build body for %s %s", method, path)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, errors.Wrap(err, "could not create request")
	}
	req.Header = requestSpec.Headers()
	if contentType := requestSpec.ContentType().HeaderValue(); body != nil && contentType != "" &&
		req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}

	filters := append(requestSpec.Filters(), requestLogger(e.logger, requestSpec))
	start := time.Now()
	resp, err := spec.Chain(filters, e.client.Do)(req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, ErrNoResponse
	}
	var data []byte
	if resp.Body != nil {
		defer resp.Body.Close()
		if data, err = io.ReadAll(resp.Body); err != nil {
			return nil, err
		}
	}

	return &RawResponse{
		Method:     method,
		URL:        target,
		Proto:      resp.Proto,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       data,
		Elapsed:    time.Since(start),
	}, nil
}

// ApplyResponseSpec checks a response against a response specification. It returns the same
// response, along with a *ContractViolation if the status code is not the expected one.
func (e *Executor) ApplyResponseSpec(resp *RawResponse, responseSpec spec.ResponseSpecification) (*RawResponse, error) {
	logResponse(e.logger, responseSpec, resp)
	if resp.StatusCode != responseSpec.ExpectedStatus() {
		return resp, &ContractViolation{
			Expected: responseSpec.ExpectedStatus(),
			Actual:   resp.StatusCode,
			Method:   resp.Method,
			URL:      resp.URL,
			Body:     string(resp.Body),
		}
	}
	return resp, nil
}

// Call is Execute followed by ApplyResponseSpec.
func (e *Executor) Call(
	ctx context.Context,
	requestSpec spec.RequestSpecification,
	method string,
	path string,
	model binder.Serializable,
	responseSpec spec.ResponseSpecification,
) (*RawResponse, error) {
	resp, err := e.Execute(ctx, requestSpec, method, path, model)
	if err != nil {
		return nil, err
	}
	return e.ApplyResponseSpec(resp, responseSpec)
}

// Extract binds the body of a response to a new model of type M.
func Extract[M any, PM interface {
	*M
	binder.Deserializable
}](resp *RawResponse) (M, error) {
	return binder.As[M, PM](resp.Body)
}

func (e *Executor) resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil || ref.IsAbs() || ref.Host != "" {
		return "", &spec.InvalidConfigError{Option: "path", Message: "not a relative path: " + path}
	}
	u := *e.base
	u.Path = joinPath(e.base.Path, ref.Path)
	u.RawQuery = ref.RawQuery
	return u.String(), nil
}

func joinPath(parts ...string) string {
	var trimmed []string
	for _, p := range parts {
		if p = strings.Trim(p, "/"); p != "" {
			trimmed = append(trimmed, p)
		}
	}
	return "/" + strings.Join(trimmed, "/")
}
