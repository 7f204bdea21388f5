package reqrestests

import (
	"net/http"

	"github.com/launchdarkly/http-contract-tests/executor"
	"github.com/launchdarkly/http-contract-tests/spec"
)

// Names of the specifications in the registry built by NewRegistry.
const (
	RequestDefault = "default"

	ResponseCreated    = "created"
	ResponseOK         = "ok"
	ResponseBadRequest = "bad-request"
	ResponseNotFound   = "not-found"
)

// SpecOptions controls the parts of the specifications that vary between runs.
type SpecOptions struct {
	// Headers are sent with every request, in addition to the content type.
	Headers map[string]string
	// LogRequests turns on logging of the method, URI, and body of each request.
	LogRequests bool
	// LogResponses turns on logging of the status and body of each response.
	LogResponses bool
}

// NewRegistry builds the specifications used by the test suite.
func NewRegistry(opts SpecOptions) (*spec.Registry, error) {
	b := spec.NewRegistryBuilder()

	b.RegisterRequestSpec(RequestDefault, spec.RequestConfig{
		BaseHeaders: opts.Headers,
		ContentType: spec.ContentTypeJSON,
		LogURI:      opts.LogRequests,
		LogMethod:   opts.LogRequests,
		LogBody:     opts.LogRequests,
		Filters: []spec.Filter{
			executor.RequestIDFilter(),
			executor.AttachmentFilter(),
		},
	})

	for name, status := range map[string]int{
		ResponseCreated:    http.StatusCreated,
		ResponseOK:         http.StatusOK,
		ResponseBadRequest: http.StatusBadRequest,
		ResponseNotFound:   http.StatusNotFound,
	} {
		if _, err := b.RegisterResponseSpec(name, spec.ResponseConfig{
			ExpectedStatus: status,
			LogStatus:      opts.LogResponses,
			LogBody:        opts.LogResponses,
		}); err != nil {
			return nil, err
		}
	}

	return b.Build()
}
