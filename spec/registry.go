package spec

import (
	"sort"
)

// ResponseConfig is the set of options for a named ResponseSpecification.
type ResponseConfig struct {
	ExpectedStatus int
	LogStatus      bool
	LogHeaders     bool
	LogBody        bool
}

// RegistryBuilder collects named specifications during process initialization. Once Build has
// been called the builder can no longer be used.
type RegistryBuilder struct {
	request  map[string]RequestSpecification
	response map[string]ResponseSpecification
	errs     []error
	built    bool
}

// Registry is a read-only set of named specifications. It has no mutating methods, so it can
// be shared freely between tests once it has been built.
type Registry struct {
	request  map[string]RequestSpecification
	response map[string]ResponseSpecification
}

func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{
		request:  make(map[string]RequestSpecification),
		response: make(map[string]ResponseSpecification),
	}
}

// RegisterRequestSpec adds a named request specification and returns it.
func (b *RegistryBuilder) RegisterRequestSpec(name string, config RequestConfig) RequestSpecification {
	s := NewRequestSpec(config)
	if b.checkName(name, hasRequest(b.request, name)) == nil {
		b.request[name] = s
	}
	return s
}

// RegisterResponseSpec adds a named response specification and returns it. An invalid status
// or name is returned as an error and also reported by Build.
func (b *RegistryBuilder) RegisterResponseSpec(name string, config ResponseConfig) (ResponseSpecification, error) {
	s, err := NewResponseSpec(config.ExpectedStatus, config.LogStatus, config.LogBody)
	if err != nil {
		b.errs = append(b.errs, err)
		return s, err
	}
	if config.LogHeaders {
		s = s.WithHeaderLogging()
	}
	if err := b.checkName(name, hasResponse(b.response, name)); err != nil {
		return s, err
	}
	b.response[name] = s
	return s, nil
}

// checkName records and returns an error if name cannot be registered.
func (b *RegistryBuilder) checkName(name string, exists bool) error {
	var err *InvalidConfigError
	switch {
	case b.built:
		err = invalidConfig(name, "registry has already been built")
	case name == "":
		err = invalidConfig("name", "specification name cannot be empty")
	case exists:
		err = invalidConfig(name, "specification name is already registered")
	default:
		return nil
	}
	b.errs = append(b.errs, err)
	return err
}

// Build returns the finished Registry, or the first configuration error encountered while
// registering specifications.
func (b *RegistryBuilder) Build() (*Registry, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	if b.built {
		return nil, invalidConfig("registry", "Build was called more than once")
	}
	b.built = true
	r := &Registry{request: b.request, response: b.response}
	b.request, b.response = nil, nil
	return r, nil
}

func (r *Registry) RequestSpec(name string) (RequestSpecification, bool) {
	s, ok := r.request[name]
	return s, ok
}

func (r *Registry) ResponseSpec(name string) (ResponseSpecification, bool) {
	s, ok := r.response[name]
	return s, ok
}

// MustRequestSpec is like RequestSpec but panics if the name is unknown. It is meant for
// test code where a missing specification is a programming error.
func (r *Registry) MustRequestSpec(name string) RequestSpecification {
	s, ok := r.request[name]
	if !ok {
		panic(invalidConfig(name, "no request specification with this name"))
	}
	return s
}

// MustResponseSpec is like ResponseSpec but panics if the name is unknown.
func (r *Registry) MustResponseSpec(name string) ResponseSpecification {
	s, ok := r.response[name]
	if !ok {
		panic(invalidConfig(name, "no response specification with this name"))
	}
	return s
}

// Names returns the sorted names of all request and response specifications.
func (r *Registry) Names() (request []string, response []string) {
	for k := range r.request {
		request = append(request, k)
	}
	for k := range r.response {
		response = append(response, k)
	}
	sort.Strings(request)
	sort.Strings(response)
	return request, response
}

func hasRequest(m map[string]RequestSpecification, name string) bool {
	_, ok := m[name]
	return ok
}

func hasResponse(m map[string]ResponseSpecification, name string) bool {
	_, ok := m[name]
	return ok
}
