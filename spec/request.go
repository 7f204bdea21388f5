package spec

import "net/http"

// RequestConfig is the set of recognized options for building a RequestSpecification.
type RequestConfig struct {
	BaseHeaders map[string]string
	ContentType ContentType
	LogURI      bool
	LogMethod   bool
	LogHeaders  bool
	LogBody     bool
	Filters     []Filter
}

// RequestSpecification is an immutable bundle of request defaults. All of its fields are
// copied on construction and on every accessor call, so a value can be shared by any number
// of tests, including concurrently running ones.
type RequestSpecification struct {
	headers     http.Header
	contentType ContentType
	logURI      bool
	logMethod   bool
	logHeaders  bool
	logBody     bool
	filters     []Filter
}

// NewRequestSpec builds a RequestSpecification. It has no side effects.
func NewRequestSpec(config RequestConfig) RequestSpecification {
	headers := make(http.Header, len(config.BaseHeaders))
	for k, v := range config.BaseHeaders {
		headers.Set(k, v)
	}
	return RequestSpecification{
		headers:     headers,
		contentType: config.ContentType,
		logURI:      config.LogURI,
		logMethod:   config.LogMethod,
		logHeaders:  config.LogHeaders,
		logBody:     config.LogBody,
		filters:     append([]Filter(nil), config.Filters...),
	}
}

// Headers returns a copy of the base headers.
func (s RequestSpecification) Headers() http.Header {
	return s.headers.Clone()
}

func (s RequestSpecification) ContentType() ContentType { return s.contentType }

func (s RequestSpecification) LogURI() bool     { return s.logURI }
func (s RequestSpecification) LogMethod() bool  { return s.logMethod }
func (s RequestSpecification) LogHeaders() bool { return s.logHeaders }
func (s RequestSpecification) LogBody() bool    { return s.logBody }

// Filters returns a copy of the filter hooks, in the order they will be applied.
func (s RequestSpecification) Filters() []Filter {
	return append([]Filter(nil), s.filters...)
}

// WithHeader returns a new specification with one header added or replaced.
func (s RequestSpecification) WithHeader(name, value string) RequestSpecification {
	ret := s
	ret.headers = s.headers.Clone()
	if ret.headers == nil {
		ret.headers = make(http.Header)
	}
	ret.headers.Set(name, value)
	return ret
}

// WithFilters returns a new specification with more filters appended after the existing ones.
func (s RequestSpecification) WithFilters(filters ...Filter) RequestSpecification {
	ret := s
	ret.filters = append(append([]Filter(nil), s.filters...), filters...)
	return ret
}
