package spec

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseSpecRejectsInvalidStatus(t *testing.T) {
	for _, status := range []int{-1, 0, 99, 600, 1000} {
		_, err := NewResponseSpec(status, true, true)
		require.Error(t, err, "status %d", status)
		var ice *InvalidConfigError
		assert.True(t, errors.As(err, &ice))
		assert.Equal(t, "expectedStatus", ice.Option)
	}
}

func TestResponseSpecAcceptsStatusRange(t *testing.T) {
	for _, status := range []int{100, 200, 201, 400, 404, 599} {
		s, err := NewResponseSpec(status, true, false)
		require.NoError(t, err)
		assert.Equal(t, status, s.ExpectedStatus())
		assert.True(t, s.LogStatus())
		assert.False(t, s.LogBody())
	}
}

func TestRequestSpecCopiesInputs(t *testing.T) {
	headers := map[string]string{"x-api-key": "abc"}
	filter := FilterFunc(func(req *http.Request, next Next) (*http.Response, error) { return next(req) })
	filters := []Filter{filter}
	s := NewRequestSpec(RequestConfig{BaseHeaders: headers, ContentType: ContentTypeJSON, Filters: filters})

	headers["x-api-key"] = "changed"
	headers["x-other"] = "added"
	filters[0] = nil

	assert.Equal(t, "abc", s.Headers().Get("x-api-key"))
	assert.Empty(t, s.Headers().Get("x-other"))
	require.Len(t, s.Filters(), 1)
	assert.NotNil(t, s.Filters()[0])
}

func TestRequestSpecAccessorsReturnCopies(t *testing.T) {
	s := NewRequestSpec(RequestConfig{BaseHeaders: map[string]string{"a": "1"}})
	h := s.Headers()
	h.Set("a", "2")
	h.Set("b", "3")
	assert.Equal(t, "1", s.Headers().Get("a"))
	assert.Empty(t, s.Headers().Get("b"))
}

func TestRequestSpecDerivationLeavesOriginalUntouched(t *testing.T) {
	base := NewRequestSpec(RequestConfig{BaseHeaders: map[string]string{"a": "1"}, LogURI: true})
	derived := base.WithHeader("b", "2").WithFilters(FilterFunc(func(req *http.Request, next Next) (*http.Response, error) {
		return next(req)
	}))

	assert.Empty(t, base.Headers().Get("b"))
	assert.Len(t, base.Filters(), 0)
	assert.Equal(t, "2", derived.Headers().Get("b"))
	assert.Equal(t, "1", derived.Headers().Get("a"))
	assert.Len(t, derived.Filters(), 1)
	assert.True(t, derived.LogURI())
}

func TestChainRunsFiltersInOrder(t *testing.T) {
	var calls []string
	mk := func(name string) Filter {
		return FilterFunc(func(req *http.Request, next Next) (*http.Response, error) {
			calls = append(calls, name+">")
			resp, err := next(req)
			calls = append(calls, "<"+name)
			return resp, err
		})
	}
	last := func(*http.Request) (*http.Response, error) {
		calls = append(calls, "transport")
		return &http.Response{StatusCode: 200}, nil
	}
	req, _ := http.NewRequest("GET", "http://example", nil)
	resp, err := Chain([]Filter{mk("a"), mk("b")}, last)(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, []string{"a>", "b>", "transport", "<b", "<a"}, calls)
}

func TestParseContentType(t *testing.T) {
	ct, err := ParseContentType("json")
	require.NoError(t, err)
	assert.Equal(t, ContentTypeJSON, ct)
	assert.Equal(t, "application/json", ct.HeaderValue())

	ct, err = ParseContentType("")
	require.NoError(t, err)
	assert.Equal(t, ContentTypeNone, ct)
	assert.Equal(t, "", ct.HeaderValue())

	_, err = ParseContentType("xml")
	assert.Error(t, err)
}

func TestRegistryReturnsSameSpecEveryTime(t *testing.T) {
	b := NewRegistryBuilder()
	_, err := b.RegisterResponseSpec("created", ResponseConfig{ExpectedStatus: 201, LogStatus: true, LogBody: true})
	require.NoError(t, err)
	r, err := b.Build()
	require.NoError(t, err)

	s1 := r.MustResponseSpec("created")
	s2 := r.MustResponseSpec("created")
	assert.Equal(t, 201, s1.ExpectedStatus())
	assert.Equal(t, s1, s2)
}

func TestRegistryRejectsDuplicateAndEmptyNames(t *testing.T) {
	b := NewRegistryBuilder()
	b.RegisterRequestSpec("default", RequestConfig{})
	b.RegisterRequestSpec("default", RequestConfig{})
	_, err := b.Build()
	assert.Error(t, err)

	b = NewRegistryBuilder()
	b.RegisterRequestSpec("", RequestConfig{})
	_, err = b.Build()
	assert.Error(t, err)
}

func TestRegisterResponseSpecReturnsNameErrors(t *testing.T) {
	b := NewRegistryBuilder()
	_, err := b.RegisterResponseSpec("ok", ResponseConfig{ExpectedStatus: 200})
	require.NoError(t, err)

	var ice *InvalidConfigError
	_, err = b.RegisterResponseSpec("ok", ResponseConfig{ExpectedStatus: 200})
	assert.True(t, errors.As(err, &ice))
	_, err = b.RegisterResponseSpec("", ResponseConfig{ExpectedStatus: 200})
	assert.True(t, errors.As(err, &ice))

	_, err = b.Build()
	assert.Error(t, err)

	b = NewRegistryBuilder()
	_, err = b.Build()
	require.NoError(t, err)
	_, err = b.RegisterResponseSpec("late", ResponseConfig{ExpectedStatus: 200})
	assert.True(t, errors.As(err, &ice))
}

func TestRegistryBuildFailsOnInvalidResponseSpec(t *testing.T) {
	b := NewRegistryBuilder()
	_, err := b.RegisterResponseSpec("bogus", ResponseConfig{ExpectedStatus: 42})
	require.Error(t, err)
	_, err = b.Build()
	var ice *InvalidConfigError
	assert.True(t, errors.As(err, &ice))
}

func TestRegistryCannotBeChangedAfterBuild(t *testing.T) {
	b := NewRegistryBuilder()
	b.RegisterRequestSpec("default", RequestConfig{LogURI: true})
	r, err := b.Build()
	require.NoError(t, err)

	b.RegisterRequestSpec("late", RequestConfig{})
	_, ok := r.RequestSpec("late")
	assert.False(t, ok)
	_, err = b.Build()
	assert.Error(t, err)

	reqNames, respNames := r.Names()
	assert.Equal(t, []string{"default"}, reqNames)
	assert.Empty(t, respNames)
}

func TestMustLookupsPanicOnUnknownNames(t *testing.T) {
	r, err := NewRegistryBuilder().Build()
	require.NoError(t, err)
	assert.Panics(t, func() { r.MustRequestSpec("nope") })
	assert.Panics(t, func() { r.MustResponseSpec("nope") })
}
