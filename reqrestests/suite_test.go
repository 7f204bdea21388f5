package reqrestests

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/launchdarkly/http-contract-tests/executor"
	"github.com/launchdarkly/http-contract-tests/framework"
	"github.com/launchdarkly/http-contract-tests/mockservice"
	"github.com/launchdarkly/http-contract-tests/steps"
	"github.com/launchdarkly/http-contract-tests/testutil"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var allTests = []string{
	"users",
	"users/create user",
	"users/user not found",
	"users/update user",
	"registration",
	"registration/register user",
	"registration/missing password",
	"registration/missing email",
}

// goTestLogger reports the progress of a suite run through a *testing.T.
type goTestLogger struct {
	t *testing.T
}

func (l goTestLogger) TestStarted(id framework.TestID) {}

func (l goTestLogger) TestError(id framework.TestID, err error) {
	l.t.Logf("[%s] %s", id, err)
}

func (l goTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		var sb strings.Builder
		debugOutput.Dump(&sb, "    ")
		l.t.Logf("[%s] FAILED\n%s", id, sb.String())
	}
}

func (l goTestLogger) TestSkipped(id framework.TestID, reason string) {}

func newEnvironment(t *testing.T, baseURI string, client *http.Client) *Environment {
	registry, err := NewRegistry(SpecOptions{
		Headers:      map[string]string{"x-api-key": "reqres-free-v1"},
		LogRequests:  true,
		LogResponses: true,
	})
	require.NoError(t, err)
	e, err := executor.New(executor.Config{BaseURI: baseURI, BasePath: "/api", Client: client})
	require.NoError(t, err)
	return &Environment{Executor: e, Registry: registry}
}

func testIDs(results framework.Results) []string {
	var ids []string
	for _, r := range results.Tests {
		ids = append(ids, r.TestID.String())
	}
	return ids
}

func TestSuitePassesAgainstMockService(t *testing.T) {
	httphelpers.WithServer(mockservice.NewHandler(nil), func(server *httptest.Server) {
		env := newEnvironment(t, server.URL, nil)
		results := RunTestSuite(env, nil, goTestLogger{t})

		assert.True(t, results.OK())
		assert.ElementsMatch(t, allTests, testIDs(results))
	})
}

func TestSuiteReplaysRecordedService(t *testing.T) {
	r, cleanup := testutil.NewVCRRecorder(t, "reqres")
	defer cleanup()

	env := newEnvironment(t, "https://reqres.in", testutil.VCRHTTPClient(r))
	results := RunTestSuite(env, nil, goTestLogger{t})

	assert.True(t, results.OK())
	assert.ElementsMatch(t, allTests, testIDs(results))
}

func TestFilterSelectsTests(t *testing.T) {
	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set("registration/missing"))

	env := newEnvironment(t, "http://service.example", httphelpers.ClientFromHandler(mockservice.NewHandler(nil)))
	results := RunTestSuite(env, filters.AsFilter, goTestLogger{t})

	assert.True(t, results.OK())
	var ran []string
	for _, r := range results.Tests {
		if !r.Skipped {
			ran = append(ran, r.TestID.String())
		}
	}
	assert.ElementsMatch(t, []string{"registration", "registration/missing password", "registration/missing email"}, ran)
}

func TestStatusMismatchFailsTheStep(t *testing.T) {
	handler := httphelpers.HandlerWithResponse(500, nil, []byte(`{"error":"boom"}`))
	env := newEnvironment(t, "http://service.example", httphelpers.ClientFromHandler(handler))

	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set("users/create user"))
	results := RunTestSuite(env, filters.AsFilter, framework.TestLogger(nil))

	require.Len(t, results.Failures, 1)
	failure := results.Failures[0]
	assert.Equal(t, "users/create user", failure.TestID.String())
	require.NotEmpty(t, failure.Errors)
	message := failure.Errors[0].Error()
	assert.Contains(t, message, `step "Create user"`)
	assert.Contains(t, message, "expected HTTP status 201 but got 500")

	var se *steps.StepError
	require.True(t, errors.As(failure.Errors[0], &se))
	assert.Equal(t, []string{"Create user"}, se.Path)
}

func TestFailedCheckFailsVerificationStep(t *testing.T) {
	handler := httphelpers.HandlerWithResponse(201, nil, []byte(`{"name":"Someone else","job":"QA","id":"1","createdAt":"x"}`))
	env := newEnvironment(t, "http://service.example", httphelpers.ClientFromHandler(handler))

	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set("users/create user"))
	results := RunTestSuite(env, filters.AsFilter, nil)

	require.Len(t, results.Failures, 1)
	message := results.Failures[0].Errors[0].Error()
	assert.Contains(t, message, `step "Verify response"`)
	assert.Contains(t, message, "1 check(s) failed")
}

func TestStepsAreExportedAsSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	env := newEnvironment(t, "http://service.example", httphelpers.ClientFromHandler(mockservice.NewHandler(nil)))
	env.Tracer = tp.Tracer("test")

	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set("users/update user"))
	results := RunTestSuite(env, filters.AsFilter, nil)
	require.True(t, results.OK())

	var names []string
	for _, s := range sr.Ended() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"Update user", "Verify response"}, names)

	events := sr.Ended()[0].Events()
	require.Len(t, events, 2)
	assert.Equal(t, "attachment", events[0].Name)
}

func TestSpecificationsAreRegistered(t *testing.T) {
	registry, err := NewRegistry(SpecOptions{})
	require.NoError(t, err)

	request, response := registry.Names()
	assert.Equal(t, []string{RequestDefault}, request)
	assert.Equal(t, []string{ResponseBadRequest, ResponseCreated, ResponseNotFound, ResponseOK}, response)
	assert.Equal(t, 404, registry.MustResponseSpec(ResponseNotFound).ExpectedStatus())
	assert.Len(t, registry.MustRequestSpec(RequestDefault).Filters(), 2)
}
