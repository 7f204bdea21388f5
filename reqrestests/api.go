package reqrestests

import (
	"context"
	"fmt"
	"strings"

	"github.com/launchdarkly/http-contract-tests/binder"
	"github.com/launchdarkly/http-contract-tests/executor"
	"github.com/launchdarkly/http-contract-tests/framework"
	"github.com/launchdarkly/http-contract-tests/spec"
	"github.com/launchdarkly/http-contract-tests/steps"
	"github.com/launchdarkly/http-contract-tests/telemetry"

	"go.opentelemetry.io/otel/trace"
)

// Environment is what the test suite needs to know about the service under test.
type Environment struct {
	Executor *executor.Executor
	Registry *spec.Registry
	// Tracer, if set, receives a span for every step.
	Tracer trace.Tracer
}

// T represents a test or subtest in the reqres test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner; those features are provided by the framework package. To make
// test assertions, pass the *T to the assert and require packages as if it were a *testing.T.
//
// Every T has its own step recorder. Steps are narrated in the test's debug output, and the
// requests made during a step are attached to it.
type T struct {
	context  *framework.Context
	env      *Environment
	recorder *steps.Recorder
	executor *executor.Executor
	ctx      context.Context
}

func newTestScope(c *framework.Context, env *Environment) *T {
	listener := steps.LoggerListener(c.DebugLogger())
	if env.Tracer != nil {
		listener = steps.MultiListener(listener, telemetry.StepListener(context.Background(), env.Tracer))
	}
	recorder := steps.NewRecorder(steps.Config{
		Listener:    listener,
		PassThrough: framework.IsAbort,
	})
	return &T{
		context:  c,
		env:      env,
		recorder: recorder,
		executor: env.Executor.WithLogger(c.DebugLogger()),
		ctx:      steps.WithRecorder(context.Background(), recorder),
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Step runs an action as a named step. If it fails, the test fails and exits immediately.
func (t *T) Step(name string, action func() error) {
	t.failOn(t.recorder.Run(name, action))
}

// StepValue is like T.Step for an action that produces a value.
func StepValue[V any](t *T, name string, action func() (V, error)) V {
	v, err := steps.Do(t.recorder, name, action)
	t.failOn(err)
	return v
}

// failOn ends the test if err is non-nil. The error is reported as is so the step path survives.
func (t *T) failOn(err error) {
	if err != nil {
		t.context.Fail(err)
		t.FailNow()
	}
}

// Verify runs a "Verify response" step. The checks function makes assertions against the
// *Checks it is given; the step fails if any of them did.
func (t *T) Verify(checks func(c *Checks)) {
	t.Step("Verify response", func() error {
		c := &Checks{}
		checks(c)
		return c.Err()
	})
}

// Call sends a request built from the default request specification and checks the response
// against the named response specification.
func (t *T) Call(method, path string, body binder.Serializable, responseSpec string) (*executor.RawResponse, error) {
	return t.executor.Call(
		t.ctx,
		t.env.Registry.MustRequestSpec(RequestDefault),
		method,
		path,
		body,
		t.env.Registry.MustResponseSpec(responseSpec),
	)
}

// CallAndExtract is T.Call followed by binding the response body to a model.
func CallAndExtract[M any, PM interface {
	*M
	binder.Deserializable
}](t *T, method, path string, body binder.Serializable, responseSpec string) (M, error) {
	resp, err := t.Call(method, path, body, responseSpec)
	if err != nil {
		var zero M
		return zero, err
	}
	return executor.Extract[M, PM](resp)
}

// Checks collects assertion failures within a verification step. It satisfies the TestingT
// interface of the assert package.
type Checks struct {
	failures []string
}

func (c *Checks) Errorf(format string, args ...interface{}) {
	c.failures = append(c.failures, strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Err returns nil if no check failed, or a *VerificationError.
func (c *Checks) Err() error {
	if len(c.failures) == 0 {
		return nil
	}
	return &VerificationError{Failures: c.failures}
}

// VerificationError is the outcome of a verification step with failed checks.
type VerificationError struct {
	Failures []string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("%d check(s) failed:\n%s", len(e.Failures), strings.Join(e.Failures, "\n"))
}
