// Package framework contains the low-level implementation of test harness infrastructure
// that can be reused for different kinds of HTTP contract tests.
//
// The general model is:
//
// 1. The test harness talks to a remote HTTP service whose contract is being verified. The
// requests are described by the spec, binder, and executor packages; this package knows
// nothing about them.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results, outside of the Go test runner.
//
// 3. Debug output for each test is captured and only reported if the test logger asks for it.
//
// The domain-specific code that knows what is being tested is responsible for providing a
// domain-specific test API on top of the test context.
package framework
