package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/launchdarkly/http-contract-tests/framework"
	"github.com/launchdarkly/http-contract-tests/steps"

	"github.com/stretchr/testify/assert"
)

func TestConsoleTestLoggerPrintsStepPath(t *testing.T) {
	var buf bytes.Buffer
	logger := &ConsoleTestLogger{Out: &buf}
	id := framework.TestID{}.Plus("users").Plus("create user")

	logger.TestError(id, &steps.StepError{
		Path: []string{"Create user", "Send request"},
		Err:  errors.New("expected HTTP status 201 but got 500\nbody: {}"),
	})

	out := buf.String()
	assert.Contains(t, out, "Create user / Send request\n")
	assert.Contains(t, out, "  expected HTTP status 201 but got 500\n")
	assert.Contains(t, out, "  body: {}\n")
	assert.NotContains(t, out, `step "Create user`)
}

func TestConsoleTestLoggerPrintsPlainErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := &ConsoleTestLogger{Out: &buf}

	logger.TestError(framework.TestID{}.Plus("a"), errors.New("first\nsecond"))

	assert.Equal(t, "  first\n  second\n", buf.String())
}

func TestConsoleTestLoggerDumpsDebugOutputOnFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := &ConsoleTestLogger{Out: &buf, DebugOutputOnFailure: true}
	var captured framework.CapturingLogger
	captured.Printf("sent request")

	logger.TestFinished(framework.TestID{}.Plus("a"), true, captured.Output())

	assert.Contains(t, buf.String(), "a\n")
	assert.Contains(t, buf.String(), "    DEBUG ")
	assert.Contains(t, buf.String(), "sent request")

	buf.Reset()
	logger.TestFinished(framework.TestID{}.Plus("b"), false, captured.Output())
	assert.Empty(t, buf.String())
}
