package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/launchdarkly/http-contract-tests/framework"
	"github.com/launchdarkly/http-contract-tests/steps"

	"github.com/fatih/color"
)

var (
	failedLabel  = color.New(color.FgRed).Sprint("FAILED")
	skippedLabel = color.New(color.FgYellow).Sprint("SKIPPED")
	stepLabel    = color.New(color.FgCyan).Sprint("step")
)

// ConsoleTestLogger prints test progress. Out defaults to standard output.
type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
	Out                  io.Writer
}

func (c *ConsoleTestLogger) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Fprintf(c.out(), "[%s]\n", id)
}

// TestError prints a failure. When it came from a step, the step path goes on its own line
// followed by the underlying cause.
func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	var se *steps.StepError
	if errors.As(err, &se) {
		fmt.Fprintf(c.out(), "  %s: %s\n", stepLabel, strings.Join(se.Path, " / "))
		err = se.Err
	}
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.out(), "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		fmt.Fprintf(c.out(), "  %s: %s\n", failedLabel, id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.out(), "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Fprintf(c.out(), "  %s: %s\n", skippedLabel, id)
	} else {
		fmt.Fprintf(c.out(), "  %s: %s (%s)\n", skippedLabel, id, reason)
	}
}
