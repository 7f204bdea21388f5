package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/launchdarkly/http-contract-tests/framework"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	configPath string
	serviceURL string
	port       int
	filters    framework.RegexFilters
	debug      bool
	debugAll   bool
	mock       bool
	trace      bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.configPath, "config", "", "YAML configuration file (default "+defaultConfigHint+")")
	fs.StringVar(&c.serviceURL, "url", "", "base URI of the service under test, overriding the configuration")
	fs.IntVar(&c.port, "port", 0, "port for the mock service to listen on (default: any free port)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.BoolVar(&c.mock, "mock", false, "start the built-in mock service and test against it")
	fs.BoolVar(&c.trace, "trace", false, "write an OpenTelemetry span for every step to stderr")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.mock && c.serviceURL != "" {
		fmt.Fprintln(os.Stderr, "-url and -mock cannot be used together")
		fs.Usage()
		return false
	}
	return true
}

// rerunCommand builds a command line that runs only the failed tests again.
func (c *commandParams) rerunCommand(program string, results framework.Results) string {
	var b commandBuilder
	b.add(program)
	if c.configPath != "" {
		b.add("-config", c.configPath)
	}
	if c.serviceURL != "" {
		b.add("-url", c.serviceURL)
	}
	if c.mock {
		b.add("-mock")
		if c.port != 0 {
			b.add("-port", strconv.Itoa(c.port))
		}
	}
	for _, f := range results.Failures {
		b.add("-run", regexp.QuoteMeta(f.TestID.String())+"$")
	}
	for _, p := range c.filters.MustNotMatch.Patterns() {
		b.add("-skip", p)
	}
	if c.debugAll {
		b.add("-debug-all")
	} else if c.debug {
		b.add("-debug")
	}
	if c.trace {
		b.add("-trace")
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
