package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/launchdarkly/http-contract-tests/config"
	"github.com/launchdarkly/http-contract-tests/executor"
	"github.com/launchdarkly/http-contract-tests/framework"
	"github.com/launchdarkly/http-contract-tests/mockservice"
	"github.com/launchdarkly/http-contract-tests/reqrestests"
	"github.com/launchdarkly/http-contract-tests/telemetry"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultConfigHint = config.DefaultFile + ", if present"
	serviceName       = "http-contract-tests"
)

func main() {
	os.Exit(run())
}

func run() int {
	var params commandParams
	if !params.Read(os.Args) {
		return 1
	}

	// .env is optional; it only supplies REQRES_ variables
	_ = godotenv.Load()

	cfg, err := config.Load(params.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		return 1
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	switch {
	case params.mock:
		server, err := mockservice.Start(params.port,
			mockservice.NewHandler(framework.LoggerWithPrefix(mainDebugLogger, "[mock] ")))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Mock service error: %s\n", err)
			return 1
		}
		defer server.Close()
		cfg.BaseURI = server.URL()
	case params.serviceURL != "":
		cfg.BaseURI = params.serviceURL
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid parameters: %s\n", err)
			return 1
		}
	}

	env := &reqrestests.Environment{}
	client := &http.Client{}
	if params.trace {
		shutdown, err := telemetry.InitTracer(serviceName, os.Stderr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Tracing error: %s\n", err)
			return 1
		}
		defer func() {
			_ = shutdown(context.Background())
		}()
		env.Tracer = telemetry.Tracer()
		client.Transport = otelhttp.NewTransport(http.DefaultTransport)
	}

	env.Registry, err = reqrestests.NewRegistry(reqrestests.SpecOptions{
		Headers:      cfg.Headers,
		LogRequests:  cfg.Log.Requests,
		LogResponses: cfg.Log.Responses,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Specification error: %s\n", err)
		return 1
	}
	env.Executor, err = executor.New(executor.Config{
		BaseURI:  cfg.BaseURI,
		BasePath: cfg.BasePath,
		Client:   client,
		Logger:   mainDebugLogger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid parameters: %s\n", err)
		return 1
	}

	fmt.Printf("Testing service at %s\n\n", env.Executor.BaseURL())
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := reqrestests.RunTestSuite(env, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Printf("\nTo run only the failed tests:\n  %s\n", params.rerunCommand(os.Args[0], results))
		return 1
	}
	return 0
}
