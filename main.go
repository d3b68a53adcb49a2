package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/IATI/website-tests/config"
	"github.com/IATI/website-tests/framework"
	"github.com/IATI/website-tests/iatitests"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(2)
	}

	cfg, err := config.Load(params.configFlags())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err)
		os.Exit(1)
	}

	suites := iatitests.AllSuites()
	if params.list {
		for _, id := range iatitests.ListTests(suites, cfg.Sites) {
			if params.filters.AsFilter(id) {
				fmt.Println(id)
			}
		}
		return
	}

	loggers := ldlog.Loggers{}
	loggers.SetBaseLogger(log.New(os.Stderr, "", log.LstdFlags))
	loggers.SetPrefix("[loader]")
	if params.debugAll {
		loggers.SetMinLevel(ldlog.Debug)
	} else {
		loggers.SetMinLevel(ldlog.Warn)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Checking IATI websites (registry %s, dashboard %s, standard %s)\n",
		cfg.Sites.Registry, cfg.Sites.Dashboard, cfg.Sites.Standard)
	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	runParams := iatitests.NewParams(cfg, loggers)
	runParams.Context = ctx
	results := iatitests.RunTestSuite(runParams, suites, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(os.Stdout, results, cfg.Strict)
	if !results.OK(cfg.Strict) {
		failures := results.Failures
		if cfg.Strict {
			failures = append(failures, results.Quarantined...)
		}
		if len(failures) > 0 {
			fmt.Println()
			fmt.Println("To run the failed tests again:")
			fmt.Printf("  %s\n", params.rerunCommand(os.Args[0], failures))
		}
		os.Exit(1)
	}
}
