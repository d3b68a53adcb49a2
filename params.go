package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/IATI/website-tests/config"
	"github.com/IATI/website-tests/framework"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	configPath string
	timeout    time.Duration
	filters    framework.RegexFilters
	strict     bool
	debug      bool
	debugAll   bool
	list       bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.StringVar(&c.configPath, "config", "", "YAML file overriding the site URLs and other settings")
	fs.DurationVar(&c.timeout, "timeout", 0, fmt.Sprintf("timeout for each request (default %s)", config.DefaultTimeout))
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.strict, "strict", false, "count failures of quarantined tests as failures")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests and requests")
	fs.BoolVar(&c.list, "list", false, "list the tests that would run, without running them")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return false
	}
	return true
}

func (c *commandParams) configFlags() config.Flags {
	return config.Flags{
		ConfigPath: c.configPath,
		Timeout:    c.timeout,
		Strict:     c.strict,
	}
}

// rerunCommand builds a command line that runs only the given tests, with the other
// parameters of this run.
func (c *commandParams) rerunCommand(program string, failures []framework.TestResult) string {
	var cmd commandBuilder
	cmd.add(program)
	if c.configPath != "" {
		cmd.add("-config", c.configPath)
	}
	if c.timeout > 0 {
		cmd.add("-timeout", c.timeout.String())
	}
	if c.strict {
		cmd.add("-strict")
	}
	for _, f := range failures {
		cmd.add("-run", exactPattern(f.TestID))
	}
	if c.debugAll {
		cmd.add("-debug-all")
	} else {
		cmd.add("-debug")
	}
	return cmd.String()
}

// exactPattern is a -run pattern that matches only the given test and its subtests.
func exactPattern(id framework.TestID) string {
	parts := make([]string, 0, len(id.Path))
	for _, p := range id.Path {
		parts = append(parts, "^"+regexp.QuoteMeta(p)+"$")
	}
	return strings.Join(parts, "/")
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
