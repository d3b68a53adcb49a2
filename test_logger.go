package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/IATI/website-tests/framework"

	"github.com/fatih/color"
)

// ConsoleTestLogger reports each test to standard output as it runs.
type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

var (
	failedLabel      = color.New(color.FgRed, color.Bold).SprintFunc()
	quarantinedLabel = color.New(color.FgYellow).SprintFunc()
	skippedLabel     = color.New(color.Faint).SprintFunc()
)

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Printf("[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Printf("  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, status framework.TestStatus, debugOutput framework.CapturedOutput) {
	switch {
	case status.Failed && status.Quarantined:
		fmt.Printf("  %s %s\n", quarantinedLabel("QUARANTINED:"), id)
	case status.Failed:
		fmt.Printf("  %s %s\n", failedLabel("FAILED:"), id)
	}
	if len(debugOutput) > 0 &&
		((status.Failed && c.DebugOutputOnFailure) || (!status.Failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(os.Stdout, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Printf("  %s %s\n", skippedLabel("SKIPPED:"), id)
	} else {
		fmt.Printf("  %s %s (%s)\n", skippedLabel("SKIPPED:"), id, reason)
	}
}
