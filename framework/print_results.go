package framework

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// PrintResults writes a summary of a test run, followed by the IDs of any failed or
// quarantined tests.
func PrintResults(w io.Writer, results Results, strict bool) {
	failure := color.New(color.FgRed).SprintFunc()
	warning := color.New(color.FgYellow).SprintFunc()
	success := color.New(color.FgGreen).SprintFunc()

	passed, failed, quarantined, skipped := results.Counts()
	fmt.Fprintf(w, "Tests: %d passed, %d failed, %d quarantined failures, %d skipped\n",
		passed, failed, quarantined, skipped)

	if len(results.Quarantined) > 0 {
		label := "Known-unreliable tests that failed (not counted as failures):"
		if strict {
			label = "Known-unreliable tests that failed (counted as failures in strict mode):"
		}
		fmt.Fprintln(w, warning(label))
		for _, t := range results.Quarantined {
			if t.QuarantineReason == "" {
				fmt.Fprintf(w, "  %s\n", t.TestID)
			} else {
				fmt.Fprintf(w, "  %s (%s)\n", t.TestID, t.QuarantineReason)
			}
		}
	}

	if len(results.Failures) > 0 {
		fmt.Fprintln(w, failure("Failed tests:"))
		for _, t := range results.Failures {
			fmt.Fprintf(w, "  %s\n", t.TestID)
		}
	}

	if results.OK(strict) {
		fmt.Fprintln(w, success("All tests passed"))
	} else {
		fmt.Fprintln(w, failure("Test run failed"))
	}
}
