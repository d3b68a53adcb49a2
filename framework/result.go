package framework

import (
	"strings"
)

type Results struct {
	Tests       []TestResult
	Failures    []TestResult
	Quarantined []TestResult
}

type TestResult struct {
	TestID           TestID
	Errors           []error
	Skipped          bool
	Quarantined      bool
	QuarantineReason string
}

// OK reports whether the run should be considered successful. Failures of quarantined tests
// only count when strict is true.
func (r Results) OK(strict bool) bool {
	if strict && len(r.Quarantined) > 0 {
		return false
	}
	return len(r.Failures) == 0
}

// Counts returns the number of tests that passed, failed, failed while quarantined, and were
// skipped. Tests that only group subtests are counted like any other test.
func (r Results) Counts() (passed, failed, quarantined, skipped int) {
	for _, t := range r.Tests {
		if t.Skipped {
			skipped++
		}
	}
	failed = len(r.Failures)
	quarantined = len(r.Quarantined)
	passed = len(r.Tests) - skipped - failed - quarantined
	return
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}
