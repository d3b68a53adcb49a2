package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the equivalent of *testing.T for tests that run inside the harness rather than
// under "go test". It implements require.TestingT, so the assert and require packages can be
// used with it directly.
type Context struct {
	env              *environment
	id               TestID
	debugLogger      CapturingLogger
	failed           bool
	quarantined      bool
	quarantineReason string
	errors           []error
}

// Run executes the root action and returns the accumulated results for every test started
// beneath it.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.testLogger.TestError(c.id, addError)
			}
		}
		if len(c.id.Path) == 0 {
			return // the root context is not a test
		}
		result := TestResult{
			TestID:           c.id,
			Errors:           c.errors,
			Quarantined:      c.quarantined,
			QuarantineReason: c.quarantineReason,
		}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			if c.quarantined {
				c.env.results.Quarantined = append(c.env.results.Quarantined, result)
			} else {
				c.env.results.Failures = append(c.env.results.Failures, result)
			}
		}
	}()

	action(c)
}

// Run starts a subtest. A subtest that is excluded by the filter is reported as skipped.
func (c *Context) Run(name string, action func(*Context)) {
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.results.Tests = append(c.env.results.Tests, TestResult{TestID: id, Skipped: true})
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c1 := &Context{
		id:          id,
		env:         c.env,
		quarantined: c.quarantined,
	}
	if c1.quarantined {
		c1.quarantineReason = c.quarantineReason
	}
	c1.run(action)
	c.env.testLogger.TestFinished(id, TestStatus{
		Failed:      c1.failed,
		Quarantined: c1.quarantined,
	}, c1.debugLogger.Output())
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, reformatError(err))
}

func (c *Context) FailNow() {
	panic(c)
}

// Quarantine marks the test as known to be unreliable. The test still runs, but a failure is
// reported separately and does not count against the run unless strict mode is requested.
// Subtests started after this call inherit the marker.
func (c *Context) Quarantine(reason string) {
	c.quarantined = true
	c.quarantineReason = reason
	c.Debug("test is quarantined: %s", reason)
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

// assert/require produce multi-line messages with a leading tab-indented "Error Trace" block
// that is meaningless outside of "go test", so only the useful lines are kept.
func reformatError(err error) error {
	var lines []string
	skipping := false
	for _, line := range strings.Split(err.Error(), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "Error Trace:"):
			skipping = true
			continue
		case strings.HasPrefix(trimmed, "Error:"), strings.HasPrefix(trimmed, "Messages:"), strings.HasPrefix(trimmed, "Test:"):
			skipping = false
		}
		if !skipping && trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		return err
	}
	return errors.New(strings.Join(lines, "\n"))
}
