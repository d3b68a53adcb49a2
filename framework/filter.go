package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// RegexFilters selects tests the way "go test -run" does: each pattern is split on "/" and
// each part is matched against the corresponding element of the test path. A test whose path
// is shorter than a MustMatch pattern is run, since its subtests may match.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(id TestID) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.anyMatch(id, true)) &&
		!r.MustNotMatch.anyMatch(id, false)
}

type pathPattern struct {
	source string
	parts  []*regexp.Regexp
}

func (p pathPattern) match(id TestID, allowPartial bool) bool {
	if len(id.Path) < len(p.parts) && !allowPartial {
		return false
	}
	for i, rx := range p.parts {
		if i >= len(id.Path) {
			return true
		}
		if !rx.MatchString(id.Path[i]) {
			return false
		}
	}
	return true
}

type RegexList struct {
	patterns []pathPattern
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.source+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	p := pathPattern{source: value}
	for _, part := range strings.Split(value, "/") {
		rx, err := regexp.Compile(part)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		p.parts = append(p.parts, rx)
	}
	r.patterns = append(r.patterns, p)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

// AnyMatch reports whether any pattern matches the whole of the given test ID.
func (r RegexList) AnyMatch(id TestID) bool {
	return r.anyMatch(id, false)
}

func (r RegexList) anyMatch(id TestID, allowPartial bool) bool {
	for _, p := range r.patterns {
		if p.match(id, allowPartial) {
			return true
		}
	}
	return false
}

// PrintFilterDescription explains which tests will be excluded by the filters, if any.
func PrintFilterDescription(w io.Writer, filters RegexFilters) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Fprintln(w, "Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Fprintf(w, "  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Fprintf(w, "  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Fprintln(w)
	}
}
