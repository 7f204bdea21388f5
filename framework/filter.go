package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// RegexFilters selects tests by matching their full slash-separated IDs.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(id TestID) bool {
	name := id.String()
	if r.MustNotMatch.AnyMatch(name) {
		return false
	}
	if !r.MustMatch.IsDefined() {
		return true
	}
	// A parent test has to run for any of its subtests to run, so a path that is a prefix of
	// something the pattern could match is let through.
	return r.MustMatch.AnyMatch(name) || r.MustMatch.anyMatchPrefix(name)
}

type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

// Patterns returns the source text of each pattern in the order it was added.
func (r RegexList) Patterns() []string {
	ps := make([]string, 0, len(r.patterns))
	for _, p := range r.patterns {
		ps = append(ps, p.String())
	}
	return ps
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func (r RegexList) anyMatchPrefix(s string) bool {
	for _, p := range r.patterns {
		literal, _ := p.LiteralPrefix()
		literal = strings.TrimPrefix(literal, "^")
		if literal != "" && strings.HasPrefix(literal, s+"/") {
			return true
		}
	}
	return false
}

func PrintFilterDescription(out io.Writer, filters RegexFilters) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Fprintln(out)
	}
}
