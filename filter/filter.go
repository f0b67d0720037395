package filter

import (
	"fmt"
	"strings"
)

// Filter decides whether a named middleware applies.
type Filter interface {
	Matches(middleware string) bool
}

// Func adapts a plain function to Filter.
type Func func(middleware string) bool

// Matches calls f.
func (f Func) Matches(middleware string) bool { return f(middleware) }

// Pattern matches middleware names against wildcard patterns; see MatchPattern.
type Pattern []string

// Named returns a Filter matching any of the given names or patterns.
func Named(patterns ...string) Pattern { return Pattern(patterns) }

// Matches reports whether any pattern matches middleware.
func (p Pattern) Matches(middleware string) bool { return MatchAny(p, middleware) }

// String renders the patterns for diagnostics.
func (p Pattern) String() string { return "named(" + strings.Join(p, ",") + ")" }

// Prefix returns a Filter matching names that start with prefix.
func Prefix(prefix string) Filter {
	return prefixFilter(prefix)
}

type prefixFilter string

func (p prefixFilter) Matches(middleware string) bool {
	return strings.HasPrefix(middleware, string(p))
}

func (p prefixFilter) String() string { return "prefix(" + string(p) + ")" }

// Describe renders a filter for logs and diagnostics. Filters implementing
// fmt.Stringer describe themselves; others are rendered by type.
func Describe(f Filter) string {
	if s, ok := f.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", f)
}

// Select returns the names that pass the filters, in input order.
// A nil inclusive sequence keeps every name; otherwise a name is kept when
// any inclusive filter matches. Any exclusive match removes a name.
func Select(names []string, inclusive, exclusive []Filter) []string {
	selected := make([]string, 0, len(names))
	for _, name := range names {
		if inclusive != nil && !anyMatch(inclusive, name) {
			continue
		}
		if anyMatch(exclusive, name) {
			continue
		}
		selected = append(selected, name)
	}
	return selected
}

func anyMatch(filters []Filter, name string) bool {
	for _, f := range filters {
		if f != nil && f.Matches(name) {
			return true
		}
	}
	return false
}
