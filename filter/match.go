package filter

import "strings"

// MatchPattern checks if a middleware pattern matches a middleware name.
// Supports "group:name" format with wildcards:
//
//   - "*:*" or "*"           matches everything
//   - "observability:*"      matches "observability:tracing", "observability:metrics"
//   - "*:retry"              matches "resilience:retry", "custom:retry"
//   - "resilience:retry"     matches only "resilience:retry"
//
// Names without ":" are compared as plain strings with wildcard support.
func MatchPattern(pattern, name string) bool {
	if pattern == name || pattern == "*" || pattern == "*:*" {
		return true
	}

	patParts := strings.SplitN(pattern, ":", 2)
	nameParts := strings.SplitN(name, ":", 2)

	if len(patParts) != len(nameParts) || len(patParts) == 1 {
		return matchWildcard(pattern, name)
	}

	return matchWildcard(patParts[0], nameParts[0]) && matchWildcard(patParts[1], nameParts[1])
}

// MatchAny returns true if any of the patterns match the name.
func MatchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if MatchPattern(p, name) {
			return true
		}
	}
	return false
}

// matchWildcard compares two strings where "*" matches anything.
func matchWildcard(pattern, value string) bool {
	return pattern == "*" || pattern == value
}
