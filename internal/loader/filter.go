package loader

import (
	"github.com/bmatcuk/doublestar/v4"
)

// matchesInclude returns true if name matches any include pattern.
// An empty pattern list includes everything.
func matchesInclude(name string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(name, patterns)
}

// matchesExclude returns true if name matches any exclude pattern.
// An empty pattern list excludes nothing.
func matchesExclude(name string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(name, patterns)
}

func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
