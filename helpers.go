package toolchain

import (
	"fmt"
	"regexp"
	"strings"
)

// MatchesPattern checks if a name matches any of the given regex patterns.
//
// This is a helper for classification logic that keys off executable or
// file names (compiler vendor detection, dependency probing).
//
// Returns true if the name matches any pattern, false otherwise.
// An invalid regex pattern is silently skipped.
//
// Example:
//
//	// Check for an MSVC-class driver
//	if MatchesPattern(base, `^cl$`, `clang-cl`) {
//	    // Handle MSVC syntax
//	}
//
// This function is thread-safe and can be called concurrently.
func MatchesPattern(name string, patterns ...string) bool {
	for _, pattern := range patterns {
		if matched, _ := regexp.MatchString(pattern, name); matched {
			return true
		}
	}
	return false
}

// DependencyError creates a standardized fatal error for a missing
// external dependency.
//
// The error wraps ErrDependencyMissing so callers can test for the
// failure class with errors.Is, and lists the searched directories so
// the diagnostic is actionable without re-running under a debugger.
//
// Format:
//
//	required dependency not found: torch (searched: /opt/torch, /usr/local)
//
// This function is thread-safe and can be called concurrently.
func DependencyError(name string, searched []string) error {
	if len(searched) == 0 {
		return fmt.Errorf("%w: %s (no search directories configured)", ErrDependencyMissing, name)
	}
	return fmt.Errorf("%w: %s (searched: %s)", ErrDependencyMissing, name, strings.Join(searched, ", "))
}
