package menu

import (
	"errors"
	"fmt"
	"strings"
)

// ErrExtractionFailed is the root of every extraction failure.
var ErrExtractionFailed = errors.New("menu extraction failed")

// Specific failures. Each wraps ErrExtractionFailed.
var (
	ErrTimeout             = fmt.Errorf("%w: timed out", ErrExtractionFailed)
	ErrAccessibilityDenied = fmt.Errorf("%w: accessibility access not granted", ErrExtractionFailed)
	ErrMenuBarNotFound     = fmt.Errorf("%w: menu bar not found", ErrExtractionFailed)
	ErrEmptyOutput         = fmt.Errorf("%w: empty script output", ErrExtractionFailed)
)

// ScriptError describes a failed walker invocation.
type ScriptError struct {
	// Kind is one of the sentinel errors of this package.
	Kind       error
	ExitCode   int
	Diagnostic string
}

func (e *ScriptError) Error() string {
	if e.Diagnostic == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s (exit %d): %s", e.Kind, e.ExitCode, e.Diagnostic)
}

func (e *ScriptError) Unwrap() error {
	return e.Kind
}

// Substrings of osascript diagnostics. macOS reports a missing accessibility
// grant as "... is not allowed assistive access. (-1719)" or with -25211.
var (
	accessDeniedMarkers = []string{"assistive access", "(-1719)", "(-25211)"}
	menuBarMarkers      = []string{"menu bar"}
)

// Classify maps the diagnostic text of a failed script run to a failure kind.
// Matching is by substring, case-insensitive; accessibility is checked first
// since its message may also mention the menu bar.
func Classify(diagnostic string) error {
	lower := strings.ToLower(diagnostic)
	for _, m := range accessDeniedMarkers {
		if strings.Contains(lower, m) {
			return ErrAccessibilityDenied
		}
	}
	for _, m := range menuBarMarkers {
		if strings.Contains(lower, m) {
			return ErrMenuBarNotFound
		}
	}
	return ErrExtractionFailed
}
