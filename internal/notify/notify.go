// Package notify shows user-facing notifications through macOS Notification
// Center.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oakwood-commons/menusheet/internal/osascript"
)

// DefaultTimeout bounds a single notification call.
const DefaultTimeout = 10 * time.Second

// DefaultTitle is used when no title is configured.
const DefaultTitle = "menusheet"

// Notifier delivers one message to the user.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// OSAScript posts notifications with `display notification`.
type OSAScript struct {
	Runner  osascript.Runner
	Title   string
	Timeout time.Duration
}

// NewOSAScript returns a notifier that runs through runner.
func NewOSAScript(runner osascript.Runner, title string, timeout time.Duration) *OSAScript {
	if title == "" {
		title = DefaultTitle
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OSAScript{Runner: runner, Title: title, Timeout: timeout}
}

// Script builds the AppleScript statement for message and title.
func Script(message, title string) string {
	return fmt.Sprintf("display notification %s with title %s", osascript.Quote(message), osascript.Quote(title))
}

// Notify posts message. A non-zero exit of the interpreter is an error.
func (n *OSAScript) Notify(ctx context.Context, message string) error {
	if n == nil || n.Runner == nil {
		return errors.New("notify: no script runner configured")
	}
	ctx, cancel := context.WithTimeout(ctx, n.Timeout)
	defer cancel()

	res, err := n.Runner.Run(ctx, Script(message, n.Title))
	if err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	if !res.OK() {
		return fmt.Errorf("notify: osascript exit %d: %s", res.ExitCode, res.Diagnostic())
	}
	return nil
}

// Discard drops every message. Used with --no-notify.
type Discard struct{}

// Notify implements Notifier.
func (Discard) Notify(context.Context, string) error { return nil }

// Func adapts a function to Notifier.
type Func func(ctx context.Context, message string) error

// Notify implements Notifier.
func (f Func) Notify(ctx context.Context, message string) error { return f(ctx, message) }
