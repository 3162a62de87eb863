package menu

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oakwood-commons/menusheet/internal/osascript"
	"github.com/oakwood-commons/menusheet/pkg/logger"
)

// Default bounds for the two walker invocations.
const (
	DefaultFrontmostTimeout = 5 * time.Second
	DefaultMenuTimeout      = 60 * time.Second
)

//go:embed scripts/walk_menus.applescript
var walkMenusScript string

//go:embed scripts/frontmost.applescript
var frontmostScript string

// WalkScript returns the embedded AppleScript source that lists menu items.
func WalkScript() string {
	return walkMenusScript
}

// Walker lists the menu items of the frontmost application by running the
// embedded walker script through an osascript.Runner.
type Walker struct {
	Runner           osascript.Runner
	FrontmostTimeout time.Duration
	MenuTimeout      time.Duration
}

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// WithFrontmostTimeout bounds the frontmost application lookup.
func WithFrontmostTimeout(d time.Duration) WalkerOption {
	return func(w *Walker) {
		if d > 0 {
			w.FrontmostTimeout = d
		}
	}
}

// WithMenuTimeout bounds the menu traversal.
func WithMenuTimeout(d time.Duration) WalkerOption {
	return func(w *Walker) {
		if d > 0 {
			w.MenuTimeout = d
		}
	}
}

// NewWalker returns a Walker using runner with default timeouts.
func NewWalker(runner osascript.Runner, opts ...WalkerOption) *Walker {
	w := &Walker{
		Runner:           runner,
		FrontmostTimeout: DefaultFrontmostTimeout,
		MenuTimeout:      DefaultMenuTimeout,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// FrontmostApp returns the name of the application process holding focus.
func (w *Walker) FrontmostApp(ctx context.Context) (string, error) {
	out, err := w.run(ctx, frontmostScript, w.FrontmostTimeout)
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(out)
	if name == "" {
		return "", ErrEmptyOutput
	}
	return name, nil
}

// RawExtract runs the walker script and returns its unparsed output.
func (w *Walker) RawExtract(ctx context.Context) (string, error) {
	return w.run(ctx, walkMenusScript, w.MenuTimeout)
}

// Extract runs the walker script and parses its output. Failures are
// reported whole; there are no partial results.
func (w *Walker) Extract(ctx context.Context) (Result, error) {
	lgr := logger.FromContext(ctx)
	started := time.Now()

	raw, err := w.RawExtract(ctx)
	if err != nil {
		return Result{}, err
	}
	res, err := Parse(raw)
	if err != nil {
		return Result{}, err
	}
	lgr.V(1).Info("menu extracted", "app", res.AppName, "items", len(res.Items), "elapsed", time.Since(started).String())
	return res, nil
}

func (w *Walker) run(ctx context.Context, script string, timeout time.Duration) (string, error) {
	if w == nil || w.Runner == nil {
		return "", fmt.Errorf("%w: no script runner configured", ErrExtractionFailed)
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	res, err := w.Runner.Run(ctx, script)
	if err != nil {
		if errors.Is(err, osascript.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
			return "", &ScriptError{Kind: ErrTimeout, ExitCode: -1, Diagnostic: fmt.Sprintf("no result after %s", timeout)}
		}
		return "", &ScriptError{Kind: ErrExtractionFailed, ExitCode: -1, Diagnostic: err.Error()}
	}
	if !res.OK() {
		diag := res.Diagnostic()
		return "", &ScriptError{Kind: Classify(diag), ExitCode: res.ExitCode, Diagnostic: diag}
	}
	return res.Stdout, nil
}
