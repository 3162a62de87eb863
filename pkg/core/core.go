// Package core runs one extraction: it checks credentials, reads the
// frontmost application's menus, writes them through a sheet.Sink and
// reports the outcome with exactly one notification.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/oakwood-commons/menusheet/internal/config"
	"github.com/oakwood-commons/menusheet/internal/menu"
	"github.com/oakwood-commons/menusheet/internal/notify"
	"github.com/oakwood-commons/menusheet/internal/sheet"
	"github.com/oakwood-commons/menusheet/pkg/logger"
)

// ErrMissingCredentials is reported when a credentialed sink's key file does
// not exist. Extraction is not attempted.
var ErrMissingCredentials = errors.New("credentials file not found")

// Extractor reads the menu bar of the frontmost application.
type Extractor interface {
	FrontmostApp(ctx context.Context) (string, error)
	Extract(ctx context.Context) (menu.Result, error)
}

// Filter narrows the extracted items.
type Filter interface {
	Apply(items []menu.Item) ([]menu.Item, error)
}

// State is the terminal state of a run.
type State string

const (
	StateDone    State = "done"
	StateNoItems State = "no_items"
	StateFailed  State = "failed"
)

// Outcome describes a finished run.
type Outcome struct {
	State State
	// Kind identifies the notification that was sent.
	Kind    config.MessageID
	AppName string
	Message string
	// URL is where the sink wrote the document; empty unless State is StateDone.
	URL   string
	Items []menu.Item
	// Credentials is the key file that was not found.
	Credentials string
	// Err is the cause of a failed run. It is logged, never shown to the user.
	Err error
}

// Engine wires the extraction pipeline.
type Engine struct {
	Extractor  Extractor
	Sink       sheet.Sink
	Notifier   notify.Notifier
	Filter     Filter
	Messages   config.Messages
	Header     sheet.Header
	Now        func() time.Time
	FileExists func(path string) bool
}

// Option configures the Engine.
type Option func(*Engine)

// WithExtractor sets the menu source.
func WithExtractor(x Extractor) Option {
	return func(e *Engine) {
		e.Extractor = x
	}
}

// WithSink sets the destination of the rows.
func WithSink(s sheet.Sink) Option {
	return func(e *Engine) {
		e.Sink = s
	}
}

// WithNotifier sets how the outcome message is delivered.
func WithNotifier(n notify.Notifier) Option {
	return func(e *Engine) {
		e.Notifier = n
	}
}

// WithFilter sets an item filter applied after extraction.
func WithFilter(f Filter) Option {
	return func(e *Engine) {
		e.Filter = f
	}
}

// WithMessages sets the notification catalog.
func WithMessages(m config.Messages) Option {
	return func(e *Engine) {
		e.Messages = m
	}
}

// WithHeader sets the header labels of the written rows.
func WithHeader(h sheet.Header) Option {
	return func(e *Engine) {
		e.Header = h
	}
}

// WithClock sets the time source for document titles.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.Now = now
	}
}

// WithFileExists replaces the credentials existence check.
func WithFileExists(fn func(path string) bool) Option {
	return func(e *Engine) {
		e.FileExists = fn
	}
}

// New creates an Engine. An extractor and a sink are required.
func New(opts ...Option) (*Engine, error) {
	engine := &Engine{
		Notifier:   notify.Discard{},
		Messages:   config.NewMessages(string(config.LocaleJA), nil),
		Header:     sheet.DefaultHeader(),
		Now:        time.Now,
		FileExists: regularFileExists,
	}
	for _, opt := range opts {
		opt(engine)
	}
	if engine.Extractor == nil {
		return nil, fmt.Errorf("extractor is not configured")
	}
	if engine.Sink == nil {
		return nil, fmt.Errorf("sink is not configured")
	}
	return engine, nil
}

func regularFileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// Run performs one extraction and sends exactly one notification. The
// returned error is non-nil only when the notification itself fails; every
// other failure is reported through the Outcome.
func (e *Engine) Run(ctx context.Context) (Outcome, error) {
	out := e.run(ctx)
	out.Message = e.Messages.FormatFile(out.Kind, out.AppName, out.Credentials)

	lgr := logger.FromContext(ctx)
	if out.Err != nil {
		lgr.Error(out.Err, "run failed", logger.KindKey, string(out.Kind), logger.AppKey, out.AppName)
	} else {
		lgr.Info("run finished", "state", string(out.State), logger.AppKey, out.AppName, "items", len(out.Items), "url", out.URL)
	}

	if err := e.Notifier.Notify(ctx, out.Message); err != nil {
		return out, err
	}
	return out, nil
}

func (e *Engine) run(ctx context.Context) Outcome {
	lgr := logger.FromContext(ctx)

	if cs, ok := e.Sink.(sheet.CredentialedSink); ok {
		if path := cs.CredentialsPath(); !e.FileExists(path) {
			return Outcome{
				State:       StateFailed,
				Kind:        config.MsgMissingCredentials,
				Credentials: path,
				Err:         fmt.Errorf("%w: %s", ErrMissingCredentials, path),
			}
		}
	}

	// Best effort: only used to name the app when the menu bar is missing.
	appName, err := e.Extractor.FrontmostApp(ctx)
	if err != nil {
		lgr.V(1).Info("frontmost app lookup failed", "error", err.Error())
		appName = ""
	}

	res, err := e.Extractor.Extract(ctx)
	if err != nil {
		return Outcome{State: StateFailed, Kind: extractionKind(err), AppName: appName, Err: err}
	}
	if res.AppName != "" {
		appName = res.AppName
	}

	items := res.Items
	if e.Filter != nil {
		items, err = e.Filter.Apply(items)
		if err != nil {
			return Outcome{
				State:   StateFailed,
				Kind:    config.MsgExtractionFailed,
				AppName: appName,
				Err:     fmt.Errorf("filter: %w", err),
			}
		}
		lgr.V(1).Info("items filtered", "kept", len(items), "total", len(res.Items))
	}

	if len(items) == 0 {
		return Outcome{State: StateNoItems, Kind: config.MsgNoItems, AppName: appName}
	}

	title := sheet.Title(appName, e.Now())
	url, err := e.Sink.CreateAndWrite(ctx, title, sheet.Rows(items, e.Header))
	if err != nil {
		return Outcome{
			State:   StateFailed,
			Kind:    config.MsgWriteFailed,
			AppName: appName,
			Items:   items,
			Err:     err,
		}
	}
	return Outcome{State: StateDone, Kind: config.MsgWritten, AppName: appName, URL: url, Items: items}
}

// extractionKind maps an extraction error to its message. Errors outside the
// menu taxonomy fall back to the generic write-failure message.
func extractionKind(err error) config.MessageID {
	switch {
	case errors.Is(err, menu.ErrAccessibilityDenied):
		return config.MsgAccessibilityDenied
	case errors.Is(err, menu.ErrMenuBarNotFound):
		return config.MsgMenuBarNotFound
	case errors.Is(err, menu.ErrExtractionFailed):
		return config.MsgExtractionFailed
	default:
		return config.MsgWriteFailed
	}
}
