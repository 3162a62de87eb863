package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/menusheet/internal/cel"
	"github.com/oakwood-commons/menusheet/internal/config"
	"github.com/oakwood-commons/menusheet/internal/menu"
	"github.com/oakwood-commons/menusheet/internal/notify"
	"github.com/oakwood-commons/menusheet/internal/sheet"
)

type fakeExtractor struct {
	app          string
	appErr       error
	result       menu.Result
	err          error
	extractCalls int
}

func (f *fakeExtractor) FrontmostApp(context.Context) (string, error) {
	return f.app, f.appErr
}

func (f *fakeExtractor) Extract(context.Context) (menu.Result, error) {
	f.extractCalls++
	return f.result, f.err
}

type fakeSink struct {
	url   string
	err   error
	calls int
	title string
	rows  [][]string
}

func (f *fakeSink) CreateAndWrite(_ context.Context, title string, rows [][]string) (string, error) {
	f.calls++
	f.title = title
	f.rows = rows
	return f.url, f.err
}

type fakeCredSink struct {
	fakeSink
	path string
}

func (f *fakeCredSink) CredentialsPath() string { return f.path }

type recorder struct {
	messages []string
	err      error
}

func (r *recorder) Notify(_ context.Context, msg string) error {
	r.messages = append(r.messages, msg)
	return r.err
}

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)

func newEngine(t *testing.T, x Extractor, s sheet.Sink, n notify.Notifier, opts ...Option) *Engine {
	t.Helper()
	all := append([]Option{
		WithExtractor(x),
		WithSink(s),
		WithNotifier(n),
		WithClock(func() time.Time { return fixedNow }),
		WithFileExists(func(string) bool { return true }),
	}, opts...)
	e, err := New(all...)
	require.NoError(t, err)
	return e
}

func safariResult() menu.Result {
	return menu.Result{
		AppName: "Safari",
		Items:   []menu.Item{{Modifier: "Cmd", Key: "N", Path: []string{"ファイル", "新規"}}},
	}
}

func TestRunMissingCredentials(t *testing.T) {
	x := &fakeExtractor{app: "Safari", result: safariResult()}
	s := &fakeCredSink{path: "/nowhere/credentials.json"}
	n := &recorder{}
	e := newEngine(t, x, s, n, WithFileExists(func(p string) bool {
		assert.Equal(t, "/nowhere/credentials.json", p)
		return false
	}))

	out, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateFailed, out.State)
	assert.Equal(t, config.MsgMissingCredentials, out.Kind)
	assert.True(t, errors.Is(out.Err, ErrMissingCredentials))
	assert.Equal(t, []string{"credentials.json が見つかりません"}, n.messages)
	assert.Zero(t, x.extractCalls)
	assert.Zero(t, s.calls)
}

func TestRunMissingCredentialsNamesConfiguredFile(t *testing.T) {
	x := &fakeExtractor{result: safariResult()}
	s := &fakeCredSink{path: "/keys/work-sa.json"}
	n := &recorder{}
	e := newEngine(t, x, s, n, WithFileExists(func(string) bool { return false }))

	out, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/keys/work-sa.json", out.Credentials)
	assert.Equal(t, []string{"work-sa.json が見つかりません"}, n.messages)
}

func TestRunCredentialsCheckedOnlyForCredentialedSinks(t *testing.T) {
	x := &fakeExtractor{result: safariResult()}
	s := &fakeSink{url: "file:///tmp/x.csv"}
	n := &recorder{}
	e := newEngine(t, x, s, n, WithFileExists(func(string) bool { return false }))

	out, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateDone, out.State)
	assert.Equal(t, 1, s.calls)
}

func TestRunSuccess(t *testing.T) {
	x := &fakeExtractor{app: "Safari", result: safariResult()}
	s := &fakeCredSink{fakeSink: fakeSink{url: "https://example.com"}, path: "creds.json"}
	n := &recorder{}
	e := newEngine(t, x, s, n)

	out, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateDone, out.State)
	assert.Equal(t, config.MsgWritten, out.Kind)
	assert.Equal(t, "https://example.com", out.URL)
	assert.Equal(t, "Safari", out.AppName)
	assert.NoError(t, out.Err)
	assert.Equal(t, []string{"Safari のメニューをスプレッドシートに書き込みました"}, n.messages)

	assert.Equal(t, "Safari_2026-01-02_03-04-05", s.title)
	assert.Equal(t, [][]string{
		{"Modifier", "Key", "Level 1", "Level 2"},
		{"Cmd", "N", "ファイル", "新規"},
	}, s.rows)
}

func TestRunExtractionErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind config.MessageID
		want string
	}{
		{
			name: "menu bar not found names the frontmost app",
			err:  &menu.ScriptError{Kind: menu.ErrMenuBarNotFound, ExitCode: 1, Diagnostic: "no menu bar"},
			kind: config.MsgMenuBarNotFound,
			want: "メニューバーが見つかりません: SomeApp",
		},
		{
			name: "generic extraction failure",
			err:  &menu.ScriptError{Kind: menu.ErrExtractionFailed, ExitCode: 1, Diagnostic: "boom"},
			kind: config.MsgExtractionFailed,
			want: "メニュー取得に失敗しました",
		},
		{
			name: "accessibility denied",
			err:  &menu.ScriptError{Kind: menu.ErrAccessibilityDenied, ExitCode: 1, Diagnostic: "not allowed assistive access"},
			kind: config.MsgAccessibilityDenied,
			want: "アクセシビリティ権限を許可してください",
		},
		{
			name: "timeout",
			err:  &menu.ScriptError{Kind: menu.ErrTimeout, ExitCode: -1},
			kind: config.MsgExtractionFailed,
			want: "メニュー取得に失敗しました",
		},
		{
			name: "empty output",
			err:  menu.ErrEmptyOutput,
			kind: config.MsgExtractionFailed,
			want: "メニュー取得に失敗しました",
		},
		{
			name: "unexpected error",
			err:  errors.New("unexpected"),
			kind: config.MsgWriteFailed,
			want: "スプレッドシートへの書き込みに失敗しました",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := &fakeExtractor{app: "SomeApp", err: tt.err}
			s := &fakeSink{}
			n := &recorder{}
			out, err := newEngine(t, x, s, n).Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, StateFailed, out.State)
			assert.Equal(t, tt.kind, out.Kind)
			assert.Equal(t, []string{tt.want}, n.messages)
			assert.True(t, errors.Is(out.Err, tt.err))
			assert.Zero(t, s.calls)
		})
	}
}

func TestRunFrontmostLookupFailureIsIgnored(t *testing.T) {
	x := &fakeExtractor{appErr: errors.New("no app"), err: menu.ErrMenuBarNotFound}
	n := &recorder{}
	out, err := newEngine(t, x, &fakeSink{}, n).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", out.AppName)
	assert.Equal(t, []string{"メニューバーが見つかりません: "}, n.messages)
	assert.Equal(t, 1, x.extractCalls)
}

func TestRunNoItems(t *testing.T) {
	x := &fakeExtractor{app: "App", result: menu.Result{AppName: "App"}}
	s := &fakeSink{}
	n := &recorder{}
	out, err := newEngine(t, x, s, n).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateNoItems, out.State)
	assert.Equal(t, []string{"メニュー項目が見つかりません: App"}, n.messages)
	assert.Zero(t, s.calls)
	assert.NoError(t, out.Err)
}

func TestRunWriteFailureHidesCause(t *testing.T) {
	cause := fmt.Errorf("%w: create spreadsheet: quota exceeded", sheet.ErrWriteFailed)
	x := &fakeExtractor{app: "Safari", result: safariResult()}
	s := &fakeSink{err: cause}
	n := &recorder{}
	out, err := newEngine(t, x, s, n).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateFailed, out.State)
	assert.Equal(t, config.MsgWriteFailed, out.Kind)
	assert.Equal(t, []string{"スプレッドシートへの書き込みに失敗しました"}, n.messages)
	assert.NotContains(t, n.messages[0], "quota")
	assert.True(t, errors.Is(out.Err, sheet.ErrWriteFailed))
}

func TestRunAppliesFilter(t *testing.T) {
	f, err := cel.Compile(`path[0] == "View"`)
	require.NoError(t, err)

	res := menu.Result{AppName: "App", Items: []menu.Item{
		{Modifier: "Cmd", Key: "N", Path: []string{"File", "New"}},
		{Path: []string{"View", "Zoom"}},
	}}
	x := &fakeExtractor{result: res}
	s := &fakeSink{url: "u"}
	n := &recorder{}
	out, err := newEngine(t, x, s, n, WithFilter(f)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateDone, out.State)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, [][]string{
		{"Modifier", "Key", "Level 1", "Level 2"},
		{"", "", "View", "Zoom"},
	}, s.rows)
}

func TestRunFilterRemovingEverythingIsNoItems(t *testing.T) {
	f, err := cel.Compile("false")
	require.NoError(t, err)
	s := &fakeSink{}
	n := &recorder{}
	out, err := newEngine(t, &fakeExtractor{result: safariResult()}, s, n, WithFilter(f)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateNoItems, out.State)
	assert.Zero(t, s.calls)
	assert.Len(t, n.messages, 1)
}

func TestRunFilterErrorIsExtractionFailure(t *testing.T) {
	f, err := cel.Compile(`path[5] == "x"`)
	require.NoError(t, err)
	n := &recorder{}
	out, err := newEngine(t, &fakeExtractor{result: safariResult()}, &fakeSink{}, n, WithFilter(f)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, config.MsgExtractionFailed, out.Kind)
	assert.Len(t, n.messages, 1)
}

func TestRunCustomMessagesAndHeader(t *testing.T) {
	s := &fakeSink{url: "u"}
	n := &recorder{}
	e := newEngine(t, &fakeExtractor{result: safariResult()}, s, n,
		WithMessages(config.NewMessages("en", nil)),
		WithHeader(sheet.Header{Modifier: "修飾キー", Key: "キー"}),
	)
	out, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Wrote the Safari menu to a spreadsheet", out.Message)
	assert.Equal(t, []string{"修飾キー", "キー", "Level 1", "Level 2"}, s.rows[0])
}

func TestRunNotificationFailurePropagates(t *testing.T) {
	n := &recorder{err: errors.New("osascript missing")}
	out, err := newEngine(t, &fakeExtractor{result: safariResult()}, &fakeSink{url: "u"}, n).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "osascript missing")
	assert.Equal(t, StateDone, out.State)
}

func TestNewRequiresExtractorAndSink(t *testing.T) {
	_, err := New(WithSink(&fakeSink{}))
	require.Error(t, err)
	_, err = New(WithExtractor(&fakeExtractor{}))
	require.Error(t, err)

	e, err := New(WithExtractor(&fakeExtractor{}), WithSink(&fakeSink{}))
	require.NoError(t, err)
	assert.NotNil(t, e.Notifier)
	assert.NotNil(t, e.Now)
	assert.Equal(t, sheet.DefaultHeader(), e.Header)
}

func TestRegularFileExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, regularFileExists(dir))
	assert.False(t, regularFileExists(dir+"/missing.json"))
}
