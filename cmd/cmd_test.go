package cmd

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"


	"github.com/oakwood-commons/menusheet/internal/menu"
	"github.com/oakwood-commons/menusheet/internal/osascript"
)

const safariDump = "Safari\n" +
	"0\tN\t\tファイル\t新規ウインドウ\n" +
	"1\tN\t\tファイル\t新規プライベートウインドウ\n" +
	"\t\t\tファイル\t書き出す\tPDF\n" +
	"0\t\t23\t編集\t削除\n"

// scriptRunner answers osascript calls by script kind.
type scriptRunner struct {
	mu            sync.Mutex
	frontmost     osascript.Result
	walk          osascript.Result
	notifyResult  osascript.Result
	notifications []string
	walks         int
}

func newScriptRunner() *scriptRunner {
	return &scriptRunner{
		frontmost: osascript.Result{Stdout: "Safari\n"},
		walk:      osascript.Result{Stdout: safariDump},
	}
}

func (r *scriptRunner) Run(_ context.Context, script string) (osascript.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case strings.HasPrefix(script, "display notification"):
		r.notifications = append(r.notifications, script)
		return r.notifyResult, nil
	case script == menu.WalkScript():
		r.walks++
		return r.walk, nil
	default:
		return r.frontmost, nil
	}
}

// executeCommand runs the CLI with args against runner, isolated from any
// user config, and returns what it printed.
func executeCommand(t *testing.T, runner osascript.Runner, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	origRunner := newRunner
	newRunner = func(string) osascript.Runner { return runner }
	t.Cleanup(func() { newRunner = origRunner })

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}
