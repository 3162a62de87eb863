// Package logger configures the process-wide zap logger and exposes it as a
// logr.Logger carried through contexts.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oakwood-commons/menusheet/pkg/settings"
)

type loggerContextKey struct{}

// Structured field keys.
const (
	RootCommandKey = "root_command"
	SubCommandKey  = "sub_command"
	AppKey         = "app"
	KindKey        = "kind"
	CommitKey      = "commit"
	VersionKey     = "version"
	BuildTimeKey   = "build_time"
	GoVersionKey   = "go_version"
	TimeStampKey   = "timestamp"
	MessageKey     = "message"
)

// Output encodings.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Levels as accepted in configuration, mapped onto zap levels.
var levels = map[string]int8{
	"debug": int8(zapcore.DebugLevel),
	"info":  int8(zapcore.InfoLevel),
	"warn":  int8(zapcore.WarnLevel),
	"error": int8(zapcore.ErrorLevel),
}

// ParseLevel converts a level name to the zap level Options.Level expects.
func ParseLevel(name string) (int8, error) {
	lvl, ok := levels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown log level %q (expected debug, info, warn or error)", name)
	}
	return lvl, nil
}

// Options configures a logger.
type Options struct {
	// Level is the minimum zap level; -1 is debug.
	Level int8
	// Format is FormatJSON (default) or FormatConsole.
	Format string
	// Output defaults to stderr.
	Output io.Writer
}

var (
	once sync.Once

	// globalZapLogger backs Sync.
	globalZapLogger *zap.Logger

	// globalLogrLogger is returned by FromContext when the context carries none.
	globalLogrLogger *logr.Logger

	defaultNoopLogger logr.Logger = logr.Discard()
)

// New builds a zap logger from opts and returns it both as logr and zap.
func New(opts Options) (*logr.Logger, *zap.Logger) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = TimeStampKey
	encoderCfg.MessageKey = MessageKey

	var encoder zapcore.Encoder
	if opts.Format == FormatConsole {
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	var sink zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
	if opts.Output != nil {
		sink = zapcore.Lock(zapcore.AddSync(opts.Output))
	}

	goVersion := "unknown"
	if info, ok := debug.ReadBuildInfo(); ok {
		goVersion = info.GoVersion
	}
	core := zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(zapcore.Level(opts.Level))).With(
		[]zapcore.Field{
			zap.String(CommitKey, settings.VersionInformation.Commit),
			zap.String(VersionKey, settings.VersionInformation.BuildVersion),
			zap.String(BuildTimeKey, settings.VersionInformation.BuildTime),
			zap.String(GoVersionKey, goVersion),
		},
	)

	zl := zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
		zap.WithFatalHook(zapcore.WriteThenPanic),
	)
	lgr := zapr.NewLogger(zl)
	return &lgr, zl
}

// Setup initializes the global logger once. Later calls return the logger
// built by the first call.
func Setup(opts Options) *logr.Logger {
	once.Do(func() {
		globalLogrLogger, globalZapLogger = New(opts)
	})
	if globalLogrLogger == nil {
		return &defaultNoopLogger
	}
	return globalLogrLogger
}

// Get initializes the global logger with JSON output on stderr at logLevel.
func Get(logLevel int8) *logr.Logger {
	return Setup(Options{Level: logLevel})
}

// WithLogger returns a context carrying log. A context already carrying the
// same logger is returned unchanged.
func WithLogger(ctx context.Context, log *logr.Logger) context.Context {
	if lp, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok && lp == log {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext returns the context's logger, else the global logger, else a
// no-op logger.
func FromContext(ctx context.Context) *logr.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
		return log
	}
	if globalLogrLogger != nil {
		return globalLogrLogger
	}
	return &defaultNoopLogger
}

// Sync flushes buffered entries of the global logger.
func Sync() {
	if globalZapLogger == nil {
		return
	}
	if err := globalZapLogger.Sync(); err != nil && !isIgnorableSyncError(err) {
		fmt.Fprintf(os.Stderr, "WARNING: failed to sync zap logger: %v\n", err)
	}
}

// isIgnorableSyncError returns true for common Sync errors on pipes and TTYs.
func isIgnorableSyncError(err error) bool {
	return errors.Is(err, syscall.ENOTTY) ||
		errors.Is(err, syscall.EINVAL) ||
		errors.Is(err, syscall.EIO) ||
		errors.Is(err, syscall.EBADF)
}

// GetNoopLogger returns a logger that discards everything.
func GetNoopLogger() *logr.Logger {
	return &defaultNoopLogger
}

// WithValues returns a copy of lgr with additional key/value pairs.
func WithValues(lgr *logr.Logger, keysAndValues ...any) *logr.Logger {
	nlgr := lgr.WithValues(keysAndValues...)
	return &nlgr
}
