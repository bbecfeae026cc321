// Package logger provides a zerolog wrapper with opinionated defaults and
// run-scoped logging support
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"stratsampler/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Options configures the logger
type Options struct {
	Level        string
	Format       string
	Service      string
	Component    string
	Writer       io.Writer // progress stream, stdout when nil
	ErrWriter    io.Writer // error stream, stderr when nil
	WithCaller   bool
	StaticFields map[string]string
}

// FromEnv builds Options using the logging-free raw config view (no cycles)
// LOG_LEVEL wins; otherwise SAMPLER_DEBUG_LEVEL is mapped through LevelForDebug
func FromEnv() Options {
	rc := raw.New().Prefix("LOG_")
	lvl := rc.Get("LEVEL", "")
	if lvl == "" {
		lvl = LevelForDebug(raw.New().Prefix("SAMPLER_").GetInt("DEBUG_LEVEL", 0))
	}
	return Options{
		Level:      strings.ToLower(lvl),
		Format:     strings.ToLower(rc.Get("FORMAT", "console")),
		Service:    rc.Get("SERVICE", ""),
		Component:  rc.Get("COMPONENT", ""),
		WithCaller: rc.GetBool("CALLER", false),
	}
}

// LevelForDebug maps the tool's debug verbosity (0 off, 1 important, 2 all) to a level name
func LevelForDebug(debugLevel int) string {
	switch {
	case debugLevel >= 2:
		return "trace"
	case debugLevel == 1:
		return "debug"
	default:
		return "info"
	}
}

var (
	once   sync.Once
	root   atomic.Pointer[zerolog.Logger] // internal storage of the root logger
	inited atomic.Bool
)

// Logger is the project-wide logging type - today it's just a zerolog.Logger, but it can be swapped later
type Logger = zerolog.Logger

// Get returns the process-wide root logger as a pointer
func Get() *Logger {
	if !inited.Load() {
		Init(FromEnv())
	}
	return root.Load()
}

// Init configures zerolog and builds the root logger, safe to call once
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		log := build(opt)
		root.Store(&log)
		inited.Store(true)
	})
}

// New builds a standalone logger from opt without touching the process root
func New(opt Options) Logger { return build(opt) }

func build(opt Options) zerolog.Logger {
	lvl := parseLevel(opt.Level)

	var out io.Writer = os.Stdout
	if opt.Writer != nil {
		out = opt.Writer
	}
	var errOut io.Writer = os.Stderr
	if opt.ErrWriter != nil {
		errOut = opt.ErrWriter
	}
	if opt.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		errOut = zerolog.ConsoleWriter{Out: errOut, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(splitWriter{out: out, err: errOut}).Level(lvl).With().Timestamp()

	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		ctx = ctx.Str("go_version", bi.GoVersion)
	}
	if opt.Service != "" {
		ctx = ctx.Str("service", opt.Service)
	}
	if opt.Component != "" {
		ctx = ctx.Str("component", opt.Component)
	}
	for k, v := range opt.StaticFields {
		ctx = ctx.Str(k, v)
	}

	log := ctx.Logger()
	if opt.WithCaller {
		log = log.With().Caller().Logger()
	}
	return log
}

// splitWriter routes error and above to the error stream, the rest to the progress stream
type splitWriter struct {
	out io.Writer
	err io.Writer
}

func (w splitWriter) Write(p []byte) (int, error) { return w.out.Write(p) }

func (w splitWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l >= zerolog.ErrorLevel && l != zerolog.NoLevel {
		return w.err.Write(p)
	}
	return w.out.Write(p)
}

// parseLevel supports string levels and zerolog's numeric levels
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	}
	if n, err := strconv.Atoi(s); err == nil && n >= int(zerolog.TraceLevel) && n <= int(zerolog.PanicLevel) {
		return zerolog.Level(n)
	}
	return zerolog.InfoLevel
}

type ctxKey struct{ name string }

var (
	keyRunID = ctxKey{"run_id"}
	keyInput = ctxKey{"input"}
)

// WithRun annotates ctx with run-scoped fields
func WithRun(ctx context.Context, runID, input string) context.Context {
	if runID != "" {
		ctx = context.WithValue(ctx, keyRunID, runID)
	}
	if input != "" {
		ctx = context.WithValue(ctx, keyInput, input)
	}
	return ctx
}

// RunID returns the run id stored on ctx, if any
func RunID(ctx context.Context) string {
	s, _ := ctx.Value(keyRunID).(string)
	return s
}

// C returns a child logger enriched from ctx (run_id, input)
func C(ctx context.Context) *Logger {
	return From(ctx, Get())
}

// From enriches base with the run-scoped fields on ctx
func From(ctx context.Context, base *Logger) *Logger {
	builder := base.With()
	if s := RunID(ctx); s != "" {
		builder = builder.Str("run_id", s)
	}
	if v, ok := ctx.Value(keyInput).(string); ok && v != "" {
		builder = builder.Str("input", v)
	}
	ll := builder.Logger()
	return &ll
}

// Named returns a child logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	ll := Get().With().Str("component", component).Logger()
	return &ll
}
