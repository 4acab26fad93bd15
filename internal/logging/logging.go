package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/samber/do/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config of the logging
type Config struct {
	Level      string `yaml:"level"`
	Filename   string `yaml:"filename"`
	MaxSize    int    `yaml:"maxsize"` // in megabytes
	MaxBackups int    `yaml:"maxbackups"`
	MaxAge     int    `yaml:"maxage"` // in days
	Gelf       string `yaml:"gelf"`
}

var (
	level   = new(slog.LevelVar)
	current atomic.Pointer[slog.Handler]

	clock   sync.Mutex
	closers []io.Closer
)

func init() {
	var h slog.Handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	current.Store(&h)
}

// New creates a logger for the named component. Loggers created before
// Setup follow the configured output afterwards.
func New(name string) *slog.Logger {
	return slog.New(&componentHandler{name: name})
}

// Init configures the logging with the logging config of the injector
func Init(inj do.Injector) {
	cfg := do.MustInvoke[*Config](inj)
	if err := Setup(*cfg); err != nil {
		New("logging").Error("can't setup logging", "error", err)
	}
}

// Setup switches the logging to the given config. Logs are always written to
// stderr, stdout is left for the generated commands.
func Setup(cfg Config) error {
	if cfg.Level != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(strings.ToUpper(cfg.Level))); err != nil {
			return err
		}
		level.Set(l)
	}

	var w io.Writer = os.Stderr
	if cfg.Filename != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   true,
		}
		addCloser(lj)
		w = io.MultiWriter(os.Stderr, lj)
	}

	var h slog.Handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	if cfg.Gelf != "" {
		gh, err := newGelfHandler(cfg.Gelf, level)
		if err != nil {
			return err
		}
		addCloser(gh)
		h = fanout{h, gh}
	}
	current.Store(&h)
	return nil
}

// Close closes the log file and the gelf connection, if any
func Close() error {
	clock.Lock()
	defer clock.Unlock()
	var first error
	for _, c := range closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	closers = nil
	var h slog.Handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	current.Store(&h)
	return first
}

func addCloser(c io.Closer) {
	clock.Lock()
	defer clock.Unlock()
	closers = append(closers, c)
}

// handlerOp is either a group or a list of attributes, applied in order
type handlerOp struct {
	group string
	attrs []slog.Attr
}

type componentHandler struct {
	name string
	ops  []handlerOp
}

func (h *componentHandler) handler() slog.Handler {
	hd := (*current.Load()).WithAttrs([]slog.Attr{slog.String("component", h.name)})
	for _, op := range h.ops {
		if op.group != "" {
			hd = hd.WithGroup(op.group)
		} else {
			hd = hd.WithAttrs(op.attrs)
		}
	}
	return hd
}

func (h *componentHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return (*current.Load()).Enabled(ctx, l)
}

func (h *componentHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.handler().Handle(ctx, r)
}

func (h *componentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.with(handlerOp{attrs: attrs})
}

func (h *componentHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.with(handlerOp{group: name})
}

func (h *componentHandler) with(op handlerOp) *componentHandler {
	ops := make([]handlerOp, 0, len(h.ops)+1)
	ops = append(ops, h.ops...)
	return &componentHandler{name: h.name, ops: append(ops, op)}
}

// fanout dispatches every record to all handlers
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	n := make(fanout, len(f))
	for i, h := range f {
		n[i] = h.WithAttrs(attrs)
	}
	return n
}

func (f fanout) WithGroup(name string) slog.Handler {
	n := make(fanout, len(f))
	for i, h := range f {
		n[i] = h.WithGroup(name)
	}
	return n
}
