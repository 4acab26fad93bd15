package logging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aphistic/golf"
	"github.com/pkg/errors"
)

// gelfHandler sends log records to a graylog server. Attributes are appended
// to the short message as key=value pairs.
type gelfHandler struct {
	client *golf.Client
	logger *golf.Logger
	level  slog.Leveler
	prefix string
	attrs  string
}

func newGelfHandler(uri string, level slog.Leveler) (*gelfHandler, error) {
	c, err := golf.NewClient()
	if err != nil {
		return nil, errors.Wrap(err, "can't create gelf client")
	}
	if err := c.Dial(uri); err != nil {
		c.Close()
		return nil, errors.Wrapf(err, "can't dial gelf server %s", uri)
	}
	l, err := c.NewLogger()
	if err != nil {
		c.Close()
		return nil, errors.Wrap(err, "can't create gelf logger")
	}
	l.SetAttr("facility", "globetiler")
	return &gelfHandler{
		client: c,
		logger: l,
		level:  level,
	}, nil
}

func (h *gelfHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *gelfHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Message)
	sb.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, h.prefix, a)
		return true
	})
	msg := sb.String()
	switch {
	case r.Level >= slog.LevelError:
		h.logger.Err(msg)
	case r.Level >= slog.LevelWarn:
		h.logger.Warn(msg)
	case r.Level >= slog.LevelInfo:
		h.logger.Info(msg)
	default:
		h.logger.Dbg(msg)
	}
	return nil
}

func (h *gelfHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var sb strings.Builder
	sb.WriteString(h.attrs)
	for _, a := range attrs {
		writeAttr(&sb, h.prefix, a)
	}
	n := *h
	n.attrs = sb.String()
	return &n
}

func (h *gelfHandler) WithGroup(name string) slog.Handler {
	n := *h
	n.prefix = h.prefix + name + "."
	return &n
}

func (h *gelfHandler) Close() error {
	return h.client.Close()
}

func writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, ga := range v.Group() {
			writeAttr(sb, prefix+a.Key+".", ga)
		}
		return
	}
	fmt.Fprintf(sb, " %s%s=%v", prefix, a.Key, v.Any())
}
