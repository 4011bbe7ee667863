package flags

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

var (
	logLevel  slog.LevelVar
	logFormat = logFormatParser{"text"}
)

func init() {
	setLogger(os.Stderr, logFormat.format)
}

func setLogger(w io.Writer, format string) {
	opts := &slog.HandlerOptions{Level: &logLevel}

	var h slog.Handler
	switch format {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(&slogHandler{h}))
	slog.SetLogLoggerLevel(slog.LevelError)
}

var hadSlogError atomic.Bool

// ExitError exits 1 if anything was logged at error level, and 0 otherwise.
func ExitError() {
	if hadSlogError.Load() {
		os.Exit(1)
	}
	os.Exit(0)
}

type slogHandler struct {
	slog.Handler
}

func (n *slogHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		hadSlogError.Store(true)
	}
	return n.Handler.Handle(ctx, r)
}

func (n *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &slogHandler{n.Handler.WithAttrs(attrs)}
}

func (n *slogHandler) WithGroup(name string) slog.Handler {
	return &slogHandler{n.Handler.WithGroup(name)}
}

type logFormatParser struct{ format string }

func (l *logFormatParser) Set(value string) error {
	switch value {
	case "text", "json":
		l.format = value
		return nil
	}
	return fmt.Errorf("unknown log format %q", value)
}
func (l logFormatParser) String() string {
	return l.format
}
