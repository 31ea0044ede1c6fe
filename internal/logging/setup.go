// Package logging builds the slog logger used across the engine: console
// output always, plus an optional JSON log file.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Options selects where and how verbosely the engine logs.
type Options struct {
	// Verbose lowers the console level to debug.
	Verbose bool
	// FilePath, when set, duplicates every record into a JSON lines file.
	FilePath string
}

// Setup builds the logger and installs it as the slog default. The returned
// close function flushes and closes the log file, if any.
func Setup(opts Options) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}),
	}
	closeFn := func() error { return nil }

	if opts.FilePath != "" {
		file, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		closeFn = file.Close
	}

	logger := slog.New(&multiHandler{handlers: handlers})
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

// multiHandler fans one record out to several handlers.
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	var lastErr error
	for _, h := range m.handlers {
		if h.Enabled(ctx, record.Level) {
			if err := h.Handle(ctx, record); err != nil {
				lastErr = err
			}
		}
	}
	return lastErr
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}
