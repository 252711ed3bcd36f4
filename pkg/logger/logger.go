// Package logger provides the slog handlers used by the episodegrid binaries.
package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// ANSI colour codes.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
)

// highlighted are message fragments printed in green: dataset loading and
// persistence milestones.
var highlighted = []string{"persist", "loaded", "load dataset", "dataset ready", "schema derived"}

// ColorHandler is a text handler that colours whole lines by level. Warnings
// are yellow, errors red, and load milestones green.
type ColorHandler struct {
	inner slog.Handler
	buf   *bytes.Buffer
	mu    *sync.Mutex
	w     io.Writer
	color bool
}

// NewColorHandler creates a ColorHandler writing to w. Colour is enabled when
// w is a terminal and NO_COLOR is unset.
func NewColorHandler(w io.Writer, opts *slog.HandlerOptions) *ColorHandler {
	buf := &bytes.Buffer{}
	return &ColorHandler{
		inner: slog.NewTextHandler(buf, opts),
		buf:   buf,
		mu:    &sync.Mutex{},
		w:     w,
		color: isTerminal(w) && os.Getenv("NO_COLOR") == "",
	}
}

// WithColor forces colour output on or off.
func (h *ColorHandler) WithColor(enabled bool) *ColorHandler {
	c := *h
	c.color = enabled
	return &c
}

// Enabled implements slog.Handler.
func (h *ColorHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *ColorHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf.Reset()
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	line := h.buf.Bytes()
	code := colorFor(r)
	if !h.color || code == "" {
		_, err := h.w.Write(line)
		return err
	}

	trimmed := bytes.TrimSuffix(line, []byte("\n"))
	_, err := fmt.Fprintf(h.w, "%s%s%s\n", code, trimmed, colorReset)
	return err
}

// WithAttrs implements slog.Handler.
func (h *ColorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.inner = h.inner.WithAttrs(attrs)
	return &c
}

// WithGroup implements slog.Handler.
func (h *ColorHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.inner = h.inner.WithGroup(name)
	return &c
}

func colorFor(r slog.Record) string {
	switch {
	case r.Level >= slog.LevelError:
		return colorRed
	case r.Level >= slog.LevelWarn:
		return colorYellow
	}
	msg := strings.ToLower(r.Message)
	for _, frag := range highlighted {
		if strings.Contains(msg, frag) {
			return colorGreen
		}
	}
	return ""
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// NewDefaultLogger returns a colour logger on stderr at level.
func NewDefaultLogger(level slog.Level) *slog.Logger {
	return slog.New(NewColorHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewLogger returns a logger writing format ("text" or "json") to w.
func NewLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(NewColorHandler(w, opts))
}

// ParseLevel converts a level name such as "debug" or "WARN" to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
