package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// ANSI escape sequences used by the console handler.
const (
	escReset  = "\033[0m"
	escFaint  = "\033[2m"
	escBold   = "\033[1m"
	escRed    = "\033[31m"
	escGreen  = "\033[32m"
	escYellow = "\033[33m"
	escCyan   = "\033[36m"
)

// consoleHandler is a slog.Handler that renders records as single coloured
// lines for interactive use, e.g.
//
//	15:04:05.000 INF listening addr=0.0.0.0:8080
//
// JSON output for production goes through slog.NewJSONHandler instead.
type consoleHandler struct {
	out    io.Writer
	min    slog.Leveler
	preset []slog.Attr
	groups []string

	// mu is shared between handlers derived via WithAttrs/WithGroup so
	// writes to out never interleave.
	mu *sync.Mutex
}

func newConsoleHandler(w io.Writer, opts *slog.HandlerOptions) *consoleHandler {
	h := &consoleHandler{
		out: w,
		min: slog.LevelInfo,
		mu:  &sync.Mutex{},
	}
	if opts != nil && opts.Level != nil {
		h.min = opts.Level
	}
	return h
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.min.Level()
}

func (h *consoleHandler) Handle(_ context.Context, rec slog.Record) error {
	line := &bytes.Buffer{}
	line.Grow(256)

	when := rec.Time
	if when.IsZero() {
		when = time.Now()
	}
	fmt.Fprintf(line, "%s%s%s ", escFaint, when.Format("15:04:05.000"), escReset)

	colour, tag := levelTag(rec.Level)
	fmt.Fprintf(line, "%s%s%s ", colour, tag, escReset)
	fmt.Fprintf(line, "%s%s%s", escBold, rec.Message, escReset)

	for _, a := range h.preset {
		h.writeAttr(line, a, h.groups)
	}
	rec.Attrs(func(a slog.Attr) bool {
		h.writeAttr(line, a, h.groups)
		return true
	})
	line.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(line.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.preset = append(append([]slog.Attr{}, h.preset...), attrs...)
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

// levelTag maps a slog level to its colour and three-letter label.
func levelTag(level slog.Level) (colour, tag string) {
	switch {
	case level < slog.LevelInfo:
		return escCyan, "DBG"
	case level < slog.LevelWarn:
		return escGreen, "INF"
	case level < slog.LevelError:
		return escYellow, "WRN"
	default:
		return escRed, "ERR"
	}
}

// writeAttr renders one attribute as " key=value", flattening groups into
// dotted key prefixes.
func (h *consoleHandler) writeAttr(line *bytes.Buffer, a slog.Attr, groups []string) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		nested := groups
		if a.Key != "" {
			nested = append(append([]string{}, groups...), a.Key)
		}
		for _, member := range a.Value.Group() {
			h.writeAttr(line, member, nested)
		}
		return
	}

	line.WriteByte(' ')
	line.WriteString(escFaint)
	for _, g := range groups {
		line.WriteString(g)
		line.WriteByte('.')
	}
	line.WriteString(a.Key)
	line.WriteByte('=')
	line.WriteString(escReset)
	line.WriteString(renderValue(a.Value))
}

func renderValue(v slog.Value) string {
	s := v.String()
	if v.Kind() == slog.KindString && strings.ContainsAny(s, " \t\n\"\\") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
