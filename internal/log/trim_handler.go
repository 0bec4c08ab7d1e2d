package log

import (
	"context"
	"io"
	"log/slog"
	"unicode/utf8"
)

// MaxAttrLen is the default maximum length of a logged string attribute.
// 512 bytes keeps full URLs and error chains intact while cutting off
// page markup and document text.
const MaxAttrLen = 512

// TruncationMarker is appended to values that were cut.
const TruncationMarker = "...[truncated]"

// TrimHandler wraps an slog.Handler and truncates oversized string
// attribute values before passing records on.
//
// Design decision: We use a handler wrapper rather than trimming at
// each call site because:
//  1. It integrates with standard slog APIs and any underlying handler
//  2. Call sites stay honest: they log what they have and the handler
//     enforces the budget uniformly
//  3. Group attributes are handled recursively in one place
type TrimHandler struct {
	// handler is the underlying slog handler that receives trimmed records.
	handler slog.Handler

	// maxLen is the maximum string attribute length in bytes.
	maxLen int
}

// TrimOption configures a TrimHandler.
type TrimOption func(*TrimHandler)

// WithMaxAttrLen overrides the attribute length budget.
// Non-positive values fall back to MaxAttrLen.
func WithMaxAttrLen(n int) TrimOption {
	return func(h *TrimHandler) {
		if n > 0 {
			h.maxLen = n
		}
	}
}

// NewTrimHandler creates a TrimHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewTrimHandler(handler slog.Handler, opts ...TrimOption) *TrimHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	h := &TrimHandler{handler: handler, maxLen: MaxAttrLen}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Enabled delegates to the underlying handler.
func (h *TrimHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle trims the record's attributes and passes it on.
func (h *TrimHandler) Handle(ctx context.Context, r slog.Record) error {
	trimmed := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		trimmed.AddAttrs(h.trimAttr(a))
		return true
	})
	return h.handler.Handle(ctx, trimmed)
}

// WithAttrs returns a new handler with the given attributes added,
// trimmed first.
func (h *TrimHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	trimmed := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		trimmed[i] = h.trimAttr(a)
	}
	return &TrimHandler{handler: h.handler.WithAttrs(trimmed), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *TrimHandler) WithGroup(name string) slog.Handler {
	return &TrimHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// trimAttr trims a single attribute, recursively handling groups.
func (h *TrimHandler) trimAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		trimmed := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			trimmed[i] = h.trimAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(trimmed...)}
	}

	if a.Value.Kind() == slog.KindString {
		s := a.Value.String()
		if len(s) > h.maxLen {
			return slog.String(a.Key, truncate(s, h.maxLen)+TruncationMarker)
		}
		return a
	}

	// Error values stringify through LogValuer/Any; only bound the
	// pathological cases without losing the error chain.
	if a.Value.Kind() == slog.KindAny {
		if err, ok := a.Value.Any().(error); ok {
			msg := err.Error()
			if len(msg) > h.maxLen {
				return slog.String(a.Key, truncate(msg, h.maxLen)+TruncationMarker)
			}
		}
	}

	return a
}

// truncate cuts s to at most n bytes without splitting a UTF-8 rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// NewLogger creates an slog.Logger whose output is attribute-trimmed.
//
// Parameters:
//   - w: destination for log output (typically os.Stderr)
//   - verbose: if true the level is Debug, otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewTrimHandler(textHandler))
}
