package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestTrimHandlerTruncatesLongStrings verifies that oversized string
// attributes are cut and marked.
func TestTrimHandlerTruncatesLongStrings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewTrimHandler(slog.NewTextHandler(&buf, nil), WithMaxAttrLen(32))
	logger := slog.New(handler)

	long := strings.Repeat("x", 100)
	logger.Info("page rendered", "markup", long, "url", "http://example.com")

	out := buf.String()
	if strings.Contains(out, long) {
		t.Error("long attribute should have been truncated")
	}
	if !strings.Contains(out, TruncationMarker) {
		t.Errorf("output should carry the truncation marker, got %q", out)
	}
	if !strings.Contains(out, "http://example.com") {
		t.Error("short attributes must pass through unchanged")
	}
}

// TestTrimHandlerShortValuesUntouched verifies values under the budget
// are not modified.
func TestTrimHandlerShortValuesUntouched(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewTrimHandler(slog.NewTextHandler(&buf, nil)))

	logger.Info("fetch", "url", "http://example.com/a", "status", 200)

	out := buf.String()
	if strings.Contains(out, TruncationMarker) {
		t.Errorf("no truncation expected, got %q", out)
	}
	if !strings.Contains(out, "status=200") {
		t.Errorf("non-string attributes must pass through, got %q", out)
	}
}

// TestTrimHandlerGroups verifies recursive trimming inside groups.
func TestTrimHandlerGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewTrimHandler(slog.NewTextHandler(&buf, nil), WithMaxAttrLen(16))
	logger := slog.New(handler)

	logger.Info("unit done",
		slog.Group("node",
			slog.String("text", strings.Repeat("y", 64)),
			slog.String("kind", "page"),
		),
	)

	out := buf.String()
	if !strings.Contains(out, TruncationMarker) {
		t.Errorf("grouped attribute should be truncated, got %q", out)
	}
	if !strings.Contains(out, "node.kind=page") {
		t.Errorf("short grouped attribute should survive, got %q", out)
	}
}

// TestTruncateRuneSafety verifies multi-byte runes are never split.
func TestTruncateRuneSafety(t *testing.T) {
	t.Parallel()

	s := strings.Repeat("日", 10) // 3 bytes each
	got := truncate(s, 4)
	if got != "日" {
		t.Errorf("truncate should cut at a rune boundary, got %q", got)
	}
}

// TestNewLoggerLevels verifies the verbose switch.
func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	quiet := NewLogger(&buf, false)
	quiet.Info("should be suppressed")
	if buf.Len() != 0 {
		t.Errorf("info should be suppressed when not verbose, got %q", buf.String())
	}

	buf.Reset()
	verbose := NewLogger(&buf, true)
	verbose.Debug("visible")
	if buf.Len() == 0 {
		t.Error("debug should be emitted when verbose")
	}
}
