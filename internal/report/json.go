package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONWriter outputs machine-readable summaries.
type JSONWriter struct {
	baseWriter

	// indent is the indentation string; empty means compact output.
	indent string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables two-space indented output.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteSummary outputs the job summary as JSON.
func (w *JSONWriter) WriteSummary(summary *Summary) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent != "" {
		data, err = json.MarshalIndent(summary, "", w.indent)
	} else {
		data, err = json.Marshal(summary)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to serialize summary: %w", err)
	}
	data = append(data, '\n')
	return w.output.Write(data)
}
