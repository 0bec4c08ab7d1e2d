package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/hharuki/sitemapper/internal/model"
)

// SimpleWriter outputs human-readable text summaries.
//
// Design decision: plain text with ASCII formatting rather than ANSI
// colors because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{baseWriter: newBaseWriter(output)}
}

// WriteSummary outputs the job summary in human-readable format.
func (w *SimpleWriter) WriteSummary(summary *Summary) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  SITE MAP JOB #%d: %s\n", summary.JobID, summary.Name))
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Status:     %s\n", strings.ToUpper(summary.Status.String())))
	sb.WriteString(fmt.Sprintf("Depth:      %d / %d\n", summary.CurrentDepth, summary.MaxDepth))
	sb.WriteString(fmt.Sprintf("Links:      %d discovered, %d processed\n",
		summary.TotalLinks, summary.ProcessedLinks))
	sb.WriteString(fmt.Sprintf("Created:    %s\n", summary.CreatedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString("\n")

	sb.WriteString("Seeds:\n")
	for _, seed := range summary.Seeds {
		sb.WriteString(fmt.Sprintf("  [+] %s\n", seed))
	}
	sb.WriteString("\n")

	w.writeKindCounts(&sb, summary)

	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

// writeKindCounts writes the per-kind node counts in fixed order.
func (w *SimpleWriter) writeKindCounts(sb *strings.Builder, summary *Summary) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("NODES BY KIND\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, kind := range kindOrder {
		sb.WriteString(fmt.Sprintf("  %-8s %d\n", labelFor(kind)+":", summary.KindCounts[kind]))
	}
	sb.WriteString("\n")
}

// labelFor returns the display label for a kind.
func labelFor(kind model.Kind) string {
	switch kind {
	case model.KindPage:
		return "PAGES"
	case model.KindPDF:
		return "PDF"
	case model.KindDOCX:
		return "WORD"
	case model.KindXLSX:
		return "EXCEL"
	case model.KindOther:
		return "OTHER"
	case model.KindBroken:
		return "BROKEN"
	default:
		return strings.ToUpper(kind.String())
	}
}
