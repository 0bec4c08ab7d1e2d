package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
)

// MarkdownWriter outputs GitHub-flavored Markdown summaries, suitable
// for pasting into issues or rendering in documentation.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// WriteSummary outputs the job summary as Markdown.
func (w *MarkdownWriter) WriteSummary(summary *Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1(fmt.Sprintf("Site Map Job #%d: %s", summary.JobID, summary.Name))
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Field", "Value"},
		Rows: [][]string{
			{"Status", strings.ToUpper(summary.Status.String())},
			{"Depth", fmt.Sprintf("%d / %d", summary.CurrentDepth, summary.MaxDepth)},
			{"Links discovered", strconv.Itoa(summary.TotalLinks)},
			{"Links processed", strconv.Itoa(summary.ProcessedLinks)},
			{"Created", summary.CreatedAt.Format("2006-01-02 15:04:05")},
		},
	})
	md.PlainText("")

	md.H2("Seeds")
	md.PlainText("")
	md.BulletList(summary.Seeds...)
	md.PlainText("")

	md.H2("Nodes by Kind")
	md.PlainText("")
	rows := make([][]string, 0, len(kindOrder))
	for _, kind := range kindOrder {
		rows = append(rows, []string{labelFor(kind), strconv.Itoa(summary.KindCounts[kind])})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Kind", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	return len(md.String()), md.Build()
}
