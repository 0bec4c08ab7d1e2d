package extractor

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractXLSX extracts every sheet's cells as tab-separated rows under
// a "Sheet: <name>" header and collects per-cell hyperlinks.
//
// Hyperlinks have to be probed cell by cell; excelize exposes no
// sheet-level hyperlink listing. Probing only non-empty cells keeps the
// scan proportional to actual content.
func (e *Extractor) extractXLSX(path string) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only workbook

	res := &Result{}
	seen := make(map[string]bool)

	var text strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			e.logger.Warn("skipping unreadable sheet",
				"path", path,
				"sheet", sheet,
				"error", err,
			)
			continue
		}

		text.WriteString("Sheet: ")
		text.WriteString(sheet)
		text.WriteString("\n")

		for rowIdx, row := range rows {
			text.WriteString(strings.Join(row, "\t"))
			text.WriteString("\n")

			for colIdx, cell := range row {
				if cell == "" {
					continue
				}
				name, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				if err != nil {
					continue
				}
				ok, target, err := f.GetCellHyperLink(sheet, name)
				if err != nil || !ok || target == "" || seen[target] {
					continue
				}
				seen[target] = true
				res.Links = append(res.Links, Link{
					URL:    target,
					Text:   strings.TrimSpace(cell),
					Origin: OriginAnnotation,
				})
			}
		}
		text.WriteString("\n")
	}

	res.Text = text.String()
	return res, nil
}
