package extractor

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// relationship is one entry from word/_rels/document.xml.rels.
type relationship struct {
	ID         string `xml:"Id,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

// relationships is the root of the rels part.
type relationships struct {
	Relationships []relationship `xml:"Relationship"`
}

// extractDOCX extracts paragraph and table text from the main document
// part and resolves hyperlink relationships to external targets.
//
// Word documents are OPC zip containers. The text lives in
// word/document.xml as w:t runs; hyperlinks reference targets in
// word/_rels/document.xml.rels by relationship id. Streaming the XML
// keeps memory flat on large documents and naturally picks up table
// cell text, which nests the same w:p/w:r/w:t structure.
func (e *Extractor) extractDOCX(path string) (*Result, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open docx container: %w", err)
	}
	defer zr.Close() //nolint:errcheck // read-only archive

	rels, err := docxExternalRels(&zr.Reader)
	if err != nil {
		return nil, err
	}

	doc, err := zipPart(&zr.Reader, "word/document.xml")
	if err != nil {
		return nil, err
	}
	defer doc.Close() //nolint:errcheck // read-only part

	return docxWalk(doc, rels)
}

// docxExternalRels maps relationship ids to external hyperlink targets.
// A document without a rels part simply has no hyperlinks.
func docxExternalRels(zr *zip.Reader) (map[string]string, error) {
	r, err := zipPart(zr, "word/_rels/document.xml.rels")
	if err != nil {
		return map[string]string{}, nil
	}
	defer r.Close() //nolint:errcheck // read-only part

	var rels relationships
	if err := xml.NewDecoder(r).Decode(&rels); err != nil {
		return nil, fmt.Errorf("decode docx relationships: %w", err)
	}

	external := make(map[string]string)
	for _, rel := range rels.Relationships {
		if rel.TargetMode == "External" && rel.Target != "" {
			external[rel.ID] = rel.Target
		}
	}
	return external, nil
}

// docxWalk streams word/document.xml, collecting text runs and
// resolving w:hyperlink elements through the relationship map.
func docxWalk(r io.Reader, rels map[string]string) (*Result, error) {
	res := &Result{}
	seen := make(map[string]bool)

	dec := xml.NewDecoder(r)

	var (
		text strings.Builder

		// inText is true between a w:t start and end element.
		inText bool

		// hyperlink tracks the currently open w:hyperlink, if any.
		hyperlinkURL  string
		hyperlinkText strings.Builder
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode docx body: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "hyperlink":
				for _, a := range t.Attr {
					if a.Name.Local == "id" {
						hyperlinkURL = rels[a.Value]
					}
				}
				hyperlinkText.Reset()
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				text.WriteString("\n")
			case "hyperlink":
				if hyperlinkURL != "" && !seen[hyperlinkURL] {
					seen[hyperlinkURL] = true
					res.Links = append(res.Links, Link{
						URL:    hyperlinkURL,
						Text:   strings.TrimSpace(hyperlinkText.String()),
						Origin: OriginAnnotation,
					})
				}
				hyperlinkURL = ""
			}
		case xml.CharData:
			if inText {
				text.Write(t)
				if hyperlinkURL != "" {
					hyperlinkText.Write(t)
				}
			}
		}
	}

	res.Text = text.String()
	return res, nil
}

// zipPart opens a named file inside the archive.
func zipPart(zr *zip.Reader, name string) (io.ReadCloser, error) {
	for _, f := range zr.File {
		if f.Name == name {
			return f.Open()
		}
	}
	return nil, fmt.Errorf("docx part %q not found", name)
}
