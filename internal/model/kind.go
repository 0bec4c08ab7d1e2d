package model

import "strings"

// Kind classifies what a discovered URL points at.
type Kind string

// Link kinds.
//
// KindPPTX is detected by the classifier so presentation files are
// recognized as documents, but it is not a storable kind: the registry
// rejects it, so presentations never appear in exports. This mirrors
// the original system's behavior and keeps the export schema to the
// six kinds downstream consumers know about.
const (
	// KindPage is a regular web page.
	KindPage Kind = "page"

	// KindPDF is a PDF document.
	KindPDF Kind = "pdf"

	// KindDOCX is a Word document (.docx or legacy .doc).
	KindDOCX Kind = "docx"

	// KindXLSX is a spreadsheet (.xlsx or legacy .xls).
	KindXLSX Kind = "xlsx"

	// KindPPTX is a presentation (.pptx or legacy .ppt). Detected, not stored.
	KindPPTX Kind = "pptx"

	// KindOther is a link of no recognized kind.
	KindOther Kind = "other"

	// KindBroken marks a node whose fetch failed.
	KindBroken Kind = "broken"
)

// kindByExtension maps lower-case file extensions to document kinds.
var kindByExtension = map[string]Kind{
	"pdf":  KindPDF,
	"docx": KindDOCX,
	"doc":  KindDOCX,
	"xlsx": KindXLSX,
	"xls":  KindXLSX,
	"pptx": KindPPTX,
	"ppt":  KindPPTX,
}

// KindFromURL infers a link kind from the URL's file extension.
// URLs without a recognized document extension are pages.
func KindFromURL(url string) Kind {
	// Drop query and fragment before looking at the extension.
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}

	i := strings.LastIndex(url, ".")
	if i < 0 || i == len(url)-1 {
		return KindPage
	}
	ext := strings.ToLower(url[i+1:])

	// Extensions only live in the last path segment.
	if strings.Contains(ext, "/") {
		return KindPage
	}

	if k, ok := kindByExtension[ext]; ok {
		return k
	}
	return KindPage
}

// IsDocument reports whether the kind is a downloadable document
// rather than a renderable page.
func (k Kind) IsDocument() bool {
	switch k {
	case KindPDF, KindDOCX, KindXLSX, KindPPTX:
		return true
	default:
		return false
	}
}

// Storable reports whether the registry accepts this kind.
func (k Kind) Storable() bool {
	switch k {
	case KindPage, KindPDF, KindDOCX, KindXLSX, KindOther, KindBroken:
		return true
	default:
		return false
	}
}

// String returns the kind as a string.
func (k Kind) String() string {
	return string(k)
}
