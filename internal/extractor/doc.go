// Package extractor pulls plain text and links out of downloaded
// documents (PDF, Word, Excel).
//
// Extraction is strictly best-effort: a document that cannot be parsed
// yields an empty result, never an error. The crawl treats documents as
// leaves that may contribute more links; losing one corrupt file must
// not cost the rest of the map.
//
// Each format combines two link sources: explicit hyperlinks carried by
// the format (PDF link annotations, Word hyperlink relationships, Excel
// cell hyperlinks) and a URL-pattern scan over the extracted text for
// links written out as bare text. Scan hits are deduplicated against
// the explicit set and tagged with their origin.
package extractor
