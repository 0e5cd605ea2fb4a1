// Package snap implements the selection and aggregation engine: it resolves
// the configured folders and files into a filtered list of text files and
// concatenates their contents into a single annotated document.
package snap

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoContent indicates that every configured entry was missing, ignored,
// binary, unreadable, or empty, leaving nothing to aggregate.
var ErrNoContent = errors.New("no valid content found to aggregate")

// FileRecord is one unit of output: a file's base-relative display path and
// its decoded text content.
type FileRecord struct {
	RelPath string
	Content string
}

// Result is the aggregated document plus the count of files that
// contributed content, for diagnostics.
type Result struct {
	Document  string
	Processed int
}

// separatorWidth is the width of the header separator line above and below
// each file label.
const separatorWidth = 50

// render serializes the record as a header block followed by the raw
// content: a separator line, the file label, a second separator line, a
// blank line, then the content.
func (r FileRecord) render() string {
	sep := strings.Repeat("=", separatorWidth)
	return fmt.Sprintf("%s\nFile: %s\n%s\n\n%s", sep, r.RelPath, sep, r.Content)
}

// renderDocument joins the records' serialized forms, separated by blank
// lines, preserving record order.
func renderDocument(records []FileRecord) string {
	blocks := make([]string, 0, len(records))
	for _, rec := range records {
		blocks = append(blocks, rec.render())
	}
	return strings.Join(blocks, "\n\n")
}
