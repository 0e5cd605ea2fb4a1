package snap

import (
	"bytes"
	"errors"
	"io"
	"os"
	"unicode/utf8"
)

// skipReason classifies why a file produced no content. Missing, binary,
// and unreadable files are expected outcomes of a run, not faults, so the
// per-file read step reports them as values rather than errors.
type skipReason int

const (
	skipNone skipReason = iota
	skipBinary
	skipEmpty
	skipUnreadable
)

// readOutcome is the result of attempting to read one file as text: either
// content, or a skip reason with the underlying cause when one exists.
type readOutcome struct {
	content string
	reason  skipReason
	err     error
}

// sniffLen is how many leading bytes are inspected to decide whether a file
// is binary before reading it in full.
const sniffLen = 8 * 1024

// readTextFile reads the file at path as UTF-8 text. Files containing NUL
// bytes or invalid UTF-8 are reported as binary; zero-length files as
// empty; open and read failures as unreadable.
func readTextFile(path string) readOutcome {
	file, err := os.Open(path)
	if err != nil {
		return readOutcome{reason: skipUnreadable, err: err}
	}
	defer file.Close()

	buf := make([]byte, sniffLen)
	n, err := file.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return readOutcome{reason: skipUnreadable, err: err}
	}
	buf = buf[:n]

	if n == 0 {
		return readOutcome{reason: skipEmpty}
	}
	if bytes.IndexByte(buf, 0) >= 0 || !validTextPrefix(buf) {
		return readOutcome{reason: skipBinary}
	}

	data, err := io.ReadAll(io.MultiReader(bytes.NewReader(buf), file))
	if err != nil {
		return readOutcome{reason: skipUnreadable, err: err}
	}
	if !utf8.Valid(data) {
		return readOutcome{reason: skipBinary}
	}
	return readOutcome{content: string(data)}
}

// validTextPrefix reports whether buf is valid UTF-8, tolerating a rune
// truncated by the sniff boundary at the very end.
func validTextPrefix(buf []byte) bool {
	for trim := 0; trim < utf8.UTFMax && trim < len(buf); trim++ {
		if utf8.Valid(buf[:len(buf)-trim]) {
			return true
		}
	}
	return false
}
