// Package output delivers an aggregated document to its destination:
// clipboard, terminal, or a timestamped text file.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
)

// Sink delivers a finished document somewhere outside the process.
type Sink interface {
	Deliver(content string) error
}

// DeliveryError wraps a sink failure so callers can distinguish delivery
// problems from aggregation problems.
type DeliveryError struct {
	Sink string
	Err  error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver output to %s: %v", e.Sink, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Clipboard writes the document to the system clipboard.
type Clipboard struct{}

// Deliver implements Sink.
func (Clipboard) Deliver(content string) error {
	if err := clipboard.WriteAll(content); err != nil {
		return &DeliveryError{Sink: "clipboard", Err: err}
	}
	return nil
}

// Terminal echoes the document to a writer, typically stdout.
type Terminal struct {
	W io.Writer
}

// Deliver implements Sink.
func (t Terminal) Deliver(content string) error {
	if _, err := fmt.Fprintln(t.W, content); err != nil {
		return &DeliveryError{Sink: "terminal", Err: err}
	}
	return nil
}

// File writes the document to a timestamped text file in Dir. The generated
// path is recorded in Path after a successful delivery.
type File struct {
	Dir  string // Destination directory; empty means the working directory.
	Path string // Populated by Deliver with the file actually written.

	now func() time.Time // test seam
}

// Deliver implements Sink.
func (f *File) Deliver(content string) error {
	now := time.Now
	if f.now != nil {
		now = f.now
	}
	name := fmt.Sprintf("codesnap_%s.txt", now().Format("20060102_150405"))
	path := filepath.Join(f.Dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return &DeliveryError{Sink: "file", Err: err}
	}
	f.Path = path
	return nil
}
