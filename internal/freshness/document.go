// Package freshness implements the note-freshness core: front matter
// extraction, last-updated date resolution, staleness evaluation, banner
// presentation, and the lifecycle controller that ties them to the active
// view. Host collaborators (view system, file system, settings surface) are
// injected explicitly; the package holds no ambient state.
package freshness

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Document is an opaque handle to a note, owned by the host. Content must
// be read fresh on every call since the note may change between reads.
type Document interface {
	// Path identifies the document within the host.
	Path() string
	// Content returns the current raw text of the document.
	Content(ctx context.Context) (string, error)
	// ModTime returns the document's modification timestamp.
	ModTime() (time.Time, error)
}

// FileDocument is a Document backed by a file on disk.
type FileDocument struct {
	path string
}

// NewFileDocument returns a Document reading from the given file path.
func NewFileDocument(path string) *FileDocument {
	return &FileDocument{path: path}
}

// Path returns the file path.
func (d *FileDocument) Path() string { return d.path }

// Content reads the file, uncached.
func (d *FileDocument) Content(_ context.Context) (string, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return string(data), nil
}

// ModTime stats the file for its modification timestamp.
func (d *FileDocument) ModTime() (time.Time, error) {
	info, err := os.Stat(d.path)
	if err != nil {
		return time.Time{}, fmt.Errorf("stat document: %w", err)
	}
	return info.ModTime(), nil
}
