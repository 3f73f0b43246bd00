// Package source abstracts where file content comes from: the engine only
// ever sees an ordered list of file identifiers plus a content lookup.
package source

import (
	"fmt"
	"os"
)

// ContentSource provides file content for a file identifier.
type ContentSource interface {
	// Read returns the content of the file at path.
	Read(path string) ([]byte, error)
}

// FilesystemSource reads files from the local filesystem.
type FilesystemSource struct{}

// NewFilesystem creates a source that reads from the filesystem.
func NewFilesystem() *FilesystemSource {
	return &FilesystemSource{}
}

// Read implements ContentSource.
func (f *FilesystemSource) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// MapSource serves content from an in-memory map of file id to text.
// Useful for tests and for callers that already hold the content.
type MapSource struct {
	files map[string]string
}

// NewMap creates a source backed by the given map. The map is not copied;
// the caller owns it and must not mutate it during an analysis run.
func NewMap(files map[string]string) *MapSource {
	return &MapSource{files: files}
}

// Read implements ContentSource.
func (m *MapSource) Read(path string) ([]byte, error) {
	content, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("no content for %s", path)
	}
	return []byte(content), nil
}
