package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultPath is the catalog document read when no path is configured.
const DefaultPath = "./data.json"

// File reads the catalog document from the local filesystem.
type File struct {
	path string
}

// NewFile creates a file source. An empty path means DefaultPath.
func NewFile(path string) *File {
	if path == "" {
		path = DefaultPath
	}
	return &File{path: path}
}

// Fetch reads the whole file.
func (f *File) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck // context error
	}
	data, err := os.ReadFile(filepath.Clean(f.path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(f.path, err)
		}
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return data, nil
}

func (f *File) String() string { return "file:" + f.path }
