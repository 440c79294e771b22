package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Dir is the data directory holding vacancy files.
type Dir struct {
	path string
}

// NewDir creates a Dir rooted at path.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

// Path returns the directory path.
func (d *Dir) Path() string { return d.path }

// Open returns the store for name inside the directory.
func (d *Dir) Open(name string) (*Store, error) {
	return Open(d.path, name)
}

// List returns the names of regular files in the directory, sorted.
// Hidden files are skipped. A missing directory lists as empty.
func (d *Dir) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck // context error as is
	}

	entries, err := os.ReadDir(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Check reports whether the directory exists and is a directory.
func (d *Dir) Check(_ context.Context) error {
	info, err := os.Stat(d.path)
	if err != nil {
		return fmt.Errorf("stat data dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data dir %s is not a directory", d.path)
	}
	return nil
}
