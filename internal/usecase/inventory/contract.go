package inventory

import (
	"context"

	domvac "github.com/kailas-cloud/hhdex/internal/domain/vacancy"
)

// Directory lists regular file names in the data directory.
type Directory interface {
	List(ctx context.Context) ([]string, error)
}

// FileStore reads one vacancy file.
type FileStore interface {
	Name() string
	Format() string
	Load(ctx context.Context) ([]domvac.Fields, error)
}

// Opener resolves a file name to its store.
type Opener func(name string) (FileStore, error)
