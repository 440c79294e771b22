package vacancy

import (
	"context"

	domvac "github.com/kailas-cloud/hhdex/internal/domain/vacancy"
)

// Source loads raw vacancy documents for a keyword.
type Source interface {
	LoadVacancies(ctx context.Context, keyword string) ([]domvac.Raw, error)
}

// FileStore is a single vacancy file.
type FileStore interface {
	Name() string
	Add(ctx context.Context, records []domvac.Fields) (merged []domvac.Fields, added int, err error)
	Load(ctx context.Context) ([]domvac.Fields, error)
	Clear(ctx context.Context) error
}

// Opener resolves a file name in the data directory to its store.
type Opener func(name string) (FileStore, error)
