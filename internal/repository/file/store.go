// Package file persists flat vacancy records to JSON, Excel and Parquet files.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kailas-cloud/hhdex/internal/domain"
	"github.com/kailas-cloud/hhdex/internal/domain/vacancy"
	"github.com/kailas-cloud/hhdex/internal/metrics"
)

// Supported file extensions.
const (
	ExtJSON    = ".json"
	ExtExcel   = ".xlsx"
	ExtParquet = ".parquet"
)

// codec reads and writes one file format.
type codec interface {
	format() string
	read(path string) ([]vacancy.Fields, error)
	write(path string, records []vacancy.Fields) error
}

var codecs = map[string]codec{
	ExtJSON:    jsonCodec{},
	ExtExcel:   excelCodec{},
	ExtParquet: parquetCodec{},
}

// pathLocks serializes read-modify-write cycles per file path.
var pathLocks sync.Map

// Store is a vacancy file in the data directory.
type Store struct {
	name  string
	path  string
	codec codec
}

// Open returns the store for name inside dir, picked by extension.
// A name without an extension is stored as JSON.
func Open(dir, name string) (*Store, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}
	return &Store{
		name:  name,
		path:  filepath.Join(dir, name),
		codec: codecs[filepath.Ext(name)],
	}, nil
}

// NormalizeName validates a file name and appends .json when it has no extension.
func NormalizeName(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid file name %q: %w", name, domain.ErrUnsupportedFormat)
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return name + ExtJSON, nil
	}
	if _, ok := codecs[ext]; !ok || ext != filepath.Ext(name) {
		return "", fmt.Errorf("file %q: %w", name, domain.ErrUnsupportedFormat)
	}
	return name, nil
}

// Name returns the normalized file name.
func (s *Store) Name() string { return s.name }

// Format returns the file format (json, xlsx, parquet).
func (s *Store) Format() string { return s.codec.format() }

// Save overwrites the file with records.
func (s *Store) Save(ctx context.Context, records []vacancy.Fields) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck // context error as is
	}
	mu := s.lock()
	defer mu.Unlock()

	return s.save(records)
}

// Add merges records into the file, skipping ids already stored.
// A missing file counts as empty. Returns the stored records after the merge
// and how many of them this call appended, both taken under the file lock.
func (s *Store) Add(ctx context.Context, records []vacancy.Fields) ([]vacancy.Fields, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err //nolint:wrapcheck // context error as is
	}
	mu := s.lock()
	defer mu.Unlock()

	existing, err := s.load()
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, 0, err
	}

	merged := vacancy.MergeDeduplicated(existing, records)
	if err := s.save(merged); err != nil {
		return nil, 0, err
	}
	return merged, len(merged) - len(existing), nil
}

// Load reads every record from the file. A missing file is domain.ErrNotFound.
func (s *Store) Load(ctx context.Context) ([]vacancy.Fields, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck // context error as is
	}
	mu := s.lock()
	defer mu.Unlock()

	return s.load()
}

// Clear overwrites the file with an empty record list.
func (s *Store) Clear(ctx context.Context) error {
	return s.Save(ctx, nil)
}

func (s *Store) lock() *sync.Mutex {
	v, _ := pathLocks.LoadOrStore(s.path, &sync.Mutex{})
	mu := v.(*sync.Mutex) //nolint:forcetypeassert // only *sync.Mutex is stored
	mu.Lock()
	return mu
}

func (s *Store) load() ([]vacancy.Fields, error) {
	records, err := s.codec.read(s.path)
	if err != nil {
		s.count("load", "error")
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("file %s: %w", s.name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("load %s: %w", s.name, err)
	}
	s.count("load", "ok")
	return normalize(records), nil
}

func (s *Store) save(records []vacancy.Fields) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		s.count("save", "error")
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := s.codec.write(s.path, normalize(records)); err != nil {
		s.count("save", "error")
		return fmt.Errorf("save %s: %w", s.name, err)
	}
	s.count("save", "ok")
	return nil
}

func (s *Store) count(op, status string) {
	metrics.StoreOperationsTotal.WithLabelValues(s.codec.format(), op, status).Inc()
}

// normalize coerces records to the fixed flat schema with typed leaves.
func normalize(records []vacancy.Fields) []vacancy.Fields {
	out := make([]vacancy.Fields, len(records))
	for i, f := range records {
		out[i] = vacancy.New(f).ToMap()
	}
	return out
}

// writeAtomic writes via a temp file in the target directory and renames it into place.
func writeAtomic(path string, write func(f *os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// unsupported marks content that cannot be read as vacancy records.
func unsupported(path string, err error) error {
	return fmt.Errorf("%s: %w: %w", filepath.Base(path), domain.ErrUnsupportedFormat, err)
}
