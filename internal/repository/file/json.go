package file

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/hhdex/internal/domain/vacancy"
)

type jsonCodec struct{}

func (jsonCodec) format() string { return "json" }

func (jsonCodec) read(path string) ([]vacancy.Fields, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err //nolint:wrapcheck // wrapped by Store.load
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var records []vacancy.Fields
	if err := dec.Decode(&records); err != nil {
		return nil, unsupported(path, err)
	}
	return records, nil
}

func (jsonCodec) write(path string, records []vacancy.Fields) error {
	if records == nil {
		records = []vacancy.Fields{}
	}
	return writeAtomic(path, func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	})
}
