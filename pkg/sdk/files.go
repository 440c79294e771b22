package hhdex

import (
	"context"
	"fmt"
	"time"
)

// FileInfo describes one file in the data directory.
type FileInfo struct {
	Name      string
	Format    string // "json", "xlsx", "parquet"; empty when unsupported
	Vacancies int
	Usable    bool
	Reason    string // why the file is not usable
}

// Files lists the data directory and reports which files hold vacancies.
func (c *Client) Files(ctx context.Context) (files []FileInfo, err error) {
	start := time.Now()
	defer func() { c.obs.observe("files.list", start, err) }()

	report, err := c.inventorySvc.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	files = make([]FileInfo, len(report.Files))
	for i, f := range report.Files {
		files[i] = FileInfo{
			Name:      f.Name,
			Format:    f.Format,
			Vacancies: f.Vacancies,
			Usable:    f.Usable(),
			Reason:    string(f.Reason),
		}
	}
	return files, nil
}
