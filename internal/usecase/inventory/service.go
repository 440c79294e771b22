// Package inventory reports which files in the data directory hold vacancies.
package inventory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domvac "github.com/kailas-cloud/hhdex/internal/domain/vacancy"
	"github.com/kailas-cloud/hhdex/internal/logger"
)

// Reason explains why a file is not usable.
type Reason string

const (
	// ReasonNone marks a usable file.
	ReasonNone Reason = ""
	// ReasonUnsupported marks a file whose extension has no store.
	ReasonUnsupported Reason = "unsupported format"
	// ReasonNoVacancies marks a readable file with no record carrying an id.
	ReasonNoVacancies Reason = "no vacancy data"
	// ReasonUnreadable marks a file whose content could not be decoded.
	ReasonUnreadable Reason = "unreadable"
)

// FileInfo describes one file in the data directory.
type FileInfo struct {
	Name      string
	Format    string
	Vacancies int
	Reason    Reason
}

// Usable reports whether the file holds vacancy records.
func (f FileInfo) Usable() bool { return f.Reason == ReasonNone }

// Report is the outcome of a directory scan.
type Report struct {
	Files  []FileInfo
	Usable []string
}

// Service scans the data directory.
type Service struct {
	dir  Directory
	open Opener
}

// New creates an inventory service.
func New(dir Directory, open Opener) *Service {
	return &Service{dir: dir, open: open}
}

// Scan inspects every file in the data directory and counts its vacancies.
func (s *Service) Scan(ctx context.Context) (Report, error) {
	names, err := s.dir.List(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list data dir: %w", err)
	}

	log := logger.FromContext(ctx)
	report := Report{Files: make([]FileInfo, 0, len(names)), Usable: []string{}}
	for _, name := range names {
		info := s.inspect(ctx, name)
		report.Files = append(report.Files, info)
		if info.Usable() {
			report.Usable = append(report.Usable, info.Name)
		}
		log.Debug("Inspected file",
			zap.String("file", info.Name),
			zap.Int("vacancies", info.Vacancies),
			zap.String("reason", string(info.Reason)),
		)
	}
	return report, nil
}

func (s *Service) inspect(ctx context.Context, name string) FileInfo {
	info := FileInfo{Name: name}

	store, err := s.open(name)
	if err != nil || store.Name() != name {
		// A bare name would be opened as name.json, which is a different file.
		info.Reason = ReasonUnsupported
		return info
	}
	info.Format = store.Format()

	records, err := store.Load(ctx)
	if err != nil {
		info.Reason = ReasonUnreadable
		return info
	}

	// Records without an id are not vacancies and are left out of the count.
	for _, id := range domvac.Identities(records) {
		if id != "" {
			info.Vacancies++
		}
	}
	if info.Vacancies == 0 {
		info.Reason = ReasonNoVacancies
	}
	return info
}
