package vacancy

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/hhdex/internal/domain"
	domvac "github.com/kailas-cloud/hhdex/internal/domain/vacancy"
	"github.com/kailas-cloud/hhdex/internal/logger"
	"github.com/kailas-cloud/hhdex/internal/metrics"
)

// Query selects live vacancies from the source.
type Query struct {
	Text     string
	Keywords []string
	Top      int // 0 = no top-N cut
}

// CollectResult describes one merge of fetched vacancies into a file.
type CollectResult struct {
	File    string
	Fetched int
	Added   int
	Total   int
}

// Service runs vacancy searches and manages stored vacancy files.
type Service struct {
	source Source
	open   Opener
}

// New creates a vacancy service.
func New(source Source, open Opener) *Service {
	return &Service{source: source, open: open}
}

// Search fetches vacancies for q.Text, keeps those matching every keyword
// and, when q.Top > 0, returns the q.Top best paid in descending salary order.
func (s *Service) Search(ctx context.Context, q Query) ([]domvac.Vacancy, error) {
	if err := validate(q.Text, q.Top); err != nil {
		return nil, err
	}

	records, err := s.fetch(ctx, q.Text)
	if err != nil {
		return nil, err
	}
	return selectTop(domvac.ListFrom(records), q.Keywords, q.Top)
}

// Collect fetches vacancies for keyword and merges them into file without duplicates.
func (s *Service) Collect(ctx context.Context, keyword, file string) (CollectResult, error) {
	if err := validate(keyword, 0); err != nil {
		return CollectResult{}, err
	}

	store, err := s.open(file)
	if err != nil {
		return CollectResult{}, fmt.Errorf("open file: %w", err)
	}

	records, err := s.fetch(ctx, keyword)
	if err != nil {
		return CollectResult{}, err
	}

	merged, added, err := store.Add(ctx, records)
	if err != nil {
		return CollectResult{}, fmt.Errorf("add to file: %w", err)
	}

	res := CollectResult{
		File:    store.Name(),
		Fetched: len(records),
		Added:   added,
		Total:   len(merged),
	}
	logger.FromContext(ctx).Info("Collected vacancies",
		zap.String("keyword", keyword),
		zap.String("file", res.File),
		zap.Int("fetched", res.Fetched),
		zap.Int("added", res.Added),
		zap.Int("total", res.Total),
	)
	return res, nil
}

// Stored returns vacancies from file filtered by keywords and cut to top (0 = all).
func (s *Service) Stored(ctx context.Context, file string, keywords []string, top int) ([]domvac.Vacancy, error) {
	if top < 0 {
		return nil, fmt.Errorf("top must be >= 0, got %d: %w", top, domain.ErrInvalidQuery)
	}

	store, err := s.open(file)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	records, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load file: %w", err)
	}
	return selectTop(domvac.ListFrom(records), keywords, top)
}

// Clear empties file.
func (s *Service) Clear(ctx context.Context, file string) error {
	store, err := s.open(file)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	if err := store.Clear(ctx); err != nil {
		return fmt.Errorf("clear file: %w", err)
	}
	return nil
}

// fetch loads and maps raw documents. Documents missing a required field are skipped.
func (s *Service) fetch(ctx context.Context, keyword string) ([]domvac.Fields, error) {
	raws, err := s.source.LoadVacancies(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("load vacancies: %w", err)
	}

	log := logger.FromContext(ctx)
	records := make([]domvac.Fields, 0, len(raws))
	for i, raw := range raws {
		f, err := domvac.MapFields(raw)
		if err != nil {
			metrics.MappingSkippedTotal.Inc()
			log.Warn("Skipping vacancy",
				zap.Int("index", i),
				zap.Any("id", raw["id"]),
				zap.Error(err),
			)
			continue
		}
		records = append(records, f)
	}
	return records, nil
}

func selectTop(vs []domvac.Vacancy, keywords []string, top int) ([]domvac.Vacancy, error) {
	vs = domvac.FilterByKeywords(vs, cleanKeywords(keywords))
	if top <= 0 || len(vs) == 0 {
		return vs, nil
	}
	out, err := domvac.TopBySalary(vs, top)
	if err != nil {
		return nil, fmt.Errorf("top by salary: %w", err)
	}
	return out, nil
}

func validate(text string, top int) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("search text is required: %w", domain.ErrInvalidQuery)
	}
	if top < 0 {
		return fmt.Errorf("top must be >= 0, got %d: %w", top, domain.ErrInvalidQuery)
	}
	return nil
}

// cleanKeywords drops blank keywords so "a,,b" filters like "a,b".
func cleanKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
