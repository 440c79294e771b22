package hhdex

import (
	"context"

	healthuc "github.com/kailas-cloud/hhdex/internal/usecase/health"
	inventoryuc "github.com/kailas-cloud/hhdex/internal/usecase/inventory"
	vacancyuc "github.com/kailas-cloud/hhdex/internal/usecase/vacancy"
)

// --- vacancyUseCase mock ---

type mockVacancyUC struct {
	searchFn  func(ctx context.Context, q vacancyuc.Query) ([]Vacancy, error)
	collectFn func(ctx context.Context, keyword, file string) (vacancyuc.CollectResult, error)
	storedFn  func(ctx context.Context, file string, keywords []string, top int) ([]Vacancy, error)
	clearFn   func(ctx context.Context, file string) error
}

func (m *mockVacancyUC) Search(ctx context.Context, q vacancyuc.Query) ([]Vacancy, error) {
	return m.searchFn(ctx, q)
}

func (m *mockVacancyUC) Collect(ctx context.Context, keyword, file string) (vacancyuc.CollectResult, error) {
	return m.collectFn(ctx, keyword, file)
}

func (m *mockVacancyUC) Stored(ctx context.Context, file string, keywords []string, top int) ([]Vacancy, error) {
	return m.storedFn(ctx, file, keywords, top)
}

func (m *mockVacancyUC) Clear(ctx context.Context, file string) error {
	return m.clearFn(ctx, file)
}

// --- inventoryUseCase mock ---

type mockInventoryUC struct {
	scanFn func(ctx context.Context) (inventoryuc.Report, error)
}

func (m *mockInventoryUC) Scan(ctx context.Context) (inventoryuc.Report, error) {
	return m.scanFn(ctx)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}

// --- cachePurger mock ---

type mockPurger struct {
	n   int
	err error
}

func (m *mockPurger) Purge(_ context.Context) (int, error) {
	return m.n, m.err
}
