package hhdex

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/hhdex/internal/domain/vacancy"
	vacancyuc "github.com/kailas-cloud/hhdex/internal/usecase/vacancy"
)

// Vacancy is a normalized hh.ru vacancy. Vacancies order by salary only.
type Vacancy = vacancy.Vacancy

// Fields is the flat record form of a vacancy.
type Fields = vacancy.Fields

// CollectResult describes one merge of fetched vacancies into a file.
type CollectResult struct {
	File    string
	Fetched int // records returned by the source
	Added   int // records that were not in the file yet
	Total   int // records in the file after the merge
}

// SearchOption narrows a search or a stored listing.
type SearchOption func(*searchParams)

type searchParams struct {
	keywords []string
	top      int
}

// Keywords keeps only vacancies whose name, requirement and responsibility
// text contains every keyword (case-insensitive).
func Keywords(kw ...string) SearchOption {
	return func(p *searchParams) {
		p.keywords = append(p.keywords, kw...)
	}
}

// Top returns the n best-paid vacancies in descending salary order.
func Top(n int) SearchOption {
	return func(p *searchParams) {
		p.top = n
	}
}

func applySearch(opts []SearchOption) searchParams {
	var p searchParams
	for _, o := range opts {
		o(&p)
	}
	return p
}

// Search fetches live vacancies for text from hh.ru.
func (c *Client) Search(ctx context.Context, text string, opts ...SearchOption) (vs []Vacancy, err error) {
	start := time.Now()
	defer func() { c.obs.observeN("vacancies.search", start, len(vs), err) }()

	p := applySearch(opts)
	vs, err = c.vacancySvc.Search(ctx, vacancyuc.Query{Text: text, Keywords: p.keywords, Top: p.top})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", text, err)
	}
	return vs, nil
}

// Collect fetches vacancies for keyword and merges them into file without duplicates.
// The file format follows its extension (.json, .xlsx, .parquet); a bare name gets .json.
func (c *Client) Collect(ctx context.Context, keyword, file string) (res CollectResult, err error) {
	start := time.Now()
	defer func() { c.obs.observeN("vacancies.collect", start, res.Added, err) }()

	r, err := c.vacancySvc.Collect(ctx, keyword, file)
	if err != nil {
		return CollectResult{}, fmt.Errorf("collect %q into %s: %w", keyword, file, err)
	}
	return CollectResult(r), nil
}

// Stored returns vacancies saved in file.
func (c *Client) Stored(ctx context.Context, file string, opts ...SearchOption) (vs []Vacancy, err error) {
	start := time.Now()
	defer func() { c.obs.observeN("vacancies.stored", start, len(vs), err) }()

	p := applySearch(opts)
	vs, err = c.vacancySvc.Stored(ctx, file, p.keywords, p.top)
	if err != nil {
		return nil, fmt.Errorf("stored %s: %w", file, err)
	}
	return vs, nil
}

// Clear empties file.
func (c *Client) Clear(ctx context.Context, file string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("vacancies.clear", start, err) }()

	if err = c.vacancySvc.Clear(ctx, file); err != nil {
		return fmt.Errorf("clear %s: %w", file, err)
	}
	return nil
}
