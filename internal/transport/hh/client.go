// Package hh is the hh.ru vacancy search client.
package hh

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hhdex/internal/domain"
	"github.com/kailas-cloud/hhdex/internal/domain/vacancy"
	"github.com/kailas-cloud/hhdex/internal/logger"
	"github.com/kailas-cloud/hhdex/internal/metrics"
)

const vacanciesPath = "/vacancies"

// Config holds the source client settings.
type Config struct {
	BaseURL   string
	UserAgent string
	Area      int
	PerPage   int
	MaxPages  int
	Timeout   time.Duration
}

// Client loads vacancies page by page from the hh.ru public API.
type Client struct {
	http     *resty.Client
	area     int
	perPage  int
	maxPages int
}

// page is the subset of the search response the client consumes.
type page struct {
	Items   []vacancy.Raw `json:"items"`
	Found   int           `json:"found"`
	Page    int           `json:"page"`
	Pages   int           `json:"pages"`
	PerPage int           `json:"per_page"`
}

// NewClient creates an hh.ru client.
func NewClient(cfg Config) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		httpClient.SetTimeout(cfg.Timeout)
	}

	return &Client{
		http:     httpClient,
		area:     cfg.Area,
		perPage:  cfg.PerPage,
		maxPages: cfg.MaxPages,
	}
}

// LoadVacancies walks result pages for keyword and returns every raw item in API order.
// It stops at max pages, at the last page the API reports, or at the first empty page.
func (c *Client) LoadVacancies(ctx context.Context, keyword string) ([]vacancy.Raw, error) {
	log := logger.FromContext(ctx)

	var items []vacancy.Raw
	for n := 0; n < c.maxPages; n++ {
		p, err := c.fetchPage(ctx, keyword, n, c.perPage)
		if err != nil {
			return nil, err
		}
		items = append(items, p.Items...)
		metrics.VacanciesFetchedTotal.Add(float64(len(p.Items)))

		log.Debug("Fetched vacancy page",
			zap.String("keyword", keyword),
			zap.Int("page", n),
			zap.Int("pages", p.Pages),
			zap.Int("items", len(p.Items)),
		)

		if len(p.Items) == 0 || n+1 >= p.Pages {
			break
		}
	}
	return items, nil
}

// Scope describes the search settings that shape a keyword's result set.
func (c *Client) Scope() string {
	return fmt.Sprintf("area=%d:per_page=%d:max_pages=%d", c.area, c.perPage, c.maxPages)
}

// HealthCheck issues a one-item search and expects 200.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.fetchPage(ctx, "", 0, 1)
	return err
}

func (c *Client) fetchPage(ctx context.Context, keyword string, n, perPage int) (*page, error) {
	var result page

	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("page", strconv.Itoa(n)).
		SetQueryParam("per_page", strconv.Itoa(perPage)).
		SetResult(&result)
	if keyword != "" {
		req.SetQueryParam("text", keyword)
	}
	if c.area > 0 {
		req.SetQueryParam("area", strconv.Itoa(c.area))
	}

	start := time.Now()
	resp, err := req.Get(vacanciesPath)
	metrics.SourceRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.SourceRequestsTotal.WithLabelValues("error").Inc()
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, fmt.Errorf("fetch page %d: %w", n, ctxErr)
		}
		return nil, fmt.Errorf("fetch page %d: %w: %w", n, domain.ErrSourceUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		metrics.SourceRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetch page %d: %w: status %d", n, domain.ErrSourceUnavailable, resp.StatusCode())
	}

	metrics.SourceRequestsTotal.WithLabelValues("ok").Inc()
	return &result, nil
}
