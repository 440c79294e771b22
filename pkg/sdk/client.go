package hhdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbRedis "github.com/kailas-cloud/hhdex/internal/db/redis"
	"github.com/kailas-cloud/hhdex/internal/metrics"
	"github.com/kailas-cloud/hhdex/internal/repository/file"
	"github.com/kailas-cloud/hhdex/internal/repository/pagecache"
	"github.com/kailas-cloud/hhdex/internal/transport/hh"
	healthuc "github.com/kailas-cloud/hhdex/internal/usecase/health"
	inventoryuc "github.com/kailas-cloud/hhdex/internal/usecase/inventory"
	vacancyuc "github.com/kailas-cloud/hhdex/internal/usecase/vacancy"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped out in tests.
type vacancyUseCase interface {
	Search(ctx context.Context, q vacancyuc.Query) ([]Vacancy, error)
	Collect(ctx context.Context, keyword, file string) (vacancyuc.CollectResult, error)
	Stored(ctx context.Context, file string, keywords []string, top int) ([]Vacancy, error)
	Clear(ctx context.Context, file string) error
}

type inventoryUseCase interface {
	Scan(ctx context.Context) (inventoryuc.Report, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

type cachePurger interface {
	Purge(ctx context.Context) (int, error)
}

// Client is the hhdex SDK entry point.
type Client struct {
	cache        *dbRedis.Store
	purger       cachePurger
	vacancySvc   vacancyUseCase
	inventorySvc inventoryUseCase
	healthSvc    healthUseCase
	obs          *observer
}

// New creates a Client. When WithRedis is given, the provided context is used
// for the initial cache readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var store *dbRedis.Store
	if len(cfg.redisAddrs) > 0 {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.redisAddrs,
			Password: cfg.redisPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("hhdex: create redis store: %w", err)
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("hhdex: cache not ready: %w", err)
		}
	}

	return wireClient(cfg, store, obs), nil
}

func (c *clientConfig) validate() error {
	switch {
	case c.perPage <= 0 || c.perPage > 100:
		return fmt.Errorf("hhdex: per page must be in 1..100, got %d", c.perPage)
	case c.maxPages <= 0:
		return fmt.Errorf("hhdex: max pages must be positive, got %d", c.maxPages)
	case c.perPage*c.maxPages > 2000:
		return fmt.Errorf("hhdex: per page * max pages must not exceed 2000, got %d", c.perPage*c.maxPages)
	case c.dataDir == "":
		return errors.New("hhdex: data directory required")
	}
	return nil
}

func wireClient(cfg *clientConfig, store *dbRedis.Store, obs *observer) *Client {
	source := hh.NewClient(hh.Config{
		BaseURL:   cfg.baseURL,
		UserAgent: cfg.userAgent,
		Area:      cfg.area,
		PerPage:   cfg.perPage,
		MaxPages:  cfg.maxPages,
		Timeout:   cfg.timeout,
	})

	c := &Client{obs: obs}

	var (
		vacancySource vacancyuc.Source = source
		cachePinger   healthuc.CachePinger
	)
	if store != nil {
		cached := pagecache.New(source, store, cfg.cachePrefix, cfg.cacheTTL, metrics.PageCacheTotal, zap.NewNop())
		vacancySource = cached
		cachePinger = store
		c.cache = store
		c.purger = cached
	}

	dir := file.NewDir(cfg.dataDir)
	c.vacancySvc = vacancyuc.New(vacancySource, func(name string) (vacancyuc.FileStore, error) {
		return dir.Open(name)
	})
	c.inventorySvc = inventoryuc.New(dir, func(name string) (inventoryuc.FileStore, error) {
		return dir.Open(name)
	})
	c.healthSvc = healthuc.New(cachePinger, source, dir)
	return c
}

// Close releases all resources.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
}

// PurgeCache drops every cached search page and returns how many were removed.
// It is a no-op without a cache.
func (c *Client) PurgeCache(ctx context.Context) (n int, err error) {
	if c.purger == nil {
		return 0, nil
	}
	start := time.Now()
	defer func() { c.obs.observe("cache.purge", start, err) }()

	n, err = c.purger.Purge(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge cache: %w", err)
	}
	return n, nil
}
