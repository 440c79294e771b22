// Package pagecache caches raw hh.ru search results in a key-value store.
package pagecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hhdex/internal/db"
	"github.com/kailas-cloud/hhdex/internal/domain/vacancy"
)

const keySegment = "pages:"

// source is the upstream vacancy loader.
// Scope names the settings besides the keyword that change its results.
type source interface {
	LoadVacancies(ctx context.Context, keyword string) ([]vacancy.Raw, error)
	Scope() string
}

// store is the consumer interface for the page cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	Del(ctx context.Context, keys ...string) error
}

// CachedSource caches keyword search results in a key-value store.
type CachedSource struct {
	inner      source
	store      store
	prefix     string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner source,
	s store,
	prefix string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedSource {
	return &CachedSource{
		inner:      inner,
		store:      s,
		prefix:     prefix + keySegment,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// LoadVacancies returns cached raw records for keyword or loads them from the inner source.
// Entries are keyed by the inner source's scope and keyword together.
// Cache failures are logged and fall through to the source.
func (c *CachedSource) LoadVacancies(ctx context.Context, keyword string) ([]vacancy.Raw, error) {
	key := c.cacheKey(keyword)

	if items, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return items, nil
	}

	c.incCache("miss")

	items, err := c.inner.LoadVacancies(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("load vacancies: %w", err)
	}

	c.putToCache(ctx, key, items)
	return items, nil
}

// Purge deletes every cached keyword.
func (c *CachedSource) Purge(ctx context.Context) (int, error) {
	keys, err := c.store.Scan(ctx, c.prefix+"*")
	if err != nil {
		return 0, fmt.Errorf("scan cached pages: %w", err)
	}
	if err := c.store.Del(ctx, keys...); err != nil {
		return 0, fmt.Errorf("delete cached pages: %w", err)
	}
	return len(keys), nil
}

func (c *CachedSource) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedSource) cacheKey(keyword string) string {
	h := sha256.Sum256([]byte(c.inner.Scope() + "\x00" + keyword))
	return c.prefix + hex.EncodeToString(h[:])
}

func (c *CachedSource) getFromCache(ctx context.Context, key string) ([]vacancy.Raw, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached pages", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var items []vacancy.Raw
	if err := json.Unmarshal(data, &items); err != nil {
		c.logger.Warn("Failed to parse cached pages", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	return items, true
}

func (c *CachedSource) putToCache(ctx context.Context, key string, items []vacancy.Raw) {
	data, err := json.Marshal(items)
	if err != nil {
		c.logger.Warn("Failed to encode pages for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache pages", zap.String("key", key), zap.Error(err))
	}
}
