package hhdex

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	baseURL   string
	userAgent string
	area      int
	perPage   int
	maxPages  int
	timeout   time.Duration

	dataDir string

	redisAddrs    []string
	redisPassword string
	cacheTTL      time.Duration
	cachePrefix   string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		baseURL:     "https://api.hh.ru",
		userAgent:   "HH-User-Agent",
		area:        113,
		perPage:     100,
		maxPages:    20,
		timeout:     15 * time.Second,
		dataDir:     "data",
		cacheTTL:    15 * time.Minute,
		cachePrefix: "hhdex:",
	}
}

// WithSource overrides the hh.ru API base URL and User-Agent header.
func WithSource(baseURL, userAgent string) Option {
	return optionFunc(func(c *clientConfig) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
		if userAgent != "" {
			c.userAgent = userAgent
		}
	})
}

// WithArea sets the hh.ru area id. Defaults to 113 (Russia).
func WithArea(area int) Option {
	return optionFunc(func(c *clientConfig) {
		c.area = area
	})
}

// WithPaging sets the page size and the number of pages fetched per search.
// perPage is capped at 100 and perPage*maxPages at 2000 by hh.ru.
func WithPaging(perPage, maxPages int) Option {
	return optionFunc(func(c *clientConfig) {
		c.perPage = perPage
		c.maxPages = maxPages
	})
}

// WithTimeout sets the per-request timeout for the hh.ru API.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithDataDir sets the directory holding vacancy files. Defaults to "data".
func WithDataDir(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.dataDir = dir
	})
}

// WithRedis enables the search page cache on a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.redisAddrs = []string{addr}
		c.redisPassword = password
	})
}

// WithCacheTTL sets how long cached search pages live. Default: 15 minutes.
func WithCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
