// Package scheduler runs periodic vacancy collection on a cron spec.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hhdex/internal/logger"
	"github.com/kailas-cloud/hhdex/internal/metrics"
	"github.com/kailas-cloud/hhdex/internal/usecase/vacancy"
)

// Collector merges fetched vacancies into a file.
type Collector interface {
	Collect(ctx context.Context, keyword, file string) (vacancy.CollectResult, error)
}

// Config holds the collection schedule.
type Config struct {
	Spec     string // cron spec, e.g. "@every 6h"
	Keywords []string
	File     string
}

// Scheduler wraps robfig/cron and runs one collection per keyword on every tick.
type Scheduler struct {
	cron      *cron.Cron
	collector Collector
	cfg       Config
	logger    *zap.Logger
	wg        sync.WaitGroup
}

// New creates a Scheduler. Overlapping ticks are skipped while a cycle is still running.
func New(collector Collector, cfg Config, log *zap.Logger) *Scheduler {
	cl := cronLogger{log: log}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		collector: collector,
		cfg:       cfg,
		logger:    log,
	}
}

// Start registers the job and starts the scheduler. Also runs one cycle
// immediately so the file is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	ctx = logger.ContextWithLogger(ctx, s.logger)

	if _, err := s.cron.AddFunc(s.cfg.Spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("add cron job %q: %w", s.cfg.Spec, err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started",
		zap.String("spec", s.cfg.Spec),
		zap.Strings("keywords", s.cfg.Keywords),
		zap.String("file", s.cfg.File),
	)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.RunOnce(ctx)
	}()

	return nil
}

// Stop stops the scheduler and waits for running cycles until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()

	waited := make(chan struct{})
	go func() {
		<-done.Done()
		s.wg.Wait()
		close(waited)
	}()

	select {
	case <-waited:
		s.logger.Info("Scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out", zap.Error(ctx.Err()))
	}
}

// RunOnce collects every configured keyword into the configured file.
// A failing keyword is logged and does not stop the cycle.
func (s *Scheduler) RunOnce(ctx context.Context) {
	log := logger.FromContext(ctx)
	log.Info("Collection cycle started")

	failed := 0
	for _, kw := range s.cfg.Keywords {
		if ctx.Err() != nil {
			log.Warn("Collection cycle interrupted", zap.Error(ctx.Err()))
			metrics.CollectRunsTotal.WithLabelValues("interrupted").Inc()
			return
		}
		if _, err := s.collector.Collect(ctx, kw, s.cfg.File); err != nil {
			failed++
			log.Error("Collect failed", zap.String("keyword", kw), zap.Error(err))
		}
	}

	status := "ok"
	if failed > 0 {
		status = "error"
	}
	metrics.CollectRunsTotal.WithLabelValues(status).Inc()
	log.Info("Collection cycle complete", zap.Int("keywords", len(s.cfg.Keywords)), zap.Int("failed", failed))
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	log *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
