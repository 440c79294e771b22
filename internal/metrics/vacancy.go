package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Vacancy source and storage metrics.
var (
	SourceRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hhdex",
			Name:      "source_requests_total",
			Help:      "Total number of hh.ru API page requests",
		},
		[]string{"status"}, // "ok" / "error"
	)

	SourceRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "hhdex",
			Name:      "source_request_duration_seconds",
			Help:      "hh.ru API page request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	VacanciesFetchedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hhdex",
			Name:      "vacancies_fetched_total",
			Help:      "Total raw vacancy records received from hh.ru",
		},
	)

	MappingSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hhdex",
			Name:      "mapping_skipped_total",
			Help:      "Raw records dropped because a required field was missing",
		},
	)

	PageCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hhdex",
			Name:      "page_cache_total",
			Help:      "Search page cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	StoreOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hhdex",
			Name:      "store_operations_total",
			Help:      "Vacancy file operations by format and outcome",
		},
		[]string{"format", "op", "status"},
	)

	CollectRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hhdex",
			Name:      "collect_runs_total",
			Help:      "Scheduled collection runs",
		},
		[]string{"status"},
	)
)

var registerVacancyOnce sync.Once

// RegisterVacancyMetrics registers Prometheus vacancy metrics. Must be called once from main.
func RegisterVacancyMetrics() {
	registerVacancyOnce.Do(func() {
		prometheus.MustRegister(
			SourceRequestsTotal,
			SourceRequestDuration,
			VacanciesFetchedTotal,
			MappingSkippedTotal,
			PageCacheTotal,
			StoreOperationsTotal,
			CollectRunsTotal,
		)
	})
}
