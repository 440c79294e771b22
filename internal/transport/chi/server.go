package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hhdex/internal/domain"
	domvac "github.com/kailas-cloud/hhdex/internal/domain/vacancy"
	"github.com/kailas-cloud/hhdex/internal/logger"
	healthuc "github.com/kailas-cloud/hhdex/internal/usecase/health"
	inventoryuc "github.com/kailas-cloud/hhdex/internal/usecase/inventory"
	vacancyuc "github.com/kailas-cloud/hhdex/internal/usecase/vacancy"
	"github.com/kailas-cloud/hhdex/internal/version"
)

// Error codes returned in the "code" field of error responses.
const (
	codeBadRequest        = "bad_request"
	codeValidationFailed  = "validation_failed"
	codeUnsupportedFormat = "unsupported_format"
	codeNotFound          = "not_found"
	codeSourceUnavailable = "source_unavailable"
	codeUnauthorized      = "unauthorized"
	codeInternalError     = "internal_error"
)

// VacancyService runs searches and manages vacancy files.
type VacancyService interface {
	Search(ctx context.Context, q vacancyuc.Query) ([]domvac.Vacancy, error)
	Collect(ctx context.Context, keyword, file string) (vacancyuc.CollectResult, error)
	Stored(ctx context.Context, file string, keywords []string, top int) ([]domvac.Vacancy, error)
	Clear(ctx context.Context, file string) error
}

// InventoryService scans the data directory.
type InventoryService interface {
	Scan(ctx context.Context) (inventoryuc.Report, error)
}

// HealthService reports component health.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}

// CachePurger drops cached search results.
type CachePurger interface {
	Purge(ctx context.Context) (int, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Server serves the hhdex HTTP API.
type Server struct {
	vacancies     VacancyService
	inventory     InventoryService
	health        HealthService
	cache         CachePurger
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. cache can be nil when no cache is configured.
func NewServer(
	vacancies VacancyService,
	inventory InventoryService,
	health HealthService,
	cache CachePurger,
	logger *zap.Logger,
) *Server {
	s := &Server{
		vacancies: vacancies,
		inventory: inventory,
		health:    health,
		cache:     cache,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrUnsupportedFormat, http.StatusBadRequest, codeUnsupportedFormat),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrSourceUnavailable, http.StatusBadGateway, codeSourceUnavailable),
	}
	return s
}

// Register mounts the API routes on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Get("/vacancies", s.SearchVacancies)
	r.Get("/files", s.ListFiles)
	r.Get("/files/{file}/vacancies", s.StoredVacancies)
	r.Post("/files/{file}/vacancies", s.CollectVacancies)
	r.Delete("/files/{file}/vacancies", s.ClearFile)
	r.Delete("/cache", s.PurgeCache)
}

// SearchVacancies handles GET /vacancies?text=&keywords=&top=.
func (s *Server) SearchVacancies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	top, ok := parseTop(w, q.Get("top"))
	if !ok {
		return
	}

	vs, err := s.vacancies.Search(r.Context(), vacancyuc.Query{
		Text:     q.Get("text"),
		Keywords: splitKeywords(q.Get("keywords")),
		Top:      top,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vacancyList(vs))
}

// ListFiles handles GET /files.
func (s *Server) ListFiles(w http.ResponseWriter, r *http.Request) {
	report, err := s.inventory.Scan(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	files := make([]fileResponse, len(report.Files))
	for i, f := range report.Files {
		files[i] = fileResponse{
			Name:      f.Name,
			Format:    f.Format,
			Vacancies: f.Vacancies,
			Usable:    f.Usable(),
			Reason:    string(f.Reason),
		}
	}
	writeJSON(w, http.StatusOK, inventoryResponse{Files: files, Usable: report.Usable})
}

// StoredVacancies handles GET /files/{file}/vacancies?keywords=&top=.
func (s *Server) StoredVacancies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	top, ok := parseTop(w, q.Get("top"))
	if !ok {
		return
	}

	vs, err := s.vacancies.Stored(r.Context(), chi.URLParam(r, "file"), splitKeywords(q.Get("keywords")), top)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vacancyList(vs))
}

// CollectVacancies handles POST /files/{file}/vacancies?text=.
func (s *Server) CollectVacancies(w http.ResponseWriter, r *http.Request) {
	res, err := s.vacancies.Collect(r.Context(), r.URL.Query().Get("text"), chi.URLParam(r, "file"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, collectResponse{
		File:    res.File,
		Fetched: res.Fetched,
		Added:   res.Added,
		Total:   res.Total,
	})
}

// ClearFile handles DELETE /files/{file}/vacancies.
func (s *Server) ClearFile(w http.ResponseWriter, r *http.Request) {
	if err := s.vacancies.Clear(r.Context(), chi.URLParam(r, "file")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PurgeCache handles DELETE /cache.
func (s *Server) PurgeCache(w http.ResponseWriter, r *http.Request) {
	if s.cache != nil {
		n, err := s.cache.Purge(r.Context())
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		s.requestLogger(r).Info("Page cache purged", zap.Int("keys", n))
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Version: version.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func parseTop(w http.ResponseWriter, raw string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	top, err := strconv.Atoi(raw)
	if err != nil || top < 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "top must be a non-negative integer")
		return 0, false
	}
	return top, true
}

func splitKeywords(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrUnsupportedFormat,
		domain.ErrNotFound,
		domain.ErrSourceUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.requestLogger(r)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// requestLogger prefers the request-scoped logger set by the wide event middleware.
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	if l, ok := logger.Lookup(r.Context()); ok {
		return l
	}
	return s.logger
}
