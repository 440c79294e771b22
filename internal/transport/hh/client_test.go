package hh

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kailas-cloud/hhdex/internal/domain"
	"github.com/kailas-cloud/hhdex/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterVacancyMetrics()
	os.Exit(m.Run())
}

// pagedServer serves `pages` pages holding perPage items each.
func pagedServer(t *testing.T, pages, perPage int, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		if r.URL.Path != "/vacancies" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if ua := r.Header.Get("User-Agent"); ua != "hhdex-test" {
			t.Errorf("unexpected User-Agent: %q", ua)
		}

		n, _ := strconv.Atoi(r.URL.Query().Get("page"))
		items := []map[string]any{}
		if n < pages {
			for i := range perPage {
				items = append(items, map[string]any{
					"id":   strconv.Itoa(n*perPage + i),
					"name": "Go developer",
				})
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items":    items,
			"found":    pages * perPage,
			"page":     n,
			"pages":    pages,
			"per_page": perPage,
		})
	}))
}

func newTestClient(url string, maxPages int) *Client {
	return NewClient(Config{
		BaseURL:   url,
		UserAgent: "hhdex-test",
		Area:      113,
		PerPage:   2,
		MaxPages:  maxPages,
		Timeout:   5 * time.Second,
	})
}

func TestLoadVacancies_AllPages(t *testing.T) {
	var calls atomic.Int32
	srv := pagedServer(t, 3, 2, &calls)
	defer srv.Close()

	items, err := newTestClient(srv.URL, 10).LoadVacancies(context.Background(), "golang")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 6 {
		t.Fatalf("items = %d, want 6", len(items))
	}
	if items[0]["id"] != "0" || items[5]["id"] != "5" {
		t.Errorf("unexpected order: first=%v last=%v", items[0]["id"], items[5]["id"])
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestLoadVacancies_MaxPages(t *testing.T) {
	var calls atomic.Int32
	srv := pagedServer(t, 5, 2, &calls)
	defer srv.Close()

	items, err := newTestClient(srv.URL, 2).LoadVacancies(context.Background(), "golang")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 4 {
		t.Errorf("items = %d, want 4", len(items))
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestLoadVacancies_Empty(t *testing.T) {
	srv := pagedServer(t, 0, 2, nil)
	defer srv.Close()

	items, err := newTestClient(srv.URL, 10).LoadVacancies(context.Background(), "cobol")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %d, want 0", len(items))
	}
}

func TestLoadVacancies_QueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("text") != "python" {
			t.Errorf("text = %q", q.Get("text"))
		}
		if q.Get("area") != "113" {
			t.Errorf("area = %q", q.Get("area"))
		}
		if q.Get("per_page") != "2" {
			t.Errorf("per_page = %q", q.Get("per_page"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[],"pages":0}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL, 1).LoadVacancies(context.Background(), "python"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadVacancies_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 1).LoadVacancies(context.Background(), "golang")
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestLoadVacancies_Unreachable(t *testing.T) {
	srv := pagedServer(t, 1, 1, nil)
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url, 1).LoadVacancies(context.Background(), "golang")
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestLoadVacancies_Canceled(t *testing.T) {
	srv := pagedServer(t, 1, 1, nil)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL, 1).LoadVacancies(ctx, "golang")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestScope(t *testing.T) {
	if got := newTestClient("http://unused", 3).Scope(); got != "area=113:per_page=2:max_pages=3" {
		t.Errorf("scope = %q", got)
	}
	if newTestClient("http://unused", 3).Scope() == newTestClient("http://unused", 4).Scope() {
		t.Error("max pages must change the scope")
	}
}

func TestHealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("per_page") != "1" {
			t.Errorf("per_page = %q", r.URL.Query().Get("per_page"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[],"pages":0}`))
	}))
	defer srv.Close()

	if err := newTestClient(srv.URL, 1).HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHealthCheck_Down(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if err := newTestClient(srv.URL, 1).HealthCheck(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
