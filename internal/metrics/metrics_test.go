package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/erazemk/garderoba/internal/model"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler := m.Middleware(mux)

	for _, path := range []string{"/api/items/1", "/api/items/2", "/nope"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "GET /api/items/{id}", "404")); got != 2 {
		t.Errorf("expected 2 requests for item route, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Errorf("expected 1 unmatched request, got %v", got)
	}
}

func TestHTTPMetricsNilRegisterer(t *testing.T) {
	m := NewHTTPMetrics(nil)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	m.Middleware(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

type fakeCounter struct {
	counts map[model.Category]int
	err    error
}

func (f fakeCounter) CountByCategory(context.Context) (map[model.Category]int, error) {
	return f.counts, f.err
}

func TestItemsCollector(t *testing.T) {
	c := NewItemsCollector(fakeCounter{counts: map[model.Category]int{
		model.CategoryTops:  3,
		model.CategoryShoes: 1,
	}})

	expected := `
# HELP garderoba_items Stored wardrobe items by category.
# TYPE garderoba_items gauge
garderoba_items{category="accessories"} 0
garderoba_items{category="bottoms"} 0
garderoba_items{category="shoes"} 1
garderoba_items{category="tops"} 3
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected)); err != nil {
		t.Error(err)
	}
}

func TestItemsCollectorError(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(NewItemsCollector(fakeCounter{err: errors.New("db down")}))

	if _, err := reg.Gather(); err == nil {
		t.Error("expected gather error")
	}
}
