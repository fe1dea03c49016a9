package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewWithRegistererIsolated(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer(reg)

	m.SearchQueriesTotal.WithLabelValues("hit").Inc()
	m.SearchQueriesTotal.WithLabelValues("hit").Inc()
	m.IndexTerms.Set(42)

	if got := testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("hit")); got != 2 {
		t.Errorf("search_queries_total{hit} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.IndexTerms); got != 42 {
		t.Errorf("index_terms = %v, want 42", got)
	}

	// A second registry must accept the same collectors.
	NewWithRegisterer(prometheus.NewRegistry())
}

func TestServerServesIndexPage(t *testing.T) {
	srv := NewServer(0)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/metrics") {
		t.Errorf("index page missing metrics link: %q", rec.Body.String())
	}
}
