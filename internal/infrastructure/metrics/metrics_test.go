package metrics

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"prefacturation_service/internal/domain/entities"
	"prefacturation_service/internal/domain/reconciliation"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Observe(t *testing.T) {
	m := NewMetrics()

	m.ObserveOperation("validate", nil)
	m.ObserveOperation("validate", fmt.Errorf("%w: blocked", reconciliation.ErrInvalidState))
	m.ObserveTransition(entities.PrefacturationStatusGenerated, entities.PrefacturationStatusDiscrepancyDetected)
	m.ObserveDiscrepancies([]entities.Discrepancy{
		{Type: entities.DiscrepancyTypePrice, Status: entities.DiscrepancyStatusOpen},
		{Type: entities.DiscrepancyTypePrice, Status: entities.DiscrepancyStatusAccepted},
		{Type: entities.DiscrepancyTypeDistance, Status: entities.DiscrepancyStatusOpen},
	})

	if got := testutil.ToFloat64(m.operations.WithLabelValues("validate", "ok")); got != 1 {
		t.Fatalf("expected 1 ok validate, got %v", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("validate", "invalid_state")); got != 1 {
		t.Fatalf("expected 1 invalid_state validate, got %v", got)
	}
	if got := testutil.ToFloat64(m.transitions.WithLabelValues("generated", "discrepancy_detected")); got != 1 {
		t.Fatalf("expected 1 transition, got %v", got)
	}
	if got := testutil.ToFloat64(m.discrepancies.WithLabelValues("price")); got != 1 {
		t.Fatalf("expected 1 open price discrepancy, got %v", got)
	}
}

func TestMetrics_Tracker(t *testing.T) {
	m := NewMetrics()
	err := errors.New("boom")
	if got := m.Track("sweep").End(err); got != err {
		t.Fatalf("expected error passthrough, got %v", got)
	}
	_ = m.Track("sweep").End(nil)

	if got := testutil.ToFloat64(m.jobRuns.WithLabelValues("sweep", "failure")); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}
	if got := testutil.ToFloat64(m.jobRuns.WithLabelValues("sweep", "success")); got != 1 {
		t.Fatalf("expected 1 success, got %v", got)
	}
}

func TestMetrics_GinMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/v1/prefacturations/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/prefacturations/pf-1", nil))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `prefacturation_http_requests_total{code="200",route="/v1/prefacturations/:id"} 1`) {
		t.Fatalf("expected request counter in output, got:\n%s", w.Body.String())
	}
}

func TestMetrics_NewServer(t *testing.T) {
	m := NewMetrics()
	_ = m.Track("carrier_timeout_sweep").End(nil)

	srv := m.NewServer(":9091")
	if srv.Addr != ":9091" {
		t.Fatalf("unexpected addr %q", srv.Addr)
	}
	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	res, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if !strings.Contains(string(body), `prefacturation_jobs_total{job="carrier_timeout_sweep",status="success"} 1`) {
		t.Fatalf("job counter missing from scrape:\n%s", body)
	}

	other, err := http.Get(ts.URL + "/v1/ping")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	other.Body.Close()
	if other.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 outside /metrics, got %d", other.StatusCode)
	}
}
