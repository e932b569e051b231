package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"prefacturation_service/internal/domain/entities"
	"prefacturation_service/internal/domain/reconciliation"
	"prefacturation_service/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes Prometheus collectors for the reconciliation workflow, the
// HTTP API and the background jobs.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	operations      *prometheus.CounterVec
	transitions     *prometheus.CounterVec
	discrepancies   *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	jobRuns         *prometheus.CounterVec
	jobDuration     *prometheus.HistogramVec
}

var _ interfaces.IReconciliationMetrics = (*Metrics)(nil)

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "prefacturation_operations_total",
		Help: "Workflow operations partitioned by operation and outcome.",
	}, []string{"operation", "outcome"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "prefacturation_status_transitions_total",
		Help: "Displayed status changes of prefacturations.",
	}, []string{"from", "to"})
	discrepancies := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "prefacturation_discrepancies_detected_total",
		Help: "Open discrepancies produced by invoice detection, per field.",
	}, []string{"type"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "prefacturation_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "prefacturation_http_request_duration_seconds",
		Help:    "HTTP request duration per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	jobRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "prefacturation_jobs_total",
		Help: "Background job executions partitioned by job name and status.",
	}, []string{"job", "status"})
	jobDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "prefacturation_job_duration_seconds",
		Help:    "Duration in seconds of background job executions.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	registry.MustRegister(operations, transitions, discrepancies, requests, duration, jobRuns, jobDuration)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		operations:      operations,
		transitions:     transitions,
		discrepancies:   discrepancies,
		requestsTotal:   requests,
		requestDuration: duration,
		jobRuns:         jobRuns,
		jobDuration:     jobDuration,
	}
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// NewServer returns a server exposing only /metrics, for processes without
// the HTTP API.
func (m *Metrics) NewServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
}

func (m *Metrics) ObserveOperation(operation string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, outcome(err)).Inc()
}

func (m *Metrics) ObserveTransition(from, to entities.PrefacturationStatus) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(string(from), string(to)).Inc()
}

func (m *Metrics) ObserveDiscrepancies(discrepancies []entities.Discrepancy) {
	if m == nil {
		return
	}
	for _, d := range discrepancies {
		if d.Status == entities.DiscrepancyStatusOpen {
			m.discrepancies.WithLabelValues(string(d.Type)).Inc()
		}
	}
}

// GinMiddleware records request count and duration per matched route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Tracker instruments a single job run.
type Tracker struct {
	metrics *Metrics
	job     string
	start   time.Time
}

func (m *Metrics) Track(job string) *Tracker {
	return &Tracker{metrics: m, job: job, start: time.Now()}
}

// End records the run and returns err untouched.
func (t *Tracker) End(err error) error {
	if t == nil || t.metrics == nil {
		return err
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	t.metrics.jobRuns.WithLabelValues(t.job, status).Inc()
	t.metrics.jobDuration.WithLabelValues(t.job).Observe(time.Since(t.start).Seconds())
	return err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, reconciliation.ErrValidation):
		return "validation"
	case errors.Is(err, reconciliation.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, reconciliation.ErrMissingFacts):
		return "missing_facts"
	case errors.Is(err, reconciliation.ErrInvalidSnapshot):
		return "invalid_snapshot"
	case errors.Is(err, reconciliation.ErrConcurrentModification):
		return "conflict"
	default:
		return "error"
	}
}
