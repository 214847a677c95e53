// Package metrics exposes Prometheus metrics for dataset loads, report runs,
// filter requests and HTTP traffic.
//
// A Recorder owns its own registry so tests can create as many as they like
// without colliding on the global default registerer. Every method is safe
// to call on a nil *Recorder, which records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "foodshare"

// Recorder holds the collectors for one process.
type Recorder struct {
	registry *prometheus.Registry

	reportRuns     *prometheus.CounterVec
	reportDuration *prometheus.HistogramVec
	filterRequests *prometheus.CounterVec
	filterRows     prometheus.Histogram
	loadDuration   *prometheus.HistogramVec
	datasetRows    *prometheus.GaugeVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New creates a Recorder. When withRuntime is true the Go runtime and
// process collectors are registered too.
func New(withRuntime bool) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		reportRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_runs_total",
			Help:      "Report executions by report key and outcome.",
		}, []string{"report", "outcome"}),
		reportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Report execution time.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"report"}),
		filterRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_requests_total",
			Help:      "Listing filter requests by number of active constraints.",
		}, []string{"constraints"}),
		filterRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "filter_result_rows",
			Help:      "Rows returned by listing filters.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dataset_load_duration_seconds",
			Help:      "Time to load and validate the dataset.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source", "outcome"}),
		datasetRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Rows per loaded table.",
		}, []string{"table"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	r.registry.MustRegister(
		r.reportRuns,
		r.reportDuration,
		r.filterRequests,
		r.filterRows,
		r.loadDuration,
		r.datasetRows,
		r.httpRequests,
		r.httpDuration,
	)

	if withRuntime {
		r.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// ReportRun records one report execution.
func (r *Recorder) ReportRun(report string, d time.Duration, err error) {
	if r == nil {
		return
	}
	r.reportRuns.WithLabelValues(report, outcome(err)).Inc()
	r.reportDuration.WithLabelValues(report).Observe(d.Seconds())
}

// FilterRun records one listing filter request.
func (r *Recorder) FilterRun(activeConstraints, rows int) {
	if r == nil {
		return
	}
	r.filterRequests.WithLabelValues(strconv.Itoa(activeConstraints)).Inc()
	r.filterRows.Observe(float64(rows))
}

// DatasetLoad records a load attempt and, on success, the row counts.
func (r *Recorder) DatasetLoad(source string, d time.Duration, err error, rows map[string]int) {
	if r == nil {
		return
	}
	r.loadDuration.WithLabelValues(source, outcome(err)).Observe(d.Seconds())
	for table, n := range rows {
		r.datasetRows.WithLabelValues(table).Set(float64(n))
	}
}

// Middleware records request counts and latency. route resolves the label
// for a request, typically the matched chi route pattern.
func (r *Recorder) Middleware(route func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if r == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rec, req)

			label := route(req)
			r.httpRequests.WithLabelValues(req.Method, label, strconv.Itoa(rec.status)).Inc()
			r.httpDuration.WithLabelValues(req.Method, label).Observe(time.Since(start).Seconds())
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
