package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhyrak/go-timetable/internal/scheduler"
)

// PromRecorder records planner searches in Prometheus metrics.
type PromRecorder struct {
	searches    *prometheus.CounterVec
	results     *prometheus.HistogramVec
	duration    *prometheus.HistogramVec
	diagnostics *prometheus.CounterVec
}

var _ scheduler.Recorder = (*PromRecorder)(nil)

// NewPromRecorder registers planner metrics on reg, the default registerer
// when nil. Collectors that are already registered are reused.
func NewPromRecorder(reg prometheus.Registerer) (*PromRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	searches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_searches_total",
		Help: "Total number of schedule searches",
	}, []string{"mode", "truncated"})
	results := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "timetable_search_results",
		Help:    "Schedules produced per search before the window filter",
		Buckets: []float64{0, 1, 5, 20, 100, 250, 500, 1000},
	}, []string{"mode"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "timetable_search_duration_seconds",
		Help:    "Time spent in the backtracking search",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})
	diagnostics := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_build_diagnostics_total",
		Help: "Course rows and sections rejected while building courses",
	}, []string{"kind"})

	var err error
	if searches, err = register(reg, searches); err != nil {
		return nil, err
	}
	if results, err = register(reg, results); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if diagnostics, err = register(reg, diagnostics); err != nil {
		return nil, err
	}

	return &PromRecorder{searches: searches, results: results, duration: duration, diagnostics: diagnostics}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (r *PromRecorder) ObserveSearch(mode string, results int, truncated bool, elapsed time.Duration) {
	r.searches.WithLabelValues(mode, strconv.FormatBool(truncated)).Inc()
	r.results.WithLabelValues(mode).Observe(float64(results))
	r.duration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

func (r *PromRecorder) ObserveBuild(report *scheduler.BuildReport) {
	if report == nil {
		return
	}
	r.diagnostics.WithLabelValues("skipped").Add(float64(report.Skipped))
	r.diagnostics.WithLabelValues("invalid").Add(float64(len(report.Invalid)))
	r.diagnostics.WithLabelValues("self_conflict").Add(float64(len(report.Conflicts)))
	r.diagnostics.WithLabelValues("missing").Add(float64(len(report.Missing)))
}

// Handler exposes the metrics gathered by g, the default gatherer when nil.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
