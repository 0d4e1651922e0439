// Package metrics exports A* search statistics as Prometheus collectors and
// OpenTelemetry spans. Both attach to a session through astar hook options,
// so the search engine itself stays free of instrumentation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/katalvlaran/gridstar/astar"
	"github.com/katalvlaran/gridstar/gridgraph"
)

// Recorder feeds Prometheus collectors from search hooks. One Recorder may
// serve many sequential runs; it is not safe for concurrent runs.
type Recorder struct {
	heuristic string

	runs     *prometheus.CounterVec   // by status, heuristic
	duration *prometheus.HistogramVec // by heuristic
	expanded prometheus.Counter
	opened   prometheus.Counter
	relaxed  prometheus.Counter
	pathCost prometheus.Histogram

	started time.Time
	now     func() time.Time
}

// NewRecorder registers the search collectors with reg. heuristic labels every
// observation so runs with different heuristics can be compared.
// Registering twice on the same registry panics, as with promauto.
func NewRecorder(reg prometheus.Registerer, heuristic string) *Recorder {
	f := promauto.With(reg)

	return &Recorder{
		heuristic: heuristic,
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gridstar_search_runs_total",
			Help: "Completed searches by terminal status",
		}, []string{"status", "heuristic"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gridstar_search_duration_seconds",
			Help:    "Search wall time from run start to terminal status",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 16), // 10µs to ~330ms
		}, []string{"heuristic"}),
		expanded: f.NewCounter(prometheus.CounterOpts{
			Name: "gridstar_search_expanded_total",
			Help: "Cells closed across all searches",
		}),
		opened: f.NewCounter(prometheus.CounterOpts{
			Name: "gridstar_search_opened_total",
			Help: "Cells pushed into the frontier across all searches",
		}),
		relaxed: f.NewCounter(prometheus.CounterOpts{
			Name: "gridstar_search_relaxed_total",
			Help: "Frontier entries improved by a cheaper parent",
		}),
		pathCost: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridstar_search_path_cost",
			Help:    "Cost of found paths",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		now: time.Now,
	}
}

// Options returns the hook options that feed this recorder.
func (r *Recorder) Options() []astar.Option {
	return []astar.Option{
		astar.WithOnStart(func(_, _ gridgraph.Cell) {
			r.started = r.now()
		}),
		astar.WithOnOpen(func(gridgraph.Cell, astar.NodeState) {
			r.opened.Inc()
		}),
		astar.WithOnRelax(func(gridgraph.Cell, astar.NodeState) {
			r.relaxed.Inc()
		}),
		astar.WithOnClose(func(gridgraph.Cell, astar.NodeState) {
			r.expanded.Inc()
		}),
		astar.WithOnFinish(func(status astar.Status, _ int) {
			r.runs.WithLabelValues(status.String(), r.heuristic).Inc()
			r.duration.WithLabelValues(r.heuristic).Observe(r.now().Sub(r.started).Seconds())
		}),
	}
}

// ObserveResult records the path cost of a successful result.
func (r *Recorder) ObserveResult(res astar.Result) {
	if res.Found() {
		r.pathCost.Observe(res.Cost)
	}
}

// Totals is a point-in-time read of the recorder's counters.
type Totals struct {
	Succeeded float64
	Failed    float64
	Expanded  float64
	Opened    float64
	Relaxed   float64
}

// Totals reads the current counter values.
func (r *Recorder) Totals() Totals {
	return Totals{
		Succeeded: counterValue(r.runs.WithLabelValues(astar.Succeeded.String(), r.heuristic)),
		Failed:    counterValue(r.runs.WithLabelValues(astar.Failed.String(), r.heuristic)),
		Expanded:  counterValue(r.expanded),
		Opened:    counterValue(r.opened),
		Relaxed:   counterValue(r.relaxed),
	}
}

func counterValue(c prometheus.Counter) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}

	return m.GetCounter().GetValue()
}
