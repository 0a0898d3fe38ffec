// Package telemetry instruments the S1-S8 pipeline with Prometheus
// histograms, one per stage, reporting each stage's wall-clock share of
// a layout run as a real metric instead of a comment.
//
// Grounded on Sumatoshi-tech-codefang's internal/observability/prometheus.go
// (an independent prometheus.Registry per handler, served via promhttp),
// simplified to register prometheus/client_golang collectors directly
// rather than routing through an OTel MeterProvider — this module has no
// other OTel surface to share, so that extra layer would only add
// indirection.
package telemetry

import (
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

// Stage names match the pipeline stages S1-S8 run by engine.Engine.
const (
	StagePartition  = "partition"
	StageConflict   = "conflict"
	StageCondense   = "condense"
	StageSeed       = "seed"
	StageFixedpoint = "fixedpoint"
	StageLP         = "lp"
	StageMILP       = "milp"
	StageAggregate  = "aggregate"
)

// Recorder owns one Prometheus registry and a histogram vector labeled by
// stage name; each Engine-level Compute call wraps every stage it runs
// with a call to Observe.
type Recorder struct {
	registry *prometheus.Registry
	duration *prometheus.HistogramVec
}

// New constructs a Recorder with its own registry, so that multiple
// Recorders (e.g. one per test) never collide on global collector
// registration.
func New() *Recorder {
	registry := prometheus.NewRegistry()
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "scheduleblock",
		Name:      "stage_duration_seconds",
		Help:      "Wall-clock time spent in each pipeline stage per Compute call.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage"})
	registry.MustRegister(duration)
	return &Recorder{registry: registry, duration: duration}
}

// Observe records seconds spent in stage.
func (r *Recorder) Observe(stage string, seconds float64) {
	r.duration.WithLabelValues(stage).Observe(seconds)
}

// Handler returns an http.Handler serving this Recorder's registry at a
// Prometheus-compatible /metrics scrape endpoint.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// WriteText writes this Recorder's registry in the Prometheus text
// exposition format to w, for callers (such as a CLI's --metrics flag)
// that want the scrape output without standing up an HTTP server.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
