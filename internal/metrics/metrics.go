package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/horw/issue-title-ai/internal/ai"
	"github.com/horw/issue-title-ai/internal/errors"
	"github.com/horw/issue-title-ai/internal/models"
)

const namespace = "issue_title_ai"

var _ ai.GenerationObserver = (*Recorder)(nil)

// Recorder collects the metrics of one run in its own registry so they can be
// written out as a node-exporter textfile when the run ends.
type Recorder struct {
	registry *prometheus.Registry

	outcomes    *prometheus.CounterVec
	generations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	tokens      *prometheus.CounterVec
	lastRun     prometheus.Gauge
	now         func() time.Time
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		outcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "issues_processed_total",
				Help:      "Issues processed, by outcome status",
			},
			[]string{"status"},
		),
		generations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Model generation calls, by provider, model and result",
			},
			[]string{"provider", "model", "result"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "Latency of model generation calls",
				Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"provider", "model"},
		),
		tokens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tokens_total",
				Help:      "Tokens reported by the provider, by direction",
			},
			[]string{"provider", "model", "direction"},
		),
		lastRun: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time the run finished",
			},
		),
		now: time.Now,
	}
}

// ObserveGeneration implements ai.GenerationObserver.
func (r *Recorder) ObserveGeneration(provider, model string, elapsed time.Duration, usage *models.TokenUsage, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	r.generations.WithLabelValues(provider, model, result).Inc()
	r.duration.WithLabelValues(provider, model).Observe(elapsed.Seconds())

	if usage == nil {
		return
	}
	r.tokens.WithLabelValues(provider, model, "input").Add(float64(usage.InputTokens))
	r.tokens.WithLabelValues(provider, model, "output").Add(float64(usage.OutputTokens))
}

// ObserveOutcomes counts each outcome under its status. Completed outcomes
// are split into updated, suggested and unchanged.
func (r *Recorder) ObserveOutcomes(outcomes []models.Outcome) {
	for _, o := range outcomes {
		r.outcomes.WithLabelValues(outcomeLabel(o)).Inc()
	}
}

// WriteTextfile stamps the run time and writes every metric to path in the
// Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	r.lastRun.Set(float64(r.now().Unix()))
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.NewAppError(errors.TypeInternal, "failed to write metrics file", err).
			WithContext("path", path)
	}
	return nil
}

// Gatherer exposes the registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

func outcomeLabel(o models.Outcome) string {
	switch o.Status() {
	case models.OutcomeFailed:
		return "failed"
	case models.OutcomeSkipped:
		return "skipped"
	}
	switch {
	case o.Updated && o.Improved():
		return "updated"
	case o.Improved():
		return "suggested"
	default:
		return "unchanged"
	}
}
