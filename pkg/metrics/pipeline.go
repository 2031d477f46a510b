package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics tracks RFP processing outcomes and stage timings.
type PipelineMetrics struct {
	processed     *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	matchScore    prometheus.Histogram
	unmatched     prometheus.Counter
}

// NewPipelineMetrics registers the pipeline metrics on the provided registerer.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	if reg == nil {
		return &PipelineMetrics{}
	}
	processed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rfp_processed_total",
		Help: "RFP documents processed, labeled by outcome.",
	}, []string{"outcome"})
	stageDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rfp_stage_duration_seconds",
		Help:    "Duration of each pipeline stage in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})
	matchScore := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "rfp_match_score",
		Help:    "Match score of best candidates per requirement.",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	})
	unmatched := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rfp_unmatched_requirements_total",
		Help: "Requirements that produced no catalog match.",
	})
	reg.MustRegister(processed, stageDuration, matchScore, unmatched)
	return &PipelineMetrics{
		processed:     processed,
		stageDuration: stageDuration,
		matchScore:    matchScore,
		unmatched:     unmatched,
	}
}

// IncProcessed increments the processed counter for the given outcome.
func (p *PipelineMetrics) IncProcessed(outcome string) {
	if p == nil || p.processed == nil {
		return
	}
	p.processed.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveStage records the duration of a pipeline stage.
func (p *PipelineMetrics) ObserveStage(stage string, duration time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(normalizeLabel(stage)).Observe(duration.Seconds())
}

// ObserveMatchScore records the best match score for a requirement.
func (p *PipelineMetrics) ObserveMatchScore(score float64) {
	if p == nil || p.matchScore == nil {
		return
	}
	p.matchScore.Observe(score)
}

// IncUnmatched counts a requirement with no admitted catalog match.
func (p *PipelineMetrics) IncUnmatched() {
	if p == nil || p.unmatched == nil {
		return
	}
	p.unmatched.Inc()
}
