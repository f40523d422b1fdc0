package summarizer

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SummaryMetricsRecorder records summarization metrics. The interface keeps
// the Controller decoupled from Prometheus so tests can inject a mock.
type SummaryMetricsRecorder interface {
	// RecordAttempt increments the per-request attempt counter.
	RecordAttempt()

	// RecordOutcome records the terminal outcome of one summarization.
	RecordOutcome(ok bool)

	// RecordDuration records the time taken by one provider call.
	RecordDuration(duration time.Duration)

	// RecordRateLimitWait records a rate-limit-induced wait.
	RecordRateLimitWait(wait time.Duration)
}

// PrometheusSummaryMetrics implements SummaryMetricsRecorder using
// Prometheus metrics registered on the default registry.
type PrometheusSummaryMetrics struct {
	attemptsCounter   prometheus.Counter
	successCounter    prometheus.Counter
	failureCounter    prometheus.Counter
	durationHistogram prometheus.Histogram
	rateLimitWaits    prometheus.Histogram
}

var (
	prometheusMetricsInstance *PrometheusSummaryMetrics
	prometheusMetricsOnce     sync.Once
)

// NewPrometheusSummaryMetrics creates the Prometheus-based metrics recorder.
// A singleton avoids duplicate metric registration when multiple controllers
// are constructed in tests.
func NewPrometheusSummaryMetrics() *PrometheusSummaryMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusSummaryMetrics{
			attemptsCounter: promauto.NewCounter(prometheus.CounterOpts{
				Name: "digest_summarization_attempts_total",
				Help: "Total number of summarization API attempts, including retries",
			}),
			successCounter: promauto.NewCounter(prometheus.CounterOpts{
				Name: "digest_summarization_success_total",
				Help: "Total number of summarizations that produced a genuine summary",
			}),
			failureCounter: promauto.NewCounter(prometheus.CounterOpts{
				Name: "digest_summarization_failure_total",
				Help: "Total number of summarizations degraded to a failure message",
			}),
			durationHistogram: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "digest_summarization_duration_seconds",
				Help:    "Time taken by a single summarization API call",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			}),
			rateLimitWaits: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "digest_summarization_rate_limit_wait_seconds",
				Help:    "Waits imposed by summarization API rate limiting",
				Buckets: []float64{1, 5, 15, 30, 60, 120},
			}),
		}
	})
	return prometheusMetricsInstance
}

// RecordAttempt implements SummaryMetricsRecorder.RecordAttempt.
func (p *PrometheusSummaryMetrics) RecordAttempt() {
	p.attemptsCounter.Inc()
}

// RecordOutcome implements SummaryMetricsRecorder.RecordOutcome.
func (p *PrometheusSummaryMetrics) RecordOutcome(ok bool) {
	if ok {
		p.successCounter.Inc()
	} else {
		p.failureCounter.Inc()
	}
}

// RecordDuration implements SummaryMetricsRecorder.RecordDuration.
func (p *PrometheusSummaryMetrics) RecordDuration(duration time.Duration) {
	p.durationHistogram.Observe(duration.Seconds())
}

// RecordRateLimitWait implements SummaryMetricsRecorder.RecordRateLimitWait.
func (p *PrometheusSummaryMetrics) RecordRateLimitWait(wait time.Duration) {
	p.rateLimitWaits.Observe(wait.Seconds())
}
