// Package observe records OpenTelemetry metrics for pun searches.
//
// Tests should build their own [Metrics] with [NewMetrics] and a
// ManualReader-backed provider; [DefaultMetrics] uses the global provider,
// which discards everything until one is installed.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/bastiangx/wordplay"

// Candidate kinds and search outcomes used as attribute values.
const (
	KindPortmanteau = "portmanteau"
	KindRhyme       = "rhyme"

	StatusOK       = "ok"
	StatusCached   = "cached"
	StatusCanceled = "canceled"
	StatusError    = "error"
)

// Metrics holds the search instruments. Safe for concurrent use.
type Metrics struct {
	// SearchDuration tracks end-to-end search latency. Attribute: status.
	SearchDuration metric.Float64Histogram

	// PairsEvaluated counts word pairs handed to the builders.
	PairsEvaluated metric.Int64Counter

	// Candidates counts accepted puns before ranking. Attribute: kind.
	Candidates metric.Int64Counter

	// UnknownSeeds counts seeds with no neighbors or pronunciation.
	UnknownSeeds metric.Int64Counter
}

var latencyBuckets = []float64{
	0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
}

// NewMetrics creates the instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.SearchDuration, err = m.Float64Histogram("wordplay.search.duration",
		metric.WithDescription("Latency of a pun search."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.PairsEvaluated, err = m.Int64Counter("wordplay.search.pairs",
		metric.WithDescription("Word pairs evaluated by the builders."),
	); err != nil {
		return nil, err
	}
	if met.Candidates, err = m.Int64Counter("wordplay.search.candidates",
		metric.WithDescription("Accepted candidates by kind, before ranking."),
	); err != nil {
		return nil, err
	}
	if met.UnknownSeeds, err = m.Int64Counter("wordplay.search.unknown_seeds",
		metric.WithDescription("Seeds that could not be resolved."),
	); err != nil {
		return nil, err
	}
	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level instance built on
// otel.GetMeterProvider. It panics if instrument creation fails.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordSearch records one finished search.
func (m *Metrics) RecordSearch(ctx context.Context, elapsed time.Duration, status string) {
	m.SearchDuration.Record(ctx, elapsed.Seconds(),
		metric.WithAttributes(attribute.String("status", status)),
	)
}

// RecordCandidates adds n accepted candidates of kind.
func (m *Metrics) RecordCandidates(ctx context.Context, kind string, n int) {
	m.Candidates.Add(ctx, int64(n),
		metric.WithAttributes(attribute.String("kind", kind)),
	)
}
