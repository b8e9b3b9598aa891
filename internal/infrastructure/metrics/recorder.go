// Package metrics records service measurements on OpenTelemetry instruments.
// The meter provider installed by pkg/observability exports them to Prometheus.
package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Recorder implements port.EvaluationRecorder and records HTTP traffic.
type Recorder struct {
	evaluations    metric.Int64Counter
	evalDuration   metric.Float64Histogram
	eligibleOffers metric.Int64Histogram
	httpRequests   metric.Int64Counter
	httpDuration   metric.Float64Histogram
}

// NewRecorder creates the instruments on meter.
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	evaluations, err := meter.Int64Counter("smartloan.evaluations",
		metric.WithDescription("Eligibility evaluations by decision status and loan type."))
	if err != nil {
		return nil, fmt.Errorf("create evaluations counter: %w", err)
	}
	evalDuration, err := meter.Float64Histogram("smartloan.evaluation.duration",
		metric.WithDescription("Time spent evaluating a profile."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("create evaluation duration histogram: %w", err)
	}
	eligibleOffers, err := meter.Int64Histogram("smartloan.evaluation.eligible_offers",
		metric.WithDescription("Eligible offers per evaluation."),
		metric.WithExplicitBucketBoundaries(0, 1, 2, 3, 4, 5, 8))
	if err != nil {
		return nil, fmt.Errorf("create eligible offers histogram: %w", err)
	}
	httpRequests, err := meter.Int64Counter("smartloan.http.requests",
		metric.WithDescription("HTTP requests by method, route and status."))
	if err != nil {
		return nil, fmt.Errorf("create http requests counter: %w", err)
	}
	httpDuration, err := meter.Float64Histogram("smartloan.http.duration",
		metric.WithDescription("HTTP request latency."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("create http duration histogram: %w", err)
	}

	return &Recorder{
		evaluations:    evaluations,
		evalDuration:   evalDuration,
		eligibleOffers: eligibleOffers,
		httpRequests:   httpRequests,
		httpDuration:   httpDuration,
	}, nil
}

func (r *Recorder) RecordEvaluation(ctx context.Context, status, loanType string, eligibleOffers int, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("status", status),
		attribute.String("loan_type", loanType),
	)
	r.evaluations.Add(ctx, 1, attrs)
	r.evalDuration.Record(ctx, elapsed.Seconds(), attrs)
	r.eligibleOffers.Record(ctx, int64(eligibleOffers), attrs)
}

// RecordHTTPRequest counts one served request. route is the mux pattern, not
// the raw path, to keep label cardinality bounded.
func (r *Recorder) RecordHTTPRequest(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	)
	r.httpRequests.Add(ctx, 1, attrs)
	r.httpDuration.Record(ctx, elapsed.Seconds(), attrs)
}
