// SPDX-License-Identifier: ice License 1.0

package tracking

import (
	"context"
	stdlibtime "time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ice-blockchain/screens/log"
)

// newMetrics uses the global meter provider, so it has to be configured by the host before the client is built.
func newMetrics() metricsRecorder {
	m, err := newOtelMetrics(otel.Meter(meterName))
	if err != nil {
		log.Warn("analytics/tracking metrics initialization failed, using no-op recorder", "error", err.Error())

		return noopMetrics{}
	}

	return m
}

func newOtelMetrics(meter metric.Meter) (*otelMetrics, error) {
	dispatched, err := meter.Int64Counter("tracking.events.dispatched",
		metric.WithDescription("Number of events sent to the collector"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create tracking.events.dispatched counter")
	}
	rejected, err := meter.Int64Counter("tracking.events.rejected",
		metric.WithDescription("Number of events rejected because of an invalid configuration"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create tracking.events.rejected counter")
	}
	dwell, err := meter.Int64Histogram("tracking.screen.dwell_ms",
		metric.WithDescription("Time spent on a screen before leaving it"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create tracking.screen.dwell_ms histogram")
	}

	return &otelMetrics{dispatched: dispatched, rejected: rejected, dwell: dwell}, nil
}

func (m *otelMetrics) recordDispatch(ctx context.Context, eventType string, delivered bool) {
	m.dispatched.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", eventType),
		attribute.Bool("success", delivered),
	))
}

func (m *otelMetrics) recordRejection(ctx context.Context, eventType string) {
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("type", eventType)))
}

func (m *otelMetrics) recordDwell(ctx context.Context, dwell stdlibtime.Duration) {
	m.dwell.Record(ctx, dwell.Milliseconds())
}

func (noopMetrics) recordDispatch(context.Context, string, bool) {}

func (noopMetrics) recordRejection(context.Context, string) {}

func (noopMetrics) recordDwell(context.Context, stdlibtime.Duration) {}
