package extract

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/webfansplz/vuedoc-parser/internal/entry"
)

var (
	tracer = otel.Tracer("vuedoc.extract")
	meter  = otel.Meter("vuedoc.extract")
)

var (
	extractLatency metric.Float64Histogram
	extractTotal   metric.Int64Counter
	entriesByKind  metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		extractLatency, err = meter.Float64Histogram(
			"vuedoc_extract_duration_seconds",
			metric.WithDescription("Duration of per-file extraction"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		extractTotal, err = meter.Int64Counter(
			"vuedoc_extract_files_total",
			metric.WithDescription("Total number of files extracted"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		entriesByKind, err = meter.Int64Counter(
			"vuedoc_entries_total",
			metric.WithDescription("Total entries emitted by kind"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func startExtractSpan(ctx context.Context, path string, size int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Extractor.Extract",
		trace.WithAttributes(
			attribute.String("vuedoc.file", path),
			attribute.Int("vuedoc.size", size),
		),
	)
}

func setExtractSpanResult(span trace.Span, language string, components int, err error) {
	span.SetAttributes(
		attribute.String("vuedoc.language", language),
		attribute.Int("vuedoc.components", components),
		attribute.Bool("vuedoc.success", err == nil),
	)
	if err != nil {
		span.RecordError(err)
	}
}

func recordExtractMetrics(ctx context.Context, duration time.Duration, language string, success bool) {
	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("language", language),
		attribute.Bool("success", success),
	)
	extractLatency.Record(ctx, duration.Seconds(), attrs)
	extractTotal.Add(ctx, 1, attrs)
}

func recordEntry(ctx context.Context, kind entry.Kind) {
	if err := initMetrics(); err != nil {
		return
	}
	entriesByKind.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", string(kind)),
	))
}
