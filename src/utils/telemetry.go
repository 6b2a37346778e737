package utils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/jiaming2012/put-finder/src/eventmodels"
)

const otlpEndpointEnv = "OTEL_EXPORTER_OTLP_ENDPOINT"

// SetupOTelSDK bootstraps the OpenTelemetry pipeline when an OTLP endpoint is configured.
// Otherwise the global no-op providers stay in place. Always call shutdown before exiting.
func SetupOTelSDK(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	var shutdownFuncs []func(context.Context) error

	shutdown = func(ctx context.Context) error {
		var err error
		for _, fn := range shutdownFuncs {
			err = errors.Join(err, fn(ctx))
		}
		shutdownFuncs = nil
		return err
	}

	if os.Getenv(otlpEndpointEnv) == "" {
		return shutdown, nil
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	res, err := resource.New(ctx, resource.WithAttributes(attribute.String("service.name", serviceName)))
	if err != nil {
		return nil, fmt.Errorf("SetupOTelSDK: failed to create resource: %w", err)
	}

	traceExporter, err := otlptrace.New(ctx, otlptracehttp.NewClient())
	if err != nil {
		return nil, fmt.Errorf("SetupOTelSDK: failed to create trace exporter: %w", err)
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	shutdownFuncs = append(shutdownFuncs, tracerProvider.Shutdown)
	otel.SetTracerProvider(tracerProvider)

	metricExporter, err := otlpmetrichttp.New(ctx)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("SetupOTelSDK: failed to create metric exporter: %w", err), shutdown(ctx))
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)
	shutdownFuncs = append(shutdownFuncs, meterProvider.Shutdown)
	otel.SetMeterProvider(meterProvider)

	if err := runtime.Start(runtime.WithMinimumReadMemStatsInterval(time.Second)); err != nil {
		return nil, errors.Join(fmt.Errorf("SetupOTelSDK: failed to start runtime metrics: %w", err), shutdown(ctx))
	}

	return shutdown, nil
}

func RecordScreenMetrics(ctx context.Context, provider eventmodels.DataProvider, symbol eventmodels.StockSymbol, result eventmodels.ScreenResult) error {
	meter := otel.Meter("put_finder")

	accepted, err := meter.Int64Counter("put_finder.contracts.accepted", metric.WithDescription("Contracts that passed every screen threshold"))
	if err != nil {
		return fmt.Errorf("RecordScreenMetrics: failed to create accepted counter: %w", err)
	}

	belowThreshold, err := meter.Int64Counter("put_finder.contracts.below_threshold", metric.WithDescription("Contracts in the PoP range with a too low annual return"))
	if err != nil {
		return fmt.Errorf("RecordScreenMetrics: failed to create below threshold counter: %w", err)
	}

	attrs := metric.WithAttributes(
		attribute.String("provider", string(provider)),
		attribute.String("symbol", symbol.String()),
	)

	accepted.Add(ctx, int64(len(result.Accepted)), attrs)
	belowThreshold.Add(ctx, int64(result.BelowThresholdCount), attrs)

	return nil
}
