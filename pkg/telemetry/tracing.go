// Пакет telemetry — OpenTelemetry для хоста страниц и CLI: экспорт спанов по OTLP/HTTP,
// спаны пользовательских сценариев и исходящих вызовов бэкенда магазина.
package telemetry

import (
	"context"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName — имя трейсера сценариев магазина.
const InstrumentationName = "github.com/Gunvolt24/storefront"

// Options — параметры экспорта.
type Options struct {
	ServiceName string  // пусто — "storefront"
	Endpoint    string  // host:port OTLP/HTTP коллектора; пусто — localhost:4318
	SampleRatio float64 // доля корневых трасс, обрезается до [0..1]
}

func (o Options) withDefaults() Options {
	if o.ServiceName == "" {
		o.ServiceName = "storefront"
	}
	if o.Endpoint == "" {
		o.Endpoint = "localhost:4318"
	}
	o.SampleRatio = min(max(o.SampleRatio, 0), 1)
	return o
}

// Setup — OTLP/HTTP экспортёр (без TLS), глобальный провайдер и пропагаторы
// TraceContext+Baggage. Возвращает Shutdown провайдера.
func Setup(ctx context.Context, opts Options) (func(context.Context) error, error) {
	opts = opts.withDefaults()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(opts.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tp := NewProvider(opts, sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown, nil
}

// NewProvider — провайдер с ресурсом сервиса и ParentBased-семплером:
// решение вызывающей стороны (traceparent) уважается, корневые трассы режутся по доле.
func NewProvider(opts Options, extra ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	opts = opts.withDefaults()
	base := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opts.SampleRatio))),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(opts.ServiceName),
		)),
	}
	return sdktrace.NewTracerProvider(append(base, extra...)...)
}

// StartSpan — спан сценария (checkout и т.п.) на глобальном провайдере;
// без Setup провайдер no-op.
func StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(InstrumentationName).Start(ctx, name)
}

// HTTPTransport — клиентский транспорт с исходящими спанами вызовов бэкенда магазина:
// имя спана "storefront.gateway <action>". base == nil — http.DefaultTransport.
func HTTPTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return otelhttp.NewTransport(base,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			if action := r.URL.Query().Get("action"); action != "" {
				return "storefront.gateway " + action
			}
			return "storefront.gateway " + r.Method
		}),
	)
}
