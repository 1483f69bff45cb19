package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Gunvolt24/storefront/config"
	"github.com/Gunvolt24/storefront/internal/gateway"
	"github.com/Gunvolt24/storefront/internal/kafka"
	"github.com/Gunvolt24/storefront/internal/notify"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/internal/state"
	rest "github.com/Gunvolt24/storefront/internal/transport/http"
	"github.com/Gunvolt24/storefront/internal/usecase"
	"github.com/Gunvolt24/storefront/pkg/logger"
	"github.com/Gunvolt24/storefront/pkg/metrics"
	"github.com/Gunvolt24/storefront/pkg/telemetry"
	"github.com/Gunvolt24/storefront/pkg/validate"
)

// App — собранное приложение и его внешние интерфейсы (HTTP, передача заказов).
type App struct {
	Logger          ports.Logger           // логгер
	HTTPServer      *http.Server           // HTTP-сервер страниц и API
	MetricsServer   *http.Server           // отдельный /metrics; nil — только на основном роутере
	Handoff         ports.HandoffPublisher // передача оформленных заказов
	core            *usecase.Storefront    // ядро; его фоновые передачи дожидаются перед Close
	gracefulTimeout time.Duration          // время ожидания завершения HTTP-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// NewStorefront — ядро, общее для хоста страниц и CLI: хранилище состояния,
// источник данных, передача заказов. Состояние сразу читается из хранилища.
func NewStorefront(
	ctx context.Context,
	cfg *config.Config,
	log ports.Logger,
	notifier ports.Notifier,
) (*usecase.Storefront, ports.HandoffPublisher, Cleanup, error) {
	kv, closeKV, err := NewKVStore(ctx, cfg, log)
	if err != nil {
		return nil, nil, func() {}, err
	}

	gwCfg := gateway.Config{
		APIURL:          cfg.Gateway.APIURL,
		UseMock:         cfg.Gateway.UseMock,
		MockDelay:       cfg.Gateway.MockDelay,
		Timeout:         cfg.Gateway.Timeout,
		BreakerEnabled:  cfg.Gateway.BreakerEnabled,
		BreakerFailures: cfg.Gateway.BreakerFailures,
		BreakerCooldown: cfg.Gateway.BreakerCooldown,
	}
	if cfg.Tracing.Enabled {
		gwCfg.Transport = telemetry.HTTPTransport(nil)
	}
	source, err := gateway.New(&gwCfg, log)
	if err != nil {
		closeKV()
		return nil, nil, func() {}, err
	}
	if gwCfg.UsesFixtures() {
		log.Infof(ctx, "data source: fixtures (delay=%s)", cfg.Gateway.MockDelay)
	} else {
		log.Infof(ctx, "data source: remote url=%s timeout=%s breaker=%t", cfg.Gateway.APIURL, cfg.Gateway.Timeout, cfg.Gateway.BreakerEnabled)
	}

	handoff := newHandoffPublisher(ctx, &cfg.Kafka, log)

	svc := usecase.NewStorefront(
		source,
		state.NewStore(kv, log, cfg.State.CartKey, cfg.State.UserKey),
		notifier,
		validate.NewOrderValidator(),
		handoff,
		log,
	)
	svc.Load(ctx)

	cleanup := func() {
		svc.WaitHandoffs()
		if err := handoff.Close(); err != nil {
			log.Warnf(ctx, "handoff publisher close error: %v", err)
		}
		closeKV()
	}
	return svc, handoff, cleanup, nil
}

func newHandoffPublisher(ctx context.Context, cfg *config.Kafka, log ports.Logger) ports.HandoffPublisher {
	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		return kafka.NopPublisher{}
	}
	log.Infof(ctx, "order handoff enabled topic=%s brokers=%v", cfg.Topic, cfg.Brokers)
	return kafka.NewPublisher(&kafka.PublisherConfig{
		Brokers:      cfg.Brokers,
		Topic:        cfg.Topic,
		WriteTimeout: cfg.WriteTimeout,
		MaxAttempts:  cfg.MaxAttempts,
		RetryInitial: cfg.RetryInitial,
		RetryMax:     cfg.RetryMax,
	}, log)
}

// Bootstrap — собирает зависимости хоста страниц и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}
	closeLogger := func() {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.Setup(ctx, telemetry.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	svc, handoff, cleanupCore, err := NewStorefront(ctx, cfg, logg, notify.NewLog(logg))
	if err != nil {
		_ = shutdownTrace(context.Background())
		closeLogger()
		return nil, func() {}, err
	}

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(svc, logg, cfg.HTTP.HandlerTimeout, cfg.Web.StaticDir)
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		MetricsServer:   newMetricsServer(cfg),
		Handoff:         handoff,
		core:            svc,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		cleanupCore()
		closeLogger()
	}

	return app, cleanup, nil
}

// newMetricsServer — отдельный сервер метрик, если задан свой адрес.
func newMetricsServer(cfg *config.Config) *http.Server {
	addr := strings.TrimSpace(cfg.Metrics.Addr)
	if addr == "" || addr == cfg.HTTP.Addr {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout}
}

// Run — запускает HTTP-сервер(ы); ждёт отмены контекста или ошибки и останавливает его.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	// Запуск HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Запуск сервера метрик.
	if a.MetricsServer != nil {
		go func() {
			a.Logger.Infof(ctx, "metrics server starting (addr=%s)", a.MetricsServer.Addr)
			if err := a.MetricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	// Ожидание сигнала остановки или фоновой ошибки.
	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case runErr = <-errCh:
		a.Logger.Errorf(ctx, "http server failed: %v", runErr)
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}
	if a.MetricsServer != nil {
		if err := a.MetricsServer.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warnf(ctx, "metrics server shutdown failed: %v", err)
		}
	}

	// Дожидаемся фоновых передач заказов и закрываем издателя.
	if a.core != nil {
		a.core.WaitHandoffs()
	}
	if a.Handoff != nil {
		if err := a.Handoff.Close(); err != nil {
			a.Logger.Warnf(ctx, "handoff publisher close error: %v", err)
		}
	}

	a.Logger.Infof(ctx, "service stopped")
	return runErr
}
