package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/jobboard/config"
	"github.com/Gunvolt24/jobboard/internal/kafka"
	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/Gunvolt24/jobboard/internal/repo/postgres"
	rest "github.com/Gunvolt24/jobboard/internal/transport/http"
	"github.com/Gunvolt24/jobboard/internal/txn"
	"github.com/Gunvolt24/jobboard/internal/usecase"
	"github.com/Gunvolt24/jobboard/pkg/logger"
	"github.com/Gunvolt24/jobboard/pkg/metrics"
	"github.com/Gunvolt24/jobboard/pkg/telemetry"
	"github.com/gin-gonic/gin"
)

// App — собранное приложение и его внешние интерфейсы (HTTP, consumer).
type App struct {
	Logger          ports.Logger          // логгер
	HTTPServer      *http.Server          // HTTP-сервер
	KafkaConsumer   ports.MessageConsumer // консьюмер сообщений
	gracefulTimeout time.Duration         // время ожидания завершения HTTP-сервера
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

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Ресурсы закрываются в обратном порядке, в том числе при ошибке сборки.
	var closers []func()
	release := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
	}
	fail := func(err error) (*App, Cleanup, error) {
		release()
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Пул подключений Postgres и схема.
	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, pool.Close)
	if cfg.Postgres.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			return fail(err)
		}
	}

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, telemetry.Config{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
			Insecure:    cfg.Tracing.Insecure,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			closers = append(closers, func() {
				if terr := setup(context.Background()); terr != nil {
					logg.Warnf(ctx, "shutdown tracing: %v", terr)
				}
			})
		}
	}

	// Кэш и блокировки.
	backend, err := newCacheBackend(ctx, cfg, logg)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, func() {
		if cErr := backend.close(); cErr != nil {
			logg.Warnf(ctx, "cache backend close: %v", cErr)
		}
	})

	// Внешние системы: файлы, каталог пользователей, брокер.
	assets, err := newAssetStorage(ctx, cfg.S3, logg)
	if err != nil {
		return fail(err)
	}
	users, closeUsers, err := newUserDirectory(cfg.UserDirectory)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, func() { _ = closeUsers() })

	producer := kafka.NewProducer(&kafka.ProducerConfig{
		Brokers:      cfg.Kafka.Brokers,
		Topic:        cfg.Kafka.Topic,
		WriteTimeout: cfg.Kafka.WriteTimeout,
	})
	closers = append(closers, func() {
		if pErr := producer.Close(); pErr != nil {
			logg.Warnf(ctx, "kafka producer close error: %v", pErr)
		}
	})

	// Сборка зависимостей доменного слоя.
	tx := txn.NewManager(pool, backend.cache, logg)
	ttl := cfg.Cache.TTL

	categories := usecase.NewCategoryService(postgres.NewCategoryRepository(pool), tx, backend.cache, assets, logg, ttl)
	jobs := usecase.NewJobService(postgres.NewJobRepository(pool), categories, backend.locker, tx, backend.cache, assets, logg, ttl)
	offerRepo := postgres.NewOfferRepository(pool)
	adverts := usecase.NewAdvertService(postgres.NewAdvertRepository(pool), offerRepo, jobs, users, tx, backend.cache, assets, logg, ttl)
	offers := usecase.NewOfferService(offerRepo, adverts, users, producer, tx, backend.cache, logg, ttl)
	notifications := usecase.NewNotificationService(postgres.NewNotificationRepository(pool), logg)
	sessions := usecase.NewSessionService(backend.cache, cfg.Cache.SessionTTL, logg)

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(rest.Services{
		Categories:    categories,
		Jobs:          jobs,
		Adverts:       adverts,
		Offers:        offers,
		Notifications: notifications,
		Sessions:      sessions,
	}, logg, cfg.HTTP.HandlerTimeout)
	var routerOpts []rest.RouterOption
	if cfg.HTTP.SessionBinding {
		logg.Warnf(ctx, "session binding endpoint is open: any caller can bind a token to any user (demo only)")
		routerOpts = append(routerOpts, rest.WithSessionBinding())
	}
	router := rest.NewRouter(httpHandler, otelServiceName, routerOpts...)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	// Консьюмер уведомлений.
	kafkaCfg := kafka.ConsumerConfig{
		Brokers:        cfg.Kafka.Brokers,
		GroupID:        cfg.Kafka.GroupID,
		Topic:          cfg.Kafka.Topic,
		StartOffset:    cfg.Kafka.StartOffset,
		MaxWait:        cfg.Kafka.MaxWait,
		ProcessTimeout: cfg.Kafka.ProcessTimeout,
		RetryInitial:   cfg.Kafka.RetryInitial,
		RetryMax:       cfg.Kafka.RetryMax,
	}
	if err := kafkaCfg.Validate(); err != nil {
		return fail(err)
	}
	consumer := kafka.NewConsumer(&kafkaCfg, notifications, logg)
	closers = append(closers, func() {
		if cErr := consumer.Close(); cErr != nil {
			logg.Warnf(ctx, "kafka consumer close error: %v", cErr)
		}
	})

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		KafkaConsumer:   consumer,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	return app, release, nil
}

// Run — запускает HTTP-сервер и консьюмера; ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	// Запуск консьюмера.
	go func() {
		a.Logger.Infof(ctx, "kafka consumer starting")
		if err := a.KafkaConsumer.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	// Запуск HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
		}
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

	// Остановка Kafka-консьюмера
	if err := a.KafkaConsumer.Close(); err != nil {
		a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
