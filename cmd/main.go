package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/RaikyD/b2-orders-service/internal/application"
	"github.com/RaikyD/b2-orders-service/internal/config"
	"github.com/RaikyD/b2-orders-service/internal/export"
	"github.com/RaikyD/b2-orders-service/internal/kafka"
	"github.com/RaikyD/b2-orders-service/internal/logger"
	"github.com/RaikyD/b2-orders-service/internal/metrics"
	"github.com/RaikyD/b2-orders-service/internal/migrate"
	"github.com/RaikyD/b2-orders-service/internal/presentation"
	"github.com/RaikyD/b2-orders-service/internal/repository"
)

func main() {
	if err := run(); err != nil {
		logger.Error("service stopped", "err", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run() error {
	// до чтения конфига пишем с уровнем info
	if err := logger.Init("info", false); err != nil {
		return err
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogDevelopment); err != nil {
		return fmt.Errorf("logger init: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Store
	var repo repository.OrderRepo
	if cfg.DatabaseURL != "" {
		if cfg.RunMigrations {
			if err := migrate.Up(ctx, cfg.DatabaseURL); err != nil {
				return err
			}
		}
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("pgxpool new failed: %w", err)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			return fmt.Errorf("db ping failed: %w", err)
		}
		logger.Info("db connected")
		repo = repository.NewOrderRepository(pool)
	} else {
		logger.Warn("DATABASE_URL is empty, orders are kept in memory")
		repo = repository.NewMemoryOrderRepository()
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	builder := export.NewBuilder(export.DefaultRegistry(), cfg.Carrier)

	// Kafka producer для событий о выгрузках
	var publisher application.EventPublisher
	if cfg.Kafka.Enabled() {
		prod := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.ExportTopic)
		defer prod.Close()
		publisher = prod
	}

	svc := application.NewOrdersService(repo, builder, m, publisher)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition", "X-Export-Id", "X-Export-Rows", "X-Export-Missing"},
		MaxAge:         300,
	}))
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// API
	h := presentation.NewOrdersHandler(svc)
	r.Route("/api", h.Register)

	// STATIC (форма заказа + /admin/)
	presentation.MountStatic(r)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server crashed: %w", err)
		}
		return nil
	})

	// Kafka consumer (формы заказов из intake топика)
	if cfg.Kafka.Enabled() {
		consumer := kafka.NewConsumer(svc, kafka.ConsumerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.IntakeTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		g.Go(func() error {
			return consumer.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
