package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"schwifty/internal/bic"
	bicstore "schwifty/internal/bic/store"
	bicmemory "schwifty/internal/bic/store/memory"
	bicpostgres "schwifty/internal/bic/store/postgres"
	bicredis "schwifty/internal/bic/store/redis"
	"schwifty/internal/iban/handler"
	"schwifty/internal/iban/metrics"
	"schwifty/internal/iban/service"
	"schwifty/internal/iban/spec"
	"schwifty/internal/platform/config"
	"schwifty/internal/platform/httpserver"
	"schwifty/internal/platform/logger"
	platformmetrics "schwifty/internal/platform/metrics"
	"schwifty/internal/platform/redis"
	httptransport "schwifty/internal/transport/http"
	"schwifty/pkg/platform/audit"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	directory, cleanupDirectory, err := buildDirectory(ctx, cfg)
	if err != nil {
		log.Error("bic directory setup failed", "error", err.Error())
		os.Exit(1)
	}
	defer cleanupDirectory()

	publisher := buildAuditPublisher(cfg, log)
	defer publisher.Close()

	svc, err := service.New(
		spec.Default(),
		directory,
		log,
		metrics.New(),
		publisher,
		service.WithBatchLimit(cfg.BatchLimit),
	)
	if err != nil {
		log.Error("service setup failed", "error", err.Error())
		os.Exit(1)
	}

	router := httptransport.NewRouter(log, platformmetrics.NewHTTP(), handler.New(svc, log))
	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
}

// buildDirectory selects the BIC directory backend: postgres when a database
// is configured, otherwise the seeded in-memory directory. Either may be
// fronted by the redis cache.
func buildDirectory(ctx context.Context, cfg config.Config) (bic.Directory, func(), error) {
	cleanup := func() {}

	var directory bic.Directory
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return nil, cleanup, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, cleanup, err
		}
		store := bicpostgres.New(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, cleanup, err
		}
		directory = store
		cleanup = func() { db.Close() }
	} else {
		mem := bicmemory.NewInMemory()
		bicstore.SeedSampleDirectory(mem)
		directory = mem
	}

	client, err := redis.New(cfg.Redis)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	if client != nil {
		directory = bicredis.NewCache(client.Client, directory, bicredis.WithTTL(cfg.Redis.CacheTTL))
		inner := cleanup
		cleanup = func() {
			client.Close()
			inner()
		}
	}

	return directory, cleanup, nil
}

// buildAuditPublisher connects the Kafka audit stream when brokers are
// configured; otherwise audit events are dropped.
func buildAuditPublisher(cfg config.Config, log *slog.Logger) audit.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return audit.Nop{}
	}
	publisher, err := audit.NewKafkaPublisher(cfg.KafkaBrokers, cfg.AuditTopic, log)
	if err != nil {
		log.Warn("audit publisher unavailable, events will be dropped", "error", err.Error())
		return audit.Nop{}
	}
	return publisher
}
