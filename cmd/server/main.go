package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"bifrost/internal/api"
	"bifrost/internal/audit"
	"bifrost/internal/onboarding/challenge"
	"bifrost/internal/onboarding/handler"
	"bifrost/internal/onboarding/service"
	"bifrost/internal/onboarding/store"
	"bifrost/internal/platform/config"
	"bifrost/internal/platform/httpserver"
	"bifrost/internal/platform/logger"
	"bifrost/internal/platform/metrics"
	"bifrost/internal/platform/postgres"
	platformredis "bifrost/internal/platform/redis"
	"bifrost/internal/scopedtoken"
	"bifrost/internal/scopedtoken/revocation"
	httptransport "bifrost/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	m := metrics.New(prometheus.DefaultRegisterer)

	// Optional backing stores; empty config falls back to in-memory.
	redisClient, err := platformredis.New(config.RedisFromEnv())
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}

	pgPool, err := postgres.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}

	var sessions store.Store
	switch {
	case redisClient != nil:
		sessions = store.NewRedisStore(redisClient.Client, cfg.SessionTTL)
		log.Info("using redis session store")
	case pgPool != nil:
		sessions = store.NewPostgresStore(pgPool)
		log.Info("using postgres session store")
	default:
		sessions = store.NewMemoryStore()
		log.Warn("using in-memory session store, sessions will not survive restarts")
	}

	var revocations revocation.List = revocation.NewMemoryList()
	var revocationDB *sql.DB
	if cfg.PostgresDSN != "" {
		revocationDB, err = sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres revocation store failed", "error", err)
			os.Exit(1)
		}
		revocations = revocation.NewPostgresList(revocationDB)
		log.Info("using postgres scoped-token revocation list")
	}

	// Audit pipeline: Kafka sink when brokers are configured, otherwise an
	// in-memory sink so the worker wiring stays identical.
	var sink audit.Store = audit.NewMemoryStore()
	var kafkaStore *audit.KafkaStore
	if cfg.KafkaBrokers != "" {
		kafkaStore, err = audit.NewKafkaStore(ctx, strings.Split(cfg.KafkaBrokers, ","), cfg.AuditTopic)
		if err != nil {
			log.Error("kafka audit sink failed", "error", err)
			os.Exit(1)
		}
		sink = kafkaStore
		log.Info("publishing audit events to kafka", "topic", cfg.AuditTopic)
	}

	inbox := make(chan audit.Event, 256)
	publisher := audit.NewPublisher(inbox, log)
	worker := audit.NewWorker(sink, inbox, log)
	workerCtx, stopWorker := context.WithCancel(ctx)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if err := worker.Run(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	svc := service.New(service.Config{
		API:              api.NewHTTPClient(cfg.APIBaseURL),
		Store:            sessions,
		Credentials:      challenge.PassthroughCredentials{},
		Tokens:           scopedtoken.NewService(cfg.ScopedTokenSigningKey, cfg.ScopedTokenTTL),
		Revocations:      revocations,
		Audit:            publisher,
		Metrics:          m,
		Logger:           log,
		ResendCooldown:   cfg.ResendCooldown,
		BootstrapTimeout: cfg.BootstrapTimeout,
	})

	router := httptransport.NewRouter(
		handler.New(svc, log, m),
		prometheus.DefaultGatherer,
	)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting bifrost", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	stopWorker()
	<-workerDone

	if kafkaStore != nil {
		kafkaStore.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if pgPool != nil {
		pgPool.Close()
	}
	if revocationDB != nil {
		_ = revocationDB.Close()
	}
}
