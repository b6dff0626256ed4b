// SPDX-License-Identifier: MIT

// Command waflow runs the conversational tax-filing daemon: the webhook
// listener, the session engine and the outbound delivery pipeline.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taxsetu/waflow/internal/api"
	"github.com/taxsetu/waflow/internal/config"
	"github.com/taxsetu/waflow/internal/engine"
	"github.com/taxsetu/waflow/internal/facade"
	"github.com/taxsetu/waflow/internal/gateway"
	"github.com/taxsetu/waflow/internal/handlers"
	"github.com/taxsetu/waflow/internal/log"
	"github.com/taxsetu/waflow/internal/outbox"
	"github.com/taxsetu/waflow/internal/session/store"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Configure(log.Config{})
		base := log.Base()
		base.Fatal().Err(err).Msg("invalid configuration")
	}
	log.Configure(log.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger := log.WithComponent("main")

	if err := run(cfg); err != nil {
		logger.Fatal().Err(err).Msg("daemon exited with error")
	}
	logger.Info().Msg("shutdown complete")
}

func run(cfg config.Config) error {
	logger := log.WithComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Session store.
	repo, err := store.NewRedisStore(store.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, log.WithComponent("store"))
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close() }()

	// Durable stores for the delivery pipeline.
	if err := os.MkdirAll(cfg.DataDir, 0o750); err != nil {
		return err
	}
	dlStore, err := outbox.OpenDeadLetterStore(filepath.Join(cfg.DataDir, "deadletters"), cfg.DeadLetterTTL)
	if err != nil {
		return err
	}
	defer func() { _ = dlStore.Close() }()

	msgLog, err := outbox.OpenMessageLog(filepath.Join(cfg.DataDir, "messages.db"))
	if err != nil {
		return err
	}
	defer func() { _ = msgLog.Close() }()

	// Outbound pipeline over the Cloud API gateway.
	sender := gateway.New(cfg.GatewayBaseURL, cfg.PhoneNumberID, cfg.GatewayToken)
	pipeline := outbox.New(outbox.Config{
		Workers:   cfg.Delivery.Workers,
		QueueSize: cfg.Delivery.QueueSize,
		Rate:      rateConfig(cfg.Delivery),
		Retry:     retryConfig(cfg.Delivery),
	}, sender, dlStore, msgLog)
	pipeline.Start()
	defer pipeline.Stop()

	// Engine with the demo facades; real domain services plug in here.
	svc := facade.Static{}
	eng := engine.New(repo, repo,
		engine.NewRegistry(handlers.Chain(svc, svc, svc, svc)...),
		pipeline,
		engine.Config{
			SessionTTL:  cfg.SessionTTL,
			DedupeTTL:   cfg.DedupeTTL,
			ResumeAfter: 30 * time.Minute,
			ConfirmTTL:  10 * time.Minute,
		})

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.New(eng, pipeline, cfg.VerifyToken, repo.HealthCheck).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", cfg.ListenAddr).Msg("listening")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	// Hot reload of the delivery tunables.
	if path := os.Getenv("WAFLOW_CONFIG_FILE"); path != "" {
		g.Go(func() error {
			err := config.WatchDelivery(ctx, path, cfg.Delivery, func(next config.DeliveryConfig) {
				pipeline.UpdateTunables(rateConfig(next), retryConfig(next))
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	return g.Wait()
}

func rateConfig(d config.DeliveryConfig) outbox.RateConfig {
	return outbox.RateConfig{
		GlobalRate:  d.GlobalRate,
		GlobalBurst: d.GlobalBurst,
		PerMinute:   d.PerMinute,
		PerDay:      d.PerDay,
	}
}

func retryConfig(d config.DeliveryConfig) outbox.RetryConfig {
	return outbox.RetryConfig{
		MaxAttempts: d.MaxAttempts,
		Base:        d.RetryBase,
		Cap:         d.RetryCap,
	}
}
