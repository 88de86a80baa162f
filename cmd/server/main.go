// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

// Command server runs the ModelGrid recommendation service: a Badger
// database for interaction persistence, the recommendation engine, and
// the HTTP API, supervised by a suture tree.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgraph-io/badger/v4"
	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"

	"github.com/modelgrid/modelgrid/internal/api"
	"github.com/modelgrid/modelgrid/internal/config"
	"github.com/modelgrid/modelgrid/internal/interactions"
	"github.com/modelgrid/modelgrid/internal/logging"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	logger := logging.Logger()
	logger.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Bool("in_memory_storage", cfg.Storage.InMemory).
		Msg("starting modelgrid server")

	db, err := openBadger(cfg)
	if err != nil {
		return fmt.Errorf("open badger: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close badger")
		}
	}()

	kv := interactions.NewBreakerKV(
		interactions.NewBadgerKV(db),
		interactions.BreakerKVConfig{
			FailureThreshold: cfg.Storage.Breaker.FailureThreshold,
			Timeout:          cfg.Storage.Breaker.Timeout,
		},
		logger,
	)
	store := interactions.NewStore(kv, interactions.StoreConfig{
		Capacity: cfg.Recommend.InteractionCapacity,
	}, logger)

	engine, err := initEngine(cfg, store, logger)
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}

	handler := api.NewHandler(engine)
	router := api.NewRouter(handler, api.RouterConfig{
		TrackRateLimit: cfg.Server.TrackRateLimit,
		ReadRateLimit:  cfg.Server.ReadRateLimit,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hook := (&sutureslog.Handler{Logger: logging.NewSlogLogger()}).MustHook()
	root := suture.New("modelgrid", suture.Spec{EventHook: hook})

	root.Add(&httpService{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		shutdownTimeout: cfg.Server.ShutdownTimeout,
		logger:          logger,
	})
	if !cfg.Storage.InMemory {
		root.Add(&badgerGCService{
			db:       db,
			interval: cfg.Storage.GCInterval,
			logger:   logger,
		})
	}

	err = root.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func openBadger(cfg *config.Config) (*badger.DB, error) {
	var opts badger.Options
	if cfg.Storage.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Storage.Path)
	}
	opts = opts.WithLogger(nil)
	return badger.Open(opts)
}
