// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// httpService runs the API server under suture supervision. A listener
// error restarts the service; context cancellation shuts it down
// gracefully within the configured timeout.
type httpService struct {
	server          *http.Server
	shutdownTimeout time.Duration
	logger          zerolog.Logger
}

// Serve implements suture.Service.
func (s *httpService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	s.logger.Info().Str("addr", s.server.Addr).Msg("http server listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn().Err(err).Msg("http server shutdown incomplete")
		}
		<-errCh
		return ctx.Err()
	}
}

func (s *httpService) String() string { return "http-server" }

// badgerGCService periodically runs Badger's value-log garbage
// collection. ErrNoRewrite just means there was nothing to reclaim.
type badgerGCService struct {
	db       *badger.DB
	interval time.Duration
	logger   zerolog.Logger
}

// Serve implements suture.Service.
func (s *badgerGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			err := s.db.RunValueLogGC(0.5)
			if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				s.logger.Warn().Err(err).Msg("badger value log GC failed")
			}
		}
	}
}

func (s *badgerGCService) String() string { return "badger-gc" }
