// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/manlikeHB/skillsync/internal/middleware"
)

// OpsServiceConfig holds the operational HTTP endpoint settings.
type OpsServiceConfig struct {
	Host    string
	Port    int
	Timeout time.Duration
}

// OpsService serves the operational endpoints: liveness and Prometheus
// metrics. The matching core itself is consumed as a library; this is
// the only HTTP surface the process exposes.
type OpsService struct {
	config OpsServiceConfig
	logger zerolog.Logger
}

// NewOpsService creates the ops HTTP service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewOpsService(cfg OpsServiceConfig, logger zerolog.Logger) *OpsService {
	return &OpsService{
		config: cfg,
		logger: logger.With().Str("service", "ops").Logger(),
	}
}

// Router builds the chi router. Exposed for tests.
func (s *OpsService) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Serve implements suture.Service. It runs the HTTP server until the
// context is canceled, then shuts down gracefully.
func (s *OpsService) Serve(ctx context.Context) error {
	timeout := s.config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.config.Host, s.config.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Msg("ops endpoints listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn().Err(err).Msg("ops shutdown incomplete")
		}
		<-errCh
		return ctx.Err()

	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ops server: %w", err)
	}
}
