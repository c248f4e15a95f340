// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/olegiv/ocms-content/internal/handler/api"
	"github.com/olegiv/ocms-content/internal/middleware"
	"github.com/olegiv/ocms-content/internal/scheduler"
	"github.com/olegiv/ocms-content/internal/service"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the lost files scheduler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer a.close()
			cfg := a.config

			engine, err := a.engine()
			if err != nil {
				return err
			}
			detector, err := a.detector("")
			if err != nil {
				return err
			}
			updater := a.updater()

			sched := scheduler.New(a.logger, 30*time.Minute)
			report := &scheduler.LostFilesReport{
				Detector: detector,
				Events:   service.NewEventService(db, a.logger),
				Excludes: cfg.LostFilesExclude,
				Logger:   a.logger,
			}
			if cfg.LostFilesRefresh {
				report.Updater = updater
			}
			if err := sched.RegisterLostFilesReport(cfg.LostFilesSchedule, report); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			h := api.NewHandler(api.Deps{
				DB:       db,
				Engine:   engine,
				Detector: detector,
				Updater:  updater,
				Excludes: cfg.LostFilesExclude,
				Logger:   a.logger,

				Scheduler:    sched,
				Cache:        a.cache,
				CacheBackend: a.cacheBackend,
			})
			srv := &http.Server{
				Addr: cfg.ServerAddr(),
				Handler: api.Router(h, api.RouterOptions{
					Catalog:      a.catalog,
					RateLimiter:  middleware.NewRateLimiter(cfg.APIRateLimit, cfg.APIRateBurst, a.logger),
					WriteTimeout: 55 * time.Second,
				}),
				ReadTimeout:       15 * time.Second,
				ReadHeaderTimeout: 5 * time.Second,
				WriteTimeout:      60 * time.Second,
				IdleTimeout:       60 * time.Second,
				MaxHeaderBytes:    1 << 20,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return err
				}
			case <-ctx.Done():
			}

			a.logger.Info("shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			a.logger.Info("server stopped")
			return nil
		},
	}
}
