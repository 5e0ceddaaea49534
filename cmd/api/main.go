package main

import (
	"context"
	"errors"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"productivity/internal/config"
	"productivity/internal/logger"
	"productivity/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		os.Exit(1)
	}

	logger.Init(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := server.OpenStore(ctx, cfg)
	if err != nil {
		log.Error("Fatal error: failed to open store", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("store close failed", "err", err)
		}
	}()

	if err := server.SeedIfEnabled(ctx, store, cfg); err != nil {
		log.Error("Fatal error: failed to seed store", "err", err)
		os.Exit(1)
	}

	app := server.BuildApplication(store, server.OptionsFromConfig(cfg))

	g, ctx := errgroup.WithContext(ctx)

	if err := app.CronMgr.RegisterJobs(); err != nil {
		log.Error("Fatal error: failed to register cron jobs", "err", err)
		os.Exit(1)
	}
	app.CronMgr.Start()
	g.Go(func() error {
		<-ctx.Done()
		app.CronMgr.Stop()
		return nil
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: app.Router,
	}
	g.Go(func() error {
		log.Info("HTTP server starting", "addr", srv.Addr, "env", cfg.AppEnv, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case <-ctx.Done():
		case sig := <-quit:
			log.Info("received signal, shutting down", "signal", sig)
			cancel()
		}

		app.Hub.Close()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown failed", "err", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("app exited with error", "err", err)
		return
	}
	log.Info("app exited")
}
