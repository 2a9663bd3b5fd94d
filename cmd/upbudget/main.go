package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"upbudget/internal/cache"
	"upbudget/internal/config"
	"upbudget/internal/core"
	apphttp "upbudget/internal/http"
	applog "upbudget/internal/log"
	"upbudget/internal/services"
	"upbudget/internal/upbank"
)

func main() {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}
	allocations, _ := cfg.Allocations() // validated above

	client := upbank.New(upbank.Config{
		BaseURL:  cfg.UpBaseURL,
		Token:    cfg.UpToken,
		PageSize: cfg.PageSize,
		Timeout:  cfg.FetchTimeout,
	}, logger.WithComponent(applog.ComponentUpbank))

	streams := cache.New[[]core.Transaction](cfg.CacheMaxEntries, cfg.CacheTTL)
	svc := services.NewBudgetService(client, allocations, streams, logger.WithComponent(applog.ComponentService))

	srv := apphttp.NewServer(":"+cfg.Port, svc, logger.WithComponent(applog.ComponentHTTP))

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting upbudget server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
