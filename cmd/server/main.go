// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iyunix/campus-market/internal/config"
	"github.com/iyunix/campus-market/internal/services"
)

func main() {
	cfg := config.Load()
	logger := services.NewLogger("campus_market")

	app, err := InitializeApplication(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize application: %v", err)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           app.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("server starting",
		"port", cfg.ServerPort,
		"base_url", cfg.BaseURL,
		"storage", cfg.StorageDriver,
		"challenges", cfg.ChallengeStore,
		"images", cfg.ImageStore,
		"mail", cfg.MailDriver)

	// --- Start Server in Goroutine ---
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	// OTP mails already queued still go out.
	if err := app.Notifier.Wait(ctx); err != nil {
		logger.Warn("pending notifications abandoned", "error", err)
	}
	logger.Info("server stopped gracefully")
}
