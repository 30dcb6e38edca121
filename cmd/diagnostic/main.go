// File: cmd/diagnostic/main.go
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/iyunix/campus-market/internal/config"
	"github.com/iyunix/campus-market/internal/domain"
	"github.com/iyunix/campus-market/internal/repository/listing"
	"github.com/iyunix/campus-market/internal/services"
	"github.com/iyunix/campus-market/internal/services/mail"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	// --- Load Configuration from .env file ---
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("No .env file loaded (%v); using the process environment", err)
	}
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("FATAL: invalid configuration: %v", err)
	}
	logger := services.NewLoggerWithWriter("diagnostic", os.Stderr)
	logger.SetStructured(false)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	switch os.Args[1] {
	case "storage":
		runStorage(ctx, cfg, logger)
	case "mail":
		if len(os.Args) < 3 {
			usage()
		}
		runMail(ctx, cfg, logger, os.Args[2])
	default:
		usage()
	}
}

func usage() {
	log.Fatalf("usage: diagnostic storage | diagnostic mail <recipient>")
}

// runStorage prints how many listings each category holds, and how many are public.
func runStorage(ctx context.Context, cfg *config.Config, logger services.Logger) {
	repos := map[domain.Category]listing.Repository{}
	switch cfg.StorageDriver {
	case "sqlite":
		db, err := listing.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("FATAL: %v", err)
		}
		if err := listing.Migrate(db); err != nil {
			log.Fatalf("FATAL: %v", err)
		}
		for _, category := range domain.Categories {
			repos[category] = listing.NewGormRepository(db, category, logger)
		}
	default:
		for _, category := range domain.Categories {
			repos[category] = listing.NewFileRepository(cfg.DataDir, category, logger)
		}
	}

	for _, category := range domain.Categories {
		start := time.Now()
		all := repos[category].Load(ctx)
		published := domain.FilterPublished(all)
		log.Printf("[%s] %d listings, %d published, %d drafts (loaded in %s)",
			category, len(all), len(published), len(all)-len(published), time.Since(start))
	}
}

// runMail sends one test message through the configured SMTP account.
func runMail(ctx context.Context, cfg *config.Config, logger services.Logger, recipient string) {
	mailConfig := &mail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.EmailUser,
		Password: cfg.EmailPass,
		Timeout:  30 * time.Second,
	}
	var provider mail.Provider
	if cfg.MailDriver == "log" {
		provider = mail.NewLogProvider(logger)
	} else {
		if err := mailConfig.Validate(); err != nil {
			log.Fatalf("FATAL: %v", err)
		}
		provider = mail.NewSMTPProvider(mailConfig)
	}

	if err := provider.HealthCheck(ctx); err != nil {
		log.Fatalf("FATAL: mail server unreachable: %v", err)
	}
	start := time.Now()
	err := provider.Send(ctx, mail.Message{
		To:       recipient,
		Subject:  "Campus Market mail check",
		HTMLBody: "<p>If you can read this, outgoing mail works.</p>",
	})
	if err != nil {
		log.Fatalf("FATAL: send failed: %v", err)
	}
	log.Printf("Test mail sent to %s in %s", recipient, time.Since(start))
}
