// File: cmd/server/wire.go
package main

import (
    "context"
    "fmt"
    "net/http"
    "time"

    "github.com/iyunix/campus-market/internal/config"
    "github.com/iyunix/campus-market/internal/domain"
    "github.com/iyunix/campus-market/internal/handlers"
    "github.com/iyunix/campus-market/internal/ratelimit"
    "github.com/iyunix/campus-market/internal/repository/listing"
    "github.com/iyunix/campus-market/internal/repository/verification"
    "github.com/iyunix/campus-market/internal/services"
    "github.com/iyunix/campus-market/internal/services/listing_services"
    "github.com/iyunix/campus-market/internal/services/mail"
    "github.com/iyunix/campus-market/internal/services/media"
    "github.com/iyunix/campus-market/internal/services/otp"
)

// Application aggregates the long-lived components the server needs
type Application struct {
    Config   *config.Config
    Logger   services.Logger
    Notifier *services.NotificationService
    Handler  http.Handler

    closers []func()
}

// Close releases backends in reverse order of creation
func (a *Application) Close() {
    for i := len(a.closers) - 1; i >= 0; i-- {
        a.closers[i]()
    }
}

// ProvideCollections opens one collection per category on the configured storage driver
func ProvideCollections(cfg *config.Config, logger services.Logger) (listing.Collections, func(), error) {
    collections := listing.Collections{}

    switch cfg.StorageDriver {
    case "sqlite":
        db, err := listing.OpenSQLite(cfg.SQLitePath)
        if err != nil {
            return nil, nil, err
        }
        closeDB := func() {
            if sqlDB, err := db.DB(); err == nil {
                sqlDB.Close()
            }
        }
        if err := listing.Migrate(db); err != nil {
            closeDB()
            return nil, nil, err
        }
        for _, category := range domain.Categories {
            collections[category] = listing.NewCollection(category, listing.NewGormRepository(db, category, logger))
        }
        logger.Info("listing storage ready", "driver", "sqlite", "path", cfg.SQLitePath)
        return collections, closeDB, nil

    default:
        for _, category := range domain.Categories {
            repo := listing.NewFileRepository(cfg.DataDir, category, logger)
            collections[category] = listing.NewCollection(category, repo)
        }
        logger.Info("listing storage ready", "driver", "file", "dir", cfg.DataDir)
        return collections, func() {}, nil
    }
}

// ProvideChallengeRepository picks the in-process map or Redis
func ProvideChallengeRepository(ctx context.Context, cfg *config.Config, logger services.Logger) (verification.ChallengeRepository, func(), error) {
    if cfg.ChallengeStore != "redis" {
        logger.Info("challenge store ready", "driver", "memory")
        return verification.NewMemoryChallengeRepository(), func() {}, nil
    }

    client, err := verification.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
    if err != nil {
        return nil, nil, err
    }
    logger.Info("challenge store ready", "driver", "redis", "addr", cfg.RedisAddr)
    return verification.NewRedisChallengeRepository(client), func() { client.Close() }, nil
}

func ProvideImageStore(cfg *config.Config, logger services.Logger) (media.ImageStore, error) {
    if cfg.ImageStore == "minio" {
        return media.NewMinIOImageStore(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, logger)
    }
    return media.NewLocalImageStore(cfg.UploadDir, logger), nil
}

func ProvideMailConfig(cfg *config.Config) *mail.Config {
    return &mail.Config{
        Host:     cfg.SMTPHost,
        Port:     cfg.SMTPPort,
        Username: cfg.EmailUser,
        Password: cfg.EmailPass,
        Timeout:  30 * time.Second,
    }
}

// ProvideMailProvider returns the SMTP provider, or the log provider when
// MAIL_DRIVER=log or when SMTP credentials are missing outside production.
func ProvideMailProvider(cfg *config.Config, mailConfig *mail.Config, logger services.Logger) (mail.Provider, error) {
    if cfg.MailDriver == "log" {
        return mail.NewLogProvider(logger), nil
    }
    if err := mailConfig.Validate(); err != nil {
        if cfg.IsProduction() {
            return nil, fmt.Errorf("invalid mail configuration: %w", err)
        }
        logger.Warn("SMTP not configured, mail will only be logged", "reason", err.Error())
        return mail.NewLogProvider(logger), nil
    }
    return mail.NewSMTPProvider(mailConfig), nil
}

// ProvideRateLimiters returns nil limiters when rate limiting is disabled
func ProvideRateLimiters(cfg *config.Config) (submit, contact *ratelimit.MemoryRateLimiter, cleanup func()) {
    if !cfg.RateLimitEnabled {
        return nil, nil, func() {}
    }
    submit = ratelimit.NewMemoryRateLimiter(ratelimit.SubmissionConfig())
    contact = ratelimit.NewMemoryRateLimiter(ratelimit.ContactViewConfig())
    return submit, contact, func() {
        submit.Close()
        contact.Close()
    }
}

// InitializeApplication builds every component and the HTTP handler.
// On error, anything already opened is closed again.
func InitializeApplication(ctx context.Context, cfg *config.Config, logger services.Logger) (app *Application, err error) {
    app = &Application{Config: cfg, Logger: logger}
    defer func() {
        if err != nil {
            app.Close()
            app = nil
        }
    }()

    collections, closeCollections, err := ProvideCollections(cfg, logger)
    if err != nil {
        return app, fmt.Errorf("listing storage: %w", err)
    }
    app.closers = append(app.closers, closeCollections)

    challengeRepo, closeChallenges, err := ProvideChallengeRepository(ctx, cfg, logger)
    if err != nil {
        return app, fmt.Errorf("challenge store: %w", err)
    }
    app.closers = append(app.closers, closeChallenges)
    challenges := otp.NewStore(challengeRepo)

    images, err := ProvideImageStore(cfg, logger)
    if err != nil {
        return app, fmt.Errorf("image store: %w", err)
    }

    mailConfig := ProvideMailConfig(cfg)
    provider, err := ProvideMailProvider(cfg, mailConfig, logger)
    if err != nil {
        return app, err
    }
    app.Notifier = services.NewNotificationService(provider, mailConfig.RetryConfig(), cfg.AdminRecipient(), logger)

    submitLimiter, contactLimiter, closeLimiters := ProvideRateLimiters(cfg)
    app.closers = append(app.closers, closeLimiters)

    app.Handler = handlers.NewRouter(handlers.RouterConfig{
        Listings:          listing_services.NewListingService(collections),
        Submissions:       listing_services.NewSubmissionService(collections, challenges, app.Notifier, cfg.EmailDomain, cfg.BaseURL, logger),
        Verifications:     listing_services.NewVerificationService(collections, challenges, logger),
        Contacts:          listing_services.NewContactService(collections, app.Notifier, logger),
        Images:            images,
        SubmissionLimiter: submitLimiter,
        ContactLimiter:    contactLimiter,
        AllowedOrigins:    cfg.AllowedOrigins,
        Logger:            logger,
    })
    return app, nil
}
