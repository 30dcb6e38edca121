package listing_services

import (
    "context"

    "github.com/iyunix/campus-market/internal/domain"
    "github.com/iyunix/campus-market/internal/services"
)

// Logger interface for all listing services
type Logger interface {
    Info(msg string, keysAndValues ...interface{})
    Error(msg string, keysAndValues ...interface{})
    Debug(msg string, keysAndValues ...interface{})
    Warn(msg string, keysAndValues ...interface{})
}

// VerificationNotifier delivers OTP codes. It must not block the submission
// and reports nothing back: delivery failures are the notifier's to log.
type VerificationNotifier interface {
    SendVerificationCodeAsync(notice services.VerificationCodeNotice)
}

// ContactNotifier delivers the "contact viewed" notice; its failure reaches the caller.
type ContactNotifier interface {
    NotifyContactViewed(ctx context.Context, listing domain.Listing) error
}
