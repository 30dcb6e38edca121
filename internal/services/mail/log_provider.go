// File: internal/services/mail/log_provider.go
package mail

import "context"

// LogProvider logs messages instead of sending them. Used with MAIL_DRIVER=log.
type LogProvider struct {
    logger Logger
}

func NewLogProvider(logger Logger) *LogProvider {
    return &LogProvider{logger: logger}
}

func (p *LogProvider) Send(ctx context.Context, msg Message) error {
    if msg.To == "" {
        return &MailError{Type: ErrTypeValidation, Message: "recipient is required"}
    }
    p.logger.Info("mail not sent (log driver)",
        "to", msg.To,
        "subject", msg.Subject,
        "body", msg.HTMLBody)
    return nil
}

func (p *LogProvider) HealthCheck(ctx context.Context) error {
    return nil
}
