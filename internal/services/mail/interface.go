// File: internal/services/mail/interface.go
package mail

import "context"

// Message is one outgoing e-mail with an HTML body.
type Message struct {
    To       string
    Subject  string
    HTMLBody string
}

// Provider delivers messages. Send either hands the message to the transport or fails.
type Provider interface {
    Send(ctx context.Context, msg Message) error
    HealthCheck(ctx context.Context) error
}

// Logger interface for mail providers
type Logger interface {
    Info(msg string, keysAndValues ...interface{})
    Error(msg string, keysAndValues ...interface{})
    Debug(msg string, keysAndValues ...interface{})
    Warn(msg string, keysAndValues ...interface{})
}
