// File: internal/services/mail/smtp_provider.go
package mail

import (
    "context"
    "errors"
    "net"
    "strconv"
    "time"

    gomail "github.com/wneessen/go-mail"
)

// SMTPProvider sends through an authenticated SMTP relay with mandatory STARTTLS.
type SMTPProvider struct {
    config *Config
}

func NewSMTPProvider(config *Config) *SMTPProvider {
    if config.Timeout == 0 {
        config.Timeout = 15 * time.Second
    }
    return &SMTPProvider{config: config}
}

func (p *SMTPProvider) Send(ctx context.Context, msg Message) error {
    if err := p.config.Validate(); err != nil {
        return &MailError{Type: ErrTypeConfig, Message: "smtp provider is not configured", Cause: err}
    }

    m, err := p.buildMessage(msg)
    if err != nil {
        return err
    }

    client, err := gomail.NewClient(p.config.Host,
        gomail.WithPort(p.config.Port),
        gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
        gomail.WithUsername(p.config.Username),
        gomail.WithPassword(p.config.Password),
        gomail.WithTLSPolicy(gomail.TLSMandatory),
        gomail.WithTimeout(p.config.Timeout),
    )
    if err != nil {
        return &MailError{Type: ErrTypeConfig, Message: "failed to create smtp client", Cause: err}
    }

    if err := client.DialAndSendWithContext(ctx, m); err != nil {
        var netErr net.Error
        if errors.As(err, &netErr) {
            return &MailError{Type: ErrTypeNetwork, Message: "smtp connection failed", Cause: err}
        }
        return &MailError{Type: ErrTypeProvider, Message: "smtp delivery failed", Cause: err}
    }
    return nil
}

func (p *SMTPProvider) buildMessage(msg Message) (*gomail.Msg, error) {
    m := gomail.NewMsg()
    if err := m.From(p.config.sender()); err != nil {
        return nil, &MailError{Type: ErrTypeConfig, Message: "invalid sender address", Cause: err}
    }
    if err := m.To(msg.To); err != nil {
        return nil, &MailError{Type: ErrTypeValidation, Message: "invalid recipient address", Cause: err}
    }
    m.Subject(msg.Subject)
    m.SetBodyString(gomail.TypeTextHTML, msg.HTMLBody)
    return m, nil
}

// HealthCheck only verifies the relay is reachable; it does not authenticate.
func (p *SMTPProvider) HealthCheck(ctx context.Context) error {
    addr := net.JoinHostPort(p.config.Host, strconv.Itoa(p.config.Port))
    dialer := net.Dialer{Timeout: p.config.Timeout}
    conn, err := dialer.DialContext(ctx, "tcp", addr)
    if err != nil {
        return &MailError{Type: ErrTypeNetwork, Message: "smtp relay unreachable", Cause: err}
    }
    return conn.Close()
}
