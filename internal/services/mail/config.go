// File: internal/services/mail/config.go
package mail

import (
    "fmt"
    "time"
)

type Config struct {
    Host       string
    Port       int
    Username   string
    Password   string
    // From defaults to Username, which is how Gmail accounts send.
    From       string
    Timeout    time.Duration
    MaxRetries int
    RetryDelay time.Duration
}

func (c *Config) Validate() error {
    if c.Host == "" {
        return fmt.Errorf("SMTP_HOST is required")
    }
    if c.Port <= 0 {
        return fmt.Errorf("SMTP_PORT must be positive")
    }
    if c.Username == "" {
        return fmt.Errorf("EMAIL_USER is required")
    }
    if c.Password == "" {
        return fmt.Errorf("EMAIL_PASS is required")
    }
    return nil
}

func (c *Config) sender() string {
    if c.From != "" {
        return c.From
    }
    return c.Username
}

// RetryConfig derives retry behaviour, falling back to DefaultRetryConfig.
func (c *Config) RetryConfig() *RetryConfig {
    rc := DefaultRetryConfig()
    if c.MaxRetries > 0 {
        rc.MaxAttempts = c.MaxRetries
    }
    if c.RetryDelay > 0 {
        rc.Delay = c.RetryDelay
    }
    return rc
}
