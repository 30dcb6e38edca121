// File: internal/services/mail/errors.go
package mail

import (
    "errors"
    "fmt"
)

type ErrorType string

const (
    ErrTypeConfig     ErrorType = "CONFIG"
    ErrTypeNetwork    ErrorType = "NETWORK"
    ErrTypeProvider   ErrorType = "PROVIDER"
    ErrTypeValidation ErrorType = "VALIDATION"
)

type MailError struct {
    Type    ErrorType
    Message string
    Cause   error
}

func (e *MailError) Error() string {
    if e.Cause != nil {
        return fmt.Sprintf("mail %s error: %s (caused by: %v)", e.Type, e.Message, e.Cause)
    }
    return fmt.Sprintf("mail %s error: %s", e.Type, e.Message)
}

func (e *MailError) Unwrap() error {
    return e.Cause
}

// retryable is false for errors that will fail the same way every time.
func retryable(err error) bool {
    var mailErr *MailError
    if errors.As(err, &mailErr) {
        return mailErr.Type != ErrTypeConfig && mailErr.Type != ErrTypeValidation
    }
    return true
}
