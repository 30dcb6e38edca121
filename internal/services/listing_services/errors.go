package listing_services

import (
    "errors"
    "fmt"
)

type ErrorType string

const (
    ErrTypeValidation        ErrorType = "VALIDATION"
    ErrTypeNotFound          ErrorType = "NOT_FOUND"
    ErrTypeChallengeMismatch ErrorType = "CHALLENGE_MISMATCH"
    ErrTypePersistence       ErrorType = "PERSISTENCE"
    ErrTypeDispatch          ErrorType = "DISPATCH"
)

type ListingError struct {
    Type      ErrorType
    Operation string
    // Message is safe to show to the submitter.
    Message   string
    Field     string
    ListingID string
    Cause     error
}

func (e *ListingError) Error() string {
    if e.ListingID != "" {
        return fmt.Sprintf("listing %s error in %s: %s (id: %s)", e.Type, e.Operation, e.Message, e.ListingID)
    }
    if e.Cause != nil {
        return fmt.Sprintf("listing %s error in %s: %s (caused by: %v)", e.Type, e.Operation, e.Message, e.Cause)
    }
    return fmt.Sprintf("listing %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ListingError) Unwrap() error {
    return e.Cause
}

// TypeOf returns the ErrorType of err, or "" when err is not a ListingError.
func TypeOf(err error) ErrorType {
    var listingErr *ListingError
    if errors.As(err, &listingErr) {
        return listingErr.Type
    }
    return ""
}

func newValidationError(operation, field, msg string) *ListingError {
    return &ListingError{Type: ErrTypeValidation, Operation: operation, Field: field, Message: msg}
}

func newNotFoundError(operation, id string) *ListingError {
    return &ListingError{Type: ErrTypeNotFound, Operation: operation, Message: "Listing not found", ListingID: id}
}

func newMismatchError(operation string) *ListingError {
    return &ListingError{Type: ErrTypeChallengeMismatch, Operation: operation, Message: "Invalid OTP"}
}

func newPersistenceError(operation string, cause error) *ListingError {
    return &ListingError{Type: ErrTypePersistence, Operation: operation, Message: "Could not save the listing", Cause: cause}
}

func newDispatchError(operation string, cause error) *ListingError {
    return &ListingError{Type: ErrTypeDispatch, Operation: operation, Message: "Failed to send notification", Cause: cause}
}
