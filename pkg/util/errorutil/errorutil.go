package util

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes carried by DomainError.
const (
	CodeValidation      = "VALIDATION_FAILED"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeExternalService = "EXTERNAL_SERVICE_ERROR"
	CodeInternal        = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}

// NewValidationError flags missing, blank, or out-of-enumeration input.
func NewValidationError(message string) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest)
}

// NewNotFound flags an unresolvable ticket number or user.
func NewNotFound(resource string) error {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// NewConflict flags a uniqueness violation the caller can act on.
func NewConflict(message string) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict)
}

// NewExternalServiceError wraps a fan-out or notifier failure. These are
// logged at the call site and never returned to HTTP callers.
func NewExternalServiceError(service string, err error) error {
	return &DomainError{
		Code:       CodeExternalService,
		Message:    fmt.Sprintf("%s unavailable", service),
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewInternalError wraps an unclassified failure behind a generic message.
func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// IsUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure. The embedded engine exposes constraint errors only through
// their message text.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsCheckViolation reports whether err is a SQLite CHECK constraint
// failure, i.e. a value outside one of the schema enumerations.
func IsCheckViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "CHECK constraint failed")
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		if de, ok := NewNotFound("resource").(*DomainError); ok {
			return de
		}
	}
	if IsCheckViolation(err) {
		if de, ok := NewValidationError("value outside allowed set").(*DomainError); ok {
			de.Err = err
			return de
		}
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
