package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the application-wide error type. Services return it so that
// handlers can translate failures into HTTP responses without string matching.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Domain   string      `json:"domain"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds an AppError from scratch.
func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap attaches an underlying error to a new AppError.
func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// MarshalJSON hides Err and HTTPCode from API responses.
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Domain  string      `json:"domain"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Domain:  e.Domain,
		Message: e.Message,
		Details: e.Details,
	})
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// --- Common factories ---

// InternalError wraps an unexpected system error. The caller-visible message
// is generic; the wrapped error goes to the operator log only.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
}

// ConfigurationError marks a failure the operator must fix (missing price,
// missing contact address), as opposed to bad user input.
func ConfigurationError(message string) *AppError {
	return New(CodeConfigurationError, "config", message, http.StatusInternalServerError)
}

// ValidationError carries a field -> message map of all violations.
func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "validation", "Validation failed", http.StatusBadRequest).WithDetails(details)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, "auth", message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, "auth", message, http.StatusForbidden)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, "request", message, http.StatusBadRequest)
}

func NewNotFoundError(domain, message string) *AppError {
	return New(CodeNotFound, domain, message, http.StatusNotFound)
}

// NewConflictError reports a request that clashes with current state
// (duplicate reference code, already-active subscription). The message must
// name the conflicting state explicitly.
func NewConflictError(domain, message string) *AppError {
	return New(CodeConflict, domain, message, http.StatusBadRequest)
}

// NewIllegalTransitionError rejects a status change that is not an edge of
// the lifecycle table; the record is left unmodified.
func NewIllegalTransitionError(domain, from, to string) *AppError {
	return New(CodeIllegalTransition, domain,
		fmt.Sprintf("illegal status transition from '%s' to '%s'", from, to),
		http.StatusBadRequest)
}
