package restclient

import (
	"errors"
	"fmt"
	"time"
)

// ClientError represents the different categories of client failure.
type ClientError interface {
	error
	Type() ErrorType
}

// ErrorType defines the category of client error
type ErrorType string

const (
	NetworkError       ErrorType = "network"
	TimeoutError       ErrorType = "timeout"
	ValidationError    ErrorType = "validation"
	SerializationError ErrorType = "serialization"
)

// ErrCancelled is returned by Future.Wait after the future was cancelled.
var ErrCancelled = errors.New("restclient: request cancelled")

// networkError represents connection and I/O failures
type networkError struct {
	message string
	wrapped error
}

func (e *networkError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("network error: %s: %v", e.message, e.wrapped)
	}
	return fmt.Sprintf("network error: %s", e.message)
}

func (e *networkError) Type() ErrorType {
	return NetworkError
}

func (e *networkError) Unwrap() error {
	return e.wrapped
}

// timeoutError represents timeout-related failures
type timeoutError struct {
	message string
	timeout time.Duration
}

func (e *timeoutError) Error() string {
	return fmt.Sprintf("timeout error: %s (timeout: %v)", e.message, e.timeout)
}

func (e *timeoutError) Type() ErrorType {
	return TimeoutError
}

// validationError represents caller-configuration errors
type validationError struct {
	message string
	field   string
}

func (e *validationError) Error() string {
	if e.field != "" {
		return fmt.Sprintf("validation error: %s (field: %s)", e.message, e.field)
	}
	return fmt.Sprintf("validation error: %s", e.message)
}

func (e *validationError) Type() ErrorType {
	return ValidationError
}

// serializationError represents body decode failures
type serializationError struct {
	message string
	wrapped error
}

func (e *serializationError) Error() string {
	return fmt.Sprintf("serialization error: %s: %v", e.message, e.wrapped)
}

func (e *serializationError) Type() ErrorType {
	return SerializationError
}

func (e *serializationError) Unwrap() error {
	return e.wrapped
}

// NewNetworkError creates a new network error
func NewNetworkError(message string, wrapped error) ClientError {
	return &networkError{message: message, wrapped: wrapped}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(message string, timeout time.Duration) ClientError {
	return &timeoutError{message: message, timeout: timeout}
}

// NewValidationError creates a new validation error
func NewValidationError(message, field string) ClientError {
	return &validationError{message: message, field: field}
}

// NewSerializationError creates a new serialization error
func NewSerializationError(message string, wrapped error) ClientError {
	return &serializationError{message: message, wrapped: wrapped}
}

// TypeOf returns the error's category, or the empty string for errors that
// did not originate from this package.
func TypeOf(err error) ErrorType {
	var clientErr ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type()
	}
	return ""
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errorType ErrorType) bool {
	if err == nil {
		return false
	}
	return TypeOf(err) == errorType
}

// IsSuccessStatus checks if a status code represents success (2xx)
func IsSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
