// Package derrors provides custom error types for devlog.
// Each error carries a stable code so callers can branch on the failure class
// without string matching.
package derrors

import (
	"fmt"
)

// DevlogError is the base interface for all devlog errors
type DevlogError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all devlog errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// MalformedInputError represents input that cannot be split into words,
// such as a line with an unterminated quote
type MalformedInputError struct {
	baseError
	Input string
}

// NewMalformedInputError creates a new malformed input error
func NewMalformedInputError(input string, message string, cause error) *MalformedInputError {
	return &MalformedInputError{
		baseError: baseError{
			code:    "MALFORMED_INPUT",
			message: message,
			cause:   cause,
		},
		Input: input,
	}
}

// ProviderError represents a failure inside a completion provider
type ProviderError struct {
	baseError
	Provider string
}

// NewProviderError creates a new provider error
func NewProviderError(provider string, message string, cause error) *ProviderError {
	return &ProviderError{
		baseError: baseError{
			code:    "PROVIDER_ERROR",
			message: message,
			cause:   cause,
		},
		Provider: provider,
	}
}

// SessionError represents session state that is missing or unusable
type SessionError struct {
	baseError
	Component string
}

// NewSessionError creates a new session error
func NewSessionError(component string, message string, cause error) *SessionError {
	return &SessionError{
		baseError: baseError{
			code:    "SESSION_ERROR",
			message: message,
			cause:   cause,
		},
		Component: component,
	}
}

// ConfigurationError represents errors in configuration files
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// ValidationError represents errors during validation
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new validation error
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			code:    "VALIDATION_ERROR",
			message: message,
			cause:   cause,
		},
		Field: field,
	}
}

// NotFoundError represents errors when a resource is not found
type NotFoundError struct {
	baseError
	Resource string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, message string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			code:    "NOT_FOUND",
			message: message,
			cause:   nil,
		},
		Resource: resource,
	}
}

// AlreadyExistsError represents errors when a resource already exists
type AlreadyExistsError struct {
	baseError
	Resource string
}

// NewAlreadyExistsError creates a new already exists error
func NewAlreadyExistsError(resource string, message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		baseError: baseError{
			code:    "ALREADY_EXISTS",
			message: message,
			cause:   nil,
		},
		Resource: resource,
	}
}
