// Package errors provides standardized error handling for the QR engine and its
// Zeebe/HTTP surfaces.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Validation errors raised by the codec engine. These are deterministic
// consequences of the input and are never retried.
const (
	ErrCodeMissingField      ErrorCode = "MISSING_FIELD"
	ErrCodeOutOfRange        ErrorCode = "OUT_OF_RANGE"
	ErrCodeBadFormat         ErrorCode = "BAD_FORMAT"
	ErrCodeMutuallyExclusive ErrorCode = "MUTUALLY_EXCLUSIVE"
	ErrCodeUnsupportedOption ErrorCode = "UNSUPPORTED_OPTION"
)

// Infrastructure errors raised outside the codec boundary.
const (
	ErrCodeInputParsingFailed  ErrorCode = "INPUT_PARSING_FAILED"
	ErrCodeRenderFailed        ErrorCode = "RENDER_FAILED"
	ErrCodeRenderTimeout       ErrorCode = "RENDER_TIMEOUT"
	ErrCodeReferenceLoadFailed ErrorCode = "REFERENCE_LOAD_FAILED"
	ErrCodeCacheUnavailable    ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeInternal            ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Field     string                 `json:"field,omitempty"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp,omitempty"`
}

func (e *StandardError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("StandardError[%s] %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// IsValidation reports whether the error belongs to the validation taxonomy.
func (e *StandardError) IsValidation() bool {
	return IsValidationCode(e.Code)
}

// ==========================
// 2. Zeebe Job Error Integration
// ==========================

// JobError represents an error reported back to the Zeebe workflow engine.
type JobError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *JobError) Error() string {
	return fmt.Sprintf("JobError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting job fail variables.
func (e *JobError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// Validation constructors carry no timestamp: the codec never reads the clock,
// so two identical inputs produce identical errors.

// NewMissingFieldError reports an absent required field.
func NewMissingFieldError(field, reason string) *StandardError {
	return newValidationError(ErrCodeMissingField, field, reason)
}

// NewOutOfRangeError reports a value outside its permitted length or numeric range.
func NewOutOfRangeError(field, reason string) *StandardError {
	return newValidationError(ErrCodeOutOfRange, field, reason)
}

// NewBadFormatError reports a value that does not match the expected shape.
func NewBadFormatError(field, reason string) *StandardError {
	return newValidationError(ErrCodeBadFormat, field, reason)
}

// NewMutuallyExclusiveError reports two fields that cannot be combined.
func NewMutuallyExclusiveError(field, reason string) *StandardError {
	return newValidationError(ErrCodeMutuallyExclusive, field, reason)
}

// NewUnsupportedOptionError reports an unknown type identifier or enum value.
func NewUnsupportedOptionError(field, reason string) *StandardError {
	return newValidationError(ErrCodeUnsupportedOption, field, reason)
}

func newValidationError(code ErrorCode, field, reason string) *StandardError {
	return &StandardError{
		Code:      code,
		Field:     field,
		Message:   reason,
		Retryable: false,
	}
}

// NewInputParsingFailedError creates a non-retryable envelope parsing error.
func NewInputParsingFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInputParsingFailed,
		Message:   "Failed to parse request input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRenderFailedError creates a retryable render service error.
func NewRenderFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRenderFailed,
		Message:   "QR image rendering failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRenderTimeoutError creates a retryable render timeout error.
func NewRenderTimeoutError(timeout time.Duration) *StandardError {
	return &StandardError{
		Code:      ErrCodeRenderTimeout,
		Message:   "QR image rendering timed out",
		Details:   fmt.Sprintf("timeout: %s", timeout),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewReferenceLoadFailedError creates a non-retryable reference table error.
func NewReferenceLoadFailedError(source string, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeReferenceLoadFailed,
		Message:   fmt.Sprintf("Failed to load reference tables from %s", source),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache error.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Render cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion
// ==========================

// IsValidationCode reports whether code is one of the five validation kinds.
func IsValidationCode(code ErrorCode) bool {
	switch code {
	case ErrCodeMissingField,
		ErrCodeOutOfRange,
		ErrCodeBadFormat,
		ErrCodeMutuallyExclusive,
		ErrCodeUnsupportedOption:
		return true
	default:
		return false
	}
}

// HTTPStatus maps an error code to the status the HTTP adapter responds with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeMissingField, ErrCodeBadFormat, ErrCodeInputParsingFailed:
		return http.StatusBadRequest
	case ErrCodeOutOfRange, ErrCodeMutuallyExclusive:
		return http.StatusUnprocessableEntity
	case ErrCodeUnsupportedOption:
		return http.StatusBadRequest
	case ErrCodeRenderFailed:
		return http.StatusBadGateway
	case ErrCodeRenderTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeCacheUnavailable, ErrCodeReferenceLoadFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetRetryCount returns the recommended retry count for a job failing with code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeRenderFailed, ErrCodeCacheUnavailable:
		return 3
	case ErrCodeRenderTimeout:
		return 2
	default:
		return 0 // validation and parsing errors: no retry
	}
}

// ConvertToJobError converts a StandardError to a JobError for Zeebe.
func ConvertToJobError(stdErr *StandardError) *JobError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	ts := stdErr.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         ts.Format(time.RFC3339),
	}
	if stdErr.Field != "" {
		vars["errorField"] = stdErr.Field
	}

	return &JobError{
		Code:           string(stdErr.Code),
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	if IsValidationCode(code) {
		return "VALIDATION"
	}
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "RENDER"):
		return "RENDER"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "REFERENCE"):
		return "REFERENCE"
	case strings.Contains(codeStr, "INPUT"):
		return "INPUT"
	default:
		return "OTHER"
	}
}

// AsStandardError normalizes any error into a StandardError.
func AsStandardError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}
