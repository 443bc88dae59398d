package errors

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *StandardError
		code ErrorCode
	}{
		{"missing field", NewMissingFieldError("bankCode", "bankCode is required"), ErrCodeMissingField},
		{"out of range", NewOutOfRangeError("amount", "amount must not exceed 500000000"), ErrCodeOutOfRange},
		{"bad format", NewBadFormatError("merchantId", "merchantId must be exactly 10 digits"), ErrCodeBadFormat},
		{"mutually exclusive", NewMutuallyExclusiveError("openChatCode", "only one identifier allowed"), ErrCodeMutuallyExclusive},
		{"unsupported option", NewUnsupportedOptionError("currency", "currency USD is not supported"), ErrCodeUnsupportedOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.NotEmpty(t, tt.err.Field)
			assert.NotEmpty(t, tt.err.Message)
			assert.False(t, tt.err.Retryable)
			assert.True(t, tt.err.IsValidation())
			assert.True(t, tt.err.Timestamp.IsZero(), "validation errors must not read the clock")
			assert.Contains(t, tt.err.Error(), string(tt.code))
			assert.Contains(t, tt.err.Error(), tt.err.Field)
		})
	}
}

func TestValidationErrorsAreComparable(t *testing.T) {
	a := NewOutOfRangeError("amount", "amount must not exceed 500000000")
	b := NewOutOfRangeError("amount", "amount must not exceed 500000000")
	assert.Equal(t, a, b)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeMissingField, http.StatusBadRequest},
		{ErrCodeBadFormat, http.StatusBadRequest},
		{ErrCodeUnsupportedOption, http.StatusBadRequest},
		{ErrCodeOutOfRange, http.StatusUnprocessableEntity},
		{ErrCodeMutuallyExclusive, http.StatusUnprocessableEntity},
		{ErrCodeInputParsingFailed, http.StatusBadRequest},
		{ErrCodeRenderFailed, http.StatusBadGateway},
		{ErrCodeRenderTimeout, http.StatusGatewayTimeout},
		{ErrCodeCacheUnavailable, http.StatusServiceUnavailable},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}

func TestConvertToJobError(t *testing.T) {
	t.Run("validation error is not retried", func(t *testing.T) {
		jobErr := ConvertToJobError(NewBadFormatError("merchantId", "merchantId must be exactly 10 digits"))

		assert.Equal(t, "BAD_FORMAT", jobErr.Code)
		assert.False(t, jobErr.Retryable)
		assert.Equal(t, 0, jobErr.Retries)

		vars := jobErr.ToErrorVariables()
		assert.Equal(t, "BAD_FORMAT", vars["errorCode"])
		assert.Equal(t, "merchantId", vars["errorField"])
		assert.Equal(t, "BAD_FORMAT", vars["originalErrorCode"])
		_, err := time.Parse(time.RFC3339, vars["timestamp"].(string))
		assert.NoError(t, err)
	})

	t.Run("render failure is retried", func(t *testing.T) {
		jobErr := ConvertToJobError(NewRenderFailedError(fmt.Errorf("503 from render service")))

		assert.True(t, jobErr.Retryable)
		assert.Equal(t, 3, jobErr.Retries)
		assert.Equal(t, "503 from render service", jobErr.Details)
	})

	t.Run("render timeout uses partial retry", func(t *testing.T) {
		jobErr := ConvertToJobError(NewRenderTimeoutError(3 * time.Second))
		assert.Equal(t, 2, jobErr.Retries)
	})
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeOutOfRange))
	assert.Equal(t, "RENDER", GetErrorCategory(ErrCodeRenderTimeout))
	assert.Equal(t, "CACHE", GetErrorCategory(ErrCodeCacheUnavailable))
	assert.Equal(t, "REFERENCE", GetErrorCategory(ErrCodeReferenceLoadFailed))
	assert.Equal(t, "INPUT", GetErrorCategory(ErrCodeInputParsingFailed))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

func TestAsStandardError(t *testing.T) {
	assert.Nil(t, AsStandardError(nil))

	original := NewMissingFieldError("url", "url is required")
	wrapped := fmt.Errorf("encode pdf: %w", original)
	require.Same(t, original, AsStandardError(wrapped))

	plain := AsStandardError(fmt.Errorf("boom"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "boom", plain.Details)
	assert.False(t, IsRetryableErrorCode(plain.Code))
}
