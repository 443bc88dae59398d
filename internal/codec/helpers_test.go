package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"qr-engine/internal/common/errors"
	"qr-engine/internal/reference"
)

func newTestEngine(t testing.TB) *Engine {
	t.Helper()
	return NewEngine(reference.MustDefault(), Options{})
}

func mustEncode(t testing.TB, e *Engine, typeID string, raw RawFields) *Payload {
	t.Helper()
	p, err := e.Encode(typeID, raw)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func requireValidation(t testing.TB, err error, code errors.ErrorCode, field string) {
	t.Helper()
	require.Error(t, err)
	stdErr := errors.AsStandardError(err)
	require.NotNil(t, stdErr, "expected *StandardError, got %T", err)
	require.Equal(t, code, stdErr.Code, stdErr.Message)
	require.Equal(t, field, stdErr.Field, stdErr.Message)
}

type rejectCase struct {
	name  string
	raw   RawFields
	code  errors.ErrorCode
	field string
}

func runRejects(t *testing.T, e *Engine, typeID string, cases []rejectCase) {
	t.Helper()
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			p, err := e.Encode(typeID, tt.raw)
			require.Nil(t, p)
			requireValidation(t, err, tt.code, tt.field)
		})
	}
}
