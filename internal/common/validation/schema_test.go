package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelopeSchema() JSONSchema {
	return JSONSchema{
		Type:     "object",
		Required: []string{"type", "fields"},
		Properties: map[string]Property{
			"type": {
				Type:      "string",
				MinLength: IntPtr(1),
				MaxLength: IntPtr(32),
			},
			"fields": {
				Type: "object",
			},
			"render": {
				Type: "boolean",
			},
			"style": {
				Type: "object",
				Properties: map[string]Property{
					"size": {Type: "integer", Minimum: FloatPtr(128), Maximum: FloatPtr(2048)},
					"format": {Type: "string", Enum: []string{"png", "svg"}},
				},
				AdditionalProperties: BoolPtr(false),
			},
		},
		AdditionalProperties: BoolPtr(false),
	}
}

func TestValidator_Valid(t *testing.T) {
	v, err := Compile(envelopeSchema())
	require.NoError(t, err)

	result := v.Validate(map[string]interface{}{
		"type":   "vietqr",
		"fields": map[string]interface{}{"bankCode": "VCB"},
		"render": true,
		"style":  map[string]interface{}{"size": 512, "format": "png"},
	})

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Nil(t, result.First())
}

func TestValidator_Errors(t *testing.T) {
	v := MustCompile(envelopeSchema())

	tests := []struct {
		name  string
		input map[string]interface{}
		field string
	}{
		{
			name:  "missing type",
			input: map[string]interface{}{"fields": map[string]interface{}{}},
			field: "type",
		},
		{
			name:  "fields is not an object",
			input: map[string]interface{}{"type": "url", "fields": "https://example.com"},
			field: "fields",
		},
		{
			name:  "unknown top level property",
			input: map[string]interface{}{"type": "url", "fields": map[string]interface{}{}, "tenant": "x"},
			field: "tenant",
		},
		{
			name: "style size out of range",
			input: map[string]interface{}{
				"type":   "url",
				"fields": map[string]interface{}{},
				"style":  map[string]interface{}{"size": 4096},
			},
			field: "style.size",
		},
		{
			name: "style format not allowed",
			input: map[string]interface{}{
				"type":   "url",
				"fields": map[string]interface{}{},
				"style":  map[string]interface{}{"format": "gif"},
			},
			field: "style.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.input)
			assert.False(t, result.Valid)
			assert.True(t, result.HasErrors(tt.field), "errors: %v", result.GetErrorMessages())
			assert.NotEmpty(t, result.First().Code)
		})
	}
}

func TestValidateInput_BadSchema(t *testing.T) {
	result := ValidateInput(map[string]interface{}{}, JSONSchema{Type: "no-such-type"})
	assert.False(t, result.Valid)
	assert.Equal(t, "INVALID_SCHEMA", result.First().Code)
}

func TestGetErrorMessages(t *testing.T) {
	vr := &ValidationResult{Errors: []ValidationError{{Field: "type", Message: "is required"}}}
	assert.Equal(t, []string{"type: is required"}, vr.GetErrorMessages())
}
