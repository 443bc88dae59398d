package generateqr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"qr-engine/internal/common/errors"
	"qr-engine/internal/common/validation"
)

// Validators are compiled once; gojsonschema schemas are safe to share.
var (
	inputValidator  = validation.MustCompile(GetInputSchema())
	outputValidator = validation.MustCompile(GetOutputSchema())
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"type", "fields"},
		Properties: map[string]validation.Property{
			"requestId": {
				Type:        "string",
				Description: "Caller supplied correlation id",
				MaxLength:   validation.IntPtr(64),
			},
			"type": {
				Type:        "string",
				Description: "QR type identifier, e.g. vietqr",
				MinLength:   validation.IntPtr(1),
				MaxLength:   validation.IntPtr(32),
			},
			"fields": {
				Type:        "object",
				Description: "Type specific fields, validated by the codec",
			},
			"style": {
				Type:        "object",
				Description: "Render options",
				Properties: map[string]validation.Property{
					"size": {
						Type:    "integer",
						Minimum: validation.FloatPtr(128),
						Maximum: validation.FloatPtr(2048),
					},
					"margin": {
						Type:    "integer",
						Minimum: validation.FloatPtr(0),
						Maximum: validation.FloatPtr(16),
					},
					"errorCorrection": {Type: "string", MaxLength: validation.IntPtr(1)},
					"foreground":      {Type: "string", Pattern: "^#[0-9A-Fa-f]{6}$"},
					"background":      {Type: "string", Pattern: "^#[0-9A-Fa-f]{6}$"},
					"format":          {Type: "string", MaxLength: validation.IntPtr(8)},
				},
				AdditionalProperties: validation.BoolPtr(false),
			},
			"render": {
				Type:        "boolean",
				Description: "Render an image in addition to the payload",
			},
		},
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"requestId", "type", "payload", "fingerprint", "metadata"},
		Properties: map[string]validation.Property{
			"requestId":   {Type: "string"},
			"type":        {Type: "string"},
			"payload":     {Type: "string", MinLength: validation.IntPtr(1)},
			"fingerprint": {Type: "string", Pattern: "^[0-9a-f]{64}$"},
			"metadata":    {Type: "object"},
			"image":       {Type: "string"},
			"contentType": {Type: "string"},
		},
		AdditionalProperties: validation.BoolPtr(false),
	}
}

// ParseInput decodes a request envelope, checks it against the input schema
// and returns the typed Input. Numbers stay json.Number so identifiers sent
// as JSON numbers keep their exact digits. The Zeebe handler and the HTTP
// adapter both go through here.
func ParseInput(data []byte) (*Input, error) {
	var variables map[string]interface{}
	if err := decodeNumbers(data, &variables); err != nil {
		return nil, errors.NewInputParsingFailedError(err.Error())
	}

	result := inputValidator.Validate(variables)
	if !result.Valid {
		return nil, errors.NewInputParsingFailedError(
			fmt.Sprintf("Validation errors: %s", strings.Join(result.GetErrorMessages(), "; ")))
	}

	var input Input
	if err := decodeNumbers(data, &input); err != nil {
		return nil, errors.NewInputParsingFailedError(err.Error())
	}
	return &input, nil
}

// validateOutput checks a built output against the output schema.
func validateOutput(output *Output) error {
	data, err := json.Marshal(output)
	if err != nil {
		return errors.NewInternalError(err)
	}
	var variables map[string]interface{}
	if err := decodeNumbers(data, &variables); err != nil {
		return errors.NewInternalError(err)
	}

	result := outputValidator.Validate(variables)
	if !result.Valid {
		return errors.NewInternalError(
			fmt.Errorf("output schema: %s", strings.Join(result.GetErrorMessages(), "; ")))
	}
	return nil
}

func decodeNumbers(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
