package generateqr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"qr-engine/internal/codec"
	"qr-engine/internal/common/config"
	"qr-engine/internal/common/errors"
	"qr-engine/internal/common/logger"
	"qr-engine/internal/reference"
	"qr-engine/internal/render"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Renderer
// ==========================

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, payload string, opts render.StyleOptions) ([]byte, error) {
	args := m.Called(ctx, payload, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// ==========================
// Mock Job Helper
// ==========================

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)

	activatedJob := &pb.ActivatedJob{
		Key:                      key,
		Type:                     TaskType,
		ProcessInstanceKey:       key * 10,
		BpmnProcessId:            "test-process",
		ProcessDefinitionVersion: 1,
		ProcessDefinitionKey:     1,
		ElementId:                "Activity_GenerateQR",
		ElementInstanceKey:       1,
		CustomHeaders:            "{}",
		Worker:                   "test-worker",
		Retries:                  3,
		Deadline:                 0,
		Variables:                string(variablesJSON),
	}

	return entities.Job{ActivatedJob: activatedJob}
}

// ==========================
// Test Helpers
// ==========================

func createValidConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30 * time.Second,
		RenderEnabled: true,
	}
}

func createEngine() *codec.Engine {
	return codec.NewEngine(reference.MustDefault(), codec.Options{})
}

func createTestHandler(t *testing.T, renderer render.Renderer) *Handler {
	t.Helper()
	handler, err := NewHandler(HandlerOptions{
		CustomConfig: createValidConfig(),
		Logger:       logger.NewTestLogger(t),
		Engine:       createEngine(),
		Renderer:     renderer,
	})
	require.NoError(t, err)
	return handler
}

func vietQRVariables() map[string]interface{} {
	return map[string]interface{}{
		"type": "vietqr",
		"fields": map[string]interface{}{
			"bankCode":      "vcb",
			"accountNumber": "123 456 789",
			"accountName":   "NGUYEN VAN A",
			"amount":        100000,
		},
	}
}

// ==========================
// Handler Creation Tests
// ==========================

func TestHandler_NewHandler(t *testing.T) {
	tests := []struct {
		name    string
		opts    HandlerOptions
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid configuration",
			opts: HandlerOptions{
				CustomConfig: createValidConfig(),
				Logger:       logger.NewNoOpLogger(),
				Engine:       createEngine(),
			},
		},
		{
			name: "missing engine",
			opts: HandlerOptions{
				CustomConfig: createValidConfig(),
			},
			wantErr: true,
			errMsg:  "codec engine is required",
		},
		{
			name: "invalid timeout",
			opts: HandlerOptions{
				CustomConfig: &Config{Enabled: true, MaxJobsActive: 5, Timeout: -1 * time.Second},
				Engine:       createEngine(),
			},
			wantErr: true,
			errMsg:  "timeout must be positive",
		},
		{
			name: "invalid max jobs active",
			opts: HandlerOptions{
				CustomConfig: &Config{Enabled: true, MaxJobsActive: 0, Timeout: 30 * time.Second},
				Engine:       createEngine(),
			},
			wantErr: true,
			errMsg:  "max_jobs_active must be positive",
		},
		{
			name: "default logger created when not provided",
			opts: HandlerOptions{
				CustomConfig: createValidConfig(),
				Engine:       createEngine(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, err := NewHandler(tt.opts)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, handler)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, handler)
				assert.NotNil(t, handler.config)
				assert.NotNil(t, handler.logger)
				assert.NotNil(t, handler.service)
				assert.Equal(t, TaskType, handler.GetTaskType())
			}
		})
	}
}

func TestHandler_CreateConfigFromAppConfig(t *testing.T) {
	appConfig := &config.Config{
		Workers: map[string]config.WorkerConfig{
			"generate-qr": {Enabled: false, MaxJobsActive: 20, Timeout: 5000},
		},
		Render: config.RenderConfig{Enabled: true},
	}

	cfg := createConfigFromAppConfig(appConfig, nil)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 20, cfg.MaxJobsActive)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.RenderEnabled)

	cfg = createConfigFromAppConfig(&config.Config{}, nil)
	assert.Equal(t, DefaultConfig(), cfg)

	custom := createValidConfig()
	assert.Same(t, custom, createConfigFromAppConfig(appConfig, custom))
}

func TestHandler_RegisterDisabledIsNoOp(t *testing.T) {
	handler, err := NewHandler(HandlerOptions{
		CustomConfig: &Config{Enabled: false, MaxJobsActive: 1, Timeout: time.Second},
		Engine:       createEngine(),
		Logger:       logger.NewNoOpLogger(),
	})
	require.NoError(t, err)

	assert.NoError(t, handler.Register())
	assert.False(t, handler.IsEnabled())
	handler.Close()
}

// ==========================
// Input Parsing Tests
// ==========================

func TestHandler_ParseInput(t *testing.T) {
	handler := createTestHandler(t, nil)

	tests := []struct {
		name      string
		variables map[string]interface{}
		wantErr   bool
		validate  func(*testing.T, *Input)
	}{
		{
			name:      "valid minimal envelope",
			variables: vietQRVariables(),
			validate: func(t *testing.T, input *Input) {
				assert.Equal(t, "vietqr", input.Type)
				assert.Equal(t, "vcb", input.Fields["bankCode"])
				assert.Equal(t, json.Number("100000"), input.Fields["amount"])
				assert.Nil(t, input.Style)
				assert.False(t, input.Render)
			},
		},
		{
			name: "with style and render",
			variables: map[string]interface{}{
				"requestId": "req-1",
				"type":      "url",
				"fields":    map[string]interface{}{"url": "https://example.com"},
				"style":     map[string]interface{}{"size": 256, "margin": 0, "format": "svg"},
				"render":    true,
			},
			validate: func(t *testing.T, input *Input) {
				assert.Equal(t, "req-1", input.RequestID)
				require.NotNil(t, input.Style)
				assert.Equal(t, 256, input.Style.Size)
				require.NotNil(t, input.Style.Margin)
				assert.Equal(t, 0, *input.Style.Margin)
				assert.Equal(t, "svg", input.Style.Format)
				assert.True(t, input.Render)
			},
		},
		{
			name: "extra process variables are ignored",
			variables: map[string]interface{}{
				"type":          "text",
				"fields":        map[string]interface{}{"text": "hi"},
				"customerEmail": "someone@example.com",
			},
		},
		{
			name:      "missing type",
			variables: map[string]interface{}{"fields": map[string]interface{}{}},
			wantErr:   true,
		},
		{
			name:      "missing fields",
			variables: map[string]interface{}{"type": "url"},
			wantErr:   true,
		},
		{
			name:      "fields not an object",
			variables: map[string]interface{}{"type": "url", "fields": "https://example.com"},
			wantErr:   true,
		},
		{
			name: "style size out of range",
			variables: map[string]interface{}{
				"type":   "url",
				"fields": map[string]interface{}{"url": "https://example.com"},
				"style":  map[string]interface{}{"size": 10},
			},
			wantErr: true,
		},
		{
			name: "unknown style option",
			variables: map[string]interface{}{
				"type":   "url",
				"fields": map[string]interface{}{"url": "https://example.com"},
				"style":  map[string]interface{}{"shape": "round"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := createMockJob(12345, tt.variables)

			input, err := handler.parseInput(job)

			if tt.wantErr {
				require.Error(t, err)
				stdErr, ok := err.(*errors.StandardError)
				require.True(t, ok, "error should be StandardError")
				assert.Equal(t, errors.ErrCodeInputParsingFailed, stdErr.Code)
				assert.False(t, stdErr.Retryable)
			} else {
				require.NoError(t, err)
				require.NotNil(t, input)
				if tt.validate != nil {
					tt.validate(t, input)
				}
			}
		})
	}
}

// ==========================
// Execution Tests
// ==========================

func TestHandler_Execute_PayloadOnly(t *testing.T) {
	handler := createTestHandler(t, nil)
	job := createMockJob(1, vietQRVariables())

	input, err := handler.parseInput(job)
	require.NoError(t, err)

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "vietqr", output.Type)
	assert.Equal(t,
		"https://img.vietqr.io/image/VCB-123456789-compact.jpg?accountName=NGUYEN%20VAN%20A&amount=100000",
		output.Payload)
	assert.Len(t, output.Fingerprint, 64)
	assert.NotEmpty(t, output.RequestID)
	assert.Empty(t, output.Image)

	assert.NoError(t, validateOutput(output))
}

func TestHandler_Execute_NumericIdentifiersKeepTheirDigits(t *testing.T) {
	handler := createTestHandler(t, nil)
	job := createMockJob(2, nil)
	job.Variables = `{"type":"vietqr","fields":{"bankCode":"VCB","accountNumber":98765432109876543210,"accountName":"NGUYEN VAN A"}}`

	input, err := handler.parseInput(job)
	require.NoError(t, err)

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, output.Payload, "/VCB-98765432109876543210-compact.jpg")

	job.Variables = `{"type":"vietqr","fields":{"bankCode":"VCB","accountNumber":1234567.5,"accountName":"NGUYEN VAN A"}}`
	input, err = handler.parseInput(job)
	require.NoError(t, err)

	_, err = handler.Execute(context.Background(), input)
	stdErr := errors.AsStandardError(err)
	require.NotNil(t, stdErr)
	assert.Equal(t, errors.ErrCodeBadFormat, stdErr.Code)
	assert.Equal(t, "accountNumber", stdErr.Field)
}

func TestValidateOutput(t *testing.T) {
	valid := &Output{
		RequestID:   "r",
		Type:        "text",
		Payload:     "hi",
		Fingerprint: strings.Repeat("a", 64),
		Metadata:    map[string]interface{}{},
	}
	assert.NoError(t, validateOutput(valid))

	broken := *valid
	broken.Fingerprint = "not-a-hash"
	err := validateOutput(&broken)
	stdErr := errors.AsStandardError(err)
	require.NotNil(t, stdErr)
	assert.Equal(t, errors.ErrCodeInternal, stdErr.Code)
}

func TestHandler_Execute_WithRender(t *testing.T) {
	renderer := new(MockRenderer)
	handler := createTestHandler(t, renderer)

	expectedStyle, err := render.StyleOptions{Size: 256}.Normalize()
	require.NoError(t, err)
	renderer.On("Render", mock.Anything, "https://example.com", expectedStyle).Return([]byte("PNG"), nil)

	output, err := handler.Execute(context.Background(), &Input{
		RequestID: "req-42",
		Type:      "url",
		Fields:    codec.RawFields{"url": "https://example.com"},
		Style:     &render.StyleOptions{Size: 256},
		Render:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, "req-42", output.RequestID)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("PNG")), output.Image)
	assert.Equal(t, "image/png", output.ContentType)
	renderer.AssertExpectations(t)
}

func TestHandler_Execute_Errors(t *testing.T) {
	renderer := new(MockRenderer)
	renderer.On("Render", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.NewRenderTimeoutError(time.Second))
	handler := createTestHandler(t, renderer)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     *Input
		code      errors.ErrorCode
		field     string
		retryable bool
	}{
		{
			name:  "codec validation error",
			input: &Input{Type: "vietqr", Fields: codec.RawFields{"bankCode": "VCB"}},
			code:  errors.ErrCodeMissingField,
			field: "accountNumber",
		},
		{
			name:  "unknown type",
			input: &Input{Type: "bitcoin", Fields: codec.RawFields{}},
			code:  errors.ErrCodeUnsupportedOption,
			field: "type",
		},
		{
			name: "bad style",
			input: &Input{
				Type:   "text",
				Fields: codec.RawFields{"text": "hi"},
				Style:  &render.StyleOptions{Format: "gif"},
				Render: true,
			},
			code:  errors.ErrCodeUnsupportedOption,
			field: "style.format",
		},
		{
			name:      "render timeout is retryable",
			input:     &Input{Type: "text", Fields: codec.RawFields{"text": "hi"}, Render: true},
			code:      errors.ErrCodeRenderTimeout,
			retryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := handler.Execute(ctx, tt.input)
			assert.Nil(t, output)

			stdErr := errors.AsStandardError(err)
			require.NotNil(t, stdErr)
			assert.Equal(t, tt.code, stdErr.Code)
			assert.Equal(t, tt.field, stdErr.Field)
			assert.Equal(t, tt.retryable, stdErr.Retryable)
			assert.Equal(t, string(tt.code), extractErrorCode(err))
		})
	}
}

func TestHandler_Execute_RenderDisabled(t *testing.T) {
	handler, err := NewHandler(HandlerOptions{
		CustomConfig: &Config{Enabled: true, MaxJobsActive: 1, Timeout: time.Second, RenderEnabled: false},
		Engine:       createEngine(),
		Renderer:     new(MockRenderer),
		Logger:       logger.NewNoOpLogger(),
	})
	require.NoError(t, err)

	_, err = handler.Execute(context.Background(), &Input{Type: "text", Fields: codec.RawFields{"text": "hi"}, Render: true})
	stdErr := errors.AsStandardError(err)
	require.NotNil(t, stdErr)
	assert.Equal(t, errors.ErrCodeUnsupportedOption, stdErr.Code)
	assert.Equal(t, "render", stdErr.Field)
}

func TestOutputVariables(t *testing.T) {
	output := &Output{
		RequestID:   "r",
		Type:        "url",
		Payload:     "https://example.com",
		Fingerprint: "abc",
		Metadata:    map[string]interface{}{"url": "https://example.com"},
	}
	vars := outputVariables(output)
	assert.Equal(t, "https://example.com", vars["qrPayload"])
	assert.NotContains(t, vars, "qrImage")

	output.Image = "UE5H"
	output.ContentType = "image/png"
	vars = outputVariables(output)
	assert.Equal(t, "UE5H", vars["qrImage"])
	assert.Equal(t, "image/png", vars["qrContentType"])
}
