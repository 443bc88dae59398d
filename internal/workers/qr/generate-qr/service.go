package generateqr

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/google/uuid"

	"qr-engine/internal/codec"
	"qr-engine/internal/common/errors"
	"qr-engine/internal/common/logger"
	"qr-engine/internal/common/metrics"
	"qr-engine/internal/common/observability"
	"qr-engine/internal/render"
)

// Service encodes a request and, when asked, renders the resulting payload.
// It backs both the Zeebe handler and the HTTP API.
type Service struct {
	config   *Config
	engine   *codec.Engine
	renderer render.Renderer
	logger   logger.Logger
	obs      *observability.Observability
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	obs := deps.Observability
	if obs == nil {
		obs = &observability.Observability{}
	}
	return &Service{
		config:   config,
		engine:   deps.Engine,
		renderer: deps.Renderer,
		logger:   log,
		obs:      obs,
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	requestID := input.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	payload, err := s.encode(ctx, input)
	if err != nil {
		s.logger.Info("QR encode rejected", map[string]interface{}{
			"requestId": requestID,
			"type":      input.Type,
			"error":     err.Error(),
		})
		return nil, err
	}

	output := &Output{
		RequestID:   requestID,
		Type:        string(payload.Type),
		Payload:     payload.Canonical,
		Fingerprint: payload.Fingerprint(),
		Metadata:    payload.Metadata,
	}

	if input.Render {
		if err := s.render(ctx, input, output); err != nil {
			return nil, err
		}
	}

	if err := validateOutput(output); err != nil {
		s.logger.Error("QR output failed schema validation", map[string]interface{}{
			"requestId": requestID,
			"type":      output.Type,
			"error":     err.Error(),
		})
		return nil, err
	}

	s.logger.Info("QR generated", map[string]interface{}{
		"requestId":   requestID,
		"type":        output.Type,
		"fingerprint": output.Fingerprint,
		"rendered":    output.Image != "",
	})
	return output, nil
}

func (s *Service) encode(ctx context.Context, input *Input) (*codec.Payload, error) {
	label := "unknown"
	if t, err := codec.ParseType(input.Type); err == nil {
		label = string(t)
	}

	start := time.Now()
	payload, err := s.engine.Encode(input.Type, input.Fields)
	metrics.QREncodeDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

	invalid := false
	if stdErr := errors.AsStandardError(err); stdErr != nil {
		invalid = stdErr.IsValidation()
	}
	result := metrics.EncodeResult(err, invalid)
	metrics.QREncodeTotal.WithLabelValues(label, result).Inc()
	s.obs.RecordEncode(ctx, label, result)

	return payload, err
}

func (s *Service) render(ctx context.Context, input *Input, output *Output) error {
	if s.renderer == nil || !s.config.RenderEnabled {
		return errors.NewUnsupportedOptionError("render", "image rendering is not enabled on this deployment")
	}

	style := render.StyleOptions{}
	if input.Style != nil {
		style = *input.Style
	}
	style, err := style.Normalize()
	if err != nil {
		return err
	}

	start := time.Now()
	img, err := s.renderer.Render(ctx, output.Payload, style)
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	}
	s.obs.RecordRender(ctx, time.Since(start), result)
	if err != nil {
		return err
	}

	output.Image = base64.StdEncoding.EncodeToString(img)
	output.ContentType = style.ContentType()
	return nil
}

