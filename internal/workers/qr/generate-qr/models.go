package generateqr

import (
	"qr-engine/internal/codec"
	"qr-engine/internal/common/logger"
	"qr-engine/internal/common/observability"
	"qr-engine/internal/render"
)

// Input is the qr.generate request envelope.
type Input struct {
	RequestID string               `json:"requestId,omitempty"`
	Type      string               `json:"type"`
	Fields    codec.RawFields      `json:"fields"`
	Style     *render.StyleOptions `json:"style,omitempty"`
	Render    bool                 `json:"render,omitempty"`
}

type Output struct {
	RequestID   string                 `json:"requestId"`
	Type        string                 `json:"type"`
	Payload     string                 `json:"payload"`
	Fingerprint string                 `json:"fingerprint"`
	Metadata    map[string]interface{} `json:"metadata"`
	Image       string                 `json:"image,omitempty"` // base64
	ContentType string                 `json:"contentType,omitempty"`
}

type ServiceDependencies struct {
	Engine        *codec.Engine
	Renderer      render.Renderer
	Logger        logger.Logger
	Observability *observability.Observability
}
