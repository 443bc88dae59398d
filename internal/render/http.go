package render

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"time"

	"qr-engine/internal/common/errors"
	httpclient "qr-engine/internal/common/http"
	"qr-engine/internal/common/logger"
	"qr-engine/internal/common/metrics"
)

const maxImageBytes = 8 << 20

type renderRequest struct {
	Payload string       `json:"payload"`
	Options StyleOptions `json:"options"`
}

// HTTPRenderer posts payloads to the render service and returns the response
// body as the image.
type HTTPRenderer struct {
	client  *httpclient.Client
	url     string
	timeout time.Duration
	logger  logger.Logger
}

func NewHTTPRenderer(serviceURL string, timeout time.Duration, log logger.Logger) *HTTPRenderer {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &HTTPRenderer{
		client:  httpclient.NewClient(timeout),
		url:     serviceURL,
		timeout: timeout,
		logger:  log,
	}
}

func (r *HTTPRenderer) Render(ctx context.Context, payload string, opts StyleOptions) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	img, err := r.render(ctx, payload, opts)
	if err != nil {
		metrics.QRRenderTotal.WithLabelValues(metrics.ResultError).Inc()
		r.logger.Warn("render failed", map[string]interface{}{
			"error":       err.Error(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil, err
	}

	metrics.QRRenderTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	r.logger.Debug("rendered", map[string]interface{}{
		"bytes":       len(img),
		"format":      opts.Format,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return img, nil
}

func (r *HTTPRenderer) render(ctx context.Context, payload string, opts StyleOptions) ([]byte, error) {
	resp, err := r.client.PostJSON(ctx, r.url, renderRequest{Payload: payload, Options: opts})
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, errors.NewRenderTimeoutError(r.timeout)
		}
		return nil, errors.NewRenderFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, errors.NewRenderFailedError(fmt.Errorf("render service returned status %d", resp.StatusCode))
	}

	img, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, errors.NewRenderTimeoutError(r.timeout)
		}
		return nil, errors.NewRenderFailedError(fmt.Errorf("read render response: %w", err))
	}
	if len(img) == 0 {
		return nil, errors.NewRenderFailedError(fmt.Errorf("render service returned an empty body"))
	}
	if len(img) > maxImageBytes {
		return nil, errors.NewRenderFailedError(fmt.Errorf("render response exceeds %d bytes", maxImageBytes))
	}
	return img, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}
