// Package api exposes the QR engine over HTTP. It shares the generate-qr
// service with the Zeebe worker, so both surfaces return identical results.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"qr-engine/internal/codec"
	"qr-engine/internal/common/config"
	"qr-engine/internal/common/errors"
	"qr-engine/internal/common/logger"
	generateqr "qr-engine/internal/workers/qr/generate-qr"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	DefaultAddress      = ":8080"
	DefaultMaxBodyBytes = 64 << 10
	DefaultMetricsPath  = "/metrics"
)

// Generator is the part of the generate-qr service the API needs.
type Generator interface {
	Execute(ctx context.Context, input *generateqr.Input) (*generateqr.Output, error)
}

// HealthFunc reports whether a dependency is usable.
type HealthFunc func(ctx context.Context) error

type Options struct {
	Config    config.ServerConfig
	Generator Generator
	Logger    logger.Logger
	Health    HealthFunc
}

type Server struct {
	cfg       config.ServerConfig
	generator Generator
	logger    logger.Logger
	health    HealthFunc
	mux       *http.ServeMux
	http      *http.Server
}

func NewServer(opts Options) (*Server, error) {
	if opts.Generator == nil {
		return nil, fmt.Errorf("api: generator is required")
	}

	cfg := opts.Config
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = DefaultMetricsPath
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	s := &Server{
		cfg:       cfg,
		generator: opts.Generator,
		logger:    log,
		health:    opts.Health,
		mux:       http.NewServeMux(),
	}
	s.routes()

	s.http = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.mux,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Millisecond,
	}
	return s, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /v1/qr", s.handleGenerate)
	s.mux.HandleFunc("POST /v1/qr/{type}", s.handleGenerateType)
	s.mux.HandleFunc("GET /v1/qr/types", s.handleTypes)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /ready", s.handleReady)
	s.mux.Handle("GET "+s.cfg.MetricsPath, promhttp.Handler())
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", map[string]interface{}{
		"address":     s.cfg.Address,
		"metricsPath": s.cfg.MetricsPath,
	})
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// handleGenerate accepts the full request envelope, type included.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.generate(w, r, body)
}

// handleGenerateType takes the type from the path. The body is either the
// bare fields object or an envelope carrying "fields".
func (s *Server) handleGenerateType(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var envelope map[string]json.RawMessage
	if err := unmarshalNumbers(body, &envelope); err != nil {
		s.writeError(w, r, errors.NewInputParsingFailedError(err.Error()))
		return
	}
	if raw, ok := envelope["fields"]; !ok || !isJSONObject(raw) {
		envelope = map[string]json.RawMessage{"fields": body}
	}
	envelope["type"] = mustMarshal(r.PathValue("type"))

	if q := r.URL.Query(); q.Get("render") == "true" {
		envelope["render"] = json.RawMessage("true")
		if f := q.Get("format"); f != "" {
			style := map[string]json.RawMessage{}
			if raw, ok := envelope["style"]; ok {
				if err := unmarshalNumbers(raw, &style); err != nil {
					s.writeError(w, r, errors.NewInputParsingFailedError(fmt.Sprintf("style: %s", err)))
					return
				}
			}
			style["format"] = mustMarshal(f)
			envelope["style"] = mustMarshal(style)
		}
	}

	s.generate(w, r, mustMarshal(envelope))
}

// generate runs an envelope through the same parsing and schema check as
// the Zeebe worker before executing it.
func (s *Server) generate(w http.ResponseWriter, r *http.Request, envelope []byte) {
	input, err := generateqr.ParseInput(envelope)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if input.RequestID == "" {
		input.RequestID = r.Header.Get("X-Request-ID")
	}

	output, err := s.generator.Execute(r.Context(), input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("X-Request-ID", output.RequestID)
	writeJSON(w, http.StatusOK, output)
}

func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	types := codec.AllTypes()
	ids := make([]string, len(types))
	for i, t := range types {
		ids[i] = string(t)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"types": ids})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			s.logger.Warn("Readiness check failed", map[string]interface{}{"error": err.Error()})
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"error":  err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		return nil, errors.NewInputParsingFailedError(err.Error())
	}
	if !json.Valid(body) {
		return nil, errors.NewInputParsingFailedError("request body is not valid JSON")
	}
	return body, nil
}

// unmarshalNumbers keeps JSON numbers as json.Number so identifiers sent
// as numbers reach the codec with their exact digits.
func unmarshalNumbers(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON value")
	}
	return nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := errors.AsStandardError(err)
	status := errors.HTTPStatus(stdErr.Code)

	fields := map[string]interface{}{
		"method": r.Method,
		"path":   r.URL.Path,
		"code":   string(stdErr.Code),
		"status": status,
	}
	if status >= http.StatusInternalServerError {
		fields["error"] = err.Error()
		s.logger.Error("Request failed", fields)
	} else {
		s.logger.Debug("Request rejected", fields)
	}

	writeJSON(w, status, stdErr)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func isJSONObject(raw json.RawMessage) bool {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}

// mustMarshal encodes values that are JSON-safe by construction.
func mustMarshal(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
