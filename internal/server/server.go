// Package server provides the local HTTP bridge the IDE plugin talks to.
//
// The server exposes a small JSON API:
//
//   - POST {base}/v1/encode - Encode a debug payload with the ZIP-variant
//     codec. Returns the transport string and the full web IDE URL, and
//     optionally opens that URL in the local browser.
//   - POST {base}/v1/decode - Decode a deflate-variant transport string
//     returned by the web IDE. Optionally dumps the decoded fields to
//     flat files for inspection.
//   - GET /health - Liveness probe.
//
// Codec failures map to HTTP 400 with a machine-readable error kind;
// everything else is a 500. The server performs no authentication: it
// binds for a single developer on a local port.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/MarkTrayford/CPIDebugLocal/internal/browser"
	"github.com/MarkTrayford/CPIDebugLocal/internal/config"
	"github.com/MarkTrayford/CPIDebugLocal/internal/dump"
	"github.com/MarkTrayford/CPIDebugLocal/pkg/codec"
	"github.com/MarkTrayford/CPIDebugLocal/pkg/payload"
)

// maxRequestBody caps inbound request bodies. Transport strings stay
// comfortably under this even for large scripts.
const maxRequestBody = 16 << 20

// Server is the bridge HTTP server
type Server struct {
	config  *config.Config
	logger  *slog.Logger
	httpSrv *http.Server

	zipCodec     *codec.ZipCodec
	deflateCodec *codec.DeflateCodec
	dumpWriter   *dump.Writer

	// openBrowser is swappable so tests don't launch anything
	openBrowser func(url string) error
}

// New creates a new bridge server
func New(cfg *config.Config, logger *slog.Logger) *Server {
	codecOpts := []codec.Option{codec.WithLogger(logger)}
	if cfg.Codec.MaxDecodedBytes > 0 {
		codecOpts = append(codecOpts, codec.WithMaxDecodedSize(cfg.Codec.MaxDecodedBytes))
	}

	s := &Server{
		config:       cfg,
		logger:       logger,
		zipCodec:     codec.NewZipCodec(codecOpts...),
		deflateCodec: codec.NewDeflateCodec(codecOpts...),
		openBrowser:  browser.Open,
	}
	if cfg.Dump.Enabled {
		s.dumpWriter = dump.NewWriter(cfg.Dump.Dir)
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpSrv = &http.Server{
		Handler: mux,
	}
	return s
}

// Start begins serving on the given address, blocking until the server
// stops
func (s *Server) Start(addr string) error {
	s.httpSrv.Addr = addr
	s.logger.Info("starting bridge server", "addr", addr, "webIDE", s.config.WebIDE.BaseURL)
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Handler returns the server's HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	basePath := strings.TrimRight(s.config.Server.BasePath, "/")

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST "+basePath+"/v1/encode", s.handleEncode)
	mux.HandleFunc("POST "+basePath+"/v1/decode", s.handleDecode)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}

type encodeRequest struct {
	Payload *payload.DebugPayload `json:"payload"`
}

type encodeResponse struct {
	Transport string `json:"transport"`
	URL       string `json:"url"`
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	log := s.logger.With("request", uuid.NewString())

	var req encodeRequest
	if err := s.readJSON(w, r, &req); err != nil {
		log.Warn("rejecting encode request", "error", err)
		s.jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Payload == nil {
		s.jsonError(w, "payload is required", http.StatusBadRequest)
		return
	}
	req.Payload.Normalize()

	transport, err := s.zipCodec.Encode(req.Payload)
	if err != nil {
		log.Error("encode failed", "error", err)
		s.codecError(w, err)
		return
	}

	ideURL := strings.TrimRight(s.config.WebIDE.BaseURL, "/") + "/" + transport
	log.Info("encoded debug session",
		"sessionType", req.Payload.CurrentSessionType,
		"transport_chars", len(transport),
	)

	if s.config.WebIDE.OpenBrowser {
		// Best effort only; the transport string is in the response
		// either way.
		if err := s.openBrowser(ideURL); err != nil {
			log.Warn("could not open browser", "error", err)
		}
	}

	s.jsonResponse(w, encodeResponse{Transport: transport, URL: ideURL}, http.StatusOK)
}

type decodeRequest struct {
	Transport string `json:"transport"`
}

type decodeResponse struct {
	Payload *payload.DebugPayload `json:"payload"`
	DumpDir string                `json:"dumpDir,omitempty"`
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	log := s.logger.With("request", uuid.NewString())

	var req decodeRequest
	if err := s.readJSON(w, r, &req); err != nil {
		log.Warn("rejecting decode request", "error", err)
		s.jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Transport == "" {
		s.jsonError(w, "transport is required", http.StatusBadRequest)
		return
	}

	p, err := s.deflateCodec.Decode(req.Transport)
	if err != nil {
		log.Error("decode failed", "error", err)
		s.codecError(w, err)
		return
	}

	resp := decodeResponse{Payload: p}
	if s.dumpWriter != nil {
		dir, err := s.dumpWriter.Write(uuid.NewString(), p)
		if err != nil {
			log.Error("dump failed", "error", err)
			s.jsonError(w, "writing dump files failed", http.StatusInternalServerError)
			return
		}
		resp.DumpDir = dir
		log.Info("dumped decoded session", "dir", dir)
	}

	log.Info("decoded debug session", "sessionType", p.CurrentSessionType)
	s.jsonResponse(w, resp, http.StatusOK)
}

func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("parsing request body: %w", err)
	}
	return nil
}

// codecError maps a codec failure to an HTTP response. Every codec
// error is a deterministic rejection of the input, so they are all
// client errors with an identifiable kind.
func (s *Server) codecError(w http.ResponseWriter, err error) {
	var (
		encodeErr   *codec.EncodeError
		decodeErr   *codec.DecodeError
		encodingErr *codec.EncodingError
		parseErr    *codec.ParseError
		tooLarge    *codec.PayloadTooLargeError
	)

	var kind string
	switch {
	case errors.As(err, &decodeErr):
		kind = "decode." + string(decodeErr.Stage)
	case errors.As(err, &encodingErr):
		kind = "encoding"
	case errors.As(err, &parseErr):
		kind = "parse"
	case errors.As(err, &tooLarge):
		kind = "payload_too_large"
	case errors.As(err, &encodeErr):
		kind = "encode"
	default:
		s.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.jsonResponse(w, map[string]string{
		"error":  kind,
		"detail": err.Error(),
	}, http.StatusBadRequest)
}

func (s *Server) jsonResponse(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) jsonError(w http.ResponseWriter, message string, status int) {
	s.jsonResponse(w, map[string]string{"error": message}, status)
}
