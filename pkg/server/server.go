package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/titleserve/pkg/config"
	"github.com/bastiangx/titleserve/pkg/finder"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles msgpack IPC against a shared finder runtime
type Server struct {
	runtime  *finder.Runtime
	config   *config.Config
	decoder  *msgpack.Decoder
	encoder  *msgpack.Encoder
	requests int
}

// NewServer creates a server reading requests from r and writing responses
// to w, typically stdin and stdout.
func NewServer(rt *finder.Runtime, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		runtime: rt,
		config:  cfg,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
	}
}

// Start signals readiness and serves requests until the input ends. A
// malformed message ends the session, as the stream cannot be resynced.
func (s *Server) Start() error {
	log.Debug("Starting Server.")
	s.sendResponse(StatusMessage{Status: "ready"})

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("Input closed after %d requests", s.requests)
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			s.sendError("", "invalid msgpack request", 400)
			return fmt.Errorf("decode request: %w", err)
		}
		s.handleRequest(req)
	}
}

// handleRequest dispatches on the request action
func (s *Server) handleRequest(req Request) {
	s.requests++
	switch strings.ToLower(req.Action) {
	case "", "find":
		s.handleFind(req)
	case "batch":
		s.handleBatch(req)
	case "lookup":
		s.handleLookup(req)
	case "info":
		s.handleInfo(req)
	case "reload":
		s.handleReload(req)
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

// sendResponse encodes one response message
func (s *Server) sendResponse(response any) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{ID: id, Error: message, Code: code})
}

// resolveLongest applies the per-request raw flag over the configured default
func (s *Server) resolveLongest(req Request) bool {
	return s.config.Finder.ResolveLongest && !req.Raw
}

func (s *Server) checkText(id, text string) bool {
	if len(text) > s.config.Server.MaxTextLen {
		s.sendError(id, fmt.Sprintf("text exceeds %d bytes", s.config.Server.MaxTextLen), 413)
		log.Debugf("Rejected text of %d bytes", len(text))
		return false
	}
	return true
}

// scanErrorCode maps a finder error to a response code
func scanErrorCode(err error) int {
	var scanErr *finder.ScanError
	if errors.As(err, &scanErr) {
		return 422
	}
	return 500
}

func toResults(matches []finder.Match) []MatchResult {
	out := make([]MatchResult, len(matches))
	for i, m := range matches {
		out[i] = MatchResult{Start: m.Start, End: m.End, Text: m.Text}
	}
	return out
}

func (s *Server) handleFind(req Request) {
	if !s.checkText(req.ID, req.Text) {
		return
	}
	start := time.Now()
	matches, err := s.runtime.Current().FindAll(req.Text, s.resolveLongest(req))
	if err != nil {
		s.sendError(req.ID, err.Error(), scanErrorCode(err))
		return
	}
	s.sendResponse(FindResponse{
		ID:        req.ID,
		Matches:   toResults(matches),
		Count:     len(matches),
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server) handleBatch(req Request) {
	if len(req.Texts) == 0 {
		s.sendError(req.ID, "missing 'ts' parameter", 400)
		return
	}
	for _, text := range req.Texts {
		if !s.checkText(req.ID, text) {
			return
		}
	}

	start := time.Now()
	batches, err := s.runtime.Current().FindAllBatch(context.Background(), req.Texts, s.resolveLongest(req), s.config.Server.Workers)
	if err != nil {
		s.sendError(req.ID, err.Error(), scanErrorCode(err))
		return
	}
	resp := BatchResponse{ID: req.ID, Results: make([][]MatchResult, len(batches))}
	for i, matches := range batches {
		resp.Results[i] = toResults(matches)
		resp.Count += len(matches)
	}
	resp.TimeTaken = time.Since(start).Microseconds()
	s.sendResponse(resp)
}

func (s *Server) handleLookup(req Request) {
	if strings.TrimSpace(req.Prefix) == "" {
		s.sendError(req.ID, "missing 'p' parameter", 400)
		return
	}
	limit := req.Limit
	if limit <= 0 {
		limit = s.config.CLI.DefaultLimit
	}
	limit = min(limit, s.config.Server.MaxLimit)

	start := time.Now()
	suggestions := s.runtime.Current().Lookup(req.Prefix, limit)
	s.sendResponse(LookupResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   time.Since(start).Microseconds(),
	})
}

func (s *Server) handleInfo(req Request) {
	info := s.runtime.Info()
	s.sendResponse(InfoResponse{
		ID:         req.ID,
		Status:     "ok",
		Patterns:   info.Patterns,
		States:     info.States,
		IgnoreCase: info.IgnoreCase,
		Backend:    info.Backend,
		Builds:     info.Builds,
		Requests:   s.requests,
	})
}

func (s *Server) handleReload(req Request) {
	if err := s.runtime.Reload(); err != nil {
		s.sendError(req.ID, err.Error(), 500)
		return
	}
	s.sendResponse(ReloadResponse{
		ID:       req.ID,
		Status:   "ok",
		Patterns: s.runtime.Info().Patterns,
	})
}
