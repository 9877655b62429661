// Package gateway exposes the orchestrator over HTTP and a websocket.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/windlant/mcp-client/internal/errorsx"
	"github.com/windlant/mcp-client/internal/logging"
	"github.com/windlant/mcp-client/internal/tools"
	"github.com/windlant/mcp-client/internal/tools/stdio"
)

// Service is the part of the agent the gateway drives.
type Service interface {
	Connect(ctx context.Context, target string) (string, error)
	Disconnect(ctx context.Context) error
	SubmitQuery(ctx context.Context, text string) (string, error)
	Tools() []tools.Descriptor
	IsConnected() bool
}

// Options tunes a Server.
type Options struct {
	Logger *slog.Logger
	// AllowCommands permits "stdio://" targets, which run an arbitrary
	// command line on the host.
	AllowCommands bool
}

type Server struct {
	svc           Service
	logger        *slog.Logger
	allowCommands bool
	upgrader      websocket.Upgrader
}

// New builds a gateway over svc. The websocket endpoint only accepts
// same-origin browser connections.
func New(svc Service, opts Options) *Server {
	return &Server{
		svc:           svc,
		logger:        logging.NewComponentLogger(opts.Logger, "gateway"),
		allowCommands: opts.AllowCommands,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// JSON only: a cross-site form or text/plain post gets 415.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/connect", s.handleConnect)
		r.Post("/disconnect", s.handleDisconnect)
		r.Post("/query", s.handleQuery)
	})
	r.Get("/tools", s.handleTools)
	r.Get("/status", s.handleStatus)
	r.Get("/ws", s.handleWS)
	return r
}

type connectRequest struct {
	Target string `json:"target"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type errorBody struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

type toolView struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema,omitempty"`
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	var req connectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Target) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "target is required", Reason: "invalid_request"})
		return
	}
	summary, err := s.connect(r.Context(), req.Target)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"summary": summary, "tools": toolViews(s.svc.Tools())})
}

// connect refuses command targets unless they were enabled.
func (s *Server) connect(ctx context.Context, target string) (string, error) {
	target = strings.TrimSpace(target)
	if !s.allowCommands && stdio.IsCommandTarget(target) {
		s.logger.Warn("refused command target", "target", target)
		return "", errorsx.Wrap(errCommandTarget, errorsx.ReasonForbiddenTarget)
	}
	return s.svc.Connect(ctx, target)
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Disconnect(r.Context()); err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"connected": false})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "query is required", Reason: "invalid_request"})
		return
	}
	answer, err := s.svc.SubmitQuery(r.Context(), req.Query)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (s *Server) handleTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": toolViews(s.svc.Tools())})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"connected": s.svc.IsConnected(),
		"tools":     len(s.svc.Tools()),
	})
}

func (s *Server) writeErr(w http.ResponseWriter, err error) {
	reason := errorsx.Reason(err)
	code := statusFor(reason)
	if code >= http.StatusInternalServerError {
		s.logger.Warn("request failed", "reason", reason, "error", err)
	}
	writeJSON(w, code, errorBody{Error: err.Error(), Reason: string(reason)})
}

// statusFor maps an error reason to an HTTP status.
func statusFor(reason errorsx.ReasonCode) int {
	switch reason {
	case errorsx.ReasonNotConnected:
		return http.StatusConflict
	case errorsx.ReasonBusy:
		return http.StatusTooManyRequests
	case errorsx.ReasonUnsupportedTarget:
		return http.StatusBadRequest
	case errorsx.ReasonForbiddenTarget:
		return http.StatusForbidden
	case errorsx.ReasonCanceled:
		return http.StatusGatewayTimeout
	case errorsx.ReasonConnect, errorsx.ReasonToolInvocation, errorsx.ReasonUnknownTool,
		errorsx.ReasonToolNameCollision, errorsx.ReasonLLMRequest:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func toolViews(descs []tools.Descriptor) []toolView {
	out := make([]toolView, 0, len(descs))
	for _, d := range descs {
		out = append(out, toolView(d))
	}
	return out
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

var (
	errUnknownAction = errors.New("unknown action")
	errCommandTarget = errors.New("command targets are disabled on this gateway")
)
