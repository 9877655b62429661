package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/windlant/mcp-client/internal/errorsx"
)

// wsRequest is one inbound websocket frame. Action is "query" (default),
// "connect", "disconnect" or "tools".
type wsRequest struct {
	Action string `json:"action"`
	Text   string `json:"text"`
}

type wsResponse struct {
	Action string     `json:"action"`
	Text   string     `json:"text,omitempty"`
	Tools  []toolView `json:"tools,omitempty"`
	Error  string     `json:"error,omitempty"`
	Reason string     `json:"reason,omitempty"`
}

// handleWS serves a chat loop: each text frame is answered with exactly
// one frame, in order.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(1 << 20)

	ctx := r.Context()
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("websocket closed", "error", err)
			}
			return
		}
		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			req = wsRequest{Action: "query", Text: string(msg)}
		}
		resp := s.dispatch(ctx, req)
		if err := conn.WriteJSON(resp); err != nil {
			s.logger.Debug("websocket write failed", "error", err)
			return
		}
	}
}

func (s *Server) dispatch(ctx context.Context, req wsRequest) wsResponse {
	action := strings.ToLower(strings.TrimSpace(req.Action))
	if action == "" {
		action = "query"
	}
	resp := wsResponse{Action: action}

	var err error
	switch action {
	case "query":
		resp.Text, err = s.svc.SubmitQuery(ctx, req.Text)
	case "connect":
		resp.Text, err = s.connect(ctx, req.Text)
	case "disconnect":
		err = s.svc.Disconnect(ctx)
	case "tools":
		resp.Tools = toolViews(s.svc.Tools())
	default:
		err = fmt.Errorf("%w: %q", errUnknownAction, req.Action)
	}
	if err != nil {
		resp.Text = ""
		resp.Error = errorsx.UserMessage(err)
		resp.Reason = string(errorsx.Reason(err))
	}
	return resp
}
