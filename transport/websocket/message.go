package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	actionConnect     = "connect"
	actionGameStart   = "game:start"
	actionGameTurn    = "game:turn"
	actionGameRestart = "game:restart"
	actionStatsGet    = "stats:get"
	actionStatsReset  = "stats:reset"
	actionSessionEnd  = "session:end"
	actionError       = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	SessionID string `json:"session_id,omitempty"`
	First     string `json:"first,omitempty"`
	Row       *int   `json:"row,omitempty"`
	Col       *int   `json:"col,omitempty"`
}

type ResponsePayload struct {
	Session     *entity.Session `json:"session,omitempty"`
	WinningLine []entity.Move   `json:"winning_line,omitempty"`
	Stats       *StatsPayload   `json:"stats,omitempty"`
	Error       string          `json:"error,omitempty"`
}

type StatsPayload struct {
	entity.Stats
	Breakdown entity.Breakdown `json:"breakdown"`
}

func newSessionPayload(session *entity.Session) ResponsePayload {
	return ResponsePayload{
		Session:     session,
		WinningLine: session.Board.WinningLine(),
		Stats:       newStatsPayload(session.Stats),
	}
}

func newStatsPayload(stats entity.Stats) *StatsPayload {
	return &StatsPayload{
		Stats:     stats,
		Breakdown: stats.Breakdown(),
	}
}

func (that *Server) sendMessage(conn *connection, action string, payload ResponsePayload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response, err := json.Marshal(Message{Action: action, Payload: payloadBytes})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err = conn.ws.WriteMessage(websocket.TextMessage, response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(conn *connection, action, errorMsg string) error {
	if err := that.sendMessage(conn, action, ResponsePayload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
