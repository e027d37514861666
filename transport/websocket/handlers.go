package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

var (
	errNotConnected     = errors.New("session is not connected")
	errMalformedPayload = errors.New("malformed payload")
	errMissingCell      = errors.New("row and col are required")
)

var ruleErrors = []error{
	apperror.ErrInvalidCoordinate,
	apperror.ErrCellOccupied,
	apperror.ErrInvalidPlayer,
	apperror.ErrGameFinished,
	apperror.ErrGameIsNotStarted,
	apperror.ErrGameAlreadyStarted,
	apperror.ErrNotYourTurn,
	apperror.ErrNotFound,
}

// handleConnect binds the connection to the requested session, creating one
// when the id is empty or has expired.
func (that *Server) handleConnect(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleConnect")

	var req RequestPayload
	if !that.decodePayload(msg, &req) {
		return that.sendErrorResponse(conn, msg.Action, errMalformedPayload.Error())
	}

	session, err := that.uGame.GetOrCreateSession(ctx, req.SessionID)
	if err != nil {
		return that.replyError(conn, msg.Action, err)
	}

	conn.sessionID = session.ID

	log.Info("successfully connected session", "sessionID", session.ID)

	return that.sendMessage(conn, msg.Action, newSessionPayload(session))
}

func (that *Server) handleGameStart(ctx context.Context, conn *connection, msg *Message) error {
	var req RequestPayload
	if !that.decodePayload(msg, &req) {
		return that.sendErrorResponse(conn, msg.Action, errMalformedPayload.Error())
	}

	first, err := entity.ParsePlayer(req.First)
	if err != nil {
		return that.replyError(conn, msg.Action, err)
	}

	return that.applyToSession(conn, msg.Action, func(id string) (*entity.Session, error) {
		return that.uGame.StartGame(ctx, id, first)
	})
}

func (that *Server) handleGameTurn(ctx context.Context, conn *connection, msg *Message) error {
	var req RequestPayload
	if !that.decodePayload(msg, &req) {
		return that.sendErrorResponse(conn, msg.Action, errMalformedPayload.Error())
	}

	if req.Row == nil || req.Col == nil {
		return that.sendErrorResponse(conn, msg.Action, errMissingCell.Error())
	}

	return that.applyToSession(conn, msg.Action, func(id string) (*entity.Session, error) {
		return that.uGame.MakeTurn(ctx, id, *req.Row, *req.Col)
	})
}

func (that *Server) handleGameRestart(ctx context.Context, conn *connection, msg *Message) error {
	return that.applyToSession(conn, msg.Action, func(id string) (*entity.Session, error) {
		return that.uGame.PlayAgain(ctx, id)
	})
}

func (that *Server) handleStatsReset(ctx context.Context, conn *connection, msg *Message) error {
	return that.applyToSession(conn, msg.Action, func(id string) (*entity.Session, error) {
		return that.uGame.ResetStats(ctx, id)
	})
}

func (that *Server) handleStatsGet(ctx context.Context, conn *connection, msg *Message) error {
	if conn.sessionID == "" {
		return that.sendErrorResponse(conn, msg.Action, errNotConnected.Error())
	}

	stats, err := that.uGame.GetStats(ctx, conn.sessionID)
	if err != nil {
		return that.replyError(conn, msg.Action, err)
	}

	return that.sendMessage(conn, msg.Action, ResponsePayload{Stats: newStatsPayload(stats)})
}

func (that *Server) handleSessionEnd(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleSessionEnd")

	if conn.sessionID == "" {
		return that.sendErrorResponse(conn, msg.Action, errNotConnected.Error())
	}

	if err := that.uGame.EndSession(ctx, conn.sessionID); err != nil {
		return that.replyError(conn, msg.Action, err)
	}

	log.Info("session ended", "sessionID", conn.sessionID)
	conn.sessionID = ""

	return that.sendMessage(conn, msg.Action, ResponsePayload{})
}

func (that *Server) applyToSession(conn *connection, action string, apply func(id string) (*entity.Session, error)) error {
	if conn.sessionID == "" {
		return that.sendErrorResponse(conn, action, errNotConnected.Error())
	}

	session, err := apply(conn.sessionID)
	if err != nil {
		return that.replyError(conn, action, err)
	}

	return that.sendMessage(conn, action, newSessionPayload(session))
}

// replyError reports rule violations to the client as they are and hides
// everything else behind a generic message.
func (that *Server) replyError(conn *connection, action string, err error) error {
	for _, ruleErr := range ruleErrors {
		if errors.Is(err, ruleErr) {
			return that.sendErrorResponse(conn, action, err.Error())
		}
	}

	that.logger.Error("failed to process action", "action", action, "sessionID", conn.sessionID, "error", err)

	return that.sendErrorResponse(conn, action, "internal error")
}

// decodePayload accepts a missing payload as an empty one.
func (that *Server) decodePayload(msg *Message, req *RequestPayload) bool {
	if len(msg.Payload) == 0 {
		return true
	}

	return json.Unmarshal(msg.Payload, req) == nil
}
