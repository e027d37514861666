package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

var ErrBadRequest = errors.New("bad request body")

type uGame interface {
	CreateSession(ctx context.Context) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)
	StartGame(ctx context.Context, id string, first entity.Player) (*entity.Session, error)
	MakeTurn(ctx context.Context, id string, row, col int) (*entity.Session, error)
	PlayAgain(ctx context.Context, id string) (*entity.Session, error)
	ResetStats(ctx context.Context, id string) (*entity.Session, error)
	GetStats(ctx context.Context, id string) (entity.Stats, error)
	EndSession(ctx context.Context, id string) error
}

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	CreateSession(w http.ResponseWriter, r *http.Request)
	GetSession(w http.ResponseWriter, r *http.Request)
	EndSession(w http.ResponseWriter, r *http.Request)
	StartGame(w http.ResponseWriter, r *http.Request)
	MakeTurn(w http.ResponseWriter, r *http.Request)
	PlayAgain(w http.ResponseWriter, r *http.Request)
	GetStats(w http.ResponseWriter, r *http.Request)
	ResetStats(w http.ResponseWriter, r *http.Request)
}

type handlers struct {
	logger *slog.Logger
	uGame  uGame
}

func NewHandlers(logger *slog.Logger, uGame uGame) Handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
	}
}

type startGameRequest struct {
	First string `json:"first"`
}

type turnRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

// SessionResponse is a session as seen by clients.
type SessionResponse struct {
	*entity.Session
	WinningLine []entity.Move `json:"winning_line,omitempty"`
}

type StatsResponse struct {
	Stats     entity.Stats     `json:"stats"`
	Breakdown entity.Breakdown `json:"breakdown"`
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.uGame.CreateSession(r.Context())
	if err != nil {
		that.writeError(w, "CreateSession", err)
		return
	}

	writeJSON(w, http.StatusCreated, newSessionResponse(session))
}

func (that *handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.uGame.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "GetSession", err)
		return
	}

	writeJSON(w, http.StatusOK, newSessionResponse(session))
}

func (that *handlers) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := that.uGame.EndSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, "EndSession", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) StartGame(w http.ResponseWriter, r *http.Request) {
	var req startGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, "StartGame", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}

	first, err := entity.ParsePlayer(req.First)
	if err != nil {
		that.writeError(w, "StartGame", err)
		return
	}

	session, err := that.uGame.StartGame(r.Context(), chi.URLParam(r, "id"), first)
	if err != nil {
		that.writeError(w, "StartGame", err)
		return
	}

	writeJSON(w, http.StatusOK, newSessionResponse(session))
}

func (that *handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, "MakeTurn", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}

	if req.Row == nil || req.Col == nil {
		that.writeError(w, "MakeTurn", fmt.Errorf("%w: row and col are required", ErrBadRequest))
		return
	}

	session, err := that.uGame.MakeTurn(r.Context(), chi.URLParam(r, "id"), *req.Row, *req.Col)
	if err != nil {
		that.writeError(w, "MakeTurn", err)
		return
	}

	writeJSON(w, http.StatusOK, newSessionResponse(session))
}

func (that *handlers) PlayAgain(w http.ResponseWriter, r *http.Request) {
	session, err := that.uGame.PlayAgain(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "PlayAgain", err)
		return
	}

	writeJSON(w, http.StatusOK, newSessionResponse(session))
}

func (that *handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := that.uGame.GetStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "GetStats", err)
		return
	}

	writeJSON(w, http.StatusOK, newStatsResponse(stats))
}

func (that *handlers) ResetStats(w http.ResponseWriter, r *http.Request) {
	session, err := that.uGame.ResetStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "ResetStats", err)
		return
	}

	writeJSON(w, http.StatusOK, newStatsResponse(session.Stats))
}

func newSessionResponse(session *entity.Session) SessionResponse {
	return SessionResponse{
		Session:     session,
		WinningLine: session.Board.WinningLine(),
	}
}

func newStatsResponse(stats entity.Stats) StatsResponse {
	return StatsResponse{
		Stats:     stats,
		Breakdown: stats.Breakdown(),
	}
}
