package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameController interface {
	Start(session *entity.Session, first entity.Player) error
	MakeTurn(session *entity.Session, row, col int) error
	Restart(session *entity.Session)
	ResetStats(session *entity.Session)
}

// GameManager loads a session, applies one game operation and stores it back.
// Operations on the same session are serialized.
type GameManager struct {
	logger *slog.Logger

	sessionRepo sessionRepo
	controller  gameController

	locks *sessionLocks
	now   func() time.Time
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, controller gameController) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		sessionRepo: sessionRepo,
		controller:  controller,

		locks: newSessionLocks(),
		now:   time.Now,
	}
}

func (that *GameManager) CreateSession(ctx context.Context) (*entity.Session, error) {
	session := entity.NewSession(uuid.NewString())

	if err := that.saveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session created", "sessionID", session.ID)

	return session, nil
}

// GetOrCreateSession returns the session with the given id. An empty id or an
// expired session yields a brand new session.
func (that *GameManager) GetOrCreateSession(ctx context.Context, id string) (*entity.Session, error) {
	if id == "" {
		return that.CreateSession(ctx)
	}

	session, err := that.sessionRepo.GetByID(ctx, id)
	if errors.Is(err, apperror.ErrNotFound) {
		that.logger.Info("session not found, creating a new one", "sessionID", id)
		return that.CreateSession(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return session, nil
}

func (that *GameManager) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return session, nil
}

func (that *GameManager) StartGame(ctx context.Context, id string, first entity.Player) (*entity.Session, error) {
	return that.update(ctx, id, "StartGame", func(session *entity.Session) error {
		if err := that.controller.Start(session, first); err != nil {
			return fmt.Errorf("failed to start game: %w", err)
		}
		return nil
	})
}

func (that *GameManager) MakeTurn(ctx context.Context, id string, row, col int) (*entity.Session, error) {
	return that.update(ctx, id, "MakeTurn", func(session *entity.Session) error {
		if err := that.controller.MakeTurn(session, row, col); err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}
		return nil
	})
}

// PlayAgain prepares a fresh game and keeps the statistics.
func (that *GameManager) PlayAgain(ctx context.Context, id string) (*entity.Session, error) {
	return that.update(ctx, id, "PlayAgain", func(session *entity.Session) error {
		that.controller.Restart(session)
		return nil
	})
}

func (that *GameManager) ResetStats(ctx context.Context, id string) (*entity.Session, error) {
	return that.update(ctx, id, "ResetStats", func(session *entity.Session) error {
		that.controller.ResetStats(session)
		return nil
	})
}

func (that *GameManager) GetStats(ctx context.Context, id string) (entity.Stats, error) {
	session, err := that.GetSession(ctx, id)
	if err != nil {
		return entity.Stats{}, err
	}

	return session.Stats, nil
}

func (that *GameManager) EndSession(ctx context.Context, id string) error {
	unlock := that.locks.lock(id)
	defer unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session ended", "sessionID", id)

	return nil
}

func (that *GameManager) update(ctx context.Context, id, method string, apply func(*entity.Session) error) (*entity.Session, error) {
	log := that.logger.With("method", method, "sessionID", id)

	unlock := that.locks.lock(id)
	defer unlock()

	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	// rule errors leave the session as it was loaded
	if err = apply(session); err != nil {
		log.Debug("operation rejected", "error", err)
		return session, err
	}

	if err = that.saveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	if session.IsFinished() {
		log.Info("game finished", "status", session.Status, "totalGames", session.Stats.TotalGames)
	}

	return session, nil
}

func (that *GameManager) saveSession(ctx context.Context, session *entity.Session) error {
	session.UpdatedAt = that.now().UTC()

	return that.sessionRepo.CreateOrUpdate(ctx, session)
}
