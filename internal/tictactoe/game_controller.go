package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type bot interface {
	MakeTurn(board *entity.Board) (entity.Move, error)
}

// GameController moves a session through its games. It keeps no state of its
// own: everything lives in the session passed to each call.
type GameController struct {
	bot bot
}

func NewGameController(bot bot) *GameController {
	return &GameController{
		bot: bot,
	}
}

// Start begins a new game on a fresh board. When the computer starts, it
// moves before Start returns.
func (that *GameController) Start(session *entity.Session, first entity.Player) error {
	if first != entity.Human && first != entity.Computer {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidPlayer, first)
	}

	if session.IsOngoing() {
		return apperror.ErrGameAlreadyStarted
	}

	session.Board.Reset()
	session.FirstPlayer = first
	session.Turn = first
	session.LastComputerMove = nil
	session.Status = entity.StatusInProgress

	if first == entity.Computer {
		if err := that.computerTurn(session); err != nil {
			return fmt.Errorf("failed to make first turn: %w", err)
		}
	}

	return nil
}

// MakeTurn applies the human move and, unless the game ended, the computer reply.
// The session is left unchanged when the move is rejected.
func (that *GameController) MakeTurn(session *entity.Session, row, col int) error {
	if err := session.ConfirmOngoingState(); err != nil {
		return err
	}

	if session.Turn != entity.Human {
		return apperror.ErrNotYourTurn
	}

	if err := session.Board.Place(row, col, entity.HumanMark); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	if that.updateGameStatus(session) {
		return nil
	}

	session.Turn = entity.Computer

	return that.computerTurn(session)
}

// Restart clears the board for the next game and keeps the statistics.
func (that *GameController) Restart(session *entity.Session) {
	session.Board.Reset()
	session.FirstPlayer = 0
	session.Turn = 0
	session.LastComputerMove = nil
	session.Status = entity.StatusNotStarted
}

func (that *GameController) ResetStats(session *entity.Session) {
	session.Stats.Reset()
}

func (that *GameController) computerTurn(session *entity.Session) error {
	move, err := that.bot.MakeTurn(&session.Board)
	if err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	session.LastComputerMove = &move

	if that.updateGameStatus(session) {
		return nil
	}

	session.Turn = entity.Human

	return nil
}

// updateGameStatus re-derives the status after a placement and records the
// result once when the game has just ended.
func (that *GameController) updateGameStatus(session *entity.Session) bool {
	status := session.Board.Status()
	if !status.IsTerminal() {
		return false
	}

	session.Status = status
	session.Turn = 0
	session.Stats.Record(status)

	return true
}
