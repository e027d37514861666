package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

// Stats are the cumulative results of all games played in a session.
type Stats struct {
	PlayerWins   int `json:"player_wins"`
	ComputerWins int `json:"computer_wins"`
	Draws        int `json:"draws"`
	TotalGames   int `json:"total_games"`
}

// Breakdown holds the share of each outcome in percent.
type Breakdown struct {
	PlayerWinRate   float64 `json:"player_win_rate"`
	ComputerWinRate float64 `json:"computer_win_rate"`
	DrawRate        float64 `json:"draw_rate"`
}

// Record counts one finished game. Non-terminal statuses are ignored.
func (that *Stats) Record(status GameStatus) {
	switch status {
	case StatusPlayerWon:
		that.PlayerWins++
	case StatusComputerWon:
		that.ComputerWins++
	case StatusDraw:
		that.Draws++
	default:
		return
	}

	that.TotalGames++
}

func (that *Stats) Reset() {
	*that = Stats{}
}

func (that Stats) Breakdown() Breakdown {
	if that.TotalGames == 0 {
		return Breakdown{}
	}

	total := float64(that.TotalGames)

	return Breakdown{
		PlayerWinRate:   float64(that.PlayerWins) / total * 100,
		ComputerWinRate: float64(that.ComputerWins) / total * 100,
		DrawRate:        float64(that.Draws) / total * 100,
	}
}

// Session is the state of one human playing a series of games against the computer.
type Session struct {
	ID               string     `json:"id"`
	Board            Board      `json:"board"`
	FirstPlayer      Player     `json:"first_player,omitempty"`
	Turn             Player     `json:"turn,omitempty"`
	Status           GameStatus `json:"status"`
	LastComputerMove *Move      `json:"last_computer_move,omitempty"`
	Stats            Stats      `json:"stats"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:     id,
		Status: StatusNotStarted,
	}
}

func (that *Session) IsFinished() bool {
	return that.Status.IsTerminal()
}

func (that *Session) IsOngoing() bool {
	return that.Status == StatusInProgress
}

func (that *Session) IsWaiting() bool {
	return that.Status == StatusNotStarted || that.Status == ""
}

func (that *Session) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
