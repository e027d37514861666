package entity

import "errors"

var ErrUnknownGameStatus = errors.New("unknown game status")

// GameStatus describes where a game stands.
type GameStatus string

const (
	StatusNotStarted  GameStatus = "not_started"
	StatusInProgress  GameStatus = "in_progress"
	StatusPlayerWon   GameStatus = "player_won"
	StatusComputerWon GameStatus = "computer_won"
	StatusDraw        GameStatus = "draw"
)

// IsTerminal reports whether the game has concluded.
func (that GameStatus) IsTerminal() bool {
	return that == StatusPlayerWon || that == StatusComputerWon || that == StatusDraw
}

// Winner returns the player who won, or zero for a draw or an unfinished game.
func (that GameStatus) Winner() Player {
	switch that {
	case StatusPlayerWon:
		return Human
	case StatusComputerWon:
		return Computer
	default:
		return 0
	}
}
