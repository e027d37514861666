package apperror

import "errors"

var (
	ErrInvalidCoordinate  = errors.New("coordinate is out of the board")
	ErrCellOccupied       = errors.New("cell is already occupied")
	ErrInvalidMark        = errors.New("invalid mark")
	ErrInvalidPlayer      = errors.New("invalid player")
	ErrGameFinished       = errors.New("game is already finished")
	ErrGameIsNotStarted   = errors.New("game is not started")
	ErrGameAlreadyStarted = errors.New("game is already started")
	ErrNotYourTurn        = errors.New("it's not your turn")
	ErrNotFound           = errors.New("not found")
)
