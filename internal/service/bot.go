package service

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/minimax"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	MakeTurn(board *entity.Board) (entity.Move, error)
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// MakeTurn places the computer mark on the cell chosen by the minimax search.
func (that *botService) MakeTurn(board *entity.Board) (entity.Move, error) {
	move, ok := minimax.ChooseMove(*board)
	if !ok {
		return entity.Move{}, ErrNoAvailableMoves
	}

	if err := board.Place(move.Row, move.Col, entity.ComputerMark); err != nil {
		return entity.Move{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return move, nil
}
