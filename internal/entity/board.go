package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

// BoardSize is the side length of the square board.
const BoardSize = 3

// Mark is the content of a single cell.
type Mark int

const (
	EmptyCell Mark = iota
	HumanMark
	ComputerMark
)

// Move addresses a single cell of the board.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// WinLines holds the three rows, three columns and two diagonals.
var WinLines = [8][BoardSize]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is a 3x3 grid stored row-major. It is a value type: assigning a Board
// copies every cell.
type Board [BoardSize][BoardSize]Mark

// Reset clears every cell.
func (that *Board) Reset() {
	*that = Board{}
}

// IsAvailable reports whether the cell at row, col is empty.
func (that *Board) IsAvailable(row, col int) (bool, error) {
	if err := validateCoordinate(row, col); err != nil {
		return false, err
	}

	return that[row][col] == EmptyCell, nil
}

// Place puts mark into an empty cell. Nothing is changed when an error is returned.
func (that *Board) Place(row, col int, mark Mark) error {
	if err := validateCoordinate(row, col); err != nil {
		return err
	}

	if mark != HumanMark && mark != ComputerMark {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidMark, mark)
	}

	if that[row][col] != EmptyCell {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, row, col)
	}

	that[row][col] = mark

	return nil
}

// Cell returns the mark stored at row, col.
func (that *Board) Cell(row, col int) (Mark, error) {
	if err := validateCoordinate(row, col); err != nil {
		return EmptyCell, err
	}

	return that[row][col], nil
}

func (that *Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

// HasWon reports whether any line is entirely filled with mark.
func (that *Board) HasWon(mark Mark) bool {
	if mark == EmptyCell {
		return false
	}

	for _, line := range WinLines {
		if that.lineOf(line) == mark {
			return true
		}
	}

	return false
}

// WinningLine returns the first completed line, or nil when nobody has won.
func (that *Board) WinningLine() []Move {
	for _, line := range WinLines {
		if that.lineOf(line) != EmptyCell {
			return line[:]
		}
	}

	return nil
}

// Status derives the game status from the cells. The human win is checked first.
func (that *Board) Status() GameStatus {
	switch {
	case that.HasWon(HumanMark):
		return StatusPlayerWon
	case that.HasWon(ComputerMark):
		return StatusComputerWon
	case that.IsFull():
		return StatusDraw
	default:
		return StatusInProgress
	}
}

// EmptyCells lists the empty cells in row-major order.
func (that *Board) EmptyCells() []Move {
	moves := make([]Move, 0, BoardSize*BoardSize)
	for row := range BoardSize {
		for col := range BoardSize {
			if that[row][col] == EmptyCell {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}

	return moves
}

// lineOf returns the mark filling the whole line, or EmptyCell.
func (that *Board) lineOf(line [BoardSize]Move) Mark {
	a, b, c := that[line[0].Row][line[0].Col], that[line[1].Row][line[1].Col], that[line[2].Row][line[2].Col]
	if a != EmptyCell && a == b && b == c {
		return a
	}

	return EmptyCell
}

func validateCoordinate(row, col int) error {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidCoordinate, row, col)
	}

	return nil
}
