package console

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	humanColor    = "12"
	computerColor = "9"
	winColor      = "10"
	errorColor    = "11"
)

// Renderer draws boards and messages with the colors the terminal supports.
type Renderer struct {
	out *termenv.Output
}

func NewRenderer(out *termenv.Output) *Renderer {
	return &Renderer{out: out}
}

// Board returns the board with coordinates. Cells of a winning line are highlighted.
func (that *Renderer) Board(board entity.Board) string {
	winning := make(map[entity.Move]bool)
	for _, move := range board.WinningLine() {
		winning[move] = true
	}

	var sb strings.Builder
	sb.WriteString("   0   1   2\n")

	for row := range entity.BoardSize {
		if row > 0 {
			sb.WriteString("  ---+---+---\n")
		}

		cells := make([]string, entity.BoardSize)
		for col := range entity.BoardSize {
			cells[col] = that.cell(board[row][col], winning[entity.Move{Row: row, Col: col}])
		}

		fmt.Fprintf(&sb, "%d  %s\n", row, strings.Join(cells, " | "))
	}

	return sb.String()
}

func (that *Renderer) cell(mark entity.Mark, highlighted bool) string {
	var style termenv.Style

	switch mark {
	case entity.HumanMark:
		style = that.out.String("X").Foreground(that.out.Color(humanColor))
	case entity.ComputerMark:
		style = that.out.String("O").Foreground(that.out.Color(computerColor))
	default:
		return "."
	}

	if highlighted {
		style = style.Background(that.out.Color(winColor)).Bold()
	}

	return style.String()
}

func (that *Renderer) Outcome(status entity.GameStatus) string {
	switch status {
	case entity.StatusPlayerWon:
		return that.out.String("You won!").Foreground(that.out.Color(winColor)).Bold().String()
	case entity.StatusComputerWon:
		return that.out.String("Computer won.").Foreground(that.out.Color(computerColor)).Bold().String()
	case entity.StatusDraw:
		return that.out.String("Draw.").Bold().String()
	default:
		return ""
	}
}

func (that *Renderer) Error(err error) string {
	return that.out.String("error: " + err.Error()).Foreground(that.out.Color(errorColor)).String()
}

func (that *Renderer) Stats(stats entity.Stats) string {
	breakdown := stats.Breakdown()

	return fmt.Sprintf(
		"games: %d\nyou won: %d (%.1f%%)\ncomputer won: %d (%.1f%%)\ndraws: %d (%.1f%%)\n",
		stats.TotalGames,
		stats.PlayerWins, breakdown.PlayerWinRate,
		stats.ComputerWins, breakdown.ComputerWinRate,
		stats.Draws, breakdown.DrawRate,
	)
}
