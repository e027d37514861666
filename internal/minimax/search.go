// Package minimax picks the computer's move by exhaustive minimax search with
// alpha-beta pruning. The computer is always the maximizing side.
package minimax

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// winScore is the value of a win found at the root. Every ply of depth costs
// one point so that faster wins and slower losses score better.
const winScore = 10

// Options tune a single search.
type Options struct {
	// DisablePruning explores every branch. The result is the same, only slower.
	DisablePruning bool
}

// ScoredMove is a root move with its minimax value.
type ScoredMove struct {
	Move  entity.Move `json:"move"`
	Score int         `json:"score"`
}

// Result describes a finished search.
type Result struct {
	Move   entity.Move  `json:"move"`
	Score  int          `json:"score"`
	Scores []ScoredMove `json:"scores"`
	Nodes  int          `json:"nodes"`
}

// ChooseMove returns the optimal move for the computer. The second value is
// false when the board has no empty cell.
func ChooseMove(board entity.Board) (entity.Move, bool) {
	result, ok := Analyze(board, Options{})
	return result.Move, ok
}

// Analyze searches every empty cell of board and reports the best one for the
// computer. board is passed by value, so the caller's board is never touched.
func Analyze(board entity.Board, opts Options) (Result, bool) {
	s := searcher{board: board, pruning: !opts.DisablePruning}

	var result Result
	found := false
	best := math.MinInt

	for _, move := range s.board.EmptyCells() {
		s.board[move.Row][move.Col] = entity.ComputerMark
		score := s.evaluate(1, false, math.MinInt, math.MaxInt)
		s.board[move.Row][move.Col] = entity.EmptyCell

		result.Scores = append(result.Scores, ScoredMove{Move: move, Score: score})

		// strictly greater keeps the first of equal moves
		if score > best {
			best = score
			result.Move = move
			result.Score = score
			found = true
		}
	}

	result.Nodes = s.nodes

	return result, found
}

// searcher owns the working copy of the board for one search.
type searcher struct {
	board   entity.Board
	pruning bool
	nodes   int
}

func (that *searcher) evaluate(depth int, maximizing bool, alpha, beta int) int {
	that.nodes++

	switch {
	case that.board.HasWon(entity.ComputerMark):
		return winScore - depth
	case that.board.HasWon(entity.HumanMark):
		return depth - winScore
	case that.board.IsFull():
		return 0
	}

	if maximizing {
		best := math.MinInt
		for row := range entity.BoardSize {
			for col := range entity.BoardSize {
				if that.board[row][col] != entity.EmptyCell {
					continue
				}

				that.board[row][col] = entity.ComputerMark
				score := that.evaluate(depth+1, false, alpha, beta)
				that.board[row][col] = entity.EmptyCell

				best = max(best, score)
				alpha = max(alpha, score)
				if that.pruning && beta <= alpha {
					return best
				}
			}
		}

		return best
	}

	best := math.MaxInt
	for row := range entity.BoardSize {
		for col := range entity.BoardSize {
			if that.board[row][col] != entity.EmptyCell {
				continue
			}

			that.board[row][col] = entity.HumanMark
			score := that.evaluate(depth+1, true, alpha, beta)
			that.board[row][col] = entity.EmptyCell

			best = min(best, score)
			beta = min(beta, score)
			if that.pruning && beta <= alpha {
				return best
			}
		}
	}

	return best
}
