package console

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	out := termenv.NewOutput(buf, termenv.WithProfile(termenv.Ascii))
	controller := tictactoe.NewGameController(service.NewBotService())

	return New(strings.NewReader(input), out, controller), buf
}

func TestConsole_Quit(t *testing.T) {
	// Given
	c, buf := newTestConsole("quit\n1 1\n")

	// When
	err := c.Run()

	// Then
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "commands:")
	assert.Contains(t, buf.String(), "bye")
	assert.Equal(t, entity.StatusNotStarted, c.session.Status)
}

func TestConsole_HumanOpensInTheCenter(t *testing.T) {
	// Given
	c, buf := newTestConsole("human\n1 1\n")

	// When
	err := c.Run()

	// Then: the computer answers in the first corner
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Computer played 0 0")
	assert.Contains(t, out, "0  O | . | .\n")
	assert.Contains(t, out, "1  . | X | .\n")
	assert.Equal(t, entity.StatusInProgress, c.session.Status)
}

func TestConsole_ComputerStarts(t *testing.T) {
	// Given
	c, buf := newTestConsole("computer\n")

	// When
	err := c.Run()

	// Then
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Computer played")
	assert.Len(t, c.session.Board.EmptyCells(), 8)
	assert.Equal(t, entity.Human, c.session.Turn)
}

func TestConsole_RejectsBadInput(t *testing.T) {
	// Given
	c, buf := newTestConsole("1 1\nhuman\nfoo\n3 0\n1 1\n1 1\nhuman\n")

	// When
	err := c.Run()

	// Then
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "error: game is not started")
	assert.Contains(t, out, "error: "+errUnknownCommand.Error())
	assert.Contains(t, out, "coordinate is out of the board")
	assert.Contains(t, out, "cell is already occupied")
	assert.Contains(t, out, "game is already started")
	assert.Len(t, c.session.Board.EmptyCells(), 7)
}

func TestConsole_PlaysGameToTheEnd(t *testing.T) {
	// Given: a game started by the human
	c, buf := newTestConsole("")
	c.execute(cmdHuman)

	// When: the human always takes the first free cell
	for !c.session.IsFinished() {
		free := c.session.Board.EmptyCells()
		require.NotEmpty(t, free)
		c.execute(fmt.Sprintf("%d %d", free[0].Row, free[0].Col))
	}

	// Then: the computer did not lose and the result was announced
	assert.Equal(t, entity.StatusComputerWon, c.session.Status)
	assert.Contains(t, buf.String(), "Computer won.")
	assert.Contains(t, buf.String(), "Type again")

	// When
	buf.Reset()
	c.execute(cmdStats)

	// Then
	assert.Contains(t, buf.String(), "games: 1")
	assert.Contains(t, buf.String(), "computer won: 1 (100.0%)")

	// When
	c.execute(cmdAgain)

	// Then: stats survive a new game
	assert.Equal(t, entity.StatusNotStarted, c.session.Status)
	assert.Equal(t, entity.Board{}, c.session.Board)
	assert.Equal(t, 1, c.session.Stats.TotalGames)

	// When
	c.execute(cmdReset)

	// Then
	assert.Equal(t, entity.Stats{}, c.session.Stats)
}

func TestRenderer_Board(t *testing.T) {
	// Given
	buf := &bytes.Buffer{}
	renderer := NewRenderer(termenv.NewOutput(buf, termenv.WithProfile(termenv.Ascii)))
	board := entity.Board{
		{entity.HumanMark, entity.ComputerMark, entity.EmptyCell},
		{entity.EmptyCell, entity.HumanMark, entity.ComputerMark},
		{entity.EmptyCell, entity.EmptyCell, entity.HumanMark},
	}

	// When
	out := renderer.Board(board)

	// Then
	expected := "   0   1   2\n" +
		"0  X | O | .\n" +
		"  ---+---+---\n" +
		"1  . | X | O\n" +
		"  ---+---+---\n" +
		"2  . | . | X\n"
	assert.Equal(t, expected, out)
}

func TestRenderer_HighlightsWinningLine(t *testing.T) {
	// Given
	buf := &bytes.Buffer{}
	renderer := NewRenderer(termenv.NewOutput(buf, termenv.WithProfile(termenv.ANSI)))
	board := entity.Board{
		{entity.ComputerMark, entity.ComputerMark, entity.ComputerMark},
		{entity.HumanMark, entity.HumanMark, entity.EmptyCell},
		{entity.HumanMark, entity.EmptyCell, entity.EmptyCell},
	}

	// When
	winning := renderer.cell(entity.ComputerMark, true)
	plain := renderer.cell(entity.ComputerMark, false)
	out := renderer.Board(board)

	// Then
	assert.NotEqual(t, winning, plain)
	assert.Equal(t, 3, strings.Count(out, winning))
	assert.Contains(t, out, "\x1b[")
}
