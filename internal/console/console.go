// Package console plays against the computer in a terminal. The session lives
// in memory and ends with the process.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	cmdHuman    = "human"
	cmdComputer = "computer"
	cmdAgain    = "again"
	cmdStats    = "stats"
	cmdReset    = "reset"
	cmdHelp     = "help"
	cmdQuit     = "quit"
)

const helpText = `commands:
  human | computer   choose who moves first and start a game
  <row> <col>        place your X, for example "1 1"
  again              clear the board for a new game
  stats              show results so far
  reset              clear the results
  quit               leave
`

var errUnknownCommand = errors.New("unknown command, type help")

type gameController interface {
	Start(session *entity.Session, first entity.Player) error
	MakeTurn(session *entity.Session, row, col int) error
	Restart(session *entity.Session)
	ResetStats(session *entity.Session)
}

type Console struct {
	in       *bufio.Scanner
	out      *termenv.Output
	renderer *Renderer

	controller gameController
	session    *entity.Session
}

func New(in io.Reader, out *termenv.Output, controller gameController) *Console {
	return &Console{
		in:       bufio.NewScanner(in),
		out:      out,
		renderer: NewRenderer(out),

		controller: controller,
		session:    entity.NewSession("console"),
	}
}

// Run reads commands until quit or the end of input.
func (that *Console) Run() error {
	that.print("Tic-tac-toe: you are X, the computer is O.\n")
	that.print(helpText)
	that.prompt()

	for that.in.Scan() {
		line := strings.TrimSpace(that.in.Text())

		if line == cmdQuit {
			that.print("bye\n")
			return nil
		}

		if line != "" {
			that.execute(line)
		}

		that.prompt()
	}

	if err := that.in.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

func (that *Console) execute(line string) {
	var err error

	switch line {
	case cmdHuman:
		err = that.start(entity.Human)
	case cmdComputer:
		err = that.start(entity.Computer)
	case cmdAgain:
		that.controller.Restart(that.session)
		that.print("Board cleared. Who starts: human or computer?\n")
	case cmdStats:
		that.print(that.renderer.Stats(that.session.Stats))
	case cmdReset:
		that.controller.ResetStats(that.session)
		that.print("Results cleared.\n")
	case cmdHelp:
		that.print(helpText)
	default:
		err = that.turn(line)
	}

	if err != nil {
		that.print(that.renderer.Error(err) + "\n")
	}
}

func (that *Console) start(first entity.Player) error {
	if err := that.controller.Start(that.session, first); err != nil {
		return err
	}

	if first == entity.Computer {
		that.printComputerMove()
	}

	that.printBoard()

	return nil
}

func (that *Console) turn(line string) error {
	row, col, err := parseMove(line)
	if err != nil {
		return err
	}

	previous := that.session.LastComputerMove

	if err = that.controller.MakeTurn(that.session, row, col); err != nil {
		return err
	}

	if that.session.LastComputerMove != previous {
		that.printComputerMove()
	}

	that.printBoard()

	return nil
}

func (that *Console) printComputerMove() {
	move := that.session.LastComputerMove
	that.print(fmt.Sprintf("Computer played %d %d\n", move.Row, move.Col))
}

func (that *Console) printBoard() {
	that.print(that.renderer.Board(that.session.Board))

	if that.session.IsFinished() {
		that.print(that.renderer.Outcome(that.session.Status) + "\n")
		that.print("Type again to play another game.\n")
	}
}

func (that *Console) prompt() {
	that.print("> ")
}

func (that *Console) print(s string) {
	_, _ = that.out.WriteString(s)
}

func parseMove(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, errUnknownCommand
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, errUnknownCommand
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, errUnknownCommand
	}

	return row, col, nil
}
