package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/rocketscienceinc/tictactoe-ai/internal/console"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	out := termenv.NewOutput(os.Stdout)

	restore, err := termenv.EnableVirtualTerminalProcessing(out)
	if err != nil {
		panic(fmt.Errorf("failed to enable terminal colors: %w", err))
	}
	defer func() {
		_ = restore()
	}()

	controller := tictactoe.NewGameController(service.NewBotService())

	if err = console.New(os.Stdin, out, controller).Run(); err != nil {
		panic(fmt.Errorf("console failed: %w", err))
	}
}
