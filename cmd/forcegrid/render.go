package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/forcegrid/internal/puzzle"
	"github.com/vovakirdan/forcegrid/internal/render"
)

// printBoard writes the board to stdout, coloured only when stdout is a
// terminal.
func printBoard(b *puzzle.Board) {
	s := render.Board(b)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(s.Styled(render.DefaultTheme()))
		return
	}
	fmt.Println(s.String())
}
