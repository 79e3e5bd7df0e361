package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"github.com/dcrodman/broadside/internal/board"
)

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 60

// Welcome writes the title and the rules of the game, wrapped to width columns.
func Welcome(out io.Writer, width uint) {
	if width == 0 {
		width = DefaultWidth
	}
	rule := strings.Repeat("=", int(width))

	var rules strings.Builder
	fmt.Fprintf(&rules, "1. Each player has a %dx%d grid to place %d ships:\n", board.Size, board.Size, len(board.Fleet))
	for _, kind := range board.Fleet {
		fmt.Fprintf(&rules, "   - %s (%d spaces)\n", ShipName(kind), kind.Length())
	}
	rules.WriteString("2. Players take turns guessing coordinates to attack, e.g. A,1 for the top left corner.\n")
	rules.WriteString("3. A hit will mark part of a ship as damaged. " +
		"Players do not get consecutive turns if they hit an enemy ship.\n")
	rules.WriteString("4. A ship is sunk when all its parts are hit.\n")
	rules.WriteString("5. The game ends when all ships of one player are sunk.\n\n")
	rules.WriteString("Type 'exit' or 'quit' anytime to leave the game.")

	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, centered("WELCOME TO BROADSIDE!", width))
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Rules of the game:")
	fmt.Fprintln(out, wordwrap.WrapString(rules.String(), width))
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, centered("LET THE BATTLE BEGIN!", width))
	fmt.Fprintln(out, rule)
}

func centered(s string, width uint) string {
	pad := (int(width) - len(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
