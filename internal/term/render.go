// Package term is the terminal front end: it draws boards, prints game
// messages and reads the player's moves from a line based input.
package term

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dcrodman/broadside/internal/board"
)

// Symbols used when drawing a board.
const (
	waterSymbol = '~'
	shipSymbol  = 'S'
	hitSymbol   = 'H'
	missSymbol  = 'M'
)

// Renderer draws boards and messages to a terminal.
type Renderer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewRenderer returns a Renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Render draws v. Ship positions are only drawn when revealShips is set, which
// is the case for the player's own board.
func (r *Renderer) Render(v board.View, revealShips bool) {
	title := "Enemy Waters"
	if revealShips {
		title = "Your Fleet"
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.out, drawBoard(title, v, revealShips))
}

// Announce prints a single line of game commentary.
func (r *Renderer) Announce(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, message)
}

func drawBoard(title string, v board.View, revealShips bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[ %s ]\n  ", title)
	for col := 1; col <= board.Size; col++ {
		fmt.Fprintf(&sb, "%3d", col)
	}
	sb.WriteByte('\n')

	for row := 1; row <= board.Size; row++ {
		fmt.Fprintf(&sb, "%c ", 'A'+row-1)
		for col := 1; col <= board.Size; col++ {
			fmt.Fprintf(&sb, "%3c", symbolFor(v.At(board.Coordinate{Row: row, Col: col}), revealShips))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func symbolFor(cell board.Cell, revealShips bool) rune {
	switch {
	case cell.Guessed && cell.Hit:
		return hitSymbol
	case cell.Guessed:
		return missSymbol
	case revealShips && cell.Occupied:
		return shipSymbol
	default:
		return waterSymbol
	}
}

// ShipName returns the display name of a ship, e.g. "Aircraft Carrier".
func ShipName(kind board.ShipKind) string {
	return cases.Title(language.English).String(kind.String())
}
