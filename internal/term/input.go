package term

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dcrodman/broadside/internal/board"
	"github.com/dcrodman/broadside/internal/game"
)

var (
	ErrInvalidCoordinate  = errors.New("expected a coordinate like A,1")
	ErrInvalidOrientation = errors.New("expected H or V")
)

// ParseCoordinate reads a coordinate typed by the player. The row is either a
// letter A-J or a number 1-10, optionally separated from the column by a
// comma: "A,1", "a1", "3,4" and "C10" are all accepted.
func ParseCoordinate(s string) (board.Coordinate, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return board.Coordinate{}, ErrInvalidCoordinate
	}

	var rowPart, colPart string
	if i := strings.IndexByte(s, ','); i >= 0 {
		rowPart, colPart = strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
	} else if s[0] >= 'A' && s[0] <= 'Z' {
		rowPart, colPart = s[:1], s[1:]
	} else {
		return board.Coordinate{}, ErrInvalidCoordinate
	}

	var row int
	if len(rowPart) == 1 && rowPart[0] >= 'A' && rowPart[0] <= 'Z' {
		row = int(rowPart[0]-'A') + 1
	} else {
		n, err := strconv.Atoi(rowPart)
		if err != nil {
			return board.Coordinate{}, ErrInvalidCoordinate
		}
		row = n
	}

	col, err := strconv.Atoi(colPart)
	if err != nil {
		return board.Coordinate{}, ErrInvalidCoordinate
	}

	c := board.Coordinate{Row: row, Col: col}
	if !c.InBounds() {
		return board.Coordinate{}, fmt.Errorf("%w: %s", board.ErrTargetOutOfRange, s)
	}
	return c, nil
}

// ParsePlacement reads a "<coordinate> <H|V>" placement, e.g. "B,3 V".
func ParsePlacement(s string) (board.Coordinate, board.Orientation, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return board.Coordinate{}, board.Horizontal, fmt.Errorf("expected <coordinate> <H|V>, got %q", s)
	}

	start, err := ParseCoordinate(fields[0])
	if err != nil {
		return board.Coordinate{}, board.Horizontal, err
	}

	switch strings.ToUpper(fields[1]) {
	case "H":
		return start, board.Horizontal, nil
	case "V":
		return start, board.Vertical, nil
	default:
		return board.Coordinate{}, board.Horizontal, ErrInvalidOrientation
	}
}

func isQuitCommand(s string) bool {
	s = strings.TrimSpace(s)
	return strings.EqualFold(s, "quit") || strings.EqualFold(s, "exit")
}

// Prompt asks the player for their moves one line at a time. Reads give up as
// soon as the context is done, so a cancelled game never hangs on the terminal.
type Prompt struct {
	ctx   context.Context
	out   io.Writer
	lines chan string
	err   error
}

// NewPrompt starts reading lines from in. Prompts are written to out.
func NewPrompt(ctx context.Context, in io.Reader, out io.Writer) *Prompt {
	p := &Prompt{ctx: ctx, out: out, lines: make(chan string)}
	go p.scan(in)
	return p
}

func (p *Prompt) scan(in io.Reader) {
	defer close(p.lines)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case p.lines <- scanner.Text():
		case <-p.ctx.Done():
			return
		}
	}
	p.err = scanner.Err()
}

// ReadLine writes prompt and waits for the next line of input. A closed input
// results in io.EOF.
func (p *Prompt) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	select {
	case <-p.ctx.Done():
		return "", p.ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			if p.err != nil {
				return "", p.err
			}
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// Pause waits for the player to press Enter.
func (p *Prompt) Pause() error {
	_, err := p.ReadLine("Press Enter to start the game...")
	return err
}

// confirmQuit asks whether the player really wants to leave. Anything other
// than Y returns them to the game.
func (p *Prompt) confirmQuit() (bool, error) {
	answer, err := p.ReadLine("Only losers rage quit. Are you sure you want to leave the game? (Y/N): ")
	if err != nil {
		return false, err
	}

	switch strings.ToUpper(answer) {
	case "Y":
		return true, nil
	case "N":
		fmt.Fprintln(p.out, "Returning to the game...")
	default:
		fmt.Fprintln(p.out, "Invalid response. Returning to the game...")
	}
	return false, nil
}

// readMove reads a line, handling the quit command. The returned line is
// empty if the player backed out of quitting.
func (p *Prompt) readMove(prompt string) (string, error) {
	line, err := p.ReadLine(prompt)
	if err != nil {
		return "", err
	}
	if !isQuitCommand(line) {
		return line, nil
	}

	leave, err := p.confirmQuit()
	if err != nil {
		return "", err
	}
	if leave {
		return "", game.ErrQuitRequested
	}
	return "", nil
}

// Target asks where to fire next. Cells that have already been fired at are
// refused.
func (p *Prompt) Target(mirror *board.Mirror) (board.Coordinate, error) {
	for {
		line, err := p.readMove("Enter attack coordinates (e.g., A,1): ")
		if err != nil {
			return board.Coordinate{}, err
		}
		if line == "" {
			continue
		}

		target, err := ParseCoordinate(line)
		if err != nil {
			fmt.Fprintf(p.out, "Invalid coordinate %q: %v\n", line, err)
			continue
		}
		if mirror.Guessed(target) {
			fmt.Fprintf(p.out, "You already fired at %s.\n", target.Label())
			continue
		}
		return target, nil
	}
}

// Placement asks where a ship should go.
func (p *Prompt) Placement(kind board.ShipKind) (board.Coordinate, board.Orientation, error) {
	prompt := fmt.Sprintf("Place your %s (%d spaces) as <coordinate> <H|V>: ", ShipName(kind), kind.Length())
	for {
		line, err := p.readMove(prompt)
		if err != nil {
			return board.Coordinate{}, board.Horizontal, err
		}
		if line == "" {
			continue
		}

		start, o, err := ParsePlacement(line)
		if err != nil {
			fmt.Fprintf(p.out, "Invalid placement %q: %v\n", line, err)
			continue
		}
		return start, o, nil
	}
}
