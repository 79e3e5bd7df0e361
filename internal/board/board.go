// Package board implements the grid model shared by both peers: ship
// placement, incoming guesses and victory detection on a player's own board,
// plus the Mirror used to track guesses made against the opponent.
package board

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds      = errors.New("ship does not fit on the board")
	ErrOverlap          = errors.New("ship overlaps another ship")
	ErrAlreadyPlaced    = errors.New("ship has already been placed")
	ErrUnknownShip      = errors.New("unknown ship")
	ErrTargetOutOfRange = errors.New("target is outside of the board")
)

// PlacementError describes a rejected ship placement. Placement errors are
// recoverable; the board is left untouched and the player can try again.
type PlacementError struct {
	Ship        ShipKind
	Start       Coordinate
	Orientation Orientation
	Err         error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("cannot place %s at %s (%s): %s", e.Ship, e.Start.Label(), e.Orientation, e.Err)
}

func (e *PlacementError) Unwrap() error { return e.Err }

// Cell is a single grid position.
type Cell struct {
	// A ship part is present.
	Occupied bool
	// The ship part here has been struck. Implies Occupied and Guessed.
	Hit bool
	// The opponent has targeted this cell at least once.
	Guessed bool

	ship ShipKind
}

// View is implemented by anything that can be drawn as a grid.
type View interface {
	At(c Coordinate) Cell
}

// GuessResult is the outcome of an incoming guess.
type GuessResult struct {
	Hit bool
	// Sunk is set to the ship that went down on this guess, NoShip otherwise.
	Sunk ShipKind
}

// Board is a player's own grid: their ships and the guesses made against them.
type Board struct {
	cells [Size + 1][Size + 1]Cell
	// Cell sets recorded at placement time, used for sunk checks.
	ships map[ShipKind][]Coordinate
	// Number of cells of each ship that have not been hit yet.
	afloat map[ShipKind]int
}

// New returns an empty board.
func New() *Board {
	return &Board{
		ships:  make(map[ShipKind][]Coordinate),
		afloat: make(map[ShipKind]int),
	}
}

// At returns a copy of the cell at c. Out of bounds coordinates yield an empty cell.
func (b *Board) At(c Coordinate) Cell {
	if !c.InBounds() {
		return Cell{}
	}
	return b.cells[c.Row][c.Col]
}

// PlaceShip puts a ship of the given kind on the board starting at start and
// extending in direction o. A rejected placement returns a *PlacementError and
// does not modify the board.
func (b *Board) PlaceShip(kind ShipKind, start Coordinate, o Orientation) error {
	fail := func(err error) error {
		return &PlacementError{Ship: kind, Start: start, Orientation: o, Err: err}
	}

	if kind.Length() == 0 {
		return fail(ErrUnknownShip)
	}
	if _, placed := b.ships[kind]; placed {
		return fail(ErrAlreadyPlaced)
	}

	cells := cellsFor(kind, start, o)
	for _, c := range cells {
		if !c.InBounds() {
			return fail(ErrOutOfBounds)
		}
	}
	for _, c := range cells {
		if b.cells[c.Row][c.Col].Occupied {
			return fail(ErrOverlap)
		}
	}

	for _, c := range cells {
		b.cells[c.Row][c.Col].Occupied = true
		b.cells[c.Row][c.Col].ship = kind
	}
	b.ships[kind] = cells
	b.afloat[kind] = len(cells)
	return nil
}

// Placed reports whether the ship has been put on the board.
func (b *Board) Placed(kind ShipKind) bool {
	_, ok := b.ships[kind]
	return ok
}

// ShipCells returns the cells a placed ship occupies.
func (b *Board) ShipCells(kind ShipKind) []Coordinate {
	cells := make([]Coordinate, len(b.ships[kind]))
	copy(cells, b.ships[kind])
	return cells
}

// IsComplete reports whether exactly one of every ship in the Fleet has been placed.
func (b *Board) IsComplete() bool {
	if len(b.ships) != len(Fleet) {
		return false
	}
	for _, kind := range Fleet {
		if !b.Placed(kind) {
			return false
		}
	}
	return true
}

// ApplyGuess records an opponent's guess at c. Guessing the same cell twice is
// allowed and reports the same hit result, but a ship is only ever reported
// as sunk on the guess that strikes its last intact cell.
func (b *Board) ApplyGuess(c Coordinate) (GuessResult, error) {
	if !c.InBounds() {
		return GuessResult{}, fmt.Errorf("%w: %s", ErrTargetOutOfRange, c)
	}

	cell := &b.cells[c.Row][c.Col]
	cell.Guessed = true
	if !cell.Occupied {
		return GuessResult{}, nil
	}

	result := GuessResult{Hit: true}
	if !cell.Hit {
		cell.Hit = true
		b.afloat[cell.ship]--
		if b.afloat[cell.ship] == 0 {
			result.Sunk = cell.ship
		}
	}
	return result, nil
}

// IsSunk reports whether every cell of a placed ship has been hit.
func (b *Board) IsSunk(kind ShipKind) bool {
	return b.Placed(kind) && b.afloat[kind] == 0
}

// IsDefeated reports whether every occupied cell has been hit.
func (b *Board) IsDefeated() bool {
	for row := 1; row <= Size; row++ {
		for col := 1; col <= Size; col++ {
			if cell := b.cells[row][col]; cell.Occupied && !cell.Hit {
				return false
			}
		}
	}
	return true
}
