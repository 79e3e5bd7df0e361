package board

import "fmt"

// Mirror is a player's record of the shots fired at the opponent and the
// results the opponent reported back. It never knows where ships are, so
// none of its cells are ever Occupied.
type Mirror struct {
	cells [Size + 1][Size + 1]Cell
	shots int
	hits  int
	sunk  int
}

// NewMirror returns a mirror with no shots recorded.
func NewMirror() *Mirror {
	return &Mirror{}
}

// At returns a copy of the cell at c.
func (m *Mirror) At(c Coordinate) Cell {
	if !c.InBounds() {
		return Cell{}
	}
	return m.cells[c.Row][c.Col]
}

// Guessed reports whether a shot has already been fired at c.
func (m *Mirror) Guessed(c Coordinate) bool {
	return m.At(c).Guessed
}

// Record applies the result the opponent reported for a shot at c.
func (m *Mirror) Record(c Coordinate, hit, sunk bool) error {
	if !c.InBounds() {
		return fmt.Errorf("%w: %s", ErrTargetOutOfRange, c)
	}

	cell := &m.cells[c.Row][c.Col]
	m.shots++
	cell.Guessed = true
	if hit && !cell.Hit {
		cell.Hit = true
		m.hits++
	}
	if sunk {
		m.sunk++
	}
	return nil
}

// Shots returns the number of results recorded, including repeated targets.
func (m *Mirror) Shots() int { return m.shots }

// Hits returns the number of distinct cells reported as hit.
func (m *Mirror) Hits() int { return m.hits }

// Sunk returns the number of ships reported as sunk.
func (m *Mirror) Sunk() int { return m.sunk }

// IsDefeated reports whether every cell of the opponent's fleet has been hit.
func (m *Mirror) IsDefeated() bool {
	return m.hits >= FleetCells
}
