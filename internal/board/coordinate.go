package board

import "fmt"

// Size is the number of playable rows and columns. Rows and columns are
// numbered 1 through Size; index 0 is reserved for the axis labels.
const Size = 10

// Coordinate addresses a single cell.
type Coordinate struct {
	Row int
	Col int
}

// InBounds reports whether c lies on the playable grid.
func (c Coordinate) InBounds() bool {
	return c.Row >= 1 && c.Row <= Size && c.Col >= 1 && c.Col <= Size
}

// Label returns the human readable form shown to players, e.g. "C7".
func (c Coordinate) Label() string {
	if !c.InBounds() {
		return c.String()
	}
	return fmt.Sprintf("%c%d", 'A'+c.Row-1, c.Col)
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}
