package board

import "fmt"

// ShipKind identifies one of the five ships every fleet is made of. The zero
// value means "no ship".
type ShipKind int

const (
	NoShip ShipKind = iota
	Destroyer
	Submarine
	Cruiser
	Battleship
	Carrier
)

// Fleet lists the ships each player places, in placement order.
var Fleet = []ShipKind{Destroyer, Submarine, Cruiser, Battleship, Carrier}

// FleetCells is the number of cells occupied by a complete fleet.
const FleetCells = 2 + 3 + 3 + 4 + 5

// Length returns the number of cells the ship occupies.
func (k ShipKind) Length() int {
	switch k {
	case Destroyer:
		return 2
	case Submarine, Cruiser:
		return 3
	case Battleship:
		return 4
	case Carrier:
		return 5
	default:
		return 0
	}
}

func (k ShipKind) String() string {
	switch k {
	case Destroyer:
		return "destroyer"
	case Submarine:
		return "submarine"
	case Cruiser:
		return "cruiser"
	case Battleship:
		return "battleship"
	case Carrier:
		return "aircraft carrier"
	default:
		return fmt.Sprintf("ShipKind(%d)", int(k))
	}
}

// Orientation is the direction a ship extends in from its start cell.
type Orientation int

const (
	// Horizontal ships extend towards higher column numbers.
	Horizontal Orientation = iota
	// Vertical ships extend towards higher row numbers.
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// cellsFor returns the run of cells a ship of the given kind covers. The
// result may fall outside of the board.
func cellsFor(kind ShipKind, start Coordinate, o Orientation) []Coordinate {
	cells := make([]Coordinate, kind.Length())
	for i := range cells {
		if o == Vertical {
			cells[i] = Coordinate{Row: start.Row + i, Col: start.Col}
		} else {
			cells[i] = Coordinate{Row: start.Row, Col: start.Col + i}
		}
	}
	return cells
}
