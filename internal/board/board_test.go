package board

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type placement struct {
	kind  ShipKind
	start Coordinate
	o     Orientation
}

// Ships stacked down the left edge on alternate rows.
var testLayout = []placement{
	{Destroyer, Coordinate{1, 1}, Horizontal},
	{Submarine, Coordinate{3, 1}, Horizontal},
	{Cruiser, Coordinate{5, 1}, Horizontal},
	{Battleship, Coordinate{7, 1}, Horizontal},
	{Carrier, Coordinate{9, 1}, Horizontal},
}

func newTestBoard(t *testing.T) *Board {
	t.Helper()
	b := New()
	for _, p := range testLayout {
		if err := b.PlaceShip(p.kind, p.start, p.o); err != nil {
			t.Fatalf("error placing test ship: %v", err)
		}
	}
	return b
}

func occupiedCells(b *Board) int {
	n := 0
	for row := 1; row <= Size; row++ {
		for col := 1; col <= Size; col++ {
			if b.At(Coordinate{row, col}).Occupied {
				n++
			}
		}
	}
	return n
}

func TestBoard_PlaceShip(t *testing.T) {
	tests := []struct {
		name    string
		setup   []placement
		place   placement
		wantErr error
	}{
		{
			name:  "horizontal ship in bounds",
			place: placement{Carrier, Coordinate{1, 6}, Horizontal},
		},
		{
			name:  "vertical ship in bounds",
			place: placement{Carrier, Coordinate{6, 10}, Vertical},
		},
		{
			name:    "horizontal ship runs off the right edge",
			place:   placement{Destroyer, Coordinate{1, 10}, Horizontal},
			wantErr: ErrOutOfBounds,
		},
		{
			name:    "vertical ship runs off the bottom edge",
			place:   placement{Carrier, Coordinate{7, 1}, Vertical},
			wantErr: ErrOutOfBounds,
		},
		{
			name:    "start is on the label row",
			place:   placement{Destroyer, Coordinate{0, 1}, Horizontal},
			wantErr: ErrOutOfBounds,
		},
		{
			name:    "ship crosses another ship",
			setup:   []placement{{Battleship, Coordinate{2, 3}, Vertical}},
			place:   placement{Cruiser, Coordinate{3, 1}, Horizontal},
			wantErr: ErrOverlap,
		},
		{
			name:    "ship already placed",
			setup:   []placement{{Cruiser, Coordinate{1, 1}, Horizontal}},
			place:   placement{Cruiser, Coordinate{5, 5}, Vertical},
			wantErr: ErrAlreadyPlaced,
		},
		{
			name:    "unknown ship kind",
			place:   placement{NoShip, Coordinate{5, 5}, Vertical},
			wantErr: ErrUnknownShip,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			for _, p := range tt.setup {
				if err := b.PlaceShip(p.kind, p.start, p.o); err != nil {
					t.Fatalf("error placing setup ship: %v", err)
				}
			}
			before := *b
			beforeOccupied := occupiedCells(b)

			err := b.PlaceShip(tt.place.kind, tt.place.start, tt.place.o)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("PlaceShip() want err = %v, got = %v", tt.wantErr, err)
			}

			if tt.wantErr != nil {
				var placementErr *PlacementError
				if !errors.As(err, &placementErr) {
					t.Fatalf("PlaceShip() error was not a *PlacementError: %T", err)
				}
				if diff := cmp.Diff(before.cells, b.cells, cmp.AllowUnexported(Cell{})); diff != "" {
					t.Errorf("rejected placement modified the board; diff:\n%s", diff)
				}
				return
			}

			if got := occupiedCells(b); got != beforeOccupied+tt.place.kind.Length() {
				t.Errorf("expected %d occupied cells, got %d", beforeOccupied+tt.place.kind.Length(), got)
			}
			for _, c := range b.ShipCells(tt.place.kind) {
				if !b.At(c).Occupied {
					t.Errorf("cell %s of the %s is not occupied", c, tt.place.kind)
				}
			}
		})
	}
}

func TestBoard_IsComplete(t *testing.T) {
	b := New()
	for i, p := range testLayout {
		if b.IsComplete() {
			t.Fatalf("board reported complete after %d ships", i)
		}
		if err := b.PlaceShip(p.kind, p.start, p.o); err != nil {
			t.Fatalf("error placing test ship: %v", err)
		}
	}

	if !b.IsComplete() {
		t.Error("board with the full fleet should be complete")
	}
	if got := occupiedCells(b); got != FleetCells {
		t.Errorf("expected %d occupied cells, got %d", FleetCells, got)
	}
}

func TestBoard_ApplyGuess(t *testing.T) {
	tests := []struct {
		name   string
		target Coordinate
		want   GuessResult
	}{
		{
			name:   "empty water",
			target: Coordinate{2, 2},
			want:   GuessResult{},
		},
		{
			name:   "part of a ship",
			target: Coordinate{9, 3},
			want:   GuessResult{Hit: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t)

			got, err := b.ApplyGuess(tt.target)
			if err != nil {
				t.Fatalf("ApplyGuess() returned an unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ApplyGuess() result did not match expected; diff:\n%s", diff)
			}

			cell := b.At(tt.target)
			if !cell.Guessed {
				t.Error("guessed cell was not marked as guessed")
			}
			if cell.Hit != tt.want.Hit {
				t.Errorf("cell hit want = %v, got = %v", tt.want.Hit, cell.Hit)
			}

			// A second guess never clears what the first one set.
			if _, err := b.ApplyGuess(tt.target); err != nil {
				t.Fatalf("ApplyGuess() returned an unexpected error: %v", err)
			}
			if again := b.At(tt.target); !again.Guessed || again.Hit != cell.Hit {
				t.Errorf("repeated guess changed the cell: before = %+v, after = %+v", cell, again)
			}
		})
	}
}

func TestBoard_ApplyGuessOutOfRange(t *testing.T) {
	b := newTestBoard(t)
	for _, c := range []Coordinate{{0, 1}, {1, 0}, {11, 5}, {5, 11}} {
		if _, err := b.ApplyGuess(c); !errors.Is(err, ErrTargetOutOfRange) {
			t.Errorf("ApplyGuess(%s) want err = %v, got = %v", c, ErrTargetOutOfRange, err)
		}
	}
}

func TestBoard_SunkReportedOnce(t *testing.T) {
	b := newTestBoard(t)

	first, _ := b.ApplyGuess(Coordinate{1, 1})
	if !first.Hit || first.Sunk != NoShip {
		t.Fatalf("first destroyer hit want = {Hit:true}, got = %+v", first)
	}
	if b.IsSunk(Destroyer) {
		t.Fatal("destroyer reported sunk after one hit")
	}

	second, _ := b.ApplyGuess(Coordinate{1, 2})
	if !second.Hit || second.Sunk != Destroyer {
		t.Fatalf("last destroyer hit want = {Hit:true Sunk:destroyer}, got = %+v", second)
	}
	if !b.IsSunk(Destroyer) {
		t.Fatal("destroyer should be sunk")
	}

	repeat, _ := b.ApplyGuess(Coordinate{1, 2})
	if !repeat.Hit || repeat.Sunk != NoShip {
		t.Errorf("repeated guess on a sunk ship want = {Hit:true}, got = %+v", repeat)
	}
}

func TestBoard_IsDefeated(t *testing.T) {
	b := newTestBoard(t)

	var sunk []ShipKind
	for i, p := range testLayout {
		if b.IsDefeated() {
			t.Fatalf("board reported defeated with %d ships sunk", i)
		}
		for _, c := range b.ShipCells(p.kind) {
			result, err := b.ApplyGuess(c)
			if err != nil {
				t.Fatalf("ApplyGuess() returned an unexpected error: %v", err)
			}
			if result.Sunk != NoShip {
				sunk = append(sunk, result.Sunk)
			}
		}
	}

	if !b.IsDefeated() {
		t.Error("board with every ship sunk should be defeated")
	}
	if diff := cmp.Diff(Fleet, sunk); diff != "" {
		t.Errorf("each ship should be reported sunk exactly once; diff:\n%s", diff)
	}
}

func TestRandomFleet(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		b := RandomFleet(rand.New(rand.NewSource(seed)))
		if !b.IsComplete() {
			t.Errorf("seed %d: random fleet is not complete", seed)
		}
		if got := occupiedCells(b); got != FleetCells {
			t.Errorf("seed %d: expected %d occupied cells, got %d", seed, FleetCells, got)
		}
	}
}

func TestCoordinate_Label(t *testing.T) {
	tests := []struct {
		c    Coordinate
		want string
	}{
		{Coordinate{1, 1}, "A1"},
		{Coordinate{3, 7}, "C7"},
		{Coordinate{10, 10}, "J10"},
		{Coordinate{0, 4}, "(0,4)"},
	}
	for _, tt := range tests {
		if got := tt.c.Label(); got != tt.want {
			t.Errorf("Label() want = %s, got = %s", tt.want, got)
		}
	}
}
