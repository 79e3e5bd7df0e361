package game

import (
	"io"
	"sync"
	"testing"

	"github.com/dcrodman/broadside/internal/board"
	"github.com/dcrodman/broadside/internal/protocol"
)

type testPlacement struct {
	kind  board.ShipKind
	start board.Coordinate
	o     board.Orientation
}

// Ships on the odd rows, leaving every even row as open water.
var testLayout = []testPlacement{
	{board.Destroyer, board.Coordinate{Row: 1, Col: 1}, board.Horizontal},
	{board.Submarine, board.Coordinate{Row: 3, Col: 1}, board.Horizontal},
	{board.Cruiser, board.Coordinate{Row: 5, Col: 1}, board.Horizontal},
	{board.Battleship, board.Coordinate{Row: 7, Col: 1}, board.Horizontal},
	{board.Carrier, board.Coordinate{Row: 9, Col: 1}, board.Horizontal},
}

func newTestBoard(t *testing.T, layout []testPlacement) *board.Board {
	t.Helper()
	b := board.New()
	for _, p := range layout {
		if err := b.PlaceShip(p.kind, p.start, p.o); err != nil {
			t.Fatalf("error placing test ship: %v", err)
		}
	}
	return b
}

// fleetCells lists every occupied cell of b, ship by ship.
func fleetCells(b *board.Board) []board.Coordinate {
	var cells []board.Coordinate
	for _, kind := range board.Fleet {
		cells = append(cells, b.ShipCells(kind)...)
	}
	return cells
}

// waterCells returns n cells on the even rows of the test layout.
func waterCells(n int) []board.Coordinate {
	var cells []board.Coordinate
	for row := 2; row <= board.Size; row += 2 {
		for col := 1; col <= board.Size; col++ {
			cells = append(cells, board.Coordinate{Row: row, Col: col})
		}
	}
	return cells[:n]
}

// scriptedTransport replays a fixed sequence of incoming messages and errors
// and records everything sent.
type scriptedTransport struct {
	incoming []interface{}
	sent     []protocol.Message
	// Sends of these kinds fail instead of being recorded.
	failing map[protocol.Kind]error
}

func (s *scriptedTransport) Send(m protocol.Message) error {
	if err, ok := s.failing[m.Kind]; ok {
		return err
	}
	s.sent = append(s.sent, m)
	return nil
}

func (s *scriptedTransport) Receive() (protocol.Message, error) {
	if len(s.incoming) == 0 {
		return protocol.Message{}, io.EOF
	}
	next := s.incoming[0]
	s.incoming = s.incoming[1:]

	switch v := next.(type) {
	case protocol.Message:
		return v, nil
	case error:
		return protocol.Message{}, v
	default:
		panic("unexpected scripted value")
	}
}

// scriptedInput fires at each target in order, then returns err.
type scriptedInput struct {
	targets []board.Coordinate
	err     error
}

func (s *scriptedInput) Target(*board.Mirror) (board.Coordinate, error) {
	if len(s.targets) == 0 {
		if s.err == nil {
			return board.Coordinate{}, ErrQuitRequested
		}
		return board.Coordinate{}, s.err
	}
	next := s.targets[0]
	s.targets = s.targets[1:]
	return next, nil
}

type recordingRenderer struct {
	mu            sync.Mutex
	renders       int
	announcements []string
}

func (r *recordingRenderer) Render(board.View, bool) {
	r.mu.Lock()
	r.renders++
	r.mu.Unlock()
}

func (r *recordingRenderer) Announce(message string) {
	r.mu.Lock()
	r.announcements = append(r.announcements, message)
	r.mu.Unlock()
}

func (r *recordingRenderer) announced(message string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.announcements {
		if a == message {
			return true
		}
	}
	return false
}
