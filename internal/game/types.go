package game

import (
	"errors"
	"fmt"

	"github.com/dcrodman/broadside/internal/board"
	"github.com/dcrodman/broadside/internal/protocol"
)

// ErrQuitRequested is returned by an input collaborator when the player has
// confirmed that they want to leave the game.
var ErrQuitRequested = errors.New("player quit")

// Role decides which peer fires the first shot. It never changes during a session.
type Role int

const (
	// AttackerFirst is the hosting peer.
	AttackerFirst Role = iota
	// AttackerSecond is the joining peer.
	AttackerSecond
)

func (r Role) String() string {
	if r == AttackerSecond {
		return "attacker_second"
	}
	return "attacker_first"
}

// State of the turn protocol.
type State int

const (
	Connecting State = iota
	Handshaking
	AttackerTurn
	DefenderTurn
	Terminal
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Handshaking:
		return "handshaking"
	case AttackerTurn:
		return "attacker_turn"
	case DefenderTurn:
		return "defender_turn"
	case Terminal:
		return "terminal"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Outcome of a session from the local player's point of view. It moves away
// from InProgress exactly once.
type Outcome int

const (
	InProgress Outcome = iota
	Win
	Lose
	OpponentQuit
)

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in_progress"
	case Win:
		return "win"
	case Lose:
		return "lose"
	case OpponentQuit:
		return "opponent_quit"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Transport carries framed protocol messages to and from the peer.
type Transport interface {
	Send(m protocol.Message) error
	Receive() (protocol.Message, error)
}

// Connection is a Transport the session owns for its whole lifetime.
type Connection interface {
	Transport
	RemoteAddr() string
	Close() error
}

// Input supplies the local player's decisions during the turn loop.
type Input interface {
	// Target returns the next cell to fire at. Implementations are expected to
	// only return coordinates on the board, or ErrQuitRequested.
	Target(mirror *board.Mirror) (board.Coordinate, error)
}

// PlacementInput supplies ship positions during the placement phase.
type PlacementInput interface {
	Placement(kind board.ShipKind) (board.Coordinate, board.Orientation, error)
}

// Renderer is notified whenever a board changes. Nothing it does can affect
// the game.
type Renderer interface {
	Render(v board.View, revealShips bool)
	Announce(message string)
}

type nopRenderer struct{}

func (nopRenderer) Render(board.View, bool) {}
func (nopRenderer) Announce(string)         {}
