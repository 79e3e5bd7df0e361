package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/dcrodman/broadside/internal/board"
	"github.com/dcrodman/broadside/internal/protocol"
)

// EventKind describes what happened during a single Step.
type EventKind int

const (
	EventNone EventKind = iota
	// The connection is up and the handshake can begin.
	EventConnected
	// Both peers are ready.
	EventReady
	// The local player fired and the result was recorded on the mirror.
	EventShotFired
	// The opponent fired and the result was applied to the own board.
	EventShotReceived
	// The local player sank the whole enemy fleet.
	EventVictory
	// The opponent sank the whole local fleet.
	EventDefeat
	// The local player left the game.
	EventQuit
	// The opponent left the game.
	EventOpponentQuit
	// The session was aborted by a protocol or connection failure.
	EventAborted
)

// Event is the result of a Step.
type Event struct {
	Kind   EventKind
	Target board.Coordinate
	// Result reported for Target, for shot events.
	Result protocol.Message
	// Ship sunk by an incoming shot, if any.
	Sunk board.ShipKind
	// Free text of an opponent's quit notice.
	Text string
}

// Machine drives the turn protocol for one peer. Each call to Step performs
// exactly one state transition, blocking on the transport and input as needed.
// Boards are only modified by the Machine; it never draws anything.
type Machine struct {
	transport Transport
	role      Role
	own       *board.Board
	mirror    *board.Mirror
	input     Input

	// Text sent to the opponent if the local player quits.
	QuitNotice string

	state   State
	outcome Outcome
	turns   int
}

// NewMachine returns a machine in the Connecting state for the given role.
func NewMachine(transport Transport, role Role, own *board.Board, input Input) *Machine {
	return &Machine{
		transport:  transport,
		role:       role,
		own:        own,
		mirror:     board.NewMirror(),
		input:      input,
		QuitNotice: "Your opponent rage quit. You win!",
		state:      Connecting,
	}
}

func (m *Machine) State() State          { return m.state }
func (m *Machine) Outcome() Outcome      { return m.outcome }
func (m *Machine) Role() Role            { return m.role }
func (m *Machine) Own() *board.Board     { return m.own }
func (m *Machine) Mirror() *board.Mirror { return m.mirror }

// Turns returns the number of completed attacker and defender turns.
func (m *Machine) Turns() int { return m.turns }

// Step performs the next transition. Once the machine is Terminal, Step is a
// no-op. A returned error always leaves the machine Terminal.
func (m *Machine) Step() (Event, error) {
	switch m.state {
	case Connecting:
		m.state = Handshaking
		return Event{Kind: EventConnected}, nil
	case Handshaking:
		return m.handshake()
	case AttackerTurn:
		return m.attack()
	case DefenderTurn:
		return m.defend()
	default:
		return Event{}, nil
	}
}

func (m *Machine) finish(outcome Outcome) {
	m.state = Terminal
	if m.outcome == InProgress {
		m.outcome = outcome
	}
}

// abort ends the session after a failure on the peer's side of the link.
func (m *Machine) abort(err error) (Event, error) {
	m.finish(OpponentQuit)
	return Event{Kind: EventAborted}, err
}

func (m *Machine) handshake() (Event, error) {
	if err := m.transport.Send(protocol.Ready()); err != nil {
		return m.abort(fmt.Errorf("sending ready: %w", err))
	}

	msg, err := m.transport.Receive()
	if err != nil {
		return m.abort(fmt.Errorf("waiting for ready: %w", err))
	}
	if msg.Kind != protocol.KindReady {
		return m.abort(protocol.OutOfOrder(msg, m.state.String()))
	}

	if m.role == AttackerFirst {
		m.state = AttackerTurn
	} else {
		m.state = DefenderTurn
	}
	return Event{Kind: EventReady}, nil
}

func (m *Machine) attack() (Event, error) {
	target, err := m.input.Target(m.mirror)
	if err == nil && !target.InBounds() {
		err = fmt.Errorf("%w: %s", board.ErrTargetOutOfRange, target)
	}
	if err != nil {
		return m.quit(err)
	}

	if err := m.transport.Send(protocol.Attack(target)); err != nil {
		return m.attackFailed(err)
	}

	msg, err := m.transport.Receive()
	if err != nil {
		return m.abort(fmt.Errorf("waiting for result: %w", err))
	}

	switch msg.Kind {
	case protocol.KindResult:
	case protocol.KindQuit:
		m.finish(Win)
		return Event{Kind: EventOpponentQuit, Text: msg.Text}, nil
	default:
		return m.abort(protocol.OutOfOrder(msg, m.state.String()))
	}

	if err := m.mirror.Record(target, msg.Hit, msg.Sunk); err != nil {
		return m.abort(err)
	}
	m.turns++
	event := Event{Kind: EventShotFired, Target: target, Result: msg}

	if m.mirror.IsDefeated() {
		// The opponent ends its session as soon as its last ship sinks, so
		// the notification may find the connection already closed.
		_ = m.transport.Send(protocol.Win())
		m.finish(Win)
		event.Kind = EventVictory
		return event, nil
	}

	m.state = DefenderTurn
	return event, nil
}

// attackFailed handles a failed attack send. An opponent that quit while we
// were choosing a target has already sent its notice before closing, so one
// more read can still find it.
func (m *Machine) attackFailed(sendErr error) (Event, error) {
	msg, err := m.transport.Receive()
	if err == nil && msg.Kind == protocol.KindQuit {
		m.finish(Win)
		return Event{Kind: EventOpponentQuit, Text: msg.Text}, nil
	}
	return m.abort(fmt.Errorf("sending attack: %w", sendErr))
}

func (m *Machine) defend() (Event, error) {
	msg, err := m.transport.Receive()
	if err != nil {
		return m.abort(fmt.Errorf("waiting for attack: %w", err))
	}

	switch msg.Kind {
	case protocol.KindAttack:
	case protocol.KindQuit:
		m.finish(Win)
		return Event{Kind: EventOpponentQuit, Text: msg.Text}, nil
	default:
		return m.abort(protocol.OutOfOrder(msg, m.state.String()))
	}

	result, err := m.own.ApplyGuess(msg.Target)
	if err != nil {
		return m.abort(err)
	}
	m.turns++

	reply := protocol.Result(result.Hit, result.Sunk != board.NoShip)
	event := Event{Kind: EventShotReceived, Target: msg.Target, Result: reply, Sunk: result.Sunk}
	if err := m.transport.Send(reply); err != nil {
		return m.abort(fmt.Errorf("sending result: %w", err))
	}

	if m.own.IsDefeated() {
		m.finish(Lose)
		event.Kind = EventDefeat
		return event, nil
	}

	m.state = AttackerTurn
	return event, nil
}

// quit handles the local player leaving, either deliberately or because their
// input source failed. The opponent is told so that they win immediately.
func (m *Machine) quit(cause error) (Event, error) {
	sendErr := m.transport.Send(protocol.Quit(m.QuitNotice))
	m.finish(Lose)

	event := Event{Kind: EventQuit}
	if !isLeaving(cause) {
		return event, fmt.Errorf("reading input: %w", cause)
	}
	if sendErr != nil {
		return event, fmt.Errorf("sending quit notice: %w", sendErr)
	}
	return event, nil
}

// isLeaving reports whether an input error means the player chose to leave,
// either by asking to quit or by cancelling the game.
func isLeaving(err error) bool {
	return errors.Is(err, ErrQuitRequested) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
