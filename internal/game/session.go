package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dcrodman/broadside"
	"github.com/dcrodman/broadside/internal/board"
	"github.com/dcrodman/broadside/internal/protocol"
)

// ErrIncompleteFleet is returned when a session is started before every ship has been placed.
var ErrIncompleteFleet = errors.New("fleet is not fully placed")

// Summary describes a finished session.
type Summary struct {
	Opponent string
	Role     Role
	Outcome  Outcome
	Turns    int
	Shots    int
	Hits     int
	Started  time.Time
	Duration time.Duration
}

// Session owns the connection to the opponent for the lifetime of one game.
// It runs the turn protocol to completion and keeps the renderer informed.
type Session struct {
	conn     Connection
	sender   *lockedTransport
	machine  *Machine
	renderer Renderer
	log      *logrus.Entry

	mu        sync.Mutex
	abandoned bool
	started   time.Time
	finished  time.Time
}

// NewSession prepares a session for a fully placed fleet. renderer may be nil.
func NewSession(conn Connection, role Role, own *board.Board, input Input, renderer Renderer) (*Session, error) {
	if !own.IsComplete() {
		return nil, ErrIncompleteFleet
	}
	if renderer == nil {
		renderer = nopRenderer{}
	}

	log := broadside.Log.WithFields(logrus.Fields{
		"role": role.String(),
		"peer": conn.RemoteAddr(),
	})

	sender := &lockedTransport{Transport: conn}
	return &Session{
		conn:     conn,
		sender:   sender,
		machine:  NewMachine(sender, role, own, input),
		renderer: renderer,
		log:      log,
	}, nil
}

// SetQuitNotice sets the text the opponent sees if the local player leaves.
func (s *Session) SetQuitNotice(text string) {
	s.machine.QuitNotice = text
}

// Run plays the game until it ends and closes the connection. Cancelling ctx
// counts as the local player quitting: the opponent is notified and the
// outcome is Lose. Protocol violations and connection failures end the game as
// OpponentQuit, with the cause returned as the error.
func (s *Session) Run(ctx context.Context) (Outcome, error) {
	s.started = time.Now()
	defer s.conn.Close()

	done := make(chan struct{})
	defer close(done)
	go s.watchForCancel(ctx, done)

	s.renderer.Render(s.machine.Own(), true)
	s.renderer.Render(s.machine.Mirror(), false)

	var (
		event Event
		err   error
	)
	for s.machine.State() != Terminal {
		event, err = s.machine.Step()
		s.report(event)
		if err != nil {
			break
		}
	}
	s.finished = time.Now()

	// The input may notice the cancellation before watchForCancel does.
	if ctx.Err() != nil && (event.Kind == EventQuit || event.Kind == EventAborted) {
		s.mu.Lock()
		s.abandoned = true
		s.mu.Unlock()
	}
	if s.wasAbandoned() {
		s.log.Info("left the game")
		if event.Kind != EventQuit {
			s.renderer.Announce("You left the game.")
		}
		return Lose, nil
	}

	outcome := s.machine.Outcome()
	if err != nil {
		s.log.WithError(err).Warnf("game ended: %s", outcome)
		if outcome == OpponentQuit {
			s.renderer.Announce("Connection to your opponent was lost.")
		}
	} else {
		s.log.Infof("game over after %d turns: %s", s.machine.Turns(), outcome)
	}
	return outcome, err
}

// watchForCancel tells the opponent we are leaving if ctx is cancelled while
// the game is still running, then closes the connection to unblock Run.
func (s *Session) watchForCancel(ctx context.Context, done <-chan struct{}) {
	select {
	case <-done:
		return
	case <-ctx.Done():
	}

	s.mu.Lock()
	s.abandoned = true
	s.mu.Unlock()

	if err := s.sender.Send(protocol.Quit(s.machine.QuitNotice)); err != nil {
		s.log.WithError(err).Debug("failed to send quit notice")
	}
	if err := s.conn.Close(); err != nil {
		s.log.WithError(err).Debug("failed to close connection")
	}
}

func (s *Session) wasAbandoned() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.abandoned
}

// report forwards the effects of a step to the renderer.
func (s *Session) report(e Event) {
	switch e.Kind {
	case EventReady:
		s.log.Debug("handshake complete")
		if s.machine.State() == AttackerTurn {
			s.renderer.Announce("Both fleets are ready. You fire first.")
		} else {
			s.renderer.Announce("Both fleets are ready. Waiting for your opponent's attack...")
		}
	case EventShotFired, EventVictory:
		s.log.Debugf("fired at %s: %s", e.Target, e.Result)
		s.renderer.Render(s.machine.Mirror(), false)
		s.renderer.Announce(fmt.Sprintf("%s: %s", e.Target.Label(), e.Result))
		if e.Kind == EventVictory {
			s.renderer.Announce("You sank the entire enemy fleet. You win!")
		} else {
			s.renderer.Announce("Waiting for your opponent's attack...")
		}
	case EventShotReceived, EventDefeat:
		s.log.Debugf("attacked at %s: %s", e.Target, e.Result)
		s.renderer.Render(s.machine.Own(), true)
		msg := fmt.Sprintf("Opponent fired at %s: %s", e.Target.Label(), e.Result)
		if e.Sunk != board.NoShip {
			msg += fmt.Sprintf(". Your %s went down", e.Sunk)
		}
		s.renderer.Announce(msg)
		if e.Kind == EventDefeat {
			s.renderer.Announce("Your entire fleet has been sunk. You lose!")
		}
	case EventOpponentQuit:
		s.log.Info("opponent left the game")
		s.renderer.Announce(e.Text)
	case EventQuit:
		s.renderer.Announce("You left the game.")
	}
}

// Summary returns statistics for the session. It is only complete once Run has returned.
func (s *Session) Summary() Summary {
	outcome := s.machine.Outcome()
	if s.wasAbandoned() {
		outcome = Lose
	}
	return Summary{
		Opponent: s.conn.RemoteAddr(),
		Role:     s.machine.Role(),
		Outcome:  outcome,
		Turns:    s.machine.Turns(),
		Shots:    s.machine.Mirror().Shots(),
		Hits:     s.machine.Mirror().Hits(),
		Started:  s.started,
		Duration: s.finished.Sub(s.started),
	}
}

// lockedTransport serializes sends so that a quit notice triggered by
// cancellation cannot interleave with a frame written by the Machine.
type lockedTransport struct {
	Transport
	mu sync.Mutex
}

func (t *lockedTransport) Send(m protocol.Message) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Transport.Send(m)
}
