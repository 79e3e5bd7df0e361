package protocol

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned for anything that does not decode to one of the
	// messages in the vocabulary, including bad frame headers.
	ErrMalformed = errors.New("malformed message")
	// ErrOutOfOrder is returned for a well formed message that is not legal in
	// the current state of the game.
	ErrOutOfOrder = errors.New("message out of order")
	// ErrFrameTooLarge is returned when attempting to send a message that does
	// not fit in a single frame.
	ErrFrameTooLarge = errors.New("message exceeds maximum frame size")
)

// Error is a fatal protocol violation by the peer. Since the wire format has
// no way to resynchronize, every Error ends the session.
type Error struct {
	// Either ErrMalformed or ErrOutOfOrder.
	Err     error
	Payload string
	Detail  string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %q", e.Err, e.Payload)
	}
	return fmt.Sprintf("%s: %q (%s)", e.Err, e.Payload, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

func malformed(payload, detail string) error {
	return &Error{Err: ErrMalformed, Payload: payload, Detail: detail}
}

// OutOfOrder builds the error reported when m arrives while the game is in
// a state that does not accept it.
func OutOfOrder(m Message, state string) error {
	return &Error{Err: ErrOutOfOrder, Payload: m.String(), Detail: "unexpected in state " + state}
}
