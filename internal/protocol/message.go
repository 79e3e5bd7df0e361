// Package protocol implements the messages exchanged between two peers and
// the framing used to carry them over a stream connection.
//
// Every message is a short text token:
//
//	READY               handshake
//	<row>,<col>         attack target, e.g. "5,3"
//	HIT | MISS          attack result
//	HIT (sunk)          attack result that completed a ship
//	WIN | LOSE          terminal notifications
//	QUIT:<free text>    the sender has left the game
package protocol

import (
	"fmt"
	"strings"

	"github.com/dcrodman/broadside/internal/board"
)

// Kind identifies the type of a message.
type Kind int

const (
	KindReady Kind = iota + 1
	KindAttack
	KindResult
	KindWin
	KindLose
	KindQuit
)

func (k Kind) String() string {
	switch k {
	case KindReady:
		return "ready"
	case KindAttack:
		return "attack"
	case KindResult:
		return "result"
	case KindWin:
		return "win"
	case KindLose:
		return "lose"
	case KindQuit:
		return "quit"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

const (
	readyToken = "READY"
	hitToken   = "HIT"
	missToken  = "MISS"
	sunkSuffix = " (sunk)"
	winToken   = "WIN"
	loseToken  = "LOSE"
	quitPrefix = "QUIT:"
)

// Message is a single decoded protocol message. Only the fields relevant to
// the Kind are set.
type Message struct {
	Kind   Kind
	Target board.Coordinate
	Hit    bool
	Sunk   bool
	Text   string
}

func Ready() Message { return Message{Kind: KindReady} }

func Attack(target board.Coordinate) Message { return Message{Kind: KindAttack, Target: target} }

// Result builds the reply to an attack. Sunk is only meaningful for hits.
func Result(hit, sunk bool) Message { return Message{Kind: KindResult, Hit: hit, Sunk: hit && sunk} }

func Win() Message { return Message{Kind: KindWin} }

func Lose() Message { return Message{Kind: KindLose} }

// Quit builds the notice sent by a player who leaves mid-game.
func Quit(text string) Message { return Message{Kind: KindQuit, Text: text} }

// String returns the wire representation of the message.
func (m Message) String() string {
	switch m.Kind {
	case KindReady:
		return readyToken
	case KindAttack:
		return fmt.Sprintf("%d,%d", m.Target.Row, m.Target.Col)
	case KindResult:
		if !m.Hit {
			return missToken
		}
		if m.Sunk {
			return hitToken + sunkSuffix
		}
		return hitToken
	case KindWin:
		return winToken
	case KindLose:
		return loseToken
	case KindQuit:
		return quitPrefix + m.Text
	default:
		return ""
	}
}

// Parse decodes the payload of a frame. Anything outside of the vocabulary,
// including coordinates that are not plain decimal numbers in range, is
// reported as ErrMalformed.
func Parse(payload string) (Message, error) {
	switch payload {
	case readyToken:
		return Ready(), nil
	case hitToken:
		return Result(true, false), nil
	case hitToken + sunkSuffix:
		return Result(true, true), nil
	case missToken:
		return Result(false, false), nil
	case winToken:
		return Win(), nil
	case loseToken:
		return Lose(), nil
	}

	if strings.HasPrefix(payload, quitPrefix) {
		return Quit(strings.TrimPrefix(payload, quitPrefix)), nil
	}

	if strings.Contains(payload, ",") {
		target, err := parseTarget(payload)
		if err != nil {
			return Message{}, err
		}
		return Attack(target), nil
	}

	return Message{}, malformed(payload, "unrecognized token")
}

func parseTarget(payload string) (board.Coordinate, error) {
	parts := strings.Split(payload, ",")
	if len(parts) != 2 {
		return board.Coordinate{}, malformed(payload, "coordinate must have exactly two parts")
	}

	row, ok := parseAxis(parts[0])
	if !ok {
		return board.Coordinate{}, malformed(payload, "row is not a number between 1 and 10")
	}
	col, ok := parseAxis(parts[1])
	if !ok {
		return board.Coordinate{}, malformed(payload, "column is not a number between 1 and 10")
	}
	return board.Coordinate{Row: row, Col: col}, nil
}

// parseAxis accepts only the canonical decimal form, so "+5", " 5" and "05" are rejected.
func parseAxis(s string) (int, bool) {
	if s == "" || len(s) > 2 || s[0] == '0' {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, n >= 1 && n <= board.Size
}
