package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/dcrodman/broadside/internal/debug"
)

const (
	// HeaderSize is the length of the frame header: a little endian uint16
	// holding the size of the whole frame, header included.
	HeaderSize = 2
	// MaxFrameSize bounds both outgoing and incoming frames.
	MaxFrameSize = 1024
)

// Conn exchanges framed messages with the peer over a stream connection. It
// is not safe for concurrent use; the game is strictly half-duplex.
type Conn struct {
	connection net.Conn
	buffer     []byte

	// How long Receive waits for the next frame. Zero blocks forever.
	ReadTimeout time.Duration
	// When set, every frame is dumped to the debug log.
	Dumper *debug.FrameDumper
}

// NewConn wraps an established connection.
func NewConn(connection net.Conn) *Conn {
	return &Conn{
		connection: connection,
		buffer:     make([]byte, MaxFrameSize),
	}
}

// RemoteAddr returns the address of the peer.
func (c *Conn) RemoteAddr() string {
	return c.connection.RemoteAddr().String()
}

// Close the underlying connection. Any blocked Receive returns an error.
func (c *Conn) Close() error {
	return c.connection.Close()
}

// Send writes m to the peer as a single frame.
func (c *Conn) Send(m Message) error {
	frame, err := encodeFrame(m.String())
	if err != nil {
		return err
	}

	if c.Dumper != nil {
		c.Dumper.Sent(frame)
	}
	return c.transmit(frame)
}

// transmit writes the contents of data to the connection until every byte has been sent.
func (c *Conn) transmit(data []byte) error {
	for sent := 0; sent < len(data); {
		n, err := c.connection.Write(data[sent:])
		if err != nil {
			return fmt.Errorf("failed to send to peer %v: %w", c.RemoteAddr(), err)
		}
		sent += n
	}
	return nil
}

// Receive blocks until the next frame has arrived and decodes it. A peer that
// closes the connection between frames results in an error wrapping io.EOF.
func (c *Conn) Receive() (Message, error) {
	if c.ReadTimeout > 0 {
		if err := c.connection.SetReadDeadline(time.Now().Add(c.ReadTimeout)); err != nil {
			return Message{}, fmt.Errorf("setting read deadline: %w", err)
		}
	}

	if err := c.readFull(c.buffer[:HeaderSize]); err != nil {
		return Message{}, err
	}

	size, err := determineFrameSize(c.buffer[:HeaderSize])
	if err != nil {
		return Message{}, err
	}

	if err := c.readFull(c.buffer[HeaderSize:size]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return Message{}, err
	}

	if c.Dumper != nil {
		c.Dumper.Received(c.buffer[:size])
	}
	return Parse(string(c.buffer[HeaderSize:size]))
}

func (c *Conn) readFull(buffer []byte) error {
	received := 0
	for received < len(buffer) {
		n, err := c.connection.Read(buffer[received:])
		received += n

		if err == io.EOF {
			if received == len(buffer) {
				return nil
			}
			if received > 0 {
				return fmt.Errorf("peer closed mid-frame: %w", io.ErrUnexpectedEOF)
			}
			return io.EOF
		} else if err != nil {
			return fmt.Errorf("socket error (%s): %w", c.RemoteAddr(), err)
		}
	}
	return nil
}

func encodeFrame(payload string) ([]byte, error) {
	size := HeaderSize + len(payload)
	if size > MaxFrameSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, size)
	}

	frame := make([]byte, size)
	binary.LittleEndian.PutUint16(frame, uint16(size))
	copy(frame[HeaderSize:], payload)
	return frame, nil
}

// determineFrameSize extracts the frame length from the header.
func determineFrameSize(header []byte) (int, error) {
	size := int(binary.LittleEndian.Uint16(header))
	if size <= HeaderSize || size > MaxFrameSize {
		return 0, malformed(fmt.Sprintf("% x", header), fmt.Sprintf("invalid frame size %d", size))
	}
	return size, nil
}
