// Package peer establishes the single TCP link between the two players. One
// side hosts and waits for exactly one opponent, the other joins.
package peer

import (
	"context"
	"fmt"
	"net"

	"github.com/dcrodman/broadside"
)

// Listener waits for an opponent to connect.
type Listener struct {
	addr   *net.TCPAddr
	socket *net.TCPListener
}

// Listen opens a TCP socket on addr ("host:port"). A port of "0" lets the OS
// choose; Addr reports the result.
func Listen(addr string) (*Listener, error) {
	hostAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve address %s: %w", addr, err)
	}

	socket, err := net.ListenTCP("tcp", hostAddr)
	if err != nil {
		return nil, fmt.Errorf("error listening on socket: %w", err)
	}
	return &Listener{addr: socket.Addr().(*net.TCPAddr), socket: socket}, nil
}

// Addr returns the address the listener is bound to.
func (l *Listener) Addr() *net.TCPAddr { return l.addr }

// Accept blocks until one opponent has connected or ctx is done, then stops
// listening. Only one connection is ever accepted.
func (l *Listener) Accept(ctx context.Context) (net.Conn, error) {
	defer l.socket.Close()

	type accepted struct {
		connection *net.TCPConn
		err        error
	}
	connections := make(chan accepted, 1)
	go func() {
		connection, err := l.socket.AcceptTCP()
		connections <- accepted{connection, err}
	}()

	select {
	case <-ctx.Done():
		// Closing the socket unblocks the pending AcceptTCP.
		l.socket.Close()
		if a := <-connections; a.connection != nil {
			a.connection.Close()
		}
		return nil, ctx.Err()
	case a := <-connections:
		if a.err != nil {
			return nil, fmt.Errorf("failed to accept connection: %w", a.err)
		}
		broadside.Log.Infof("accepted opponent connection from %s", a.connection.RemoteAddr())
		return a.connection, nil
	}
}

// Close stops listening without accepting a connection.
func (l *Listener) Close() error {
	return l.socket.Close()
}

// Host listens on addr and waits for a single opponent.
func Host(ctx context.Context, addr string) (net.Conn, error) {
	l, err := Listen(addr)
	if err != nil {
		return nil, err
	}
	broadside.Log.Infof("waiting for an opponent on %s", l.Addr())
	return l.Accept(ctx)
}

// Join connects to an opponent hosting on addr.
func Join(ctx context.Context, addr string) (net.Conn, error) {
	var dialer net.Dialer
	connection, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	broadside.Log.Infof("connected to opponent at %s", connection.RemoteAddr())
	return connection, nil
}
