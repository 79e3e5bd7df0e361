package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dcrodman/broadside"
	"github.com/dcrodman/broadside/internal/board"
	"github.com/dcrodman/broadside/internal/core"
	"github.com/dcrodman/broadside/internal/data"
	"github.com/dcrodman/broadside/internal/debug"
	"github.com/dcrodman/broadside/internal/game"
	"github.com/dcrodman/broadside/internal/peer"
	"github.com/dcrodman/broadside/internal/protocol"
	"github.com/dcrodman/broadside/internal/term"
)

func host(c *cli.Context) error {
	cfg, err := setUp(c)
	if err != nil {
		return err
	}

	addr := c.String("listen")
	if addr == "" {
		addr = cfg.ListenAddress()
	}
	return play(c.Context, cfg, game.AttackerFirst, func(ctx context.Context) (net.Conn, error) {
		fmt.Printf("Waiting for an opponent on %s...\n", addr)
		return peer.Host(ctx, addr)
	})
}

func join(c *cli.Context) error {
	cfg, err := setUp(c)
	if err != nil {
		return err
	}

	addr := c.Args().First()
	if addr == "" {
		addr = cfg.ListenAddress()
	}
	return play(c.Context, cfg, game.AttackerSecond, func(ctx context.Context) (net.Conn, error) {
		fmt.Printf("Connecting to %s...\n", addr)
		return peer.Join(ctx, addr)
	})
}

// setUp loads the config and initializes logging for a command.
func setUp(c *cli.Context) (*core.Config, error) {
	cfg, err := core.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if err := broadside.InitLogger(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// play runs a single game from connection to result.
func play(parent context.Context, cfg *core.Config, role game.Role, connect func(context.Context) (net.Conn, error)) error {
	// Bind the game to one top-level context so that Ctrl-C leaves cleanly.
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	finished := make(chan struct{})
	defer func() {
		signal.Stop(sigs)
		close(finished)
	}()
	go exitHandler(cancel, sigs, finished)

	connection, err := connect(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	defer connection.Close()
	fmt.Println("Opponent connected!")

	conn := protocol.NewConn(connection)
	conn.ReadTimeout = cfg.ReadTimeout
	if cfg.Debugging.PacketLoggingEnabled {
		conn.Dumper = &debug.FrameDumper{Peer: conn.RemoteAddr()}
	}

	prompt := term.NewPrompt(ctx, os.Stdin, os.Stdout)
	renderer := term.NewRenderer(os.Stdout)

	term.Welcome(os.Stdout, term.DefaultWidth)
	if err := prompt.Pause(); err != nil {
		return ignoreQuit(err)
	}

	own, err := placeFleet(cfg, prompt, renderer)
	if err != nil {
		return ignoreQuit(err)
	}

	session, err := game.NewSession(conn, role, own, prompt, renderer)
	if err != nil {
		return err
	}
	session.SetQuitNotice(fmt.Sprintf("%s rage quit. You win!", cfg.PlayerName))

	outcome, err := session.Run(ctx)
	announceOutcome(outcome)

	if cfg.History.Enabled {
		if recordErr := recordMatch(cfg, session.Summary()); recordErr != nil {
			broadside.Log.Warnf("failed to record match: %v", recordErr)
		}
	}
	return err
}

func placeFleet(cfg *core.Config, prompt *term.Prompt, renderer *term.Renderer) (*board.Board, error) {
	if cfg.RandomPlacement {
		own := board.RandomFleet(rand.New(rand.NewSource(time.Now().UnixNano())))
		renderer.Render(own, true)
		return own, nil
	}

	fmt.Println("**Place your ships**")
	own := board.New()
	if err := game.PlaceFleet(own, prompt, renderer); err != nil {
		return nil, err
	}
	return own, nil
}

func announceOutcome(outcome game.Outcome) {
	switch outcome {
	case game.Win:
		fmt.Println("Victory! The enemy fleet is at the bottom of the sea.")
	case game.Lose:
		fmt.Println("Defeat. Better luck next time.")
	case game.OpponentQuit:
		fmt.Println("The game was cut short.")
	}
}

func recordMatch(cfg *core.Config, summary game.Summary) error {
	db, err := data.Open(cfg)
	if err != nil {
		return err
	}
	defer data.Shutdown(db)

	return data.RecordMatch(db, &data.MatchRecord{
		PlayerName: cfg.PlayerName,
		Opponent:   summary.Opponent,
		Role:       summary.Role.String(),
		Outcome:    summary.Outcome.String(),
		Turns:      summary.Turns,
		Shots:      summary.Shots,
		Hits:       summary.Hits,
		StartedAt:  summary.Started,
		Duration:   summary.Duration,
	})
}

// ignoreQuit treats leaving before the game started as a normal exit.
func ignoreQuit(err error) error {
	if errors.Is(err, game.ErrQuitRequested) || errors.Is(err, context.Canceled) {
		fmt.Println("You left the game.")
		return nil
	}
	return err
}

// exitHandler cancels the game on the first signal and exits hard on the
// second. It returns once finished is closed.
func exitHandler(cancelFn func(), c <-chan os.Signal, finished <-chan struct{}) {
	select {
	case <-finished:
		return
	case <-c:
	}
	fmt.Println("\nleaving the game...")
	cancelFn()

	select {
	case <-finished:
	case <-c:
		fmt.Println("hard exiting (killed)")
		os.Exit(1)
	}
}
