// kalah-client is a basic example for kgpclient usage: it connects to
// a Kalah Game Protocol server and plays using one of the bundled
// example agents.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kgpkit/kgpclient"
	"github.com/kgpkit/kgpclient/board"
	"github.com/kgpkit/kgpclient/examples/agents"
	"github.com/kgpkit/kgpclient/kgp"
	"github.com/rs/zerolog"
)

var (
	opt_name  = flag.String("name", "kgpclient", "agent name reported to the server")
	opt_token = flag.String("token", "", "reservation token, if the server requires one")
	opt_debug = flag.Bool("debug", false, "log every inbound/outbound line")
	opt_agent = flag.String("agent", "random", "agent to play with: random, chance, minimax")
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("usage: kalah-client [OPTIONS] <host:port | ws://host/path>")
		os.Exit(1)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	if !*opt_debug {
		logger = logger.Level(zerolog.InfoLevel)
	}

	opts := kgp.DefaultOptions
	opts.Logger = &logger
	opts.Name = *opt_name
	opts.Token = *opt_token
	opts.Debug = *opt_debug

	agent := pickAgent(*opt_agent)

	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	sess, err := kgpclient.Connect(ctx, flag.Arg(0), agent, opts)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect failed")
	}
	sess.Run()
}

// pickAgent resolves the -agent flag to a kgp.Agent. Unknown names
// fall back to randomMove so the binary never refuses to start.
func pickAgent(name string) kgp.Agent {
	switch name {
	case "chance":
		return agents.Chance
	case "minimax":
		return agents.Minimax
	case "random":
		return randomMove
	default:
		return randomMove
	}
}

// randomMove offers the board's legal moves in random order, then
// yields. It is the simplest possible conforming agent and doubles as
// the default when no smarter one is selected.
func randomMove(ctx context.Context, b *board.Board) <-chan int {
	ch := make(chan int)
	go func() {
		defer close(ch)
		moves := b.LegalMoves(board.South)
		rand.Shuffle(len(moves), func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })
		for _, m := range moves {
			select {
			case ch <- m:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
