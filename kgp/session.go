// Package kgp implements the KGP session/dispatcher: the handshake,
// inbound command dispatch, per-request worker lifecycle with
// cancellation, and the outbound id/send discipline described in the
// protocol spec.
//
// Cancellation contract: a worker may be abandoned at any suspension
// point once its request is cancelled (by a server `stop` or by
// session shutdown). Go offers no OS-process-style preemption, so an
// Agent that never checks its context keeps its own goroutine running
// in the background after cancellation; the session guarantees only
// that it will never emit another message for that request once
// cancelled. Agents should treat their own state as non-reclaimable
// past cancellation and must not rely on any cleanup code running
// after it.
package kgp

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/kgpkit/kgpclient/wire"
	"github.com/rs/zerolog"
)

// Transport is the abstract line-delivery interface the dispatcher
// depends on. A line passed to WriteMessage carries no line
// terminator; framing (appending CRLF, or wrapping in a WebSocket
// text frame) is the transport's job.
type Transport interface {
	// ReadLine blocks for the next inbound line, returning io.EOF (or
	// any other error) once the peer closes the connection.
	ReadLine() (string, error)

	// WriteMessage writes one outbound message.
	WriteMessage(data []byte) error

	// Close unblocks any pending ReadLine/WriteMessage and releases
	// the underlying connection.
	Close() error
}

// Session is one live KGP connection: a dispatcher goroutine, a
// sender goroutine, and zero or more worker goroutines, all described
// in the protocol spec's concurrency model.
type Session struct {
	*zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	transport Transport
	agent     Agent
	opts      Options

	Stats *Stats

	nextID atomic.Int64 // next outbound id minus 2; see allocID

	outbox chan *wire.Command
	lineCh chan string
	doneCh chan int

	wg       sync.WaitGroup // sender + workers
	requests map[int]context.CancelFunc

	closing atomic.Bool
	done    chan struct{}
}

// NewSession wires up a Session over an already-connected transport.
// Call Run to start the handshake and dispatch loop; Run blocks until
// the session ends.
func NewSession(ctx context.Context, t Transport, agent Agent, opts Options) *Session {
	sctx, cancel := context.WithCancel(ctx)

	logger := opts.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	s := &Session{
		Logger:    logger,
		ctx:       sctx,
		cancel:    cancel,
		transport: t,
		agent:     agent,
		opts:      opts,
		Stats:     NewStats(),
		outbox:    make(chan *wire.Command, 64),
		lineCh:    make(chan string),
		doneCh:    make(chan int, 64),
		requests:  make(map[int]context.CancelFunc),
		done:      make(chan struct{}),
	}
	s.nextID.Store(-1) // first allocID() call returns 1

	return s
}

// allocID atomically consumes the next odd outbound id.
func (s *Session) allocID() int {
	return int(s.nextID.Add(2))
}

// Run starts the sender and the read loop, then dispatches inbound
// commands until the transport closes, the peer says goodbye/fail, or
// ctx is cancelled. Run blocks until the session is fully stopped.
func (s *Session) Run() {
	s.wg.Add(1)
	go s.runSender()

	go s.readLoop()

	s.dispatchLoop()

	s.Stop()
	s.wg.Wait()
	close(s.done)
}

// Stop cancels the session context, closes the transport to unblock
// any pending read/write, and stops accepting new work. Safe to call
// more than once and from any goroutine.
func (s *Session) Stop() {
	if s.closing.Swap(true) {
		return
	}
	s.cancel()
	_ = s.transport.Close()
}

// Done returns a channel closed once Run has fully returned.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// readLoop is the dispatcher's sole blocking-read suspension point,
// feeding raw lines to the dispatch loop over lineCh so the
// dispatcher can also select on worker completions and ctx.Done().
func (s *Session) readLoop() {
	defer close(s.lineCh)
	for {
		line, err := s.transport.ReadLine()
		if err != nil {
			return
		}
		select {
		case s.lineCh <- line:
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Session) dispatchLoop() {
	for {
		select {
		case <-s.ctx.Done():
			return

		case id := <-s.doneCh:
			delete(s.requests, id)

		case line, ok := <-s.lineCh:
			if !ok {
				return // transport closed
			}
			if s.opts.Debug {
				s.Logger.Debug().Msg("< " + strings.TrimRight(line, "\r\n"))
			}
			cmd, err := wire.Parse(line)
			if err != nil {
				if s.opts.Debug {
					s.Logger.Debug().Err(err).Msg("dropping unparsable line")
				}
				continue
			}
			s.Stats.Inc("inbound")
			if stop := s.dispatch(cmd); stop {
				return
			}
		}
	}
}

// dispatch handles one parsed inbound command. It returns true if the
// session should terminate (goodbye, fail, or a fatal handshake
// mismatch).
func (s *Session) dispatch(cmd *wire.Command) (terminate bool) {
	switch cmd.Name {
	case "kgp":
		return s.handleHandshake(cmd)
	case "state":
		s.handleState(cmd)
	case "stop":
		s.handleStop(cmd)
	case "ping":
		s.handlePing(cmd)
	case "ok":
		// no-op
	case "error":
		if s.opts.Debug {
			s.Logger.Debug().Interface("args", cmd.Args).Msg("server reported error")
		}
	case "goodbye", "fail":
		return true
	default:
		// unknown command: silently ignored
	}
	return false
}

// send enqueues an outbound command, allocating the next id and
// attaching ref (0 meaning "no reference"). It returns ErrClosed,
// without blocking, once the session has started shutting down.
func (s *Session) send(ref int, name string, args ...any) error {
	if s.ctx.Err() != nil {
		return ErrClosed
	}
	cmd := wire.New(s.allocID(), ref, name, args...)
	select {
	case s.outbox <- cmd:
		s.Stats.Inc("outbound")
		return nil
	case <-s.ctx.Done():
		return ErrClosed
	}
}

// runSender is the single FIFO consumer of the outbound queue,
// guaranteeing atomic line writes with no per-byte locking.
func (s *Session) runSender() {
	defer s.wg.Done()
	for {
		select {
		case cmd, ok := <-s.outbox:
			if !ok {
				return
			}
			data := cmd.Bytes()
			if s.opts.Debug {
				s.Logger.Debug().Msg("> " + string(data))
			}
			if err := s.transport.WriteMessage(data); err != nil {
				s.Logger.Debug().Err(err).Msg("transport write failed")
				s.Stop()
				return
			}
		case <-s.ctx.Done():
			return
		}
	}
}
