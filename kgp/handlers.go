package kgp

import (
	"context"
	"strings"

	"github.com/kgpkit/kgpclient/wire"
)

// handleHandshake processes an inbound `kgp major minor patch`. It
// returns true (terminate the session) when the server's major
// version is not one this client speaks.
func (s *Session) handleHandshake(cmd *wire.Command) bool {
	major, ok := cmd.Int(0)
	if !ok || major != 1 {
		s.send(cmd.Id, "error", "protocol not supported")
		s.Logger.Debug().Msg(ErrUnsupportedVersion.Error())
		return true
	}

	if s.opts.Name != "" {
		s.send(0, "set", wire.Word("info:name"), s.opts.Name)
	}
	if len(s.opts.Authors) > 0 {
		s.send(0, "set", wire.Word("info:authors"), strings.Join(s.opts.Authors, ", "))
	}
	if s.opts.Token != "" {
		s.send(0, "set", wire.Word("auth:token"), s.opts.Token)
	}
	s.send(0, "mode", wire.Word("freeplay"))

	return false
}

// handleState processes an inbound `state <board>`, spawning a worker
// for a fresh id and silently ignoring a duplicate one.
func (s *Session) handleState(cmd *wire.Command) {
	b, ok := cmd.Board(0)
	if !ok {
		return
	}
	if _, exists := s.requests[cmd.Id]; exists {
		return // duplicate id: ignored, not an error
	}

	if s.opts.Debug {
		s.Logger.Debug().RawJSON("board", b.AppendJSON(nil)).Int("id", cmd.Id).Msg("state")
	}

	ctx, cancel := context.WithCancel(s.ctx)
	s.requests[cmd.Id] = cancel

	s.Stats.Inc("workers_spawned")
	s.wg.Add(1)
	go s.runWorker(ctx, cmd.Id, b)
}

// handleStop processes an inbound `stop @ref`, cancelling the named
// worker. Unknown or already-cancelled refs are a no-op.
func (s *Session) handleStop(cmd *wire.Command) {
	if cmd.Ref == 0 {
		return
	}
	cancel, ok := s.requests[cmd.Ref]
	if !ok {
		return
	}
	delete(s.requests, cmd.Ref)
	cancel()
	s.Stats.Inc("stopped")
}

// handlePing processes an inbound `ping [arg]`, replying with `pong`
// referencing the inbound id and echoing the argument when present.
func (s *Session) handlePing(cmd *wire.Command) {
	if len(cmd.Args) > 0 {
		s.send(cmd.Id, "pong", cmd.Args[0])
	} else {
		s.send(cmd.Id, "pong")
	}
}
