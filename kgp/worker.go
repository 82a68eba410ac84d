package kgp

import (
	"context"

	"github.com/kgpkit/kgpclient/board"
)

// runWorker drives one search request end to end: if the board is
// already final it yields immediately; otherwise it streams the
// agent's deduplicated moves as `move @ref` and sends `yield @ref`
// once the agent's sequence ends or the board turns out final.
//
// runWorker never sends anything once ctx is done; cancellation is a
// hard stop on the wire, though the agent's own goroutine may keep
// running in the background if it never looks at ctx.
func (s *Session) runWorker(ctx context.Context, id int, b *board.Board) {
	defer s.wg.Done()
	defer s.notifyDone(id)

	if b.Final() {
		s.sendYield(ctx, id)
		return
	}

	moves := s.agent(ctx, b)

	first := true
	last := -1
	for {
		select {
		case <-ctx.Done():
			return

		case m, ok := <-moves:
			if !ok {
				s.sendYield(ctx, id)
				return
			}
			if m < 0 || m >= b.Size {
				return // non-integer/out-of-range move: abandon silently
			}
			if first || m != last {
				if err := s.sendMove(ctx, id, m); err != nil {
					return // session closed: nothing further to do
				}
				first = false
				last = m
			}
		}
	}
}

// sendMove sends `move (m+1) @ref`: wire pits are 1-indexed, internal
// pits are 0-indexed.
func (s *Session) sendMove(ctx context.Context, ref, m int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.send(ref, "move", int64(m+1))
}

func (s *Session) sendYield(ctx context.Context, ref int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.send(ref, "yield")
}

// notifyDone reports a finished worker back to the dispatcher so it
// can drop the request from its table. The request table itself is
// touched only by the dispatch loop.
func (s *Session) notifyDone(id int) {
	select {
	case s.doneCh <- id:
	case <-s.ctx.Done():
	}
}
