package kgp

import (
	"context"

	"github.com/kgpkit/kgpclient/board"
)

// Agent is the user-supplied move-producer. Given a board, it returns
// a channel of candidate pit indices: a lazy, restartable sequence in
// the sense that a fresh call to Agent gets a fresh sequence from
// scratch. The channel may produce arbitrarily many values before
// closing; the worker consumes a prefix of it and may stop consuming
// at any point.
//
// An Agent must close its channel when it has nothing further to
// offer (a natural "yield"). It must also respect ctx: once ctx is
// done, the worker is no longer reading from the channel and further
// sends on it are pointless (and, if unbuffered, will leak the
// producing goroutine). An Agent that ignores ctx entirely still
// works correctly, but its goroutine keeps running in the background
// after cancellation until it notices on its own — see the package
// doc for the cancellation contract workers offer.
type Agent func(ctx context.Context, b *board.Board) <-chan int
