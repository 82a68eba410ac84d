// Package kgpclient ties the wire, board, session, and transport
// packages together behind a single entry point: Connect dials a
// server and returns a running Session, picking the stream or
// WebSocket transport the way the reference client's "-url" flag
// does.
package kgpclient

import (
	"context"
	"strings"

	"github.com/kgpkit/kgpclient/kgp"
	"github.com/kgpkit/kgpclient/transport"
)

// Connect dials addr (a "host:port" for the stream protocol, or a
// ws://.../wss://... URL for WebSocket) and returns a Session over
// that connection running agent. Connect blocks only while dialing and
// starts no goroutines; the returned Session's Run method must be
// called to perform the handshake and drive the connection.
//
// Connect fails fast with kgp.ErrClosed if ctx is already done,
// rather than dialing a connection that would be torn down
// immediately.
func Connect(ctx context.Context, addr string, agent kgp.Agent, opts kgp.Options) (*kgp.Session, error) {
	if ctx.Err() != nil {
		return nil, kgp.ErrClosed
	}

	t, err := dial(addr)
	if err != nil {
		return nil, err
	}
	return kgp.NewSession(ctx, t, agent, opts), nil
}

// dial picks WebSocket or TCP based on addr's scheme and returns it
// as a kgp.Transport. transport.TCP and transport.WebSocket satisfy
// that interface structurally; this is the one place that needs both
// concrete types at once, so it lives outside both packages to avoid
// an import cycle.
func dial(addr string) (kgp.Transport, error) {
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		return transport.DialWebSocket(addr)
	}
	return transport.DialTCP(addr)
}
