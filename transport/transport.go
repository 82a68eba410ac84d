// Package transport provides the two line-delivery backends a KGP
// client connects over: a raw TCP stream and a WebSocket. Both satisfy
// the session dispatcher's Transport method set (ReadLine, WriteMessage,
// Close) without importing the package that declares it, so callers
// pick one and hand it to a session without an import cycle.
package transport

// DefaultPort is the well-known TCP port for Kalah Game Protocol
// servers that don't specify one.
const DefaultPort = "2671"
