package kgp

import "errors"

var (
	// ErrUnsupportedVersion is the local error recorded when the server's
	// handshake names a major protocol version this client cannot speak.
	ErrUnsupportedVersion = errors.New("kgp: unsupported protocol major version")

	// ErrClosed is returned by send (and Connect, for an
	// already-cancelled context) once a session has stopped accepting
	// new outbound work.
	ErrClosed = errors.New("kgp: session closed")
)
