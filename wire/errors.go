package wire

import "errors"

var (
	// ErrNoMatch is returned when a line does not match the command grammar.
	ErrNoMatch = errors.New("wire: line does not match command grammar")
)
