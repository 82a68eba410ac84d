package board

import "errors"

var (
	// ErrSize is returned when a wire string does not carry 2n+3 integers.
	ErrSize = errors.New("board: wrong field count")

	// ErrToken is returned when a wire string contains a non-integer field.
	ErrToken = errors.New("board: invalid integer field")

	// ErrDelim is returned when a wire string is missing its angle brackets.
	ErrDelim = errors.New("board: missing delimiters")

	// ErrIllegal is returned by Sow when the chosen pit is empty.
	ErrIllegal = errors.New("board: illegal move")

	// ErrPit is returned when a pit index is out of range for the board size.
	ErrPit = errors.New("board: pit index out of range")
)
