// Package board implements the Kalah board model: parsing and
// serialising the wire form, legal-move enumeration, and the sowing
// rule (capture and endgame collection included).
//
// A Board is a value the session/dispatcher layer hands to agents; an
// agent never mutates the Board it is given. Sow always returns a new
// Board, leaving the receiver untouched.
package board

import (
	"strconv"
	"strings"

	kjson "github.com/kgpkit/kgpclient/json"
)

// Side names one of the two players. The wire form and this package
// agree on one convention: south fields are always serialised and
// parsed before north fields (see Parse and Board.String).
type Side bool

const (
	South Side = false
	North Side = true
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	return !s
}

func (s Side) String() string {
	if s == North {
		return "north"
	}
	return "south"
}

// Board is a Kalah board of some fixed Size (pits per side). Pit i on
// a side is positionally opposite pit Size-1-i on the other side.
//
// Boards are treated as immutable by convention: Sow returns a new
// Board rather than mutating the receiver. Copy is provided for
// callers (agents) that need their own private, mutable working copy.
type Board struct {
	Size int

	SouthStore int
	NorthStore int

	SouthPits []int
	NorthPits []int
}

// NewBoard builds a board from explicit per-side pit counts. The two
// slices must have equal length; that length becomes Size.
func NewBoard(southStore, northStore int, southPits, northPits []int) *Board {
	b := &Board{
		Size:       len(southPits),
		SouthStore: southStore,
		NorthStore: northStore,
		SouthPits:  append([]int(nil), southPits...),
		NorthPits:  append([]int(nil), northPits...),
	}
	return b
}

// Parse turns a KGP board literal, `<n,south_store,north_store,
// s0,...,s(n-1),n0,...,n(n-1)>`, into a Board. It returns an error
// (and a nil Board) if the outer delimiters are missing, if the field
// count does not equal 2n+3, or if any field is not a base-10
// non-negative integer.
func Parse(raw string) (*Board, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) < 2 || raw[0] != '<' || raw[len(raw)-1] != '>' {
		return nil, ErrDelim
	}
	inner := raw[1 : len(raw)-1]

	var fields []int
	for _, tok := range strings.Split(inner, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, ErrToken
		}
		v, err := strconv.Atoi(tok)
		if err != nil || v < 0 {
			return nil, ErrToken
		}
		fields = append(fields, v)
	}

	if len(fields) < 3 {
		return nil, ErrSize
	}
	n := fields[0]
	if len(fields) != 2*n+3 {
		return nil, ErrSize
	}

	southStore, northStore := fields[1], fields[2]
	rest := fields[3:]
	return NewBoard(southStore, northStore, rest[:n], rest[n:]), nil
}

// String renders the Board back into its wire literal. For any Board
// produced by Parse or NewBoard, Parse(b.String()) reproduces an
// equal Board.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(strconv.Itoa(b.Size))
	sb.WriteByte(',')
	sb.WriteString(strconv.Itoa(b.SouthStore))
	sb.WriteByte(',')
	sb.WriteString(strconv.Itoa(b.NorthStore))
	for _, v := range b.SouthPits {
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(v))
	}
	for _, v := range b.NorthPits {
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte('>')
	return sb.String()
}

// Copy returns a deep copy of b.
func (b *Board) Copy() *Board {
	return NewBoard(b.SouthStore, b.NorthStore, b.SouthPits, b.NorthPits)
}

// AppendJSON appends a JSON object describing b to dst, for use in
// structured debug logging.
func (b *Board) AppendJSON(dst []byte) []byte {
	dst = append(dst, `{"size":`...)
	dst = kjson.Int(dst, b.Size)
	dst = append(dst, `,"south_store":`...)
	dst = kjson.Int(dst, b.SouthStore)
	dst = append(dst, `,"north_store":`...)
	dst = kjson.Int(dst, b.NorthStore)
	dst = append(dst, `,"south_pits":`...)
	dst = kjson.Ints(dst, b.SouthPits)
	dst = append(dst, `,"north_pits":`...)
	dst = kjson.Ints(dst, b.NorthPits)
	return append(dst, '}')
}

// pits returns the mutable pit slice owned by side.
func (b *Board) pits(side Side) []int {
	if side == North {
		return b.NorthPits
	}
	return b.SouthPits
}

// store returns the current store count for side.
func (b *Board) store(side Side) int {
	if side == North {
		return b.NorthStore
	}
	return b.SouthStore
}

func (b *Board) addStore(side Side, n int) {
	if side == North {
		b.NorthStore += n
	} else {
		b.SouthStore += n
	}
}

// Pit returns the stone count in pit i on side.
func (b *Board) Pit(side Side, i int) int {
	return b.pits(side)[i]
}

// Store returns the stone count in side's store.
func (b *Board) Store(side Side) int {
	return b.store(side)
}

// Legal reports whether side may sow from pit i: pit i must exist and
// hold at least one stone.
func (b *Board) Legal(side Side, i int) bool {
	if i < 0 || i >= b.Size {
		return false
	}
	return b.Pit(side, i) > 0
}

// LegalMoves returns the ascending list of pit indices side may sow
// from.
func (b *Board) LegalMoves(side Side) []int {
	var moves []int
	for i := 0; i < b.Size; i++ {
		if b.Legal(side, i) {
			moves = append(moves, i)
		}
	}
	return moves
}

// Final reports whether the board has ended: at least one side has no
// legal move left.
func (b *Board) Final() bool {
	return len(b.LegalMoves(North)) == 0 || len(b.LegalMoves(South)) == 0
}

// Sow distributes the stones from pit i on side, applying the again
// rule, the capture rule, and (if the resulting board is final)
// endgame collection, in that order. It returns the resulting board
// (the receiver is left unmodified) and whether side moves again.
//
// Sow never returns again=true for a board that Final() reports true;
// endgame collection always forces again=false.
func (b *Board) Sow(side Side, i int) (*Board, bool, error) {
	if i < 0 || i >= b.Size {
		return nil, false, ErrPit
	}
	if !b.Legal(side, i) {
		return nil, false, ErrIllegal
	}

	nb := b.Copy()
	me := side
	cur := side

	stones := nb.Pit(side, i)
	nb.pits(side)[i] = 0
	pos := i + 1

	for stones > 0 {
		if pos == nb.Size {
			if cur == me {
				nb.addStore(me, 1)
				stones--
			}
			cur = cur.Opposite()
			pos = 0
			continue
		}
		nb.pits(cur)[pos]++
		pos++
		stones--
	}

	again := false
	switch {
	case pos == 0 && cur != me:
		again = true
	case cur == me && pos > 0:
		last := pos - 1
		other := nb.Size - 1 - last
		opp := me.Opposite()
		if nb.Pit(me, last) == 1 && nb.Pit(opp, other) > 0 {
			captured := nb.Pit(opp, other)
			nb.addStore(me, captured+1)
			nb.pits(opp)[other] = 0
			nb.pits(me)[last] = 0
		}
	}

	if nb.Final() {
		for s := 0; s < nb.Size; s++ {
			nb.addStore(North, nb.NorthPits[s])
			nb.NorthPits[s] = 0
			nb.addStore(South, nb.SouthPits[s])
			nb.SouthPits[s] = 0
		}
		again = false
	}

	return nb, again, nil
}
