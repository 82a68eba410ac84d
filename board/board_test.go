package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		"<3,4,5,1,2,3,6,7,8>",
		"<6,0,0,3,3,3,3,3,3,3,3,3,3,3,3>",
		"<1,0,0,0,0>",
	}
	for _, s := range cases {
		b, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, s, b.String())
	}
}

func TestParseFields(t *testing.T) {
	b, err := Parse("<3,4,5,1,2,3,6,7,8>")
	require.NoError(t, err)
	assert.Equal(t, 3, b.Size)
	assert.Equal(t, 4, b.SouthStore)
	assert.Equal(t, 5, b.NorthStore)
	assert.Equal(t, []int{1, 2, 3}, b.SouthPits)
	assert.Equal(t, []int{6, 7, 8}, b.NorthPits)
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"3,4,5,1,2,3,6,7,8",   // missing delimiters
		"<3,4,5,1,2,3,6,7>",   // wrong field count
		"<3,4,5,a,2,3,6,7,8>", // non-integer field
		"<>",
		"",
	}
	for _, s := range cases {
		_, err := Parse(s)
		assert.Error(t, err, s)
	}
}

func TestLegalMoves(t *testing.T) {
	b := NewBoard(0, 0, []int{0, 3, 0}, []int{1, 0, 2})
	assert.Equal(t, []int{1}, b.LegalMoves(South))
	assert.Equal(t, []int{0, 2}, b.LegalMoves(North))
	assert.False(t, b.Legal(South, 0))
	assert.True(t, b.Legal(South, 1))
	assert.False(t, b.Legal(North, 5))
}

func TestFinal(t *testing.T) {
	assert.True(t, NewBoard(4, 4, []int{0, 0, 0}, []int{1, 2, 3}).Final())
	assert.False(t, NewBoard(0, 0, []int{1, 1, 1}, []int{1, 1, 1}).Final())
}

// The five sowing scenarios below use Board(southStore, northStore,
// southPits, northPits) throughout, matching NewBoard's own argument
// order: south fields first, consistently for both input and
// expected output.
func TestSowAgain(t *testing.T) {
	b := NewBoard(0, 0, []int{3, 3, 3}, []int{3, 3, 3})
	nb, again, err := b.Sow(North, 0)
	require.NoError(t, err)
	assert.True(t, again)
	assert.Equal(t, NewBoard(0, 1, []int{3, 3, 3}, []int{0, 4, 4}), nb)
}

func TestSowNoCapture(t *testing.T) {
	b := NewBoard(0, 0, []int{5, 5, 5, 5}, []int{5, 5, 5, 5})
	nb, again, err := b.Sow(North, 2)
	require.NoError(t, err)
	assert.False(t, again)
	assert.Equal(t, NewBoard(0, 1, []int{6, 6, 6, 5}, []int{5, 5, 0, 6}), nb)
}

func TestSowEndsInOpponentRow(t *testing.T) {
	b := NewBoard(0, 0, []int{3, 3, 3}, []int{3, 3, 3})
	nb, again, err := b.Sow(North, 2)
	require.NoError(t, err)
	assert.False(t, again)
	assert.Equal(t, NewBoard(0, 1, []int{4, 4, 3}, []int{3, 3, 0}), nb)
}

func TestSowWrapsTwice(t *testing.T) {
	b := NewBoard(0, 0, []int{9, 9, 9}, []int{9, 9, 9})
	nb, again, err := b.Sow(North, 0)
	require.NoError(t, err)
	assert.False(t, again)
	assert.Equal(t, NewBoard(0, 1, []int{10, 10, 10}, []int{1, 11, 11}), nb)
}

func TestSowTriggersEndgameCollection(t *testing.T) {
	b := NewBoard(0, 0, []int{0, 0, 1}, []int{1, 1, 1})
	nb, again, err := b.Sow(South, 2)
	require.NoError(t, err)
	assert.False(t, again)
	assert.True(t, nb.Final())
	assert.Equal(t, NewBoard(1, 3, []int{0, 0, 0}, []int{0, 0, 0}), nb)
}

func TestSowCapture(t *testing.T) {
	// South sows pit 0 (1 stone) into its own pit 1, which was empty;
	// the opposite north pit (index size-1-1) holds stones and is captured.
	b := NewBoard(0, 0, []int{1, 0, 2}, []int{2, 2, 5})
	nb, again, err := b.Sow(South, 0)
	require.NoError(t, err)
	assert.False(t, again)
	// captured: north pit index 1 (2 stones) + the 1 landed stone -> south store
	assert.Equal(t, 3, nb.SouthStore)
	assert.Equal(t, 0, nb.SouthPits[1])
	assert.Equal(t, 0, nb.NorthPits[1])
}

func TestSowIllegalMove(t *testing.T) {
	b := NewBoard(0, 0, []int{0, 3}, []int{1, 2})
	_, _, err := b.Sow(South, 0)
	assert.ErrorIs(t, err, ErrIllegal)
}

func TestSowConservation(t *testing.T) {
	b := NewBoard(2, 1, []int{3, 0, 4, 2}, []int{1, 5, 0, 3})
	total := func(b *Board) int {
		sum := b.SouthStore + b.NorthStore
		for _, v := range b.SouthPits {
			sum += v
		}
		for _, v := range b.NorthPits {
			sum += v
		}
		return sum
	}
	before := total(b)
	for _, side := range []Side{South, North} {
		for _, i := range b.LegalMoves(side) {
			nb, _, err := b.Sow(side, i)
			require.NoError(t, err)
			assert.Equal(t, before, total(nb))
		}
	}
}

func TestAppendJSON(t *testing.T) {
	b := NewBoard(3, 4, []int{5, 0, 0}, []int{1, 2, 3})
	got := string(b.AppendJSON(nil))
	want := `{"size":3,"south_store":3,"north_store":4,"south_pits":[5,0,0],"north_pits":[1,2,3]}`
	assert.Equal(t, want, got)
}
