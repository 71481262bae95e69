package board

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// P2 (Hash consistency): for arbitrary play/unplay sequences, the
// incrementally maintained hash matches a from-scratch recomputation
// after every make and every unmake.
func TestHashConsistencyProperty(t *testing.T) {
	keys := NewZobristKeys()
	pos := NewPosition(keys)
	rng := rand.New(rand.NewSource(99))

	var undos []UndoInfo
	for i := 0; i < 500; i++ {
		p := NewPos(rng.Intn(Size), rng.Intn(Size))
		if pos.Board.Get(p) != Empty {
			continue
		}
		undo := pos.MakeMove(p)
		undos = append(undos, undo)

		want := keys.ComputeHash(&pos.Board, pos.Side)
		require.Equal(t, want, pos.Hash, "after make #%d", i)
	}

	for j := len(undos) - 1; j >= 0; j-- {
		pos.UnmakeMove(undos[j])
		want := keys.ComputeHash(&pos.Board, pos.Side)
		require.Equal(t, want, pos.Hash, "after unmake #%d", j)
	}

	require.Equal(t, 0, pos.Board.StoneCount())
}

func TestMakeUnmakeRestoresBoardExactly(t *testing.T) {
	keys := NewZobristKeys()
	pos := NewPosition(keys)

	before := pos.Board.Clone()
	undo := pos.MakeMove(NewPos(9, 9))
	pos.UnmakeMove(undo)

	require.Equal(t, before, pos.Board)
	require.Equal(t, Black, pos.Side)
}
