package engine

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ninukicore/internal/board"
)

func newTestSearcher() *Searcher {
	return NewSearcher(NewTranspositionTable(1), &atomic.Bool{}, nil)
}

func TestForcingMovesIncludesFiveCompletion(t *testing.T) {
	var b board.Board
	for col := 0; col <= 3; col++ {
		b.PlaceStone(board.NewPos(9, col), board.Black)
	}
	moves := forcingMoves(&b, board.Black, 0)
	assert.Contains(t, moves, board.NewPos(9, 4))
}

func TestForcingMovesIncludesFourOnlyWhileShallow(t *testing.T) {
	var b board.Board
	b.PlaceStone(board.NewPos(9, 0), board.White)
	for col := 1; col <= 3; col++ {
		b.PlaceStone(board.NewPos(9, col), board.Black)
	}
	shallow := forcingMoves(&b, board.Black, 0)
	assert.Contains(t, shallow, board.NewPos(9, 4))

	deep := forcingMoves(&b, board.Black, 6)
	assert.NotContains(t, deep, board.NewPos(9, 4))
}

func TestForcingMovesExcludesQuietMoves(t *testing.T) {
	var b board.Board
	b.PlaceStone(board.NewPos(9, 9), board.Black)
	moves := forcingMoves(&b, board.White, 0)
	assert.Empty(t, moves)
}

func TestQuiescenceReturnsWinScoreOnFive(t *testing.T) {
	s := newTestSearcher()
	keys := board.NewZobristKeys()
	var b board.Board
	for col := 0; col <= 3; col++ {
		b.PlaceStone(board.NewPos(9, col), board.Black)
	}
	b.PlaceStone(board.NewPos(9, 4), board.Black)
	pos := board.FromBoard(b, board.White, keys)

	score := s.Quiescence(pos, -winScore, winScore, 0, board.NewPos(9, 4), board.Black)
	assert.Equal(t, -Five, score)
}

func TestQuiescenceStoresTTEntry(t *testing.T) {
	s := newTestSearcher()
	keys := board.NewZobristKeys()
	var b board.Board
	b.PlaceStone(board.NewPos(9, 9), board.Black)
	pos := board.FromBoard(b, board.White, keys)

	s.Quiescence(pos, -winScore, winScore, 0, board.NoMove, board.Empty)

	_, ok := s.TT.Probe(pos.Hash)
	require.True(t, ok)
}
