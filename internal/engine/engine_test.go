package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ninukicore/internal/board"
)

// P6 (Depth contract): boards with >4 stones must be searched to at
// least depth 10; sparser boards only need depth 8.
func TestP6MinSearchDepthContract(t *testing.T) {
	assert.Equal(t, 8, minSearchDepth(0))
	assert.Equal(t, 8, minSearchDepth(4))
	assert.Equal(t, 10, minSearchDepth(5))
	assert.Equal(t, 10, minSearchDepth(40))
}

func TestEngineTimeBudgetScalesWithOpening(t *testing.T) {
	e := &Engine{softBudgetMs: 1000}
	early := e.timeBudget(0)
	mid := e.timeBudget(3)
	late := e.timeBudget(6)
	assert.True(t, early.Soft < mid.Soft)
	assert.True(t, mid.Soft < late.Soft)
	assert.Equal(t, late.Soft+150_000_000, late.Hard) // Hard = Soft + 150ms, in ns
}

// Spec.md section 7, error kind 4: a terminal position at turn start
// returns no move.
func TestGetMoveReturnsFalseOnTerminalPosition(t *testing.T) {
	e := NewEngine(1, 4, 50)
	var b board.Board
	b.SetCaptures(board.Black, board.MaxCaptures)
	_, ok := e.GetMove(&b, board.White)
	assert.False(t, ok)
}

// The opening book must answer an empty board immediately, without
// touching the search pool.
func TestGetMoveWithStatsUsesOpeningBook(t *testing.T) {
	e := NewEngine(1, 4, 50)
	var b board.Board
	stats, ok := e.GetMoveWithStats(&b, board.Black)
	require.True(t, ok)
	assert.Equal(t, board.Center, stats.Move)
	assert.Equal(t, StageOpeningBook, stats.Stage)
}

// P5 (Legality): a move returned from the full search pipeline on a
// midgame position must be legal.
func TestGetMoveReturnsLegalMoveFromFullSearch(t *testing.T) {
	e := NewEngine(1, 3, 50)
	var b board.Board
	b.PlaceStone(board.NewPos(4, 4), board.Black)
	b.PlaceStone(board.NewPos(4, 5), board.White)
	b.PlaceStone(board.NewPos(6, 6), board.Black)
	b.PlaceStone(board.NewPos(6, 7), board.White)

	m, ok := e.GetMove(&b, board.Black)
	require.True(t, ok)
	assert.True(t, board.IsValidMove(&b, m, board.Black))
}
