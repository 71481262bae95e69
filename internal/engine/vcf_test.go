package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ninukicore/internal/board"
)

func TestCreatesFourDetectsClosedFour(t *testing.T) {
	var b board.Board
	b.PlaceStone(board.NewPos(9, 0), board.White)
	b.PlaceStone(board.NewPos(9, 1), board.Black)
	b.PlaceStone(board.NewPos(9, 2), board.Black)
	b.PlaceStone(board.NewPos(9, 3), board.Black)

	assert.True(t, createsFour(&b, board.NewPos(9, 4), board.Black))
	assert.False(t, createsFour(&b, board.NewPos(3, 3), board.Black))
}

func TestFourCompletionCellsSingleOpenEnd(t *testing.T) {
	var b board.Board
	b.PlaceStone(board.NewPos(9, 0), board.White)
	for col := 1; col <= 4; col++ {
		b.PlaceStone(board.NewPos(9, col), board.Black)
	}
	cells := fourCompletionCells(&b, board.Black)
	assert.Equal(t, []board.Pos{board.NewPos(9, 5)}, cells)
}

func TestMovesCreatingFourFindsTheClosingMove(t *testing.T) {
	var b board.Board
	b.PlaceStone(board.NewPos(9, 0), board.White)
	for col := 1; col <= 3; col++ {
		b.PlaceStone(board.NewPos(9, col), board.Black)
	}
	moves := movesCreatingFour(&b, board.Black)
	assert.Contains(t, moves, board.NewPos(9, 4))
}

func TestProveVCFNoForcedWinOnEmptyBoard(t *testing.T) {
	keys := board.NewZobristKeys()
	pos := board.NewPosition(keys)
	_, ok := ProveVCF(pos, board.Black)
	assert.False(t, ok)
}

// Per spec.md section 4.13, VCF is skipped outright once the opponent
// already holds 4 capture pairs, regardless of what fours are on the
// board: a four-forcing line isn't forcing if the opponent can just
// ignore it and take their fifth pair.
func TestProveVCFSkippedNearOpponentFifthCapture(t *testing.T) {
	keys := board.NewZobristKeys()
	var b board.Board
	b.PlaceStone(board.NewPos(9, 0), board.White)
	for col := 1; col <= 3; col++ {
		b.PlaceStone(board.NewPos(9, col), board.Black)
	}
	b.SetCaptures(board.White, board.MaxCaptures-1)

	pos := board.FromBoard(b, board.Black, keys)
	move, ok := ProveVCF(pos, board.Black)
	require.False(t, ok)
	assert.True(t, move.IsNone())
}
