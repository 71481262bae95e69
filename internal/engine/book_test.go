package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ninukicore/internal/board"
)

func TestBookProbeOpensAtCenter(t *testing.T) {
	bk := NewBook()
	var b board.Board
	m, ok := bk.Probe(&b, board.Black)
	assert.True(t, ok)
	assert.Equal(t, board.Center, m)
}

func TestBookProbeRepliesDiagonally(t *testing.T) {
	bk := NewBook()
	var b board.Board
	b.PlaceStone(board.Center, board.Black)
	m, ok := bk.Probe(&b, board.White)
	assert.True(t, ok)
	assert.Contains(t, diagonalReplies, m)
}

func TestBookProbeHasNoOpinionPastThirdMove(t *testing.T) {
	bk := NewBook()
	var b board.Board
	b.PlaceStone(board.NewPos(0, 0), board.Black)
	b.PlaceStone(board.NewPos(0, 1), board.White)
	b.PlaceStone(board.NewPos(0, 2), board.Black)
	_, ok := bk.Probe(&b, board.White)
	assert.False(t, ok)
}
