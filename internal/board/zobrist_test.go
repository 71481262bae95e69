package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZobristKeysDeterministic(t *testing.T) {
	a := NewZobristKeys()
	b := NewZobristKeys()
	assert.Equal(t, a.cell, b.cell)
	assert.Equal(t, a.side, b.side)
	assert.Equal(t, a.cap, b.cap)
}

func TestZobristIncrementalMatchesScratch(t *testing.T) {
	keys := NewZobristKeys()
	var brd Board

	h := keys.ComputeHash(&brd, Black)
	assert.Equal(t, h, keys.ComputeHash(&brd, Black))

	p := NewPos(9, 9)
	brd.PlaceStone(p, Black)
	h = keys.TogglePlace(h, p, Black)
	h = keys.ToggleSide(h)

	assert.Equal(t, keys.ComputeHash(&brd, White), h)
}
