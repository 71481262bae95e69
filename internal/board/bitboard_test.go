package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitboardSetClearGet(t *testing.T) {
	var bb Bitboard
	assert.True(t, bb.Empty())

	bb.Set(0)
	bb.Set(360)
	bb.Set(63)
	bb.Set(64)

	assert.True(t, bb.Get(0))
	assert.True(t, bb.Get(360))
	assert.True(t, bb.Get(63))
	assert.True(t, bb.Get(64))
	assert.False(t, bb.Get(1))
	assert.Equal(t, 4, bb.PopCount())

	// Idempotent set/clear.
	bb.Set(0)
	assert.Equal(t, 4, bb.PopCount())
	bb.Clear(1)
	assert.Equal(t, 4, bb.PopCount())

	bb.Clear(0)
	assert.False(t, bb.Get(0))
	assert.Equal(t, 3, bb.PopCount())
}

func TestBitboardForEach(t *testing.T) {
	var bb Bitboard
	want := map[int]bool{3: true, 70: true, 200: true, 360: true}
	for i := range want {
		bb.Set(i)
	}

	got := map[int]bool{}
	bb.ForEach(func(i int) { got[i] = true })

	assert.Equal(t, want, got)
}

func TestBitboardNeverSetsBeyondRange(t *testing.T) {
	var bb Bitboard
	for i := 0; i < NumCells; i++ {
		bb.Set(i)
	}
	assert.Equal(t, NumCells, bb.PopCount())
}
