package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ninukicore/internal/board"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	data := pack(7, -12345, BoundLower, true, board.NewPos(3, 14))
	e := unpack(data)
	assert.Equal(t, 7, e.Depth)
	assert.Equal(t, -12345, e.Score)
	assert.Equal(t, BoundLower, e.Bound)
	assert.True(t, e.HasMove)
	assert.Equal(t, board.NewPos(3, 14), e.Move)
}

func TestPackUnpackRoundTripNoMove(t *testing.T) {
	data := pack(0, Five, BoundExact, false, board.NoMove)
	e := unpack(data)
	assert.Equal(t, 0, e.Depth)
	assert.Equal(t, Five, e.Score)
	assert.False(t, e.HasMove)
	assert.Equal(t, board.NoMove, e.Move)
}

func TestStoreProbeRoundTrip(t *testing.T) {
	tt := NewTranspositionTable(1)
	var hash uint64 = 0xABCDEF1234
	tt.Store(hash, 5, 42_000, BoundExact, true, board.NewPos(4, 4))

	e, ok := tt.Probe(hash)
	assert.True(t, ok)
	assert.Equal(t, 5, e.Depth)
	assert.Equal(t, 42_000, e.Score)
	assert.Equal(t, board.NewPos(4, 4), e.Move)
}

func TestProbeMissOnUnstoredHash(t *testing.T) {
	tt := NewTranspositionTable(1)
	_, ok := tt.Probe(0x1)
	assert.False(t, ok)
}

func TestStoreDoesNotReplaceDeeperEntryFromDifferentPosition(t *testing.T) {
	tt := NewTranspositionTable(1)
	idx := uint64(0)
	hashA := idx
	hashB := idx | (tt.mask + 1) // collides into the same slot, different key

	tt.Store(hashA, 10, 100, BoundExact, false, board.NoMove)
	tt.Store(hashB, 3, 200, BoundExact, false, board.NoMove)

	e, ok := tt.Probe(hashA)
	assert.True(t, ok)
	assert.Equal(t, 100, e.Score)
}

func TestUsableExactAlwaysUsableAtSufficientDepth(t *testing.T) {
	e := TTEntry{Depth: 5, Score: 123, Bound: BoundExact}
	score, ok := Usable(e, 5, -1000, 1000)
	assert.True(t, ok)
	assert.Equal(t, 123, score)
}

func TestUsableRejectsShallowerStoredDepth(t *testing.T) {
	e := TTEntry{Depth: 2, Score: 123, Bound: BoundExact}
	_, ok := Usable(e, 5, -1000, 1000)
	assert.False(t, ok)
}

func TestUsableLowerBoundOnlyWhenScoreGEBeta(t *testing.T) {
	e := TTEntry{Depth: 4, Score: 500, Bound: BoundLower}
	_, ok := Usable(e, 4, -1000, 600)
	assert.False(t, ok)

	_, ok = Usable(e, 4, -1000, 400)
	assert.True(t, ok)
}

func TestUsableUpperBoundOnlyWhenScoreLEAlpha(t *testing.T) {
	e := TTEntry{Depth: 4, Score: -500, Bound: BoundUpper}
	_, ok := Usable(e, 4, -600, 1000)
	assert.False(t, ok)

	_, ok = Usable(e, 4, -400, 1000)
	assert.True(t, ok)
}
