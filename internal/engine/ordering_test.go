package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ninukicore/internal/board"
)

func TestOrderMovesPlacesTTMoveFirst(t *testing.T) {
	var b board.Board
	b.PlaceStone(board.NewPos(9, 9), board.Black)
	b.PlaceStone(board.NewPos(9, 10), board.White)
	moves := []board.Pos{board.NewPos(8, 8), board.NewPos(10, 10), board.NewPos(8, 10)}
	tables := NewTables()

	ttMove := board.NewPos(8, 10)
	ordered := OrderMoves(&b, board.Black, moves, tables, 0, ttMove, board.NoMove)
	assert.Equal(t, ttMove, ordered[0])
}

func TestOrderMovesRanksTacticalAboveQuiet(t *testing.T) {
	var b board.Board
	// Black has an open three on row 9; playing (9,3) or (9,7) extends it
	// to an open four. A far-away quiet cell should sort behind it.
	for col := 4; col <= 6; col++ {
		b.PlaceStone(board.NewPos(9, col), board.Black)
	}
	tactical := board.NewPos(9, 3)
	quiet := board.NewPos(2, 2)
	tables := NewTables()

	ordered := OrderMoves(&b, board.Black, []board.Pos{quiet, tactical}, tables, 0, board.NoMove, board.NoMove)
	assert.Equal(t, tactical, ordered[0])
}

func TestOrderMovesRanksKillerAboveDefaultQuiet(t *testing.T) {
	var b board.Board
	b.PlaceStone(board.NewPos(9, 9), board.Black)
	killer := board.NewPos(3, 3)
	other := board.NewPos(15, 15)
	tables := NewTables()
	tables.RecordKiller(0, killer)

	ordered := OrderMoves(&b, board.Black, []board.Pos{other, killer}, tables, 0, board.NoMove, board.NoMove)
	assert.Equal(t, killer, ordered[0])
}

func TestTacticalBandDetectsDoubleFourFork(t *testing.T) {
	// Playing (9,4) completes two fours at once: a horizontal run on row 9
	// and a vertical run on column 4.
	var cross board.Board
	for col := 1; col <= 3; col++ {
		cross.PlaceStone(board.NewPos(9, col), board.Black)
	}
	for row := 6; row <= 8; row++ {
		cross.PlaceStone(board.NewPos(row, 4), board.Black)
	}
	fourDirs, _, _ := fourThreeProfile(&cross, board.NewPos(9, 4), board.Black)
	assert.GreaterOrEqual(t, fourDirs, 2)
	assert.Equal(t, bandDoubleFourFork, tacticalBand(&cross, board.NewPos(9, 4), board.Black, board.White))
}

func TestTacticalBandDetectsClosedFour(t *testing.T) {
	var b board.Board
	b.PlaceStone(board.NewPos(9, 0), board.White)
	for col := 1; col <= 3; col++ {
		b.PlaceStone(board.NewPos(9, col), board.Black)
	}
	// (9,4) closes the four with only one open end (col 5).
	band := tacticalBand(&b, board.NewPos(9, 4), board.Black, board.White)
	assert.Equal(t, bandOurClosedFour, band)
}

func TestTacticalBandDefaultOnQuietMove(t *testing.T) {
	var b board.Board
	b.PlaceStone(board.NewPos(9, 9), board.Black)
	band := tacticalBand(&b, board.NewPos(2, 2), board.Black, board.White)
	assert.Equal(t, bandDefault, band)
}

func TestCenterProximityBonusPrefersCenter(t *testing.T) {
	assert.Greater(t, centerProximityBonus(board.Center), centerProximityBonus(board.NewPos(0, 0)))
}
