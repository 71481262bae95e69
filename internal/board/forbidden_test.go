package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// P11 / S5-style: a placement that simultaneously completes two free-threes
// (row and column) without capturing is forbidden.
func TestDoubleThreeForbidden(t *testing.T) {
	var b Board
	b.PlaceStone(NewPos(9, 8), Black)
	b.PlaceStone(NewPos(9, 10), Black)
	b.PlaceStone(NewPos(8, 9), Black)
	b.PlaceStone(NewPos(10, 9), Black)

	p := NewPos(9, 9)
	assert.True(t, IsDoubleThree(&b, p, Black))
	assert.False(t, IsValidMove(&b, p, Black))
}

// P12: the same double-three cell is legal if the placement also captures.
func TestDoubleThreeCaptureException(t *testing.T) {
	var b Board
	b.PlaceStone(NewPos(9, 8), Black)
	b.PlaceStone(NewPos(9, 10), Black)
	b.PlaceStone(NewPos(8, 9), Black)
	b.PlaceStone(NewPos(10, 9), Black)

	// Flank a White pair so placing Black at (9,9) also captures:
	// (9,9)-(9,7 is White pair)-(9,6 Black) style bracket along a distinct
	// 5th direction isn't available on a line already used, so use the
	// anti-diagonal: White at (8,10) and (7,11), Black at (6,12) closes
	// the bracket from (9,9).
	b.PlaceStone(NewPos(8, 10), White)
	b.PlaceStone(NewPos(7, 11), White)
	b.PlaceStone(NewPos(6, 12), Black)

	p := NewPos(9, 9)
	assert.True(t, WouldCapture(&b, p, Black))
	assert.False(t, IsDoubleThree(&b, p, Black))
	assert.True(t, IsValidMove(&b, p, Black))
}

func TestSingleFreeThreeIsLegal(t *testing.T) {
	var b Board
	b.PlaceStone(NewPos(9, 8), Black)
	b.PlaceStone(NewPos(9, 10), Black)

	p := NewPos(9, 9)
	assert.False(t, IsDoubleThree(&b, p, Black))
	assert.True(t, IsValidMove(&b, p, Black))
}

func TestGappedFreeThreeVariants(t *testing.T) {
	// "_OO_O_": stones at cols 8,9 and 11, placing at 11 completes it; here
	// we verify the *pattern recognizer* directly by placing the final
	// stone and checking a free three is detected in that single direction.
	var b Board
	b.PlaceStone(NewPos(5, 8), Black)
	b.PlaceStone(NewPos(5, 9), Black)
	p := NewPos(5, 11)
	b.PlaceStone(p, Black)
	assert.True(t, freeThreeInDirection(&b, p, Black, 0, 1))
	b.RemoveStone(p)
}

func TestOccupiedCellIsNotValid(t *testing.T) {
	var b Board
	b.PlaceStone(NewPos(3, 3), Black)
	assert.False(t, IsValidMove(&b, NewPos(3, 3), White))
}
