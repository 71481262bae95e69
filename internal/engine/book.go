package engine

import "ninukicore/internal/board"

// Book is the engine's fixed in-memory opening book (spec.md section
// 4.13 step 1). Unlike CandidateMoves — the proximity set the search
// explores — Book short-circuits the decision pipeline entirely for the
// first couple of plies, the same role hailam-chessplay/internal/book.Book
// plays by being probed before any worker starts, minus the Polyglot file
// format: persistence is out of scope (SPEC_FULL.md section B), so there
// is nothing to load.
type Book struct{}

// NewBook returns the fixed book. There is no construction cost.
func NewBook() *Book { return &Book{} }

// diagonalReplies are the second-move candidates: the four diagonal
// neighbors of center, preferred over the orthogonal ones.
var diagonalReplies = []board.Pos{
	board.Center.Add(-1, -1), board.Center.Add(1, 1),
	board.Center.Add(-1, 1), board.Center.Add(1, -1),
}

// thirdMoveBook is a small set of row/column symmetric positions used as
// the third move, once center and a diagonal reply are already down.
var thirdMoveBook = []board.Pos{
	board.Center.Add(-2, -2), board.Center.Add(2, 2),
	board.Center.Add(-2, 2), board.Center.Add(2, -2),
	board.Center.Add(0, -2), board.Center.Add(0, 2),
	board.Center.Add(-2, 0), board.Center.Add(2, 0),
}

// Probe returns a book move for (b, side), if the position is shallow
// enough for the fixed book to have an opinion: an empty board always
// plays center, a single-stone board replies with a diagonal neighbor,
// and a two-stone board plays a symmetric third move. Beyond that the
// book has nothing to say and the caller falls through to later pipeline
// stages.
func (bk *Book) Probe(b *board.Board, side board.Color) (board.Pos, bool) {
	switch b.StoneCount() {
	case 0:
		return board.Center, true
	case 1:
		return firstLegal(b, side, diagonalReplies)
	case 2:
		return firstLegal(b, side, thirdMoveBook)
	default:
		return board.NoPos, false
	}
}

func firstLegal(b *board.Board, side board.Color, candidates []board.Pos) (board.Pos, bool) {
	for _, p := range candidates {
		if p.InBounds() && board.IsValidMove(b, p, side) {
			return p, true
		}
	}
	return board.NoPos, false
}
