package board

// UndoInfo is everything MakeMove needs to hand back to UnmakeMove to
// restore the exact prior state. Fixed size, no allocation.
type UndoInfo struct {
	Pos       Pos
	Color     Color
	Captured  CaptureRecord
	PrevHash  uint64
	PrevSide  Color
}

// Position couples a Board with its incrementally maintained Zobrist hash
// and the side to move. All search-path mutation goes through
// MakeMove/UnmakeMove so the board is never copied.
type Position struct {
	Board Board
	Hash  uint64
	Side  Color
	Keys  *ZobristKeys
}

// NewPosition returns an empty board with Black to move, matching
// Ninuki-renju's fixed opening color.
func NewPosition(keys *ZobristKeys) *Position {
	pos := &Position{Side: Black, Keys: keys}
	pos.Hash = keys.ComputeHash(&pos.Board, pos.Side)
	return pos
}

// Clone deep-copies the position (used by worker setup, never by the hot
// recursive search path, which uses MakeMove/UnmakeMove instead).
func (pos *Position) Clone() *Position {
	return &Position{
		Board: pos.Board.Clone(),
		Hash:  pos.Hash,
		Side:  pos.Side,
		Keys:  pos.Keys,
	}
}

// MakeMove places a stone of the side to move at p, executes any
// resulting captures, flips the side to move, and incrementally updates
// the hash. Returns an UndoInfo for the matching UnmakeMove.
func (pos *Position) MakeMove(p Pos) UndoInfo {
	c := pos.Side
	undo := UndoInfo{Pos: p, Color: c, PrevHash: pos.Hash, PrevSide: pos.Side}

	pos.Board.PlaceStone(p, c)
	pos.Hash = pos.Keys.TogglePlace(pos.Hash, p, c)

	before := pos.Board.Captures(c)
	rec := ExecuteCaptures(&pos.Board, p, c)
	undo.Captured = rec
	for i := 0; i < rec.NumCells; i++ {
		pos.Hash = pos.Keys.TogglePlace(pos.Hash, rec.Cells[i], c.Opponent())
	}
	if rec.Pairs > 0 {
		after := pos.Board.Captures(c)
		pos.Hash = pos.Keys.ToggleCaptures(pos.Hash, c, before, after)
	}

	pos.Hash = pos.Keys.ToggleSide(pos.Hash)
	pos.Side = c.Opponent()
	return undo
}

// UnmakeMove reverses a MakeMove. The hash is restored from the saved
// PrevHash rather than re-derived by inverse XOR steps: since XOR is its
// own inverse, restoring the saved value is equivalent to undoing every
// step individually, and is simpler to get right.
func (pos *Position) UnmakeMove(undo UndoInfo) {
	UndoCaptures(&pos.Board, undo.Color, undo.Captured)
	pos.Board.RemoveStone(undo.Pos)
	pos.Hash = undo.PrevHash
	pos.Side = undo.PrevSide
}

// FromBoard builds a Position from an existing Board and side to move,
// recomputing the hash from scratch. Used at the engine boundary, where a
// caller hands in serialized board state rather than a Position the
// search has been incrementally maintaining move by move.
func FromBoard(b Board, side Color, keys *ZobristKeys) *Position {
	pos := &Position{Board: b, Side: side, Keys: keys}
	pos.Hash = keys.ComputeHash(&pos.Board, side)
	return pos
}

// InCheck-equivalent: Ninuki-renju has no "check" concept; callers use
// CheckWinner directly against the last move played.
