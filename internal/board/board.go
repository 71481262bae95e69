package board

// Color is a stone color. Empty is a return value from Get, never a
// stored stone.
type Color uint8

const (
	Empty Color = 0
	Black Color = 1
	White Color = 2
	// Wall is the sentinel returned by BoundedGet for out-of-bounds cells.
	// It compares unequal to Empty/Black/White, so edge-sensitive scans
	// (capture/win/forbidden/eval) can tell a blocked board edge apart
	// from an open empty cell without a separate bounds check. It is
	// never stored and never returned by Board.Get.
	Wall Color = 3
)

// Opponent returns the other color. Only meaningful for Black/White.
func (c Color) Opponent() Color {
	if c == Black {
		return White
	}
	return Black
}

func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "Empty"
	}
}

func colorIndex(c Color) int {
	return int(c) - 1
}

// MaxCaptures is the number of captured pairs that wins the game.
const MaxCaptures = 5

// Board holds the two-color occupancy and capture counters for a position.
// Side-to-move is held by the caller (Position), not by Board itself.
type Board struct {
	stones   [2]Bitboard // [Black, White] indexed via colorIndex
	captures [2]int      // [Black, White] pair counts, in [0, MaxCaptures]
}

// PlaceStone places a stone of color c at p. Idempotent if already set.
func (b *Board) PlaceStone(p Pos, c Color) {
	b.stones[colorIndex(c)].Set(p.Index())
}

// RemoveStone clears any stone at p, of either color.
func (b *Board) RemoveStone(p Pos) {
	i := p.Index()
	b.stones[0].Clear(i)
	b.stones[1].Clear(i)
}

// Get returns the color of the stone at p, or Empty.
func (b *Board) Get(p Pos) Color {
	i := p.Index()
	if b.stones[0].Get(i) {
		return Black
	}
	if b.stones[1].Get(i) {
		return White
	}
	return Empty
}

// BoundedGet is used by scanning code: out-of-bounds cells read as Wall
// rather than Empty, so edge checks fall out naturally from equality
// comparisons.
func (b *Board) BoundedGet(p Pos) Color {
	if !p.InBounds() {
		return Wall
	}
	return b.Get(p)
}

// Bits returns the raw occupancy bitboard for a color (read-only use).
func (b *Board) Bits(c Color) *Bitboard {
	return &b.stones[colorIndex(c)]
}

// Captures returns the number of pairs c has captured so far.
func (b *Board) Captures(c Color) int {
	return b.captures[colorIndex(c)]
}

// AddCaptures increments c's capture count by n (n >= 0). Used by the
// public capture path; never decrements.
func (b *Board) AddCaptures(c Color, n int) {
	b.captures[colorIndex(c)] += n
}

// SetCaptures sets c's capture count directly. Used by make/unmake to
// restore a prior count, which may decrement.
func (b *Board) SetCaptures(c Color, n int) {
	b.captures[colorIndex(c)] = n
}

// StoneCount returns the total number of stones on the board.
func (b *Board) StoneCount() int {
	return b.stones[0].PopCount() + b.stones[1].PopCount()
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() Board {
	return Board{stones: b.stones, captures: b.captures}
}
