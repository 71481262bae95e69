package engine

import (
	"sync/atomic"

	"ninukicore/internal/board"
)

// Bound is the kind of score bound a transposition entry stores.
type Bound uint8

const (
	BoundExact Bound = iota
	BoundLower       // fail-high: score is a lower bound (beta cutoff)
	BoundUpper       // fail-low: score is an upper bound
)

// Packed layout of the 64-bit "data" word. spec.md pins a 42-bit packed
// layout (depth 8 / score 21 / bound 2 / hasMove 1 / move 10); the score
// field is widened to 24 bits here per the spec's own open question ("the
// 21-bit packed score must accommodate at least +-FIVE ... implementations
// should treat the pack width as a minimum and widen if necessary"): 21
// bits tops out at +-1,048,575, short of the spec's own "no overflow in
// realistic play (|score| <= 2,000,000)" ceiling.
const (
	depthBits = 8
	scoreBits = 24
	boundBits = 2
	moveBits  = 10 // 5 bits row + 5 bits col

	depthShift = 0
	scoreShift = depthShift + depthBits
	boundShift = scoreShift + scoreBits
	hasMvShift = boundShift + boundBits
	moveShift  = hasMvShift + 1

	depthMask = (1 << depthBits) - 1
	scoreMask = (1 << scoreBits) - 1
	boundMask = (1 << boundBits) - 1
	moveMask  = (1 << moveBits) - 1

	scoreBias  = 1 << (scoreBits - 1)
	depthBias  = 1 // lets depth == -1 store as 0
)

func packMove(m board.Move) uint64 {
	return uint64(uint8(m.Row)&0x1F)<<5 | uint64(uint8(m.Col)&0x1F)
}

func unpackMove(v uint64) board.Move {
	row := int((v >> 5) & 0x1F)
	col := int(v & 0x1F)
	return board.NewPos(row, col)
}

func pack(depth int, score int, bound Bound, hasMove bool, move board.Move) uint64 {
	var d uint64 = uint64(depth+depthBias) & depthMask
	var s uint64 = uint64(score+scoreBias) & scoreMask
	var bd uint64 = uint64(bound) & boundMask
	var hm uint64
	if hasMove {
		hm = 1
	}
	var mv uint64
	if hasMove {
		mv = packMove(move)
	}
	return d<<depthShift | s<<scoreShift | bd<<boundShift | hm<<hasMvShift | mv<<moveShift
}

// TTEntry is the unpacked, read-only view of a transposition table slot.
type TTEntry struct {
	Depth    int
	Score    int
	Bound    Bound
	HasMove  bool
	Move     board.Move
}

func unpack(data uint64) TTEntry {
	depth := int((data>>depthShift)&depthMask) - depthBias
	score := int((data>>scoreShift)&scoreMask) - scoreBias
	bound := Bound((data >> boundShift) & boundMask)
	hasMove := (data>>hasMvShift)&1 != 0
	move := board.NoMove
	if hasMove {
		move = unpackMove((data >> moveShift) & moveMask)
	}
	return TTEntry{Depth: depth, Score: score, Bound: bound, HasMove: hasMove, Move: move}
}

type ttSlot struct {
	// key = hash XOR data (the Hyatt trick). A probe recomputes hash from
	// the position and checks key XOR data == hash; any torn read between
	// the two atomic words will, with overwhelming probability, fail that
	// check and is treated as a miss rather than trusted.
	key  atomic.Uint64
	data atomic.Uint64
}

// TranspositionTable is a fixed-size, lock-free shared transposition
// table. Concurrent reads and writes from multiple search workers are
// safe: a mismatched XOR check is simply reported as a miss.
type TranspositionTable struct {
	entries []ttSlot
	mask    uint64

	hits   atomic.Uint64
	probes atomic.Uint64
}

// NewTranspositionTable builds a table sized to approximately sizeMB
// megabytes, rounded down to a power of two slot count for fast masking.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	if sizeMB < 1 {
		sizeMB = 1
	}
	const slotBytes = 16 // two uint64 words per slot
	numSlots := roundDownPow2(uint64(sizeMB) * 1024 * 1024 / slotBytes)
	if numSlots == 0 {
		numSlots = 1
	}
	return &TranspositionTable{
		entries: make([]ttSlot, numSlots),
		mask:    numSlots - 1,
	}
}

func roundDownPow2(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up hash. The stored move, if any, is always returned for
// ordering purposes even when the score itself turns out not to be
// usable at the caller's requested depth/window; that usability check is
// performed by Usable, not here.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	tt.probes.Add(1)
	idx := hash & tt.mask
	slot := &tt.entries[idx]

	data := slot.data.Load()
	key := slot.key.Load()
	if key^data != hash {
		return TTEntry{}, false
	}
	tt.hits.Add(1)
	return unpack(data), true
}

// Store writes an entry for hash. Replacement rule (spec.md section 4.6):
// replace if the slot is empty, the slot's key already matches this same
// position, or the incoming depth is >= the stored depth.
func (tt *TranspositionTable) Store(hash uint64, depth, score int, bound Bound, hasMove bool, move board.Move) {
	idx := hash & tt.mask
	slot := &tt.entries[idx]

	existingData := slot.data.Load()
	existingKey := slot.key.Load()
	empty := existingData == 0 && existingKey == 0
	samePos := !empty && existingKey^existingData == hash
	existingDepth := int((existingData>>depthShift)&depthMask) - depthBias

	if !empty && !samePos && depth < existingDepth {
		return
	}

	data := pack(depth, score, bound, hasMove, move)
	newKey := hash ^ data
	slot.data.Store(data)
	slot.key.Store(newKey)
}

// Usable reports whether a probed entry proves the (alpha, beta) window
// at the requested depth, per spec.md section 4.6.
func Usable(e TTEntry, requestDepth, alpha, beta int) (score int, usable bool) {
	if e.Depth < requestDepth {
		return 0, false
	}
	switch e.Bound {
	case BoundExact:
		return e.Score, true
	case BoundLower:
		return e.Score, e.Score >= beta
	case BoundUpper:
		return e.Score, e.Score <= alpha
	}
	return 0, false
}

// Clear wipes every slot.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i].key.Store(0)
		tt.entries[i].data.Store(0)
	}
	tt.hits.Store(0)
	tt.probes.Store(0)
}

// UsagePercent samples the table and reports the percentage of slots in
// use (non-empty), matching the get_move_with_stats "tt_usage_pct" field.
func (tt *TranspositionTable) UsagePercent() float64 {
	sample := 2000
	if uint64(sample) > uint64(len(tt.entries)) {
		sample = len(tt.entries)
	}
	if sample == 0 {
		return 0
	}
	used := 0
	for i := 0; i < sample; i++ {
		if tt.entries[i].data.Load() != 0 || tt.entries[i].key.Load() != 0 {
			used++
		}
	}
	return float64(used) / float64(sample) * 100
}

func (tt *TranspositionTable) HitRate() float64 {
	p := tt.probes.Load()
	if p == 0 {
		return 0
	}
	return float64(tt.hits.Load()) / float64(p) * 100
}
