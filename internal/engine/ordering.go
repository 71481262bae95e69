package engine

import (
	"sort"

	"ninukicore/internal/board"
)

// proximityRadius is how far from an existing stone a candidate move may
// be (Chebyshev distance), per spec.md section 4.8.1.
const proximityRadius = 2

// rootMoveCap bounds the number of moves considered at the search root;
// deeper nodes use adaptiveLimit instead.
const rootMoveCap = 30

// secondMoveBook lists the small fixed set of replies to an empty-ish
// board's single center stone (spec.md section 4.8.1): the 8 cells
// diagonally and orthogonally adjacent to center, preferring diagonals.
var secondMoveBook = []board.Pos{
	board.Center.Add(-1, -1), board.Center.Add(1, 1),
	board.Center.Add(-1, 1), board.Center.Add(1, -1),
	board.Center.Add(0, -1), board.Center.Add(0, 1),
	board.Center.Add(-1, 0), board.Center.Add(1, 0),
}

// CandidateMoves returns the legal moves worth searching from this
// position, in section 4.8.1's generation order: an empty board plays
// center; a single-stone board uses the small second-move book; otherwise
// every empty cell within proximityRadius of an existing stone, filtered
// for legality.
func CandidateMoves(b *board.Board, side board.Color) []board.Pos {
	n := b.StoneCount()
	if n == 0 {
		return []board.Pos{board.Center}
	}
	if n == 1 && b.Get(board.Center) != board.Empty {
		out := make([]board.Pos, 0, len(secondMoveBook))
		for _, p := range secondMoveBook {
			if p.InBounds() && b.Get(p) == board.Empty {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}

	seen := make(map[board.Pos]bool, 64)
	var out []board.Pos
	for _, c := range [2]board.Color{board.Black, board.White} {
		b.Bits(c).ForEach(func(i int) {
			p := board.PosFromIndex(i)
			for dr := -proximityRadius; dr <= proximityRadius; dr++ {
				for dc := -proximityRadius; dc <= proximityRadius; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					q := p.Add(dr, dc)
					if !q.InBounds() || b.Get(q) != board.Empty || seen[q] {
						continue
					}
					seen[q] = true
					if board.IsValidMove(b, q, side) {
						out = append(out, q)
					}
				}
			}
		})
	}
	return out
}

// Priority bands (spec.md section 4.8 table), expressed on the table's own
// point scale rather than small ranks: search.go's late-move pruning and
// reduction thresholds compare directly against these values (a move is
// "quiet" below quietScoreCeiling, "low priority" below
// lowPriorityMoveScore), so the scale has to carry real meaning, not just
// relative order.
const (
	bandOurFive            = 900_000
	bandOurCaptureWin      = 895_000
	bandBlockOppFive       = 890_000
	bandBlockOppCaptureWin = 885_000
	bandDoubleFourFork     = 880_000
	bandFourThreeFork      = 878_000
	bandOurOpenFour        = 870_000
	bandBlockOppDoubleFour = 868_000
	bandBlockOppFourThree  = 866_000
	bandBlockOppOpenFour   = 860_000
	bandBlockOppCaptureHi  = 855_000
	bandBlockOppCaptureLo  = 845_000
	bandOurDoubleThree     = 840_000
	bandOppDoubleThree     = 838_000
	bandOurClosedFour      = 830_000
	bandOppClosedFour      = 820_000
	bandOurOpenThree       = 810_000
	bandOppOpenThree       = 800_000
	bandOwnCaptureBase     = 600_000
	bandOwnCapturePerPair  = 50_000

	bandKiller0     = 500_000
	bandKiller1     = 490_000
	bandCounterMove = 400_000

	bandDefault = 0

	// quietScoreCeiling is the "quiet (score < 800,000)" threshold spec.md
	// section 4.10 uses for late-move pruning and futility pruning: any
	// move scoring below the opponent-open-three band carries no forcing
	// weight.
	quietScoreCeiling = bandOppOpenThree

	// lowPriorityMoveScore is the "move_score < 500,000" threshold the
	// late-move reduction formula adds an extra ply of reduction below.
	lowPriorityMoveScore = bandKiller0
)

// Tables is the per-worker mutable move-ordering state: killer moves per
// ply, history scores per (color, from-less) move, and a countermove
// table indexed by the opponent's last move. Each Lazy-SMP worker owns
// its own instance (spec.md section 4.12); only the shared TT is atomic.
type Tables struct {
	killers      [maxPly][2]board.Pos
	history      [2][board.NumCells]int
	counterMoves [2][board.NumCells]board.Pos
}

// maxPly bounds the killer-move table; deeper recursion simply stops
// recording killers, which only costs ordering quality, not correctness.
const maxPly = 128

// NewTables returns a zeroed per-worker ordering state.
func NewTables() *Tables {
	t := &Tables{}
	for i := range t.killers {
		t.killers[i][0] = board.NoMove
		t.killers[i][1] = board.NoMove
	}
	for c := 0; c < 2; c++ {
		for i := range t.counterMoves[c] {
			t.counterMoves[c][i] = board.NoMove
		}
	}
	return t
}

// RecordKiller stores m as a killer at ply, bumping the previous primary
// killer to secondary (spec.md section 4.8.2).
func (t *Tables) RecordKiller(ply int, m board.Pos) {
	if ply < 0 || ply >= maxPly || m == t.killers[ply][0] {
		return
	}
	t.killers[ply][1] = t.killers[ply][0]
	t.killers[ply][0] = m
}

// RecordHistory adds depth*depth to m's history score for side c, the
// standard history-heuristic weighting that favors cutoffs found deep.
func (t *Tables) RecordHistory(c board.Color, m board.Pos, depth int) {
	t.history[colorIdx(c)][m.Index()] += depth * depth
}

// RecordCounterMove remembers m as c's reply to the opponent's last move.
func (t *Tables) RecordCounterMove(c board.Color, oppLastMove, m board.Pos) {
	if oppLastMove.IsNone() {
		return
	}
	t.counterMoves[colorIdx(c)][oppLastMove.Index()] = m
}

func colorIdx(c board.Color) int {
	if c == board.Black {
		return 0
	}
	return 1
}

// moveScore pairs one candidate with the ordering score OrderMoves
// computed for it (spec.md section 4.8).
type moveScore struct {
	move  board.Pos
	score int
}

// OrderMoves scores and sorts candidates for side c at the given ply,
// descending by score. ttMove (if not NoMove) is always placed first.
// Killer and countermove bands only apply to otherwise-quiet moves
// (tacticalBand == bandDefault): a move that already wins material or
// tempo doesn't need a heuristic boost to sort first.
func OrderMoves(b *board.Board, side board.Color, moves []board.Pos, t *Tables, ply int, ttMove, oppLastMove board.Pos) []board.Pos {
	scored := make([]moveScore, 0, len(moves))
	opp := side.Opponent()
	killer0, killer1 := t.killers[safePly(ply)][0], t.killers[safePly(ply)][1]
	counterMove := t.counterMoves[colorIdx(side)][safeIndex(oppLastMove)]

	for _, m := range moves {
		s := tacticalBand(b, m, side, opp)
		switch {
		case s != bandDefault:
			// tactical band already dominates quiet-move heuristics.
		case m == killer0:
			s = bandKiller0
		case m == killer1:
			s = bandKiller1
		case !oppLastMove.IsNone() && m == counterMove:
			s = bandCounterMove
		default:
			s = t.history[colorIdx(side)][m.Index()] +
				centerProximityBonus(m) +
				localTwoPatternBonus(b, m, side) -
				captureVulnerabilityPenalty(b, m, side, opp)
		}
		scored = append(scored, moveScore{m, s})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	out := make([]board.Pos, 0, len(scored)+1)
	if !ttMove.IsNone() {
		out = append(out, ttMove)
	}
	for _, ms := range scored {
		if ms.move == ttMove {
			continue
		}
		out = append(out, ms.move)
	}
	return out
}

func safePly(ply int) int {
	if ply < 0 {
		return 0
	}
	if ply >= maxPly {
		return maxPly - 1
	}
	return ply
}

func safeIndex(p board.Pos) int {
	if p.IsNone() {
		return 0
	}
	return p.Index()
}

// tacticalBand assigns the priority band (spec.md section 4.8) by
// simulating the move's immediate tactical effect, from "wins outright"
// down to "quiet". Fork bands (double four, four-plus-open-three) need
// the per-direction four/three counts fourThreeProfile computes, not a
// single yes/no "does this create an open four" check: a move that makes
// two closed fours at once is just as forcing as one that makes an open
// four, because the defender can only block one of them.
func tacticalBand(b *board.Board, m board.Pos, side, opp board.Color) int {
	if wins, capWin := simulateWin(b, m, side); wins {
		if capWin {
			return bandOurCaptureWin
		}
		return bandOurFive
	}
	if wins, capWin := simulateWin(b, m, opp); wins {
		if capWin {
			return bandBlockOppCaptureWin
		}
		return bandBlockOppFive
	}

	ourFourDirs, ourOpenFour, ourThreeDirs := fourThreeProfile(b, m, side)
	if ourFourDirs >= 2 {
		return bandDoubleFourFork
	}
	if ourFourDirs >= 1 && ourThreeDirs >= 1 {
		return bandFourThreeFork
	}
	if ourOpenFour {
		return bandOurOpenFour
	}

	oppFourDirs, oppOpenFour, oppThreeDirs := fourThreeProfile(b, m, opp)
	if oppFourDirs >= 2 {
		return bandBlockOppDoubleFour
	}
	if oppFourDirs >= 1 && oppThreeDirs >= 1 {
		return bandBlockOppFourThree
	}
	if oppOpenFour {
		return bandBlockOppOpenFour
	}

	if board.WouldCapture(b, m, opp) {
		if b.Captures(opp) >= 3 {
			return bandBlockOppCaptureHi
		}
		return bandBlockOppCaptureLo
	}

	if ourThreeDirs >= 2 {
		return bandOurDoubleThree
	}
	if oppThreeDirs >= 2 {
		return bandOppDoubleThree
	}

	if ourFourDirs >= 1 {
		return bandOurClosedFour
	}
	if oppFourDirs >= 1 {
		return bandOppClosedFour
	}

	if ourThreeDirs >= 1 {
		return bandOurOpenThree
	}
	if oppThreeDirs >= 1 {
		return bandOppOpenThree
	}

	if board.WouldCapture(b, m, side) {
		return bandOwnCaptureBase + bandOwnCapturePerPair*capturePairs(b, m, side)
	}
	return bandDefault
}

// fourThreeProfile places m as c and reports, across the four direction
// classes, how many directions it turns into a four (open or closed),
// whether any of those fours is open, and how many directions it turns
// into an open three. Used both for the fork bands above and for the
// closed-four/open-three bands below them.
func fourThreeProfile(b *board.Board, m board.Pos, c board.Color) (fourDirs int, openFour bool, openThreeDirs int) {
	if b.Get(m) != board.Empty {
		return 0, false, 0
	}
	b.PlaceStone(m, c)
	defer b.RemoveStone(m)
	for _, d := range board.DirectionClasses {
		dr, dc := d[0], d[1]
		n, hadGap, openStart, openEnd := scanRun(b, lineStart(b, m, dr, dc, c), dr, dc, c)
		openEnds := 0
		if openStart {
			openEnds++
		}
		if openEnd {
			openEnds++
		}
		switch {
		case n == 4 && (hadGap || openEnds >= 1):
			fourDirs++
			if hadGap || openEnds == 2 {
				openFour = true
			}
		case n == 3 && openEnds == 2:
			openThreeDirs++
		}
	}
	return fourDirs, openFour, openThreeDirs
}

// capturePairs reports how many pairs placing side at m would capture,
// used to scale the own-capture band by urgency (spec.md section 4.8).
func capturePairs(b *board.Board, m board.Pos, side board.Color) int {
	if b.Get(m) != board.Empty {
		return 0
	}
	b.PlaceStone(m, side)
	rec := board.ExecuteCaptures(b, m, side)
	board.UndoCaptures(b, side, rec)
	b.RemoveStone(m)
	return rec.Pairs
}

// centerProximityBonus favors quiet moves closer to the board's center,
// a small tie-breaker among otherwise non-forcing candidates.
func centerProximityBonus(m board.Pos) int {
	bonus := (board.Size - 1) - m.ChebyshevTo(board.Center)
	if bonus < 0 {
		return 0
	}
	return bonus * 4
}

// localTwoPatternBonus rewards a quiet move that extends one of side's
// existing stones into a two-in-a-row, open or closed, building toward
// future threats without being one itself.
func localTwoPatternBonus(b *board.Board, m board.Pos, side board.Color) int {
	if b.Get(m) != board.Empty {
		return 0
	}
	b.PlaceStone(m, side)
	defer b.RemoveStone(m)
	bonus := 0
	for _, d := range board.DirectionClasses {
		dr, dc := d[0], d[1]
		n, hadGap, openStart, openEnd := scanRun(b, lineStart(b, m, dr, dc, side), dr, dc, side)
		if n != 2 || hadGap {
			continue
		}
		switch {
		case openStart && openEnd:
			bonus += 40
		case openStart || openEnd:
			bonus += 15
		}
	}
	return bonus
}

// captureVulnerabilityPenalty discourages a quiet move that leaves one of
// side's pairs open to the opponent's very next capture, scaled down from
// eval.go's full vulnerabilityWeight so it stays well inside the quiet
// band rather than competing with tactical scores.
func captureVulnerabilityPenalty(b *board.Board, m board.Pos, side, opp board.Color) int {
	if b.Get(m) != board.Empty {
		return 0
	}
	b.PlaceStone(m, side)
	defer b.RemoveStone(m)
	for _, d := range board.Directions8 {
		cand := m.Add(d[0], d[1])
		if cand.InBounds() && b.Get(cand) == board.Empty && board.WouldCapture(b, cand, opp) {
			return vulnerabilityWeight(b.Captures(opp)) / 200
		}
	}
	return 0
}

// simulateWin places m as c and checks whether it wins outright, either
// by completing an unbreakable five or by reaching MaxCaptures pairs.
func simulateWin(b *board.Board, m board.Pos, c board.Color) (wins, byCapture bool) {
	if b.Get(m) != board.Empty {
		return false, false
	}
	b.PlaceStone(m, c)
	rec := board.ExecuteCaptures(b, m, c)
	winner, ok := board.CheckWinner(b, m, c)
	byCapture = ok && winner == c && rec.Pairs > 0 && b.Captures(c) >= board.MaxCaptures
	wins = ok && winner == c
	board.UndoCaptures(b, c, rec)
	b.RemoveStone(m)
	return wins, byCapture
}

// createsOpenFour reports whether placing c at m produces an open four
// in some direction, without mutating the board beyond the probe.
func createsOpenFour(b *board.Board, m board.Pos, c board.Color) bool {
	if b.Get(m) != board.Empty {
		return false
	}
	b.PlaceStone(m, c)
	defer b.RemoveStone(m)
	for _, d := range board.DirectionClasses {
		dr, dc := d[0], d[1]
		n, hadGap, openStart, openEnd := scanRun(b, lineStart(b, m, dr, dc, c), dr, dc, c)
		if n == 4 && (hadGap || (openStart && openEnd)) {
			return true
		}
	}
	return false
}

// createsOpenThree reports whether placing c at m produces an open three
// in some direction.
func createsOpenThree(b *board.Board, m board.Pos, c board.Color) bool {
	if b.Get(m) != board.Empty {
		return false
	}
	b.PlaceStone(m, c)
	defer b.RemoveStone(m)
	for _, d := range board.DirectionClasses {
		dr, dc := d[0], d[1]
		n, _, openStart, openEnd := scanRun(b, lineStart(b, m, dr, dc, c), dr, dc, c)
		if n == 3 && openStart && openEnd {
			return true
		}
	}
	return false
}

// lineStart walks backward from p along (dr, dc) to the first stone of
// color c in that run, so scanRun sees the whole line rather than a
// fragment starting at p.
func lineStart(b *board.Board, p board.Pos, dr, dc int, c board.Color) board.Pos {
	q := p
	for {
		prev := q.Add(-dr, -dc)
		if !prev.InBounds() || b.Get(prev) != c {
			return q
		}
		q = prev
	}
}

// AdaptiveLimit bounds how many ordered moves a non-root node searches;
// once a best move exists, negamax stops at this index and later moves are
// not searched at all. The limit shrinks as depth decreases (spec.md
// section 4.8.1).
func AdaptiveLimit(depth int) int {
	switch {
	case depth >= 8:
		return rootMoveCap
	case depth >= 5:
		return 20
	case depth >= 3:
		return 14
	default:
		return 8
	}
}
