package engine

import (
	"sync/atomic"
	"time"

	"ninukicore/internal/board"
)

// winScore is the sentinel magnitude for a proven win/loss; search mate
// distances are encoded as winScore minus ply so shorter mates sort
// higher, mirroring chess engine convention adapted to five-in-a-row.
const winScore = Five + 1000

// Searcher holds one worker's search-local state plus references to the
// structures shared across the Lazy-SMP pool (spec.md section 4.12): the
// transposition table and the stop flag are shared; Tables (killers,
// history, countermoves) is private to this worker.
type Searcher struct {
	TT     *TranspositionTable
	Tables *Tables
	Stop   *atomic.Bool
	Nodes  atomic.Uint64

	// Search-quality counters (spec.md section 6's get_move_with_stats
	// contract): how often the node loop cut off on the first move tried
	// (a sign of good ordering) out of all beta cutoffs.
	FirstMoveCutoffs atomic.Uint64
	BetaCutoffs      atomic.Uint64

	checkEvery uint64
	timeCheck  func() bool // returns true once the time budget is exhausted
}

// NewSearcher builds a worker with its own ordering tables, sharing tt
// and stop with the rest of the pool. timeCheck is consulted every
// checkEvery nodes to decide whether the hard deadline has passed.
func NewSearcher(tt *TranspositionTable, stop *atomic.Bool, timeCheck func() bool) *Searcher {
	return &Searcher{
		TT:         tt,
		Tables:     NewTables(),
		Stop:       stop,
		checkEvery: 2048,
		timeCheck:  timeCheck,
	}
}

// ShouldStop reports whether this worker must unwind immediately: either
// another worker/the coordinator raised the shared stop flag, or this
// worker's own periodic time check says the hard deadline passed.
func (s *Searcher) ShouldStop() bool {
	if s.Stop.Load() {
		return true
	}
	n := s.Nodes.Load()
	if s.timeCheck != nil && n%s.checkEvery == 0 && s.timeCheck() {
		s.Stop.Store(true)
		return true
	}
	return false
}

// RootResult is one worker's best line from a completed (or aborted)
// iterative-deepening pass.
type RootResult struct {
	Move     board.Pos
	Score    int
	Depth    int
	Nodes    uint64
	Complete bool
}

// SearchRoot runs iterative deepening from startDepth up to maxDepth,
// returning the best result found before the worker was asked to stop.
// Aspiration windows narrow around the previous iteration's score once
// depth >= 3 (spec.md section 4.11). minDepth enforces the depth
// contract (section 4.11/ P6): the loop won't stop on time pressure
// alone before reaching it, only on the hard deadline or an exhausted
// maxDepth. deadline may be nil (used by tests driving a fixed depth
// with no time budget).
func (s *Searcher) SearchRoot(pos *board.Position, maxDepth, startDepth int, lastMove board.Pos, lastColour board.Color, deadline *Deadline, minDepth int) RootResult {
	best := RootResult{Move: board.NoMove, Score: -winScore}
	window := 50
	var lastIterCost, prevIterCost time.Duration
	prevSign := 0

	for depth := startDepth; depth <= maxDepth; depth++ {
		iterStart := time.Now()
		alpha, beta := -winScore, winScore
		if depth >= 3 && best.Move != board.NoMove && !isMateScore(best.Score) {
			alpha = best.Score - window
			beta = best.Score + window
		}

		score, move := s.searchRootPass(pos, depth, alpha, beta, lastMove, lastColour)
		if s.ShouldStop() && depth > startDepth {
			break
		}

		if score <= alpha || score >= beta {
			score, move = s.searchRootPass(pos, depth, -winScore, winScore, lastMove, lastColour)
			if s.ShouldStop() && depth > startDepth {
				break
			}
		}

		if move != board.NoMove {
			best = RootResult{Move: move, Score: score, Depth: depth, Nodes: s.Nodes.Load(), Complete: true}
		}
		prevIterCost, lastIterCost = lastIterCost, time.Since(iterStart)

		// Two-depth win confirmation: a terminal-band score only ends the
		// search early once the previous iteration agreed on its sign.
		if score >= winScore-100 || score <= -winScore+100 {
			sign := 1
			if score < 0 {
				sign = -1
			}
			if depth >= minDepth && sign == prevSign {
				break
			}
			prevSign = sign
		} else {
			prevSign = 0
		}

		if depth >= minDepth && deadline != nil && !deadline.ShouldStartNextIteration(lastIterCost, prevIterCost) {
			break
		}
	}
	return best
}

// searchRootPass runs one full-width root search at depth, returning the
// best score and move found within [alpha, beta].
func (s *Searcher) searchRootPass(pos *board.Position, depth, alpha, beta int, lastMove board.Pos, lastColour board.Color) (int, board.Pos) {
	side := pos.Side
	moves := CandidateMoves(&pos.Board, side)
	legal := moves[:0:0]
	for _, m := range moves {
		if board.IsValidMove(&pos.Board, m, side) {
			legal = append(legal, m)
		}
	}
	if len(legal) == 0 {
		return Evaluate(&pos.Board, side, lastMove, lastColour), board.NoMove
	}

	ttMove := board.NoMove
	if e, ok := s.TT.Probe(pos.Hash); ok && e.HasMove {
		ttMove = e.Move
	}
	ordered := OrderMoves(&pos.Board, side, legal, s.Tables, 0, ttMove, lastMove)
	if len(ordered) > rootMoveCap {
		ordered = ordered[:rootMoveCap]
	}

	bestScore := -winScore
	bestMove := ordered[0]
	first := true
	for _, m := range ordered {
		undo := pos.MakeMove(m)
		var score int
		if first {
			score = -s.negamax(pos, depth-1, 1, -beta, -alpha, m, side, true)
		} else {
			score = -s.negamax(pos, depth-1, 1, -alpha-1, -alpha, m, side, true)
			if score > alpha && score < beta {
				score = -s.negamax(pos, depth-1, 1, -beta, -alpha, m, side, true)
			}
		}
		pos.UnmakeMove(undo)

		if s.ShouldStop() {
			if first {
				bestScore, bestMove = score, m
			}
			break
		}
		if score > bestScore {
			bestScore, bestMove = score, m
		}
		if score > alpha {
			alpha = score
		}
		first = false
	}

	s.TT.Store(pos.Hash, depth, bestScore, BoundExact, true, bestMove)
	return bestScore, bestMove
}

// negamax is the fail-soft alpha-beta core (spec.md sections 4.10-4.11):
// transposition cutoffs, reverse futility pruning, razoring, null-move
// pruning, internal iterative deepening, late-move pruning/reductions,
// futility pruning, and a per-move threat extension for any candidate
// that creates a four.
func (s *Searcher) negamax(pos *board.Position, depth, ply, alpha, beta int, lastMove board.Pos, lastColour board.Color, allowNull bool) int {
	s.Nodes.Add(1)
	if s.ShouldStop() {
		return 0
	}

	if winner, ok := board.CheckWinner(&pos.Board, lastMove, lastColour); ok {
		if winner == pos.Side {
			return winScore - ply
		}
		return -winScore + ply
	}
	if depth <= 0 {
		return s.Quiescence(pos, alpha, beta, 0, lastMove, lastColour)
	}

	origAlpha := alpha
	if e, ok := s.TT.Probe(pos.Hash); ok {
		if score, usable := Usable(e, depth, alpha, beta); usable {
			return score
		}
	}

	side := pos.Side
	staticEval := Evaluate(&pos.Board, side, lastMove, lastColour)

	// Reverse futility pruning: if even a generous margin keeps us above
	// beta, the opponent won't let this position happen.
	if depth <= 3 && !isMateScore(beta) {
		margin := OpenThree * depth
		if staticEval-margin >= beta {
			return staticEval
		}
	}

	// Razoring: a hopeless-looking shallow node drops straight to
	// quiescence instead of spending a full ply on it.
	if depth <= 3 && staticEval+OpenThree*depth <= alpha {
		q := s.Quiescence(pos, alpha, beta, 0, lastMove, lastColour)
		if q <= alpha {
			return q
		}
	}

	// threatened gates null-move pruning off when the opponent already
	// has a four on the board or is one capture from winning outright —
	// passing the turn in that position would be unsound.
	threatened := opponentAlreadyThreatens(&pos.Board, side)

	// Null-move pruning: pass the turn and see if the opponent is still
	// in trouble at reduced depth R=2; skip near mate scores, when
	// threatened, and when the static eval doesn't already clear beta.
	if allowNull && depth >= 3 && !threatened && !isMateScore(beta) && staticEval >= beta {
		const nullReduction = 2
		pos.Side = side.Opponent()
		score := -s.negamax(pos, depth-1-nullReduction, ply+1, -beta, -beta+1, board.NoMove, side, false)
		pos.Side = side
		if s.ShouldStop() {
			return 0
		}
		if score >= beta {
			if depth <= 8 {
				return beta
			}
			// Re-verify at the shallower depth-R before trusting the cut:
			// deep nodes are cheap enough, and costly enough to get wrong,
			// that a second opinion is worth the extra search.
			pos.Side = side.Opponent()
			verify := -s.negamax(pos, depth-nullReduction, ply+1, -beta, -beta+1, board.NoMove, side, false)
			pos.Side = side
			if s.ShouldStop() {
				return 0
			}
			if verify >= beta {
				return beta
			}
		}
	}

	ttMove := board.NoMove
	if e, ok := s.TT.Probe(pos.Hash); ok && e.HasMove {
		ttMove = e.Move
	} else if depth >= 6 {
		// internal iterative deepening: find a decent move to order first
		s.negamax(pos, depth-2, ply, alpha, beta, lastMove, lastColour, true)
		if e, ok := s.TT.Probe(pos.Hash); ok && e.HasMove {
			ttMove = e.Move
		}
	}

	moves := CandidateMoves(&pos.Board, side)
	legal := moves[:0:0]
	for _, m := range moves {
		if board.IsValidMove(&pos.Board, m, side) {
			legal = append(legal, m)
		}
	}
	if len(legal) == 0 {
		return staticEval
	}
	ordered := OrderMoves(&pos.Board, side, legal, s.Tables, ply, ttMove, lastMove)

	limit := AdaptiveLimit(depth)
	bestScore := -winScore
	bestMove := board.NoMove
	movesSearched := 0

	for i, m := range ordered {
		if i >= limit && bestMove != board.NoMove {
			break // width cap: stop generating beyond the adaptive limit
		}

		isCapture := board.WouldCapture(&pos.Board, m, side)
		isTactical := isCapture || createsOpenFour(&pos.Board, m, side) || createsOpenThree(&pos.Board, m, side)
		moveScore := tacticalBand(&pos.Board, m, side, side.Opponent()) + s.Tables.history[colorIdx(side)][m.Index()]
		quiet := moveScore < quietScoreCeiling

		// Late-move pruning: once we're deep into the ordered list at a
		// shallow depth with a best move already found, quiet moves this
		// far down the list aren't worth a full search.
		if depth <= 3 && quiet && bestMove != board.NoMove && i >= 3+2*depth {
			movesSearched++
			continue
		}

		// Futility pruning: a quiet move far below alpha at shallow depth
		// isn't going to matter. Margins widen with depth since a deeper
		// remaining search has more room to recover.
		if depth <= 3 && quiet && movesSearched > 0 {
			if staticEval+futilityMargin(depth) <= alpha {
				movesSearched++
				continue
			}
		}

		extension := 0
		if depth >= 2 && createsFour(&pos.Board, m, side) {
			extension = 1 // threat extension: a four demands an immediate answer
		}

		undo := pos.MakeMove(m)
		newDepth := depth - 1 + extension

		var score int
		if movesSearched == 0 {
			score = -s.negamax(pos, newDepth, ply+1, -beta, -alpha, m, side, true)
		} else {
			reduction := 0
			if depth >= 3 && !isTactical && i >= 2 {
				reduction = lmrReduction(depth, i, moveScore)
			}
			score = -s.negamax(pos, newDepth-reduction, ply+1, -alpha-1, -alpha, m, side, true)
			if score > alpha && reduction > 0 {
				score = -s.negamax(pos, newDepth, ply+1, -alpha-1, -alpha, m, side, true)
			}
			if score > alpha && score < beta {
				score = -s.negamax(pos, newDepth, ply+1, -beta, -alpha, m, side, true)
			}
		}
		pos.UnmakeMove(undo)
		movesSearched++

		if s.ShouldStop() {
			return 0
		}

		if score > bestScore {
			bestScore, bestMove = score, m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			s.BetaCutoffs.Add(1)
			if i == 0 {
				s.FirstMoveCutoffs.Add(1)
			}
			if !isCapture {
				s.Tables.RecordKiller(ply, m)
				s.Tables.RecordCounterMove(side, lastMove, m)
			}
			s.Tables.RecordHistory(side, m, depth)
			break
		}
	}

	bound := BoundExact
	if bestScore <= origAlpha {
		bound = BoundUpper
	} else if bestScore >= beta {
		bound = BoundLower
	}
	s.TT.Store(pos.Hash, depth, bestScore, bound, bestMove != board.NoMove, bestMove)
	return bestScore
}

// futilityMargin returns the depth-tiered margin used to skip quiet moves
// that can't plausibly close the gap to alpha (spec.md section 4.10).
func futilityMargin(depth int) int {
	switch depth {
	case 1:
		return 50_000
	case 2:
		return 100_000
	default:
		return 110_000
	}
}

// lmrReduction computes the late-move reduction depth: a base term from
// depth and move index, plus one extra ply for moves the ordering pass
// ranked below the low-priority threshold (spec.md section 4.10).
func lmrReduction(depth, moveIndex, moveScore int) int {
	r := isqrt(depth) * isqrt(moveIndex) / 2
	if moveScore < lowPriorityMoveScore {
		r++
	}
	if r < 1 {
		r = 1
	}
	if r > depth-2 {
		r = depth - 2
	}
	if r < 1 {
		r = 1
	}
	return r
}

func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

func isMateScore(v int) bool {
	return v >= winScore-1000 || v <= -winScore+1000
}

// opponentAlreadyThreatens reports whether side's opponent already has a
// four on the board (open or closed) or sits one capture from winning
// outright — the precondition spec.md section 4.10 requires before null
// move pruning is sound, since passing the turn into either position
// risks missing the opponent's reply.
func opponentAlreadyThreatens(b *board.Board, side board.Color) bool {
	opp := side.Opponent()
	if b.Captures(opp) >= board.MaxCaptures-1 {
		return true
	}
	_, counts := scanPatterns(b, opp)
	return counts.openFours > 0 || counts.closedFours > 0
}
