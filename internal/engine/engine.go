package engine

import (
	"context"
	"log"
	"runtime"
	"time"

	"ninukicore/internal/board"
)

// maxWorkers caps the Lazy-SMP pool size regardless of how many cores the
// host reports (spec.md section 4.12).
const maxWorkers = 8

// Engine is the Ninuki-renju decision procedure (spec.md section 4.13):
// given a board and a side to move, it walks the staged pipeline —
// opening book, forced break, immediate win, threat block, our VCF,
// opponent VCF, full search — and returns a legal move within its time
// budget. It owns the shared transposition table for the lifetime of the
// game (section 3's Searcher lifecycle).
type Engine struct {
	pool         *Pool
	book         *Book
	keys         *board.ZobristKeys
	maxDepth     int
	softBudgetMs int
}

// NewEngine builds an engine with its own transposition table sized
// ttMB megabytes, a maximum search depth, and a default soft time budget
// in milliseconds (spec.md section 6's new_engine).
func NewEngine(ttMB, maxDepth, softBudgetMs int) *Engine {
	workers := runtime.NumCPU()
	if workers > maxWorkers {
		workers = maxWorkers
	}
	if workers < 1 {
		workers = 1
	}
	log.Printf("[engine] starting %d workers, tt=%dMB, maxDepth=%d, softBudget=%dms", workers, ttMB, maxDepth, softBudgetMs)
	return &Engine{
		pool:         NewPool(ttMB, workers),
		book:         NewBook(),
		keys:         board.NewZobristKeys(),
		maxDepth:     maxDepth,
		softBudgetMs: softBudgetMs,
	}
}

// GetMove returns a move for side on b, or false if the position is
// already terminal at turn start (spec.md section 7, error kind 4).
func (e *Engine) GetMove(b *board.Board, side board.Color) (board.Pos, bool) {
	stats, ok := e.GetMoveWithStats(b, side)
	return stats.Move, ok
}

// GetMoveWithStats walks the decision pipeline and reports search-quality
// stats alongside the chosen move (spec.md section 6).
func (e *Engine) GetMoveWithStats(b *board.Board, side board.Color) (Stats, bool) {
	start := time.Now()
	wb := b.Clone()

	if terminalAtStart(&wb) {
		return Stats{}, false
	}

	if m, ok := e.book.Probe(&wb, side); ok {
		return Stats{Move: m, Stage: StageOpeningBook, Elapsed: time.Since(start)}, true
	}

	if m, ok := breakOpponentFive(&wb, side); ok {
		return Stats{Move: m, Stage: StageBreakFive, Elapsed: time.Since(start)}, true
	}

	if m, ok := immediateWin(&wb, side); ok {
		return Stats{Move: m, Score: Five, Stage: StageImmediateWin, Elapsed: time.Since(start)}, true
	}

	if m, ok := blockOpponentThreat(&wb, side); ok {
		return Stats{Move: m, Score: -Five, Stage: StageBlockThreat, Elapsed: time.Since(start)}, true
	}

	if wb.Captures(side.Opponent()) < board.MaxCaptures-1 {
		if m, ok := ProveVCF(board.FromBoard(wb, side, e.keys), side); ok {
			return Stats{Move: m, Score: winScore, Stage: StageOurVCF, Elapsed: time.Since(start)}, true
		}
	}

	if wb.Captures(side) < board.MaxCaptures-1 {
		oppSide := side.Opponent()
		if oppMove, ok := ProveVCF(board.FromBoard(wb, oppSide, e.keys), oppSide); ok {
			if block, ok2 := breakingReply(&wb, side, oppMove); ok2 {
				return Stats{Move: block, Score: -winScore, Stage: StageOppVCF, Elapsed: time.Since(start)}, true
			}
		}
	}

	return e.fullSearch(&wb, side, start)
}

// fullSearch invokes the Lazy-SMP coordinator with the position's time
// budget (spec.md section 4.13 step 7).
func (e *Engine) fullSearch(b *board.Board, side board.Color, start time.Time) (Stats, bool) {
	rootPos := board.FromBoard(*b, side, e.keys)
	budget := e.timeBudget(b.StoneCount())
	deadline := NewDeadline(budget)

	result := e.pool.Search(context.Background(), rootPos, e.maxDepth, deadline, board.NoMove, board.Empty)
	if result.Move.IsNone() {
		return Stats{}, false
	}

	elapsed := time.Since(start)
	var nps uint64
	if elapsed > 0 {
		nps = uint64(float64(result.NodesTot) / elapsed.Seconds())
	}
	return Stats{
		Move:               result.Move,
		Score:              result.Score,
		Depth:              result.Depth,
		Nodes:              result.NodesTot,
		Elapsed:            elapsed,
		NPS:                nps,
		TTUsagePct:         result.TTUsage,
		FirstMoveCutoffPct: result.FirstMoveCutoffPct,
		Stage:              StageAlphaBeta,
	}, true
}

// timeBudget derives the soft/hard budget from stone count (spec.md
// section 4.11's opening scaling): 0-2 stones get 30% of the configured
// base, 3-4 get 60%, 5+ get the full base, floored at 300ms. Hard is
// always soft+150ms.
func (e *Engine) timeBudget(stoneCount int) Budget {
	base := time.Duration(e.softBudgetMs) * time.Millisecond
	var scale float64
	switch {
	case stoneCount <= 2:
		scale = 0.30
	case stoneCount <= 4:
		scale = 0.60
	default:
		scale = 1.0
	}
	soft := time.Duration(float64(base) * scale)
	if soft < 300*time.Millisecond {
		soft = 300 * time.Millisecond
	}
	return Budget{Soft: soft, Hard: soft + 150*time.Millisecond}
}

// Reset clears worker-local ordering tables for a new game while keeping
// the transposition table (spec.md section 6). Pool.Search already
// allocates a fresh Tables per worker for every call — tables are cleared
// between moves by construction — so this is a deliberate no-op kept for
// interface parity with clear_cache and forward-compatible callers that
// expect to call it between games.
func (e *Engine) Reset() {}

// ClearCache wipes the shared transposition table (spec.md section 6's
// clear_cache).
func (e *Engine) ClearCache() {
	e.pool.TT.Clear()
}
