package engine

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"ninukicore/internal/board"
)

// Pool runs a Lazy-SMP search: every worker shares the same
// transposition table and searches the same root, but staggers its
// starting depth so early-finishing shallow workers seed TT entries for
// the rest (spec.md section 4.12). Each worker keeps its own killer,
// history, and countermove tables; only the stop flag and TT are
// shared and must be safe for concurrent use.
type Pool struct {
	TT      *TranspositionTable
	Workers int
}

// NewPool builds a coordinator with its own transposition table sized
// ttSizeMB, running workers goroutines per search.
func NewPool(ttSizeMB, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{TT: NewTranspositionTable(ttSizeMB), Workers: workers}
}

// Result is the pool's combined verdict: the deepest completed result
// across all workers, preferring the one that searched furthest, with
// ties broken toward the higher score.
type Result struct {
	Move               board.Pos
	Score              int
	Depth              int
	NodesTot           uint64
	TTUsage            float64
	FirstMoveCutoffPct float64
	Workers            int
}

// minSearchDepth is the depth contract of spec.md section 4.11 / P6:
// boards with more than 4 stones must complete at least depth 10; sparser
// boards (where the candidate set is still small) only need depth 8.
func minSearchDepth(stoneCount int) int {
	if stoneCount <= 4 {
		return 8
	}
	return 10
}

// Search runs the full Lazy-SMP pool against pos for one move, honoring
// deadline's hard cutoff, and returns the aggregated best result.
func (pool *Pool) Search(ctx context.Context, pos *board.Position, maxDepth int, deadline *Deadline, lastMove board.Pos, lastColour board.Color) Result {
	stop := &atomic.Bool{}
	g, gctx := errgroup.WithContext(ctx)
	minDepth := minSearchDepth(pos.Board.StoneCount())

	results := make([]RootResult, pool.Workers)
	firstCutoffs := make([]uint64, pool.Workers)
	betaCutoffs := make([]uint64, pool.Workers)
	var totalNodes atomic.Uint64

	for w := 0; w < pool.Workers; w++ {
		w := w
		g.Go(func() error {
			start := startDepthFor(w)
			searcher := NewSearcher(pool.TT, stop, func() bool {
				select {
				case <-gctx.Done():
					return true
				default:
				}
				return deadline.HardExpired()
			})
			localPos := pos.Clone()
			results[w] = searcher.SearchRoot(localPos, maxDepth, start, lastMove, lastColour, deadline, minDepth)
			totalNodes.Add(searcher.Nodes.Load())
			firstCutoffs[w] = searcher.FirstMoveCutoffs.Load()
			betaCutoffs[w] = searcher.BetaCutoffs.Load()
			return nil
		})
	}
	_ = g.Wait()
	stop.Store(true)

	best := pickBest(results)
	var firstTot, betaTot uint64
	for i := range firstCutoffs {
		firstTot += firstCutoffs[i]
		betaTot += betaCutoffs[i]
	}
	pct := 0.0
	if betaTot > 0 {
		pct = float64(firstTot) / float64(betaTot) * 100
	}
	return Result{
		Move:               best.Move,
		Score:              best.Score,
		Depth:              best.Depth,
		NodesTot:           totalNodes.Load(),
		TTUsage:            pool.TT.UsagePercent(),
		FirstMoveCutoffPct: pct,
		Workers:            pool.Workers,
	}
}

// startDepthFor staggers worker starting depths so they don't all walk
// identical shallow iterations in lockstep (spec.md section 4.12):
// worker i starts at depth 1+i, so the pool sweeps a spread of depths
// every iteration instead of duplicating the main line's work.
func startDepthFor(workerIndex int) int {
	return 1 + workerIndex
}

// pickBest selects the deepest completed result, breaking ties by score,
// and falling back to any result with a legal move if none completed a
// full iteration (search was cut off at depth 1).
func pickBest(results []RootResult) RootResult {
	best := RootResult{Move: board.NoMove, Score: -winScore}
	for _, r := range results {
		if r.Move == board.NoMove {
			continue
		}
		if r.Depth > best.Depth || (r.Depth == best.Depth && r.Score > best.Score) {
			best = r
		}
	}
	return best
}
