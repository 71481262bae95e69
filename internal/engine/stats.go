package engine

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"ninukicore/internal/board"
)

// Stage identifies which pipeline stage of spec.md section 4.13 produced
// a move, per the get_move_with_stats contract in section 6.
type Stage int

const (
	StageOpeningBook Stage = iota
	StageBreakFive
	StageImmediateWin
	StageBlockThreat
	StageOurVCF
	StageOppVCF
	StageAlphaBeta
)

func (s Stage) String() string {
	switch s {
	case StageOpeningBook:
		return "OpeningBook"
	case StageBreakFive:
		return "BreakFive"
	case StageImmediateWin:
		return "ImmediateWin"
	case StageBlockThreat:
		return "BlockThreat"
	case StageOurVCF:
		return "OurVCF"
	case StageOppVCF:
		return "OppVCF"
	case StageAlphaBeta:
		return "AlphaBeta"
	default:
		return "Unknown"
	}
}

// Stats is the result of get_move_with_stats (spec.md section 6): the
// chosen move plus enough search-quality detail for a caller to report
// engine strength without reaching into internals.
type Stats struct {
	Move               board.Pos
	Score              int
	Depth              int
	Nodes              uint64
	Elapsed            time.Duration
	NPS                uint64
	TTUsagePct         float64
	FirstMoveCutoffPct float64
	Stage              Stage
}

// String renders a one-line human-readable report, the natural
// continuation of the teacher's log.Printf-based SearchInfo reporting:
// humanize formats the node counts and rate the way a console "info" line
// would, instead of raw integers.
func (s Stats) String() string {
	return fmt.Sprintf(
		"[%s] move=%s score=%d depth=%d nodes=%s nps=%s tt=%.1f%% cutoff1=%.1f%% elapsed=%s",
		s.Stage, s.Move, s.Score, s.Depth,
		humanize.Comma(int64(s.Nodes)), humanize.SI(float64(s.NPS), ""),
		s.TTUsagePct, s.FirstMoveCutoffPct, s.Elapsed.Round(time.Millisecond),
	)
}
