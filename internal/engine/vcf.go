package engine

import "ninukicore/internal/board"

// vcfMaxPly bounds the VCF prover's recursion (spec.md section 4.13): a
// forced-win line longer than this is treated as unproven rather than
// searched indefinitely.
const vcfMaxPly = 14

// ProveVCF attempts to prove a forced win for side by a sequence of
// four-creating moves (Victory by Continuous Fours): every move in the
// line forces the single legal defence, until a five results that the
// defender cannot break. It returns the first move of the line on
// success.
//
// Per spec.md section 4.13, VCF is skipped when the opponent already
// holds four capture pairs: they can simply ignore our fours and win by
// their own fifth capture, so a four-forcing line isn't actually forcing.
func ProveVCF(pos *board.Position, side board.Color) (board.Pos, bool) {
	if pos.Board.Captures(side.Opponent()) >= board.MaxCaptures-1 {
		return board.NoMove, false
	}
	return vcfSearch(pos, side, 0)
}

func vcfSearch(pos *board.Position, side board.Color, ply int) (board.Pos, bool) {
	if ply >= vcfMaxPly {
		return board.NoMove, false
	}

	for _, m := range movesCreatingFour(&pos.Board, side) {
		undo := pos.MakeMove(m)
		winner, won := board.CheckWinner(&pos.Board, m, side)
		if won && winner == side {
			pos.UnmakeMove(undo)
			return m, true
		}

		defences := forcedDefences(&pos.Board, side)
		var forces bool
		switch len(defences) {
		case 0:
			forces = true // no legal defence at all: side wins outright next ply
		case 1:
			dundo := pos.MakeMove(defences[0])
			_, forces = vcfSearch(pos, side, ply+1)
			pos.UnmakeMove(dundo)
		default:
			forces = false // more than one defence: not a forcing move
		}
		pos.UnmakeMove(undo)

		if forces {
			return m, true
		}
	}
	return board.NoMove, false
}

// movesCreatingFour returns the candidate moves that give side a four
// (open or closed) in some direction, the only move type a VCF line may
// play.
func movesCreatingFour(b *board.Board, side board.Color) []board.Pos {
	var out []board.Pos
	for _, m := range CandidateMoves(b, side) {
		if board.IsValidMove(b, m, side) && createsFour(b, m, side) {
			out = append(out, m)
		}
	}
	return out
}

// createsFour reports whether placing side at m produces a run of
// exactly 4 with at least one way to extend to five (an open end or an
// interior gap).
func createsFour(b *board.Board, m board.Pos, side board.Color) bool {
	if b.Get(m) != board.Empty {
		return false
	}
	b.PlaceStone(m, side)
	defer b.RemoveStone(m)
	for _, d := range board.DirectionClasses {
		dr, dc := d[0], d[1]
		n, hadGap, openStart, openEnd := scanRun(b, lineStart(b, m, dr, dc, side), dr, dc, side)
		if n == 4 && (hadGap || openStart || openEnd) {
			return true
		}
	}
	return false
}

// fourCompletionCells returns every empty cell where placing a side stone
// would complete a five: the VCF prover's "what must the defender block"
// query.
func fourCompletionCells(b *board.Board, side board.Color) []board.Pos {
	var out []board.Pos
	for i := 0; i < board.NumCells; i++ {
		c := board.PosFromIndex(i)
		if b.Get(c) != board.Empty {
			continue
		}
		b.PlaceStone(c, side)
		five := board.HasFiveAt(b, c, side)
		b.RemoveStone(c)
		if five {
			out = append(out, c)
		}
	}
	return out
}

// forcedDefences enumerates the opponent's candidate replies to side's
// pending five-completion threat (spec.md section 4.13): occupy one of
// the completion cells, play any capturing move on an empty cell next to
// one of them, or —
// once the opponent holds at least 3 capture pairs — any capturing move
// at all, since they may have a faster win of their own to race toward.
func forcedDefences(b *board.Board, side board.Color) []board.Pos {
	opp := side.Opponent()
	completions := fourCompletionCells(b, side)
	seen := make(map[board.Pos]bool)
	var out []board.Pos

	add := func(p board.Pos) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, c := range completions {
		if board.IsValidMove(b, c, opp) {
			add(c)
		}
	}

	for _, c := range completions {
		for _, d := range board.Directions8 {
			cand := c.Add(d[0], d[1])
			if !cand.InBounds() || b.Get(cand) != board.Empty || seen[cand] {
				continue
			}
			if board.WouldCapture(b, cand, opp) {
				add(cand)
			}
		}
	}

	if b.Captures(opp) >= 3 {
		for i := 0; i < board.NumCells; i++ {
			p := board.PosFromIndex(i)
			if b.Get(p) != board.Empty || seen[p] {
				continue
			}
			if board.WouldCapture(b, p, opp) {
				add(p)
			}
		}
	}
	return out
}
