package engine

import (
	"ninukicore/internal/board"
)

// quiescenceMaxPly bounds the forcing-move extension so a long chain of
// checks/captures can't blow the stack (spec.md section 4.9).
const quiescenceMaxPly = 12

// Quiescence extends the search past the nominal leaf along forcing
// lines only: moves that complete a five, capture a pair, complete a
// fifth capture pair, or (while still shallow in the quiescence line)
// create a four. It returns a stand-pat-bounded fail-soft score from
// side's perspective, probing and storing the transposition table at
// depth 0 the same way negamax does (spec.md section 4.9).
func (s *Searcher) Quiescence(pos *board.Position, alpha, beta, qply int, lastMove board.Pos, lastColour board.Color) int {
	if s.ShouldStop() {
		return 0
	}

	if winner, ok := board.CheckWinner(&pos.Board, lastMove, lastColour); ok {
		if winner == pos.Side {
			return Five - qply
		}
		return -Five + qply
	}

	origAlpha := alpha
	if e, ok := s.TT.Probe(pos.Hash); ok {
		if score, usable := Usable(e, 0, alpha, beta); usable {
			return score
		}
	}

	standPat := Evaluate(&pos.Board, pos.Side, lastMove, lastColour)

	best := standPat
	if standPat < beta {
		if standPat > alpha {
			alpha = standPat
		}

		if qply < quiescenceMaxPly {
			forcing := forcingMoves(&pos.Board, pos.Side, qply)
			for _, m := range forcing {
				undo := pos.MakeMove(m)
				score := -s.Quiescence(pos, -beta, -alpha, qply+1, m, pos.Board.Get(m))
				pos.UnmakeMove(undo)

				if s.ShouldStop() {
					return 0
				}
				if score > best {
					best = score
				}
				if score > alpha {
					alpha = score
				}
				if alpha >= beta {
					break
				}
			}
		}
	}

	bound := BoundExact
	if best <= origAlpha {
		bound = BoundUpper
	} else if best >= beta {
		bound = BoundLower
	}
	s.TT.Store(pos.Hash, 0, best, bound, false, board.NoMove)
	return best
}

// forcingMoves returns the subset of candidate moves worth extending
// into: moves that complete a five, capture a pair, complete the fifth
// capture pair, or — only while qply is still shallow, per spec.md
// section 4.9 step 3 — create a four (open or closed). Deeper in the
// quiescence line, a mere four stops being forcing enough to keep
// extending; fives and captures always are. Ordered by tactical band
// only (no history/killer tables at this depth).
func forcingMoves(b *board.Board, side board.Color, qply int) []board.Pos {
	candidates := CandidateMoves(b, side)
	var out []board.Pos
	for _, m := range candidates {
		if !board.IsValidMove(b, m, side) {
			continue
		}
		switch {
		case createsFive(b, m, side):
			out = append(out, m)
		case capturesFifthPair(b, m, side):
			out = append(out, m)
		case board.WouldCapture(b, m, side):
			out = append(out, m)
		case qply < 6 && createsFour(b, m, side):
			out = append(out, m)
		}
	}
	sortByTacticalBand(b, side, out)
	return out
}

// createsFive reports whether placing side at m completes a five (spec.md
// section 4.9 step 3's primary forcing criterion). Whether the five could
// be broken by a capture is not checked here.
func createsFive(b *board.Board, m board.Pos, side board.Color) bool {
	if b.Get(m) != board.Empty {
		return false
	}
	b.PlaceStone(m, side)
	five := board.HasFiveAt(b, m, side)
	b.RemoveStone(m)
	return five
}

// capturesFifthPair reports whether placing side at m would capture a
// pair that brings side to MaxCaptures, winning outright by capture.
func capturesFifthPair(b *board.Board, m board.Pos, side board.Color) bool {
	if b.Get(m) != board.Empty {
		return false
	}
	b.PlaceStone(m, side)
	rec := board.ExecuteCaptures(b, m, side)
	won := rec.Pairs > 0 && b.Captures(side) >= board.MaxCaptures
	board.UndoCaptures(b, side, rec)
	b.RemoveStone(m)
	return won
}

func sortByTacticalBand(b *board.Board, side board.Color, moves []board.Pos) {
	opp := side.Opponent()
	scores := make([]int, len(moves))
	for i, m := range moves {
		scores[i] = tacticalBand(b, m, side, opp)
	}
	for i := 1; i < len(moves); i++ {
		j := i
		for j > 0 && scores[j-1] < scores[j] {
			scores[j-1], scores[j] = scores[j], scores[j-1]
			moves[j-1], moves[j] = moves[j], moves[j-1]
			j--
		}
	}
}
