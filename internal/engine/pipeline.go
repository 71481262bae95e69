package engine

import "ninukicore/internal/board"

// breakOpponentFive implements spec.md section 4.13 step 2: if the
// opponent already holds a breakable five, enumerate the capture moves
// that break it, discard the ones whose break is illusory, and play the
// highest-priority survivor. Falls through (ok=false) if the opponent has
// no five, the five isn't breakable, or every break is illusory — in
// which case alpha-beta will evaluate the lost position honestly.
func breakOpponentFive(b *board.Board, side board.Color) (board.Pos, bool) {
	opp := side.Opponent()
	five := board.FindFivePositions(b, opp)
	if five == nil {
		return board.NoMove, false
	}

	var candidates []board.Pos
	for _, bc := range board.BreakCells(b, five, opp) {
		if board.IsValidMove(b, bc, side) && !board.IsIllusoryBreak(b, five, opp, bc) {
			candidates = append(candidates, bc)
		}
	}
	if len(candidates) == 0 {
		return board.NoMove, false
	}
	return highestPriority(b, candidates, side), true
}

// immediateWin implements step 3: any legal move that completes a five
// (not breakable, or breakable but every break is illusory) or reaches
// the fifth capture pair.
func immediateWin(b *board.Board, side board.Color) (board.Pos, bool) {
	for i := 0; i < board.NumCells; i++ {
		m := board.PosFromIndex(i)
		if b.Get(m) != board.Empty || !board.IsValidMove(b, m, side) {
			continue
		}
		if wins, _ := simulateWin(b, m, side); wins {
			return m, true
		}
	}
	return board.NoMove, false
}

// blockOpponentThreat implements step 4: enumerate the opponent's
// immediate wins; if exactly one blockable reply exists, play it. If
// there are zero or several, fall through — zero means there's nothing
// to block, several means a single move can't stop all of them and the
// full search must find the best practical try.
func blockOpponentThreat(b *board.Board, side board.Color) (board.Pos, bool) {
	opp := side.Opponent()
	var oppWins []board.Pos
	for i := 0; i < board.NumCells; i++ {
		m := board.PosFromIndex(i)
		if b.Get(m) != board.Empty || !board.IsValidMove(b, m, opp) {
			continue
		}
		if wins, _ := simulateWin(b, m, opp); wins {
			oppWins = append(oppWins, m)
		}
	}
	if len(oppWins) != 1 {
		return board.NoMove, false
	}
	threat := oppWins[0]
	if !board.IsValidMove(b, threat, side) {
		return board.NoMove, false
	}
	return threat, true
}

// breakingReply implements step 6: given the opponent's proven VCF first
// move, return a move for side that denies it — simply occupying the cell
// the opponent needed removes the whole forcing line in one step.
func breakingReply(b *board.Board, side board.Color, oppFirstMove board.Pos) (board.Pos, bool) {
	if board.IsValidMove(b, oppFirstMove, side) {
		return oppFirstMove, true
	}
	return board.NoMove, false
}

// highestPriority picks the candidate with the best tactical-band score,
// the same ordering heuristic the search uses to sort moves.
func highestPriority(b *board.Board, candidates []board.Pos, side board.Color) board.Pos {
	opp := side.Opponent()
	best := candidates[0]
	bestScore := tacticalBand(b, best, side, opp)
	for _, c := range candidates[1:] {
		if s := tacticalBand(b, c, side, opp); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best
}

// terminalAtStart reports whether the position is already a finished game
// before side has moved (spec.md section 7, error kind 4): either side
// has 5 capture pairs, or a standing five exists that isn't breakable (or
// every break on it is illusory).
func terminalAtStart(b *board.Board) bool {
	if b.Captures(board.Black) >= board.MaxCaptures || b.Captures(board.White) >= board.MaxCaptures {
		return true
	}
	for _, c := range [2]board.Color{board.Black, board.White} {
		five := board.FindFivePositions(b, c)
		if five == nil {
			continue
		}
		breaks := board.BreakCells(b, five, c)
		if len(breaks) == 0 {
			return true
		}
		allIllusory := true
		for _, bc := range breaks {
			if !board.IsIllusoryBreak(b, five, c, bc) {
				allIllusory = false
				break
			}
		}
		if allIllusory {
			return true
		}
	}
	return false
}
