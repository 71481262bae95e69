package board

// HasFiveAt reports whether the stone at p is part of a run of 5 or more
// same-colored stones in any of the 4 unoriented directions. Bounded O(1):
// each direction extends at most a few cells past 5 in the worst case
// before exceeding the board.
func HasFiveAt(b *Board, p Pos, c Color) bool {
	if b.Get(p) != c {
		return false
	}
	for _, d := range DirectionClasses {
		if runLength(b, p, d[0], d[1], c) >= 5 {
			return true
		}
	}
	return false
}

// runLength counts the contiguous same-colored run through p along the
// (dr, dc) axis, extending in both senses from p.
func runLength(b *Board, p Pos, dr, dc int, c Color) int {
	count := 1
	for q := p.Add(dr, dc); b.BoundedGet(q) == c; q = q.Add(dr, dc) {
		count++
	}
	for q := p.Add(-dr, -dc); b.BoundedGet(q) == c; q = q.Add(-dr, -dc) {
		count++
	}
	return count
}

// FindFivePositions returns the cells of the first 5-or-more run of color c
// it finds (scanning in row-major order, line-start stones only), or nil
// if no such run exists. Reporting the first run found is sufficient for
// winner detection (spec.md section 4.3).
func FindFivePositions(b *Board, c Color) []Pos {
	for i := 0; i < NumCells; i++ {
		p := PosFromIndex(i)
		if b.Get(p) != c {
			continue
		}
		for _, d := range DirectionClasses {
			dr, dc := d[0], d[1]
			// only consider p as a line start in this direction
			if b.BoundedGet(p.Add(-dr, -dc)) == c {
				continue
			}
			n := runLength(b, p, dr, dc, c)
			if n >= 5 {
				cells := make([]Pos, 0, n)
				q := p
				// walk backward to the true start first
				for b.BoundedGet(q.Add(-dr, -dc)) == c {
					q = q.Add(-dr, -dc)
				}
				for k := 0; k < n; k++ {
					cells = append(cells, q)
					q = q.Add(dr, dc)
				}
				return cells
			}
		}
	}
	return nil
}

// CanBreakFiveByCapture reports whether some empty cell adjacent (8-
// neighborhood) to any cell of fiveCells lets the opponent, by playing
// there, capture a pair that includes at least one cell of the five.
func CanBreakFiveByCapture(b *Board, fiveCells []Pos, fiveColour Color) bool {
	return len(BreakCells(b, fiveCells, fiveColour)) > 0
}

// BreakCells returns every empty neighbor cell of fiveCells whose
// opponent-play there captures a member of fiveCells.
func BreakCells(b *Board, fiveCells []Pos, fiveColour Color) []Pos {
	opp := fiveColour.Opponent()
	seen := make(map[Pos]bool)
	var out []Pos
	for _, fc := range fiveCells {
		for _, d := range Directions8 {
			cand := fc.Add(d[0], d[1])
			if !cand.InBounds() || b.Get(cand) != Empty || seen[cand] {
				continue
			}
			seen[cand] = true
			if capturesAnyOf(b, cand, opp, fiveCells) {
				out = append(out, cand)
			}
		}
	}
	return out
}

// capturesAnyOf reports whether placing opp at cand would capture a pair
// containing at least one of the target cells.
func capturesAnyOf(b *Board, cand Pos, opp Color, targets []Pos) bool {
	b.PlaceStone(cand, opp)
	rec := ExecuteCaptures(b, cand, opp)
	hit := false
	for i := 0; i < rec.NumCells && !hit; i++ {
		for _, t := range targets {
			if rec.Cells[i] == t {
				hit = true
				break
			}
		}
	}
	UndoCaptures(b, opp, rec)
	b.RemoveStone(cand)
	return hit
}

// IsIllusoryBreak reports whether, after the opponent captures at
// breakCell, the five's owner can replay at one of the now-empty cells
// that belonged to the captured pair and immediately recreate an
// unbreakable five. Per spec.md's open question, this checks exactly one
// replay ply (no further recursion).
func IsIllusoryBreak(b *Board, fiveCells []Pos, fiveColour Color, breakCell Pos) bool {
	opp := fiveColour.Opponent()

	b.PlaceStone(breakCell, opp)
	rec := ExecuteCaptures(b, breakCell, opp)
	defer func() {
		UndoCaptures(b, opp, rec)
		b.RemoveStone(breakCell)
	}()

	if rec.Pairs == 0 {
		return false
	}

	// Candidate replay cells: the captured cells that were part of the five.
	var replayCells []Pos
	for i := 0; i < rec.NumCells; i++ {
		for _, t := range fiveCells {
			if rec.Cells[i] == t {
				replayCells = append(replayCells, rec.Cells[i])
			}
		}
	}
	if len(replayCells) == 0 {
		return false
	}

	for _, rp := range replayCells {
		b.PlaceStone(rp, fiveColour)
		newFive := FindFivePositions(b, fiveColour)
		unbreakable := newFive != nil && !CanBreakFiveByCapture(b, newFive, fiveColour)
		b.RemoveStone(rp)
		if !unbreakable {
			return false
		}
	}
	return true
}

// CheckWinner determines whether the position is terminal after lastMove
// was played by lastColour. Priority: (1) either side has reached
// MaxCaptures pairs; (2) lastMove completed a five that is not breakable,
// or every possible break is illusory.
func CheckWinner(b *Board, lastMove Pos, lastColour Color) (Color, bool) {
	if b.Captures(Black) >= MaxCaptures {
		return Black, true
	}
	if b.Captures(White) >= MaxCaptures {
		return White, true
	}
	if lastMove.IsNone() || !HasFiveAt(b, lastMove, lastColour) {
		return Empty, false
	}

	five := fiveThroughPoint(b, lastMove, lastColour)
	if five == nil {
		return Empty, false
	}
	breaks := BreakCells(b, five, lastColour)
	if len(breaks) == 0 {
		return lastColour, true
	}
	for _, bc := range breaks {
		if !IsIllusoryBreak(b, five, lastColour, bc) {
			return Empty, false
		}
	}
	return lastColour, true
}

// fiveThroughPoint returns the 5+ cell run through p in whichever
// direction produced it.
func fiveThroughPoint(b *Board, p Pos, c Color) []Pos {
	for _, d := range DirectionClasses {
		dr, dc := d[0], d[1]
		n := runLength(b, p, dr, dc, c)
		if n >= 5 {
			q := p
			for b.BoundedGet(q.Add(-dr, -dc)) == c {
				q = q.Add(-dr, -dc)
			}
			cells := make([]Pos, 0, n)
			for k := 0; k < n; k++ {
				cells = append(cells, q)
				q = q.Add(dr, dc)
			}
			return cells
		}
	}
	return nil
}
