package board

// A free three formed at p in one direction is exactly 3 same-colored
// stones (p inclusive) spanning at most 4 cells (one optional interior
// gap), with both ends empty: "_OOO_", "_OO_O_", "_O_OO_".

// IsDoubleThree reports whether placing color c at p (already assumed
// empty) produces two or more free-threes across the 4 direction classes.
// Capture exception: if the placement captures at least one pair, it can
// never be a forbidden double-three.
func IsDoubleThree(b *Board, p Pos, c Color) bool {
	if WouldCapture(b, p, c) {
		return false
	}

	b.PlaceStone(p, c)
	defer b.RemoveStone(p)

	count := 0
	for _, d := range DirectionClasses {
		if freeThreeInDirection(b, p, c, d[0], d[1]) {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

// IsValidMove reports whether placing c at p is legal: the cell must be
// empty and the placement must not be a forbidden double-three.
func IsValidMove(b *Board, p Pos, c Color) bool {
	if !p.InBounds() || b.Get(p) != Empty {
		return false
	}
	return !IsDoubleThree(b, p, c)
}

// freeThreeInDirection slides the two free-three templates (length 5:
// "_OOO_"; length 6: "_OO_O_" and "_O_OO_") along the (dr,dc) axis over
// every window that includes p, and reports whether any matches.
func freeThreeInDirection(b *Board, p Pos, c Color, dr, dc int) bool {
	// length-5 window: p can sit at offset 1, 2 or 3 within [0..4]
	for off := 1; off <= 3; off++ {
		start := p.Add(-off*dr, -off*dc)
		var cells [5]Color
		q := start
		for i := 0; i < 5; i++ {
			cells[i] = b.BoundedGet(q)
			q = q.Add(dr, dc)
		}
		if matchLen5(cells, c) {
			return true
		}
	}

	// length-6 windows: p can sit anywhere from offset 0..5
	for off := 0; off <= 5; off++ {
		start := p.Add(-off*dr, -off*dc)
		var cells [6]Color
		q := start
		for i := 0; i < 6; i++ {
			cells[i] = b.BoundedGet(q)
			q = q.Add(dr, dc)
		}
		if matchLen6A(cells, c) || matchLen6B(cells, c) {
			return true
		}
	}
	return false
}

func matchLen5(cells [5]Color, c Color) bool {
	return cells[0] == Empty && cells[1] == c && cells[2] == c && cells[3] == c && cells[4] == Empty
}

// matchLen6A is "_OO_O_".
func matchLen6A(cells [6]Color, c Color) bool {
	return cells[0] == Empty && cells[1] == c && cells[2] == c && cells[3] == Empty && cells[4] == c && cells[5] == Empty
}

// matchLen6B is "_O_OO_".
func matchLen6B(cells [6]Color, c Color) bool {
	return cells[0] == Empty && cells[1] == c && cells[2] == Empty && cells[3] == c && cells[4] == c && cells[5] == Empty
}
