package model

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// IsLegal reports whether side may play m on b. It fails closed: any
// broken precondition makes the move illegal before the piece shape is
// looked at.
func IsLegal(b *Board, side Side, m Move) bool {
	if !m.From.InBounds() || !m.To.InBounds() {
		return false
	}
	if m.From == m.To {
		return false
	}
	src := b.At(m.From)
	if !src.OwnedBy(side) {
		return false
	}
	if b.At(m.To).OwnedBy(side) {
		return false
	}

	rowDiff := abs(m.To.Row - m.From.Row)
	colDiff := abs(m.To.Col - m.From.Col)

	switch src.Piece.Kind {
	case Pawn:
		return rowDiff+colDiff == 1
	case OrthogonalHero:
		straight := (rowDiff == 0) != (colDiff == 0)
		if !straight || rowDiff+colDiff != 2 {
			return false
		}
		return pathClear(b, m)
	case DiagonalHero:
		if rowDiff != 2 || colDiff != 2 {
			return false
		}
		return pathClear(b, m)
	}
	return false
}

// pathClear walks the cells strictly between from and to along a straight
// or diagonal line.
func pathClear(b *Board, m Move) bool {
	dr := sign(m.To.Row - m.From.Row)
	dc := sign(m.To.Col - m.From.Col)
	sq := Square{m.From.Row + dr, m.From.Col + dc}
	for sq != m.To {
		if b.At(sq).Occupied {
			return false
		}
		sq = Square{sq.Row + dr, sq.Col + dc}
	}
	return true
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

var offsets = map[PieceKind][4]Square{
	Pawn:           {{-1, 0}, {1, 0}, {0, -1}, {0, 1}},
	OrthogonalHero: {{-2, 0}, {2, 0}, {0, -2}, {0, 2}},
	DiagonalHero:   {{-2, -2}, {-2, 2}, {2, -2}, {2, 2}},
}

// PossibleMoves lists the squares the piece on from may legally move to.
func PossibleMoves(b *Board, side Side, from Square) []Square {
	src := b.At(from)
	if !src.OwnedBy(side) {
		return nil
	}
	targets := make([]Square, 0, 4)
	for _, o := range offsets[src.Piece.Kind] {
		to := Square{from.Row + o.Row, from.Col + o.Col}
		if IsLegal(b, side, Move{From: from, To: to}) {
			targets = append(targets, to)
		}
	}
	return targets
}
