package model

import "fmt"

const Size = 5

type Side int8

const (
	NoSide Side = iota
	SideA
	SideB
)

func (s Side) Opponent() Side {
	switch s {
	case SideA:
		return SideB
	case SideB:
		return SideA
	default:
		return NoSide
	}
}

func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	default:
		return "-"
	}
}

// HomeRow is the row a side's pieces are placed on at the start.
func (s Side) HomeRow() int {
	if s == SideB {
		return Size - 1
	}
	return 0
}

type PieceKind int8

const (
	NoKind PieceKind = iota
	Pawn
	OrthogonalHero
	DiagonalHero
)

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "P"
	case OrthogonalHero:
		return "H1"
	case DiagonalHero:
		return "H2"
	default:
		return "?"
	}
}

// Piece is one piece instance. Tag numbers same-kind pieces of a side
// starting at 1, so history can tell the three pawns apart.
type Piece struct {
	Side Side
	Kind PieceKind
	Tag  int8
}

func (p Piece) Name() string {
	if p.Kind == Pawn {
		return fmt.Sprintf("%s-%s%d", p.Side, p.Kind, p.Tag)
	}
	return fmt.Sprintf("%s-%s", p.Side, p.Kind)
}

// Cell is either empty (zero value) or holds exactly one piece.
type Cell struct {
	Occupied bool
	Piece    Piece
}

func Empty() Cell {
	return Cell{}
}

func Occupied(p Piece) Cell {
	return Cell{Occupied: true, Piece: p}
}

func (c Cell) OwnedBy(s Side) bool {
	return c.Occupied && c.Piece.Side == s
}

type Square struct {
	Row, Col int
}

func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < Size && s.Col >= 0 && s.Col < Size
}

func (s Square) String() string {
	return fmt.Sprintf("(%d, %d)", s.Row, s.Col)
}

type Move struct {
	From, To Square
}

func NewMove(fromRow, fromCol, toRow, toCol int) Move {
	return Move{From: Square{fromRow, fromCol}, To: Square{toRow, toCol}}
}

func (m Move) String() string {
	return fmt.Sprintf("%v->%v", m.From, m.To)
}

// Board is row-major: Cells[row][col].
type Board struct {
	Cells [Size][Size]Cell
}

// HomeLayout is the order pieces take along a home row, column 0 first.
var HomeLayout = [Size]Piece{
	{Kind: Pawn, Tag: 1},
	{Kind: OrthogonalHero, Tag: 1},
	{Kind: DiagonalHero, Tag: 1},
	{Kind: Pawn, Tag: 2},
	{Kind: Pawn, Tag: 3},
}

func NewInitialBoard() Board {
	var b Board
	b.place(SideA)
	b.place(SideB)
	return b
}

func (b *Board) place(s Side) {
	row := s.HomeRow()
	for col, p := range HomeLayout {
		p.Side = s
		b.Cells[row][col] = Occupied(p)
	}
}

// At returns the cell at sq; out of bounds squares read as empty.
func (b *Board) At(sq Square) Cell {
	if !sq.InBounds() {
		return Empty()
	}
	return b.Cells[sq.Row][sq.Col]
}

func (b *Board) Set(sq Square, c Cell) {
	b.Cells[sq.Row][sq.Col] = c
}

// MovePiece clears from and puts its previous content on to, overwriting
// whatever stood there. It does not check legality. The returned cell is
// the previous content of to.
func (b *Board) MovePiece(from, to Square) Cell {
	moving := b.Cells[from.Row][from.Col]
	taken := b.Cells[to.Row][to.Col]
	b.Cells[from.Row][from.Col] = Empty()
	b.Cells[to.Row][to.Col] = moving
	return taken
}

func (b *Board) Count(s Side) int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.Cells[r][c].OwnedBy(s) {
				n++
			}
		}
	}
	return n
}
