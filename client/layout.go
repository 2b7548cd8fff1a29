package client

import "github.com/zucenko/herogrid/model"

// Layout maps board squares to screen pixels. With Flip set row 0 is
// drawn at the bottom, so side A sees its home row nearest to it.
type Layout struct {
	X, Y int
	Cell int
	Flip bool
}

func LayoutFor(side model.Side, x, y, cell int) Layout {
	return Layout{X: x, Y: y, Cell: cell, Flip: side == model.SideA}
}

func (l Layout) screenRow(row int) int {
	if l.Flip {
		return model.Size - 1 - row
	}
	return row
}

// Origin is the top left pixel of sq.
func (l Layout) Origin(sq model.Square) (float64, float64) {
	return float64(l.X + sq.Col*l.Cell), float64(l.Y + l.screenRow(sq.Row)*l.Cell)
}

// SquareAt returns the square under pixel (x, y), if any.
func (l Layout) SquareAt(x, y int) (model.Square, bool) {
	if x < l.X || y < l.Y || l.Cell <= 0 {
		return model.Square{}, false
	}
	col := (x - l.X) / l.Cell
	row := (y - l.Y) / l.Cell
	if col >= model.Size || row >= model.Size {
		return model.Square{}, false
	}
	return model.Square{Row: l.screenRow(row), Col: col}, true
}

func (l Layout) Width() int {
	return model.Size * l.Cell
}
