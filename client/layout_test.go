package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zucenko/herogrid/model"
)

func TestLayoutRoundTrip(t *testing.T) {
	for _, side := range []model.Side{model.SideA, model.SideB} {
		l := LayoutFor(side, 40, 70, 80)
		for r := 0; r < model.Size; r++ {
			for c := 0; c < model.Size; c++ {
				sq := model.Square{Row: r, Col: c}
				x, y := l.Origin(sq)
				got, ok := l.SquareAt(int(x)+l.Cell/2, int(y)+l.Cell/2)
				assert.True(t, ok)
				assert.Equal(t, sq, got, "side %s", side)
			}
		}
	}
}

func TestLayoutOrientation(t *testing.T) {
	a := LayoutFor(model.SideA, 0, 0, 10)
	_, y := a.Origin(model.Square{Row: model.SideA.HomeRow()})
	assert.Equal(t, float64(40), y, "A sees its home row at the bottom")

	b := LayoutFor(model.SideB, 0, 0, 10)
	_, y = b.Origin(model.Square{Row: model.SideB.HomeRow()})
	assert.Equal(t, float64(40), y, "B sees its home row at the bottom")
}

func TestSquareAtOutside(t *testing.T) {
	l := LayoutFor(model.SideB, 40, 70, 80)
	for _, p := range [][2]int{{39, 100}, {100, 69}, {440, 100}, {100, 470}} {
		_, ok := l.SquareAt(p[0], p[1])
		assert.False(t, ok, "%v", p)
	}
	assert.Equal(t, 400, l.Width())
}
