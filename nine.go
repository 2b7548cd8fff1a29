package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten"
)

// Nine draws a nine-slice frame: corners keep their size, edges and the
// centre stretch to fill the target rectangle.
type Nine struct {
	images              *ebiten.Image
	alpha               float64
	R, G, B, Scale      float64
	positions           [4]int
	x, y, width, height int
	targetX, targetY    [3]float64
	scaleX, scaleY      [3]float64
}

// newFrame builds the board frame source: an opaque border around a
// translucent centre.
func newFrame(c GameColor) (*Nine, error) {
	const side, border = 24, 8
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			if x < border || y < border || x >= side-border || y >= side-border {
				img.Set(x, y, color.White)
			} else {
				img.Set(x, y, color.RGBA{0x40, 0x40, 0x40, 0x40})
			}
		}
	}
	for _, p := range [][2]int{{0, 0}, {side - 1, 0}, {0, side - 1}, {side - 1, side - 1}} {
		img.Set(p[0], p[1], color.Transparent)
	}
	src, err := ebiten.NewImageFromImage(img, ebiten.FilterNearest)
	if err != nil {
		return nil, err
	}
	return &Nine{
		images:    src,
		alpha:     1,
		R:         c.r, G: c.g, B: c.b, Scale: 1.5,
		positions: [4]int{0, border, side - border, side},
	}, nil
}

func (n *Nine) SetPosition(x, y int) {
	n.x = x
	n.y = y
	n.SetSize(n.width, n.height)
}

func (n *Nine) SetSize(width, height int) {
	n.width = width
	n.height = height
	n.targetX, n.scaleX = n.span(n.x, n.width)
	n.targetY, n.scaleY = n.span(n.y, n.height)
}

// span lays the three slices along one axis starting at from.
func (n *Nine) span(from, length int) (targets, scales [3]float64) {
	head := n.Scale * float64(n.positions[1]-n.positions[0])
	tail := n.Scale * float64(n.positions[3]-n.positions[2])
	inner := float64(length) - head - tail

	targets[0] = float64(from)
	targets[1] = targets[0] + head
	targets[2] = float64(from+length) - tail
	scales[0] = n.Scale
	scales[1] = inner / float64(n.positions[2]-n.positions[1])
	scales[2] = n.Scale
	return
}

func (n *Nine) Draw(screen *ebiten.Image) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			src := image.Rect(n.positions[i], n.positions[j], n.positions[i+1], n.positions[j+1])
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(n.scaleX[i], n.scaleY[j])
			op.GeoM.Translate(n.targetX[i], n.targetY[j])
			op.ColorM.Scale(n.R, n.G, n.B, n.alpha)
			_ = screen.DrawImage(n.images.SubImage(src).(*ebiten.Image), op)
		}
	}
}
