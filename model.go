package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten"
	"github.com/tanema/gween"
	"github.com/zucenko/herogrid/client"
	"github.com/zucenko/herogrid/model"
)

type GameState int

const (
	CONNECTING GameState = iota + 1
	WAITING
	PLAYING
	GAME_OVER
	DISCONNECTED
)

func (s GameState) Name() string {
	switch s {
	case CONNECTING:
		return "CONNECTING"
	case WAITING:
		return "WAITING"
	case PLAYING:
		return "PLAYING"
	case GAME_OVER:
		return "GAME_OVER"
	case DISCONNECTED:
		return "DISCONNECTED"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

// Tile is a piece sprite, tinted per side when drawn.
type Tile struct {
	image *ebiten.Image
	scale float64
}

func (t *Tile) Size() float64 {
	w, _ := t.image.Size()
	return float64(w) * t.scale
}

func (t *Tile) Draw(screen *ebiten.Image, x, y float64, tint GameColor) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(t.scale, t.scale)
	op.GeoM.Translate(x, y)
	op.ColorM.Scale(tint.r, tint.g, tint.b, 1)
	_ = screen.DrawImage(t.image, op)
}

type Game struct {
	State  GameState
	Conn   *client.Conn
	View   *client.View
	Layout client.Layout
	Frame  *Nine
	Piece  *Tile
	Tweens map[*gween.Tween]Action
	// slides holds the pixel position of pieces still travelling to
	// their square.
	slides map[model.Square][2]float64
}
