package main

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/zucenko/herogrid/model"
)

const slideSeconds = .3

type Action struct {
	onChange func(float32)
	onFinish []func()
}

func (a *Action) addOnFinish(f func()) {
	if a.onFinish == nil {
		a.onFinish = make([]func(), 0)
	}
	a.onFinish = append(a.onFinish, f)
}

// slide animates the piece that just landed on mv.To from mv.From.
func (g *Game) slide(mv model.Move) {
	fx, fy := g.Layout.Origin(mv.From)
	tx, ty := g.Layout.Origin(mv.To)
	g.slides[mv.To] = [2]float64{fx, fy}

	t := gween.New(0, 1, slideSeconds, ease.OutCubic)
	a := Action{onChange: func(v float32) {
		p := float64(v)
		g.slides[mv.To] = [2]float64{fx + (tx-fx)*p, fy + (ty-fy)*p}
	}}
	a.addOnFinish(func() {
		delete(g.slides, mv.To)
	})
	g.Tweens[t] = a
}

func (g *Game) advance(dt float32) {
	for t, a := range g.Tweens {
		curr, finished := t.Update(dt)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			for _, onFinish := range a.onFinish {
				onFinish()
			}
			delete(g.Tweens, t)
		}
	}
}

func (g *Game) stopSlides() {
	for t := range g.Tweens {
		delete(g.Tweens, t)
	}
	for sq := range g.slides {
		delete(g.slides, sq)
	}
}
