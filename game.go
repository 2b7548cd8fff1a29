package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/zucenko/herogrid/client"
	"github.com/zucenko/herogrid/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	discSize   = 64
	historyLen = 4
)

var Font, SmallFont font.Face

func init() {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Fatal(err)
	}
	const dpi = 72
	Font = truetype.NewFace(tt, &truetype.Options{
		Size:    26,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	SmallFont = truetype.NewFace(tt, &truetype.Options{
		Size:    16,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
}

func discImage(d int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, d, d))
	r := float64(d) / 2
	for y := 0; y < d; y++ {
		for x := 0; x < d; x++ {
			dx, dy := float64(x)+.5-r, float64(y)+.5-r
			if dx*dx+dy*dy <= r*r {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

func NewGame(conn *client.Conn) (*Game, error) {
	disc, err := ebiten.NewImageFromImage(discImage(discSize), ebiten.FilterLinear)
	if err != nil {
		return nil, err
	}
	frame, err := newFrame(COLOR_FRAME)
	if err != nil {
		return nil, err
	}
	return &Game{
		State:  CONNECTING,
		Conn:   conn,
		View:   &client.View{},
		Layout: client.LayoutFor(model.SideA, boardX, boardY, cellSize),
		Frame:  frame,
		Piece:  &Tile{image: disc, scale: cellSize * .7 / discSize},
		Tweens: make(map[*gween.Tween]Action),
		slides: make(map[model.Square][2]float64),
	}, nil
}

// receive drains every message the relay sent since the last frame.
func (g *Game) receive() {
	if g.State == DISCONNECTED {
		return
	}
	for {
		select {
		case m, open := <-g.Conn.Incoming:
			if !open {
				g.State = DISCONNECTED
				g.View.Alert = "connection to the relay lost"
				return
			}
			log.Debugf("Game.receive %s", m.Type.Name())
			fresh, err := g.View.Apply(m)
			if err != nil {
				log.Warnf("Game.receive %s: %v", m.Type.Name(), err)
			}
			g.Layout = client.LayoutFor(g.View.Side, boardX, boardY, cellSize)
			if m.Type == model.MsgResetDone || m.Type == model.MsgStart {
				g.stopSlides()
			}
			for _, h := range fresh {
				g.slide(h.Move)
			}
			g.State = g.stateOf()
		default:
			return
		}
	}
}

func (g *Game) stateOf() GameState {
	switch {
	case g.View.Match != nil && g.View.Match.Terminal():
		return GAME_OVER
	case g.View.Started:
		return PLAYING
	default:
		return WAITING
	}
}

func (g *Game) input() {
	if g.State == DISCONNECTED {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && g.View.Match != nil {
		g.Conn.Send(model.ClientMessage{Type: model.MsgReset})
	}

	presses := make([][2]int, 0, 1)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		presses = append(presses, [2]int{x, y})
	}
	for _, id := range inpututil.JustPressedTouchIDs() {
		x, y := ebiten.TouchPosition(id)
		presses = append(presses, [2]int{x, y})
	}
	for _, p := range presses {
		sq, ok := g.Layout.SquareAt(p[0], p[1])
		if !ok || !g.View.MyTurn() {
			continue
		}
		g.Conn.Send(model.ClientMessage{Type: model.MsgSelect, Cell: sq})
	}
}

func (g *Game) update(screen *ebiten.Image) error {
	g.receive()
	g.input()
	g.advance(1.0 / 60)

	if ebiten.IsDrawingSkipped() {
		return nil
	}

	e := screen.Fill(COLOR_BACKGROUND.RGBA())
	if e != nil {
		log.Printf("%v", e)
	}
	g.drawHeader(screen)
	g.drawBoard(screen)
	g.drawFooter(screen)

	ebitenutil.DebugPrintAt(screen, g.State.Name(), screenWidth-100, 0)
	return nil
}

func (g *Game) drawHeader(screen *ebiten.Image) {
	text.Draw(screen, g.View.Status(), Font, boardX, 40, color.White)
	if g.View.Code != "" {
		line := fmt.Sprintf("room %s   you are %s", g.View.Code, g.View.Side)
		text.Draw(screen, line, SmallFont, boardX, 62, color.White)
	}
	if left := g.View.Remaining(time.Now()); left > 0 {
		secs := fmt.Sprintf("%ds", int(math.Ceil(left.Seconds())))
		clr := color.Color(color.White)
		if left < 5*time.Second {
			clr = COLOR_SIDE_A.RGBA()
		}
		w := font.MeasureString(Font, secs).Round()
		text.Draw(screen, secs, Font, boardX+g.Layout.Width()-w, 40, clr)
	}
}

func (g *Game) drawBoard(screen *ebiten.Image) {
	g.Frame.SetPosition(boardX-12, boardY-12)
	g.Frame.SetSize(g.Layout.Width()+24, g.Layout.Width()+24)
	g.Frame.Draw(screen)

	selected, selecting := g.View.Selected()
	targets := make(map[model.Square]bool, len(g.View.Targets))
	for _, t := range g.View.Targets {
		targets[t] = true
	}
	for r := 0; r < model.Size; r++ {
		for c := 0; c < model.Size; c++ {
			sq := model.Square{Row: r, Col: c}
			x, y := g.Layout.Origin(sq)
			clr := COLOR_LIGHT
			if (r+c)%2 == 1 {
				clr = COLOR_DARK
			}
			switch {
			case selecting && sq == selected:
				clr = COLOR_SELECTED
			case targets[sq]:
				clr = COLOR_TARGET
			}
			ebitenutil.DrawRect(screen, x, y, cellSize, cellSize, clr.RGBA())
		}
	}

	if g.View.Match == nil {
		return
	}
	for r := 0; r < model.Size; r++ {
		for c := 0; c < model.Size; c++ {
			sq := model.Square{Row: r, Col: c}
			cell := g.View.Match.Board.At(sq)
			if !cell.Occupied {
				continue
			}
			x, y := g.Layout.Origin(sq)
			if p, moving := g.slides[sq]; moving {
				x, y = p[0], p[1]
			}
			g.drawPiece(screen, cell.Piece, x, y)
		}
	}
}

func (g *Game) drawPiece(screen *ebiten.Image, p model.Piece, x, y float64) {
	tint := COLOR_SIDE_A
	if p.Side == model.SideB {
		tint = COLOR_SIDE_B
	}
	pad := (cellSize - g.Piece.Size()) / 2
	g.Piece.Draw(screen, x+pad, y+pad, tint)

	label := p.Kind.String()
	w := font.MeasureString(Font, label).Round()
	text.Draw(screen, label, Font, int(x)+(cellSize-w)/2, int(y)+cellSize/2+9, color.White)
}

func (g *Game) drawFooter(screen *ebiten.Image) {
	y := boardY + g.Layout.Width() + 40
	text.Draw(screen, g.View.Alert, SmallFont, boardX, y, COLOR_SELECTED.RGBA())
	if g.View.Match != nil {
		h := g.View.Match.History
		from := len(h) - historyLen
		if from < 0 {
			from = 0
		}
		for i := len(h) - 1; i >= from; i-- {
			y += 22
			text.Draw(screen, h[i].String(), SmallFont, boardX, y, color.White)
		}
	}
	text.Draw(screen, "click a piece then a square, R resets", SmallFont, boardX, screenHeight-12, COLOR_LIGHT.RGBA())
}

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	conn, err := client.Dial(ctx, cfg.Server)
	cancel()
	if err != nil {
		log.Fatalf("connect %s: %v", cfg.Server, err)
	}
	defer conn.Close()
	go conn.LoopChannelWrite()
	go conn.LoopChannelRead()

	if cfg.Join != "" {
		conn.Send(model.ClientMessage{Type: model.MsgJoin, Code: cfg.Join})
	} else {
		conn.Send(model.ClientMessage{Type: model.MsgCreate})
	}

	game, err := NewGame(conn)
	if err != nil {
		log.Fatal(err)
	}
	if err := ebiten.Run(game.update, screenWidth, screenHeight, 1, "Hero Grid"); err != nil {
		log.Fatal(err)
	}
}
