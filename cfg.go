package main

import (
	"image/color"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/herogrid/client"
)

const (
	cellSize     = 80
	boardX       = 40
	boardY       = 80
	screenWidth  = boardX*2 + 5*cellSize
	screenHeight = boardY + 5*cellSize + 170
)

func HexToF32(u uint32) GameColor {
	b := float64(0xff&u) / 255
	g := float64(0xff&(u>>8)) / 255
	r := float64(0xff&(u>>16)) / 255
	return GameColor{r, g, b}
}

type GameColor struct {
	r, g, b float64
}

func (c GameColor) RGBA() color.RGBA {
	return color.RGBA{uint8(c.r * 255), uint8(c.g * 255), uint8(c.b * 255), 255}
}

var (
	COLOR_BACKGROUND = HexToF32(0x464646)
	COLOR_LIGHT      = HexToF32(0xd8c9a7)
	COLOR_DARK       = HexToF32(0xa8936b)
	COLOR_SELECTED   = HexToF32(0xedbc1e)
	COLOR_TARGET     = HexToF32(0x0abd38)
	COLOR_FRAME      = HexToF32(0x321e0c)
	COLOR_SIDE_A     = HexToF32(0xfa3636)
	COLOR_SIDE_B     = HexToF32(0x34a0fb)
)

func loadConfig() client.Config {
	cfg, err := client.ParseFlags(os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatalf("flags: %v", err)
	}
	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("log level: %v", err)
	}
	log.SetLevel(lvl)
	return cfg
}
