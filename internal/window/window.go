// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build cgo

// Package window shows an inkpad session in a desktop window.
package window

import (
	"errors"
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/inkpad"
	"github.com/gogpu/inkpad/internal/host"
)

// Config controls the desktop window.
type Config struct {
	Title  string
	Width  int
	Height int
}

// DeviceScale returns the scale factor of the current monitor, or 1 when it
// is unknown.
func DeviceScale() float64 {
	m := ebiten.Monitor()
	if m == nil {
		return 1
	}
	if s := m.DeviceScaleFactor(); s > 0 {
		return s
	}
	return 1
}

// Run opens a resizable window that shows s and feeds it mouse and
// touch input. The surface is laid out in device pixels. It blocks until the
// window closes or Escape is pressed.
func Run(s *host.Session, cfg Config) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 640, 480
	}
	if cfg.Title == "" {
		cfg.Title = "inkpad"
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	err := ebiten.RunGame(&windowGame{s: s})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type windowGame struct {
	s   *host.Session
	img *ebiten.Image

	touchIDs []ebiten.TouchID
	touch    ebiten.TouchID
	touching bool
}

func (g *windowGame) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	pressed, x, y := g.sample()
	g.s.Pointer(pressed, x, y)
	return nil
}

// sample reads the primary pointer. The first touch wins while it lasts;
// otherwise the left mouse button is used.
func (g *windowGame) sample() (pressed bool, x, y float64) {
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	if g.touching && !slices.Contains(g.touchIDs, g.touch) {
		g.touching = false
	}
	if !g.touching && len(g.touchIDs) > 0 {
		g.touch = g.touchIDs[0]
		g.touching = true
	}
	if g.touching {
		tx, ty := ebiten.TouchPosition(g.touch)
		return true, float64(tx), float64(ty)
	}

	mx, my := ebiten.CursorPosition()
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), float64(mx), float64(my)
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	pm, changed, err := g.s.Render()
	if err != nil {
		if !errors.Is(err, host.ErrNoSurface) {
			inkpad.Logger().Warn("window: frame dropped", "err", err)
		}
		return
	}

	w, h := pm.Width(), pm.Height()
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(w, h)
		changed = true
	}
	if changed {
		g.img.WritePixels(pm.Data())
	}
	screen.DrawImage(g.img, nil)
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := DeviceScale()
	w := int(math.Ceil(float64(outsideWidth) * scale))
	h := int(math.Ceil(float64(outsideHeight) * scale))
	g.s.Resize(w, h)
	return w, h
}
