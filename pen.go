// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package inkpad

import (
	"math"

	"github.com/gogpu/gg"
)

// Default pen and surface settings.
const (
	// DefaultStrokeWidth is the pen width in pixels.
	DefaultStrokeWidth = 12.0

	// DefaultInset is the distance in pixels between the surface edges and
	// the decorative frame.
	DefaultInset = 40
)

var (
	// DefaultPenColor is the ink color (#FFEB3B).
	DefaultPenColor = gg.Hex("#FFEB3B")

	// DefaultBackground is the color the ink layer is filled with on resize
	// (#FF5500).
	DefaultBackground = gg.Hex("#FF5500")
)

// Pen is the fixed stroke style used for ink and for the frame.
// Caps and joins are always round, anti-aliasing is always on and paths are
// stroked, never filled.
type Pen struct {
	Color gg.RGBA
	Width float64
}

// DefaultPen returns the pen used when no option overrides it.
func DefaultPen() Pen {
	return Pen{Color: DefaultPenColor, Width: DefaultStrokeWidth}
}

// WithColor returns a copy of the pen with the given color.
func (p Pen) WithColor(c gg.RGBA) Pen {
	p.Color = c
	return p
}

// WithWidth returns a copy of the pen with the given width.
// Non-positive and non-finite widths leave the pen unchanged.
func (p Pen) WithWidth(w float64) Pen {
	if !validWidth(w) {
		return p
	}
	p.Width = w
	return p
}

// Apply installs the pen on dc: color, width, round cap and round join.
func (p Pen) Apply(dc *gg.Context) {
	dc.SetColor(p.Color.Color())
	dc.SetLineWidth(p.Width)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
}

func validWidth(w float64) bool {
	return w > 0 && !math.IsInf(w, 0) && !math.IsNaN(w)
}
