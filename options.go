// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package inkpad

import "github.com/gogpu/gg"

// Option configures a Canvas during creation.
//
// Example:
//
//	// Defaults: yellow 12px pen on orange, 40px frame inset, 8px tolerance
//	c := inkpad.NewCanvas()
//
//	// Thinner pen and a tolerance matched to a 2x display
//	c := inkpad.NewCanvas(
//	    inkpad.WithStrokeWidth(4),
//	    inkpad.WithTolerance(inkpad.TouchSlop(2)),
//	)
//
// Options given invalid values (negative sizes, NaN) are ignored and the
// default is kept.
type Option func(*options)

type options struct {
	pen        Pen
	background gg.RGBA
	inset      int
	tolerance  float64
	invalidate func()
}

func defaultOptions() options {
	return options{
		pen:        DefaultPen(),
		background: DefaultBackground,
		inset:      DefaultInset,
		tolerance:  DefaultTolerance,
	}
}

// WithPen sets the complete pen. A pen with an invalid width keeps the
// default width.
func WithPen(p Pen) Option {
	return func(o *options) {
		o.pen = o.pen.WithColor(p.Color).WithWidth(p.Width)
	}
}

// WithPenColor sets the ink and frame color.
func WithPenColor(c gg.RGBA) Option {
	return func(o *options) {
		o.pen = o.pen.WithColor(c)
	}
}

// WithStrokeWidth sets the pen width in pixels.
func WithStrokeWidth(w float64) Option {
	return func(o *options) {
		o.pen = o.pen.WithWidth(w)
	}
}

// WithBackground sets the color the ink layer is filled with on resize.
func WithBackground(c gg.RGBA) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithInset sets the distance between the surface edges and the frame.
func WithInset(inset int) Option {
	return func(o *options) {
		if inset >= 0 {
			o.inset = inset
		}
	}
}

// WithTolerance sets the minimum pointer displacement, in pixels, that
// extends a stroke. Use TouchSlop to derive it from display density.
func WithTolerance(tolerance float64) Option {
	return func(o *options) {
		if validTolerance(tolerance) {
			o.tolerance = tolerance
		}
	}
}

// WithInvalidate registers fn as the repaint request. The canvas calls it
// after every state change that alters the visible frame; the host decides
// when to actually render.
func WithInvalidate(fn func()) Option {
	return func(o *options) {
		o.invalidate = fn
	}
}
