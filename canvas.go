// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package inkpad

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
)

// Common errors returned by Canvas operations.
var (
	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("inkpad: invalid dimensions")

	// ErrNilTarget is returned when Render is given a nil context.
	ErrNilTarget = errors.New("inkpad: nil render target")

	// ErrNoInkLayer is returned by Snapshot before the first Resize.
	ErrNoInkLayer = errors.New("inkpad: no ink layer")
)

var _ View = (*Canvas)(nil)

// Canvas is a drawing surface made of two layers.
//
// The ink layer is an off-screen pixel buffer that accumulates every
// committed segment. It is never redrawn from stroke history: once a segment
// is committed it lives only as pixels. The frame is a rectangle inset from
// the surface edges that is stroked on top of the ink layer on every Render
// and never baked into it.
//
// The ink layer does not exist until the first successful Resize. Until
// then CommitSegment is a no-op and Render produces a background-only
// frame.
//
// Canvas is NOT safe for concurrent use. Deliver all events and renders
// from one goroutine, or use external synchronization.
type Canvas struct {
	opts    options
	tracker *Tracker

	ink    *gg.Context // nil until the first Resize
	width  int
	height int
	frame  image.Rectangle
	dirty  bool
}

// NewCanvas creates a canvas with no ink layer. Call Resize before drawing.
func NewCanvas(opts ...Option) *Canvas {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Canvas{
		opts:    o,
		tracker: NewTracker(o.tolerance),
	}
}

// Resize allocates the ink layer for a width x height surface, fills it with
// the background color and recomputes the frame.
//
// Any ink already drawn is discarded, including when the dimensions are
// unchanged, so hosts should only call Resize on an actual size change.
// Non-positive dimensions return ErrInvalidDimensions and leave the canvas
// untouched.
func (c *Canvas) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	if c.ink == nil {
		c.ink = gg.NewContext(width, height)
	} else if err := c.ink.Resize(width, height); err != nil {
		return fmt.Errorf("inkpad: ink layer resize failed: %w", err)
	}
	c.ink.ClearWithColor(c.opts.background)

	c.width = width
	c.height = height
	inset := c.opts.inset
	c.frame = image.Rectangle{
		Min: image.Pt(inset, inset),
		Max: image.Pt(width-inset, height-inset),
	}

	Logger().Info("inkpad: ink layer allocated", "width", width, "height", height, "frame", c.frame)
	c.invalidate()
	return nil
}

// CommitSegment strokes path onto the ink layer with pen, synchronously.
//
// Coordinates are clamped to the surface; non-finite points are dropped.
// Without an ink layer, or with an empty path, CommitSegment does nothing.
func (c *Canvas) CommitSegment(path *gg.Path, pen Pen) error {
	if c.ink == nil || path == nil || len(path.Elements()) == 0 {
		return nil
	}

	pen.Apply(c.ink)
	c.ink.ClearPath()
	for _, el := range path.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			if p, ok := c.clamp(e.Point); ok {
				c.ink.MoveTo(p.X, p.Y)
			}
		case gg.LineTo:
			if p, ok := c.clamp(e.Point); ok {
				c.ink.LineTo(p.X, p.Y)
			}
		case gg.QuadTo:
			ctrl, ok1 := c.clamp(e.Control)
			p, ok2 := c.clamp(e.Point)
			if ok1 && ok2 {
				c.ink.QuadraticTo(ctrl.X, ctrl.Y, p.X, p.Y)
			}
		case gg.CubicTo:
			c1, ok1 := c.clamp(e.Control1)
			c2, ok2 := c.clamp(e.Control2)
			p, ok3 := c.clamp(e.Point)
			if ok1 && ok2 && ok3 {
				c.ink.CubicTo(c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y)
			}
		case gg.Close:
			c.ink.ClosePath()
		}
	}

	if err := c.ink.Stroke(); err != nil {
		return fmt.Errorf("inkpad: commit segment: %w", err)
	}
	return nil
}

// Render paints the visible frame into dc: the ink layer copied at the
// origin, then the frame outline stroked with the pen. Before the first
// Resize dc is filled with the background color only.
//
// Only the region shared by dc and the ink layer is copied.
func (c *Canvas) Render(dc *gg.Context) error {
	if dc == nil {
		return ErrNilTarget
	}
	c.dirty = false
	return c.compose(dc)
}

func (c *Canvas) compose(dc *gg.Context) error {
	if c.ink == nil {
		dc.ClearWithColor(c.opts.background)
		return nil
	}

	if err := c.ink.FlushGPU(); err != nil {
		return fmt.Errorf("inkpad: flush ink layer: %w", err)
	}
	blit(dc.ResizeTarget(), c.ink.ResizeTarget())

	if c.frame.Empty() {
		return nil
	}
	c.opts.pen.Apply(dc)
	dc.ClearPath()
	dc.DrawRectangle(
		float64(c.frame.Min.X), float64(c.frame.Min.Y),
		float64(c.frame.Dx()), float64(c.frame.Dy()),
	)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("inkpad: render frame: %w", err)
	}
	return nil
}

// HandlePointerEvent routes a pointer event to the stroke tracker. An
// accepted move is committed to the ink layer and a repaint is requested.
// It always reports the event as consumed.
func (c *Canvas) HandlePointerEvent(kind PointerKind, x, y float64) bool {
	log := Logger()
	switch kind {
	case PointerDown:
		prev := c.tracker.Stroke()
		c.tracker.Start(x, y)
		if c.tracker.Stroke() != prev {
			log.Info("inkpad: stroke started", "stroke", c.tracker.Stroke(), "x", x, "y", y)
		}
	case PointerMove:
		seg, ok := c.tracker.Move(x, y)
		if !ok {
			log.Debug("inkpad: move discarded", "x", x, "y", y)
			return true
		}
		if err := c.CommitSegment(seg.Path(), c.opts.pen); err != nil {
			log.Warn("inkpad: segment not committed", "stroke", seg.Stroke, "err", err)
		} else {
			log.Debug("inkpad: segment committed", "stroke", seg.Stroke,
				"control", seg.Control, "end", seg.End)
		}
		c.invalidate()
	case PointerUp:
		if c.tracker.Active() {
			log.Info("inkpad: stroke ended", "stroke", c.tracker.Stroke())
		}
		c.tracker.End()
	default:
		log.Debug("inkpad: unknown pointer event", "kind", kind)
	}
	return true
}

// OnResize implements View. Invalid sizes are logged and ignored.
func (c *Canvas) OnResize(width, height, oldWidth, oldHeight int) {
	if err := c.Resize(width, height); err != nil {
		Logger().Warn("inkpad: resize ignored",
			"width", width, "height", height,
			"oldWidth", oldWidth, "oldHeight", oldHeight, "err", err)
	}
}

// OnRender implements View.
func (c *Canvas) OnRender(dc *gg.Context) error {
	return c.Render(dc)
}

// OnPointerEvent implements View.
func (c *Canvas) OnPointerEvent(kind PointerKind, x, y float64) bool {
	return c.HandlePointerEvent(kind, x, y)
}

// Snapshot renders the visible frame into a new image the size of the
// ink layer. It returns ErrNoInkLayer before the first Resize.
func (c *Canvas) Snapshot() (*image.RGBA, error) {
	if c.ink == nil {
		return nil, ErrNoInkLayer
	}
	dc := gg.NewContext(c.width, c.height)
	defer func() { _ = dc.Close() }()
	if err := c.compose(dc); err != nil {
		return nil, err
	}
	return dc.ResizeTarget().ToImage(), nil
}

// Size returns the ink layer dimensions, or zeros before the first Resize.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Frame returns the decorative frame rectangle. It is
// (inset, inset, width-inset, height-inset) and may be empty on small
// surfaces, in which case it is not drawn.
func (c *Canvas) Frame() image.Rectangle {
	return c.frame
}

// Pen returns the canvas pen.
func (c *Canvas) Pen() Pen {
	return c.opts.pen
}

// Background returns the ink layer fill color.
func (c *Canvas) Background() gg.RGBA {
	return c.opts.background
}

// Tracker returns the stroke tracker fed by HandlePointerEvent.
func (c *Canvas) Tracker() *Tracker {
	return c.tracker
}

// IsDirty reports whether the visible frame changed since the last Render.
func (c *Canvas) IsDirty() bool {
	return c.dirty
}

func (c *Canvas) invalidate() {
	c.dirty = true
	if c.opts.invalidate != nil {
		c.opts.invalidate()
	}
}

// clamp limits p to the surface. It reports false for non-finite points.
func (c *Canvas) clamp(p gg.Point) (gg.Point, bool) {
	if !finite(p.X) || !finite(p.Y) {
		return gg.Point{}, false
	}
	return gg.Pt(
		math.Min(math.Max(p.X, 0), float64(c.width)),
		math.Min(math.Max(p.Y, 0), float64(c.height)),
	), true
}

// blit copies src into dst at the origin, row by row, over the region the
// two pixmaps share.
func blit(dst, src *gg.Pixmap) {
	w := min(dst.Width(), src.Width())
	h := min(dst.Height(), src.Height())
	if w <= 0 || h <= 0 {
		return
	}
	dstData, srcData := dst.Data(), src.Data()
	dstStride, srcStride := dst.Width()*4, src.Width()*4
	for y := 0; y < h; y++ {
		copy(dstData[y*dstStride:y*dstStride+w*4], srcData[y*srcStride:y*srcStride+w*4])
	}
}
