// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package inkpad

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/google/uuid"
)

// DefaultTolerance is the minimum pointer displacement, in pixels, that
// registers as intentional movement when the host does not supply a
// density-derived value.
const DefaultTolerance = 8.0

// touchSlopDP is the touch slop in density-independent pixels.
const touchSlopDP = 8.0

// TouchSlop returns the tolerance for a display with the given device scale
// factor (physical pixels per density-independent pixel). Non-positive or
// non-finite scales yield DefaultTolerance.
func TouchSlop(scale float64) float64 {
	if !finite(scale) || scale <= 0 {
		return DefaultTolerance
	}
	return touchSlopDP * scale
}

// Segment is the curve added to a stroke by one accepted move.
// It runs from Start to End, bending towards Control.
type Segment struct {
	Stroke  uuid.UUID
	Start   gg.Point
	Control gg.Point
	End     gg.Point
}

// Path returns the segment as a standalone path suitable for stroking.
func (s Segment) Path() *gg.Path {
	p := gg.NewPath()
	p.MoveTo(s.Start.X, s.Start.Y)
	p.QuadraticTo(s.Control.X, s.Control.Y, s.End.X, s.End.Y)
	return p
}

// Tracker turns pointer events into smoothed curve segments.
//
// Each accepted move appends a quadratic curve whose control point is the
// previous pointer location and whose end point is the midpoint between the
// previous and the new location. Consecutive curves therefore share tangents
// and the stroke has no corners. Moves smaller than the tolerance on both
// axes are discarded as jitter.
//
// A Tracker follows at most one stroke and is not safe for concurrent use.
type Tracker struct {
	tolerance float64
	path      *gg.Path
	anchor    gg.Point
	stroke    uuid.UUID
	active    bool
}

// NewTracker creates a tracker with the given tolerance in pixels.
// Negative or non-finite tolerances fall back to DefaultTolerance.
func NewTracker(tolerance float64) *Tracker {
	if !validTolerance(tolerance) {
		tolerance = DefaultTolerance
	}
	return &Tracker{
		tolerance: tolerance,
		path:      gg.NewPath(),
	}
}

// Start begins a new stroke at (x, y). A stroke that is still active is
// discarded first. Non-finite coordinates are ignored.
func (t *Tracker) Start(x, y float64) {
	if !finite(x) || !finite(y) {
		Logger().Debug("inkpad: ignoring non-finite pointer down", "x", x, "y", y)
		return
	}
	if t.active {
		Logger().Debug("inkpad: stroke restarted without pointer up", "stroke", t.stroke)
	}

	t.path.Clear()
	t.path.MoveTo(x, y)
	t.anchor = gg.Pt(x, y)
	t.stroke = uuid.New()
	t.active = true
}

// Move extends the active stroke towards (x, y). It reports false, with
// no state change, when no stroke is active, the coordinates are not
// finite, or the pointer moved less than the tolerance on both axes.
func (t *Tracker) Move(x, y float64) (Segment, bool) {
	if !t.active || !finite(x) || !finite(y) {
		return Segment{}, false
	}

	dx := math.Abs(x - t.anchor.X)
	dy := math.Abs(y - t.anchor.Y)
	if dx < t.tolerance && dy < t.tolerance {
		return Segment{}, false
	}

	seg := Segment{
		Stroke:  t.stroke,
		Start:   t.path.CurrentPoint(),
		Control: t.anchor,
		End:     gg.Pt((t.anchor.X+x)/2, (t.anchor.Y+y)/2),
	}
	t.path.QuadraticTo(seg.Control.X, seg.Control.Y, seg.End.X, seg.End.Y)
	t.anchor = gg.Pt(x, y)
	return seg, true
}

// End finishes the active stroke. The in-progress path is cleared so that
// nothing of it is drawn again; segments already returned by Move are
// unaffected.
func (t *Tracker) End() {
	t.path.Clear()
	t.active = false
}

// Path returns the in-progress stroke path. It is empty between strokes.
// The returned path is owned by the tracker and changes on the next event.
func (t *Tracker) Path() *gg.Path {
	return t.path
}

// Anchor returns the last accepted pointer location.
func (t *Tracker) Anchor() gg.Point {
	return t.anchor
}

// Active reports whether a stroke is in progress.
func (t *Tracker) Active() bool {
	return t.active
}

// Stroke returns the ID of the current or most recent stroke.
func (t *Tracker) Stroke() uuid.UUID {
	return t.stroke
}

// Tolerance returns the jitter tolerance in pixels.
func (t *Tracker) Tolerance() float64 {
	return t.tolerance
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validTolerance(v float64) bool {
	return finite(v) && v >= 0
}
