// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package inkpad

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/google/go-cmp/cmp"
)

// pixel returns the raw RGBA bytes at (x, y).
func pixel(pm *gg.Pixmap, x, y int) color.NRGBA {
	d := pm.Data()
	i := (y*pm.Width() + x) * 4
	return color.NRGBA{R: d[i], G: d[i+1], B: d[i+2], A: d[i+3]}
}

func nrgba(c gg.RGBA) color.NRGBA {
	return color.NRGBAModel.Convert(c.Color()).(color.NRGBA)
}

// near reports whether a and b differ by at most tol on every channel.
func near(a, b color.NRGBA, tol int) bool {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) <= tol && d(a.G, b.G) <= tol && d(a.B, b.B) <= tol && d(a.A, b.A) <= tol
}

func renderFrame(t *testing.T, c *Canvas, w, h int) *gg.Pixmap {
	t.Helper()
	dc := gg.NewContext(w, h)
	t.Cleanup(func() { _ = dc.Close() })
	if err := c.Render(dc); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return dc.ResizeTarget()
}

// referenceFrame draws background + frame outline directly with gg.
func referenceFrame(t *testing.T, c *Canvas, w, h int) *gg.Pixmap {
	t.Helper()
	dc := gg.NewContext(w, h)
	t.Cleanup(func() { _ = dc.Close() })
	dc.ClearWithColor(c.Background())
	f := c.Frame()
	c.Pen().Apply(dc)
	dc.DrawRectangle(float64(f.Min.X), float64(f.Min.Y), float64(f.Dx()), float64(f.Dy()))
	if err := dc.Stroke(); err != nil {
		t.Fatalf("reference Stroke() error = %v", err)
	}
	return dc.ResizeTarget()
}

func TestCanvasBeforeResize(t *testing.T) {
	c := NewCanvas()

	if w, h := c.Size(); w != 0 || h != 0 {
		t.Errorf("Size() = %dx%d, want 0x0", w, h)
	}

	seg := Segment{Start: gg.Pt(1, 1), Control: gg.Pt(1, 1), End: gg.Pt(20, 20)}
	if err := c.CommitSegment(seg.Path(), c.Pen()); err != nil {
		t.Errorf("CommitSegment() before Resize error = %v", err)
	}

	if !c.HandlePointerEvent(PointerDown, 5, 5) || !c.HandlePointerEvent(PointerMove, 50, 50) {
		t.Error("HandlePointerEvent() = false, want true")
	}

	pm := renderFrame(t, c, 20, 20)
	bg := nrgba(c.Background())
	for _, p := range []image.Point{{0, 0}, {10, 10}, {19, 19}} {
		if got := pixel(pm, p.X, p.Y); got != bg {
			t.Errorf("placeholder pixel %v = %v, want background %v", p, got, bg)
		}
	}

	if _, err := c.Snapshot(); !errors.Is(err, ErrNoInkLayer) {
		t.Errorf("Snapshot() error = %v, want ErrNoInkLayer", err)
	}
}

func TestCanvasResizeInvalid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 100},
		{"zero height", 100, 0},
		{"negative width", -1, 100},
		{"negative height", 100, -5},
		{"both zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas()
			if err := c.Resize(tt.width, tt.height); !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("Resize() on fresh canvas error = %v, want ErrInvalidDimensions", err)
			}
			if _, err := c.Snapshot(); !errors.Is(err, ErrNoInkLayer) {
				t.Errorf("invalid Resize allocated an ink layer (Snapshot error = %v)", err)
			}

			if err := c.Resize(120, 90); err != nil {
				t.Fatalf("Resize(120, 90) error = %v", err)
			}
			frame := c.Frame()
			if err := c.Resize(tt.width, tt.height); !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("Resize() error = %v, want ErrInvalidDimensions", err)
			}
			if w, h := c.Size(); w != 120 || h != 90 {
				t.Errorf("Size() = %dx%d after rejected resize, want 120x90", w, h)
			}
			if c.Frame() != frame {
				t.Errorf("Frame() = %v after rejected resize, want %v", c.Frame(), frame)
			}
		})
	}
}

func TestCanvasFrame(t *testing.T) {
	tests := []struct {
		name          string
		inset         int
		width, height int
		want          image.Rectangle
		wantEmpty     bool
	}{
		{"default square", DefaultInset, 100, 100, image.Rect(40, 40, 60, 60), false},
		{"default landscape", DefaultInset, 800, 600, image.Rect(40, 40, 760, 560), false},
		{"custom inset", 10, 300, 200, image.Rect(10, 10, 290, 190), false},
		{"zero inset", 0, 50, 30, image.Rect(0, 0, 50, 30), false},
		{"too small", DefaultInset, 80, 200, image.Rectangle{Min: image.Pt(40, 40), Max: image.Pt(40, 160)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(WithInset(tt.inset))
			if err := c.Resize(tt.width, tt.height); err != nil {
				t.Fatalf("Resize() error = %v", err)
			}
			if got := c.Frame(); got != tt.want {
				t.Errorf("Frame() = %v, want %v", got, tt.want)
			}
			if got := c.Frame().Empty(); got != tt.wantEmpty {
				t.Errorf("Frame().Empty() = %v, want %v", got, tt.wantEmpty)
			}
		})
	}
}

func TestCanvasFrameFollowsResize(t *testing.T) {
	c := NewCanvas()
	for _, size := range []image.Point{{100, 100}, {640, 480}, {90, 300}, {100, 100}} {
		if err := c.Resize(size.X, size.Y); err != nil {
			t.Fatalf("Resize(%v) error = %v", size, err)
		}
		want := image.Rect(DefaultInset, DefaultInset, size.X-DefaultInset, size.Y-DefaultInset)
		if got := c.Frame(); got != want {
			t.Errorf("after Resize(%v): Frame() = %v, want %v", size, got, want)
		}
	}
}

func TestCanvasRenderAfterResizeIsBackgroundAndFrame(t *testing.T) {
	c := NewCanvas()
	if err := c.Resize(200, 160); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}

	got := renderFrame(t, c, 200, 160)
	want := referenceFrame(t, c, 200, 160)
	if !bytes.Equal(got.Data(), want.Data()) {
		t.Error("Render() after Resize differs from background + frame outline")
	}

	bg, pen := nrgba(c.Background()), nrgba(c.Pen().Color)
	if p := pixel(got, 100, 80); p != bg {
		t.Errorf("center pixel = %v, want background %v", p, bg)
	}
	if p := pixel(got, 5, 5); p != bg {
		t.Errorf("corner pixel = %v, want background %v", p, bg)
	}
	if p := pixel(got, 40, 80); !near(p, pen, 8) {
		t.Errorf("frame pixel = %v, want pen %v", p, pen)
	}
}

func TestCanvasResizeClearsInk(t *testing.T) {
	c := NewCanvas()
	if err := c.Resize(200, 200); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}

	c.HandlePointerEvent(PointerDown, 100, 10)
	c.HandlePointerEvent(PointerMove, 130, 10)
	c.HandlePointerEvent(PointerUp, 130, 10)

	pen, bg := nrgba(c.Pen().Color), nrgba(c.Background())
	if p := pixel(renderFrame(t, c, 200, 200), 110, 10); !near(p, pen, 8) {
		t.Fatalf("ink pixel = %v, want pen %v", p, pen)
	}

	// Same dimensions twice in a row: safe, and both discard ink.
	for i := 0; i < 2; i++ {
		if err := c.Resize(200, 200); err != nil {
			t.Fatalf("Resize() #%d error = %v", i, err)
		}
		got := renderFrame(t, c, 200, 200)
		if p := pixel(got, 110, 10); p != bg {
			t.Errorf("after Resize #%d ink pixel = %v, want background %v", i, p, bg)
		}
		if !bytes.Equal(got.Data(), referenceFrame(t, c, 200, 200).Data()) {
			t.Errorf("after Resize #%d frame is not background + outline", i)
		}
	}
}

// TestCanvasDrawScenario follows one stroke from pointer down to pointer up
// on a 100x100 surface with the default 8px tolerance.
func TestCanvasDrawScenario(t *testing.T) {
	invalidations := 0
	c := NewCanvas(WithInvalidate(func() { invalidations++ }))
	if err := c.Resize(100, 100); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	invalidations = 0
	tr := c.Tracker()

	if !c.HandlePointerEvent(PointerDown, 10, 10) {
		t.Fatal("Down not consumed")
	}
	if invalidations != 0 {
		t.Errorf("Down requested %d repaints, want 0", invalidations)
	}

	// Zero delta: nothing committed.
	if !c.HandlePointerEvent(PointerMove, 10, 10) {
		t.Fatal("Move not consumed")
	}
	if invalidations != 0 {
		t.Errorf("discarded Move requested %d repaints, want 0", invalidations)
	}
	if n := len(tr.Path().Elements()); n != 1 {
		t.Errorf("path has %d elements after discarded Move, want 1", n)
	}
	bg := nrgba(c.Background())
	if p := pixel(renderFrame(t, c, 100, 100), 14, 10); p != bg {
		t.Errorf("pixel after discarded Move = %v, want background %v", p, bg)
	}

	// Delta 15 >= 8: one curve from (10,10) bending at (10,10) to (17.5,10).
	c.HandlePointerEvent(PointerMove, 25, 10)
	if invalidations != 1 {
		t.Errorf("accepted Move requested %d repaints, want 1", invalidations)
	}
	wantPath := []gg.PathElement{
		gg.MoveTo{Point: gg.Pt(10, 10)},
		gg.QuadTo{Control: gg.Pt(10, 10), Point: gg.Pt(17.5, 10)},
	}
	if diff := cmp.Diff(wantPath, tr.Path().Elements()); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
	if got, want := tr.Anchor(), gg.Pt(25, 10); got != want {
		t.Errorf("Anchor() = %v, want %v", got, want)
	}

	c.HandlePointerEvent(PointerUp, 25, 10)
	if n := len(tr.Path().Elements()); n != 0 {
		t.Errorf("path has %d elements after Up, want 0", n)
	}

	pen := nrgba(c.Pen().Color)
	if p := pixel(renderFrame(t, c, 100, 100), 14, 10); !near(p, pen, 8) {
		t.Errorf("ink pixel after Up = %v, want pen %v", p, pen)
	}
}

func TestCanvasStrokeIsolation(t *testing.T) {
	c := NewCanvas()
	if err := c.Resize(200, 200); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}

	c.HandlePointerEvent(PointerDown, 60, 20)
	c.HandlePointerEvent(PointerMove, 100, 20)
	c.HandlePointerEvent(PointerUp, 100, 20)
	before := renderFrame(t, c, 200, 200)
	snapshot := append([]byte(nil), before.Data()...)

	// The next stroke starts and ends without moving far enough to draw.
	c.HandlePointerEvent(PointerDown, 150, 150)
	c.HandlePointerEvent(PointerMove, 151, 151)
	c.HandlePointerEvent(PointerUp, 151, 151)

	after := renderFrame(t, c, 200, 200)
	if !bytes.Equal(snapshot, after.Data()) {
		t.Error("starting and ending a stroke altered previously committed ink")
	}
}

func TestCanvasDirty(t *testing.T) {
	c := NewCanvas()
	if c.IsDirty() {
		t.Error("new canvas is dirty")
	}
	if err := c.Resize(100, 100); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if !c.IsDirty() {
		t.Error("IsDirty() = false after Resize")
	}

	renderFrame(t, c, 100, 100)
	if c.IsDirty() {
		t.Error("IsDirty() = true after Render")
	}

	c.HandlePointerEvent(PointerDown, 10, 10)
	c.HandlePointerEvent(PointerMove, 12, 12)
	if c.IsDirty() {
		t.Error("discarded Move marked the canvas dirty")
	}
	c.HandlePointerEvent(PointerMove, 30, 30)
	if !c.IsDirty() {
		t.Error("accepted Move did not mark the canvas dirty")
	}

	if _, err := c.Snapshot(); err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if !c.IsDirty() {
		t.Error("Snapshot cleared the dirty flag")
	}
}

func TestCanvasCommitSegmentClamps(t *testing.T) {
	c := NewCanvas()
	if err := c.Resize(200, 200); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}

	p := gg.NewPath()
	p.MoveTo(-500, 100)
	p.QuadraticTo(-500, 100, 900, 100)
	if err := c.CommitSegment(p, c.Pen()); err != nil {
		t.Fatalf("CommitSegment() error = %v", err)
	}

	pen := nrgba(c.Pen().Color)
	pm := renderFrame(t, c, 200, 200)
	for _, x := range []int{2, 100, 197} {
		if got := pixel(pm, x, 100); !near(got, pen, 8) {
			t.Errorf("pixel (%d,100) = %v, want pen %v", x, got, pen)
		}
	}
}

func TestCanvasCommitSegmentNonFinite(t *testing.T) {
	c := NewCanvas()
	if err := c.Resize(100, 100); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	before := append([]byte(nil), renderFrame(t, c, 100, 100).Data()...)

	p := gg.NewPath()
	p.MoveTo(math.NaN(), 10)
	p.QuadraticTo(math.Inf(1), 10, 50, math.NaN())
	if err := c.CommitSegment(p, c.Pen()); err != nil {
		t.Fatalf("CommitSegment() error = %v", err)
	}
	if err := c.CommitSegment(nil, c.Pen()); err != nil {
		t.Fatalf("CommitSegment(nil) error = %v", err)
	}
	if err := c.CommitSegment(gg.NewPath(), c.Pen()); err != nil {
		t.Fatalf("CommitSegment(empty) error = %v", err)
	}

	if !bytes.Equal(before, renderFrame(t, c, 100, 100).Data()) {
		t.Error("non-finite path drew on the ink layer")
	}
}

func TestCanvasRenderNilTarget(t *testing.T) {
	c := NewCanvas()
	if err := c.Render(nil); !errors.Is(err, ErrNilTarget) {
		t.Errorf("Render(nil) error = %v, want ErrNilTarget", err)
	}
}

func TestCanvasRenderTargetSizeMismatch(t *testing.T) {
	c := NewCanvas(WithInset(0), WithStrokeWidth(2))
	if err := c.Resize(50, 50); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	bg := nrgba(c.Background())

	t.Run("larger target", func(t *testing.T) {
		dc := gg.NewContext(80, 80)
		defer func() { _ = dc.Close() }()
		dc.ClearWithColor(gg.Black)
		if err := c.Render(dc); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		pm := dc.ResizeTarget()
		if p := pixel(pm, 25, 25); p != bg {
			t.Errorf("pixel inside ink layer = %v, want background %v", p, bg)
		}
		if p, black := pixel(pm, 70, 70), nrgba(gg.Black); p != black {
			t.Errorf("pixel outside ink layer = %v, want untouched %v", p, black)
		}
	})

	t.Run("smaller target", func(t *testing.T) {
		dc := gg.NewContext(20, 20)
		defer func() { _ = dc.Close() }()
		if err := c.Render(dc); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if p := pixel(dc.ResizeTarget(), 10, 10); p != bg {
			t.Errorf("pixel = %v, want background %v", p, bg)
		}
	})
}

func TestCanvasSnapshot(t *testing.T) {
	c := NewCanvas()
	if err := c.Resize(120, 100); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	img, err := c.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if got, want := img.Bounds(), image.Rect(0, 0, 120, 100); got != want {
		t.Errorf("Snapshot().Bounds() = %v, want %v", got, want)
	}
	if !bytes.Equal(img.Pix, referenceFrame(t, c, 120, 100).Data()) {
		t.Error("Snapshot() differs from background + frame outline")
	}
}

func TestCanvasOnResize(t *testing.T) {
	c := NewCanvas()
	c.OnResize(0, 0, 0, 0)
	if w, h := c.Size(); w != 0 || h != 0 {
		t.Errorf("Size() = %dx%d after invalid OnResize, want 0x0", w, h)
	}
	c.OnResize(300, 200, 0, 0)
	if w, h := c.Size(); w != 300 || h != 200 {
		t.Errorf("Size() = %dx%d, want 300x200", w, h)
	}
}

func TestCanvasUnknownPointerKind(t *testing.T) {
	c := NewCanvas()
	if !c.OnPointerEvent(PointerKind(42), 1, 1) {
		t.Error("unknown event not consumed")
	}
	if c.Tracker().Active() {
		t.Error("unknown event started a stroke")
	}
}
