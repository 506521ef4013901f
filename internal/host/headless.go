// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package host

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"time"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/inkpad"
)

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	// Script is the input to replay. Required.
	Script *Script

	// Output receives the final frame as PNG. Nil skips encoding.
	Output io.Writer

	// Scale resizes the encoded frame. Zero or one keeps the surface size.
	Scale float64

	// Hz paces events at this rate. Zero replays as fast as possible.
	Hz int
}

// RunHeadless replays cfg.Script into s, renders the final frame and writes
// it to cfg.Output. Cancellation is checked between events.
func RunHeadless(ctx context.Context, s *Session, cfg HeadlessConfig) error {
	if cfg.Script == nil {
		return fmt.Errorf("%w: no script", ErrInvalidScript)
	}
	if err := cfg.Script.Validate(); err != nil {
		return err
	}
	if cfg.Hz < 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	var tick <-chan time.Time
	if cfg.Hz > 0 {
		t := time.NewTicker(time.Second / time.Duration(cfg.Hz))
		defer t.Stop()
		tick = t.C
	}

	log := inkpad.Logger()
	s.Resize(cfg.Script.Width, cfg.Script.Height)
	for i, ev := range cfg.Script.Events {
		if err := ctx.Err(); err != nil {
			return err
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}
		if err := replay(s, ev); err != nil {
			return fmt.Errorf("host: event %d: %w", i, err)
		}
	}
	log.Info("host: script replayed", "events", len(cfg.Script.Events))

	pm, _, err := s.Render()
	if err != nil {
		return err
	}
	if cfg.Output == nil {
		return nil
	}
	return EncodePNG(cfg.Output, pm, cfg.Scale)
}

func replay(s *Session, ev ScriptEvent) error {
	if ev.isResize() {
		s.Resize(ev.Width, ev.Height)
		return nil
	}
	kind, err := inkpad.ParsePointerKind(ev.Kind)
	if err != nil {
		return err
	}
	s.Event(kind, ev.X, ev.Y)
	return nil
}

// EncodePNG writes pm to w as PNG, resampled by scale. Upscaling uses
// nearest neighbor so pixels stay inspectable; downscaling is bilinear.
func EncodePNG(w io.Writer, pm *gg.Pixmap, scale float64) error {
	if pm == nil {
		return errors.New("host: nil pixmap")
	}
	var img image.Image = pm.ToImage()
	if scale > 0 && scale != 1 && !math.IsInf(scale, 0) {
		img = resample(img, scale)
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("host: encode png: %w", err)
	}
	return nil
}

func resample(src image.Image, scale float64) image.Image {
	b := src.Bounds()
	dw := max(1, int(math.Round(float64(b.Dx())*scale)))
	dh := max(1, int(math.Round(float64(b.Dy())*scale)))
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))

	var interp xdraw.Interpolator = xdraw.ApproxBiLinear
	if scale > 1 {
		interp = xdraw.NearestNeighbor
	}
	interp.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}
