// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package host drives an inkpad.View from a window or a headless runner.
//
// A Session owns what a host surface would: the current size, the render
// target the view draws into, and the single-pointer state machine that turns
// sampled button/touch state into Down, Move and Up events.
package host

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg"

	"github.com/gogpu/inkpad"
)

// ErrNoSurface is returned by Render before the first successful Resize.
var ErrNoSurface = errors.New("host: no surface")

// pointer is the last sampled state of the primary pointer.
type pointer struct {
	down bool
	x, y float64
}

// Session connects a view to a host surface.
// It is not safe for concurrent use.
type Session struct {
	view   inkpad.View
	target *gg.Context
	width  int
	height int
	ptr    pointer
	dirty  bool
}

// NewSession returns a session for v. Nothing is rendered until Resize.
func NewSession(v inkpad.View) *Session {
	return &Session{view: v, dirty: true}
}

// View returns the driven view.
func (s *Session) View() inkpad.View { return s.view }

// Size returns the current surface size.
func (s *Session) Size() (width, height int) { return s.width, s.height }

// Resize reports a surface size to the view. The view sees OnResize only when
// the size actually changes, together with the previous size. It returns
// whether the size changed.
func (s *Session) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if width == s.width && height == s.height {
		return false
	}
	oldW, oldH := s.width, s.height
	s.width, s.height = width, height

	if s.target == nil {
		s.target = gg.NewContext(width, height)
	} else if err := s.target.Resize(width, height); err != nil {
		inkpad.Logger().Warn("host: resize target", "err", err)
	}

	s.view.OnResize(width, height, oldW, oldH)
	s.dirty = true
	return true
}

// Pointer feeds one sample of the primary pointer. A press emits Down, a held
// pointer that changed position emits Move, and a release emits Up at the last
// pressed position.
func (s *Session) Pointer(pressed bool, x, y float64) {
	p := &s.ptr
	switch {
	case pressed && !p.down:
		p.down = true
		p.x, p.y = x, y
		s.Event(inkpad.PointerDown, x, y)
	case pressed && p.down:
		if x == p.x && y == p.y {
			return
		}
		p.x, p.y = x, y
		s.Event(inkpad.PointerMove, x, y)
	case !pressed && p.down:
		p.down = false
		s.Event(inkpad.PointerUp, p.x, p.y)
	}
}

// Pressed reports whether the primary pointer is currently down.
func (s *Session) Pressed() bool { return s.ptr.down }

// Event forwards a pointer event to the view.
func (s *Session) Event(kind inkpad.PointerKind, x, y float64) {
	s.view.OnPointerEvent(kind, x, y)
}

// Invalidate marks the surface as needing a new frame.
// It is suitable as the callback passed to inkpad.WithInvalidate.
func (s *Session) Invalidate() { s.dirty = true }

// Dirty reports whether a frame is pending.
func (s *Session) Dirty() bool { return s.dirty }

// Render draws a frame if one is pending and returns the target pixels.
// The boolean reports whether the pixels changed since the last call.
func (s *Session) Render() (*gg.Pixmap, bool, error) {
	if s.target == nil {
		return nil, false, ErrNoSurface
	}
	if !s.dirty {
		return s.target.ResizeTarget(), false, nil
	}
	if err := s.view.OnRender(s.target); err != nil {
		return nil, false, fmt.Errorf("host: render: %w", err)
	}
	if err := s.target.FlushGPU(); err != nil {
		return nil, false, fmt.Errorf("host: flush: %w", err)
	}
	s.dirty = false
	return s.target.ResizeTarget(), true, nil
}

// Close releases the render target.
func (s *Session) Close() error {
	if s.target == nil {
		return nil
	}
	err := s.target.Close()
	s.target = nil
	return err
}
