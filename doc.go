// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package inkpad is a freehand drawing surface built on gg.
//
// # Overview
//
// A user drags a pointer across the surface; each drag becomes a stroke of
// smoothed quadratic curves that is rasterized once into a persistent ink
// layer and never replayed. Every repaint copies the ink layer and strokes a
// decorative frame on top of it.
//
// # Quick Start
//
//	c := inkpad.NewCanvas()
//	_ = c.Resize(800, 600)
//
//	c.HandlePointerEvent(inkpad.PointerDown, 100, 100)
//	c.HandlePointerEvent(inkpad.PointerMove, 140, 120)
//	c.HandlePointerEvent(inkpad.PointerUp, 140, 120)
//
//	dc := gg.NewContext(800, 600)
//	_ = c.Render(dc)
//	_ = dc.SavePNG("ink.png")
//
// # Components
//
//   - Tracker: pointer events to curve segments, with jitter tolerance
//   - Canvas: ink layer, frame and compositing; implements View
//   - View: the callbacks a host adapter drives (resize, render, pointer)
//
// # Threading
//
// Everything is synchronous and single-threaded. A host delivers pointer
// events, size changes and render requests from one goroutine.
//
// # Coordinate System
//
// Surface pixels with the origin at the top-left corner, X to the right and
// Y down, as in gg.
package inkpad
