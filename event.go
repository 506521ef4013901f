// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package inkpad

import (
	"fmt"
	"strings"

	"github.com/gogpu/gg"
)

// PointerKind is the kind of a pointer event delivered by the host.
type PointerKind int

const (
	// PointerDown starts a stroke.
	PointerDown PointerKind = iota + 1
	// PointerMove extends the active stroke.
	PointerMove
	// PointerUp ends the active stroke.
	PointerUp
)

// String returns the lower-case name of the kind.
func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return fmt.Sprintf("PointerKind(%d)", int(k))
	}
}

// ParsePointerKind parses "down", "move" or "up" (case-insensitive).
func ParsePointerKind(s string) (PointerKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "down":
		return PointerDown, nil
	case "move":
		return PointerMove, nil
	case "up":
		return PointerUp, nil
	}
	return 0, fmt.Errorf("inkpad: unknown pointer kind %q", s)
}

// View is the set of callbacks a host adapter drives. The host owns the
// window or event source; the view owns all drawing state.
//
// Implementations are not required to be safe for concurrent use. Hosts
// deliver every callback from a single goroutine.
type View interface {
	// OnResize reports a surface size change.
	OnResize(width, height, oldWidth, oldHeight int)

	// OnRender paints the current visible frame into dc.
	OnRender(dc *gg.Context) error

	// OnPointerEvent delivers one pointer event and reports whether it was
	// consumed.
	OnPointerEvent(kind PointerKind, x, y float64) bool
}
