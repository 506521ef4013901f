// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !cgo

package window

import (
	"errors"

	"github.com/gogpu/inkpad/internal/host"
)

// Config controls the desktop window.
type Config struct {
	Title  string
	Width  int
	Height int
}

// DeviceScale returns 1 without a window backend.
func DeviceScale() float64 { return 1 }

// Run reports that window mode is unavailable in this build.
func Run(_ *host.Session, _ Config) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
