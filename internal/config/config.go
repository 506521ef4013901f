// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads inkpad settings from YAML and turns them into canvas
// options.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/gogpu/gg"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/inkpad"
)

// ErrInvalid is returned when a setting is out of range.
var ErrInvalid = errors.New("config: invalid setting")

// Config holds the user-adjustable canvas settings.
type Config struct {
	// Pen is the ink and frame color as #RGB, #RGBA, #RRGGBB or #RRGGBBAA.
	Pen string `yaml:"pen"`

	// Background fills the ink layer on every resize.
	Background string `yaml:"background"`

	// StrokeWidth is the pen width in pixels.
	StrokeWidth float64 `yaml:"strokeWidth"`

	// Inset is the frame distance from each surface edge in pixels.
	Inset int `yaml:"inset"`

	// Tolerance is the minimum per-axis move distance. Zero derives it from
	// the display density.
	Tolerance float64 `yaml:"tolerance"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Pen:         "#FFEB3B",
		Background:  "#FF5500",
		StrokeWidth: inkpad.DefaultStrokeWidth,
		Inset:       inkpad.DefaultInset,
	}
}

// Parse decodes YAML from r on top of the defaults. Keys missing from the
// document keep their default value.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the YAML file at path. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	if _, err := parseColor(c.Pen); err != nil {
		return fmt.Errorf("%w: pen: %w", ErrInvalid, err)
	}
	if _, err := parseColor(c.Background); err != nil {
		return fmt.Errorf("%w: background: %w", ErrInvalid, err)
	}
	if !(c.StrokeWidth > 0) || math.IsInf(c.StrokeWidth, 0) {
		return fmt.Errorf("%w: strokeWidth %v", ErrInvalid, c.StrokeWidth)
	}
	if c.Inset < 0 {
		return fmt.Errorf("%w: inset %d", ErrInvalid, c.Inset)
	}
	if !(c.Tolerance >= 0) || math.IsInf(c.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance %v", ErrInvalid, c.Tolerance)
	}
	return nil
}

// Options converts c into canvas options. scale is the display density used
// when Tolerance is zero. c must be valid.
func (c Config) Options(scale float64) []inkpad.Option {
	pen, _ := parseColor(c.Pen)
	bg, _ := parseColor(c.Background)

	tol := c.Tolerance
	if tol == 0 {
		tol = inkpad.TouchSlop(scale)
	}
	return []inkpad.Option{
		inkpad.WithPen(inkpad.Pen{Color: pen, Width: c.StrokeWidth}),
		inkpad.WithBackground(bg),
		inkpad.WithInset(c.Inset),
		inkpad.WithTolerance(tol),
	}
}

// parseColor accepts the hex forms understood by gg.Hex and rejects the rest,
// which gg.Hex would silently turn into black.
func parseColor(s string) (gg.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return gg.RGBA{}, fmt.Errorf("color %q: want #RGB, #RGBA, #RRGGBB or #RRGGBBAA", s)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return gg.RGBA{}, fmt.Errorf("color %q: bad hex digit %q", s, r)
		}
	}
	return gg.Hex(hex), nil
}
