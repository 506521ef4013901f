// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package host

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/inkpad"
)

// ErrInvalidScript is returned for scripts that cannot be replayed.
var ErrInvalidScript = errors.New("host: invalid script")

// kindResize is the script event kind that changes the surface size.
const kindResize = "resize"

// Script is a recorded input session for the headless runner.
type Script struct {
	Width  int           `yaml:"width"`
	Height int           `yaml:"height"`
	Events []ScriptEvent `yaml:"events"`
}

// ScriptEvent is one scripted input. Kind is down, move, up or resize.
// Pointer kinds use X and Y; resize uses Width and Height.
type ScriptEvent struct {
	Kind   string  `yaml:"kind"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	Width  int     `yaml:"width,omitempty"`
	Height int     `yaml:"height,omitempty"`
}

// ParseScript decodes and validates a YAML script.
func ParseScript(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidScript)
		}
		return nil, fmt.Errorf("host: decode script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScript reads a script from a file.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("host: open script: %w", err)
	}
	defer f.Close()

	s, err := ParseScript(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks the initial size and every event kind.
func (s *Script) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidScript, s.Width, s.Height)
	}
	for i, ev := range s.Events {
		if ev.isResize() {
			continue
		}
		if _, err := inkpad.ParsePointerKind(ev.Kind); err != nil {
			return fmt.Errorf("%w: event %d: %w", ErrInvalidScript, i, err)
		}
	}
	return nil
}

// isResize reports whether ev changes the surface size.
func (ev ScriptEvent) isResize() bool {
	return strings.EqualFold(strings.TrimSpace(ev.Kind), kindResize)
}
