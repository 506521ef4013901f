// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command inkpad is a freehand drawing pad.
//
// By default it opens a window; drag with the left mouse button or a finger
// to draw. With -headless it replays a YAML event script and writes the final
// frame as PNG.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/inkpad"
	"github.com/gogpu/inkpad/internal/config"
	"github.com/gogpu/inkpad/internal/host"
	"github.com/gogpu/inkpad/internal/window"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML settings file")
		headless   = flag.Bool("headless", false, "replay -script without a window")
		scriptPath = flag.String("script", "", "YAML event script for -headless")
		output     = flag.String("out", "inkpad.png", "PNG output in headless mode (- for stdout)")
		scale      = flag.Float64("scale", 1, "output scale in headless mode")
		hz         = flag.Int("hz", 0, "event rate in headless mode (0 = as fast as possible)")
		width      = flag.Int("width", 640, "initial window width")
		height     = flag.Int("height", 480, "initial window height")
		verbose    = flag.Bool("v", false, "log every pointer event")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	inkpad.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}

	if *headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := runHeadless(ctx, cfg, *scriptPath, *output, *scale, *hz); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fatal(err)
		}
		return
	}

	s := newSession(cfg, window.DeviceScale())
	defer func() { _ = s.Close() }()
	if err := window.Run(s, window.Config{Title: "inkpad", Width: *width, Height: *height}); err != nil {
		fatal(err)
	}
}

// newSession builds a canvas from cfg and a session that repaints on the
// canvas's invalidations.
func newSession(cfg config.Config, density float64) *host.Session {
	var s *host.Session
	opts := append(cfg.Options(density), inkpad.WithInvalidate(func() { s.Invalidate() }))
	s = host.NewSession(inkpad.NewCanvas(opts...))
	return s
}

func runHeadless(ctx context.Context, cfg config.Config, scriptPath, output string, scale float64, hz int) error {
	if scriptPath == "" {
		return errors.New("-headless requires -script")
	}
	script, err := host.LoadScript(scriptPath)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	s := newSession(cfg, 1)
	defer func() { _ = s.Close() }()
	if err := host.RunHeadless(ctx, s, host.HeadlessConfig{
		Script: script,
		Output: w,
		Scale:  scale,
		Hz:     hz,
	}); err != nil {
		return err
	}
	if output != "-" {
		inkpad.Logger().Info("frame written", "path", output)
	}
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
