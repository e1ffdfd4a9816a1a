// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package settings loads and saves the viewer configuration as a TOML
// file in the user config directory: window geometry, navigation
// behavior, and particle-layer tuning.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/terraglobe/terraglobe/events"
	"github.com/terraglobe/terraglobe/gesture"
	"github.com/terraglobe/terraglobe/nav"
	"github.com/terraglobe/terraglobe/particle"
)

// Window configures the application window.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// Navigation configures the camera controller.
type Navigation struct {
	// ArcBall selects the orbit camera over the first-person camera.
	ArcBall bool `toml:"arc-ball"`

	// KeepNorthUp locks the heading to north except during rotation.
	KeepNorthUp bool `toml:"keep-north-up"`

	// ZoomToPointer moves the look-at point toward the pointer while
	// zooming in.
	ZoomToPointer bool `toml:"zoom-to-pointer"`

	// Mode2D pans the surface flat instead of rotating the sphere.
	Mode2D bool `toml:"mode-2d"`

	// ScrollWheelSpeed scales zoom per wheel step.
	ScrollWheelSpeed float32 `toml:"scroll-wheel-speed"`
}

// Gesture configures recognizer thresholds and fling durations.
type Gesture struct {
	// InterpretDistance is the movement, in dots, a drag must exceed
	// before it is interpreted as a pan or drag gesture.
	InterpretDistance float32 `toml:"interpret-distance"`

	// MaxTapDistance is how far a press may wander, in dots, and still
	// count as a tap.
	MaxTapDistance float32 `toml:"max-tap-distance"`

	// MinFlingSpeed is the release speed, in dots per second, below
	// which no fling starts.
	MinFlingSpeed float32 `toml:"min-fling-speed"`

	// PanFlingMs and ZoomFlingMs are the fling animation durations in
	// milliseconds.
	PanFlingMs  int `toml:"pan-fling-ms"`
	ZoomFlingMs int `toml:"zoom-fling-ms"`
}

// Particles configures the wind particle layer.
type Particles struct {
	Count              int     `toml:"count"`
	FadeOpacity        float32 `toml:"fade-opacity"`
	SpeedFactor        float32 `toml:"speed-factor"`
	DropRate           float32 `toml:"drop-rate"`
	DropRateMultiplier float32 `toml:"drop-rate-multiplier"`
}

// Settings is the root of the viewer configuration file.
type Settings struct {
	Window     Window     `toml:"window"`
	Navigation Navigation `toml:"navigation"`
	Gesture    Gesture    `toml:"gesture"`
	Particles  Particles  `toml:"particles"`
}

// Defaults returns the stock configuration.
func Defaults() *Settings {
	return &Settings{
		Window: Window{Width: 1280, Height: 800, Title: "Terraglobe"},
		Navigation: Navigation{
			ArcBall:          true,
			KeepNorthUp:      true,
			ZoomToPointer:    true,
			ScrollWheelSpeed: 1,
		},
		Gesture: Gesture{
			InterpretDistance: gesture.DefaultInterpretDistance,
			MaxTapDistance:    gesture.DefaultMaxTapDistance,
			MinFlingSpeed:     gesture.DefaultMinFlingSpeed,
			PanFlingMs:        int(nav.PanFlingDuration / time.Millisecond),
			ZoomFlingMs:       int(nav.ZoomFlingDuration / time.Millisecond),
		},
		Particles: Particles{
			Count:              65536,
			FadeOpacity:        0.996,
			SpeedFactor:        0.25,
			DropRate:           0.003,
			DropRateMultiplier: 0.01,
		},
	}
}

// Path returns the standard settings file location under the user
// config directory.
func Path() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "terraglobe", "settings.toml")
}

// Open reads settings from the given file, layered over the defaults
// so absent keys keep their stock values. A missing file returns the
// defaults without error; a malformed file is an error.
func Open(path string) (*Settings, error) {
	s := Defaults()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("settings: %w", err)
	}
	if err := toml.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("settings: parse %s: %w", path, err)
	}
	return s, nil
}

// Save writes the settings to the given file, creating parent
// directories as needed.
func (s *Settings) Save(path string) error {
	b, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	return nil
}

// NavOptions converts the navigation and gesture sections to controller
// options and applies the global scroll speed.
func (s *Settings) NavOptions() nav.Options {
	events.ScrollWheelSpeed = s.Navigation.ScrollWheelSpeed
	return nav.Options{
		ArcBall:       s.Navigation.ArcBall,
		KeepNorthUp:   s.Navigation.KeepNorthUp,
		ZoomToPointer: s.Navigation.ZoomToPointer,
		Mode2D:        s.Navigation.Mode2D,
		Gesture: gesture.Config{
			InterpretDistance: s.Gesture.InterpretDistance,
			MaxTapDistance:    s.Gesture.MaxTapDistance,
			MinFlingSpeed:     s.Gesture.MinFlingSpeed,
		},
		PanFlingDuration:  time.Duration(s.Gesture.PanFlingMs) * time.Millisecond,
		ZoomFlingDuration: time.Duration(s.Gesture.ZoomFlingMs) * time.Millisecond,
	}
}

// ParticleConfig converts the particle section to a pipeline config
// sized for the given drawable.
func (s *Settings) ParticleConfig(w, h int) particle.Config {
	return particle.Config{
		NumParticles:       s.Particles.Count,
		Width:              w,
		Height:             h,
		FadeOpacity:        s.Particles.FadeOpacity,
		SpeedFactor:        s.Particles.SpeedFactor,
		DropRate:           s.Particles.DropRate,
		DropRateMultiplier: s.Particles.DropRateMultiplier,
	}
}
