// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terraglobe/terraglobe/gesture"
)

func TestOpenMissingReturnsDefaults(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestSaveOpenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "settings.toml")

	s := Defaults()
	s.Window.Width = 640
	s.Navigation.KeepNorthUp = false
	s.Particles.Count = 1024
	require.NoError(t, s.Save(path))

	got, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestOpenLayersOverDefaults(t *testing.T) {
	// a partial file keeps stock values for absent keys
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("[particles]\ncount = 9\n"), 0o644))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 9, s.Particles.Count)
	assert.Equal(t, float32(0.996), s.Particles.FadeOpacity)
	assert.Equal(t, 1280, s.Window.Width)
}

func TestOpenMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("window = {"), 0o644))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestNavOptions(t *testing.T) {
	s := Defaults()
	s.Navigation.Mode2D = true
	opts := s.NavOptions()
	assert.True(t, opts.ArcBall)
	assert.True(t, opts.Mode2D)
}

func TestNavOptionsGestureTuning(t *testing.T) {
	s := Defaults()
	s.Gesture.InterpretDistance = 35
	s.Gesture.MaxTapDistance = 12
	s.Gesture.MinFlingSpeed = 80
	s.Gesture.PanFlingMs = 900
	s.Gesture.ZoomFlingMs = 120

	opts := s.NavOptions()
	assert.Equal(t, float32(35), opts.Gesture.InterpretDistance)
	assert.Equal(t, float32(12), opts.Gesture.MaxTapDistance)
	assert.Equal(t, float32(80), opts.Gesture.MinFlingSpeed)
	assert.Equal(t, 900*time.Millisecond, opts.PanFlingDuration)
	assert.Equal(t, 120*time.Millisecond, opts.ZoomFlingDuration)
}

func TestGestureDefaultsMatchPackages(t *testing.T) {
	s := Defaults()
	assert.Equal(t, gesture.DefaultInterpretDistance, s.Gesture.InterpretDistance)
	assert.Equal(t, 1500, s.Gesture.PanFlingMs)
	assert.Equal(t, 500, s.Gesture.ZoomFlingMs)
}

func TestParticleConfig(t *testing.T) {
	cfg := Defaults().ParticleConfig(800, 600)
	assert.Equal(t, 65536, cfg.NumParticles)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	require.NoError(t, cfg.Validate())
}
