// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comp(nx, ny int, data []float32) Component {
	return Component{Header: GridHeader{Nx: nx, Ny: ny}, Data: data}
}

func TestNewFieldValidation(t *testing.T) {
	_, err := NewField(comp(0, 2, nil), comp(0, 2, nil))
	assert.Error(t, err)

	_, err = NewField(comp(4, 2, make([]float32, 8)), comp(4, 3, make([]float32, 12)))
	assert.Error(t, err)

	_, err = NewField(comp(4, 2, make([]float32, 7)), comp(4, 2, make([]float32, 8)))
	assert.Error(t, err)
}

func TestFieldRepackRotatesHalfWidth(t *testing.T) {
	u := []float32{
		10, 20, 30, 40,
		50, 60, 70, 80,
	}
	f, err := NewField(comp(4, 2, u), comp(4, 2, make([]float32, 8)))
	require.NoError(t, err)

	assert.Equal(t, float32(10), f.UMin)
	assert.Equal(t, float32(80), f.UMax)

	// each row rotated by width/2, then normalized to bytes over [10,80]
	wantR := []byte{73, 109, 0, 36, 219, 255, 146, 182}
	for i, want := range wantR {
		assert.Equal(t, want, f.Pixels[i*4], "texel %d", i)
		assert.Equal(t, byte(0), f.Pixels[i*4+2])
		assert.Equal(t, byte(255), f.Pixels[i*4+3])
	}
}

func TestFieldLookupBilinear(t *testing.T) {
	// after the half-width rotation the R row is [255, 0]
	f, err := NewField(comp(2, 1, []float32{0, 100}), comp(2, 1, []float32{0, 0}))
	require.NoError(t, err)

	n := f.Lookup(0.25, 0.5)
	assert.InDelta(t, 0.5, n.X, 1e-6)
	assert.InDelta(t, 0, n.Y, 1e-6)

	vel := f.Velocity(n)
	assert.InDelta(t, 50, vel.X, 1e-4)
	assert.InDelta(t, 0, vel.Y, 1e-4)

	assert.InDelta(t, 100, f.MaxSpeed(), 1e-4)
}

func TestFieldConstantComponent(t *testing.T) {
	u := []float32{7, 7, 7, 7}
	f, err := NewField(comp(2, 2, u), comp(2, 2, make([]float32, 4)))
	require.NoError(t, err)

	// a flat component normalizes to zero bytes and denormalizes back
	// to its constant value
	n := f.Lookup(0.3, 0.7)
	assert.Equal(t, float32(0), n.X)
	assert.Equal(t, float32(7), f.Velocity(n).X)
}
