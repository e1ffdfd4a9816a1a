// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gesture

// Kind is the closed set of gesture recognizer kinds. All kinds share
// the one [Recognizer] engine; kind-specific interpretation lives in
// pure predicate functions keyed by Kind.
type Kind int32

const (
	// Drag is a mouse press-and-move gesture with a configured button.
	Drag Kind = iota

	// Pan is the touch equivalent of Drag: one or more touches
	// translating beyond the interpret distance.
	Pan

	// Pinch is a two-touch scale gesture.
	Pinch

	// Rotation is a two-touch angular gesture.
	Rotation

	// Tilt is a touch gesture interpreted from vertical translation only.
	Tilt

	// Tap is a discrete, brief touch, possibly requiring multiple taps.
	Tap

	// Click is the mouse equivalent of Tap.
	Click

	// Fling is a discrete gesture recognized on release with residual
	// velocity, following a Pan or Drag.
	Fling

	KindsN
)

var kindNames = [KindsN]string{
	"Drag", "Pan", "Pinch", "Rotation", "Tilt", "Tap", "Click", "Fling",
}

func (k Kind) String() string {
	if k < 0 || k >= KindsN {
		return "Kind(?)"
	}
	return kindNames[k]
}

// Modality returns the input modality the kind commits to.
func (k Kind) Modality() Modality {
	switch k {
	case Drag, Click:
		return ModalityMouse
	case Fling:
		return ModalityAny
	}
	return ModalityTouch
}

// IsDiscrete returns whether the kind recognizes in one shot
// (Recognized) rather than running a Began/Changed/Ended sequence.
func (k Kind) IsDiscrete() bool {
	switch k {
	case Tap, Click, Fling:
		return true
	}
	return false
}
