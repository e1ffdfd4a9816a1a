// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"fmt"
	"image"

	"cogentcore.org/core/math32"
)

// ScrollWheelSpeed controls how fast the scroll wheel zooms the camera,
// in range-change factor per wheel step.
var ScrollWheelSpeed = float32(1)

// Buttons is a mouse button.
type Buttons int32

const (
	NoButton Buttons = iota
	Left
	Middle
	Right
	ButtonsN
)

func (b Buttons) String() string {
	switch b {
	case NoButton:
		return "NoButton"
	case Left:
		return "Left"
	case Middle:
		return "Middle"
	case Right:
		return "Right"
	}
	return "Buttons(?)"
}

// Mask returns the button as a bitmask bit, for tracking
// multiple simultaneously held buttons.
func (b Buttons) Mask() int32 {
	if b <= NoButton || b >= ButtonsN {
		return 0
	}
	return 1 << (b - 1)
}

// NewMouse returns a new mouse event of given type, button, and position.
func NewMouse(typ Types, but Buttons, where image.Point) *Base {
	ev := NewBase(typ, where)
	ev.SetUnique()
	ev.Button = but
	return ev
}

// NewMouseMove returns a new MouseMove event. Not unique.
func NewMouseMove(but Buttons, where, prev image.Point) *Base {
	ev := NewBase(MouseMove, where)
	ev.Button = but
	ev.Prev = prev
	return ev
}

// DeltaModes is the unit of a raw scroll wheel delta.
type DeltaModes int32

const (
	// DeltaPixel is a delta in display dots.
	DeltaPixel DeltaModes = iota

	// DeltaLine is a delta in lines (typical mouse wheel steps).
	DeltaLine

	// DeltaPage is a delta in whole pages.
	DeltaPage
)

// ScrollEvent is a scroll wheel event, recording the delta of the scroll.
type ScrollEvent struct {
	Base
}

// NewScroll returns a new Scroll event. Not unique: deltas are
// integrated during queue compression.
func NewScroll(where image.Point, delta math32.Vector2, mode DeltaModes) *ScrollEvent {
	ev := &ScrollEvent{}
	ev.Typ = Scroll
	ev.Where = where
	ev.Delta = delta
	ev.DeltaMode = mode
	ev.SetTime(ev.Tm)
	return ev
}

func (ev *ScrollEvent) String() string {
	return fmt.Sprintf("%v{Delta: %v, Pos: %v, Time: %v}", ev.Typ, ev.Delta, ev.Where, ev.Tm.Format("04:05.000"))
}
