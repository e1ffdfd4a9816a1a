// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the input events consumed by the globe
// navigation and gesture-recognition system: mouse, touch, and scroll
// wheel events, with a compressing queue for frame-driven dispatch.
package events

import (
	"fmt"
	"image"
	"time"

	"cogentcore.org/core/math32"
)

// Event is the interface for all input events. All events are backed
// by the same [Base] type and differ only in which fields are relevant
// for their [Types].
type Event interface {
	fmt.Stringer

	// Type returns the type of the event.
	Type() Types

	// AsBase returns the underlying [Base] event.
	AsBase() *Base

	// Pos returns the screen position of the event, in raw display dots.
	Pos() image.Point

	// Time returns the time at which the event was generated.
	Time() time.Time

	// IsHandled returns whether a listener has already handled the event.
	IsHandled() bool

	// SetHandled marks the event as handled, stopping further dispatch.
	SetHandled()

	// IsUnique returns whether the event is exempt from queue compression.
	IsUnique() bool

	// MouseButton returns the mouse button for mouse events,
	// and NoButton otherwise.
	MouseButton() Buttons

	// Touch returns the touch sequence identifier for touch events.
	Touch() Sequence

	// ScrollDelta returns the scroll delta for Scroll events.
	ScrollDelta() math32.Vector2
}

// Sequence identifies a particular touch throughout its lifetime:
// all events for a given press / move / release sequence carry
// the same Sequence value.
type Sequence int64

// Base is the base event type, used directly for most event types.
type Base struct {
	// Typ is the type of the event.
	Typ Types

	// Where is the screen position of the event, in raw display dots.
	Where image.Point

	// Prev is the previous position for move / drag events.
	Prev image.Point

	// Tm is the time at which the event was generated.
	Tm time.Time

	// Button is the mouse button involved, for mouse events.
	Button Buttons

	// Seq is the touch sequence identifier, for touch events.
	Seq Sequence

	// Delta is the amount of scrolling in each axis, for Scroll events,
	// always in pixel/dot units after [DeltaModes] conversion.
	Delta math32.Vector2

	// DeltaMode is the unit of the original scroll delta.
	DeltaMode DeltaModes

	handled bool
	unique  bool
}

// NewBase returns a new basic event of given type at given position.
func NewBase(typ Types, where image.Point) *Base {
	ev := &Base{Typ: typ, Where: where}
	ev.Tm = time.Now()
	return ev
}

func (ev *Base) Type() Types        { return ev.Typ }
func (ev *Base) AsBase() *Base      { return ev }
func (ev *Base) Pos() image.Point   { return ev.Where }
func (ev *Base) Time() time.Time    { return ev.Tm }
func (ev *Base) IsHandled() bool    { return ev.handled }
func (ev *Base) SetHandled()        { ev.handled = true }
func (ev *Base) IsUnique() bool     { return ev.unique }
func (ev *Base) SetUnique()         { ev.unique = true }
func (ev *Base) MouseButton() Buttons { return ev.Button }
func (ev *Base) Touch() Sequence    { return ev.Seq }

func (ev *Base) ScrollDelta() math32.Vector2 { return ev.Delta }

// SetTime sets the event time to the given time,
// or to time.Now() if zero.
func (ev *Base) SetTime(t time.Time) {
	if t.IsZero() {
		t = time.Now()
	}
	ev.Tm = t
}

// StartDelta returns the total position change from Prev to Where.
func (ev *Base) StartDelta() image.Point {
	return ev.Where.Sub(ev.Prev)
}

func (ev *Base) String() string {
	return fmt.Sprintf("%v{Pos: %v, Time: %v}", ev.Typ, ev.Where, ev.Tm.Format("04:05.000"))
}
