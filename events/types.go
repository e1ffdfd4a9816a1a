// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

// Types determines the type of input event. The type encodes both the
// source device (mouse vs. touch) and the action, because the gesture
// recognizers commit exclusively to one input modality: a touch event
// delivered to a mouse-only recognizer fails it immediately, and vice
// versa. Unless otherwise noted, events are Unique and always delivered;
// non-unique events are subject to queue compression, where a pending
// undelivered event of the same type is replaced instead of appended.
type Types int32

const (
	// UnknownType is the zero value, an unknown event type.
	UnknownType Types = iota

	// MouseDown happens when a mouse button is pressed down.
	// See [Event.MouseButton] for which.
	MouseDown

	// MouseUp happens when a mouse button is released.
	MouseUp

	// MouseMove is sent when the mouse is moving, with or without a
	// button down. Not unique; Prev position is updated during compression.
	MouseMove

	// Scroll is for scroll wheel events. Not unique;
	// Delta is integrated during compression.
	Scroll

	// TouchStart is when a new touch sequence begins.
	// See [Event.Touch] for the sequence identifier.
	TouchStart

	// TouchMove is when an existing touch moves. Not unique;
	// compressed per touch sequence.
	TouchMove

	// TouchEnd is when a touch sequence ends normally.
	TouchEnd

	// TouchCancel is when a touch sequence is cancelled by the system
	// (e.g., the window loses the touch stream).
	TouchCancel

	// WindowPaint is sent once per display refresh to drive the
	// frame loop (fling animations, delayed-failure polling, redraw).
	// Not unique; at most one is pending at a time.
	WindowPaint

	TypesN
)

var typeNames = map[Types]string{
	UnknownType: "UnknownType",
	MouseDown:   "MouseDown",
	MouseUp:     "MouseUp",
	MouseMove:   "MouseMove",
	Scroll:      "Scroll",
	TouchStart:  "TouchStart",
	TouchMove:   "TouchMove",
	TouchEnd:    "TouchEnd",
	TouchCancel: "TouchCancel",
	WindowPaint: "WindowPaint",
}

func (t Types) String() string {
	if nm, ok := typeNames[t]; ok {
		return nm
	}
	return "Types(?)"
}

// IsMouse returns whether the event type originates from a mouse.
func (t Types) IsMouse() bool {
	switch t {
	case MouseDown, MouseUp, MouseMove:
		return true
	}
	return false
}

// IsTouch returns whether the event type originates from a touch surface.
func (t Types) IsTouch() bool {
	switch t {
	case TouchStart, TouchMove, TouchEnd, TouchCancel:
		return true
	}
	return false
}

// IsDown returns whether the event type is a press: MouseDown or TouchStart.
func (t Types) IsDown() bool {
	return t == MouseDown || t == TouchStart
}

// IsUp returns whether the event type is a release:
// MouseUp, TouchEnd, or TouchCancel.
func (t Types) IsUp() bool {
	return t == MouseUp || t == TouchEnd || t == TouchCancel
}
