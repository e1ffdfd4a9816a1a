// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gesture implements the gesture-recognition system for the
// globe: a single finite-state-machine engine over a closed set of
// recognizer kinds (pan, drag, pinch, rotation, tilt, tap, click,
// fling), with external arbitration between recognizers via a [Set].
//
// Recognizers never call into each other: all coordination (the
// "recognize simultaneously with" and "require to fail first"
// relations, and per-modality exclusivity) happens in the Set, which
// polls every registered recognizer against the same input event in
// registration order.
package gesture

// State is the state of a gesture recognizer's finite state machine.
//
// Continuous gestures move Possible → Began → Changed* → Ended (or
// Cancelled). Discrete gestures (tap, click, fling) move Possible →
// Recognized in one step. Failed is entered when the gesture can no
// longer match (wrong input modality, threshold violated, timer
// expired). All terminal states reset to Possible once the last
// tracked touch or mouse button is released.
type State int32

const (
	// Possible is the initial state: the recognizer is observing
	// events but has not yet matched or failed.
	Possible State = iota

	// Began is entered when a continuous gesture's threshold is first
	// exceeded and arbitration permits it to activate.
	Began

	// Changed is re-entered on each update of an active continuous gesture.
	Changed

	// Ended is entered when an active continuous gesture completes normally.
	Ended

	// Cancelled is entered when an active continuous gesture is
	// aborted by the system (touch cancel).
	Cancelled

	// Failed is entered when the gesture cannot match this input
	// sequence. It persists until the sequence ends.
	Failed

	// Recognized is the one-shot terminal state of discrete gestures.
	Recognized

	StatesN
)

var stateNames = [StatesN]string{
	"Possible", "Began", "Changed", "Ended", "Cancelled", "Failed", "Recognized",
}

func (s State) String() string {
	if s < 0 || s >= StatesN {
		return "State(?)"
	}
	return stateNames[s]
}

// IsActive returns whether the recognizer currently owns an in-progress
// continuous gesture (Began or Changed).
func (s State) IsActive() bool {
	return s == Began || s == Changed
}

// IsTerminal returns whether the state is a terminal reset point:
// Ended, Cancelled, Failed, or Recognized.
func (s State) IsTerminal() bool {
	switch s {
	case Ended, Cancelled, Failed, Recognized:
		return true
	}
	return false
}

// Modality is the input device family a recognizer commits to.
// Receiving an event of the wrong modality while Possible fails the
// recognizer immediately.
type Modality int32

const (
	// ModalityAny accepts both mouse and touch input (fling).
	ModalityAny Modality = iota

	// ModalityMouse accepts only mouse input.
	ModalityMouse

	// ModalityTouch accepts only touch input.
	ModalityTouch
)

func (m Modality) String() string {
	switch m {
	case ModalityAny:
		return "Any"
	case ModalityMouse:
		return "Mouse"
	case ModalityTouch:
		return "Touch"
	}
	return "Modality(?)"
}

// Overlaps returns whether two modalities can contend for the same
// input family. ModalityAny overlaps everything.
func (m Modality) Overlaps(o Modality) bool {
	return m == ModalityAny || o == ModalityAny || m == o
}
