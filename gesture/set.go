// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gesture

import (
	"time"

	"github.com/terraglobe/terraglobe/events"
)

// Set is the explicit recognizer registry and arbitration graph. It
// owns the "recognize simultaneously with" (symmetric) and "require to
// fail first" (asymmetric) relations, and enforces the per-modality
// exclusivity invariant: at most one touch-family recognizer and one
// mouse-family recognizer may be active concurrently, except where the
// simultaneous relation allows it.
//
// All recognizers registered on a Set are polled against every input
// event in registration order within a single dispatch pass; there is
// no parallelism, only per-event arbitration.
type Set struct {
	recognizers []*Recognizer

	simultaneous map[*Recognizer]map[*Recognizer]bool
	requireFail  map[*Recognizer][]*Recognizer

	// live input bookkeeping, for reset-on-release
	activeTouches map[events.Sequence]bool
	activeButtons int32

	now time.Time
}

// NewSet returns a new empty recognizer set.
func NewSet() *Set {
	return &Set{
		simultaneous:  map[*Recognizer]map[*Recognizer]bool{},
		requireFail:   map[*Recognizer][]*Recognizer{},
		activeTouches: map[events.Sequence]bool{},
	}
}

// Add registers a recognizer. Registration order is the polling order
// and therefore part of the deterministic precedence rules.
func (s *Set) Add(r *Recognizer) {
	s.recognizers = append(s.recognizers, r)
}

// Recognizers returns the registered recognizers in registration order.
func (s *Set) Recognizers() []*Recognizer { return s.recognizers }

// RecognizeWith declares that a and b may be active simultaneously.
// The relation is symmetric: recognizing one does not suppress the other.
func (s *Set) RecognizeWith(a, b *Recognizer) {
	if s.simultaneous[a] == nil {
		s.simultaneous[a] = map[*Recognizer]bool{}
	}
	if s.simultaneous[b] == nil {
		s.simultaneous[b] = map[*Recognizer]bool{}
	}
	s.simultaneous[a][b] = true
	s.simultaneous[b][a] = true
}

// RequireFailure declares that r may not activate until blocker has
// reached Failed. The relation is asymmetric.
func (s *Set) RequireFailure(r, blocker *Recognizer) {
	s.requireFail[r] = append(s.requireFail[r], blocker)
}

// mayActivate reports whether arbitration currently permits r to leave
// Possible: all of its must-fail-first blockers have failed, and no
// other active recognizer of an overlapping modality excludes it.
func (s *Set) mayActivate(r *Recognizer) bool {
	for _, b := range s.requireFail[r] {
		if b.state != Failed {
			return false
		}
	}
	for _, o := range s.recognizers {
		if o == r || !o.state.IsActive() {
			continue
		}
		if !o.Modality().Overlaps(r.Modality()) {
			continue
		}
		if !s.simultaneous[r][o] {
			return false
		}
	}
	return true
}

// blockerFailed is called whenever any recognizer fails, so that parked
// activation requests can be re-evaluated in the same dispatch pass.
func (s *Set) blockerFailed() {
	s.resolvePending()
}

func (s *Set) resolvePending() {
	for {
		progressed := false
		for _, r := range s.recognizers {
			if r.pending == Possible || r.state != Possible {
				continue
			}
			if !s.mayActivate(r) {
				continue
			}
			st := r.pending
			r.pending = Possible
			r.transition(st, s)
			progressed = true
		}
		if !progressed {
			return
		}
	}
}

// ProcessEvent dispatches one input event to every registered
// recognizer in registration order, then resolves arbitration. A
// recognizer reaching Began does not stop later recognizers from being
// polled on the same event.
func (s *Set) ProcessEvent(ev events.Event) {
	t := ev.Type()
	if !t.IsMouse() && !t.IsTouch() {
		if t == events.WindowPaint {
			s.Poll(ev.Time())
		}
		return
	}
	s.now = ev.Time()

	if t.IsDown() && len(s.activeTouches) == 0 && s.activeButtons == 0 {
		// a fresh input sequence: terminal recognizers from the
		// previous sequence return to Possible
		s.resetTerminal()
	}

	switch t {
	case events.TouchStart:
		s.activeTouches[ev.Touch()] = true
	case events.TouchEnd, events.TouchCancel:
		delete(s.activeTouches, ev.Touch())
	case events.MouseDown:
		s.activeButtons |= ev.MouseButton().Mask()
	case events.MouseUp:
		s.activeButtons &^= ev.MouseButton().Mask()
	}

	for _, r := range s.recognizers {
		r.handle(ev, s)
	}
	s.resolvePending()

	if t.IsUp() && len(s.activeTouches) == 0 && s.activeButtons == 0 {
		s.resetTerminal()
	}
}

// Poll expires pending delayed-failure deadlines (multi-tap /
// multi-click timers). Call once per frame from the event loop.
func (s *Set) Poll(now time.Time) {
	s.now = now
	for _, r := range s.recognizers {
		r.poll(now, s)
	}
	s.resolvePending()
}

// resetTerminal marks the boundary between input sequences: terminal
// recognizers return to Possible with everything cleared, and
// recognizers that stayed in Possible drop their motion bookkeeping so
// translation, velocity, and parked activations cannot leak into the
// next sequence. Multi-tap counters and their deadlines survive, since
// tap counting spans sequences.
func (s *Set) resetTerminal() {
	for _, r := range s.recognizers {
		if r.state.IsTerminal() {
			r.reset()
		} else if r.state == Possible {
			r.resetMotion()
		}
	}
}

// Reset forcibly resets every recognizer, regardless of state.
func (s *Set) Reset() {
	for _, r := range s.recognizers {
		r.reset()
	}
	s.activeTouches = map[events.Sequence]bool{}
	s.activeButtons = 0
}
