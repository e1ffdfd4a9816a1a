// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gesture

import (
	"time"

	"cogentcore.org/core/math32"
	"github.com/terraglobe/terraglobe/events"
)

// touchPoint is the per-touch bookkeeping for one tracked touch.
type touchPoint struct {
	seq events.Sequence
	pos math32.Vector2
}

// Recognizer is the single gesture finite-state-machine engine,
// parameterized by [Kind]. It tracks pointer / touch / mouse state,
// cumulative translation, and the FSM state; kind-specific
// interpretation is in the predicate functions below.
//
// A Recognizer is pure with respect to all other recognizers: it never
// reads or mutates another recognizer. Arbitration between recognizers
// is entirely the business of the owning [Set].
type Recognizer struct {
	kind Kind
	cfg  Config

	state State

	// touch bookkeeping, in arrival order
	touches []touchPoint

	// bitmask of held mouse buttons
	buttons int32

	// translation anchor: translation = base + centroid - ref.
	// Re-anchored whenever the set of tracked inputs changes, so that
	// adding or removing a touch does not jump the translation.
	ref         math32.Vector2
	base        math32.Vector2
	translation math32.Vector2

	// pinch / rotation reference geometry at gesture start
	startSpan  float32
	startAngle float32
	scale      float32
	rotation   float32

	// tap / click counting
	taps     int
	clicks   int
	downTime time.Time
	downPos  math32.Vector2

	// delayed-failure deadline for multi-tap / multi-click; zero = unarmed.
	// Expired by [Set.Poll] from the frame loop.
	failAfter time.Time

	// release-velocity estimate, in dots per second
	velocity math32.Vector2
	lastPos  math32.Vector2
	lastTime time.Time
	tracking bool

	// arbitration wants this recognizer to transition but a blocker has
	// not failed yet; resolved by the Set when blockers fail.
	pending State

	callback func(*Recognizer)
}

// New returns a new recognizer of the given kind. Zero config fields
// take kind-appropriate defaults; invalid (negative) thresholds are
// rejected here, at construction.
func New(k Kind, cfg Config) (*Recognizer, error) {
	cfg.Defaults(k)
	if err := cfg.Validate(k); err != nil {
		return nil, err
	}
	r := &Recognizer{kind: k, cfg: cfg, callback: cfg.Callback}
	r.resetValues()
	return r, nil
}

// Kind returns the recognizer's gesture kind.
func (r *Recognizer) Kind() Kind { return r.kind }

// State returns the current FSM state.
func (r *Recognizer) State() State { return r.state }

// Config returns the recognizer's configuration.
func (r *Recognizer) Config() *Config { return &r.cfg }

// Translation returns the cumulative translation since the gesture
// anchor, in display dots.
func (r *Recognizer) Translation() math32.Vector2 { return r.translation }

// Location returns the current centroid of tracked touches, or the
// last mouse position.
func (r *Recognizer) Location() math32.Vector2 {
	if len(r.touches) > 0 {
		return r.centroid()
	}
	return r.lastPos
}

// StartLocation returns the location at the current anchor point.
func (r *Recognizer) StartLocation() math32.Vector2 { return r.ref }

// Scale returns the pinch scale ratio relative to gesture start (1 = none).
func (r *Recognizer) Scale() float32 { return r.scale }

// Rotation returns the angular delta relative to gesture start, in degrees.
func (r *Recognizer) Rotation() float32 { return r.rotation }

// Velocity returns the most recent movement velocity, in dots per
// second; for a Recognized fling this is the release velocity.
func (r *Recognizer) Velocity() math32.Vector2 { return r.velocity }

// Taps returns the number of qualifying taps counted so far.
func (r *Recognizer) Taps() int { return r.taps }

// Clicks returns the number of qualifying clicks counted so far.
func (r *Recognizer) Clicks() int { return r.clicks }

// TouchCount returns the number of currently tracked touches.
func (r *Recognizer) TouchCount() int { return len(r.touches) }

// Modality returns the input modality this recognizer commits to.
func (r *Recognizer) Modality() Modality { return r.kind.Modality() }

func (r *Recognizer) resetValues() {
	r.touches = r.touches[:0]
	r.buttons = 0
	r.ref = math32.Vector2{}
	r.base = math32.Vector2{}
	r.translation = math32.Vector2{}
	r.startSpan = 0
	r.startAngle = 0
	r.scale = 1
	r.rotation = 0
	r.taps = 0
	r.clicks = 0
	r.failAfter = time.Time{}
	r.velocity = math32.Vector2{}
	r.tracking = false
	r.pending = Possible
}

// reset returns the recognizer to Possible and clears all bookkeeping,
// cancelling any delayed-failure deadline.
func (r *Recognizer) reset() {
	r.state = Possible
	r.resetValues()
}

// resetMotion clears the per-sequence motion bookkeeping of a
// recognizer that stayed in Possible through a whole input sequence:
// cumulative translation and its anchor, pinch / rotation reference
// geometry, the velocity tracker, and any parked activation. The
// tap / click counters, their reference positions, and the
// delayed-failure deadline are preserved, because multi-tap counting
// spans input sequences.
func (r *Recognizer) resetMotion() {
	r.touches = r.touches[:0]
	r.buttons = 0
	r.ref = math32.Vector2{}
	r.base = math32.Vector2{}
	r.translation = math32.Vector2{}
	r.startSpan = 0
	r.startAngle = 0
	r.scale = 1
	r.rotation = 0
	r.velocity = math32.Vector2{}
	r.tracking = false
	r.pending = Possible
}

func (r *Recognizer) transition(st State, s *Set) {
	r.state = st
	if st.IsTerminal() {
		r.failAfter = time.Time{}
		r.pending = Possible
	}
	if r.callback != nil {
		r.callback(r)
	}
	if st == Failed && s != nil {
		s.blockerFailed()
	}
}

// request asks the Set for permission to enter st (Began or
// Recognized). If a must-fail-first blocker or the modality exclusivity
// rule stands in the way, the request is parked and re-evaluated when a
// blocker fails.
func (r *Recognizer) request(st State, s *Set) {
	if s != nil && !s.mayActivate(r) {
		r.pending = st
		return
	}
	r.transition(st, s)
}

func (r *Recognizer) centroid() math32.Vector2 {
	var c math32.Vector2
	if len(r.touches) == 0 {
		return c
	}
	for _, t := range r.touches {
		c = c.Add(t.pos)
	}
	return c.DivScalar(float32(len(r.touches)))
}

// anchor re-references translation at the given point, preserving the
// accumulated translation so far.
func (r *Recognizer) anchor(p math32.Vector2) {
	r.base = r.translation
	r.ref = p
}

func (r *Recognizer) updateTranslation(p math32.Vector2) {
	r.translation = r.base.Add(p.Sub(r.ref))
}

func (r *Recognizer) updateVelocity(p math32.Vector2, t time.Time) {
	if r.tracking {
		dt := float32(t.Sub(r.lastTime).Seconds())
		if dt > 0 {
			r.velocity = p.Sub(r.lastPos).DivScalar(dt)
		}
	}
	r.lastPos = p
	r.lastTime = t
	r.tracking = true
}

// wrongModality reports whether the event comes from a device this
// recognizer does not commit to.
func (r *Recognizer) wrongModality(t events.Types) bool {
	switch r.Modality() {
	case ModalityMouse:
		return t.IsTouch()
	case ModalityTouch:
		return t.IsMouse()
	}
	return false
}

// handle is the single entry point for input events, called by the Set
// for every event in registration order.
func (r *Recognizer) handle(ev events.Event, s *Set) {
	t := ev.Type()
	if !t.IsMouse() && !t.IsTouch() {
		return
	}
	if r.wrongModality(t) {
		// exclusive modality commitment: the wrong device family
		// fails a Possible recognizer outright
		if r.state == Possible {
			r.transition(Failed, s)
		}
		return
	}
	pos := math32.FromPoint(ev.Pos())
	switch t {
	case events.TouchStart:
		r.touchStart(ev.Touch(), pos, ev.Time(), s)
	case events.TouchMove:
		r.touchMove(ev.Touch(), pos, ev.Time(), s)
	case events.TouchEnd:
		r.touchEnd(ev.Touch(), pos, ev.Time(), s, false)
	case events.TouchCancel:
		r.touchEnd(ev.Touch(), pos, ev.Time(), s, true)
	case events.MouseDown:
		r.mouseDown(ev.MouseButton(), pos, ev.Time(), s)
	case events.MouseMove:
		r.mouseMove(pos, ev.Time(), s)
	case events.MouseUp:
		r.mouseUp(ev.MouseButton(), pos, ev.Time(), s)
	}
}

func (r *Recognizer) touchStart(seq events.Sequence, pos math32.Vector2, tm time.Time, s *Set) {
	r.touches = append(r.touches, touchPoint{seq: seq, pos: pos})
	r.anchor(r.centroid())
	r.updateVelocity(pos, tm)
	n := len(r.touches)

	if r.cfg.MaxTouches > 0 && n > r.cfg.MaxTouches {
		if r.state == Possible {
			r.transition(Failed, s)
		}
		return
	}

	switch r.kind {
	case Pinch, Rotation:
		if n == 2 {
			r.startSpan = r.span()
			r.startAngle = r.angle()
		} else if n > 2 && r.state == Possible {
			// re-reference so a third touch doesn't spike the ratio
			r.startSpan = r.span()
			r.startAngle = r.angle()
		}
	case Tap:
		if n > 1 {
			if r.state == Possible {
				r.transition(Failed, s)
			}
			return
		}
		if r.taps == 0 {
			r.downPos = pos
		} else if pos.Sub(r.downPos).Length() > r.cfg.MaxTapDistance {
			r.transition(Failed, s)
			return
		}
		r.downTime = tm
		if r.cfg.Taps > 1 {
			r.failAfter = tm.Add(r.cfg.MaxTapInterval)
		}
	case Pan:
		if r.taps == 0 {
			r.downPos = pos
		}
		r.downTime = tm
	}
}

func (r *Recognizer) touchMove(seq events.Sequence, pos math32.Vector2, tm time.Time, s *Set) {
	found := false
	for i := range r.touches {
		if r.touches[i].seq == seq {
			r.touches[i].pos = pos
			found = true
			break
		}
	}
	if !found {
		return
	}
	c := r.centroid()
	r.updateTranslation(c)
	r.updateVelocity(c, tm)

	switch r.kind {
	case Pan, Tilt:
		r.continuousMove(s)
	case Pinch:
		if len(r.touches) >= 2 && r.startSpan > 0 {
			r.scale = r.span() / r.startSpan
			if r.state.IsActive() {
				r.transition(Changed, s)
			} else if r.state == Possible && r.scale != 1 {
				r.request(Began, s)
			}
		}
	case Rotation:
		if len(r.touches) >= 2 {
			r.rotation = normDegrees(math32.RadToDeg(r.angle() - r.startAngle))
			if r.state.IsActive() {
				r.transition(Changed, s)
			} else if r.state == Possible && r.rotation != 0 {
				r.request(Began, s)
			}
		}
	case Tap:
		if r.state == Possible && pos.Sub(r.downPos).Length() > r.cfg.MaxTapDistance {
			r.transition(Failed, s)
		}
	}
}

// continuousMove applies the shared distance-threshold test for the
// translation gestures (Pan, Tilt, Drag).
func (r *Recognizer) continuousMove(s *Set) {
	if r.state.IsActive() {
		r.transition(Changed, s)
		return
	}
	if r.state != Possible {
		return
	}
	if !r.thresholdExceeded() {
		return
	}
	if r.kind == Pan && r.cfg.Taps > 0 && r.taps != r.cfg.Taps {
		return
	}
	if len(r.touches) > 0 && len(r.touches) < r.cfg.MinTouches {
		return
	}
	r.request(Began, s)
}

// thresholdExceeded is the kind-specific geometric interpretation
// predicate. The boundary is exclusive: a translation exactly equal to
// the interpret distance does not begin the gesture.
func (r *Recognizer) thresholdExceeded() bool {
	switch r.kind {
	case Tilt:
		return math32.Abs(r.translation.Y) > r.cfg.InterpretDistance
	default:
		return r.translation.Length() > r.cfg.InterpretDistance
	}
}

func (r *Recognizer) touchEnd(seq events.Sequence, pos math32.Vector2, tm time.Time, s *Set, cancel bool) {
	for i := range r.touches {
		if r.touches[i].seq == seq {
			r.touches = append(r.touches[:i], r.touches[i+1:]...)
			break
		}
	}
	n := len(r.touches)

	switch r.kind {
	case Pan, Tilt:
		if cancel && r.state.IsActive() {
			r.transition(Cancelled, s)
		} else if n == 0 && r.state.IsActive() {
			r.transition(Ended, s)
		} else if n > 0 {
			r.anchor(r.centroid())
		}
		if r.kind == Pan && !cancel && r.state == Possible && r.cfg.Taps > 0 {
			if tm.Sub(r.downTime) <= r.cfg.MaxTapDuration &&
				pos.Sub(r.downPos).Length() <= r.cfg.MaxTapDistance {
				r.taps++
				r.failAfter = tm.Add(r.cfg.MaxTapInterval)
			}
		}
	case Pinch, Rotation:
		if cancel && r.state.IsActive() {
			r.transition(Cancelled, s)
		} else if n < 2 && r.state.IsActive() {
			r.transition(Ended, s)
		}
	case Tap:
		if cancel {
			if r.state == Possible {
				r.transition(Failed, s)
			}
			return
		}
		if r.state != Possible {
			return
		}
		if tm.Sub(r.downTime) > r.cfg.MaxTapDuration {
			r.transition(Failed, s)
			return
		}
		r.taps++
		if r.taps >= r.cfg.Taps {
			r.request(Recognized, s)
			return
		}
		r.failAfter = tm.Add(r.cfg.MaxTapInterval)
	case Fling:
		if cancel || n > 0 || r.state != Possible {
			return
		}
		if r.residualSpeed(tm) > r.cfg.MinFlingSpeed {
			r.request(Recognized, s)
		}
	}
}

// residualSpeed returns the velocity magnitude at release, or 0 if the
// last movement sample is too stale to represent residual momentum.
func (r *Recognizer) residualSpeed(tm time.Time) float32 {
	if !r.tracking || tm.Sub(r.lastTime) > 100*time.Millisecond {
		return 0
	}
	return r.velocity.Length()
}

func (r *Recognizer) mouseDown(but events.Buttons, pos math32.Vector2, tm time.Time, s *Set) {
	first := r.buttons == 0
	r.buttons |= but.Mask()
	if first {
		r.anchor(pos)
		r.updateVelocity(pos, tm)
	}

	switch r.kind {
	case Drag:
		if r.state == Possible && but != r.cfg.Button {
			r.transition(Failed, s)
		}
	case Click:
		if r.state != Possible {
			return
		}
		if but != r.cfg.Button {
			r.transition(Failed, s)
			return
		}
		if r.clicks == 0 {
			r.downPos = pos
		} else if pos.Sub(r.downPos).Length() > r.cfg.MaxTapDistance {
			r.transition(Failed, s)
			return
		}
		r.downTime = tm
		if r.cfg.Clicks > 1 {
			r.failAfter = tm.Add(r.cfg.MaxTapInterval)
		}
	}
}

func (r *Recognizer) mouseMove(pos math32.Vector2, tm time.Time, s *Set) {
	if r.buttons == 0 {
		// hover movement is not part of any gesture
		r.lastPos = pos
		r.lastTime = tm
		return
	}
	r.updateTranslation(pos)
	r.updateVelocity(pos, tm)

	switch r.kind {
	case Drag:
		if r.state.IsActive() {
			r.transition(Changed, s)
			return
		}
		if r.state == Possible && r.thresholdExceeded() && r.buttons == r.cfg.Button.Mask() {
			r.request(Began, s)
		}
	case Click:
		if r.state == Possible && pos.Sub(r.downPos).Length() > r.cfg.MaxTapDistance {
			r.transition(Failed, s)
		}
	}
}

func (r *Recognizer) mouseUp(but events.Buttons, pos math32.Vector2, tm time.Time, s *Set) {
	r.buttons &^= but.Mask()

	switch r.kind {
	case Drag:
		if r.state.IsActive() && r.buttons == 0 {
			r.transition(Ended, s)
		}
	case Click:
		if r.state != Possible || but != r.cfg.Button {
			return
		}
		if tm.Sub(r.downTime) > r.cfg.MaxTapDuration {
			r.transition(Failed, s)
			return
		}
		r.clicks++
		if r.clicks >= r.cfg.Clicks {
			r.request(Recognized, s)
			return
		}
		r.failAfter = tm.Add(r.cfg.MaxTapInterval)
	case Fling:
		if r.buttons != 0 || r.state != Possible {
			return
		}
		if r.residualSpeed(tm) > r.cfg.MinFlingSpeed {
			r.request(Recognized, s)
		}
	}
}

// poll expires the delayed-failure deadline. Called from the frame loop
// via [Set.Poll]; the deadline is cancelled on reset and on reaching
// any terminal state.
func (r *Recognizer) poll(now time.Time, s *Set) {
	if r.failAfter.IsZero() || now.Before(r.failAfter) {
		return
	}
	r.failAfter = time.Time{}
	if r.state == Possible {
		r.transition(Failed, s)
	}
}

func (r *Recognizer) span() float32 {
	if len(r.touches) < 2 {
		return 0
	}
	return r.touches[1].pos.Sub(r.touches[0].pos).Length()
}

func (r *Recognizer) angle() float32 {
	if len(r.touches) < 2 {
		return 0
	}
	d := r.touches[1].pos.Sub(r.touches[0].pos)
	return math32.Atan2(d.Y, d.X)
}

// normDegrees wraps an angle into (-180, 180].
func normDegrees(d float32) float32 {
	for d > 180 {
		d -= 360
	}
	for d <= -180 {
		d += 360
	}
	return d
}
