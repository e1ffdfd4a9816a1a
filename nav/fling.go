// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nav

import (
	"time"

	"cogentcore.org/core/math32"
)

// Fling animation durations. A long click (press held beyond
// [LongClickDuration] before the first move) multiplies the fling
// duration by [LongClickFactor], converting the decay into sustained
// inertial drift that runs until a new pointer-down cancels it.
const (
	// PanFlingDuration is the nominal duration of a pan / rotate fling.
	PanFlingDuration = 1500 * time.Millisecond

	// ZoomFlingDuration is the duration of the double-click zoom fling.
	ZoomFlingDuration = 500 * time.Millisecond

	// LongClickDuration is how long a press must be held before its
	// first move to arm long-click mode.
	LongClickDuration = time.Second

	// LongClickFactor is the fling-duration multiplier in long-click
	// mode: four orders of magnitude, approximating indefinite motion
	// with the same decay formula.
	LongClickFactor = 10000
)

// flingAnim is the one inertial animation: a self-rescheduling,
// non-blocking unit of work invoked once per display refresh. The
// apply function receives the eased fraction of the initial delta,
// monotonically rising from 0 to 1 with a sinusoidal ease-out; it must
// route through exactly the same transform code as the manual gesture
// it continues.
type flingAnim struct {
	start    time.Time
	duration time.Duration
	apply    func(eased float32)
}

// easeOut is the sinusoidal ease-out: the fraction of the initial
// delta applied after elapsed fraction f of the duration.
func easeOut(f float32) float32 {
	if f >= 1 {
		return 1
	}
	if f <= 0 {
		return 0
	}
	return math32.Sin(f * math32.Pi / 2)
}

// panFlingDur returns the nominal pan / rotate fling duration,
// honoring the [Options] override.
func (c *Controller) panFlingDur() time.Duration {
	if c.opts.PanFlingDuration > 0 {
		return c.opts.PanFlingDuration
	}
	return PanFlingDuration
}

// zoomFlingDur returns the double-click zoom fling duration, honoring
// the [Options] override.
func (c *Controller) zoomFlingDur() time.Duration {
	if c.opts.ZoomFlingDuration > 0 {
		return c.opts.ZoomFlingDuration
	}
	return ZoomFlingDuration
}

// flingDuration scales the nominal duration by the long-click factor
// when the gesture was held past [LongClickDuration] before moving.
// The carried distance is computed from the scaled duration, so the
// animation still starts at the release velocity.
func (c *Controller) flingDuration(d time.Duration) time.Duration {
	if c.longClick {
		return d * LongClickFactor
	}
	return d
}

// startFling installs a new fling animation. Starting a new fling
// cancels any prior one before its next tick: there is never more than
// one writer to camera state per frame.
func (c *Controller) startFling(d time.Duration, apply func(eased float32)) {
	c.fl = &flingAnim{start: c.now, duration: d, apply: apply}
}

// CancelFling drops any in-flight fling animation. The only external
// cancellation path is a fresh pointer-down on the controller.
func (c *Controller) CancelFling() {
	c.fl = nil
}

// FlingActive returns whether a fling animation is currently scheduled.
func (c *Controller) FlingActive() bool {
	return c.fl != nil
}

// tickFling advances the fling animation by one frame, unscheduling it
// once elapsed reaches the nominal duration.
func (c *Controller) tickFling(now time.Time) {
	fl := c.fl
	if fl == nil {
		return
	}
	f := float32(now.Sub(fl.start).Seconds() / fl.duration.Seconds())
	fl.apply(easeOut(f))
	c.requestRedraw()
	if f >= 1 {
		c.fl = nil
	}
}
