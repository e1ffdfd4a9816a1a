// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gesture

import (
	"fmt"
	"time"

	"github.com/terraglobe/terraglobe/events"
)

// Default threshold values. All thresholds are configuration, not hard
// failures: a malformed configuration is a programming error rejected
// at construction.
const (
	// DefaultInterpretDistance is the translation magnitude, in display
	// dots, beyond which a drag / pan / tilt gesture begins.
	DefaultInterpretDistance = float32(20)

	// DefaultMaxTapDistance is how far a tap or click may wander
	// before it fails.
	DefaultMaxTapDistance = float32(20)

	// DefaultMaxTapDuration is how long a tap or click may be held
	// before it fails.
	DefaultMaxTapDuration = 500 * time.Millisecond

	// DefaultMaxTapInterval is the longest pause between taps of a
	// multi-tap (or clicks of a multi-click) before the recognizer fails.
	DefaultMaxTapInterval = 400 * time.Millisecond

	// DefaultMinFlingSpeed is the release speed, in dots per second,
	// above which a fling is recognized.
	DefaultMinFlingSpeed = float32(50)
)

// Config holds the tunable thresholds for one recognizer. The zero
// value plus [Config.Defaults] is a valid single-tap / single-click /
// one-touch configuration.
type Config struct {
	// InterpretDistance is the translation magnitude, in display dots,
	// beyond which the gesture begins. The boundary is exclusive:
	// translation exactly equal to it leaves the recognizer Possible.
	InterpretDistance float32

	// Button is the mouse button a Drag or Click commits to.
	Button events.Buttons

	// Taps is the number of taps required for a Tap recognizer, or the
	// tap-count gate for a Pan recognizer (0 = ungated).
	Taps int

	// Clicks is the number of clicks required for a Click recognizer.
	Clicks int

	// MinTouches is the minimum number of concurrent touches
	// (1 for Pan, 2 for Pinch / Rotation / Tilt).
	MinTouches int

	// MaxTouches is the touch count above which a Possible recognizer
	// fails (0 = unlimited). A one-touch Pan subordinates the tilt
	// gesture: the second touch fails the pan, releasing recognizers
	// that require it to fail first.
	MaxTouches int

	// MaxTapDistance is how far a tap / click may wander before failing.
	MaxTapDistance float32

	// MaxTapDuration is how long a tap / click may be held before failing.
	MaxTapDuration time.Duration

	// MaxTapInterval is the delayed-failure timeout between the taps of
	// a multi-tap or the clicks of a multi-click.
	MaxTapInterval time.Duration

	// MinFlingSpeed is the release speed, in dots per second, above
	// which a Fling is recognized.
	MinFlingSpeed float32

	// Callback, if set, is invoked on every state transition of the
	// recognizer, after the new state is in place.
	Callback func(*Recognizer)
}

// Defaults fills zero fields with the default thresholds for the
// given kind.
func (c *Config) Defaults(k Kind) {
	if c.InterpretDistance == 0 {
		c.InterpretDistance = DefaultInterpretDistance
	}
	if c.Button == events.NoButton {
		c.Button = events.Left
	}
	if c.Taps == 0 && k == Tap {
		c.Taps = 1
	}
	if c.Clicks == 0 && k == Click {
		c.Clicks = 1
	}
	if c.MinTouches == 0 {
		switch k {
		case Pinch, Rotation, Tilt:
			c.MinTouches = 2
		default:
			c.MinTouches = 1
		}
	}
	if c.MaxTapDistance == 0 {
		c.MaxTapDistance = DefaultMaxTapDistance
	}
	if c.MaxTapDuration == 0 {
		c.MaxTapDuration = DefaultMaxTapDuration
	}
	if c.MaxTapInterval == 0 {
		c.MaxTapInterval = DefaultMaxTapInterval
	}
	if c.MinFlingSpeed == 0 {
		c.MinFlingSpeed = DefaultMinFlingSpeed
	}
}

// Validate rejects malformed configurations. A negative threshold is a
// programming error, not a runtime condition.
func (c *Config) Validate(k Kind) error {
	if k < 0 || k >= KindsN {
		return fmt.Errorf("gesture: invalid kind %d", int(k))
	}
	if c.InterpretDistance < 0 {
		return fmt.Errorf("gesture: %v: negative InterpretDistance %g", k, c.InterpretDistance)
	}
	if c.MaxTapDistance < 0 {
		return fmt.Errorf("gesture: %v: negative MaxTapDistance %g", k, c.MaxTapDistance)
	}
	if c.MaxTapDuration < 0 || c.MaxTapInterval < 0 {
		return fmt.Errorf("gesture: %v: negative tap timing", k)
	}
	if c.Taps < 0 || c.Clicks < 0 || c.MinTouches < 0 || c.MaxTouches < 0 {
		return fmt.Errorf("gesture: %v: negative count", k)
	}
	if c.MaxTouches > 0 && c.MaxTouches < c.MinTouches {
		return fmt.Errorf("gesture: %v: MaxTouches %d below MinTouches %d", k, c.MaxTouches, c.MinTouches)
	}
	if c.MinFlingSpeed < 0 {
		return fmt.Errorf("gesture: %v: negative MinFlingSpeed %g", k, c.MinFlingSpeed)
	}
	if c.Button <= events.NoButton || c.Button >= events.ButtonsN {
		return fmt.Errorf("gesture: %v: invalid button %v", k, c.Button)
	}
	return nil
}
