// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "image"

// NewTouch returns a new touch event of given type, sequence, and position.
// TouchStart, TouchEnd, and TouchCancel are unique; TouchMove is not.
func NewTouch(typ Types, seq Sequence, where image.Point) *Base {
	ev := NewBase(typ, where)
	ev.Seq = seq
	if typ != TouchMove {
		ev.SetUnique()
	}
	return ev
}

// NewTouchMove returns a new TouchMove event with previous position.
func NewTouchMove(seq Sequence, where, prev image.Point) *Base {
	ev := NewBase(TouchMove, where)
	ev.Seq = seq
	ev.Prev = prev
	return ev
}
