// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"image"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestDequeCompressesMouseMove(t *testing.T) {
	dq := &Deque{}
	dq.Send(NewMouseMove(Left, image.Pt(10, 10), image.Pt(0, 0)))
	dq.Send(NewMouseMove(Left, image.Pt(20, 10), image.Pt(10, 10)))
	dq.Send(NewMouseMove(Left, image.Pt(30, 10), image.Pt(20, 10)))

	assert.Equal(t, 1, dq.Len())
	ev := dq.NextEvent()
	assert.Equal(t, image.Pt(30, 10), ev.Pos())
	// compression keeps the original Prev so the total delta survives
	assert.Equal(t, image.Pt(30, 10), ev.AsBase().StartDelta())
	assert.Nil(t, dq.NextEvent())
}

func TestDequeKeepsUniqueEvents(t *testing.T) {
	dq := &Deque{}
	dq.Send(NewMouse(MouseDown, Left, image.Pt(5, 5)))
	dq.Send(NewMouse(MouseUp, Left, image.Pt(5, 5)))
	dq.Send(NewMouse(MouseDown, Left, image.Pt(5, 5)))
	assert.Equal(t, 3, dq.Len())
}

func TestDequeCompressesPerTouchSequence(t *testing.T) {
	dq := &Deque{}
	dq.Send(NewTouchMove(1, image.Pt(10, 0), image.Pt(0, 0)))
	dq.Send(NewTouchMove(1, image.Pt(20, 0), image.Pt(10, 0)))
	// a different sequence must not merge into touch 1
	dq.Send(NewTouchMove(2, image.Pt(50, 50), image.Pt(40, 50)))
	dq.Send(NewTouchMove(2, image.Pt(60, 50), image.Pt(50, 50)))

	assert.Equal(t, 2, dq.Len())
	assert.Equal(t, Sequence(1), dq.NextEvent().Touch())
	assert.Equal(t, Sequence(2), dq.NextEvent().Touch())
}

func TestDequeAccumulatesScroll(t *testing.T) {
	dq := &Deque{}
	dq.Send(NewScroll(image.Pt(0, 0), math32.Vec2(0, 3), DeltaLine))
	dq.Send(NewScroll(image.Pt(0, 0), math32.Vec2(1, 4), DeltaLine))

	assert.Equal(t, 1, dq.Len())
	d := dq.NextEvent().ScrollDelta()
	assert.Equal(t, math32.Vec2(1, 7), d)
}

func TestDequeCoalescesWindowPaint(t *testing.T) {
	dq := &Deque{}
	dq.Send(NewBase(WindowPaint, image.Point{}))
	dq.Send(NewBase(WindowPaint, image.Point{}))
	dq.Send(NewBase(WindowPaint, image.Point{}))
	assert.Equal(t, 1, dq.Len())
}

func TestDequeInterleavingBlocksCompression(t *testing.T) {
	// compression only reaches the most recent pending event
	dq := &Deque{}
	dq.Send(NewMouseMove(Left, image.Pt(10, 0), image.Pt(0, 0)))
	dq.Send(NewMouse(MouseDown, Left, image.Pt(10, 0)))
	dq.Send(NewMouseMove(Left, image.Pt(20, 0), image.Pt(10, 0)))
	assert.Equal(t, 3, dq.Len())
}

func TestListenersReverseOrderAndHandled(t *testing.T) {
	var ls Listeners
	var order []int
	ls.Add(MouseDown, func(ev Event) { order = append(order, 1) })
	ls.Add(MouseDown, func(ev Event) { order = append(order, 2) })
	ls.Add(MouseDown, func(ev Event) {
		order = append(order, 3)
		ev.SetHandled()
	})

	ls.Call(NewMouse(MouseDown, Left, image.Pt(0, 0)))
	// last added runs first and its SetHandled stops the chain
	assert.Equal(t, []int{3}, order)

	order = nil
	var ls2 Listeners
	ls2.Add(MouseUp, func(ev Event) { order = append(order, 1) })
	ls2.Add(MouseUp, func(ev Event) { order = append(order, 2) })
	ls2.Call(NewMouse(MouseUp, Left, image.Pt(0, 0)))
	assert.Equal(t, []int{2, 1}, order)
}

func TestListenersSkipHandledEvent(t *testing.T) {
	var ls Listeners
	called := false
	ls.Add(MouseDown, func(ev Event) { called = true })

	ev := NewMouse(MouseDown, Left, image.Pt(0, 0))
	ev.SetHandled()
	ls.Call(ev)
	assert.False(t, called)
}
