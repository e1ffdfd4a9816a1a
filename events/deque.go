// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "sync"

// TraceEventCompression can be set to true to log when events
// are being compressed to eliminate laggy behavior.
var TraceEventCompression = false

// Deque is a FIFO input-event queue with compression: when a non-unique
// event is added and the most recent undelivered event is of the same
// type (and, for touch events, the same sequence), the pending event is
// updated in place instead of growing the queue. MouseMove / TouchMove
// keep the original Prev position so deltas integrate correctly, and
// Scroll deltas accumulate. The window driver sends from its thread;
// the single render/event thread drains, so access is locked.
type Deque struct {
	mu   sync.Mutex
	evs  []Event
}

// Send adds an event to the back of the queue, compressing it into the
// last pending event when permitted.
func (dq *Deque) Send(ev Event) {
	dq.mu.Lock()
	defer dq.mu.Unlock()
	n := len(dq.evs)
	if n > 0 && !ev.IsUnique() {
		last := dq.evs[n-1]
		if last.Type() == ev.Type() && last.Touch() == ev.Touch() {
			lb, eb := last.AsBase(), ev.AsBase()
			switch ev.Type() {
			case MouseMove, TouchMove:
				eb.Prev = lb.Prev
				dq.evs[n-1] = ev
				return
			case Scroll:
				eb.Delta = lb.Delta.Add(eb.Delta)
				dq.evs[n-1] = ev
				return
			case WindowPaint:
				dq.evs[n-1] = ev
				return
			}
		}
	}
	dq.evs = append(dq.evs, ev)
}

// NextEvent removes and returns the next event in the queue.
// It returns nil if the queue is empty.
func (dq *Deque) NextEvent() Event {
	dq.mu.Lock()
	defer dq.mu.Unlock()
	if len(dq.evs) == 0 {
		return nil
	}
	ev := dq.evs[0]
	dq.evs = dq.evs[1:]
	return ev
}

// Len returns the number of pending events.
func (dq *Deque) Len() int {
	dq.mu.Lock()
	defer dq.mu.Unlock()
	return len(dq.evs)
}
