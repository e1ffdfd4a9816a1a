// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

// Listeners registers lists of event listener functions to receive
// different event types. Listeners are closure methods with all context
// captured, registered on specific objects.
type Listeners map[Types][]func(ev Event)

// Init ensures that the map is constructed.
func (ls *Listeners) Init() {
	if *ls != nil {
		return
	}
	*ls = make(map[Types][]func(Event))
}

// Add adds a listener for the given type.
func (ls *Listeners) Add(typ Types, fun func(Event)) {
	ls.Init()
	(*ls)[typ] = append((*ls)[typ], fun)
}

// Call calls all functions for the given event, in reverse order so the
// last listener added is the first called, stopping when the event is
// marked as Handled. This allows a natural and optional override
// behavior without a separate priority mechanism.
func (ls *Listeners) Call(ev Event) {
	if ev.IsHandled() {
		return
	}
	ets := (*ls)[ev.Type()]
	for i := len(ets) - 1; i >= 0; i-- {
		ets[i](ev)
		if ev.IsHandled() {
			break
		}
	}
}
