// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flare

// A HandlerGroup is a group of event handler chains which can be
// installed in an Executor.
//
// Install handlers before the executor spawns its first session task.
// A HandlerGroup is read concurrently by session goroutines but is not
// safe for concurrent modification.
type HandlerGroup struct {
	handlers [][]Handler
}

// PushBack adds an event handler to the back of the event handler chain
// for a specific event type.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("flare: nil handler")
	}

	if g.handlers == nil {
		g.handlers = make([][]Handler, numEvents)
	}

	g.handlers[evt] = append(g.handlers[evt], h)
}

func (g *HandlerGroup) run(evt Event, a *Activation) {
	i := int(evt)
	if i < len(g.handlers) {
		run(g.handlers[i], evt, a)
	}
}

func run(chain []Handler, evt Event, a *Activation) {
	for _, h := range chain {
		h.Handle(evt, a)
	}
}

// A Handler handles the occurrence of an event during a session task.
//
// Handlers run on the session goroutine, one at a time, in the order
// they were pushed. A slow handler delays the session.
type Handler interface {
	Handle(Event, *Activation)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers. If f is a function with appropriate
// signature, then HandlerFunc(f) is a Handler that calls f.
type HandlerFunc func(Event, *Activation)

// Handle calls f(evt, a).
func (f HandlerFunc) Handle(evt Event, a *Activation) {
	f(evt, a)
}
