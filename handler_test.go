// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flare

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerGroup(t *testing.T) {
	var evts []string
	var acts []*Activation
	h1 := &testHandler{seq: 1, evts: &evts, acts: &acts}
	h2 := &testHandler{seq: 2, evts: &evts, acts: &acts}
	g := &HandlerGroup{}
	t.Run("PushBack", func(t *testing.T) {
		assert.PanicsWithValue(t, "flare: nil handler", func() { g.PushBack(BeforeSessionStart, nil) })
		assert.Panics(t, func() { g.PushBack(Event(123), h1) })
		g.PushBack(BeforeSessionStart, h1)
		g.PushBack(BeforeSessionStart, h2)
		g.PushBack(AfterResponse, h1)
	})
	t.Run("run", func(t *testing.T) {
		a1 := &Activation{ID: "1"}
		a2 := &Activation{ID: "2"}
		assert.Empty(t, evts)
		assert.Empty(t, acts)
		g.run(AfterTerminate, a1)
		assert.Empty(t, evts)
		assert.Empty(t, acts)
		g.run(BeforeSessionStart, a1)
		assert.Equal(t, []string{"1.BeforeSessionStart", "2.BeforeSessionStart"}, evts)
		assert.Equal(t, []*Activation{a1, a1}, acts)
		evts = evts[:0]
		acts = acts[:0]
		g.run(AfterResponse, a2)
		assert.Equal(t, []string{"1.AfterResponse"}, evts)
		assert.Equal(t, []*Activation{a2}, acts)
	})
	t.Run("empty group", func(t *testing.T) {
		assert.NotPanics(t, func() { (&HandlerGroup{}).run(AfterSessionEnd, &Activation{}) })
	})
}

type testHandler struct {
	seq  int
	evts *[]string
	acts *[]*Activation
}

func (h *testHandler) Handle(evt Event, a *Activation) {
	*h.evts = append(*h.evts, fmt.Sprintf("%d.%s", h.seq, evt))
	*h.acts = append(*h.acts, a)
}

func TestHandlerFunc(t *testing.T) {
	var _evt Event
	var _a *Activation
	var f = func(evt Event, a *Activation) {
		_evt = evt
		_a = a
	}
	h := HandlerFunc(f)
	a := &Activation{}
	h.Handle(AfterSend, a)

	assert.Equal(t, AfterSend, _evt)
	assert.Same(t, a, _a)
}
