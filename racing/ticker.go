// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package racing

import "time"

// A Ticker delivers poll ticks at intervals chosen by a Scheduler. It
// is not safe for concurrent use; it belongs to one session loop.
type Ticker struct {
	scheduler Scheduler
	timer     *time.Timer
	idle      int
}

// NewTicker starts a ticker whose first tick is scheduled as if the
// previous poll had found a command. A nil scheduler means
// Every(DefaultInterval).
func NewTicker(s Scheduler) *Ticker {
	if s == nil {
		s = Every(DefaultInterval)
	}
	return &Ticker{
		scheduler: s,
		timer:     time.NewTimer(s.Schedule(0)),
	}
}

// C returns the channel on which ticks are delivered.
func (t *Ticker) C() <-chan time.Time {
	return t.timer.C
}

// Next schedules the next tick. It must only be called after a tick
// has been received from C. The busy parameter reports whether the poll
// that handled the previous tick found any command.
func (t *Ticker) Next(busy bool) {
	if busy {
		t.idle = 0
	} else {
		t.idle++
	}
	t.timer.Reset(t.scheduler.Schedule(t.idle))
}

// Idle returns the number of consecutive idle polls.
func (t *Ticker) Idle() int {
	return t.idle
}

// Stop stops the ticker. No more ticks are delivered.
func (t *Ticker) Stop() {
	t.timer.Stop()
}
