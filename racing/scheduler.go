// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package racing

import "time"

// DefaultInterval is the interval between polls of the command channel
// used when no other interval is configured.
const DefaultInterval = 50 * time.Millisecond

// A Scheduler decides how long a session loop waits before it next
// polls its command channel.
//
// Implementations of Scheduler must be safe for concurrent use by
// multiple goroutines.
type Scheduler interface {
	// Schedule returns the wait before the next poll. The idle
	// parameter is the number of consecutive polls, immediately before
	// this one, which found no command waiting. It is zero after a
	// poll that found at least one command.
	Schedule(idle int) time.Duration
}

// Every constructs a scheduler that always waits d between polls. A
// non-positive d is replaced with DefaultInterval.
func Every(d time.Duration) Scheduler {
	if d <= 0 {
		d = DefaultInterval
	}
	return every(d)
}

type every time.Duration

func (e every) Schedule(_ int) time.Duration {
	return time.Duration(e)
}

// NewStaticScheduler constructs a scheduler based on a static schedule
// that slows polling down while the session is quiet.
//
// The wait after i consecutive idle polls is offsets[i]. Once the idle
// count passes the end of the schedule, the last offset is used. For
// example the scheduler
//
//	racing.NewStaticScheduler(20*time.Millisecond, 50*time.Millisecond, 200*time.Millisecond)
//
// polls every 20ms while commands keep arriving and backs off to every
// 200ms after two idle polls in a row.
//
// With no offsets, the scheduler behaves like Every(DefaultInterval).
// A non-positive offset is replaced with DefaultInterval.
func NewStaticScheduler(offsets ...time.Duration) Scheduler {
	if len(offsets) == 0 {
		return Every(DefaultInterval)
	}
	s := make(staticScheduler, len(offsets))
	for i, d := range offsets {
		if d <= 0 {
			d = DefaultInterval
		}
		s[i] = d
	}
	return s
}

type staticScheduler []time.Duration

func (s staticScheduler) Schedule(idle int) time.Duration {
	if idle < 0 {
		idle = 0
	}
	if idle >= len(s) {
		return s[len(s)-1]
	}
	return s[idle]
}
