// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package lifecycle

import (
	"strconv"
	"sync"
)

// A State is the lifecycle state of an executor.
type State int

const (
	// Idle means no session task is alive. Idle is the zero value.
	Idle State = iota
	// Busy means a one-shot HTTP exchange is in flight.
	Busy
	// Connected means a WebSocket session is open, or being opened,
	// and accepts outbound messages.
	Connected
	stateSentinel
)

var stateNames = []string{
	"Idle",
	"Busy",
	"Connected",
}

// String returns the name of the state.
func (s State) String() string {
	if s < Idle || s >= stateSentinel {
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
	return stateNames[s]
}

// A Cell holds a State and is safe for concurrent use by multiple
// goroutines. The zero value holds Idle.
//
// The executor's controller reads the cell to route commands, and the
// session task writes it when the session ends. Neither holds the
// cell's lock across I/O.
type Cell struct {
	mu    sync.Mutex
	state State
}

// Load returns the current state.
func (c *Cell) Load() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Store replaces the current state with s.
func (c *Cell) Store(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// CompareAndSwap replaces the current state with new if, and only if,
// the current state is old. The return value reports whether the swap
// happened.
func (c *Cell) CompareAndSwap(old, new State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != old {
		return false
	}
	c.state = new
	return true
}
