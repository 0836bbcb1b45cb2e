// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package command

import (
	"errors"
	"sync"
)

// DefaultCapacity is the capacity of a Channel constructed with a
// non-positive capacity.
const DefaultCapacity = 100

var (
	// ErrFull is returned by Channel.Send when the channel buffer is
	// full. The command is dropped.
	ErrFull = errors.New("flare/command: channel full")
	// ErrDetached is returned by Channel.Send when the receiving
	// session task has exited. The command is dropped.
	ErrDetached = errors.New("flare/command: channel detached")
)

// A Channel is a bounded, multi-producer single-consumer queue of
// commands flowing from an executor's controller to one session task.
//
// Send never blocks. When the session task exits it calls Detach, after
// which every Send fails with ErrDetached. A Channel is never closed in
// the Go sense, so the consumer may keep selecting on Receive safely.
type Channel struct {
	ch       chan Command
	lock     sync.Mutex
	detached bool
}

// NewChannel constructs a channel which buffers up to capacity
// commands. If capacity is zero or negative, DefaultCapacity is used.
func NewChannel(capacity int) *Channel {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Channel{ch: make(chan Command, capacity)}
}

// Send enqueues c without blocking. It returns ErrDetached if the
// consumer has detached and ErrFull if the buffer is full.
func (c *Channel) Send(cmd Command) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.detached {
		return ErrDetached
	}
	select {
	case c.ch <- cmd:
		return nil
	default:
		return ErrFull
	}
}

// Receive returns the channel the consumer reads commands from.
func (c *Channel) Receive() <-chan Command {
	return c.ch
}

// Drain removes and returns, in FIFO order, the commands that are
// buffered at the time of the call. Drain never blocks. The return
// value is nil if no command is buffered.
func (c *Channel) Drain() []Command {
	var cmds []Command
	for n := len(c.ch); n > 0; n-- {
		select {
		case cmd := <-c.ch:
			cmds = append(cmds, cmd)
		default:
			return cmds
		}
	}
	return cmds
}

// Detach marks the channel dead. Commands still buffered are removed
// and returned in FIFO order, and every later Send fails with
// ErrDetached. Detach is idempotent; only the first call can return
// commands.
func (c *Channel) Detach() []Command {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.detached {
		return nil
	}
	c.detached = true
	var left []Command
	for {
		select {
		case cmd := <-c.ch:
			left = append(left, cmd)
		default:
			return left
		}
	}
}

// Detached reports whether Detach has been called.
func (c *Channel) Detached() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.detached
}
