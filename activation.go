// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flare

import (
	"context"
	"time"

	"github.com/gogama/flare/request"
	"github.com/gogama/flare/response"
	"github.com/gogama/flare/transient"
)

// An Activation represents the state of a single session task: one
// HTTP exchange, or one WebSocket session from handshake to close.
//
// When the executor spawns a session task, it creates an Activation
// for it. The Activation is updated as the session progresses and is
// passed to every event handler.
//
// Event handlers may set values on an Activation using its SetValue
// method and read them back using the Value method. However, they
// should treat the structure's exported field values as immutable, as
// the activation state is vital to the correct functioning of the
// session task.
type Activation struct {
	// ID uniquely identifies the activation. It is a random (version
	// 4) UUID.
	ID string

	// Descriptor is the immutable snapshot of the request taken when
	// the session task was spawned.
	Descriptor request.Descriptor

	// ConnectionOnly is true if the WebSocket session was opened
	// without sending the descriptor body as an initial message.
	ConnectionOnly bool

	// Start is the start time of the session task.
	Start time.Time

	// End is the end time of the session task. It contains the zero
	// value until the session ends.
	End time.Time

	// Record is the most recent record the session pushed into the
	// response sink, or nil if it has pushed none.
	Record *response.Record

	// Records counts the records the session has pushed.
	Records int

	// Message is the most recent message the session sent over an open
	// WebSocket connection.
	Message string

	// Sent counts the messages the session has sent over an open
	// WebSocket connection, including the initial payload.
	Sent int

	// Terminated is true if the session ended because the user
	// terminated it.
	Terminated bool

	// Err is the most recent error the session encountered: a failed
	// exchange or handshake, a failed write, or the error that ended
	// the reading side of a WebSocket connection.
	Err error

	data context.Context
}

// Duration returns the duration of the activation.
//
// If the activation has not started, the duration is zero. If it has
// ended, the duration is End minus Start. Otherwise, it is the current
// time minus Start.
func (a *Activation) Duration() time.Duration {
	if !a.Started() {
		return time.Duration(0)
	} else if !a.Ended() {
		return time.Since(a.Start)
	}

	return a.End.Sub(a.Start)
}

// Started indicates whether the activation has started.
func (a *Activation) Started() bool {
	return !a.Start.IsZero()
}

// Ended indicates whether the activation has ended. Once it has,
// there will be no further changes to the activation.
func (a *Activation) Ended() bool {
	return !a.End.IsZero()
}

// Timeout indicates whether Err currently contains a non-nil value
// which indicates a timeout.
func (a *Activation) Timeout() bool {
	return transient.Categorize(a.Err) == transient.Timeout
}

// SetValue allows event handlers to store arbitrary data in the
// activation.
//
// The key must follow the same rules as the key parameter in
// context.WithValue, namely it:
//
// • may not be nil;
//
// • must be comparable;
//
// • should not be of type string or any other built-in type to avoid
// collisions between different event handlers putting data into the
// same activation.
func (a *Activation) SetValue(key, value interface{}) {
	ctx := a.data
	if ctx == nil {
		ctx = context.Background()
	}

	a.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this activation for
// key, or nil if there is no value associated with key.
func (a *Activation) Value(key interface{}) interface{} {
	ctx := a.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
