// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package command

import (
	"strconv"

	"github.com/gogama/flare/request"
)

// A Kind identifies what a Command asks a session task to do.
type Kind int

const (
	// Execute asks the session task to send the command's descriptor.
	// Only a WebSocket session acts on Execute: it sends the body of
	// the descriptor as a text frame.
	Execute Kind = iota
	// Terminate asks the session task to end the session. An HTTP
	// task abandons its exchange; a WebSocket task closes the
	// connection.
	Terminate
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Execute:
		return "Execute"
	case Terminate:
		return "Terminate"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// A Command is a message from the executor's controller to its session
// task.
type Command struct {
	// Kind is the kind of command.
	Kind Kind
	// Descriptor is the request to send. It is only meaningful when
	// Kind is Execute. It is an independent snapshot, so the sender may
	// keep editing its own copy.
	Descriptor request.Descriptor
}

// NewExecute returns an Execute command carrying a snapshot of d.
func NewExecute(d request.Descriptor) Command {
	return Command{Kind: Execute, Descriptor: d.Clone()}
}

// NewTerminate returns a Terminate command.
func NewTerminate() Command {
	return Command{Kind: Terminate}
}
