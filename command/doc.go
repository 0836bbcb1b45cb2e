// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package command carries user intent from an executor's controller to the
session task that owns the network connection.

There are two kinds of Command. Execute sends a request over an open
WebSocket session, and Terminate ends the current session. Commands flow
through a Channel, a bounded queue whose Send method never blocks:

	ch := command.NewChannel(command.DefaultCapacity)
	if err := ch.Send(command.NewTerminate()); err != nil {
		// ErrFull or ErrDetached: the command was dropped.
	}

The session task reads from Receive, or from Drain on each poll tick,
and calls Detach when it exits so that later sends fail fast instead of
queueing into a dead channel.
*/
package command
