// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package racing races blocking network work against the user's commands,
so that a session task stays responsive while it waits on the network.

Race runs a call, typically a one-shot HTTP exchange or a WebSocket
opening handshake, on its own goroutine and returns as soon as the call
finishes or a Terminate command arrives, whichever comes first. When the
command wins, the call's context is cancelled and Race returns without
waiting for it. A late result is handed to an optional abandon function:

	conn, deferred, err := racing.Race(ctx, ch.Receive(),
		func(ctx context.Context) *websocket.Conn {
			c, _, _ := dialer.DialContext(ctx, url, nil)
			return c
		},
		func(c *websocket.Conn) {
			if c != nil {
				c.Close()
			}
		})
	if err == racing.Interrupted {
		// Terminate won; the late connection, if any, is closed.
	}

Execute commands that arrive during the race are returned in deferred,
so a WebSocket session can still send them once the handshake is done.

A long-lived WebSocket session instead services inbound frames as they
arrive and polls for outbound commands on a tick. A Ticker delivers those
ticks at intervals chosen by a Scheduler. Use Every for a fixed interval
(the executor default is DefaultInterval, 50ms) or NewStaticScheduler to
back off while the session is quiet.
*/
package racing
