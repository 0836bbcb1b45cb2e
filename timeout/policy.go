// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/gogama/flare/request"
)

// A Policy defines a timeout policy which may be plugged into the
// executor (flare.Executor) to direct how long a one-shot HTTP exchange,
// or a WebSocket opening handshake, may take before it is abandoned.
//
// A timeout never applies to an open WebSocket session, which lasts
// until the peer closes it or the user terminates it.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout to set on the exchange or handshake
	// described by d.
	Timeout(d *request.Descriptor) time.Duration
}

// DefaultPolicy is the default timeout policy. It sets a fixed timeout
// of 30 seconds on each HTTP exchange and WebSocket handshake.
var DefaultPolicy Policy = Fixed(30 * time.Second)

// Infinite is a built-in timeout policy which never times out. With
// Infinite, a hung HTTP exchange keeps the executor busy until the user
// terminates it.
var Infinite Policy = Fixed(1<<63 - 1)

// Fixed constructs a timeout policy that uses the same value for every
// descriptor. The return value is a timeout policy that always returns
// the value d.
func Fixed(d time.Duration) Policy {
	return policy{d, d}
}

// ByProtocol constructs a timeout policy that uses one value for the
// HTTP protocol family and another for the WebSocket handshake.
//
// Consider the following timeout policy:
//
// 	p := ByProtocol(time.Minute, 10*time.Second)
//
// The policy p allows an HTTP exchange (connecting, sending, and
// reading the whole response body) to take up to one minute, but gives
// up on a WebSocket server that has not completed the opening handshake
// within ten seconds.
func ByProtocol(http, ws time.Duration) Policy {
	return policy{http, ws}
}

type policy [2]time.Duration

func (p policy) Timeout(d *request.Descriptor) time.Duration {
	if d.Protocol.IsWS() {
		return p[1]
	}

	return p[0]
}
