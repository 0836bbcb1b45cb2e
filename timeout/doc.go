// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout defines policies for bounding how long an HTTP
// exchange or a WebSocket opening handshake may take. A generic
// interface for timeout policies is provided, Policy, along with
// several useful policy generating functions and built-in policies.
package timeout
