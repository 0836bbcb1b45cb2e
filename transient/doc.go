// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies errors from HTTP exchanges and
// WebSocket handshakes into well-known connection-level categories
// (timeout, refused, reset, unresolved host, cancelled), and turns them
// into short human-readable reasons for display in place of a response
// body. It is also handy for bucketing error metrics.
//
// Package transient is extremely lightweight, as it depends only on
// standard library packages, so it doesn't bring any significant
// dependencies when imported as a standalone package.
package transient
