// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package lifecycle defines the three lifecycle states of an executor,
// Idle, Busy, and Connected, and Cell, a lock-protected holder for the
// current state.
package lifecycle
