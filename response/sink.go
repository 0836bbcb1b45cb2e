// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package response

import "sync"

// A Sink is the ordered, append-only collection of records for one
// request. It is shared by the executor, every session the executor
// starts, and the UI that renders it.
//
// A Sink is safe for concurrent use by multiple goroutines. Its zero
// value is an empty sink ready to use. The lock is only held to append
// or to copy, never while doing I/O.
type Sink struct {
	mu      sync.Mutex
	records []Record
}

// Push appends r to the sink.
func (s *Sink) Push(r Record) {
	s.mu.Lock()
	s.records = append(s.records, r)
	s.mu.Unlock()
}

// Snapshot returns a copy of the records in the order they were pushed.
// The returned slice is owned by the caller.
func (s *Sink) Snapshot() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records in the sink.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Last returns the most recently pushed record. The second return value
// is false if the sink is empty.
func (s *Sink) Last() (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.records) == 0 {
		return Record{}, false
	}
	return s.records[len(s.records)-1], true
}

// Clear removes every record. It is meant for an explicit user action;
// sessions never clear the sink.
func (s *Sink) Clear() {
	s.mu.Lock()
	s.records = nil
	s.mu.Unlock()
}
