// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultJournalSize is the capacity of a Journal constructed with a
// non-positive size.
const DefaultJournalSize = 256

// An Entry is one notice kept in a Journal.
type Entry struct {
	Time    time.Time
	Level   zerolog.Level
	Message string
}

// A Journal is an EventLog that keeps the most recent notices in
// memory, for display in an event bar. When full, the oldest notice is
// overwritten. A Journal is safe for concurrent use.
type Journal struct {
	lock    sync.Mutex
	entries []Entry
	next    int
	full    bool
}

// NewJournal constructs a journal which keeps up to size notices.
func NewJournal(size int) *Journal {
	if size <= 0 {
		size = DefaultJournalSize
	}
	return &Journal{entries: make([]Entry, size)}
}

func (j *Journal) Info(msg string) {
	j.add(zerolog.InfoLevel, msg)
}

func (j *Journal) Warn(msg string) {
	j.add(zerolog.WarnLevel, msg)
}

func (j *Journal) Error(msg string) {
	j.add(zerolog.ErrorLevel, msg)
}

func (j *Journal) add(level zerolog.Level, msg string) {
	j.lock.Lock()
	defer j.lock.Unlock()
	j.entries[j.next] = Entry{Time: time.Now(), Level: level, Message: msg}
	j.next++
	if j.next == len(j.entries) {
		j.next = 0
		j.full = true
	}
}

// Entries returns the kept notices, oldest first.
func (j *Journal) Entries() []Entry {
	j.lock.Lock()
	defer j.lock.Unlock()
	if !j.full {
		return append([]Entry(nil), j.entries[:j.next]...)
	}
	out := make([]Entry, 0, len(j.entries))
	out = append(out, j.entries[j.next:]...)
	return append(out, j.entries[:j.next]...)
}

// Last returns the most recent notice. The second return value is
// false if the journal is empty.
func (j *Journal) Last() (Entry, bool) {
	j.lock.Lock()
	defer j.lock.Unlock()
	if !j.full && j.next == 0 {
		return Entry{}, false
	}
	i := j.next - 1
	if i < 0 {
		i = len(j.entries) - 1
	}
	return j.entries[i], true
}
