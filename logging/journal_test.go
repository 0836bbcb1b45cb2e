// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal(t *testing.T) {
	j := NewJournal(3)
	_, ok := j.Last()
	assert.False(t, ok)
	assert.Empty(t, j.Entries())

	j.Info("1")
	j.Info("2")
	last, ok := j.Last()
	require.True(t, ok)
	assert.Equal(t, "2", last.Message)
	assert.Equal(t, []string{"1", "2"}, messages(j.Entries()))

	j.Warn("3")
	assert.Equal(t, []string{"1", "2", "3"}, messages(j.Entries()))
	last, _ = j.Last()
	assert.Equal(t, "3", last.Message)

	j.Error("4")
	j.Info("5")
	assert.Equal(t, []string{"3", "4", "5"}, messages(j.Entries()))
	last, _ = j.Last()
	assert.Equal(t, "5", last.Message)
	assert.False(t, last.Time.IsZero())
}

func TestNewJournal_DefaultSize(t *testing.T) {
	assert.Len(t, NewJournal(0).entries, DefaultJournalSize)
}

func TestJournal_Concurrent(t *testing.T) {
	j := NewJournal(1000)
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				j.Info(strconv.Itoa(g*100 + i))
			}
		}(g)
	}
	wg.Wait()
	assert.Len(t, j.Entries(), 400)
}

func messages(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Message
	}
	return out
}
