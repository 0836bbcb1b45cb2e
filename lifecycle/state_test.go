// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package lifecycle

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_String(t *testing.T) {
	assert.Equal(t, "Idle", Idle.String())
	assert.Equal(t, "Busy", Busy.String())
	assert.Equal(t, "Connected", Connected.String())
	assert.Equal(t, "State(-1)", State(-1).String())
	assert.Equal(t, "State(3)", stateSentinel.String())
}

func TestCell(t *testing.T) {
	var c Cell
	assert.Equal(t, Idle, c.Load())
	c.Store(Connected)
	assert.Equal(t, Connected, c.Load())
	assert.False(t, c.CompareAndSwap(Idle, Busy))
	assert.Equal(t, Connected, c.Load())
	assert.True(t, c.CompareAndSwap(Connected, Idle))
	assert.Equal(t, Idle, c.Load())
}

func TestCell_CompareAndSwapRace(t *testing.T) {
	var c Cell
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.CompareAndSwap(Idle, Busy) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
	assert.Equal(t, Busy, c.Load())
}
