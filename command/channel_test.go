// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package command

import (
	"sync"
	"testing"

	"github.com/gogama/flare/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Execute", Execute.String())
	assert.Equal(t, "Terminate", Terminate.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}

func TestNewExecute(t *testing.T) {
	d := request.Descriptor{Protocol: request.WS, URI: "example.test", Headers: []request.Header{{Key: "a", Value: "1"}}, Body: "hi"}
	c := NewExecute(d)
	d.Headers[0].Value = "2"
	assert.Equal(t, Execute, c.Kind)
	assert.Equal(t, "hi", c.Descriptor.Body)
	assert.Equal(t, "1", c.Descriptor.Headers[0].Value)
	assert.Equal(t, Terminate, NewTerminate().Kind)
}

func TestNewChannel(t *testing.T) {
	assert.Equal(t, DefaultCapacity, cap(NewChannel(0).ch))
	assert.Equal(t, DefaultCapacity, cap(NewChannel(-1).ch))
	assert.Equal(t, 3, cap(NewChannel(3).ch))
}

func TestChannel_Send(t *testing.T) {
	t.Run("full", func(t *testing.T) {
		c := NewChannel(2)
		require.NoError(t, c.Send(NewTerminate()))
		require.NoError(t, c.Send(NewTerminate()))
		assert.ErrorIs(t, c.Send(NewTerminate()), ErrFull)
		<-c.Receive()
		assert.NoError(t, c.Send(NewTerminate()))
	})
	t.Run("detached", func(t *testing.T) {
		c := NewChannel(2)
		require.NoError(t, c.Send(NewExecute(request.Descriptor{Body: "a"})))
		require.NoError(t, c.Send(NewTerminate()))
		assert.False(t, c.Detached())
		left := c.Detach()
		require.Len(t, left, 2)
		assert.Equal(t, "a", left[0].Descriptor.Body)
		assert.Equal(t, Terminate, left[1].Kind)
		assert.Nil(t, c.Detach())
		assert.True(t, c.Detached())
		assert.ErrorIs(t, c.Send(NewTerminate()), ErrDetached)
		assert.Len(t, c.Receive(), 0)
	})
}

func TestChannel_Drain(t *testing.T) {
	c := NewChannel(10)
	assert.Nil(t, c.Drain())
	for _, body := range []string{"1", "2", "3"} {
		require.NoError(t, c.Send(NewExecute(request.Descriptor{Body: body})))
	}
	cmds := c.Drain()
	require.Len(t, cmds, 3)
	for i, body := range []string{"1", "2", "3"} {
		assert.Equal(t, body, cmds[i].Descriptor.Body)
	}
	assert.Nil(t, c.Drain())
}

func TestChannel_ConcurrentSend(t *testing.T) {
	const producers, each = 4, 50
	c := NewChannel(producers * each)
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				assert.NoError(t, c.Send(NewTerminate()))
			}
		}()
	}
	wg.Wait()
	assert.Len(t, c.Drain(), producers*each)
}
