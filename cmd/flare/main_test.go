// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gogama/flare"
	"github.com/gogama/flare/lifecycle"
	"github.com/gogama/flare/request"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	lock sync.Mutex
	buf  bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.buf.String()
}

func testServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/echo", func(w http.ResponseWriter, req *http.Request) {
		b, _ := io.ReadAll(req.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"method":%q,"token":%q,"body":%q}`, req.Method, req.Header.Get("X-Token"), string(b))
	})
	upgrader := websocket.Upgrader{}
	mux.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		c, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			return
		}
		defer func() {
			_ = c.Close()
		}()
		for {
			mt, data, err := c.ReadMessage()
			if err != nil {
				return
			}
			if err = c.WriteMessage(mt, []byte("echo:"+string(data))); err != nil {
				return
			}
		}
	})
	return httptest.NewServer(mux)
}

func TestRun(t *testing.T) {
	server := testServer()
	defer server.Close()
	_, hostPort := request.SplitURL(server.URL)

	t.Run("usage", func(t *testing.T) {
		var out bytes.Buffer
		assert.Equal(t, 2, run(nil, strings.NewReader(""), &out))
		assert.Equal(t, 2, run([]string{"-nope"}, strings.NewReader(""), &out))
	})
	t.Run("version", func(t *testing.T) {
		var out bytes.Buffer
		assert.Equal(t, 0, run([]string{"-version"}, strings.NewReader(""), &out))
		assert.Equal(t, "flare dev\n", out.String())
	})
	t.Run("bad header", func(t *testing.T) {
		var out bytes.Buffer
		assert.Equal(t, 2, run([]string{"-header", "nocolon", "http://" + hostPort}, strings.NewReader(""), &out))
	})
	t.Run("http", func(t *testing.T) {
		var out bytes.Buffer
		code := run([]string{
			"-method", "post",
			"-header", "X-Token: abc",
			"-body", "hello",
			"http://" + hostPort + "/echo",
		}, strings.NewReader(""), &out)
		assert.Equal(t, 0, code)
		s := out.String()
		assert.True(t, strings.HasPrefix(s, "200 OK\n"), s)
		assert.Contains(t, s, "Content-Type: application/json\n")
		assert.Contains(t, s, `"method": "POST"`)
		assert.Contains(t, s, `"token": "abc"`)
		assert.Contains(t, s, `"body": "hello"`)
	})
	t.Run("invalid request", func(t *testing.T) {
		var out bytes.Buffer
		code := run([]string{"-method", "G E T", "http://" + hostPort + "/echo"}, strings.NewReader(""), &out)
		assert.Equal(t, 1, code)
		assert.Empty(t, out.String())
	})
	t.Run("websocket", func(t *testing.T) {
		pr, pw := io.Pipe()
		out := &syncBuffer{}
		done := make(chan int)
		go func() {
			done <- run([]string{"-body", "first", "ws://" + hostPort + "/ws"}, pr, out)
		}()
		require.Eventually(t, func() bool {
			return strings.Contains(out.String(), "< echo:first\n")
		}, 5*time.Second, time.Millisecond)
		_, err := pw.Write([]byte("second\n"))
		require.NoError(t, err)
		require.Eventually(t, func() bool {
			return strings.Contains(out.String(), "< echo:second\n")
		}, 5*time.Second, time.Millisecond)
		require.NoError(t, pw.Close())
		select {
		case code := <-done:
			assert.Equal(t, 0, code)
		case <-time.After(5 * time.Second):
			t.Fatal("run did not return")
		}
		assert.True(t, strings.HasSuffix(out.String(), "* Connection closed\n"), out.String())
	})
}

func TestPrintRecord(t *testing.T) {
	var out bytes.Buffer
	printRecord(&out, nil)
	assert.Empty(t, out.String())
}

func TestGate(t *testing.T) {
	g := &gate{}
	n := 0
	assert.True(t, g.do(func() { n++ }))
	g.shut()
	assert.False(t, g.do(func() { n++ }))
	assert.Equal(t, 1, n)
}

type countingDialer struct {
	lock  sync.Mutex
	calls int
}

func (d *countingDialer) DialContext(context.Context, string, http.Header) (flare.Conn, *http.Response, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.calls++
	return nil, nil, errors.New("refused")
}

// Lines read after the session has ended never open a new session.
func TestPump_SessionEnded(t *testing.T) {
	dialer := &countingDialer{}
	ex := &flare.Executor{Dialer: dialer}
	g := &gate{}
	g.shut()
	d := request.Descriptor{Protocol: request.WS, URI: "example.test"}

	pump(context.Background(), ex, d, strings.NewReader("one\ntwo\n"), g)
	ex.Wait()

	assert.Equal(t, 0, dialer.calls)
	assert.Equal(t, lifecycle.Idle, ex.State())
	assert.Empty(t, ex.Responses())
}
