// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flare

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/mock"
)

type mockHTTPDoer struct {
	mock.Mock
}

func newMockHTTPDoer(t *testing.T) *mockHTTPDoer {
	m := &mockHTTPDoer{}
	m.Test(t)
	return m
}

func (m *mockHTTPDoer) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	err := args.Error(1)
	if resp, ok := args.Get(0).(*http.Response); ok {
		return resp, err
	}
	return nil, err
}

type mockHTTPDoerWithCloseIdleConnections struct {
	mockHTTPDoer
}

func newMockHTTPDoerWithCloseIdleConnections(t *testing.T) *mockHTTPDoerWithCloseIdleConnections {
	m := &mockHTTPDoerWithCloseIdleConnections{}
	m.Test(t)
	return m
}

func (m *mockHTTPDoerWithCloseIdleConnections) CloseIdleConnections() {
	m.Called()
}

type mockDialer struct {
	mock.Mock
}

func newMockDialer(t *testing.T) *mockDialer {
	m := &mockDialer{}
	m.Test(t)
	return m
}

func (m *mockDialer) DialContext(ctx context.Context, url string, h http.Header) (Conn, *http.Response, error) {
	args := m.Called(ctx, url, h)
	var conn Conn
	if c, ok := args.Get(0).(Conn); ok {
		conn = c
	}
	var resp *http.Response
	if r, ok := args.Get(1).(*http.Response); ok {
		resp = r
	}
	return conn, resp, args.Error(2)
}

type mockReadCloser struct {
	mock.Mock
}

func newMockReadCloser(t *testing.T) *mockReadCloser {
	m := &mockReadCloser{}
	m.Test(t)
	return m
}

func (m *mockReadCloser) Read(p []byte) (n int, err error) {
	args := m.Called(p)
	n = args.Int(0)
	err = args.Error(1)
	return
}

func (m *mockReadCloser) Close() error {
	args := m.Called()
	return args.Error(0)
}

var errFakeConnClosed = errors.New("use of closed network connection")

// fakeConn is an in-memory WebSocket connection. Frames queued with
// receive are returned by ReadMessage; writes are recorded.
type fakeConn struct {
	inbound   chan frame
	closed    chan struct{}
	closeOnce sync.Once
	lock      sync.Mutex
	writes    []frame
	writeErr  error
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		inbound: make(chan frame, 16),
		closed:  make(chan struct{}),
	}
}

func (c *fakeConn) receive(text string) {
	c.inbound <- frame{messageType: websocket.TextMessage, data: []byte(text)}
}

func (c *fakeConn) fail(err error) {
	c.inbound <- frame{err: err}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case f := <-c.inbound:
		return f.messageType, f.data, f.err
	case <-c.closed:
		return 0, nil, errFakeConnClosed
	}
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	c.writes = append(c.writes, frame{messageType: messageType, data: data})
	return nil
}

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

func (c *fakeConn) setWriteErr(err error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.writeErr = err
}

// texts returns the payloads of the text frames written so far.
func (c *fakeConn) texts() []string {
	c.lock.Lock()
	defer c.lock.Unlock()
	var out []string
	for _, w := range c.writes {
		if w.messageType == websocket.TextMessage {
			out = append(out, string(w.data))
		}
	}
	return out
}

func (c *fakeConn) closeFrames() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	n := 0
	for _, w := range c.writes {
		if w.messageType == websocket.CloseMessage {
			n++
		}
	}
	return n
}

type logEntry struct {
	level string
	msg   string
}

type recordingLog struct {
	lock    sync.Mutex
	entries []logEntry
}

func (l *recordingLog) add(level, msg string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.entries = append(l.entries, logEntry{level, msg})
}

func (l *recordingLog) Info(msg string)  { l.add("info", msg) }
func (l *recordingLog) Warn(msg string)  { l.add("warn", msg) }
func (l *recordingLog) Error(msg string) { l.add("error", msg) }

func (l *recordingLog) byLevel(level string) []string {
	l.lock.Lock()
	defer l.lock.Unlock()
	var out []string
	for _, e := range l.entries {
		if e.level == level {
			out = append(out, e.msg)
		}
	}
	return out
}

type trace struct {
	lock  sync.Mutex
	calls []string
}

func (e *Executor) addTraceHandlers() *trace {
	tr := &trace{}
	f := func(evt Event, _ *Activation) {
		tr.lock.Lock()
		defer tr.lock.Unlock()
		tr.calls = append(tr.calls, evt.Name())
	}
	if e.Handlers == nil {
		e.Handlers = &HandlerGroup{}
	}
	for _, evt := range Events() {
		e.Handlers.PushBack(evt, HandlerFunc(f))
	}
	return tr
}

func (tr *trace) get() []string {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	return append([]string(nil), tr.calls...)
}
