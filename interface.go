// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flare

import (
	"context"
	"net/http"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package. In
	// particular it must give up promptly, returning an error, when the
	// request's context is cancelled.
	Do(r *http.Request) (*http.Response, error)
}

// A Dialer opens WebSocket client connections.
type Dialer interface {
	// DialContext performs the WebSocket opening handshake with the
	// server at url, sending the additional handshake headers h.
	//
	// If the server answers the handshake with an HTTP response other
	// than 101 Switching Protocols, DialContext returns a non-nil error
	// together with that response, so the caller can show it to the
	// user. The response body, if readable, need not be closed.
	DialContext(ctx context.Context, url string, h http.Header) (Conn, *http.Response, error)
}

// A Conn is an open WebSocket connection.
//
// The executor calls ReadMessage from one goroutine and WriteMessage and
// Close from another, which matches the concurrency contract of the
// gorilla/websocket Conn type.
type Conn interface {
	// ReadMessage blocks until the next data message arrives and
	// returns its message type (text or binary) and payload. It
	// returns a non-nil error once the connection is closed by either
	// side or fails.
	ReadMessage() (messageType int, p []byte, err error)
	// WriteMessage writes a message of the given type.
	WriteMessage(messageType int, data []byte) error
	// Close closes the underlying network connection without sending
	// a close frame.
	Close() error
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes any connections which were previously connected from previous
// requests but are now sitting idle in a "keep-alive" state. It does
// not interrupt any connections currently in use.
type IdleCloser interface {
	CloseIdleConnections()
}

// An EventLog receives human-readable notices about what an executor
// is doing: sessions opening and closing, messages dropped, requests
// rejected. It is typically shown in an event bar or written to a log.
//
// Implementations must be safe for concurrent use by multiple
// goroutines.
type EventLog interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

type nopLog struct{}

func (nopLog) Info(string)  {}
func (nopLog) Warn(string)  {}
func (nopLog) Error(string) {}
