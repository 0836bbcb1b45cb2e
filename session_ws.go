// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flare

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gogama/flare/command"
	"github.com/gogama/flare/racing"
	"github.com/gogama/flare/response"
	"github.com/gogama/flare/transient"
	"github.com/gorilla/websocket"
)

// maxHandshakeBody caps how much of a rejected handshake's response
// body is kept.
const maxHandshakeBody = 64 << 10

func (s *session) runWS() {
	defer s.end()
	s.begin()

	d := s.a.Descriptor
	u := d.URL()
	h := d.HTTPHeader()
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	dialer := s.dialer
	x, deferred, err := racing.Race(ctx, s.ch.Receive(), func(ctx context.Context) dialed {
		conn, resp, err := dialer.DialContext(ctx, u, h)
		return dialed{conn, resp, err}
	}, dialed.release)
	if err == racing.Interrupted {
		s.dropped(deferred, "not connected")
		s.log.Info(fmt.Sprintf("Connection to %s cancelled", u))
		s.terminated()
		return
	} else if err != nil {
		x.err = err
	}
	if x.err != nil {
		s.a.Err = x.err
		s.dropped(append(deferred, s.ch.Drain()...), "not connected")
		s.log.Warn(fmt.Sprintf("Could not connect to %s: %s", u, transient.Reason(x.err)))
		s.push(handshakeRecord(x.resp, x.err))
		return
	}

	s.log.Info(fmt.Sprintf("Connected to %s", u))
	s.handlers.run(AfterConnect, s.a)
	s.serve(x.conn, deferred)
}

// dialed is the outcome of one WebSocket opening handshake.
type dialed struct {
	conn Conn
	resp *http.Response
	err  error
}

// release closes a connection the session no longer wants.
func (x dialed) release() {
	if x.conn != nil {
		_ = x.conn.Close()
	}
	if x.resp != nil && x.resp.Body != nil {
		_ = x.resp.Body.Close()
	}
}

type frame struct {
	messageType int
	data        []byte
	err         error
}

// serve runs the open phase of a WebSocket session. Every way out of
// serve pushes exactly one closed-connection sentinel.
func (s *session) serve(conn Conn, deferred []command.Command) {
	frames := make(chan frame)
	stop := make(chan struct{})
	defer close(stop)
	go readFrames(conn, frames, stop)

	if !s.a.ConnectionOnly && s.a.Descriptor.Body != "" {
		s.send(conn, s.a.Descriptor.Body)
	}
	for _, cmd := range deferred {
		s.send(conn, cmd.Descriptor.Body)
	}

	ticker := racing.NewTicker(s.poll)
	defer ticker.Stop()
	for {
		select {
		case f := <-frames:
			if f.err != nil {
				s.a.Err = f.err
				s.lost(f.err)
				_ = conn.Close()
				s.push(response.Closed())
				return
			}
			if f.messageType == websocket.TextMessage || f.messageType == websocket.BinaryMessage {
				s.push(response.FromText(string(f.data)))
			}
		case <-ticker.C():
			cmds := s.ch.Drain()
			for _, cmd := range cmds {
				if cmd.Kind == command.Terminate {
					s.close(conn)
					s.push(response.Closed())
					s.terminated()
					return
				}
				s.send(conn, cmd.Descriptor.Body)
			}
			ticker.Next(len(cmds) > 0)
		}
	}
}

func (s *session) send(conn Conn, msg string) {
	if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		s.a.Err = err
		s.log.Warn(fmt.Sprintf("Failed to send message: %s", transient.Reason(err)))
		return
	}
	s.a.Message = msg
	s.a.Sent++
	s.handlers.run(AfterSend, s.a)
}

// close performs a best-effort closing handshake. It does not wait for
// the peer to answer.
func (s *session) close(conn Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := conn.WriteMessage(websocket.CloseMessage, msg); err != nil {
		s.log.Warn(fmt.Sprintf("Failed to send close frame: %s", transient.Reason(err)))
	}
	_ = conn.Close()
	s.log.Info(fmt.Sprintf("Disconnected from %s", s.a.Descriptor.URL()))
}

func (s *session) lost(err error) {
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		s.log.Info(fmt.Sprintf("Connection closed by server (%d)", ce.Code))
		return
	}
	s.log.Warn(fmt.Sprintf("Connection lost: %s", transient.Reason(err)))
}

// readFrames delivers inbound frames until the connection fails or stop
// is closed. The error that ends the connection is delivered too.
func readFrames(conn Conn, frames chan<- frame, stop <-chan struct{}) {
	for {
		mt, data, err := conn.ReadMessage()
		select {
		case frames <- frame{messageType: mt, data: data, err: err}:
		case <-stop:
			return
		}
		if err != nil {
			return
		}
	}
}

func handshakeRecord(resp *http.Response, err error) response.Record {
	if resp == nil || resp.StatusCode == http.StatusSwitchingProtocols {
		return response.FromError(err)
	}
	var body []byte
	if resp.Body != nil {
		body, _ = io.ReadAll(io.LimitReader(resp.Body, maxHandshakeBody))
		_ = resp.Body.Close()
	}
	return response.FromHandshake(resp, body)
}
