// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flare

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gogama/flare/command"
	"github.com/gogama/flare/lifecycle"
	"github.com/gogama/flare/racing"
	"github.com/gogama/flare/request"
	"github.com/gogama/flare/response"
	"github.com/gogama/flare/timeout"
	"github.com/google/uuid"
)

var emptyHandlers = HandlerGroup{}

// An Executor turns request descriptors into network I/O: one-shot HTTP
// exchanges and long-lived WebSocket sessions. Its zero value is a
// valid configuration.
//
// The zero value executor uses an HTTP/2-enabled http.Client as the
// HTTPDoer, a gorilla/websocket dialer as the Dialer,
// timeout.DefaultPolicy as the timeout policy, polls for outbound
// WebSocket messages every racing.DefaultInterval, buffers up to
// command.DefaultCapacity commands, runs no event handlers, and
// discards its event log.
//
// An Executor is always in one of three lifecycle states. It is Idle
// when no session task is alive, Busy while an HTTP exchange is in
// flight, and Connected while a WebSocket session is being opened or is
// open. At most one session task is alive per Executor at any time.
//
// The methods of Executor never block on the network, never return an
// error, and are safe for concurrent use by multiple goroutines. All
// network outcomes, including failures, are delivered as records in the
// response sink; all rejected or dropped requests are reported on the
// event log.
//
// Fields must not be changed after the first call to Execute.
type Executor struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, a shared client built by NewHTTPClient(false)
	// is used.
	HTTPDoer HTTPDoer
	// Dialer opens WebSocket connections.
	//
	// If Dialer is nil, WebSocketDialer{} is used.
	Dialer Dialer
	// TimeoutPolicy specifies how long an HTTP exchange, or a WebSocket
	// opening handshake, may take.
	//
	// If TimeoutPolicy is nil, timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy
	// PollScheduler decides how often an open WebSocket session polls
	// for outbound messages.
	//
	// If PollScheduler is nil, racing.Every(PollInterval) is used.
	PollScheduler racing.Scheduler
	// PollInterval is the fixed poll interval used when PollScheduler
	// is nil. If zero, racing.DefaultInterval is used.
	PollInterval time.Duration
	// Capacity is the number of commands that may be queued for a
	// session task before further commands are dropped.
	//
	// If Capacity is zero, command.DefaultCapacity is used.
	Capacity int
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during a session task.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
	// EventLog receives human-readable notices about the executor's
	// activity.
	//
	// If EventLog is nil, notices are discarded.
	EventLog EventLog
	// Sink receives every record the executor produces.
	//
	// If Sink is nil, the executor creates one on first use.
	Sink *response.Sink

	lock     sync.Mutex
	state    lifecycle.Cell
	sender   *command.Channel
	done     chan struct{}
	sinkLock sync.Mutex
}

// Execute fires the request described by d.
//
// What Execute does depends on the executor's state:
//
// • Connected: d is queued for sending over the open WebSocket session.
// Only its body is used. If the queue is full, or the session has just
// ended, the message is dropped and a warning is logged.
//
// • Busy: the call is ignored, since an HTTP exchange is in flight.
//
// • Idle: a new session task is spawned. If d uses protocol HTTP or
// HTTPS, the executor becomes Busy and performs a one-shot exchange.
// If d uses WS or WSS, the executor becomes Connected and opens a
// session. Unless connectionOnly is true, the body of d is sent as
// the first message once the session is open.
//
// Execute takes a snapshot of d, so the caller may keep changing its
// own copy. An invalid descriptor is reported on the event log and
// otherwise ignored.
func (e *Executor) Execute(d request.Descriptor, connectionOnly bool) {
	d = d.Clone()

	e.lock.Lock()
	defer e.lock.Unlock()

	switch e.state.Load() {
	case lifecycle.Connected:
		if e.sender == nil {
			e.eventLog().Error("Connected without a session; message dropped")
			return
		}
		if err := e.sender.Send(command.NewExecute(d)); err != nil {
			e.eventLog().Warn(fmt.Sprintf("Message dropped: %s", dropReason(err)))
		}
		return
	case lifecycle.Busy:
		e.eventLog().Info("Request already in progress")
		return
	}

	if err := d.Validate(); err != nil {
		e.eventLog().Error(fmt.Sprintf("Invalid request: %s", strings.TrimPrefix(err.Error(), "flare/request: ")))
		return
	}

	next := lifecycle.Busy
	if d.Protocol.IsWS() {
		next = lifecycle.Connected
	}
	if !e.state.CompareAndSwap(lifecycle.Idle, next) {
		e.eventLog().Error(fmt.Sprintf("Cannot start %s session: executor is %s", d.Protocol, e.state.Load()))
		return
	}

	ch := command.NewChannel(e.Capacity)
	done := make(chan struct{})
	e.sender = ch
	e.done = done

	s := &session{
		a: &Activation{
			ID:             uuid.NewString(),
			Descriptor:     d,
			ConnectionOnly: connectionOnly,
		},
		ch:       ch,
		state:    &e.state,
		sink:     e.sink(),
		handlers: e.handlers(),
		log:      e.eventLog(),
		timeout:  e.timeoutPolicy().Timeout(&d),
		done:     done,
	}
	if d.Protocol.IsWS() {
		s.dialer = e.dialer()
		s.poll = e.pollScheduler()
		go s.runWS()
	} else {
		s.doer = e.doer()
		go s.runHTTP()
	}
}

// Terminate asks the current session task, if any, to end.
//
// An HTTP exchange in flight is abandoned and produces no record. An
// open WebSocket session is closed and produces the closed-connection
// sentinel record. Terminate does not wait for the session task to
// exit; use Wait for that.
//
// If no session task is alive, Terminate forces the executor to Idle.
func (e *Executor) Terminate() {
	e.lock.Lock()
	defer e.lock.Unlock()

	if e.sender == nil {
		e.state.Store(lifecycle.Idle)
		return
	}

	err := e.sender.Send(command.NewTerminate())
	switch err {
	case nil:
	case command.ErrDetached:
		e.sender = nil
		e.state.Store(lifecycle.Idle)
	default:
		e.eventLog().Warn(fmt.Sprintf("Terminate dropped: %s", dropReason(err)))
	}
}

// State returns the executor's current lifecycle state.
func (e *Executor) State() lifecycle.State {
	return e.state.Load()
}

// Responses returns a snapshot of every record in the response sink,
// oldest first.
func (e *Executor) Responses() []response.Record {
	return e.sink().Snapshot()
}

// Wait blocks until the session task most recently spawned, if any, has
// exited. It returns immediately if no session task was ever spawned.
func (e *Executor) Wait() {
	e.lock.Lock()
	done := e.done
	e.lock.Unlock()
	if done != nil {
		<-done
	}
}

// CloseIdleConnections invokes the same method on the executor's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
func (e *Executor) CloseIdleConnections() {
	if ic, ok := e.doer().(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (e *Executor) doer() HTTPDoer {
	if e.HTTPDoer == nil {
		return sharedHTTPDoer()
	}

	return e.HTTPDoer
}

func (e *Executor) dialer() Dialer {
	if e.Dialer == nil {
		return WebSocketDialer{}
	}

	return e.Dialer
}

func (e *Executor) timeoutPolicy() timeout.Policy {
	if e.TimeoutPolicy == nil {
		return timeout.DefaultPolicy
	}

	return e.TimeoutPolicy
}

func (e *Executor) pollScheduler() racing.Scheduler {
	if e.PollScheduler == nil {
		return racing.Every(e.PollInterval)
	}

	return e.PollScheduler
}

func (e *Executor) handlers() *HandlerGroup {
	if e.Handlers == nil {
		return &emptyHandlers
	}

	return e.Handlers
}

func (e *Executor) eventLog() EventLog {
	if e.EventLog == nil {
		return nopLog{}
	}

	return e.EventLog
}

func (e *Executor) sink() *response.Sink {
	e.sinkLock.Lock()
	defer e.sinkLock.Unlock()
	if e.Sink == nil {
		e.Sink = &response.Sink{}
	}

	return e.Sink
}

func dropReason(err error) string {
	switch err {
	case command.ErrFull:
		return "queue full"
	case command.ErrDetached:
		return "session ended"
	default:
		return err.Error()
	}
}

func urlErrorWrap(d *request.Descriptor, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(string(d.Method.OrDefault())),
		URL: d.URL(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
