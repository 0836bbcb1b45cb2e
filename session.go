// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flare

import (
	"fmt"
	"time"

	"github.com/gogama/flare/command"
	"github.com/gogama/flare/lifecycle"
	"github.com/gogama/flare/racing"
	"github.com/gogama/flare/response"
)

// A session is the state owned by one session task goroutine. Only
// that goroutine touches it after it is spawned.
type session struct {
	a        *Activation
	ch       *command.Channel
	state    *lifecycle.Cell
	sink     *response.Sink
	handlers *HandlerGroup
	log      EventLog
	timeout  time.Duration
	done     chan struct{}

	doer   HTTPDoer
	dialer Dialer
	poll   racing.Scheduler
}

func (s *session) begin() {
	s.a.Start = time.Now()
	s.handlers.run(BeforeSessionStart, s.a)
}

func (s *session) push(r response.Record) {
	s.sink.Push(r)
	s.a.Record = &r
	s.a.Records++
	s.handlers.run(AfterResponse, s.a)
}

func (s *session) terminated() {
	s.a.Terminated = true
	s.handlers.run(AfterTerminate, s.a)
}

// end must be the last thing the session task does. The executor goes
// Idle before the channel is detached, so a Terminate that finds the
// channel detached may safely force Idle itself.
func (s *session) end() {
	s.a.End = time.Now()
	s.handlers.run(AfterSessionEnd, s.a)
	s.state.Store(lifecycle.Idle)
	s.dropped(s.ch.Detach(), "session ended")
	close(s.done)
}

// dropped reports the Execute commands in cmds, which will never be
// sent.
func (s *session) dropped(cmds []command.Command, why string) {
	n := 0
	for _, cmd := range cmds {
		if cmd.Kind == command.Execute {
			n++
		}
	}
	if n > 0 {
		s.log.Warn(fmt.Sprintf("%d message(s) dropped: %s", n, why))
	}
}
