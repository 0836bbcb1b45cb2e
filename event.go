// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flare

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in an Executor to extend it with
// custom functionality such as metrics.
type Event int

const (
	// BeforeSessionStart identifies the event that occurs on the
	// session goroutine before any network I/O.
	//
	// When Executor fires BeforeSessionStart, the activation's ID,
	// descriptor, connection-only flag, and start time are set.
	BeforeSessionStart Event = iota
	// AfterConnect identifies the event that occurs after a WebSocket
	// opening handshake succeeds and the session is open. It never
	// fires for an HTTP exchange.
	AfterConnect
	// AfterSend identifies the event that occurs after a message is
	// written to an open WebSocket connection.
	//
	// When Executor fires AfterSend, the activation's Message field is
	// the message just sent.
	AfterSend
	// AfterResponse identifies the event that occurs after a record is
	// pushed into the response sink: an HTTP response, a WebSocket
	// frame, a failure record, or the sentinel that marks a closed
	// WebSocket session.
	//
	// When Executor fires AfterResponse, the activation's Record field
	// is the record just pushed.
	AfterResponse
	// AfterTerminate identifies the event that occurs after the session
	// task acts on a Terminate command.
	//
	// AfterTerminate is followed by AfterSessionEnd. For a WebSocket
	// session that was open, it is preceded by the AfterResponse event
	// for the closed-connection sentinel.
	AfterTerminate
	// AfterSessionEnd identifies the event that occurs when the
	// session task is about to exit.
	//
	// When Executor fires AfterSessionEnd, the activation's end time
	// is set. The executor is still Busy or Connected while handlers
	// run, and becomes Idle immediately afterward.
	AfterSessionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeSessionStart",
	"AfterConnect",
	"AfterSend",
	"AfterResponse",
	"AfterTerminate",
	"AfterSessionEnd",
}

// Events returns a slice containing all events which can occur in a
// session task, in the order in which they would first occur.
func Events() []Event {
	return []Event{
		BeforeSessionStart,
		AfterConnect,
		AfterSend,
		AfterResponse,
		AfterTerminate,
		AfterSessionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
