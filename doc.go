// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package flare provides a request executor for an API testing tool. It
turns a request descriptor into network I/O, either a one-shot HTTP
exchange or a long-lived WebSocket session, and collects every outcome
as a record in a response sink that a user interface polls.

Create an Executor and fire a request:

	ex := &flare.Executor{}
	d := request.Descriptor{Protocol: request.HTTPS, URI: "example.com/api"}
	ex.Execute(d, false)
	...
	for _, r := range ex.Responses() {
		fmt.Println(r.Code, r.Raw)
	}

Execute never blocks on the network. The executor moves from Idle to
Busy for the life of an HTTP exchange, and from Idle to Connected for the
life of a WebSocket session. While Connected, each further call to
Execute queues the descriptor's body for sending over the open socket:

	d := request.Descriptor{Protocol: request.WSS, URI: "example.com/socket", Body: "hello"}
	ex.Execute(d, false) // connects, then sends "hello"
	d.Body = "again"
	ex.Execute(d, false) // sends "again"
	ex.Terminate()       // closes the socket

Terminate abandons an HTTP exchange without producing a record, or closes
a WebSocket session, which always ends with a record whose body is
"Connection closed".

For control over how the executor sends HTTP requests, use a custom
HTTPDoer, for example a GoLang standard HTTP client:

	ex := &flare.Executor{
		HTTPDoer: &http.Client{
			..., // See package "net/http" for detailed documentation
		},
	}

For control over how long an exchange or handshake may take, set a
timeout policy using package timeout:

	ex := &flare.Executor{
		TimeoutPolicy: timeout.ByProtocol(time.Minute, 10*time.Second),
	}

To hook into the session lifecycle, install a handler into the
appropriate handler chain:

	handlers := &flare.HandlerGroup{}
	handlers.PushBack(flare.AfterResponse, flare.HandlerFunc(
		func(_ flare.Event, a *flare.Activation) {
			log.Printf("%s got %d", a.Descriptor.URL(), a.Record.Code)
		}),
	)
	ex := &flare.Executor{
		Handlers: handlers,
	}

Notices about what the executor is doing, such as a message dropped
because the queue is full, go to the EventLog. Package logging adapts a
zerolog logger to EventLog.
*/
package flare
