// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains Descriptor, the value a request editor hands to
an executor when the user fires a request, together with its Protocol,
Method, and Header types.

A Descriptor is a plain value. It describes a one-shot HTTP exchange
(protocols HTTP and HTTPS) or a persistent WebSocket session (protocols
WS and WSS):

	d := request.Descriptor{
		Protocol: request.HTTPS,
		Method:   request.POST,
		URI:      "example.test/upload",
		Headers:  []request.Header{{Key: "Content-Type", Value: "application/json"}},
		Body:     `{"a":1}`,
	}

The URI is stored without a scheme; the scheme is derived from the
protocol. When the user pastes a full URL, SplitURL (or
Descriptor.SetURL) detects the protocol and strips the scheme:

	var d request.Descriptor
	d.SetURL("wss://example.test/socket") // d.Protocol == WSS

QueryParams and WithQueryParams convert between a URI's query string and
an editable list of key/value pairs.
*/
package request
