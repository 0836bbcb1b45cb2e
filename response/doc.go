// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package response contains Record, one completed response, and Sink, the
shared ordered collection of records for a request.

Records are constructed with one of the From functions, each of which
implements a mapping rule:

• FromHTTP for an HTTP response of any status, with its body read in
full;

• FromReadError for an HTTP response whose body could not be read;

• FromError for a transport failure without a response (DNS failure,
connection refused, timeout);

• FromText for a WebSocket frame, with code zero;

• FromHandshake for a WebSocket handshake rejected with an HTTP
response; and

• Closed for the sentinel record ending a WebSocket session.

Every constructor computes a best-effort JSON view of the body. Parsing
failure is not an error: the view is simply empty and the raw text
remains authoritative.
*/
package response
