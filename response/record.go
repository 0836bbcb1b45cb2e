// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package response

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gogama/flare/request"
	"github.com/gogama/flare/transient"
	"github.com/google/uuid"
)

// ClosedText is the body text of the sentinel record produced when a
// WebSocket session ends.
const ClosedText = "Connection closed"

// HandshakeText prefixes the body text of a record produced when a
// WebSocket server rejects the opening handshake without a body.
const HandshakeText = "WebSocket handshake rejected"

// ReadErrorText is the body text of a record produced when an HTTP
// response arrived but its body could not be read in full.
const ReadErrorText = "Error reading response body"

// A Record is one completed response: an HTTP response, a WebSocket
// frame, or a connection-level event such as a failed connection or a
// closed session.
//
// Records are append-only. Once pushed into a Sink, a Record and the
// slices it references must be treated as immutable.
type Record struct {
	// ID uniquely identifies the record. It is a random (version 4)
	// UUID.
	ID string

	// Time is the local time the record was captured.
	Time time.Time

	// Code is the HTTP status code. It is zero for WebSocket frames,
	// and for connection-level events where no HTTP status is
	// available.
	Code int

	// Raw is the body text exactly as received. It is always the
	// authoritative content of the record. For failures without a
	// body, Raw contains a human-readable description of the failure.
	Raw string

	// Reason is a short human-readable reason: the canonical status
	// text for HTTP responses, or a description of a transport
	// failure. It is empty for WebSocket frames.
	Reason string

	// JSON is a structured view of Raw, derived at construction. It is
	// empty if Raw is not valid JSON.
	JSON JSONView

	// Headers are the response headers, sorted by key.
	Headers []request.Header

	// URL is the final URL that produced the response, after any
	// redirects. It is empty for WebSocket frames and for failures.
	URL string

	// Redirects lists the redirect hops followed before the final
	// response, oldest first.
	Redirects []Redirect
}

// A Redirect is one hop in the redirect chain of an HTTP exchange.
type Redirect struct {
	// URL is the URL that responded with the redirect.
	URL string
	// Code is the redirect status code, for example 302.
	Code int
	// Headers are the headers of the redirect response, sorted by key.
	Headers []request.Header
}

// HasJSON reports whether the record's body parsed as JSON.
func (r *Record) HasJSON() bool {
	return r.JSON.Valid
}

// IsError reports whether the record describes an HTTP error status
// (4xx or 5xx).
func (r *Record) IsError() bool {
	return r.Code >= 400
}

func newRecord(code int, raw string) Record {
	return Record{
		ID:   uuid.NewString(),
		Time: time.Now(),
		Code: code,
		Raw:  raw,
		JSON: ParseJSON(raw),
	}
}

// FromText constructs the record for a WebSocket text frame. The code
// is zero. FromText never fails; if text is not JSON, the JSON view is
// simply empty.
func FromText(text string) Record {
	return newRecord(0, text)
}

// Closed constructs the sentinel record that marks the end of a
// WebSocket session, whether the peer closed it, the connection failed,
// or the user terminated it.
func Closed() Record {
	return newRecord(0, ClosedText)
}

// FromHTTP constructs the record for an HTTP response whose body has
// been read in full.
//
// Every status code produces a record. For an error status (4xx or 5xx)
// with an empty body, Raw is set to the reason text so the user sees
// why the request failed.
func FromHTTP(resp *http.Response, body []byte) Record {
	raw := string(body)
	reason := statusReason(resp.StatusCode)
	if len(body) == 0 && resp.StatusCode >= 400 {
		raw = reason
	}
	r := newRecord(resp.StatusCode, raw)
	r.Reason = reason
	r.Headers = flatten(resp.Header)
	if resp.Request != nil && resp.Request.URL != nil {
		r.URL = resp.Request.URL.String()
	}
	r.Redirects = redirects(resp)
	return r
}

// FromReadError constructs the record for an HTTP response that
// arrived, but whose body could not be read. The status code and
// headers are kept; the body is replaced with ReadErrorText.
func FromReadError(resp *http.Response, err error) Record {
	r := newRecord(resp.StatusCode, ReadErrorText)
	r.Reason = transient.Reason(err)
	r.Headers = flatten(resp.Header)
	if resp.Request != nil && resp.Request.URL != nil {
		r.URL = resp.Request.URL.String()
	}
	return r
}

// FromError constructs the record for an exchange or handshake that
// failed without producing a readable response, for example because the
// host could not be resolved or the connection was refused.
//
// The code is zero and Raw holds a human-readable reason.
func FromError(err error) Record {
	reason := transient.Reason(err)
	r := newRecord(0, reason)
	r.Reason = reason
	return r
}

// FromHandshake constructs the record for a WebSocket opening handshake
// the server answered with an HTTP response other than 101 Switching
// Protocols. It behaves like FromHTTP, except that an empty body is
// always replaced with a description of the rejected handshake.
func FromHandshake(resp *http.Response, body []byte) Record {
	if len(body) > 0 {
		return FromHTTP(resp, body)
	}
	r := FromHTTP(resp, []byte(HandshakeText+": "+statusReason(resp.StatusCode)))
	r.Redirects = nil
	return r
}

func statusReason(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return fmt.Sprintf("Status %d", code)
}

func flatten(h http.Header) []request.Header {
	if len(h) == 0 {
		return nil
	}
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]request.Header, 0, len(keys))
	for _, k := range keys {
		for _, v := range h[k] {
			out = append(out, request.Header{Key: k, Value: v})
		}
	}
	return out
}

// redirects walks the chain of requests behind resp. Each request made
// because of a redirect carries the redirect response that caused it.
func redirects(resp *http.Response) []Redirect {
	var chain []Redirect
	for req := resp.Request; req != nil && req.Response != nil; req = req.Response.Request {
		prev := req.Response
		hop := Redirect{
			Code:    prev.StatusCode,
			Headers: flatten(prev.Header),
		}
		if prev.Request != nil && prev.Request.URL != nil {
			hop.URL = prev.Request.URL.String()
		}
		chain = append(chain, hop)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
