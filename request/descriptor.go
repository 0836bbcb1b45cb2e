// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/http/httpguts"
)

const (
	nilCtxMsg = "flare/request: nil context"
)

// A Header is a single request header. Headers are kept as an ordered
// list rather than a map so that the order the user typed them in is
// the order they are sent.
type Header struct {
	Key   string
	Value string
}

// A Descriptor describes one request as edited by the user: protocol,
// method, target URI, headers, and a body (for HTTP) or message payload
// (for WebSocket).
//
// A Descriptor handed to an executor is treated as an immutable
// snapshot. The executor calls Clone when a session is activated, so
// later edits to the caller's copy do not affect an in-flight session.
type Descriptor struct {
	// Name is the display name of the request. It is informational
	// only.
	Name string

	// Protocol selects HTTP, HTTPS, WS, or WSS.
	Protocol Protocol

	// Method specifies the HTTP method. An empty string means GET. It
	// is ignored for the WebSocket protocols.
	Method Method

	// URI is the scheme-less target, for example "example.test/ok".
	// The scheme is derived from Protocol.
	URI string

	// Headers are sent with the HTTP request, or with the WebSocket
	// opening handshake.
	Headers []Header

	// Body is the HTTP request body, or the WebSocket message payload.
	// An empty Body means no request body is sent.
	Body string
}

// Clone returns a deep copy of d.
func (d Descriptor) Clone() Descriptor {
	d2 := d
	if d.Headers != nil {
		d2.Headers = make([]Header, len(d.Headers))
		copy(d2.Headers, d.Headers)
	}
	return d2
}

// URL returns the absolute target URL formed by concatenating the
// protocol scheme and URI. Leading slashes and backslashes on the URI
// are dropped.
func (d *Descriptor) URL() string {
	return d.Protocol.Scheme() + "://" + trimSlashes(d.URI)
}

// Validate checks that d can be turned into network I/O. It checks the
// protocol, that the method is one of Methods() (HTTP family only),
// that the URI is non-empty,
// and that every header has a valid field name.
func (d *Descriptor) Validate() error {
	if !d.Protocol.Valid() {
		return fmt.Errorf("%w: %s", ErrBadProtocol, d.Protocol)
	}
	if d.Protocol.IsHTTP() && !d.Method.OrDefault().Valid() {
		return fmt.Errorf("flare/request: invalid method %q", d.Method)
	}
	if strings.TrimSpace(trimSlashes(d.URI)) == "" {
		return errors.New("flare/request: empty URI")
	}
	for _, h := range d.Headers {
		if !httpguts.ValidHeaderFieldName(h.Key) {
			return fmt.Errorf("flare/request: invalid header name %q", h.Key)
		}
		if !httpguts.ValidHeaderFieldValue(h.Value) {
			return fmt.Errorf("flare/request: invalid value for header %q", h.Key)
		}
	}
	return nil
}

// HTTPHeader converts the ordered header list to an http.Header. Keys
// that repeat produce multi-valued entries in list order. Empty keys
// are skipped.
func (d *Descriptor) HTTPHeader() http.Header {
	h := make(http.Header, len(d.Headers))
	for _, kv := range d.Headers {
		if kv.Key == "" {
			continue
		}
		h.Add(kv.Key, kv.Value)
	}
	return h
}

// ToRequest creates an HTTP request corresponding to the descriptor.
// The context of the new request is set to ctx, which may not be nil.
//
// ToRequest is only meaningful for the HTTP protocol family.
func (d *Descriptor) ToRequest(ctx context.Context) (*http.Request, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if !d.Protocol.IsHTTP() {
		return nil, fmt.Errorf("flare/request: %s is not an HTTP protocol", d.Protocol)
	}
	var body io.Reader
	if d.Body != "" {
		body = strings.NewReader(d.Body)
	}
	r, err := http.NewRequestWithContext(ctx, string(d.Method.OrDefault()), d.URL(), body)
	if err != nil {
		return nil, err
	}
	r.Header = d.HTTPHeader()
	if host := r.Header.Get("Host"); host != "" {
		r.Host = host
	}
	r.URL.Host = removeEmptyPort(r.URL.Host)
	return r, nil
}

func trimSlashes(s string) string {
	return strings.TrimLeft(s, `/\`)
}

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
