// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadProtocol is returned when a protocol name is not one of HTTP,
// HTTPS, WS, or WSS.
var ErrBadProtocol = errors.New("flare/request: unknown protocol")

// A Protocol identifies the wire protocol of a request descriptor. The
// HTTP family (HTTP, HTTPS) results in a one-shot exchange; the
// WebSocket family (WS, WSS) results in a persistent session.
type Protocol int

const (
	// HTTP is plain-text HTTP.
	HTTP Protocol = iota
	// HTTPS is HTTP over TLS. It is the default when a URL carries no
	// recognizable scheme.
	HTTPS
	// WS is a plain-text WebSocket session.
	WS
	// WSS is a WebSocket session over TLS.
	WSS
	protocolSentinel
)

var protocolNames = []string{"HTTP", "HTTPS", "WS", "WSS"}

// Protocols returns every supported protocol in declaration order.
func Protocols() []Protocol {
	return []Protocol{HTTP, HTTPS, WS, WSS}
}

// ParseProtocol returns the protocol named by s. The comparison is
// case-insensitive.
func ParseProtocol(s string) (Protocol, error) {
	for i, name := range protocolNames {
		if strings.EqualFold(s, name) {
			return Protocol(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadProtocol, s)
}

// Valid reports whether p is one of the declared protocols.
func (p Protocol) Valid() bool {
	return p >= HTTP && p < protocolSentinel
}

// String returns the upper-case protocol name, for example "HTTPS".
func (p Protocol) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Protocol(%d)", int(p))
	}
	return protocolNames[p]
}

// Scheme returns the lower-case URL scheme for the protocol.
func (p Protocol) Scheme() string {
	return strings.ToLower(p.String())
}

// IsHTTP reports whether p belongs to the HTTP family.
func (p Protocol) IsHTTP() bool {
	return p == HTTP || p == HTTPS
}

// IsWS reports whether p belongs to the WebSocket family.
func (p Protocol) IsWS() bool {
	return p == WS || p == WSS
}

// A Method is an HTTP request method. It is meaningful only for the
// HTTP protocol family. The empty Method means GET.
type Method string

const (
	GET    Method = "GET"
	POST   Method = "POST"
	PUT    Method = "PUT"
	PATCH  Method = "PATCH"
	DELETE Method = "DELETE"
)

// Methods returns the methods a request editor offers.
func Methods() []Method {
	return []Method{GET, POST, PUT, PATCH, DELETE}
}

// Valid reports whether m is one of Methods(). The empty Method is not
// valid; use OrDefault first.
func (m Method) Valid() bool {
	switch m {
	case GET, POST, PUT, PATCH, DELETE:
		return true
	default:
		return false
	}
}

// OrDefault returns m, or GET if m is empty.
func (m Method) OrDefault() Method {
	if m == "" {
		return GET
	}
	return m
}
