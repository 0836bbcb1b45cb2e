// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"strings"
)

// schemePrefixes is ordered so that "https:" is tried before "http:"
// would otherwise match a prefix of it, and likewise for "wss:".
var schemePrefixes = []struct {
	prefix   string
	protocol Protocol
}{
	{"https:", HTTPS},
	{"http:", HTTP},
	{"wss:", WSS},
	{"ws:", WS},
}

// SplitURL separates a URL typed by the user into its protocol and
// scheme-less URI. The scheme is matched case-insensitively. If raw
// carries no recognized scheme, the protocol is HTTPS and raw is
// returned unchanged apart from trimming. Leading slashes and
// backslashes left behind after the scheme are removed.
//
//	SplitURL("wss://example.test/socket") // WSS, "example.test/socket"
//	SplitURL("example.test/ok")           // HTTPS, "example.test/ok"
func SplitURL(raw string) (Protocol, string) {
	s := strings.TrimSpace(raw)
	lower := strings.ToLower(s)
	p := HTTPS
	for _, sp := range schemePrefixes {
		if strings.HasPrefix(lower, sp.prefix) {
			p = sp.protocol
			s = s[len(sp.prefix):]
			break
		}
	}
	return p, trimSlashes(s)
}

// SetURL sets the descriptor's protocol and URI from a URL typed by the
// user, following the rules of SplitURL.
func (d *Descriptor) SetURL(raw string) {
	d.Protocol, d.URI = SplitURL(raw)
}

// QueryParams parses the query string of uri into an ordered list of
// key/value pairs. A parameter without "=" has an empty value. Values
// are returned exactly as typed, without unescaping, so that the list
// can be edited and written back with WithQueryParams losslessly.
//
// If uri has no "?", the return value is nil.
func QueryParams(uri string) []Header {
	i := strings.IndexByte(uri, '?')
	if i < 0 {
		return nil
	}
	parts := strings.Split(uri[i+1:], "&")
	params := make([]Header, 0, len(parts))
	for _, part := range parts {
		if k, v, ok := strings.Cut(part, "="); ok {
			params = append(params, Header{Key: k, Value: v})
		} else {
			params = append(params, Header{Key: part})
		}
	}
	return params
}

// WithQueryParams returns uri with its query string replaced by params.
// If params is empty, the query string (and the "?") is removed.
func WithQueryParams(uri string, params []Header) string {
	base := uri
	if i := strings.IndexByte(uri, '?'); i >= 0 {
		base = uri[:i]
	}
	if len(params) == 0 {
		return base
	}
	var b strings.Builder
	b.WriteString(base)
	for i, p := range params {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(p.Value)
	}
	return b.String()
}
