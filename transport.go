// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flare

import (
	"context"
	"crypto/tls"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/net/http2"
)

// NewHTTPClient constructs the HTTP client the executor uses when no
// HTTPDoer is configured. Its transport is a clone of
// http.DefaultTransport with HTTP/2 enabled. Redirects are followed
// using the net/http defaults.
//
// If insecure is true, the client does not verify server certificates.
func NewHTTPClient(insecure bool) *http.Client {
	t := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	// An error only means HTTP/2 is already configured.
	_ = http2.ConfigureTransport(t)
	return &http.Client{Transport: t}
}

var (
	defaultDoer     HTTPDoer
	defaultDoerOnce sync.Once
)

func sharedHTTPDoer() HTTPDoer {
	defaultDoerOnce.Do(func() {
		defaultDoer = NewHTTPClient(false)
	})
	return defaultDoer
}

// WebSocketDialer is a Dialer backed by the gorilla/websocket package.
// Its zero value uses websocket.DefaultDialer.
type WebSocketDialer struct {
	// Dialer is the gorilla dialer to use. If nil,
	// websocket.DefaultDialer is used.
	Dialer *websocket.Dialer
}

// NewWebSocketDialer constructs a gorilla-backed Dialer which honors
// proxy environment variables. If insecure is true, it does not verify
// server certificates.
func NewWebSocketDialer(insecure bool) WebSocketDialer {
	d := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: websocket.DefaultDialer.HandshakeTimeout,
	}
	if insecure {
		d.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return WebSocketDialer{Dialer: d}
}

// DialContext implements the Dialer interface.
func (d WebSocketDialer) DialContext(ctx context.Context, url string, h http.Header) (Conn, *http.Response, error) {
	wd := d.Dialer
	if wd == nil {
		wd = websocket.DefaultDialer
	}
	c, resp, err := wd.DialContext(ctx, url, h)
	if err != nil {
		return nil, resp, err
	}
	return c, resp, nil
}
