// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flare

import (
	"context"
	"fmt"
	"io"

	"github.com/gogama/flare/racing"
	"github.com/gogama/flare/request"
	"github.com/gogama/flare/response"
)

func (s *session) runHTTP() {
	defer s.end()
	s.begin()

	d := s.a.Descriptor
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	x, deferred, err := racing.Race(ctx, s.ch.Receive(), func(ctx context.Context) exchanged {
		return exchange(ctx, s.doer, &d)
	}, nil)
	s.dropped(deferred, "no WebSocket session")
	switch {
	case err == racing.Interrupted:
		s.log.Info(fmt.Sprintf("Request to %s cancelled", d.URL()))
		s.terminated()
		return
	case err != nil:
		x.err = urlErrorWrap(&d, err)
		x.record = response.FromError(x.err)
	}

	s.a.Err = x.err
	if x.err != nil {
		s.log.Warn(fmt.Sprintf("Request to %s failed: %s", d.URL(), x.record.Reason))
	} else {
		s.log.Info(fmt.Sprintf("%s %s: %d %s", d.Method.OrDefault(), d.URL(), x.record.Code, x.record.Reason))
	}
	s.push(x.record)
}

// exchanged is the outcome of one HTTP exchange.
type exchanged struct {
	record response.Record
	err    error
}

// exchange performs one HTTP exchange and maps its outcome to exactly
// one record. It may outlive the session that started it, so it touches
// nothing but its arguments.
func exchange(ctx context.Context, doer HTTPDoer, d *request.Descriptor) exchanged {
	req, err := d.ToRequest(ctx)
	if err != nil {
		return exchanged{response.FromError(err), err}
	}

	resp, err := doer.Do(req)
	if err != nil {
		err = urlErrorWrap(d, err)
		return exchanged{response.FromError(err), err}
	}

	var body []byte
	if resp.Body != nil {
		defer func() {
			_ = resp.Body.Close()
		}()
		body, err = io.ReadAll(resp.Body)
		if err != nil {
			err = urlErrorWrap(d, err)
			return exchanged{response.FromReadError(resp, err), err}
		}
	}

	return exchanged{record: response.FromHTTP(resp, body)}
}
