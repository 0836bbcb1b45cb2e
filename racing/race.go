// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package racing

import (
	"context"
	"errors"

	"github.com/gogama/flare/command"
)

// Interrupted is the error returned by Race when a Terminate command
// arrives before the raced call finishes.
var Interrupted = errors.New("flare/racing: interrupted by command")

// Race runs call on its own goroutine and returns as soon as either
// call returns or a Terminate command arrives on cmds.
//
// If call returns first, Race returns its result and a nil error. If a
// Terminate command arrives first, the context passed to call is
// cancelled and Race returns Interrupted at once, without waiting for
// call. If ctx is done first, Race likewise cancels and returns
// ctx.Err() at once. In both cases the result is the zero value of T.
//
// An abandoned call keeps running until it notices the cancellation or
// finishes on its own. When it does, its result is passed to abandon,
// if abandon is not nil, on a background goroutine. Use abandon to
// release resources held by a late result, such as an open connection.
// Because the call may outlive Race, it must publish its result only
// through its return value.
//
// Commands of any other kind received while the race is on do not
// interrupt it. They are returned, in the order received, so the caller
// can act on them once the call is done.
func Race[T any](ctx context.Context, cmds <-chan command.Command, call func(context.Context) T, abandon func(T)) (T, []command.Command, error) {
	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	result := make(chan T, 1)
	go func() {
		result <- call(callCtx)
	}()

	var deferred []command.Command
	var zero T
	for {
		select {
		case v := <-result:
			return v, deferred, nil
		case cmd := <-cmds:
			if cmd.Kind != command.Terminate {
				deferred = append(deferred, cmd)
				continue
			}
			go discard(result, abandon)
			return zero, deferred, Interrupted
		case <-ctx.Done():
			go discard(result, abandon)
			return zero, deferred, ctx.Err()
		}
	}
}

func discard[T any](result <-chan T, abandon func(T)) {
	v := <-result
	if abandon != nil {
		abandon(v)
	}
}
