// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package racing_test

import (
	"fmt"
	"time"

	"github.com/gogama/flare/racing"
)

func ExampleNewStaticScheduler() {
	sc := racing.NewStaticScheduler(20*time.Millisecond, 50*time.Millisecond, 200*time.Millisecond)
	// Simulate the poll loop finding no command 0, 1, 2, and 3 times in
	// a row.
	for idle := 0; idle <= 3; idle++ {
		fmt.Println(sc.Schedule(idle))
	}
	// Output:
	// 20ms
	// 50ms
	// 200ms
	// 200ms
}
