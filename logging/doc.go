// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package logging builds the zerolog logger used by the flare command and
adapts it to the executor's event log.

New builds a logger from a Config naming a level and one or more
writers: "console" for human-friendly output on standard error, "json"
for JSON lines on standard output, and "file" for JSON lines in a file
rotated by lumberjack:

	l, closer, err := logging.New(logging.Config{Level: "debug", Writer: []string{"console", "file"}, File: "flare.log"})
	...
	defer closer.Close()
	ex := &flare.Executor{EventLog: logging.NewEventLog(l)}

A Journal keeps recent notices in memory for an event bar, and Tee sends
each notice to several event logs at once.
*/
package logging
