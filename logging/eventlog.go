// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"github.com/gogama/flare"
	"github.com/rs/zerolog"
)

// Component is the value of the "component" field on every entry
// written by an EventLog.
const Component = "executor"

// An EventLog adapts a zerolog logger to the flare.EventLog interface.
type EventLog struct {
	l zerolog.Logger
}

var _ flare.EventLog = (*EventLog)(nil)

// NewEventLog returns an EventLog that writes to l, tagging every
// entry with component=executor.
func NewEventLog(l zerolog.Logger) *EventLog {
	return &EventLog{l: l.With().Str("component", Component).Logger()}
}

func (e *EventLog) Info(msg string) {
	e.l.Info().Msg(msg)
}

func (e *EventLog) Warn(msg string) {
	e.l.Warn().Msg(msg)
}

func (e *EventLog) Error(msg string) {
	e.l.Error().Msg(msg)
}

// Tee returns an EventLog that forwards every notice to each of logs,
// in order. Nil entries are skipped.
func Tee(logs ...flare.EventLog) flare.EventLog {
	var t tee
	for _, l := range logs {
		if l != nil {
			t = append(t, l)
		}
	}
	return t
}

type tee []flare.EventLog

func (t tee) Info(msg string) {
	for _, l := range t {
		l.Info(msg)
	}
}

func (t tee) Warn(msg string) {
	for _, l := range t {
		l.Warn(msg)
	}
}

func (t tee) Error(msg string) {
	for _, l := range t {
		l.Error(msg)
	}
}
