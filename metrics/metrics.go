// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"net/http"
	"strconv"

	"github.com/gogama/flare"
	"github.com/gogama/flare/response"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultNamespace is the metric namespace used when New is given an
// empty one.
const DefaultNamespace = "flare"

// Metrics holds the executor's prometheus collectors in a private
// registry. Install it in an executor's handler group to feed it.
type Metrics struct {
	registry        *prometheus.Registry
	ActiveSessions  *prometheus.GaugeVec
	SessionsTotal   *prometheus.CounterVec
	ResponsesTotal  *prometheus.CounterVec
	MessagesSent    prometheus.Counter
	Terminations    *prometheus.CounterVec
	SessionDuration *prometheus.HistogramVec
}

// New constructs the collectors under namespace and registers them in
// a fresh registry.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	r := prometheus.NewRegistry()
	m := &Metrics{
		registry: r,
		ActiveSessions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of session tasks alive",
		}, []string{"protocol"}),
		SessionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Total session tasks started",
		}, []string{"protocol"}),
		ResponsesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_total",
			Help:      "Total records pushed into the response sink by class",
		}, []string{"protocol", "class"}),
		MessagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_sent_total",
			Help:      "Total messages sent over WebSocket sessions",
		}),
		Terminations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "terminations_total",
			Help:      "Total sessions ended by the user",
		}, []string{"protocol"}),
		SessionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_duration_seconds",
			Help:      "Session duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30, 60, 300, 1800},
		}, []string{"protocol"}),
	}
	r.MustRegister(m.ActiveSessions, m.SessionsTotal, m.ResponsesTotal,
		m.MessagesSent, m.Terminations, m.SessionDuration)
	return m
}

// Registry returns the private registry holding m's collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// HTTPHandler serves the registry in the prometheus exposition format.
func (m *Metrics) HTTPHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Install pushes m onto every event chain it observes.
func (m *Metrics) Install(g *flare.HandlerGroup) {
	for _, evt := range []flare.Event{
		flare.BeforeSessionStart,
		flare.AfterSend,
		flare.AfterResponse,
		flare.AfterTerminate,
		flare.AfterSessionEnd,
	} {
		g.PushBack(evt, m)
	}
}

// Handle implements flare.Handler.
func (m *Metrics) Handle(evt flare.Event, a *flare.Activation) {
	p := family(a)
	switch evt {
	case flare.BeforeSessionStart:
		m.ActiveSessions.WithLabelValues(p).Inc()
		m.SessionsTotal.WithLabelValues(p).Inc()
	case flare.AfterSend:
		m.MessagesSent.Inc()
	case flare.AfterResponse:
		if a.Record != nil {
			m.ResponsesTotal.WithLabelValues(p, Class(a.Record)).Inc()
		}
	case flare.AfterTerminate:
		m.Terminations.WithLabelValues(p).Inc()
	case flare.AfterSessionEnd:
		m.ActiveSessions.WithLabelValues(p).Dec()
		m.SessionDuration.WithLabelValues(p).Observe(a.Duration().Seconds())
	}
}

func family(a *flare.Activation) string {
	if a.Descriptor.Protocol.IsWS() {
		return "ws"
	}
	return "http"
}

// Class buckets a record for the responses_total metric: "2xx" through
// "5xx" (and "1xx") for HTTP statuses, "frame" for WebSocket frames,
// "closed" for the closed-connection sentinel, and "error" for failures
// without a status.
func Class(r *response.Record) string {
	switch {
	case r.Code > 0:
		return strconv.Itoa(r.Code/100) + "xx"
	case r.Reason != "":
		return "error"
	case r.Raw == response.ClosedText:
		return "closed"
	default:
		return "frame"
	}
}
