// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command flare fires one request from the command line.
//
// For HTTP and HTTPS URLs it prints the response and exits. For WS and
// WSS URLs it opens a session, sends each line read from standard input
// as a text message, and prints inbound frames until standard input
// ends or the server closes the connection.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gogama/flare"
	"github.com/gogama/flare/config"
	"github.com/gogama/flare/lifecycle"
	"github.com/gogama/flare/logging"
	"github.com/gogama/flare/metrics"
	"github.com/gogama/flare/request"
	"github.com/gogama/flare/response"
	"github.com/rs/zerolog"
)

// Version is set at build time via -ldflags "-X main.Version=v1.0.0"
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

type headerList []request.Header

func (h *headerList) String() string {
	parts := make([]string, len(*h))
	for i, x := range *h {
		parts[i] = x.Key + ": " + x.Value
	}
	return strings.Join(parts, ", ")
}

func (h *headerList) Set(s string) error {
	i := strings.IndexByte(s, ':')
	if i < 1 {
		return fmt.Errorf("header %q is not in Key: Value form", s)
	}
	*h = append(*h, request.Header{Key: strings.TrimSpace(s[:i]), Value: strings.TrimSpace(s[i+1:])})
	return nil
}

func run(args []string, stdin io.Reader, stdout io.Writer) int {
	fs := flag.NewFlagSet("flare", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Path to a YAML configuration file")
	method := fs.String("method", "GET", "HTTP method")
	body := fs.String("body", "", "Request body, or the first WebSocket message")
	connectOnly := fs.Bool("connect-only", false, "Open a WebSocket session without sending -body")
	metricsAddr := fs.String("metrics-addr", "", "Serve prometheus metrics on this address")
	showVersion := fs.Bool("version", false, "Print version and exit")
	var headers headerList
	fs.Var(&headers, "header", "Request header in Key: Value form (repeatable)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: flare [options] URL\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Fprintf(stdout, "flare %s\n", Version)
		return 0
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	envErr := cfg.ApplyEnv()
	if *metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = *metricsAddr
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() {
		_ = closer.Close()
	}()
	if envErr != nil {
		logger.Warn().Err(envErr).Msg("Ignoring environment override")
	}

	journal := logging.NewJournal(logging.DefaultJournalSize)
	session := &gate{}
	handlers := &flare.HandlerGroup{}
	handlers.PushBack(flare.AfterResponse, flare.HandlerFunc(func(_ flare.Event, a *flare.Activation) {
		printRecord(stdout, a.Record)
	}))
	handlers.PushBack(flare.AfterSessionEnd, flare.HandlerFunc(func(flare.Event, *flare.Activation) {
		session.shut()
	}))
	ex := &flare.Executor{
		Handlers: handlers,
		EventLog: logging.Tee(logging.NewEventLog(logger), journal),
	}
	cfg.Executor.Apply(ex)

	if cfg.Metrics.Enabled {
		srv := serveMetrics(logger, cfg.Metrics, handlers)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	d := request.Descriptor{
		Method:  request.Method(strings.ToUpper(*method)),
		Headers: headers,
		Body:    *body,
	}
	d.SetURL(fs.Arg(0))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ex.Execute(d, *connectOnly)
	if d.Protocol.IsWS() && ex.State() == lifecycle.Connected {
		go pump(ctx, ex, d, stdin, session)
	}
	go func() {
		<-ctx.Done()
		ex.Terminate()
	}()
	ex.Wait()

	for _, entry := range journal.Entries() {
		if entry.Level >= zerolog.ErrorLevel {
			return 1
		}
	}
	return 0
}

// A gate runs functions until it is shut. Shutting waits for a running
// function to return.
type gate struct {
	lock sync.Mutex
	shot bool
}

func (g *gate) shut() {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.shot = true
}

// do runs f unless the gate is shut, and reports whether it ran.
func (g *gate) do(f func()) bool {
	g.lock.Lock()
	defer g.lock.Unlock()
	if g.shot {
		return false
	}
	f()
	return true
}

// pump sends each line of r over the session, and terminates the
// session when r is exhausted. It stops once the session has ended:
// session is shut by the session's AfterSessionEnd handler, which runs
// before the executor goes Idle, so a line is never sent to a new
// session.
func pump(ctx context.Context, ex *flare.Executor, d request.Descriptor, r io.Reader, session *gate) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if ctx.Err() != nil {
			return
		}
		d.Body = sc.Text()
		if !session.do(func() { ex.Execute(d, false) }) {
			return
		}
	}
	session.do(ex.Terminate)
}

func serveMetrics(logger zerolog.Logger, cfg config.Metrics, handlers *flare.HandlerGroup) *http.Server {
	m := metrics.New(cfg.Namespace)
	m.Install(handlers)
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.HTTPHandler())
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("Serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Metrics server failed")
		}
	}()
	return srv
}

func printRecord(w io.Writer, r *response.Record) {
	if r == nil {
		return
	}
	text := r.Raw
	if r.HasJSON() {
		text = r.JSON.Pretty
	}
	text = strings.TrimRight(text, "\n")
	switch {
	case r.Code > 0:
		fmt.Fprintf(w, "%d %s\n", r.Code, r.Reason)
		for _, h := range r.Headers {
			fmt.Fprintf(w, "%s: %s\n", h.Key, h.Value)
		}
		fmt.Fprintf(w, "\n%s\n", text)
	case r.Reason != "" || r.Raw == response.ClosedText:
		fmt.Fprintf(w, "* %s\n", text)
	default:
		fmt.Fprintf(w, "< %s\n", text)
	}
}
