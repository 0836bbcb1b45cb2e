// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gogama/flare"
	"github.com/gogama/flare/logging"
	"github.com/gogama/flare/racing"
	"github.com/gogama/flare/timeout"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "FLARE_"

// Config is the configuration file structure.
type Config struct {
	Log      logging.Config `yaml:"log"`
	Executor Executor       `yaml:"executor"`
	Metrics  Metrics        `yaml:"metrics"`
}

// Executor configures a flare.Executor.
type Executor struct {
	// PollInterval is how often an open WebSocket session looks for
	// outbound messages.
	PollInterval time.Duration `yaml:"poll_interval"`
	// IdleBackoff, if not empty, replaces the fixed poll interval with
	// a schedule indexed by the number of consecutive idle ticks.
	IdleBackoff []time.Duration `yaml:"idle_backoff"`
	// Capacity is the command queue capacity of each session.
	Capacity int `yaml:"capacity"`
	// HTTPTimeout bounds a whole HTTP exchange.
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	// HandshakeTimeout bounds the WebSocket opening handshake.
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
	// InsecureTLS disables server certificate verification.
	InsecureTLS bool `yaml:"insecure_tls"`
}

// Metrics configures the prometheus endpoint.
type Metrics struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
	Addr      string `yaml:"addr"`
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		Log: logging.DefaultConfig(),
		Executor: Executor{
			PollInterval:     racing.DefaultInterval,
			Capacity:         100,
			HTTPTimeout:      30 * time.Second,
			HandshakeTimeout: 30 * time.Second,
		},
		Metrics: Metrics{
			Namespace: "flare",
			Addr:      ":9464",
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := NewConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("flare/config: %w", err)
	}
	if err = yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("flare/config: %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from FLARE_* environment variables. Values
// that do not parse are reported and leave the field unchanged.
func (c *Config) ApplyEnv() error {
	var errs []string
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, EnvPrefix+key)
				return
			}
			*dst = d
		}
	}
	num := func(key string, dst *int) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, EnvPrefix+key)
				return
			}
			*dst = n
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
			*dst = v == "1" || strings.EqualFold(v, "true")
		}
	}

	str("LOG_LEVEL", &c.Log.Level)
	if v := os.Getenv(EnvPrefix + "LOG_WRITER"); v != "" {
		c.Log.Writer = splitCSV(v)
	}
	str("LOG_FILE", &c.Log.File)
	dur("POLL_INTERVAL", &c.Executor.PollInterval)
	num("CAPACITY", &c.Executor.Capacity)
	dur("HTTP_TIMEOUT", &c.Executor.HTTPTimeout)
	dur("HANDSHAKE_TIMEOUT", &c.Executor.HandshakeTimeout)
	flag("INSECURE_TLS", &c.Executor.InsecureTLS)
	flag("METRICS_ENABLED", &c.Metrics.Enabled)
	str("METRICS_NAMESPACE", &c.Metrics.Namespace)
	str("METRICS_ADDR", &c.Metrics.Addr)

	if len(errs) > 0 {
		return fmt.Errorf("flare/config: invalid value for %s", strings.Join(errs, ", "))
	}
	return nil
}

// Apply configures e. It must be called before e is first used.
func (x Executor) Apply(e *flare.Executor) {
	e.PollInterval = x.PollInterval
	if len(x.IdleBackoff) > 0 {
		e.PollScheduler = racing.NewStaticScheduler(x.IdleBackoff...)
	}
	e.Capacity = x.Capacity
	if x.HTTPTimeout > 0 || x.HandshakeTimeout > 0 {
		e.TimeoutPolicy = timeout.ByProtocol(orInfinite(x.HTTPTimeout), orInfinite(x.HandshakeTimeout))
	}
	if x.InsecureTLS {
		e.HTTPDoer = flare.NewHTTPClient(true)
		e.Dialer = flare.NewWebSocketDialer(true)
	}
}

func orInfinite(d time.Duration) time.Duration {
	if d <= 0 {
		return 1<<63 - 1
	}
	return d
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
