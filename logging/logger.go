// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Writer names accepted in Config.Writer.
const (
	// Console writes human-friendly colored lines to standard error.
	Console = "console"
	// File writes JSON lines to a size-rotated file.
	File = "file"
	// JSON writes JSON lines to standard output.
	JSON = "json"
)

// Config configures the logger built by New.
type Config struct {
	// Level is one of debug, info, warn, or error. Anything else
	// means info.
	Level string `yaml:"level"`
	// Writer lists the outputs to write to. Empty means Console.
	Writer []string `yaml:"writer"`
	// File is the path of the log file used by the File writer.
	File string `yaml:"file"`
	// MaxSizeMB is the size in megabytes at which the log file is
	// rotated.
	MaxSizeMB int `yaml:"max_size_mb"`
	// MaxBackups is the number of rotated files to keep.
	MaxBackups int `yaml:"max_backups"`
	// MaxAgeDays is the number of days to keep rotated files.
	MaxAgeDays int `yaml:"max_age_days"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Writer:     []string{Console},
		File:       "flare.log",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}

// ParseLevel converts a level name to a zerolog level. Unknown names
// produce zerolog.InfoLevel.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New builds a zerolog logger from cfg. The returned closer releases
// the log file, if any, and must be called when the logger is no
// longer needed.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	names := cfg.Writer
	if len(names) == 0 {
		names = []string{Console}
	}

	var writers []io.Writer
	closer := multiCloser{}
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case Console:
			writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
		case JSON:
			writers = append(writers, os.Stdout)
		case File:
			if cfg.File == "" {
				return zerolog.Nop(), nil, fmt.Errorf("flare/logging: file writer needs a file name")
			}
			lj := &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    cfg.MaxSizeMB,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAgeDays,
			}
			writers = append(writers, lj)
			closer = append(closer, lj)
		default:
			return zerolog.Nop(), nil, fmt.Errorf("flare/logging: unknown writer %q", name)
		}
	}

	var w io.Writer = writers[0]
	if len(writers) > 1 {
		w = zerolog.MultiLevelWriter(writers...)
	}
	l := zerolog.New(w).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
	return l, closer, nil
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
