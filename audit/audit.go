// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package audit configures the process-wide zerolog logger.
package audit

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const logFilePermissions = 0o666

// SetDefaultLogger provides an ok log output format on startup before the
// configuration is loaded.
func SetDefaultLogger() {
	log.Logger = log.Output(ConsoleWriter(os.Stderr))
}

// Options selects the level, format and destination of the global logger.
type Options struct {
	Level  string // debug, info, warn or error; "" keeps the current level
	Format string // console or json
	Output string // stderr, stdout, or a file path
}

// Setup points the global logger at the configured destination.
func Setup(opts Options) error {
	switch opts.Level {
	case "":
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		return fmt.Errorf("unknown log level %q", opts.Level)
	}

	var console bool
	switch opts.Format {
	case "", "console":
		console = true
	case "json":
	default:
		return fmt.Errorf("unknown log format %q", opts.Format)
	}

	var file *os.File
	switch opts.Output {
	case "", "stderr", "/dev/stderr":
		file = os.Stderr
	case "stdout", "/dev/stdout":
		file = os.Stdout
	default:
		f, err := os.OpenFile(opts.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions) // #nosec:G302,G304
		if err != nil {
			return fmt.Errorf("opening log file %s: %w", opts.Output, err)
		}
		file = f
	}

	var w io.Writer = file
	if console {
		w = ConsoleWriter(file)
	}
	log.Logger = log.Output(w)

	return nil
}

// ConsoleWriter returns a zerolog console writer for f, colored only when
// f is a terminal.
func ConsoleWriter(f *os.File) io.Writer {
	noColor := !isatty.IsTerminal(f.Fd())

	return zerolog.ConsoleWriter{Out: f, NoColor: noColor, TimeFormat: time.DateTime}
}
