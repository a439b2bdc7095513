// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
transcat is a command-line toolbox for translation catalog files.

It reads and writes PO, POT, XLIFF and Flutter-style JSON catalogs,
reports statistics, validates translations, keeps a reusable
translation memory and pre-translates new strings from it.
*/
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"codeberg.org/transcat/transcat/audit"
	"codeberg.org/transcat/transcat/catalog"
)

// Version is set at build time via -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	audit.SetDefaultLogger()

	catalog.Generator = "transcat " + Version

	if err := newCLIApp().Run(os.Args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			if msg := exitErr.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}

			os.Exit(exitErr.ExitCode())
		}

		log.Fatal().Err(err).Msg("Command failed")
	}
}
