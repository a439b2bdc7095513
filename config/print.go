// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const redactedValue = "[redacted]"

// print dumps the effective configuration when debug logging is enabled.
func (cfg *Config) print() {
	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		return
	}

	// Redact sensitive fields using a shallow copy of the config.
	printableConfig := *cfg

	if printableConfig.MT.APIKey != "" {
		printableConfig.MT.APIKey = redactedValue
	}

	// Marshal the processed config to indented YAML.
	configYAML, err := yaml.MarshalWithOptions(
		printableConfig,
		GetDurationEncoderOption(),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal config to YAML for printing")

		return
	}

	log.Debug().Msg("Effective configuration:")
	fmt.Fprintln(os.Stderr, string(configYAML))
}
