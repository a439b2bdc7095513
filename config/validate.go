// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
)

// validation errors.
var (
	errNegativeRequestsPerSecond = errors.New("mt.requestsPerSecond cannot be negative")
	errNegativeBurst             = errors.New("mt.burst cannot be negative")
	errNegativeTimeout           = errors.New("mt.timeout cannot be negative")
	errNegativeCacheEntries      = errors.New("tm.cacheEntries cannot be negative")
	errEmptyTMPath               = errors.New("tm.path cannot be empty")
)

// validate checks the configuration for values the tool cannot work with.
func (cfg *Config) validate() error {
	if cfg.MT.RequestsPerSecond < 0 {
		return errNegativeRequestsPerSecond
	}

	if cfg.MT.Burst < 0 {
		return errNegativeBurst
	}

	if cfg.MT.Timeout < 0 {
		return errNegativeTimeout
	}

	if cfg.TM.CacheEntries < 0 {
		return errNegativeCacheEntries
	}

	if cfg.TM.Path == "" {
		return errEmptyTMPath
	}

	if cfg.Translator.Email != "" && !strings.Contains(cfg.Translator.Email, "@") {
		log.Warn().
			Str("email", cfg.Translator.Email).
			Msg("Translator email does not look like an address")
	}

	if cfg.MT.APIKey != "" && cfg.MT.Endpoint == "" {
		log.Warn().
			Msg("An MT API key is configured without an MT endpoint; the key is unused")
	}

	return nil
}
