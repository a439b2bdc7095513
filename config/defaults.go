// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// Default translation memory lookup cache size in entries.
	defaultTMCacheEntries = 512

	// Default machine translation request rate in requests per second.
	defaultMTRequestsPerSecond = 5
	// Default machine translation burst size.
	defaultMTBurst = 1
	// Default machine translation request timeout in seconds.
	defaultMTTimeoutSeconds = 30
)

// SetDefaults populates the configuration with default values.
func (cfg *Config) SetDefaults() {
	cfg.Validation.ShowWarnings = true

	cfg.TM.Path = defaultTMPath()
	cfg.TM.CacheEntries = defaultTMCacheEntries

	cfg.MT.RequestsPerSecond = defaultMTRequestsPerSecond
	cfg.MT.Burst = defaultMTBurst
	cfg.MT.Timeout = defaultMTTimeoutSeconds * time.Second

	cfg.Log.Level = "info"
	cfg.Log.Format = "console"
	cfg.Log.Output = "stderr"
}

// defaultTMPath places the translation memory under the user cache
// directory, falling back to the working directory.
func defaultTMPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "transcat-tm.db"
	}

	return filepath.Join(dir, "transcat", "tm.db")
}
