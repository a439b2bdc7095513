// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package config loads the tool configuration from a YAML file, a .env
// file and TRANSCAT_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"

	"codeberg.org/transcat/transcat/audit"
	"codeberg.org/transcat/transcat/catalog"
)

// Global exposes the tool configuration.
var Global Config

// Config holds the tool configuration.
type Config struct {
	Translator struct {
		Name  string `env:"TRANSCAT_TRANSLATOR_NAME,overwrite" yaml:"name"`
		Email string `env:"TRANSCAT_TRANSLATOR_EMAIL,overwrite" yaml:"email"`
	} `yaml:"translator"`

	Validation struct {
		ShowWarnings bool `env:"TRANSCAT_SHOW_WARNINGS,overwrite" yaml:"showWarnings"`
	} `yaml:"validation"`

	Sources struct {
		// Extra roots rejected by the source path heuristics, replacing
		// the built-in list when set.
		RejectRoots []string `env:"TRANSCAT_SOURCES_REJECT_ROOTS,overwrite" yaml:"rejectRoots"`
	} `yaml:"sources"`

	TM struct {
		Path         string `env:"TRANSCAT_TM_PATH,overwrite" yaml:"path"`
		CacheEntries int    `env:"TRANSCAT_TM_CACHE_ENTRIES,overwrite" yaml:"cacheEntries"`
	} `yaml:"tm"`

	MT struct {
		Endpoint          string        `env:"TRANSCAT_MT_ENDPOINT,overwrite" yaml:"endpoint"`
		APIKey            string        `env:"TRANSCAT_MT_API_KEY" yaml:"apiKey"`
		RequestsPerSecond float64       `env:"TRANSCAT_MT_REQUESTS_PER_SECOND,overwrite" yaml:"requestsPerSecond"`
		Burst             int           `env:"TRANSCAT_MT_BURST,overwrite" yaml:"burst"`
		Timeout           time.Duration `env:"TRANSCAT_MT_TIMEOUT,overwrite" yaml:"timeout"`
	} `yaml:"mt"`

	Log struct {
		Level  string `env:"TRANSCAT_LOG_LEVEL,overwrite" yaml:"level"`
		Format string `env:"TRANSCAT_LOG_FORMAT,overwrite" yaml:"format"`
		Output string `env:"TRANSCAT_LOG_OUTPUT,overwrite" yaml:"output"`
	} `yaml:"log"`
}

// Load loads the configuration from various sources.
//
// The configuration file is taken from path when non-empty (and must
// exist in that case), otherwise from the TRANSCAT_CONFIG environment
// variable, otherwise from ./transcat.yaml, ./transcat.yml or the user
// configuration directory, whichever exists first.
func (cfg *Config) Load(path string) error {
	cfg.SetDefaults()

	configFilePath := path
	required := configFilePath != ""

	if configFilePath == "" {
		configFilePath = os.Getenv("TRANSCAT_CONFIG")
		required = configFilePath != ""
	}

	if configFilePath == "" {
		configFilePath = findConfigFile()
	}

	if err := cfg.readYAML(configFilePath, required); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	if len(cfg.Sources.RejectRoots) > 0 {
		roots := append([]string(nil), cfg.Sources.RejectRoots...)
		catalog.RejectedSourceRoots = func() []string { return roots }
	}

	if err := audit.Setup(audit.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}); err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}

	cfg.print()

	return nil
}

// Identity returns the translator recorded in catalog headers the tool
// creates or updates.
func (cfg *Config) Identity() catalog.TranslatorIdentity {
	return catalog.TranslatorIdentity{
		Name:  cfg.Translator.Name,
		Email: cfg.Translator.Email,
	}
}

// findConfigFile returns the first existing candidate configuration file,
// or the empty string when there is none.
func findConfigFile() string {
	candidates := []string{"./transcat.yaml", "./transcat.yml"}

	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "transcat", "transcat.yaml"))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// GetDurationEncoderOption returns a YAML encoder option that marshals
// time.Duration into a human-readable string format (e.g., "30s", "1h").
func GetDurationEncoderOption() yaml.EncodeOption {
	return yaml.CustomMarshaler[time.Duration](
		func(d time.Duration) ([]byte, error) {
			return yaml.Marshal(d.String())
		},
	)
}
