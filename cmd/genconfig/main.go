// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	"codeberg.org/transcat/transcat/audit"
	"codeberg.org/transcat/transcat/config"
)

const (
	envOutputFile  = ".env.example"
	yamlOutputFile = "transcat.yaml.example"
	filePerm       = 0o644

	placeholderName   = "J. Doe"
	placeholderEmail  = "jdoe@example.org"
	placeholderAPIKey = "123456_arstdhnei"

	envFileHeader = `# transcat configuration (via environment variables)
#
# Copy this file to .env and customize the values below.
#
# Refer to the README for more information.
#
# This file was auto-generated using go run ./cmd/genconfig.

`
	yamlFileHeader = `# transcat configuration (via configuration file)
#
# Copy this file to transcat.yaml and customize the values below.
#
# Refer to the README for more information.
#
# This file was auto-generated using go run ./cmd/genconfig.
`
	configPathComment = `
## Configuration file override
# TRANSCAT_CONFIG=`

	identityYAMLComment = `  # -- Recorded as the last translator in catalogs the tool edits`
)

func main() {
	audit.SetDefaultLogger()
	generateEnvFile()
	generateYAMLFile()
}

// exampleConfig returns defaults suitable for a template, without paths
// from the generating machine.
func exampleConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SetDefaults()
	cfg.TM.Path = ""

	return cfg
}

// generateEnvFile generates the .env.example file.
func generateEnvFile() {
	cfg := exampleConfig()

	var sb strings.Builder
	sb.WriteString(envFileHeader)

	val := reflect.ValueOf(*cfg)
	typ := val.Type()

	// Iterate over the top-level struct fields.
	for i := 0; i < typ.NumField(); i++ {
		structField := typ.Field(i)
		structValue := val.Field(i)

		if structValue.Kind() != reflect.Struct {
			continue
		}

		fmt.Fprintf(&sb, "## %s\n", structField.Name)

		// Iterate over the fields of the nested struct.
		innerTyp := structValue.Type()
		for j := 0; j < innerTyp.NumField(); j++ {
			field := innerTyp.Field(j)
			value := structValue.Field(j)

			tag, ok := field.Tag.Lookup("env")
			if !ok {
				continue
			}

			envVarName := strings.Split(tag, ",")[0]

			switch envVarName {
			case "TRANSCAT_MT_API_KEY":
				// Use a commented placeholder for the API key.
				fmt.Fprintf(&sb, "# %s=\"%s\"\n", envVarName, placeholderAPIKey)
			case "TRANSCAT_TRANSLATOR_NAME", "TRANSCAT_TRANSLATOR_EMAIL":
				// Uncomment essential fields.
				fmt.Fprintf(&sb, "%s=\"%v\"\n", envVarName, value.Interface())
			default:
				// For other fields, comment them out. If the value is a slice
				// or an empty string, omit the value to prompt user input.
				if value.Kind() == reflect.Slice || (value.Kind() == reflect.String && value.Len() == 0) {
					fmt.Fprintf(&sb, "# %s=\n", envVarName)
				} else {
					fmt.Fprintf(&sb, "# %s=%v\n", envVarName, value.Interface())
				}
			}
		}

		sb.WriteString("\n")
	}

	sb.WriteString(strings.TrimSpace(configPathComment) + "\n\n")

	if err := os.WriteFile(envOutputFile, []byte(sb.String()), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", envOutputFile).Msg("Failed to write .env.example file")
	}

	log.Info().Str("path", envOutputFile).Msg("Successfully generated .env.example")
}

// generateYAMLFile generates the transcat.yaml.example file.
func generateYAMLFile() {
	cfg := exampleConfig()

	cfg.Translator.Name = placeholderName
	cfg.Translator.Email = placeholderEmail

	var yamlContent strings.Builder
	// Marshal the config to YAML.
	encoderOpts := []yaml.EncodeOption{
		config.GetDurationEncoderOption(),
		yaml.Indent(2),
	}
	if err := yaml.NewEncoder(&yamlContent, encoderOpts...).Encode(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal config to YAML")
	}

	var sb strings.Builder
	sb.WriteString(yamlFileHeader)

	// Process the marshaled YAML line-by-line to create a clean template.
	for _, line := range strings.Split(yamlContent.String(), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Top-level keys (e.g., "translator:") are treated as section headers.
		if !strings.HasPrefix(line, " ") {
			fmt.Fprintf(&sb, "\n%s\n", line)
			continue
		}

		// Keep the translator identity and its comment uncommented.
		if strings.HasPrefix(trimmed, "name:") {
			sb.WriteString(identityYAMLComment + "\n")
			sb.WriteString(line + "\n")

			continue
		}

		if strings.HasPrefix(trimmed, "email:") {
			sb.WriteString(line + "\n")
			continue
		}

		// By default, comment out the line.
		indentSize := len(line) - len(strings.TrimLeft(line, " "))
		fmt.Fprintf(&sb, "%s# %s\n", strings.Repeat(" ", indentSize), trimmed)
	}

	if err := os.WriteFile(yamlOutputFile, []byte(sb.String()), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", yamlOutputFile).Msg("Failed to write config file")
	}

	log.Info().Str("path", yamlOutputFile).Msg("Successfully generated transcat.yaml.example")
}
