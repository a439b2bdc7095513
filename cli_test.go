// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v2"

	"codeberg.org/transcat/transcat/catalog"
	"codeberg.org/transcat/transcat/tm"
)

// The CLI tests drive newCLIApp end to end. They mutate the process-global
// configuration and logger, so none of them run in parallel.

func writeTestConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "transcat.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func writeTestFile(t *testing.T, name, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

const translatedPO = `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"
"Language: de\n"

msgid "Open file"
msgstr "Datei öffnen"
`

func TestCLIStats(t *testing.T) {
	cfg := writeTestConfig(t)
	po := writeTestFile(t, "app_de.po", translatedPO)

	if err := newCLIApp().Run([]string{"transcat", "--config", cfg, "stats", po}); err != nil {
		t.Fatalf("stats failed: %v", err)
	}
}

func TestCLIStatsRequiresArguments(t *testing.T) {
	cfg := writeTestConfig(t)

	err := newCLIApp().Run([]string{"transcat", "--config", cfg, "stats"})

	var coder cli.ExitCoder
	if !errors.As(err, &coder) || coder.ExitCode() != 2 {
		t.Fatalf("err = %v, want exit code 2", err)
	}
}

func TestCLIConvert(t *testing.T) {
	cfg := writeTestConfig(t)
	po := writeTestFile(t, "app_de.po", translatedPO)
	out := filepath.Join(t.TempDir(), "app_de.json")

	err := newCLIApp().Run([]string{"transcat", "--config", cfg, "convert", "-o", out, po})
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	converted, err := catalog.Open(out, 0)
	if err != nil {
		t.Fatal(err)
	}

	if converted.Type() != catalog.TypeJSON {
		t.Errorf("type = %v, want JSON", converted.Type())
	}

	items := converted.Items()
	if len(items) != 1 || items[0].Translation(0) != "Datei öffnen" {
		t.Fatalf("unexpected converted items: %d", len(items))
	}
}

func TestCLIPurgeSameAsSource(t *testing.T) {
	cfg := writeTestConfig(t)
	po := writeTestFile(t, "echo_de.po", `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"
"Language: de\n"

msgid "Toolbar"
msgstr "Toolbar"
`)

	err := newCLIApp().Run([]string{"transcat", "--config", cfg, "purge-same-as-source", po})
	if err != nil {
		t.Fatalf("purge failed: %v", err)
	}

	cleaned, err := catalog.Open(po, 0)
	if err != nil {
		t.Fatal(err)
	}

	if got := cleaned.Items()[0].Translation(0); got != "" {
		t.Errorf("translation = %q, want cleared", got)
	}
}

func TestCLILearnAndPretranslate(t *testing.T) {
	cfg := writeTestConfig(t)
	done := writeTestFile(t, "done_de.po", translatedPO)
	fresh := writeTestFile(t, "fresh_de.po", `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"
"Language: de\n"

msgid "Open file"
msgstr ""
`)
	tmPath := filepath.Join(t.TempDir(), "memory", "tm.db")

	err := newCLIApp().Run([]string{"transcat", "--config", cfg, "learn", "--tm", tmPath, done})
	if err != nil {
		t.Fatalf("learn failed: %v", err)
	}

	memory, err := tm.Open(tmPath, 0)
	if err != nil {
		t.Fatal(err)
	}

	n, err := memory.Count()

	memory.Close()

	if err != nil {
		t.Fatal(err)
	}

	if n != 1 {
		t.Fatalf("stored rows = %d, want 1", n)
	}

	err = newCLIApp().Run([]string{"transcat", "--config", cfg, "pretranslate", "--tm", tmPath, fresh})
	if err != nil {
		t.Fatalf("pretranslate failed: %v", err)
	}

	filled, err := catalog.Open(fresh, 0)
	if err != nil {
		t.Fatal(err)
	}

	it := filled.Items()[0]
	if it.Translation(0) != "Datei öffnen" {
		t.Errorf("translation = %q, want %q", it.Translation(0), "Datei öffnen")
	}

	if it.IsFuzzy() {
		t.Error("item must not be fuzzy without --fuzzy")
	}
}

func TestCLISideload(t *testing.T) {
	cfg := writeTestConfig(t)
	de := writeTestFile(t, "de.json", `{"app.title": "Mein Programm"}`)
	en := writeTestFile(t, "en.json", `{"app.title": "My app"}`)

	err := newCLIApp().Run([]string{"transcat", "--config", cfg, "sideload", "--reference", en, de})
	if err != nil {
		t.Fatalf("sideload failed: %v", err)
	}
}

func TestCLIValidate(t *testing.T) {
	cfg := writeTestConfig(t)
	po := writeTestFile(t, "punct_de.po", `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"
"Language: de\n"

msgid "Save changes?"
msgstr "Änderungen speichern"
`)

	// The punctuation mismatch is a warning; warnings alone must not fail
	// the command.
	if err := newCLIApp().Run([]string{"transcat", "--config", cfg, "validate", po}); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
}
