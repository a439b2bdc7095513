// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package lang

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// TryGuessFromFilename infers a language from common catalog naming schemes:
// "fr.po", "app_fr.po", "app.pt-BR.po" and the gettext directory layout
// "<lang>/LC_MESSAGES/domain.po". Returns the unset language when nothing
// plausible matches.
//
// Unlike TryParse, candidates cut out of a file name must name a language
// CLDR knows. Plenty of English words are registered ISO 639 codes ("app"
// is a language of Vanuatu), and without that filter a catalog called
// app_fr.po would guess the code "app" instead of French.
func TryGuessFromFilename(path string) Language {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if l := TryParse(base); isWellKnown(l) {
		return l
	}
	for _, sep := range []byte{'.', '_', '-'} {
		i := strings.LastIndexByte(base, sep)
		if i < 0 || i == len(base)-1 {
			continue
		}
		if l := TryParse(base[i+1:]); isWellKnown(l) {
			return l
		}
	}

	dir := filepath.Dir(path)
	if filepath.Base(dir) == "LC_MESSAGES" {
		l := TryParse(filepath.Base(filepath.Dir(dir)))
		if isWellKnown(l) {
			return l
		}
	}
	return Language{}
}

// isWellKnown reports whether the base language has an English display name
// in CLDR. Codes that are merely registered do not qualify.
func isWellKnown(l Language) bool {
	if !l.IsValid() {
		return false
	}
	tag, err := language.Parse(l.Base())
	if err != nil {
		return false
	}
	return display.English.Languages().Name(tag) != ""
}
