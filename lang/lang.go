// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package lang models natural languages as gettext-style codes and provides
// the parsing, guessing and detection heuristics used when a catalog's
// language is missing or underdeclared.
package lang

import (
	"strings"

	"golang.org/x/text/language"
)

// Language identifies a natural language in gettext notation ("fr", "pt_BR",
// "sr@latin"). The zero value is the unset language. Values are comparable
// with ==.
type Language struct {
	code string
}

// TryParse parses a code in gettext ("pt_BR") or BCP 47 ("pt-BR") notation,
// canonicalizing case and subtag order. Unparseable or unknown codes yield
// the unset language rather than an error; template placeholders such as
// "LANGUAGE" therefore come back unset.
func TryParse(s string) Language {
	s = strings.TrimSpace(s)
	if s == "" {
		return Language{}
	}

	// gettext modifiers ("sr@latin") are not BCP 47; hold the modifier
	// aside and reattach it after canonicalization.
	var modifier string
	if at := strings.IndexByte(s, '@'); at >= 0 {
		modifier = s[at:]
		s = s[:at]
		if s == "" {
			return Language{}
		}
	}

	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return Language{}
	}

	return Language{code: strings.ReplaceAll(tag.String(), "-", "_") + modifier}
}

// IsValid reports whether l carries a language code.
func (l Language) IsValid() bool { return l.code != "" }

// Code returns the gettext-style code ("pt_BR"), or "" when unset.
func (l Language) Code() string { return l.code }

// String implements fmt.Stringer and is equivalent to Code.
func (l Language) String() string { return l.code }

// Base returns the bare language subtag ("pt" for "pt_BR", "sr" for
// "sr@latin").
func (l Language) Base() string {
	code := l.code
	if at := strings.IndexByte(code, '@'); at >= 0 {
		code = code[:at]
	}
	if sep := strings.IndexByte(code, '_'); sep >= 0 {
		code = code[:sep]
	}
	return code
}

// BCP47 returns the code in BCP 47 notation ("pt-BR"), dropping any gettext
// modifier. XLIFF attributes use this form.
func (l Language) BCP47() string {
	code := l.code
	if at := strings.IndexByte(code, '@'); at >= 0 {
		code = code[:at]
	}
	return strings.ReplaceAll(code, "_", "-")
}
