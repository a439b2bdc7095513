// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package lang

import (
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup removes HTML/XML-ish tags from text, keeping text nodes and
// decoding entities. It is approximate on purpose: the input is UI strings
// that may merely look like markup, and feeding tag soup to the language
// detector is worse than losing the odd angle bracket.
func StripMarkup(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}

	z := html.NewTokenizer(strings.NewReader(s))
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}
