// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import "testing"

func TestEscapeCString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Hello world", want: "Hello world"},
		{name: "quotes", in: `say "hi"`, want: `say \"hi\"`},
		{name: "backslash", in: `C:\temp`, want: `C:\\temp`},
		{name: "newline and tab", in: "a\n\tb", want: `a\n\tb`},
		{name: "carriage return", in: "a\r\nb", want: `a\r\nb`},
		{name: "unicode untouched", in: "naïve — ça", want: "naïve — ça"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := EscapeCString(tt.in); got != tt.want {
				t.Errorf("EscapeCString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnescapeCString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Hello world", want: "Hello world"},
		{name: "standard escapes", in: `a\n\t\r\"b`, want: "a\n\t\r\"b"},
		{name: "rare escapes", in: `\a\b\f\v`, want: "\a\b\f\v"},
		{name: "nul", in: `a\0b`, want: "a\x00b"},
		{name: "double backslash", in: `C:\\temp`, want: `C:\temp`},
		{name: "unknown escape keeps char", in: `a\xb`, want: "axb"},
		{name: "trailing backslash", in: `a\`, want: `a\`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := UnescapeCString(tt.in); got != tt.want {
				t.Errorf("UnescapeCString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain",
		"multi\nline\ntext",
		`mixed "quotes" and \ slashes`,
		"tabs\tand\rreturns",
		"žluťoučký kůň\nüber\tすべて",
	}
	for _, in := range inputs {
		if got := UnescapeCString(EscapeCString(in)); got != in {
			t.Errorf("round trip of %q = %q", in, got)
		}
	}
}
