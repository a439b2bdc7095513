// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import "strings"

// EscapeCString escapes s using the C string conventions of the PO format:
// backslash, double quote, newline, tab and carriage return become their
// two-character escape sequences.
func EscapeCString(s string) string {
	if !strings.ContainsAny(s, "\\\"\n\t\r") {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// UnescapeCString reverses EscapeCString and additionally understands the
// rarer C escapes that other tools emit. An unknown escape sequence keeps
// the escaped character and drops the backslash, which is what gettext's
// own tools settle on after warning.
func UnescapeCString(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	escaped := false
	for _, r := range s {
		if !escaped {
			if r == '\\' {
				escaped = true
			} else {
				sb.WriteRune(r)
			}
			continue
		}
		escaped = false
		switch r {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			sb.WriteByte(0)
		default:
			sb.WriteRune(r)
		}
	}
	if escaped {
		sb.WriteByte('\\')
	}
	return sb.String()
}
