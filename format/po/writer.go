// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package po

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"codeberg.org/transcat/transcat/catalog"
)

// wrapWidth is the gettext default page width. Quoted lines are folded so
// the whole line, quotes included, stays within it.
const wrapWidth = 79

func (codec) Write(c *catalog.Catalog, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	writeCatalog(w, c)
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func writeCatalog(w io.Writer, c *catalog.Catalog) {
	h := c.Header()
	if h.Comment != "" {
		for _, line := range strings.Split(h.Comment, "\n") {
			fmt.Fprintln(w, line)
		}
	}
	fmt.Fprintln(w, `msgid ""`)
	fmt.Fprintln(w, `msgstr ""`)
	if wire := h.ToWireText("\n"); wire != "" {
		for _, line := range strings.Split(strings.TrimSuffix(wire, "\n"), "\n") {
			fmt.Fprintf(w, "\"%s\"\n", line)
		}
	}

	for _, it := range c.Items() {
		fmt.Fprintln(w)
		writeItem(w, it, "")
	}
	for _, it := range c.DeprecatedItems() {
		fmt.Fprintln(w)
		writeItem(w, it, "#~ ")
	}
}

// writeItem emits one entry. prefix is prepended to the msg* lines of
// deprecated entries; comment lines always keep their own markers.
func writeItem(w io.Writer, it *catalog.Item, prefix string) {
	if comment := it.Comment(); comment != "" {
		for _, line := range strings.Split(comment, "\n") {
			if line == "" {
				fmt.Fprintln(w, "#")
			} else {
				fmt.Fprintln(w, "# "+line)
			}
		}
	}
	for _, ec := range it.ExtractedComments() {
		fmt.Fprintln(w, "#. "+ec)
	}
	for _, ref := range it.References() {
		fmt.Fprintln(w, "#: "+ref)
	}
	if flags := it.Flags(); flags != "" {
		fmt.Fprintln(w, "#"+flags)
	}
	for _, old := range it.OldMsgidRaw() {
		fmt.Fprintln(w, "#| "+old)
	}

	if it.HasContext() {
		writeField(w, prefix, "msgctxt", it.Context())
	}
	writeField(w, prefix, "msgid", it.RawSource())
	if it.HasPlural() {
		writeField(w, prefix, "msgid_plural", it.RawPluralSource())
		for i, tr := range it.Translations() {
			writeField(w, prefix, fmt.Sprintf("msgstr[%d]", i), tr)
		}
	} else {
		writeField(w, prefix, "msgstr", it.Translation(0))
	}
}

// writeField emits `keyword "value"`, splitting on embedded newlines and
// folding long lines the way gettext does: an empty string on the keyword
// line, then one quoted chunk per output line.
func writeField(w io.Writer, prefix, keyword, value string) {
	segments := strings.SplitAfter(value, "\n")
	if n := len(segments); n > 1 && segments[n-1] == "" {
		segments = segments[:n-1]
	}

	escaped := make([]string, len(segments))
	for i, seg := range segments {
		escaped[i] = catalog.EscapeCString(seg)
	}

	if len(escaped) == 1 && len(prefix)+len(keyword)+len(escaped[0])+3 <= wrapWidth {
		fmt.Fprintf(w, "%s%s \"%s\"\n", prefix, keyword, escaped[0])
		return
	}

	fmt.Fprintf(w, "%s%s \"\"\n", prefix, keyword)
	width := wrapWidth - 2 - len(prefix)
	for _, seg := range escaped {
		for _, chunk := range foldEscaped(seg, width) {
			fmt.Fprintf(w, "%s\"%s\"\n", prefix, chunk)
		}
	}
}

// foldEscaped splits already-escaped text into chunks of at most width
// bytes, breaking after a space when one is in reach. Cuts never split an
// escape sequence or a UTF-8 rune, so unescaping the concatenated chunks
// gives back the original text.
func foldEscaped(s string, width int) []string {
	if width < 16 {
		width = 16
	}
	var chunks []string
	for len(s) > width {
		cut := strings.LastIndexByte(s[:width], ' ')
		if cut >= 0 {
			cut++
		} else {
			cut = safeCut(s, width)
		}
		chunks = append(chunks, s[:cut])
		s = s[cut:]
	}
	return append(chunks, s)
}

func safeCut(s string, width int) int {
	cut := width
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	backslashes := 0
	for cut-1-backslashes >= 0 && s[cut-1-backslashes] == '\\' {
		backslashes++
	}
	if backslashes%2 == 1 {
		cut--
	}
	if cut <= 0 {
		return width
	}
	return cut
}
