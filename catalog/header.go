// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/transcat/transcat/lang"
)

// Generator is written to the X-Generator header by UpdateDict. main sets
// it to include the build version.
var Generator = "transcat"

// HeaderEntry is one raw Key: Value pair of the catalog header. Keys are
// not forced unique; reads treat the first match as authoritative.
type HeaderEntry struct {
	Key   string
	Value string
}

// Header holds catalog metadata in two synchronized views: the ordered raw
// entries as stored in the file, and typed fields derived from the standard
// keys. After mutating entries call ParseDict; after mutating fields call
// UpdateDict. Either direction leaves both views consistent.
type Header struct {
	Entries []HeaderEntry

	// Comment is the comment block above the header entry of a gettext
	// file, kept verbatim (including the "#" prefixes) so files round-trip.
	Comment string

	Project         string
	CreationDate    string
	RevisionDate    string
	Translator      string
	TranslatorEmail string
	LanguageTeam    string
	Lang            lang.Language
	Charset         string

	SourceCodeCharset   string
	BasePath            string
	SearchPaths         []string
	SearchPathsExcluded []string
	Keywords            []string
}

// Canonical gettext ordering of the standard keys. Extension keys follow in
// their pre-existing relative order.
var canonicalKeyOrder = []string{
	"Project-Id-Version",
	"Report-Msgid-Bugs-To",
	"POT-Creation-Date",
	"PO-Revision-Date",
	"Last-Translator",
	"Language-Team",
	"Language",
	"MIME-Version",
	"Content-Type",
	"Content-Transfer-Encoding",
	"Plural-Forms",
}

var canonicalKeyRank = func() map[string]int {
	m := make(map[string]int, len(canonicalKeyOrder))
	for i, k := range canonicalKeyOrder {
		m[k] = i
	}
	return m
}()

// Get returns the value of the first entry with the given key, or "".
func (h *Header) Get(key string) string {
	for i := range h.Entries {
		if h.Entries[i].Key == key {
			return h.Entries[i].Value
		}
	}
	return ""
}

// Has reports whether an entry with the given key exists.
func (h *Header) Has(key string) bool {
	for i := range h.Entries {
		if h.Entries[i].Key == key {
			return true
		}
	}
	return false
}

// Set updates the first entry with the given key in place, or appends a new
// entry when the key is absent.
func (h *Header) Set(key, value string) {
	for i := range h.Entries {
		if h.Entries[i].Key == key {
			h.Entries[i].Value = value
			return
		}
	}
	h.Entries = append(h.Entries, HeaderEntry{Key: key, Value: value})
}

// SetNotEmpty behaves like Set for a non-empty value and like Delete for an
// empty one.
func (h *Header) SetNotEmpty(key, value string) {
	if value == "" {
		h.Delete(key)
	} else {
		h.Set(key, value)
	}
}

// Delete removes every entry with the given key.
func (h *Header) Delete(key string) {
	kept := h.Entries[:0]
	for _, e := range h.Entries {
		if e.Key != key {
			kept = append(kept, e)
		}
	}
	h.Entries = kept
}

// FromWireText replaces the entries with those parsed from the header block
// of a catalog file and re-derives the typed fields. Lines without a colon
// separator are logged and skipped; parsing continues.
func (h *Header) FromWireText(text string) {
	h.Entries = h.Entries[:0]
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			log.Error().Str("line", line).Msg("malformed header entry")
			continue
		}
		h.Entries = append(h.Entries, HeaderEntry{
			Key:   strings.TrimSpace(line[:colon]),
			Value: strings.TrimSpace(line[colon+1:]),
		})
	}
	h.ParseDict()
}

// ToWireText synchronizes the entries from the typed fields and serializes
// them. Each line is C-escaped and terminated with a literal \n token
// followed by lineDelim, so the output matches the line-ending convention
// of the surrounding file.
func (h *Header) ToWireText(lineDelim string) string {
	h.UpdateDict()

	var sb strings.Builder
	for _, e := range h.Entries {
		sb.WriteString(EscapeCString(e.Key))
		sb.WriteString(": ")
		sb.WriteString(EscapeCString(e.Value))
		sb.WriteString(`\n`)
		sb.WriteString(lineDelim)
	}
	return sb.String()
}

// NormalizeOrder re-applies the canonical key order: standard keys first in
// their fixed relative order, then extension keys in their existing
// relative order.
func (h *Header) NormalizeOrder() {
	unknown := len(canonicalKeyOrder)
	rank := func(e HeaderEntry) int {
		if r, ok := canonicalKeyRank[e.Key]; ok {
			return r
		}
		return unknown
	}

	// Insertion sort keeps equal-rank entries in input order.
	sorted := make([]HeaderEntry, 0, len(h.Entries))
	for _, e := range h.Entries {
		pos := len(sorted)
		for pos > 0 && rank(sorted[pos-1]) > rank(e) {
			pos--
		}
		sorted = append(sorted, HeaderEntry{})
		copy(sorted[pos+1:], sorted[pos:])
		sorted[pos] = e
	}
	h.Entries = sorted
}

// UpdateDict rebuilds the raw entries from the typed fields and re-applies
// the canonical ordering.
func (h *Header) UpdateDict() {
	h.Set("Project-Id-Version", h.Project)
	h.Set("POT-Creation-Date", h.CreationDate)
	h.Set("PO-Revision-Date", h.RevisionDate)

	if h.TranslatorEmail == "" {
		if h.Translator != "" || !h.Has("Last-Translator") {
			h.Set("Last-Translator", h.Translator)
		}
	} else if h.Translator == "" {
		h.Set("Last-Translator", h.TranslatorEmail)
	} else {
		h.Set("Last-Translator", h.Translator+" <"+h.TranslatorEmail+">")
	}

	h.Set("Language-Team", h.LanguageTeam)
	h.Set("MIME-Version", "1.0")
	h.Set("Content-Type", "text/plain; charset="+h.Charset)
	h.Set("Content-Transfer-Encoding", "8bit")
	h.SetNotEmpty("Language", h.Lang.Code())
	h.Set("X-Generator", Generator)

	h.SetNotEmpty("X-Poedit-SourceCharset", h.SourceCodeCharset)
	h.SetNotEmpty("X-Poedit-KeywordsList", strings.Join(h.Keywords, ";"))
	h.SetNotEmpty("X-Poedit-Basepath", h.BasePath)

	// The indexed series are regenerated from scratch so the indices stay
	// contiguous and stale tails disappear.
	for i := 0; h.Has(searchPathKey(i)); i++ {
		h.Delete(searchPathKey(i))
	}
	for i := 0; h.Has(searchPathExcludedKey(i)); i++ {
		h.Delete(searchPathExcludedKey(i))
	}
	for i, p := range h.SearchPaths {
		h.Set(searchPathKey(i), p)
	}
	for i, p := range h.SearchPathsExcluded {
		h.Set(searchPathExcludedKey(i), p)
	}

	h.NormalizeOrder()
}

// ParseDict re-derives the typed fields from the raw entries, migrating
// legacy keys along the way.
func (h *Header) ParseDict() {
	h.Project = h.Get("Project-Id-Version")
	h.CreationDate = h.Get("POT-Creation-Date")
	h.RevisionDate = h.Get("PO-Revision-Date")

	h.Translator, h.TranslatorEmail = splitTranslator(h.Get("Last-Translator"))
	h.LanguageTeam = h.Get("Language-Team")

	h.Charset = "UTF-8"
	if ctype := h.Get("Content-Type"); ctype != "" {
		const marker = "; charset="
		if pos := strings.Index(ctype, marker); pos >= 0 {
			if cs := strings.TrimSpace(ctype[pos+len(marker):]); cs != "" {
				h.Charset = cs
			}
		}
	}

	h.Lang = lang.TryParse(h.Get("Language"))
	if !h.Lang.IsValid() {
		h.Lang = lang.TryParse(h.Get("X-Language"))
	}
	if !h.Lang.IsValid() {
		h.Lang = lang.FromLegacyNames(h.Get("X-Poedit-Language"), h.Get("X-Poedit-Country"))
	}
	h.Delete("X-Poedit-Language")
	h.Delete("X-Poedit-Country")

	h.SourceCodeCharset = h.Get("X-Poedit-SourceCharset")
	h.BasePath = fixBrokenSearchPathValue(h.Get("X-Poedit-Basepath"))

	h.Keywords = nil
	if kw := h.Get("X-Poedit-KeywordsList"); kw != "" {
		h.Keywords = splitNonEmpty(kw, ';')
	} else if kw := h.Get("X-Poedit-Keywords"); kw != "" {
		h.Keywords = splitNonEmpty(kw, ',')
		h.Delete("X-Poedit-Keywords")
	}

	h.SearchPaths = nil
	for i := 0; h.Has(searchPathKey(i)); i++ {
		if p := fixBrokenSearchPathValue(h.Get(searchPathKey(i))); p != "" {
			h.SearchPaths = append(h.SearchPaths, p)
		}
	}
	h.SearchPathsExcluded = nil
	for i := 0; h.Has(searchPathExcludedKey(i)); i++ {
		if p := fixBrokenSearchPathValue(h.Get(searchPathExcludedKey(i))); p != "" {
			h.SearchPathsExcluded = append(h.SearchPathsExcluded, p)
		}
	}
}

// Clone returns a deep copy of the header.
func (h *Header) Clone() Header {
	dup := *h
	dup.Entries = append([]HeaderEntry(nil), h.Entries...)
	dup.SearchPaths = append([]string(nil), h.SearchPaths...)
	dup.SearchPathsExcluded = append([]string(nil), h.SearchPathsExcluded...)
	dup.Keywords = append([]string(nil), h.Keywords...)
	return dup
}

func searchPathKey(i int) string {
	return fmt.Sprintf("X-Poedit-SearchPath-%d", i)
}

func searchPathExcludedKey(i int) string {
	return fmt.Sprintf("X-Poedit-SearchPathExcluded-%d", i)
}

// splitTranslator splits "Name <email>" into its parts. The split happens
// only when tokenizing on angle brackets yields exactly two tokens;
// anything else is kept whole as the name.
func splitTranslator(s string) (name, email string) {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == '<' || r == '>'
	})
	if len(tokens) != 2 {
		return s, ""
	}
	return strings.TrimSpace(tokens[0]), tokens[1]
}

// fixBrokenSearchPathValue sanitizes path values written by old or broken
// tools: backslashes become slashes and one trailing slash is dropped.
func fixBrokenSearchPathValue(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimSuffix(p, "/")
	return p
}

func splitNonEmpty(s string, sep byte) []string {
	var out []string
	for _, tok := range strings.Split(s, string(sep)) {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
