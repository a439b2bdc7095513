// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"codeberg.org/transcat/transcat/lang"
)

// Type tags the on-disk encoding of a catalog. The set is closed; each tag
// maps to a fixed capability set.
type Type int

const (
	TypePO Type = iota
	TypePOT
	TypeXLIFF
	TypeJSON
	TypeJSONFlutter
)

// String returns a human-readable name for the type tag.
func (t Type) String() string {
	switch t {
	case TypePO:
		return "PO"
	case TypePOT:
		return "POT"
	case TypeXLIFF:
		return "XLIFF"
	case TypeJSON:
		return "JSON"
	case TypeJSONFlutter:
		return "JSON (Flutter)"
	default:
		return "unknown"
	}
}

// Cap is a capability bit. Capabilities gate behavior that only makes sense
// for some on-disk types.
type Cap uint8

const (
	// CapTranslations marks catalogs that hold translations, as opposed to
	// templates.
	CapTranslations Cap = 1 << iota
	// CapLanguageSetting marks formats that can record a target language.
	CapLanguageSetting
	// CapUserComments marks formats with translator comments.
	CapUserComments
	// CapFuzzyTranslations marks formats that can flag a translation as
	// needing review.
	CapFuzzyTranslations
)

var typeCapabilities = [...]Cap{
	TypePO:          CapTranslations | CapLanguageSetting | CapUserComments | CapFuzzyTranslations,
	TypePOT:         CapLanguageSetting | CapUserComments | CapFuzzyTranslations,
	TypeXLIFF:       CapTranslations | CapLanguageSetting | CapFuzzyTranslations,
	TypeJSON:        CapTranslations,
	TypeJSONFlutter: CapTranslations | CapLanguageSetting,
}

// TranslatorIdentity is the default translator recorded in fresh headers.
// It is injected by the caller (usually from configuration) instead of
// being read from global state.
type TranslatorIdentity struct {
	Name  string
	Email string
}

// QAChecker is the linguistic QA collaborator run by Validate. Check
// inspects the catalog, records issues on items and returns the number of
// warnings among them.
type QAChecker interface {
	Check(c *Catalog) int
}

// Catalog is the aggregate root: header metadata plus the ordered
// translation units of one file. Items are owned exclusively by their
// catalog and stay ordered by ascending source line number; the line-lookup
// operations rely on that.
//
// A Catalog is not safe for concurrent mutation; callers serialize access
// themselves.
type Catalog struct {
	typ      Type
	header   Header
	items    []*Item
	fileName string

	// deprecated holds obsolete (#~) entries so gettext files round-trip.
	deprecated []*Item

	sourceLanguage     lang.Language
	sourceIsSymbolicID bool

	sideloaded *SideloadedCatalogData
}

// Statistics is the per-catalog counter set produced by Statistics.
type Statistics struct {
	Total        int
	Fuzzy        int
	Errors       int
	Untranslated int
	// Unfinished counts items that are fuzzy, errored or untranslated.
	Unfinished int
}

// New returns an empty catalog shell of the given type with no header set
// up. Format codecs use it while parsing; most callers want NewCatalog or
// Open instead.
func New(typ Type) *Catalog {
	return &Catalog{typ: typ}
}

// Type returns the on-disk type tag. It is fixed at construction.
func (c *Catalog) Type() Type { return c.typ }

// HasCapability reports whether the catalog's type supports the capability.
func (c *Catalog) HasCapability(cap Cap) bool {
	return typeCapabilities[c.typ]&cap != 0
}

// Header returns the catalog's header for reading and mutation.
func (c *Catalog) Header() *Header { return &c.header }

// Items returns the ordered translation units. The slice is owned by the
// catalog.
func (c *Catalog) Items() []*Item { return c.items }

// AddItem appends a translation unit.
func (c *Catalog) AddItem(it *Item) { c.items = append(c.items, it) }

// DeprecatedItems returns entries that are kept only so the file
// round-trips (gettext #~ blocks).
func (c *Catalog) DeprecatedItems() []*Item { return c.deprecated }

func (c *Catalog) SetDeprecatedItems(items []*Item) { c.deprecated = items }

// FileName returns the catalog's absolute file path, or "" when the
// catalog has not been associated with a file.
func (c *Catalog) FileName() string { return c.fileName }

// SetFileName records the catalog's file path, made absolute.
func (c *Catalog) SetFileName(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		c.fileName = abs
	} else {
		c.fileName = path
	}
}

// Language returns the target language declared in the header.
func (c *Catalog) Language() lang.Language { return c.header.Lang }

// SetLanguage sets the target language and, when the Plural-Forms header is
// missing or still the template placeholder, fills in the language's
// standard plural rule.
func (c *Catalog) SetLanguage(l lang.Language) {
	c.header.Lang = l
	pf := c.header.Get("Plural-Forms")
	if pf == "" || pf == pluralFormsPlaceholder {
		if def := lang.DefaultPluralForms(l); def != "" {
			c.header.Set("Plural-Forms", def)
		}
	}
}

// SourceLanguage returns the language of the source strings, when known.
func (c *Catalog) SourceLanguage() lang.Language { return c.sourceLanguage }

func (c *Catalog) SetSourceLanguage(l lang.Language) { c.sourceLanguage = l }

// UsesSymbolicIDsForSource reports whether the source strings are symbolic
// identifiers ("app.quit.label") rather than natural-language text.
func (c *Catalog) UsesSymbolicIDsForSource() bool { return c.sourceIsSymbolicID }

// FindItemByLine returns the last item that starts at or before the given
// line of the catalog file, or nil when no item does.
func (c *Catalog) FindItemByLine(line int) *Item {
	i := c.FindItemIndexByLine(line)
	if i < 0 {
		return nil
	}
	return c.items[i]
}

// FindItemIndexByLine is FindItemByLine returning the index, or -1.
func (c *Catalog) FindItemIndexByLine(line int) int {
	last := -1
	for _, it := range c.items {
		if it.LineNumber() > line {
			return last
		}
		last++
	}
	return last
}

// RemoveSameAsSourceTranslations clears translations that merely repeat the
// source string. Pluralized items are only cleared when the catalog uses
// exactly two plural forms and the second slot repeats the plural source;
// other plural rules cannot be compared safely and are left alone. Reports
// whether anything changed.
func (c *Catalog) RemoveSameAsSourceTranslations() bool {
	changed := false
	for _, it := range c.items {
		if it.Source() != it.Translation(0) {
			continue
		}
		if it.HasPlural() && (c.PluralFormsCount() != 2 || it.PluralSource() != it.Translation(1)) {
			continue
		}
		it.ClearTranslation()
		changed = true
	}
	return changed
}

// Statistics counts the items in one pass.
func (c *Catalog) Statistics() Statistics {
	var st Statistics
	for _, it := range c.items {
		st.Total++
		unfinished := false
		if it.IsFuzzy() {
			st.Fuzzy++
			unfinished = true
		}
		if it.HasError() {
			st.Errors++
			unfinished = true
		}
		if !it.IsTranslated() {
			st.Untranslated++
			unfinished = true
		}
		if unfinished {
			st.Unfinished++
		}
	}
	return st
}

// Validate clears all recorded issues and re-runs validation. Catalogs
// whose type cannot hold translations validate trivially. Warnings come
// from the QA collaborator and are skipped when disabled by the caller or
// when the source strings are symbolic IDs (QA rules assume natural
// language). Returns the error and warning counts.
func (c *Catalog) Validate(checker QAChecker, showWarnings bool) (errors, warnings int) {
	for _, it := range c.items {
		it.ClearIssue()
	}
	if !c.HasCapability(CapTranslations) {
		return 0, 0
	}
	if showWarnings && !c.sourceIsSymbolicID && checker != nil {
		warnings = checker.Check(c)
	}
	for _, it := range c.items {
		if it.HasError() {
			errors++
		}
	}
	return errors, warnings
}

const pluralFormsPlaceholder = "nplurals=INTEGER; plural=EXPRESSION;"

const headerTimeFormat = "2006-01-02 15:04-0700"

// CreateNewHeader initializes the header of a fresh catalog: dates stamped
// now, UTF-8 charset, base path ".", the given translator identity, and
// for POT templates the placeholder plural-forms rule.
func (c *Catalog) CreateNewHeader(id TranslatorIdentity) {
	now := time.Now().Format(headerTimeFormat)

	h := &c.header
	h.CreationDate = now
	h.RevisionDate = now
	h.Lang = lang.Language{}
	if c.typ == TypePOT {
		h.Set("Plural-Forms", pluralFormsPlaceholder)
	}
	h.Project = ""
	h.LanguageTeam = ""
	h.Charset = "UTF-8"
	h.Translator = id.Name
	h.TranslatorEmail = id.Email
	h.SourceCodeCharset = ""
	h.BasePath = "."
	h.UpdateDict()
}

// CreateHeaderFromTemplate initializes the header from a POT template's
// header, clearing the placeholder values a template carries and applying
// the given translator identity.
func (c *Catalog) CreateHeaderFromTemplate(pot *Header, id TranslatorIdentity) {
	h := &c.header
	*h = pot.Clone()

	h.Charset = "UTF-8"
	h.Lang = lang.Language{}
	if h.RevisionDate != "" {
		h.RevisionDate = time.Now().Format(headerTimeFormat)
	}
	if h.LanguageTeam == "LANGUAGE <LL@li.org>" {
		h.LanguageTeam = ""
	}
	if h.Project == "PROJECT VERSION" {
		h.Project = ""
	}
	if h.Get("Plural-Forms") == pluralFormsPlaceholder {
		h.Delete("Plural-Forms")
	}
	h.Delete("Last-Translator")
	h.Translator = id.Name
	h.TranslatorEmail = id.Email
	h.UpdateDict()
}

// PostCreation normalizes a freshly parsed catalog: it classifies the
// source strings as symbolic IDs or natural language, detects the source
// language from the text when unknown, and fills in a missing target
// language from the file name or the translated text. Open calls it;
// codecs constructing catalogs outside Open should too.
func (c *Catalog) PostCreation() {
	if !c.sourceLanguage.IsValid() {
		if !c.sourceIsSymbolicID {
			c.sourceIsSymbolicID = sourcesAreSymbolicIDs(c.items)
		}
		if !c.sourceIsSymbolicID {
			var sb strings.Builder
			for _, it := range c.items {
				sb.WriteString(lang.StripMarkup(it.RawSource()))
				sb.WriteByte(' ')
			}
			if sb.Len() > 0 {
				c.sourceLanguage = lang.TryDetectFromText(sb.String())
				if c.sourceLanguage.IsValid() {
					log.Debug().
						Str("lang", c.sourceLanguage.Code()).
						Str("file", c.fileName).
						Msg("detected source language")
				}
			}
		}
	}

	if c.HasCapability(CapTranslations) && !c.Language().IsValid() {
		l := lang.TryGuessFromFilename(c.fileName)
		if !l.IsValid() {
			var sb strings.Builder
			for _, it := range c.items {
				if it.IsTranslated() {
					sb.WriteString(it.Translation(0))
					sb.WriteByte('\n')
				}
			}
			if sb.Len() > 0 {
				l = lang.TryDetectFromText(sb.String())
			}
		}
		if l.IsValid() {
			log.Debug().
				Str("lang", l.Code()).
				Str("file", c.fileName).
				Msg("detected catalog language")
			c.SetLanguage(l)
		}
	}
}

// Symbolic identifiers contain neither spaces nor characters outside
// 7-bit ASCII, across every source string.
func sourcesAreSymbolicIDs(items []*Item) bool {
	for _, it := range items {
		for _, r := range it.RawSource() {
			if r == ' ' || r >= 0x80 {
				return false
			}
		}
	}
	return true
}
