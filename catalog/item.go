// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import "strings"

// IssueSeverity grades a validation finding attached to an item.
type IssueSeverity int

const (
	IssueWarning IssueSeverity = iota
	IssueError
)

// Issue is a validation finding attached to an item by Validate or by a
// format codec.
type Issue struct {
	Severity IssueSeverity
	Message  string
}

// SideloadedItemData is the overlay attached to an item when source data is
// sideloaded from a reference catalog. It never replaces the item's own
// fields; accessors prefer it when present.
type SideloadedItemData struct {
	SourceString       string
	SourcePluralString string
	ExtractedComments  []string
}

// Item is one translation unit: a source string, an optional plural source,
// and one translation slot per plural form of the target language
// (exactly one slot when not pluralized).
type Item struct {
	source       string
	plural       string
	hasPlural    bool
	context      string
	hasContext   bool
	translations []string

	comment           string
	extractedComments []string
	references        []string
	oldMsgid          []string

	isFuzzy         bool
	isTranslated    bool
	isPreTranslated bool
	isModified      bool
	moreFlags       string

	lineNumber int

	// formatMetadata is a codec-private payload kept so a read-modify-write
	// cycle preserves format details the model does not represent (for
	// example Flutter ARB "@key" objects). The owning codec defines its
	// meaning; everything else treats it as opaque.
	formatMetadata string

	issue      *Issue
	sideloaded *SideloadedItemData
}

// NewItem returns an item for the given source string with one empty
// translation slot.
func NewItem(source string) *Item {
	return &Item{
		source:       source,
		translations: []string{""},
	}
}

// Source returns the source string, preferring sideloaded data when
// attached. RawSource always returns the item's own string.
func (it *Item) Source() string {
	if it.sideloaded != nil {
		return it.sideloaded.SourceString
	}
	return it.source
}

func (it *Item) RawSource() string { return it.source }

// SetSource replaces the source string.
func (it *Item) SetSource(s string) { it.source = s }

// PluralSource returns the plural source string, preferring sideloaded data
// when it carries one. RawPluralSource always returns the item's own.
func (it *Item) PluralSource() string {
	if it.sideloaded != nil && it.sideloaded.SourcePluralString != "" {
		return it.sideloaded.SourcePluralString
	}
	return it.plural
}

func (it *Item) RawPluralSource() string { return it.plural }

// SetPluralSource sets the plural source string and marks the item
// pluralized.
func (it *Item) SetPluralSource(s string) {
	it.plural = s
	it.hasPlural = true
}

func (it *Item) HasPlural() bool { return it.hasPlural }

// Context returns the disambiguation context (msgctxt), if any.
func (it *Item) Context() string { return it.context }

func (it *Item) HasContext() bool { return it.hasContext }

func (it *Item) SetContext(ctx string) {
	it.context = ctx
	it.hasContext = true
}

// Translation returns the translation in the given slot, or "" when the
// slot does not exist.
func (it *Item) Translation(index int) string {
	if index < 0 || index >= len(it.translations) {
		return ""
	}
	return it.translations[index]
}

// Translations returns the slot array itself. Callers must not mutate it;
// use the setters so derived state stays correct.
func (it *Item) Translations() []string { return it.translations }

// SetTranslation stores a translation in the given slot, growing the slot
// array with empty slots as needed. Any recorded issue is cleared and the
// translated flag is recomputed.
func (it *Item) SetTranslation(t string, index int) {
	for index >= len(it.translations) {
		it.translations = append(it.translations, "")
	}
	it.translations[index] = t
	it.ClearIssue()
	it.recomputeTranslated()
}

// SetTranslations replaces all slots at once, clears any recorded issue and
// recomputes the translated flag.
func (it *Item) SetTranslations(slots []string) {
	it.translations = append(it.translations[:0], slots...)
	it.ClearIssue()
	it.recomputeTranslated()
}

// SetTranslationFromSource copies the source string into slot 0 and, for
// pluralized items, the plural source into every remaining slot. Only slots
// whose value actually changes mark the item modified. Fuzzy and
// pre-translated are cleared, translated is set.
func (it *Item) SetTranslationFromSource() {
	it.ClearIssue()
	it.isFuzzy = false
	it.isPreTranslated = false
	it.isTranslated = true

	if len(it.translations) == 0 {
		it.translations = append(it.translations, "")
	}
	if it.translations[0] != it.source {
		it.translations[0] = it.source
		it.isModified = true
	}
	if it.hasPlural {
		for i := 1; i < len(it.translations); i++ {
			if it.translations[i] != it.plural {
				it.translations[i] = it.plural
				it.isModified = true
			}
		}
	}
}

// ClearTranslation blanks every slot, marking the item modified if any slot
// held text, and clears fuzzy/pre-translated/translated.
func (it *Item) ClearTranslation() {
	it.isFuzzy = false
	it.isPreTranslated = false
	it.isTranslated = false
	for i := range it.translations {
		if it.translations[i] != "" {
			it.isModified = true
		}
		it.translations[i] = ""
	}
}

func (it *Item) recomputeTranslated() {
	for _, t := range it.translations {
		if t == "" {
			it.isTranslated = false
			return
		}
	}
	it.isTranslated = len(it.translations) > 0
}

// IsTranslated reports whether every translation slot is non-empty.
func (it *Item) IsTranslated() bool { return it.isTranslated }

func (it *Item) IsFuzzy() bool { return it.isFuzzy }

// SetFuzzy sets the fuzzy flag. Unsetting it discards the recorded
// old-msgid lines, which only describe the state the fuzzy flag referred
// to.
func (it *Item) SetFuzzy(fuzzy bool) {
	if !fuzzy && it.isFuzzy {
		it.oldMsgid = nil
	}
	it.isFuzzy = fuzzy
}

func (it *Item) IsPreTranslated() bool     { return it.isPreTranslated }
func (it *Item) SetPreTranslated(pt bool)  { it.isPreTranslated = pt }
func (it *Item) IsModified() bool          { return it.isModified }
func (it *Item) SetModified(modified bool) { it.isModified = modified }

// fuzzyFlag is how the fuzzy state is spelled inside a PO flags string.
const fuzzyFlag = ", fuzzy"

// SetFlags parses a PO-style flags string. The fuzzy flag is extracted into
// the boolean; everything else is kept verbatim and reattached by Flags.
func (it *Item) SetFlags(flags string) {
	if pos := strings.Index(flags, fuzzyFlag); pos >= 0 {
		it.isFuzzy = true
		it.moreFlags = flags[:pos] + flags[pos+len(fuzzyFlag):]
	} else {
		it.isFuzzy = false
		it.moreFlags = flags
	}
}

// Flags returns the PO-style flags string with the fuzzy flag re-injected
// as a prefix when set.
func (it *Item) Flags() string {
	if it.isFuzzy {
		return fuzzyFlag + it.moreFlags
	}
	return it.moreFlags
}

// FormatFlag extracts the format name from a "<name>-format" flag
// ("c-format" yields "c"). Negated flags ("no-c-format") and absent flags
// yield "".
func (it *Item) FormatFlag() string {
	pos := strings.LastIndex(it.moreFlags, "-format")
	if pos < 0 {
		return ""
	}
	start := strings.LastIndexAny(it.moreFlags[:pos], " \t")
	token := it.moreFlags[start+1 : pos]
	if strings.HasPrefix(token, "no-") {
		return ""
	}
	return token
}

// OldMsgidRaw returns the recorded pre-update msgid lines exactly as stored
// in the file (the #| block).
func (it *Item) OldMsgidRaw() []string { return it.oldMsgid }

// SetOldMsgidRaw records the raw pre-update msgid lines.
func (it *Item) SetOldMsgidRaw(lines []string) { it.oldMsgid = lines }

// OldMsgid reconstructs the previous source string from the recorded raw
// lines: quotes are stripped, the msgid keyword prefix is dropped, a
// msgid_plural prefix becomes a newline separator, and C escapes are
// decoded.
func (it *Item) OldMsgid() string {
	var sb strings.Builder
	for _, line := range it.oldMsgid {
		if len(line) < 2 {
			continue
		}
		line = strings.TrimSuffix(line, `"`)
		line = strings.TrimPrefix(line, `"`)
		if strings.HasPrefix(line, `msgid "`) {
			line = line[len(`msgid "`):]
		} else if strings.HasPrefix(line, `msgid_plural "`) {
			line = "\n" + line[len(`msgid_plural "`):]
		}
		sb.WriteString(UnescapeCString(line))
	}
	return sb.String()
}

// Comment returns the translator comment.
func (it *Item) Comment() string { return it.comment }

func (it *Item) SetComment(comment string) { it.comment = comment }

// ExtractedComments returns the comments extracted from source code,
// preferring sideloaded ones when attached.
func (it *Item) ExtractedComments() []string {
	if it.sideloaded != nil && len(it.sideloaded.ExtractedComments) > 0 {
		return it.sideloaded.ExtractedComments
	}
	return it.extractedComments
}

func (it *Item) SetExtractedComments(comments []string) {
	it.extractedComments = comments
}

// References returns the source code references ("file.go:42") recorded
// for the item.
func (it *Item) References() []string { return it.references }

func (it *Item) SetReferences(refs []string) { it.references = refs }

func (it *Item) AddReference(ref string) {
	it.references = append(it.references, ref)
}

// LineNumber returns the line in the catalog file where the item starts,
// or 0 when unknown.
func (it *Item) LineNumber() int { return it.lineNumber }

func (it *Item) SetLineNumber(n int) { it.lineNumber = n }

// FormatMetadata returns the codec-private payload attached to the item,
// or "" when there is none.
func (it *Item) FormatMetadata() string { return it.formatMetadata }

func (it *Item) SetFormatMetadata(raw string) { it.formatMetadata = raw }

// Issue returns the validation finding recorded for the item, or nil.
func (it *Item) Issue() *Issue { return it.issue }

func (it *Item) HasIssue() bool { return it.issue != nil }

func (it *Item) HasError() bool {
	return it.issue != nil && it.issue.Severity == IssueError
}

// SetIssue records a validation finding, replacing any previous one.
func (it *Item) SetIssue(severity IssueSeverity, message string) {
	it.issue = &Issue{Severity: severity, Message: message}
}

func (it *Item) ClearIssue() { it.issue = nil }

// AttachSideloadedData attaches an overlay from a reference catalog.
func (it *Item) AttachSideloadedData(data *SideloadedItemData) {
	it.sideloaded = data
}

// ClearSideloadedData detaches the overlay, if any.
func (it *Item) ClearSideloadedData() { it.sideloaded = nil }

// SideloadedData returns the attached overlay, or nil.
func (it *Item) SideloadedData() *SideloadedItemData { return it.sideloaded }

// PluralFormsCount reports how many plural translation slots the item
// carries: the slot count minus the singular slot, 0 for non-pluralized or
// slotless items.
func (it *Item) PluralFormsCount() int {
	if !it.hasPlural || len(it.translations) == 0 {
		return 0
	}
	return len(it.translations) - 1
}
