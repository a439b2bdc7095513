// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package qa implements the linguistic checks run during catalog
// validation. The rules compare each translation against its source
// string: whitespace framing, terminal punctuation, initial letter case,
// printf-style placeholder inventory and markup tag inventory, plus a
// completeness check for plural forms.
package qa

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"codeberg.org/transcat/transcat/catalog"
)

// Checker runs the default rule set. It implements catalog.QAChecker.
//
// Items that are fuzzy, completely untranslated or already carrying an
// issue (codecs record parse problems as errors) are left alone. At most
// one warning is recorded per item, from the first rule that fails.
type Checker struct{}

func NewChecker() *Checker { return &Checker{} }

func (*Checker) Check(c *catalog.Catalog) int {
	warnings := 0
	for _, it := range c.Items() {
		if it.IsFuzzy() || it.HasIssue() || translationEmpty(it) {
			continue
		}
		if msg := checkItem(it); msg != "" {
			it.SetIssue(catalog.IssueWarning, msg)
			warnings++
		}
	}
	return warnings
}

func translationEmpty(it *catalog.Item) bool {
	for _, t := range it.Translations() {
		if t != "" {
			return false
		}
	}
	return true
}

type pair struct {
	src, dst string
}

// pairs matches each translation slot with the source string it renders:
// slot 0 with the singular, every further slot with the plural source.
func pairs(it *catalog.Item) []pair {
	ps := []pair{{it.RawSource(), it.Translation(0)}}
	if it.HasPlural() {
		for i := 1; i < len(it.Translations()); i++ {
			ps = append(ps, pair{it.RawPluralSource(), it.Translation(i)})
		}
	}
	return ps
}

func checkItem(it *catalog.Item) string {
	if !it.IsTranslated() {
		return "not all plural forms are translated"
	}
	flavor := it.FormatFlag()
	for _, p := range pairs(it) {
		if msg := checkPlaceholders(p.src, p.dst, flavor); msg != "" {
			return msg
		}
		if msg := checkMarkup(p.src, p.dst); msg != "" {
			return msg
		}
		if msg := checkWhitespace(p.src, p.dst); msg != "" {
			return msg
		}
		if msg := checkPunctuation(p.src, p.dst); msg != "" {
			return msg
		}
		if msg := checkCase(p.src, p.dst); msg != "" {
			return msg
		}
	}
	return ""
}

func checkWhitespace(src, dst string) string {
	if leadingWhitespace(src) != leadingWhitespace(dst) {
		return "leading whitespace does not match the source"
	}
	if trailingWhitespace(src) != trailingWhitespace(dst) {
		return "trailing whitespace does not match the source"
	}
	return ""
}

func leadingWhitespace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t\n"))]
}

func trailingWhitespace(s string) string {
	return s[len(strings.TrimRight(s, " \t\n")):]
}

// terminalPunct returns the effective terminal punctuation rune, treating
// an ASCII "..." like the ellipsis character. 0 means none.
func terminalPunct(s string) rune {
	s = strings.TrimRight(s, " \t\n")
	if strings.HasSuffix(s, "...") {
		return '…'
	}
	r, size := utf8.DecodeLastRuneInString(s)
	if size > 0 && strings.ContainsRune(".。!！?？:：;；…", r) {
		return r
	}
	return 0
}

// punctEquivalents maps a terminal punctuation rune to the set accepted in
// its place; ideographic forms count as their ASCII counterparts.
func punctEquivalents(r rune) string {
	switch r {
	case '.', '。':
		return ".。"
	case '!', '！':
		return "!！"
	case '?', '？':
		return "?？"
	case ':', '：':
		return ":："
	case ';', '；':
		return ";；"
	default:
		return string(r)
	}
}

func checkPunctuation(src, dst string) string {
	ps, pd := terminalPunct(src), terminalPunct(dst)
	if ps == pd || (ps != 0 && pd != 0 && strings.ContainsRune(punctEquivalents(ps), pd)) {
		return ""
	}
	if ps == 0 {
		return "the translation ends with punctuation the source does not have"
	}
	return fmt.Sprintf("the translation does not end with %q like the source does", ps)
}

func checkCase(src, dst string) string {
	rs, _ := utf8.DecodeRuneInString(src)
	rd, _ := utf8.DecodeRuneInString(dst)
	if !unicode.IsLetter(rs) || !unicode.IsLetter(rd) {
		return ""
	}
	switch {
	case unicode.IsUpper(rs) && unicode.IsLower(rd):
		return "the translation starts with a lowercase letter but the source does not"
	case unicode.IsLower(rs) && unicode.IsUpper(rd):
		return "the translation starts with an uppercase letter but the source does not"
	}
	return ""
}

var (
	cFormatRE      = regexp.MustCompile(`%(?:\d+\$)?[-+ #0]*(?:\d+|\*)?(?:\.(?:\d+|\*))?(?:hh|h|ll|l|L|q|j|z|t)?[diouxXeEfFgGaAcspn%]`)
	pythonFormatRE = regexp.MustCompile(`%(?:\([^)]*\))?[-+ #0]*\d*(?:\.\d+)?[diouxXeEfFgGcrs%]`)
)

// placeholderPattern returns the token pattern for printf-style format
// families, or nil for families without one (the check is skipped then).
func placeholderPattern(flavor string) *regexp.Regexp {
	switch flavor {
	case "c", "objc", "php", "perl", "ruby", "lua":
		return cFormatRE
	case "python":
		return pythonFormatRE
	default:
		return nil
	}
}

func checkPlaceholders(src, dst, flavor string) string {
	re := placeholderPattern(flavor)
	if re == nil {
		return ""
	}
	missing, extra := diffTokens(formatTokens(re, src), formatTokens(re, dst))
	if len(missing) > 0 {
		return fmt.Sprintf("the translation is missing the placeholder %s", missing[0])
	}
	if len(extra) > 0 {
		return fmt.Sprintf("the translation contains an extra placeholder %s", extra[0])
	}
	return ""
}

func formatTokens(re *regexp.Regexp, s string) []string {
	var ts []string
	for _, tok := range re.FindAllString(s, -1) {
		if strings.HasSuffix(tok, "%") {
			// A literal percent, not a placeholder.
			continue
		}
		ts = append(ts, tok)
	}
	return ts
}

func diffTokens(src, dst []string) (missing, extra []string) {
	counts := make(map[string]int)
	for _, t := range src {
		counts[t]++
	}
	for _, t := range dst {
		counts[t]--
	}
	keys := make([]string, 0, len(counts))
	for t := range counts {
		keys = append(keys, t)
	}
	sort.Strings(keys)
	for _, t := range keys {
		switch {
		case counts[t] > 0:
			missing = append(missing, t)
		case counts[t] < 0:
			extra = append(extra, t)
		}
	}
	return missing, extra
}

func checkMarkup(src, dst string) string {
	srcTags := tagInventory(src)
	dstTags := tagInventory(dst)
	switch {
	case len(srcTags) == 0 && len(dstTags) == 0:
		return ""
	case len(srcTags) == 0:
		return "the translation contains markup the source does not have"
	}
	if strings.Join(srcTags, ",") != strings.Join(dstTags, ",") {
		return "markup tags do not match the source"
	}
	return ""
}

// tagInventory returns the sorted element names appearing in the string,
// or nil when it contains no parseable markup.
func tagInventory(s string) []string {
	if !strings.Contains(s, "<") || !strings.Contains(s, ">") {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return nil
	}
	var tags []string
	doc.Find("body *").Each(func(_ int, sel *goquery.Selection) {
		tags = append(tags, goquery.NodeName(sel))
	})
	sort.Strings(tags)
	return tags
}
