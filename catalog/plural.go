// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leonelquinteros/gotext/plurals"
	"github.com/rs/zerolog/log"
)

// PluralForms is a parsed Plural-Forms header: the declared number of
// plural forms and the compiled slot-selection expression.
type PluralForms struct {
	NPlurals int

	expr plurals.Expression
}

// ParsePluralForms parses a gettext Plural-Forms value such as
// "nplurals=2; plural=(n != 1);". The template placeholder does not parse.
func ParsePluralForms(value string) (*PluralForms, error) {
	pf := &PluralForms{}
	var exprText string

	for _, part := range strings.Split(value, ";") {
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(part, "nplurals="):
			n, err := strconv.Atoi(strings.TrimSpace(part[len("nplurals="):]))
			if err != nil {
				return nil, fmt.Errorf("parsing nplurals: %w", err)
			}
			pf.NPlurals = n
		case strings.HasPrefix(part, "plural="):
			exprText = strings.TrimSpace(part[len("plural="):])
		}
	}

	if pf.NPlurals <= 0 {
		return nil, fmt.Errorf("plural-forms %q declares no nplurals", value)
	}
	if exprText != "" {
		expr, err := plurals.Compile(exprText)
		if err != nil {
			return nil, fmt.Errorf("compiling plural expression: %w", err)
		}
		pf.expr = expr
	}
	return pf, nil
}

// FormIndex returns the translation slot index for a count of n. Without a
// usable expression it falls back to the Germanic rule. Out-of-range
// results from a bogus expression clamp to slot 0.
func (pf *PluralForms) FormIndex(n int) int {
	if pf.expr == nil {
		if n == 1 || pf.NPlurals < 2 {
			return 0
		}
		return 1
	}
	idx := pf.expr.Eval(uint32(n))
	if idx < 0 || idx >= pf.NPlurals {
		return 0
	}
	return idx
}

// PluralForms returns the catalog's parsed Plural-Forms header, or nil when
// the header is missing or unusable.
func (c *Catalog) PluralForms() *PluralForms {
	value := c.header.Get("Plural-Forms")
	if value == "" {
		return nil
	}
	pf, err := ParsePluralForms(value)
	if err != nil {
		log.Debug().Err(err).Str("file", c.fileName).Msg("ignoring unusable Plural-Forms header")
		return nil
	}
	return pf
}

// PluralFormsCount returns the number of plural forms the catalog uses: the
// header's declared count, raised to the largest per-item slot count when
// items disagree.
func (c *Catalog) PluralFormsCount() int {
	count := 0
	if pf := c.PluralForms(); pf != nil {
		count = pf.NPlurals
	}
	for _, it := range c.items {
		if n := it.PluralFormsCount(); n > count {
			count = n
		}
	}
	return count
}
