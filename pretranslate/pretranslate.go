// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package pretranslate fills the untranslated items of a catalog. The
// translation memory is consulted first; a machine-translation client,
// when one is supplied, picks up the remaining items in batches. Filled
// items are flagged pre-translated so reviewers can find them, and
// optionally fuzzy so they do not count as final.
package pretranslate

import (
	"context"
	"errors"

	"codeberg.org/transcat/transcat/catalog"
	"codeberg.org/transcat/transcat/lang"
)

// mtBatchSize bounds how many texts go into one machine-translation
// request.
const mtBatchSize = 50

// ErrNoTranslations is returned for catalogs whose type cannot hold
// translations (templates).
var ErrNoTranslations = errors.New("catalog cannot hold translations")

// Suggester is the exact-match lookup consulted first. *tm.Memory
// implements it.
type Suggester interface {
	Suggest(srcLang, dstLang lang.Language, source, pluralSource string) ([]string, bool, error)
}

// Translator is the batched fallback. *mt.Client implements it.
type Translator interface {
	Translate(ctx context.Context, srcLang, dstLang lang.Language, texts []string) ([]string, error)
}

// Options control how filled items are flagged.
type Options struct {
	// MarkFuzzy additionally flags every filled item fuzzy.
	MarkFuzzy bool
}

// Stats reports what Fill did. Scanned counts the untranslated, non-fuzzy
// items considered; FromTM and FromMT count the fills by source; Unfilled
// is what remains.
type Stats struct {
	Scanned  int
	FromTM   int
	FromMT   int
	Unfilled int
}

// Filled returns the total number of items Fill translated.
func (s Stats) Filled() int { return s.FromTM + s.FromMT }

// Fill translates the untranslated items of c. Items with plural forms
// are filled from the memory only; the machine-translation protocol has
// no slot for them. Fuzzy items are left alone, they already carry a
// draft. Either collaborator may be nil.
func Fill(ctx context.Context, c *catalog.Catalog, memory Suggester, translator Translator, opts Options) (Stats, error) {
	var stats Stats
	if !c.HasCapability(catalog.CapTranslations) {
		return stats, ErrNoTranslations
	}
	src, dst := c.SourceLanguage(), c.Language()

	var pending []*catalog.Item
	for _, it := range c.Items() {
		if it.IsTranslated() || it.IsFuzzy() {
			continue
		}
		stats.Scanned++
		if memory != nil {
			slots, ok, err := memory.Suggest(src, dst, it.RawSource(), it.RawPluralSource())
			if err != nil {
				return stats, err
			}
			if ok && apply(it, slots, opts.MarkFuzzy) {
				stats.FromTM++
				continue
			}
		}
		if translator != nil && !it.HasPlural() {
			pending = append(pending, it)
			continue
		}
		stats.Unfilled++
	}

	for start := 0; start < len(pending); start += mtBatchSize {
		end := min(start+mtBatchSize, len(pending))
		batch := pending[start:end]
		texts := make([]string, len(batch))
		for i, it := range batch {
			texts[i] = it.RawSource()
		}
		got, err := translator.Translate(ctx, src, dst, texts)
		if err != nil {
			stats.Unfilled += len(pending) - start
			return stats, err
		}
		for i, it := range batch {
			if got[i] == "" {
				stats.Unfilled++
				continue
			}
			it.SetTranslation(got[i], 0)
			markFilled(it, opts.MarkFuzzy)
			stats.FromMT++
		}
	}
	return stats, nil
}

// apply copies a suggestion into the item. Suggestions that do not cover
// the item's shape (too few plural slots, empty slots) are rejected.
func apply(it *catalog.Item, slots []string, markFuzzy bool) bool {
	if len(slots) == 0 {
		return false
	}
	for _, s := range slots {
		if s == "" {
			return false
		}
	}
	if it.HasPlural() {
		if len(slots) < 2 {
			return false
		}
		it.SetTranslations(append([]string(nil), slots...))
	} else {
		it.SetTranslation(slots[0], 0)
	}
	markFilled(it, markFuzzy)
	return true
}

func markFilled(it *catalog.Item, markFuzzy bool) {
	it.SetPreTranslated(true)
	it.SetModified(true)
	if markFuzzy {
		it.SetFuzzy(true)
	}
}
