// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pretranslate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"codeberg.org/transcat/transcat/catalog"
	"codeberg.org/transcat/transcat/lang"
)

// mapSuggester serves canned suggestions keyed by source and plural
// source.
type mapSuggester map[string][]string

func (m mapSuggester) Suggest(_, _ lang.Language, source, pluralSource string) ([]string, bool, error) {
	slots, ok := m[source+"\x00"+pluralSource]
	return slots, ok, nil
}

type translatorFunc func(ctx context.Context, srcLang, dstLang lang.Language, texts []string) ([]string, error)

func (f translatorFunc) Translate(ctx context.Context, srcLang, dstLang lang.Language, texts []string) ([]string, error) {
	return f(ctx, srcLang, dstLang, texts)
}

func upperTranslator(t *testing.T, calls *[][]string) translatorFunc {
	return func(_ context.Context, _, dstLang lang.Language, texts []string) ([]string, error) {
		t.Helper()
		if !dstLang.IsValid() {
			t.Error("Translate called without a target language")
		}
		if calls != nil {
			*calls = append(*calls, texts)
		}
		out := make([]string, len(texts))
		for i, text := range texts {
			out[i] = strings.ToUpper(text)
		}
		return out, nil
	}
}

func newCatalog() *catalog.Catalog {
	c := catalog.New(catalog.TypePO)
	c.SetLanguage(lang.TryParse("fr"))
	return c
}

func TestFillFromMemory(t *testing.T) {
	t.Parallel()

	c := newCatalog()
	c.AddItem(catalog.NewItem("Open file"))

	plural := catalog.NewItem("%d file")
	plural.SetPluralSource("%d files")
	plural.SetTranslations([]string{"", ""})
	c.AddItem(plural)

	c.AddItem(catalog.NewItem("Quit"))

	translated := catalog.NewItem("Save")
	translated.SetTranslation("Enregistrer", 0)
	c.AddItem(translated)

	fuzzy := catalog.NewItem("Close")
	fuzzy.SetTranslation("Fermer", 0)
	fuzzy.SetFuzzy(true)
	c.AddItem(fuzzy)

	memory := mapSuggester{
		"Open file\x00":       {"Ouvrir le fichier"},
		"%d file\x00%d files": {"%d fichier", "%d fichiers"},
	}
	stats, err := Fill(context.Background(), c, memory, nil, Options{})
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if want := (Stats{Scanned: 3, FromTM: 2, Unfilled: 1}); stats != want {
		t.Errorf("Fill stats = %+v, want %+v", stats, want)
	}

	first := c.Items()[0]
	if first.Translation(0) != "Ouvrir le fichier" || !first.IsPreTranslated() || first.IsFuzzy() {
		t.Errorf("filled item = %q (pre-translated %v, fuzzy %v)",
			first.Translation(0), first.IsPreTranslated(), first.IsFuzzy())
	}
	if got := plural.Translations(); got[0] != "%d fichier" || got[1] != "%d fichiers" {
		t.Errorf("plural slots = %q", got)
	}
	if c.Items()[2].IsTranslated() || c.Items()[2].IsPreTranslated() {
		t.Error("item with no suggestion was filled")
	}
	if translated.Translation(0) != "Enregistrer" || translated.IsPreTranslated() {
		t.Error("already translated item was touched")
	}
	if fuzzy.Translation(0) != "Fermer" || fuzzy.IsPreTranslated() {
		t.Error("fuzzy item was touched")
	}
}

func TestFillMarksFuzzy(t *testing.T) {
	t.Parallel()

	c := newCatalog()
	c.AddItem(catalog.NewItem("Open file"))

	memory := mapSuggester{"Open file\x00": {"Ouvrir le fichier"}}
	if _, err := Fill(context.Background(), c, memory, nil, Options{MarkFuzzy: true}); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	it := c.Items()[0]
	if !it.IsFuzzy() || !it.IsPreTranslated() || it.Translation(0) != "Ouvrir le fichier" {
		t.Errorf("item = %q (pre-translated %v, fuzzy %v), want a fuzzy fill",
			it.Translation(0), it.IsPreTranslated(), it.IsFuzzy())
	}
}

func TestFillRejectsUnusableSuggestions(t *testing.T) {
	t.Parallel()

	c := newCatalog()

	plural := catalog.NewItem("%d file")
	plural.SetPluralSource("%d files")
	plural.SetTranslations([]string{"", ""})
	c.AddItem(plural)

	c.AddItem(catalog.NewItem("Open file"))

	memory := mapSuggester{
		"%d file\x00%d files": {"%d fichier"}, // too few slots for a plural item
		"Open file\x00":       {""},           // empty slot
	}
	stats, err := Fill(context.Background(), c, memory, nil, Options{})
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if want := (Stats{Scanned: 2, Unfilled: 2}); stats != want {
		t.Errorf("Fill stats = %+v, want %+v", stats, want)
	}
	for _, it := range c.Items() {
		if it.IsTranslated() || it.IsPreTranslated() {
			t.Errorf("item %q was filled from an unusable suggestion", it.RawSource())
		}
	}
}

func TestFillFromMachine(t *testing.T) {
	t.Parallel()

	c := newCatalog()
	c.AddItem(catalog.NewItem("good day"))

	plural := catalog.NewItem("%d file")
	plural.SetPluralSource("%d files")
	plural.SetTranslations([]string{"", ""})
	c.AddItem(plural)

	var calls [][]string
	stats, err := Fill(context.Background(), c, nil, upperTranslator(t, &calls), Options{})
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if want := (Stats{Scanned: 2, FromMT: 1, Unfilled: 1}); stats != want {
		t.Errorf("Fill stats = %+v, want %+v", stats, want)
	}
	if len(calls) != 1 || len(calls[0]) != 1 || calls[0][0] != "good day" {
		t.Errorf("translator received %q, want the singular item only", calls)
	}
	if got := c.Items()[0].Translation(0); got != "GOOD DAY" {
		t.Errorf("filled translation = %q", got)
	}
	if !c.Items()[0].IsPreTranslated() {
		t.Error("machine-filled item not flagged pre-translated")
	}
	if plural.IsTranslated() {
		t.Error("plural item went to machine translation")
	}
}

func TestFillPrefersMemoryOverMachine(t *testing.T) {
	t.Parallel()

	c := newCatalog()
	c.AddItem(catalog.NewItem("Open file"))

	memory := mapSuggester{"Open file\x00": {"Ouvrir le fichier"}}
	translator := translatorFunc(func(_ context.Context, _, _ lang.Language, texts []string) ([]string, error) {
		t.Errorf("machine translation called for %q despite a memory hit", texts)
		return nil, errors.New("unexpected call")
	})
	stats, err := Fill(context.Background(), c, memory, translator, Options{})
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if stats.FromTM != 1 || stats.FromMT != 0 {
		t.Errorf("Fill stats = %+v, want the memory hit only", stats)
	}
}

func TestFillBatchesMachineRequests(t *testing.T) {
	t.Parallel()

	c := newCatalog()
	for i := 0; i < 120; i++ {
		c.AddItem(catalog.NewItem(fmt.Sprintf("string %03d", i)))
	}

	var calls [][]string
	stats, err := Fill(context.Background(), c, nil, upperTranslator(t, &calls), Options{})
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if stats.FromMT != 120 || stats.Unfilled != 0 {
		t.Errorf("Fill stats = %+v, want all 120 filled", stats)
	}
	if len(calls) != 3 || len(calls[0]) != 50 || len(calls[1]) != 50 || len(calls[2]) != 20 {
		sizes := make([]int, len(calls))
		for i, call := range calls {
			sizes[i] = len(call)
		}
		t.Errorf("batch sizes = %v, want [50 50 20]", sizes)
	}
}

func TestFillTranslatorFailure(t *testing.T) {
	t.Parallel()

	c := newCatalog()
	c.AddItem(catalog.NewItem("one"))
	c.AddItem(catalog.NewItem("two"))

	failure := errors.New("endpoint unreachable")
	translator := translatorFunc(func(_ context.Context, _, _ lang.Language, _ []string) ([]string, error) {
		return nil, failure
	})
	stats, err := Fill(context.Background(), c, nil, translator, Options{})
	if !errors.Is(err, failure) {
		t.Fatalf("Fill = %v, want the translator error", err)
	}
	if stats.Unfilled != 2 || stats.FromMT != 0 {
		t.Errorf("Fill stats = %+v, want both items unfilled", stats)
	}
}

func TestFillSkipsEmptyMachineResults(t *testing.T) {
	t.Parallel()

	c := newCatalog()
	c.AddItem(catalog.NewItem("one"))
	c.AddItem(catalog.NewItem("two"))

	translator := translatorFunc(func(_ context.Context, _, _ lang.Language, texts []string) ([]string, error) {
		out := make([]string, len(texts))
		out[0] = "UN"
		return out, nil
	})
	stats, err := Fill(context.Background(), c, nil, translator, Options{})
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if want := (Stats{Scanned: 2, FromMT: 1, Unfilled: 1}); stats != want {
		t.Errorf("Fill stats = %+v, want %+v", stats, want)
	}
	if c.Items()[1].IsTranslated() {
		t.Error("item was filled with an empty translation")
	}
}

func TestFillRejectsTemplates(t *testing.T) {
	t.Parallel()

	c := catalog.New(catalog.TypePOT)
	c.AddItem(catalog.NewItem("Open file"))
	if _, err := Fill(context.Background(), c, mapSuggester{}, nil, Options{}); !errors.Is(err, ErrNoTranslations) {
		t.Errorf("Fill on a template = %v, want ErrNoTranslations", err)
	}
}
