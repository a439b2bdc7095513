// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"testing"

	"codeberg.org/transcat/transcat/lang"
)

// sideloadFixture is an English-source catalog plus a German reference
// catalog translating part of it.
func sideloadFixture() (target, ref *Catalog) {
	target = New(TypePO)
	target.AddItem(NewItem("Open"))
	target.AddItem(NewItem("Close"))
	target.AddItem(NewItem("Save"))
	plural := NewItem("One file")
	plural.SetPluralSource("%d files")
	target.AddItem(plural)

	ref = New(TypePO)
	ref.SetLanguage(lang.TryParse("de"))

	open := NewItem("Open")
	open.SetTranslation("Öffnen", 0)
	open.SetExtractedComments([]string{"Toolbar button"})
	ref.AddItem(open)

	closeIt := NewItem("Close")
	ref.AddItem(closeIt) // untranslated in the reference

	refPlural := NewItem("One file")
	refPlural.SetPluralSource("%d files")
	refPlural.SetTranslations([]string{"Eine Datei", "%d Dateien"})
	ref.AddItem(refPlural)

	return target, ref
}

func TestSideloadSourceData(t *testing.T) {
	t.Parallel()

	target, ref := sideloadFixture()
	target.SideloadSourceDataFromReferenceFile(ref)

	if !target.HasSideloadedReferenceFile() {
		t.Fatal("sideload context not recorded")
	}
	if sl := target.Sideloaded(); sl.ReferenceFile != ref || sl.SourceLanguage.Code() != "de" {
		t.Errorf("sideload context = %+v", sl)
	}

	items := target.Items()

	// Translated in the reference: accessors switch to the overlay while
	// the raw accessors keep the item's own strings.
	if got := items[0].Source(); got != "Öffnen" {
		t.Errorf("Source = %q, want the reference translation", got)
	}
	if got := items[0].RawSource(); got != "Open" {
		t.Errorf("RawSource = %q, want the original", got)
	}
	if got := items[0].ExtractedComments(); len(got) != 1 || got[0] != "Toolbar button" {
		t.Errorf("ExtractedComments = %v", got)
	}

	// Untranslated in the reference: no overlay.
	if items[1].SideloadedData() != nil {
		t.Error("untranslated reference item produced an overlay")
	}

	// Absent from the reference: no overlay.
	if items[2].SideloadedData() != nil {
		t.Error("unmatched item produced an overlay")
	}

	// Pluralized: the second reference slot becomes the plural source.
	if got := items[3].Source(); got != "Eine Datei" {
		t.Errorf("plural Source = %q", got)
	}
	if got := items[3].PluralSource(); got != "%d Dateien" {
		t.Errorf("PluralSource = %q", got)
	}
	if got := items[3].RawPluralSource(); got != "%d files" {
		t.Errorf("RawPluralSource = %q", got)
	}
}

func TestSideloadClearRestoresOriginals(t *testing.T) {
	t.Parallel()

	target, ref := sideloadFixture()
	target.SideloadSourceDataFromReferenceFile(ref)
	target.ClearSideloadedSourceData()

	if target.HasSideloadedReferenceFile() {
		t.Error("sideload context survived clearing")
	}
	for i, it := range target.Items() {
		if it.SideloadedData() != nil {
			t.Errorf("item %d still carries an overlay", i)
		}
	}
	if got := target.Items()[0].Source(); got != "Open" {
		t.Errorf("Source = %q after clear, want %q", got, "Open")
	}
}

func TestSideloadClearWithoutSideload(t *testing.T) {
	t.Parallel()

	c := New(TypePO)
	c.AddItem(NewItem("x"))
	c.ClearSideloadedSourceData()
	if c.HasSideloadedReferenceFile() {
		t.Error("clear invented a sideload context")
	}
}

func TestSideloadReplacesPreviousOverlay(t *testing.T) {
	t.Parallel()

	target, ref := sideloadFixture()
	target.SideloadSourceDataFromReferenceFile(ref)

	// The second reference only covers "Save"; overlays from the first
	// sideload must all be gone afterwards.
	ref2 := New(TypePO)
	ref2.SetLanguage(lang.TryParse("cs"))
	save := NewItem("Save")
	save.SetTranslation("Uložit", 0)
	ref2.AddItem(save)

	target.SideloadSourceDataFromReferenceFile(ref2)

	items := target.Items()
	if got := items[0].Source(); got != "Open" {
		t.Errorf("stale overlay: Source = %q, want %q", got, "Open")
	}
	if got := items[2].Source(); got != "Uložit" {
		t.Errorf("Source = %q, want the new reference translation", got)
	}
	if got := target.Sideloaded().SourceLanguage.Code(); got != "cs" {
		t.Errorf("sideload language = %q, want cs", got)
	}
}

func TestSideloadDuplicateReferenceSources(t *testing.T) {
	t.Parallel()

	target := New(TypePO)
	target.AddItem(NewItem("Open"))

	ref := New(TypePO)
	first := NewItem("Open")
	first.SetTranslation("Alt", 0)
	ref.AddItem(first)
	second := NewItem("Open")
	second.SetTranslation("Neu", 0)
	ref.AddItem(second)

	target.SideloadSourceDataFromReferenceFile(ref)
	if got := target.Items()[0].Source(); got != "Neu" {
		t.Errorf("Source = %q, want the later reference entry", got)
	}
}
