// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog_test

import (
	"testing"

	. "codeberg.org/transcat/transcat/catalog"
	"codeberg.org/transcat/transcat/lang"
)

func TestCatalogCapabilities(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		typ          Type
		translations bool
		language     bool
		userComments bool
		fuzzy        bool
	}{
		{"PO", TypePO, true, true, true, true},
		{"POT", TypePOT, false, true, true, true},
		{"XLIFF", TypeXLIFF, true, true, false, true},
		{"JSON", TypeJSON, true, false, false, false},
		{"JSONFlutter", TypeJSONFlutter, true, true, false, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := New(tc.typ)
			if got := c.HasCapability(CapTranslations); got != tc.translations {
				t.Errorf("CapTranslations = %v, want %v", got, tc.translations)
			}
			if got := c.HasCapability(CapLanguageSetting); got != tc.language {
				t.Errorf("CapLanguageSetting = %v, want %v", got, tc.language)
			}
			if got := c.HasCapability(CapUserComments); got != tc.userComments {
				t.Errorf("CapUserComments = %v, want %v", got, tc.userComments)
			}
			if got := c.HasCapability(CapFuzzyTranslations); got != tc.fuzzy {
				t.Errorf("CapFuzzyTranslations = %v, want %v", got, tc.fuzzy)
			}
		})
	}
}

func TestCatalogStatistics(t *testing.T) {
	t.Parallel()

	c := New(TypePO)

	done := NewItem("Open")
	done.SetTranslation("Ouvrir", 0)
	c.AddItem(done)

	fuzzy := NewItem("Close")
	fuzzy.SetTranslation("Fermer", 0)
	fuzzy.SetFuzzy(true)
	c.AddItem(fuzzy)

	untranslated := NewItem("Save")
	c.AddItem(untranslated)

	errored := NewItem("Quit")
	errored.SetTranslation("Quitter", 0)
	errored.SetIssue(IssueError, "placeholder mismatch")
	c.AddItem(errored)

	st := c.Statistics()
	if st.Total != 4 {
		t.Errorf("Total = %d, want 4", st.Total)
	}
	if st.Fuzzy != 1 {
		t.Errorf("Fuzzy = %d, want 1", st.Fuzzy)
	}
	if st.Errors != 1 {
		t.Errorf("Errors = %d, want 1", st.Errors)
	}
	if st.Untranslated != 1 {
		t.Errorf("Untranslated = %d, want 1", st.Untranslated)
	}
	if st.Unfinished != 3 {
		t.Errorf("Unfinished = %d, want 3", st.Unfinished)
	}
}

func TestCatalogFindItemByLine(t *testing.T) {
	t.Parallel()

	c := New(TypePO)
	for i, line := range []int{5, 10, 20} {
		it := NewItem(string(rune('a' + i)))
		it.SetLineNumber(line)
		c.AddItem(it)
	}

	cases := []struct {
		name string
		line int
		want int
	}{
		{"before first", 4, -1},
		{"exactly first", 5, 0},
		{"between items", 12, 1},
		{"inside last block", 100, 2},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := c.FindItemIndexByLine(tc.line); got != tc.want {
				t.Errorf("FindItemIndexByLine(%d) = %d, want %d", tc.line, got, tc.want)
			}
			it := c.FindItemByLine(tc.line)
			if tc.want < 0 && it != nil {
				t.Errorf("FindItemByLine(%d) = %v, want nil", tc.line, it)
			}
			if tc.want >= 0 && it != c.Items()[tc.want] {
				t.Errorf("FindItemByLine(%d) returned the wrong item", tc.line)
			}
		})
	}

	if got := New(TypePO).FindItemIndexByLine(1); got != -1 {
		t.Errorf("empty catalog index = %d, want -1", got)
	}
}

func TestCatalogRemoveSameAsSourceTranslations(t *testing.T) {
	t.Parallel()

	build := func(pluralForms string) (*Catalog, []*Item) {
		c := New(TypePO)
		c.Header().Set("Plural-Forms", pluralForms)

		same := NewItem("Save")
		same.SetTranslation("Save", 0)
		c.AddItem(same)

		different := NewItem("Open")
		different.SetTranslation("Ouvrir", 0)
		c.AddItem(different)

		plural := NewItem("One file")
		plural.SetPluralSource("%d files")
		plural.SetTranslations([]string{"One file", "%d files"})
		c.AddItem(plural)

		return c, c.Items()
	}

	t.Run("two plural forms", func(t *testing.T) {
		t.Parallel()

		c, items := build("nplurals=2; plural=(n != 1);")
		if !c.RemoveSameAsSourceTranslations() {
			t.Fatal("reported no change")
		}
		if items[0].IsTranslated() {
			t.Error("singular copy of the source survived")
		}
		if !items[1].IsTranslated() || items[1].Translation(0) != "Ouvrir" {
			t.Error("real translation was removed")
		}
		if items[2].IsTranslated() {
			t.Error("plural copy of the source survived with two plural forms")
		}

		// A second pass has nothing left to remove.
		if c.RemoveSameAsSourceTranslations() {
			t.Error("second pass reported a change")
		}
	})

	t.Run("other plural rules leave plural items alone", func(t *testing.T) {
		t.Parallel()

		c, items := build("nplurals=3; plural=(n==1) ? 0 : (n>=2 && n<=4) ? 1 : 2;")
		c.RemoveSameAsSourceTranslations()
		if !items[2].IsTranslated() {
			t.Error("plural item cleared despite three plural forms")
		}
	})

	t.Run("plural slot differs", func(t *testing.T) {
		t.Parallel()

		c, items := build("nplurals=2; plural=(n != 1);")
		items[2].SetTranslations([]string{"One file", "%d soubory"})
		c.RemoveSameAsSourceTranslations()
		if !items[2].IsTranslated() {
			t.Error("plural item cleared although the plural slot was translated")
		}
	})
}

// recordingChecker stands in for the QA package: it flags the first item
// with a warning, the second with an error, and reports one warning.
type recordingChecker struct {
	called bool
}

func (rc *recordingChecker) Check(c *Catalog) int {
	rc.called = true
	items := c.Items()
	if len(items) > 0 {
		items[0].SetIssue(IssueWarning, "inconsistent capitalization")
	}
	if len(items) > 1 {
		items[1].SetIssue(IssueError, "missing placeholder")
	}
	return 1
}

func TestCatalogValidate(t *testing.T) {
	t.Parallel()

	newPO := func() *Catalog {
		c := New(TypePO)
		a := NewItem("Hello world")
		a.SetTranslation("bonjour monde", 0)
		c.AddItem(a)
		b := NewItem("Used %s")
		b.SetTranslation("Utilisé", 0)
		c.AddItem(b)
		return c
	}

	t.Run("counts errors and warnings", func(t *testing.T) {
		t.Parallel()

		c := newPO()
		rc := &recordingChecker{}
		errors, warnings := c.Validate(rc, true)
		if !rc.called {
			t.Fatal("checker was not invoked")
		}
		if errors != 1 || warnings != 1 {
			t.Errorf("Validate = (%d, %d), want (1, 1)", errors, warnings)
		}
	})

	t.Run("warnings disabled", func(t *testing.T) {
		t.Parallel()

		c := newPO()
		rc := &recordingChecker{}
		errors, warnings := c.Validate(rc, false)
		if rc.called {
			t.Error("checker invoked with warnings disabled")
		}
		if errors != 0 || warnings != 0 {
			t.Errorf("Validate = (%d, %d), want (0, 0)", errors, warnings)
		}
	})

	t.Run("symbolic sources skip QA", func(t *testing.T) {
		t.Parallel()

		c := New(TypePO)
		c.AddItem(NewItem("app.quit.label"))
		c.AddItem(NewItem("app.open.label"))
		c.PostCreation()
		if !c.UsesSymbolicIDsForSource() {
			t.Fatal("sources not classified as symbolic IDs")
		}

		rc := &recordingChecker{}
		c.Validate(rc, true)
		if rc.called {
			t.Error("QA checker ran on symbolic IDs")
		}
	})

	t.Run("templates validate trivially", func(t *testing.T) {
		t.Parallel()

		c := New(TypePOT)
		it := NewItem("Hello")
		c.AddItem(it)
		it.SetIssue(IssueError, "stale finding")

		rc := &recordingChecker{}
		errors, warnings := c.Validate(rc, true)
		if errors != 0 || warnings != 0 {
			t.Errorf("Validate = (%d, %d), want (0, 0)", errors, warnings)
		}
		if it.HasIssue() {
			t.Error("stale issue not cleared")
		}
	})
}

func TestCatalogCreateNewHeader(t *testing.T) {
	t.Parallel()

	id := TranslatorIdentity{Name: "Jane Roe", Email: "jane@example.org"}

	c := New(TypePO)
	c.CreateNewHeader(id)
	h := c.Header()
	if h.CreationDate == "" || h.RevisionDate == "" {
		t.Error("dates not stamped")
	}
	if h.Charset != "UTF-8" {
		t.Errorf("Charset = %q, want UTF-8", h.Charset)
	}
	if h.BasePath != "." {
		t.Errorf("BasePath = %q, want \".\"", h.BasePath)
	}
	if got := h.Get("Last-Translator"); got != "Jane Roe <jane@example.org>" {
		t.Errorf("Last-Translator = %q", got)
	}
	if h.Get("Plural-Forms") != "" {
		t.Error("PO catalog got the template plural-forms placeholder")
	}

	pot := New(TypePOT)
	pot.CreateNewHeader(id)
	if got := pot.Header().Get("Plural-Forms"); got != "nplurals=INTEGER; plural=EXPRESSION;" {
		t.Errorf("template Plural-Forms = %q", got)
	}
}

func TestCatalogCreateHeaderFromTemplate(t *testing.T) {
	t.Parallel()

	var pot Header
	pot.Project = "PROJECT VERSION"
	pot.LanguageTeam = "LANGUAGE <LL@li.org>"
	pot.RevisionDate = "YEAR-MO-DA HO:MI+ZONE"
	pot.Charset = "CHARSET"
	pot.Set("Plural-Forms", "nplurals=INTEGER; plural=EXPRESSION;")
	pot.Set("X-Custom", "kept")

	c := New(TypePO)
	c.CreateHeaderFromTemplate(&pot, TranslatorIdentity{Name: "Jane Roe"})
	h := c.Header()

	if h.Project != "" {
		t.Errorf("placeholder project kept: %q", h.Project)
	}
	if h.LanguageTeam != "" {
		t.Errorf("placeholder team kept: %q", h.LanguageTeam)
	}
	if h.Charset != "UTF-8" {
		t.Errorf("Charset = %q, want UTF-8", h.Charset)
	}
	if h.RevisionDate == "YEAR-MO-DA HO:MI+ZONE" || h.RevisionDate == "" {
		t.Errorf("RevisionDate not refreshed: %q", h.RevisionDate)
	}
	if h.Get("Plural-Forms") != "" {
		t.Error("placeholder Plural-Forms survived")
	}
	if h.Translator != "Jane Roe" {
		t.Errorf("Translator = %q", h.Translator)
	}
	if h.Get("X-Custom") != "kept" {
		t.Error("extension header lost")
	}

	// The template header itself must stay untouched.
	if pot.Project != "PROJECT VERSION" || pot.Charset != "CHARSET" {
		t.Error("template header mutated")
	}
	if pot.Get("Plural-Forms") == "" {
		t.Error("template header lost its plural-forms placeholder")
	}
}

func TestCatalogSetLanguage(t *testing.T) {
	t.Parallel()

	t.Run("fills missing plural forms", func(t *testing.T) {
		t.Parallel()

		c := New(TypePO)
		l := lang.TryParse("cs")
		c.SetLanguage(l)
		if got := c.Header().Get("Plural-Forms"); got != lang.DefaultPluralForms(l) || got == "" {
			t.Errorf("Plural-Forms = %q, want the Czech default", got)
		}
	})

	t.Run("replaces the template placeholder", func(t *testing.T) {
		t.Parallel()

		c := New(TypePO)
		c.Header().Set("Plural-Forms", "nplurals=INTEGER; plural=EXPRESSION;")
		c.SetLanguage(lang.TryParse("fr"))
		if got := c.Header().Get("Plural-Forms"); got != "nplurals=2; plural=(n > 1);" {
			t.Errorf("Plural-Forms = %q", got)
		}
	})

	t.Run("keeps an explicit rule", func(t *testing.T) {
		t.Parallel()

		custom := "nplurals=2; plural=(n != 1);"
		c := New(TypePO)
		c.Header().Set("Plural-Forms", custom)
		c.SetLanguage(lang.TryParse("ja"))
		if got := c.Header().Get("Plural-Forms"); got != custom {
			t.Errorf("Plural-Forms = %q, want %q", got, custom)
		}
	})
}

func TestCatalogPostCreationDetection(t *testing.T) {
	t.Parallel()

	t.Run("detects the source language", func(t *testing.T) {
		t.Parallel()

		c := New(TypePO)
		c.AddItem(NewItem("Привет, мир"))
		c.AddItem(NewItem("До свидания"))
		c.PostCreation()
		if c.UsesSymbolicIDsForSource() {
			t.Error("Cyrillic text classified as symbolic IDs")
		}
		if got := c.SourceLanguage().Code(); got != "ru" {
			t.Errorf("SourceLanguage = %q, want ru", got)
		}
	})

	t.Run("guesses the target language from the file name", func(t *testing.T) {
		t.Parallel()

		c := New(TypePO)
		c.SetFileName("/var/lib/translations/fr.po")
		c.AddItem(NewItem("Hello world"))
		c.PostCreation()
		if got := c.Language().Code(); got != "fr" {
			t.Errorf("Language = %q, want fr", got)
		}
		if c.Header().Get("Plural-Forms") == "" {
			t.Error("detected language did not fill Plural-Forms")
		}
	})

	t.Run("falls back to the translated text", func(t *testing.T) {
		t.Parallel()

		c := New(TypePO)
		it := NewItem("Good morning")
		it.SetTranslation("おはようございます", 0)
		c.AddItem(it)
		c.PostCreation()
		if got := c.Language().Code(); got != "ja" {
			t.Errorf("Language = %q, want ja", got)
		}
	})

	t.Run("symbolic IDs suppress source detection", func(t *testing.T) {
		t.Parallel()

		c := New(TypePO)
		c.AddItem(NewItem("menu.file.open"))
		c.PostCreation()
		if !c.UsesSymbolicIDsForSource() {
			t.Error("dotted ASCII identifiers not classified as symbolic")
		}
		if c.SourceLanguage().IsValid() {
			t.Errorf("SourceLanguage = %q for symbolic IDs", c.SourceLanguage().Code())
		}
	})
}
