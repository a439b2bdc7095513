// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"reflect"
	"testing"
)

func TestItemTranslationSlots(t *testing.T) {
	t.Parallel()

	it := NewItem("Hello")
	if it.IsTranslated() {
		t.Error("fresh item reports translated")
	}

	it.SetTranslation("Bonjour", 0)
	if !it.IsTranslated() {
		t.Error("item with one filled slot reports untranslated")
	}

	// Growing to a higher slot pads with empty slots and drops the
	// translated state until they fill up.
	it.SetTranslation("x", 3)
	if len(it.Translations()) != 4 {
		t.Fatalf("slot count = %d, want 4", len(it.Translations()))
	}
	if it.Translation(1) != "" || it.Translation(2) != "" {
		t.Error("padding slots are not empty")
	}
	if it.IsTranslated() {
		t.Error("item with empty padding slots reports translated")
	}

	it.SetTranslations([]string{"a", "b", "c"})
	if !it.IsTranslated() {
		t.Error("item with all slots filled reports untranslated")
	}

	it.ClearTranslation()
	if it.IsTranslated() {
		t.Error("cleared item reports translated")
	}
	for i, tr := range it.Translations() {
		if tr != "" {
			t.Errorf("slot %d = %q after clear, want empty", i, tr)
		}
	}
	if !it.IsModified() {
		t.Error("clearing non-empty translations did not mark the item modified")
	}
}

func TestItemTranslationOutOfRange(t *testing.T) {
	t.Parallel()

	it := NewItem("Hello")
	if got := it.Translation(5); got != "" {
		t.Errorf("Translation(5) = %q, want empty", got)
	}
	if got := it.Translation(-1); got != "" {
		t.Errorf("Translation(-1) = %q, want empty", got)
	}
}

func TestItemSetTranslationFromSource(t *testing.T) {
	t.Parallel()

	it := NewItem("One file")
	it.SetPluralSource("%d files")
	it.SetTranslations([]string{"", "", ""})
	it.SetFuzzy(true)
	it.SetPreTranslated(true)
	it.SetModified(false)

	it.SetTranslationFromSource()

	want := []string{"One file", "%d files", "%d files"}
	if !reflect.DeepEqual(it.Translations(), want) {
		t.Errorf("Translations = %v, want %v", it.Translations(), want)
	}
	if !it.IsTranslated() || it.IsFuzzy() || it.IsPreTranslated() {
		t.Error("state flags not normalized by SetTranslationFromSource")
	}
	if !it.IsModified() {
		t.Error("changed slots did not mark the item modified")
	}

	// Running it again changes nothing, so modified must stay untouched.
	it.SetModified(false)
	it.SetTranslationFromSource()
	if it.IsModified() {
		t.Error("no-op SetTranslationFromSource marked the item modified")
	}
}

func TestItemFlagsString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		flags     string
		wantFuzzy bool
		wantBack  string
	}{
		{name: "fuzzy only", flags: ", fuzzy", wantFuzzy: true, wantBack: ", fuzzy"},
		{name: "fuzzy among others", flags: ", fuzzy, c-format", wantFuzzy: true, wantBack: ", fuzzy, c-format"},
		{name: "no fuzzy", flags: ", c-format", wantFuzzy: false, wantBack: ", c-format"},
		{name: "empty", flags: "", wantFuzzy: false, wantBack: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			it := NewItem("x")
			it.SetFlags(tt.flags)
			if it.IsFuzzy() != tt.wantFuzzy {
				t.Errorf("IsFuzzy = %v, want %v", it.IsFuzzy(), tt.wantFuzzy)
			}
			if got := it.Flags(); got != tt.wantBack {
				t.Errorf("Flags = %q, want %q", got, tt.wantBack)
			}
		})
	}

	// Setting the boolean injects the flag into the string form.
	it := NewItem("x")
	it.SetFlags(", c-format")
	it.SetFuzzy(true)
	if got := it.Flags(); got != ", fuzzy, c-format" {
		t.Errorf("Flags = %q, want %q", got, ", fuzzy, c-format")
	}
}

func TestItemFormatFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flags string
		want  string
	}{
		{name: "c format", flags: ", c-format", want: "c"},
		{name: "python format", flags: ", python-format", want: "python"},
		{name: "negated", flags: ", no-c-format", want: ""},
		{name: "none", flags: ", max-length:10", want: ""},
		{name: "empty", flags: "", want: ""},
		{name: "fuzzy plus format", flags: ", fuzzy, php-format", want: "php"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			it := NewItem("x")
			it.SetFlags(tt.flags)
			if got := it.FormatFlag(); got != tt.want {
				t.Errorf("FormatFlag() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestItemOldMsgid(t *testing.T) {
	t.Parallel()

	it := NewItem("new text")
	it.SetOldMsgidRaw([]string{
		`msgid "old \"quoted\" text"`,
		`msgid_plural "old plurals"`,
	})

	want := "old \"quoted\" text\nold plurals"
	if got := it.OldMsgid(); got != want {
		t.Errorf("OldMsgid() = %q, want %q", got, want)
	}
}

func TestItemOldMsgidContinuationLines(t *testing.T) {
	t.Parallel()

	it := NewItem("x")
	it.SetOldMsgidRaw([]string{
		`msgid "first part "`,
		`"second part"`,
	})
	if got := it.OldMsgid(); got != "first part second part" {
		t.Errorf("OldMsgid() = %q, want %q", got, "first part second part")
	}
}

func TestItemUnfuzzyDropsOldMsgid(t *testing.T) {
	t.Parallel()

	it := NewItem("x")
	it.SetFlags(", fuzzy")
	it.SetOldMsgidRaw([]string{`msgid "stale"`})

	it.SetFuzzy(false)
	if len(it.OldMsgidRaw()) != 0 {
		t.Error("old msgid survived clearing the fuzzy flag")
	}
}

func TestItemIssueLifecycle(t *testing.T) {
	t.Parallel()

	it := NewItem("x")
	it.SetIssue(IssueError, "bad placeholder")
	if !it.HasIssue() || !it.HasError() {
		t.Fatal("issue not recorded")
	}

	// Any translation mutation clears the recorded issue.
	it.SetTranslation("y", 0)
	if it.HasIssue() {
		t.Error("issue survived SetTranslation")
	}

	it.SetIssue(IssueWarning, "case mismatch")
	if it.HasError() {
		t.Error("warning reported as error")
	}
}
