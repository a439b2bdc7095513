// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"github.com/rs/zerolog/log"

	"codeberg.org/transcat/transcat/lang"
)

// SideloadedCatalogData is the shared context recorded on a catalog while
// source data from a reference catalog is overlaid on it. The reference is
// a read-only view owned by the caller; sideloading never mutates it.
type SideloadedCatalogData struct {
	ReferenceFile  *Catalog
	SourceLanguage lang.Language
}

// SideloadSourceDataFromReferenceFile overlays translations from a
// reference catalog: every item whose raw source string appears in the
// reference with a non-empty translation gets an overlay carrying that
// translation (plus plural translation and extracted comments when
// present). Items' own fields are never touched. Any previous sideload is
// replaced.
func (c *Catalog) SideloadSourceDataFromReferenceFile(ref *Catalog) {
	c.ClearSideloadedSourceData()

	refItems := make(map[string]*Item, len(ref.items))
	for _, it := range ref.items {
		refItems[it.RawSource()] = it
	}

	matched := 0
	for _, it := range c.items {
		refItem, ok := refItems[it.RawSource()]
		if !ok || refItem.Translation(0) == "" {
			continue
		}
		data := &SideloadedItemData{
			SourceString: refItem.Translation(0),
		}
		if refItem.HasPlural() {
			data.SourcePluralString = refItem.Translation(1)
		}
		if comments := refItem.ExtractedComments(); len(comments) > 0 {
			data.ExtractedComments = comments
		}
		it.AttachSideloadedData(data)
		matched++
	}

	c.sideloaded = &SideloadedCatalogData{
		ReferenceFile:  ref,
		SourceLanguage: ref.Language(),
	}

	log.Debug().
		Str("reference", ref.FileName()).
		Int("matched", matched).
		Msg("sideloaded source data")
}

// ClearSideloadedSourceData detaches every overlay and drops the shared
// context. Safe to call when nothing is sideloaded.
func (c *Catalog) ClearSideloadedSourceData() {
	c.sideloaded = nil
	for _, it := range c.items {
		it.ClearSideloadedData()
	}
}

// Sideloaded returns the sideload context, or nil when none is active.
func (c *Catalog) Sideloaded() *SideloadedCatalogData { return c.sideloaded }

// HasSideloadedReferenceFile reports whether reference data is currently
// overlaid.
func (c *Catalog) HasSideloadedReferenceFile() bool { return c.sideloaded != nil }
