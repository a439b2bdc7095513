// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package catalog is the in-memory document model for translation catalogs:
an ordered set of translation units plus structured header metadata, with
the bookkeeping that editors and batch tools need on top of the raw file
formats.

# Model

A Catalog owns a Header and an ordered slice of Items. The header keeps two
synchronized views of the same state: the raw ordered key/value entries as
they appear in the file, and first-class typed fields (project, dates,
translator, language, charset, source paths, keywords). ParseDict derives
the fields from the entries, UpdateDict rebuilds the entries from the
fields and re-applies the canonical gettext key order.

An Item is one translation unit: a source string, an optional plural
source, and one translation slot per plural form of the target language.
Completeness, fuzziness and modification state are tracked per item and
derived flags are recomputed on every mutation.

# Opening and creating catalogs

Catalogs are opened through the codec registry:

	cat, err := catalog.Open("po/fr.po", 0)

Codecs register themselves from the format/... packages; import
format/all to get the full set:

	import _ "codeberg.org/transcat/transcat/format/all"

Fresh catalogs can be created for the header-bearing gettext types only:

	cat, err := catalog.NewCatalog(catalog.TypePO,
		catalog.WithTranslatorIdentity("J. Doe", "jdoe@example.org"))

After parsing, Open normalizes the document: it decides whether source
strings are symbolic identifiers, and tries to fill in missing source and
target languages using the lang package heuristics.

# Capabilities

The on-disk type tag is fixed at construction and maps to a fixed
capability set. POT templates, for example, do not hold translations, so
statistics and validation short-circuit for them. Query capabilities with
HasCapability rather than switching on the type tag.
*/
package catalog
