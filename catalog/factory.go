// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"codeberg.org/transcat/transcat/lang"
)

var (
	// ErrFormatNotRecognized means no registered codec handles the file's
	// extension.
	ErrFormatNotRecognized = errors.New("file is in a format not recognized by this tool")
	// ErrCreateNotSupported means the type only supports opening existing
	// files, not creating empty catalogs.
	ErrCreateNotSupported = errors.New("creating empty catalogs is only supported for gettext types")
)

// Option adjusts catalog construction.
type Option func(*factoryOptions)

type factoryOptions struct {
	identity TranslatorIdentity
}

// WithTranslatorIdentity pre-fills the translator name and email written
// into fresh headers. Callers typically pass their configured identity.
func WithTranslatorIdentity(name, email string) Option {
	return func(o *factoryOptions) {
		o.identity = TranslatorIdentity{Name: name, Email: email}
	}
}

// NewCatalog creates an empty catalog of the given type. Only the
// header-bearing gettext types (PO and POT) can be created from scratch;
// everything else returns ErrCreateNotSupported.
func NewCatalog(typ Type, opts ...Option) (*Catalog, error) {
	if typ != TypePO && typ != TypePOT {
		return nil, fmt.Errorf("%s: %w", typ, ErrCreateNotSupported)
	}
	var o factoryOptions
	for _, opt := range opts {
		opt(&o)
	}

	c := New(typ)
	c.CreateNewHeader(o.identity)
	return c, nil
}

// CreateFromTemplate derives a fresh PO catalog in the given language from
// a template: every template item is copied without its translations and
// the header is built from the template's header.
func CreateFromTemplate(pot *Catalog, l lang.Language, opts ...Option) *Catalog {
	var o factoryOptions
	for _, opt := range opts {
		opt(&o)
	}

	c := New(TypePO)
	c.CreateHeaderFromTemplate(pot.Header(), o.identity)
	c.SetLanguage(l)

	for _, src := range pot.Items() {
		it := NewItem(src.RawSource())
		if src.HasContext() {
			it.SetContext(src.Context())
		}
		if src.HasPlural() {
			it.SetPluralSource(src.RawPluralSource())
			n := c.PluralFormsCount()
			if n < 2 {
				n = 2
			}
			it.SetTranslations(make([]string, n))
		}
		it.SetComment(src.Comment())
		it.SetExtractedComments(src.ExtractedComments())
		it.SetReferences(src.References())
		it.SetFlags(src.Flags())
		it.SetFuzzy(false)
		c.AddItem(it)
	}
	return c
}

// Open loads a catalog file, picking the codec by file extension. The
// winning codec parses the file and applies the open flags itself; Open
// then records the absolute file name and runs post-creation
// normalization. An extension no codec claims fails with
// ErrFormatNotRecognized.
func Open(path string, flags OpenFlags) (*Catalog, error) {
	codec := codecForExt(extensionOf(path))
	if codec == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrFormatNotRecognized)
	}

	c, err := codec.Read(path, flags)
	if err != nil {
		return nil, err
	}

	c.SetFileName(path)
	c.PostCreation()
	return c, nil
}

// Save writes the catalog to path, picking the codec by the target file's
// extension. Saving through a different codec than the one that read the
// file converts between formats, dropping whatever the target format
// cannot carry.
func Save(c *Catalog, path string) error {
	codec := codecForExt(extensionOf(path))
	if codec == nil {
		return fmt.Errorf("%s: %w", path, ErrFormatNotRecognized)
	}
	return codec.Write(c, path)
}

func extensionOf(path string) string {
	return normalizeExt(filepath.Ext(path))
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
