// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package jsoncat reads and writes flat JSON translation catalogs and
// Flutter ARB files.
//
// Both layouts map object keys to items: the key is the (symbolic) source
// and the string value its translation. In ARB files "@@locale" carries
// the catalog language and "@key" objects are item metadata; metadata is
// kept verbatim on the item and re-emitted after its key on write, with
// the "description" field surfaced as an extracted comment. Plain JSON
// files get no "@" treatment at all, their keys are ordinary entries.
//
// The codec registers itself on import; most programs get it by importing
// format/all.
package jsoncat

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"codeberg.org/transcat/transcat/catalog"
	"codeberg.org/transcat/transcat/lang"
)

func init() {
	catalog.RegisterCodec(30, codec{})
}

type codec struct{}

func (codec) CanLoad(ext string) bool { return ext == "json" || ext == "arb" }

func isFlutterPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".arb")
}

func (codec) Read(path string, flags catalog.OpenFlags) (*catalog.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s: invalid JSON", path)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%s: top-level JSON value must be an object", path)
	}

	typ := catalog.TypeJSON
	if isFlutterPath(path) {
		typ = catalog.TypeJSONFlutter
	}
	c := catalog.New(typ)
	c.Header().Charset = "UTF-8"

	p := &parser{
		catalog: c,
		flags:   flags,
		path:    path,
		arb:     typ == catalog.TypeJSONFlutter,
		lines:   lineCounter{data: data, line: 1},
		byKey:   make(map[string]*catalog.Item),
		pending: make(map[string]string),
	}
	root.ForEach(p.entry)
	for key := range p.pending {
		log.Warn().Str("path", path).Str("key", "@"+key).
			Msg("dropping metadata with no matching entry")
	}
	return c, nil
}

type parser struct {
	catalog *catalog.Catalog
	flags   catalog.OpenFlags
	path    string
	arb     bool
	lines   lineCounter

	byKey map[string]*catalog.Item
	// pending holds "@key" metadata seen before its entry. ARB convention
	// puts metadata after the entry, but the order is not guaranteed.
	pending map[string]string
}

func (p *parser) entry(key, value gjson.Result) bool {
	name := key.String()

	if p.arb && strings.HasPrefix(name, "@") {
		p.metadata(name, value)
		return true
	}

	if value.Type != gjson.String {
		log.Warn().Str("path", p.path).Str("key", name).
			Msg("skipping entry whose value is not a string")
		return true
	}

	it := catalog.NewItem(name)
	line := len(p.catalog.Items()) + 1
	if value.Index > 0 {
		line = p.lines.at(int64(value.Index))
	}
	it.SetLineNumber(line)
	if p.flags&catalog.OpenIgnoreTranslations == 0 {
		it.SetTranslation(value.String(), 0)
	}
	if raw, ok := p.pending[name]; ok {
		delete(p.pending, name)
		applyMetadata(it, raw)
	}
	p.catalog.AddItem(it)
	p.byKey[name] = it
	return true
}

func (p *parser) metadata(name string, value gjson.Result) {
	if strings.HasPrefix(name, "@@") {
		if name == "@@locale" && p.flags&catalog.OpenIgnoreHeader == 0 {
			p.catalog.Header().Lang = lang.TryParse(value.String())
		} else if name != "@@locale" {
			log.Warn().Str("path", p.path).Str("key", name).
				Msg("dropping unsupported global metadata key")
		}
		return
	}

	target := strings.TrimPrefix(name, "@")
	if it, ok := p.byKey[target]; ok {
		applyMetadata(it, value.Raw)
		return
	}
	p.pending[target] = value.Raw
}

func applyMetadata(it *catalog.Item, raw string) {
	it.SetFormatMetadata(raw)
	if desc := gjson.Get(raw, "description"); desc.Type == gjson.String && desc.String() != "" {
		it.SetExtractedComments([]string{desc.String()})
	}
}

// lineCounter converts byte offsets into 1-based line numbers. Offsets must
// be queried in increasing order.
type lineCounter struct {
	data []byte
	off  int64
	line int
}

func (lc *lineCounter) at(off int64) int {
	if off > int64(len(lc.data)) {
		off = int64(len(lc.data))
	}
	lc.line += bytes.Count(lc.data[lc.off:off], []byte{'\n'})
	lc.off = off
	return lc.line
}

func (codec) Write(c *catalog.Catalog, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	writeCatalog(w, c, isFlutterPath(path))
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func writeCatalog(w io.Writer, c *catalog.Catalog, arb bool) {
	io.WriteString(w, "{")
	first := true
	field := func(key string, rawValue []byte) {
		if !first {
			io.WriteString(w, ",")
		}
		first = false
		io.WriteString(w, "\n  ")
		name, _ := json.Marshal(key)
		w.Write(name)
		io.WriteString(w, ": ")
		w.Write(rawValue)
	}

	if arb {
		if l := c.Language(); l.IsValid() {
			locale, _ := json.Marshal(l.BCP47())
			field("@@locale", locale)
		}
	}
	for _, it := range c.Items() {
		value, _ := json.Marshal(it.Translation(0))
		field(it.RawSource(), value)
		if raw := it.FormatMetadata(); arb && raw != "" {
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, []byte(raw), "  ", "  "); err != nil {
				field("@"+it.RawSource(), []byte(raw))
			} else {
				field("@"+it.RawSource(), pretty.Bytes())
			}
		}
		if it.HasPlural() {
			log.Warn().Str("source", it.RawSource()).
				Msg("plural forms cannot be represented in a JSON catalog, writing the first form only")
		}
	}
	io.WriteString(w, "\n}\n")
}
