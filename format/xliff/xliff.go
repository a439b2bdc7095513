// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package xliff reads and writes XLIFF 1.2 files.
//
// Each trans-unit maps to one catalog item: the unit id becomes the item
// context when it differs from the source text, notes become extracted
// comments, and the approved/state attributes carry the fuzzy and
// translated states. Inline markup inside source and target elements is
// kept as literal tag text so the strings survive a round trip.
//
// The codec registers itself on import; most programs get it by importing
// format/all.
package xliff

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/transcat/transcat/catalog"
	"codeberg.org/transcat/transcat/lang"
)

func init() {
	catalog.RegisterCodec(20, codec{})
}

type codec struct{}

func (codec) CanLoad(ext string) bool { return ext == "xlf" || ext == "xliff" }

func (codec) Read(path string, flags catalog.OpenFlags) (*catalog.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := catalog.New(catalog.TypeXLIFF)
	c.Header().Charset = "UTF-8"

	dec := xml.NewDecoder(bytes.NewReader(data))
	lines := lineCounter{data: data, line: 1}
	sawFile := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		st, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch st.Name.Local {
		case "xliff":
			if v := attrValue(st, "version"); v != "" && !strings.HasPrefix(v, "1.") {
				return nil, fmt.Errorf("%s: XLIFF version %s is not supported, only 1.x is", path, v)
			}
		case "file":
			if !sawFile && flags&catalog.OpenIgnoreHeader == 0 {
				if v := attrValue(st, "source-language"); v != "" {
					c.SetSourceLanguage(lang.TryParse(v))
				}
				if v := attrValue(st, "target-language"); v != "" {
					c.Header().Lang = lang.TryParse(v)
				}
			}
			sawFile = true
		case "trans-unit":
			line := lines.at(dec.InputOffset())
			var u transUnit
			if err := dec.DecodeElement(&u, &st); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
			if u.Source.Text == "" && u.ID == "" {
				log.Warn().Str("path", path).Int("line", line).
					Msg("skipping trans-unit with no source text and no id")
				continue
			}
			c.AddItem(u.item(line, flags))
		}
	}
	if !sawFile {
		return nil, fmt.Errorf("%s: no <file> element found", path)
	}
	return c, nil
}

// transUnit mirrors one <trans-unit> element.
type transUnit struct {
	ID       string    `xml:"id,attr"`
	Approved string    `xml:"approved,attr"`
	Source   unitText  `xml:"source"`
	Target   *unitText `xml:"target"`
	Notes    []string  `xml:"note"`
}

func (u *transUnit) item(line int, flags catalog.OpenFlags) *catalog.Item {
	src := u.Source.Text
	if src == "" {
		src = u.ID
	}
	it := catalog.NewItem(src)
	it.SetLineNumber(line)
	if u.ID != "" && u.ID != src {
		it.SetContext(u.ID)
	}
	if len(u.Notes) > 0 {
		notes := make([]string, len(u.Notes))
		for i, n := range u.Notes {
			notes[i] = strings.TrimSpace(n)
		}
		it.SetExtractedComments(notes)
	}
	if u.Target != nil && flags&catalog.OpenIgnoreTranslations == 0 {
		it.SetTranslation(u.Target.Text, 0)
		if u.Target.Text != "" && u.Approved != "yes" &&
			(u.Approved == "no" || strings.HasPrefix(u.Target.State, "needs-")) {
			it.SetFuzzy(true)
		}
	}
	return it
}

// unitText is the content of a <source> or <target> element. Character data
// is decoded; inline child elements (<x/>, <g>, <ph>, ...) are rebuilt as
// literal tags in the text.
type unitText struct {
	State string
	Text  string
}

func (u *unitText) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		if a.Name.Local == "state" {
			u.State = a.Value
		}
	}

	var b strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			depth++
			b.WriteByte('<')
			b.WriteString(qualifiedName(t.Name))
			for _, a := range t.Attr {
				fmt.Fprintf(&b, ` %s="%s"`, qualifiedName(a.Name), escapeAttr(a.Value))
			}
			b.WriteByte('>')
		case xml.EndElement:
			depth--
			if depth > 0 {
				b.WriteString("</" + qualifiedName(t.Name) + ">")
			}
		}
	}
	u.Text = b.String()
	return nil
}

const xliffNamespace = "urn:oasis:names:tc:xliff:document:1.2"

// qualifiedName rebuilds an element or attribute name. The decoder resolves
// the document's default namespace into Name.Space; inline tags inherit it,
// so it is suppressed rather than spelled out on every tag.
func qualifiedName(n xml.Name) string {
	if n.Space == "" || n.Space == xliffNamespace {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func attrValue(st xml.StartElement, name string) string {
	for _, a := range st.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// lineCounter converts decoder byte offsets into 1-based line numbers.
// Offsets must be queried in increasing order.
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
	writeCatalog(w, c, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func writeCatalog(w io.Writer, c *catalog.Catalog, original string) {
	fmt.Fprintln(w, `<?xml version="1.0" encoding="UTF-8"?>`)
	fmt.Fprintln(w, `<xliff version="1.2" xmlns="urn:oasis:names:tc:xliff:document:1.2">`)

	srcLang := "en"
	if l := c.SourceLanguage(); l.IsValid() {
		srcLang = l.BCP47()
	}
	fmt.Fprintf(w, `  <file original="%s" datatype="plaintext" source-language="%s"`,
		escapeAttr(original), escapeAttr(srcLang))
	if l := c.Language(); l.IsValid() {
		fmt.Fprintf(w, ` target-language="%s"`, escapeAttr(l.BCP47()))
	}
	fmt.Fprintln(w, ">")
	fmt.Fprintln(w, "    <body>")

	for _, it := range c.Items() {
		writeUnit(w, it)
	}

	fmt.Fprintln(w, "    </body>")
	fmt.Fprintln(w, "  </file>")
	fmt.Fprintln(w, "</xliff>")
}

func writeUnit(w io.Writer, it *catalog.Item) {
	id := it.RawSource()
	if it.HasContext() {
		id = it.Context()
	}
	fmt.Fprintf(w, `      <trans-unit id="%s"`, escapeAttr(id))
	if it.IsTranslated() && !it.IsFuzzy() {
		io.WriteString(w, ` approved="yes"`)
	}
	fmt.Fprintln(w, ">")

	fmt.Fprintf(w, "        <source>%s</source>\n", escapeText(it.RawSource()))

	state := "needs-translation"
	switch {
	case it.IsTranslated() && it.IsFuzzy():
		state = "needs-review-translation"
	case it.IsTranslated():
		state = "translated"
	}
	fmt.Fprintf(w, "        <target state=\"%s\">%s</target>\n", state, escapeText(it.Translation(0)))
	if it.HasPlural() {
		log.Warn().Str("source", it.RawSource()).
			Msg("plural forms cannot be represented in XLIFF 1.2, writing the first form only")
	}

	for _, note := range it.ExtractedComments() {
		fmt.Fprintf(w, "        <note>%s</note>\n", escapeText(note))
	}
	fmt.Fprintln(w, "      </trans-unit>")
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", `"`, "&quot;")
)

// escapeText escapes element content. Strings carrying inline markup (both
// "<" and ">" present) were rebuilt from tags at parse time and pass
// through verbatim so the tags survive.
func escapeText(s string) string {
	if strings.Contains(s, "<") && strings.Contains(s, ">") {
		return s
	}
	return textEscaper.Replace(s)
}

func escapeAttr(s string) string { return attrEscaper.Replace(s) }
