// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package po reads and writes gettext PO and POT files.
//
// The codec registers itself on import; most programs get it by importing
// format/all.
package po

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/transcat/transcat/catalog"
)

func init() {
	catalog.RegisterCodec(10, codec{})
}

type codec struct{}

func (codec) CanLoad(ext string) bool { return ext == "po" || ext == "pot" }

func (codec) Read(path string, flags catalog.OpenFlags) (*catalog.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	typ := catalog.TypePO
	if strings.HasSuffix(strings.ToLower(path), ".pot") {
		typ = catalog.TypePOT
	}

	p := &parser{
		catalog: catalog.New(typ),
		flags:   flags,
		path:    path,
	}
	if err := p.run(bufio.NewScanner(f)); err != nil {
		return nil, err
	}
	return p.catalog, nil
}

// Continuation targets. A quoted line with no keyword extends whichever
// field the previous keyword line started.
const (
	fieldNone = iota
	fieldMsgctxt
	fieldMsgid
	fieldMsgidPlural
	fieldMsgstr
)

// rawEntry accumulates the lines of one entry until a blank line closes it.
type rawEntry struct {
	lineNumber int
	comments   []string
	extracted  []string
	references []string
	flags      string
	oldMsgid   []string

	hasCtxt     bool
	msgctxt     string
	sawMsgid    bool
	msgid       string
	hasPlural   bool
	msgidPlural string
	msgstr      []string
	obsolete    bool
}

func (e *rawEntry) setSlot(idx int, val string) {
	for idx >= len(e.msgstr) {
		e.msgstr = append(e.msgstr, "")
	}
	e.msgstr[idx] = val
}

func (e *rawEntry) appendSlot(idx int, val string) {
	e.setSlot(idx, e.msgstr[idx]+val)
}

type parser struct {
	catalog *catalog.Catalog
	flags   catalog.OpenFlags
	path    string

	deprecated []*catalog.Item
	headerSeen bool

	entry     *rawEntry
	lastField int
	lastSlot  int
}

func (p *parser) run(sc *bufio.Scanner) error {
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSuffix(sc.Text(), "\r")
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		if strings.TrimSpace(line) == "" {
			p.flush()
			continue
		}
		p.line(lineNum, line)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", p.path, err)
	}
	p.flush()

	p.catalog.SetDeprecatedItems(p.deprecated)
	return nil
}

func (p *parser) line(n int, line string) {
	if p.entry == nil {
		p.entry = &rawEntry{lineNumber: n}
		p.lastField = fieldNone
	}
	e := p.entry

	if strings.HasPrefix(line, "#~") {
		e.obsolete = true
		line = strings.TrimPrefix(line[2:], " ")
	}

	switch {
	case strings.HasPrefix(line, "#:"):
		e.references = append(e.references, strings.Fields(line[2:])...)
	case strings.HasPrefix(line, "#,"):
		e.flags = line[1:]
	case strings.HasPrefix(line, "#."):
		e.extracted = append(e.extracted, strings.TrimSpace(line[2:]))
	case strings.HasPrefix(line, "#|"):
		e.oldMsgid = append(e.oldMsgid, strings.TrimSpace(line[2:]))
	case strings.HasPrefix(line, "#"):
		e.comments = append(e.comments, line)

	case strings.HasPrefix(line, "msgctxt "):
		e.hasCtxt = true
		e.msgctxt = unquote(line[len("msgctxt "):])
		p.lastField = fieldMsgctxt
	case strings.HasPrefix(line, "msgid_plural "):
		e.hasPlural = true
		e.msgidPlural = unquote(line[len("msgid_plural "):])
		p.lastField = fieldMsgidPlural
	case strings.HasPrefix(line, "msgid "):
		e.sawMsgid = true
		e.msgid = unquote(line[len("msgid "):])
		e.lineNumber = n
		p.lastField = fieldMsgid
	case strings.HasPrefix(line, "msgstr["):
		idx, rest, ok := msgstrIndex(line)
		if !ok {
			log.Warn().Str("file", p.path).Int("line", n).Msg("skipping malformed msgstr index")
			return
		}
		e.setSlot(idx, unquote(rest))
		p.lastField = fieldMsgstr
		p.lastSlot = idx
	case strings.HasPrefix(line, "msgstr "):
		e.setSlot(0, unquote(line[len("msgstr "):]))
		p.lastField = fieldMsgstr
		p.lastSlot = 0

	case strings.HasPrefix(line, `"`):
		val := unquote(line)
		switch p.lastField {
		case fieldMsgctxt:
			e.msgctxt += val
		case fieldMsgid:
			e.msgid += val
		case fieldMsgidPlural:
			e.msgidPlural += val
		case fieldMsgstr:
			e.appendSlot(p.lastSlot, val)
		default:
			log.Warn().Str("file", p.path).Int("line", n).Msg("skipping stray continuation line")
		}

	default:
		log.Warn().Str("file", p.path).Int("line", n).Msg("skipping unrecognized line")
	}
}

// flush closes the current entry and files it as the header, a regular
// item or a deprecated item.
func (p *parser) flush() {
	e := p.entry
	p.entry = nil
	p.lastField = fieldNone
	if e == nil || !e.sawMsgid {
		return
	}

	if e.msgid == "" && !e.hasCtxt && !e.obsolete {
		if p.headerSeen {
			log.Warn().Str("file", p.path).Int("line", e.lineNumber).Msg("ignoring duplicate header entry")
			return
		}
		p.headerSeen = true
		if p.flags&catalog.OpenIgnoreHeader == 0 && len(e.msgstr) > 0 {
			h := p.catalog.Header()
			h.FromWireText(e.msgstr[0])
			h.Comment = strings.Join(e.comments, "\n")
		}
		return
	}

	it := e.materialize(p.flags)
	if e.obsolete {
		p.deprecated = append(p.deprecated, it)
	} else {
		p.catalog.AddItem(it)
	}
}

func (e *rawEntry) materialize(flags catalog.OpenFlags) *catalog.Item {
	it := catalog.NewItem(e.msgid)
	it.SetLineNumber(e.lineNumber)
	if e.hasCtxt {
		it.SetContext(e.msgctxt)
	}
	if e.hasPlural {
		it.SetPluralSource(e.msgidPlural)
	}

	slots := e.msgstr
	if len(slots) == 0 {
		slots = []string{""}
	}
	if flags&catalog.OpenIgnoreTranslations != 0 {
		slots = make([]string, len(slots))
	}
	it.SetTranslations(slots)

	it.SetFlags(e.flags)
	it.SetOldMsgidRaw(e.oldMsgid)
	if flags&catalog.OpenIgnoreTranslations != 0 {
		it.SetFuzzy(false)
	}

	if len(e.comments) > 0 {
		stripped := make([]string, len(e.comments))
		for i, c := range e.comments {
			stripped[i] = stripCommentPrefix(c)
		}
		it.SetComment(strings.Join(stripped, "\n"))
	}
	it.SetExtractedComments(e.extracted)
	it.SetReferences(e.references)
	return it
}

// msgstrIndex parses `msgstr[N] "..."` into the slot index and the quoted
// remainder.
func msgstrIndex(line string) (idx int, rest string, ok bool) {
	end := strings.IndexByte(line, ']')
	if end < 0 {
		return 0, "", false
	}
	n, err := strconv.Atoi(line[len("msgstr["):end])
	if err != nil || n < 0 {
		return 0, "", false
	}
	return n, strings.TrimSpace(line[end+1:]), true
}

// unquote strips the surrounding double quotes and decodes C escapes.
// Unquoted input is tolerated and only unescaped, following gettext's
// lenient reading.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return catalog.UnescapeCString(s)
}

func stripCommentPrefix(line string) string {
	line = strings.TrimPrefix(line, "#")
	return strings.TrimPrefix(line, " ")
}
