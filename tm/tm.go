// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package tm implements the translation memory: an on-disk SQLite store
// of confirmed translations, keyed by language pair and source strings,
// with an exact-match suggestion lookup. Lookups run through a bounded
// LRU cache that remembers misses as well as hits.
package tm

import (
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"codeberg.org/transcat/transcat/catalog"
	"codeberg.org/transcat/transcat/lang"
)

const schemaVersion = 1

// ErrNoTargetLanguage is returned when an operation needs a target
// language and none is set.
var ErrNoTargetLanguage = errors.New("no target language set")

// Memory is an open translation memory. Suggest is safe for concurrent
// use; Learn calls must be serialized by the caller.
type Memory struct {
	db      *sqlx.DB
	cache   *suggestionCache
	entropy *ulid.MonotonicEntropy
}

// Open opens the translation memory database at path, creating it when
// missing. cacheEntries bounds the suggestion cache; zero or a negative
// value disables caching.
func Open(path string, cacheEntries int) (*Memory, error) {
	db, err := sqlx.Connect("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening translation memory %s: %w", path, err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	m := &Memory{db: db, entropy: ulid.Monotonic(rand.Reader, 0)}
	if cacheEntries > 0 {
		cache, err := newSuggestionCache(cacheEntries)
		if err != nil {
			db.Close()
			return nil, err
		}
		m.cache = cache
	}
	return m, nil
}

func (m *Memory) Close() error { return m.db.Close() }

func migrate(db *sqlx.DB) error {
	var version int
	if err := db.Get(&version, "PRAGMA user_version"); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if version < 1 {
		const schema = `
		CREATE TABLE IF NOT EXISTS translations (
		  id            TEXT PRIMARY KEY,
		  src_lang      TEXT NOT NULL,
		  dst_lang      TEXT NOT NULL,
		  source        TEXT NOT NULL,
		  plural_source TEXT NOT NULL DEFAULT '',
		  slots         TEXT NOT NULL,
		  created_at    INTEGER NOT NULL,
		  updated_at    INTEGER NOT NULL
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_translations_key
		ON translations(src_lang, dst_lang, source, plural_source);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", schemaVersion)); err != nil {
			return fmt.Errorf("recording schema version: %w", err)
		}
	}
	return nil
}

const upsertQuery = `
INSERT INTO translations (id, src_lang, dst_lang, source, plural_source, slots, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (src_lang, dst_lang, source, plural_source)
DO UPDATE SET slots = excluded.slots, updated_at = excluded.updated_at`

// Learn stores every fully translated, non-fuzzy item of the catalog,
// replacing the slots of rows already present. It returns the number of
// items written. The catalog must have a target language; a missing
// source language is recorded as English.
func (m *Memory) Learn(c *catalog.Catalog) (int, error) {
	dst := c.Language()
	if !dst.IsValid() {
		return 0, ErrNoTargetLanguage
	}
	src := sourceCode(c.SourceLanguage())

	tx, err := m.db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stored := 0
	now := time.Now().Unix()
	for _, it := range c.Items() {
		if !it.IsTranslated() || it.IsFuzzy() {
			continue
		}
		id, err := ulid.New(ulid.Timestamp(time.Now()), m.entropy)
		if err != nil {
			return stored, fmt.Errorf("generating row ID: %w", err)
		}
		slots := it.Translations()
		_, err = tx.Exec(upsertQuery,
			id.String(), src, dst.BCP47(), it.RawSource(), it.RawPluralSource(),
			encodeSlots(slots), now, now)
		if err != nil {
			return stored, fmt.Errorf("storing %q: %w", it.RawSource(), err)
		}
		stored++
		if m.cache != nil {
			m.cache.put(suggestKey(src, dst.BCP47(), it.RawSource(), it.RawPluralSource()), slots)
		}
	}
	if err := tx.Commit(); err != nil {
		return stored, fmt.Errorf("committing: %w", err)
	}
	return stored, nil
}

// Suggest returns the remembered translation slots for an exact match on
// the language pair and source strings. ok reports whether the memory had
// one; a miss is not an error.
func (m *Memory) Suggest(srcLang, dstLang lang.Language, source, pluralSource string) (slots []string, ok bool, err error) {
	if !dstLang.IsValid() {
		return nil, false, ErrNoTargetLanguage
	}
	src := sourceCode(srcLang)
	key := suggestKey(src, dstLang.BCP47(), source, pluralSource)
	if m.cache != nil {
		if slots, found, cached := m.cache.get(key); cached {
			return slots, found, nil
		}
	}

	var encoded string
	err = m.db.Get(&encoded,
		"SELECT slots FROM translations WHERE src_lang = ? AND dst_lang = ? AND source = ? AND plural_source = ?",
		src, dstLang.BCP47(), source, pluralSource)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if m.cache != nil {
			m.cache.put(key, nil)
		}
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("querying translation memory: %w", err)
	}

	slots, err = decodeSlots(encoded)
	if err != nil {
		return nil, false, err
	}
	if m.cache != nil {
		m.cache.put(key, slots)
	}
	return slots, true, nil
}

// Count returns the number of rows stored.
func (m *Memory) Count() (int, error) {
	var n int
	if err := m.db.Get(&n, "SELECT COUNT(*) FROM translations"); err != nil {
		return 0, fmt.Errorf("counting rows: %w", err)
	}
	return n, nil
}

func sourceCode(l lang.Language) string {
	if l.IsValid() {
		return l.BCP47()
	}
	return "en"
}

func suggestKey(src, dst, source, plural string) string {
	return src + "\x00" + dst + "\x00" + source + "\x00" + plural
}

func encodeSlots(slots []string) string {
	encoded, _ := json.Marshal(slots)
	return string(encoded)
}

func decodeSlots(encoded string) ([]string, error) {
	var slots []string
	if err := json.Unmarshal([]byte(encoded), &slots); err != nil {
		return nil, fmt.Errorf("decoding stored translation: %w", err)
	}
	return slots, nil
}
