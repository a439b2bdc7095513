// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package tm

import (
	"container/list"
	"encoding/json"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// suggestionCache is a fixed-capacity LRU over suggestion lookups, safe
// for concurrent use. Payloads are zstd-compressed when that shrinks
// them. Misses are cached too, so repeated lookups of strings the memory
// does not know skip the database.
type suggestionCache struct {
	capacity  int
	mu        sync.Mutex
	evictList *list.List
	entries   map[string]*list.Element
	enc       *zstd.Encoder
	dec       *zstd.Decoder
}

type suggestionEntry struct {
	key        string
	payload    []byte // JSON slot array, possibly compressed
	compressed bool
	found      bool
}

func newSuggestionCache(capacity int) (*suggestionCache, error) {
	// A nil writer/reader lets us use EncodeAll/DecodeAll without streams.
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, err
	}

	return &suggestionCache{
		capacity:  capacity,
		evictList: list.New(),
		entries:   make(map[string]*list.Element),
		enc:       enc,
		dec:       dec,
	}, nil
}

// put records the lookup result for key, nil slots meaning a confirmed
// miss. An existing entry is updated and becomes the most recently used;
// at capacity the least recently used entry is evicted.
func (sc *suggestionCache) put(key string, slots []string) {
	// Encode and compress outside the lock; EncodeAll supports
	// concurrent callers.
	var payload []byte
	var compressed bool
	found := slots != nil
	if found {
		payload, _ = json.Marshal(slots)
		if packed := sc.enc.EncodeAll(payload, nil); len(packed) < len(payload) {
			payload, compressed = packed, true
		}
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()

	if ent, ok := sc.entries[key]; ok {
		sc.evictList.MoveToFront(ent)
		e := ent.Value.(*suggestionEntry)
		e.payload, e.compressed, e.found = payload, compressed, found
		return
	}

	sc.entries[key] = sc.evictList.PushFront(&suggestionEntry{
		key:        key,
		payload:    payload,
		compressed: compressed,
		found:      found,
	})
	if sc.evictList.Len() > sc.capacity {
		oldest := sc.evictList.Back()
		sc.evictList.Remove(oldest)
		delete(sc.entries, oldest.Value.(*suggestionEntry).key)
	}
}

// get returns the cached result for key and marks it most recently used.
// cached reports whether the key was present at all; found distinguishes
// a remembered hit from a remembered miss. Entries that fail to decode
// are reported as absent.
func (sc *suggestionCache) get(key string) (slots []string, found, cached bool) {
	sc.mu.Lock()
	ent, ok := sc.entries[key]
	if !ok {
		sc.mu.Unlock()
		return nil, false, false
	}
	sc.evictList.MoveToFront(ent)
	e := ent.Value.(*suggestionEntry)
	payload, compressed, found := e.payload, e.compressed, e.found
	sc.mu.Unlock()

	if !found {
		return nil, false, true
	}
	if compressed {
		decoded, err := sc.dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, false, false
		}
		payload = decoded
	}
	if err := json.Unmarshal(payload, &slots); err != nil {
		return nil, false, false
	}
	return slots, true, true
}

func (sc *suggestionCache) len() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	return sc.evictList.Len()
}
