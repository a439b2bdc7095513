// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

// OpenFlags adjust how much of a file Open imports.
type OpenFlags uint

const (
	// OpenIgnoreHeader skips importing the file's header metadata.
	OpenIgnoreHeader OpenFlags = 1 << iota
	// OpenIgnoreTranslations leaves every translation slot empty no matter
	// what the file holds.
	OpenIgnoreTranslations
)

// Codec reads and writes one on-disk catalog encoding. Implementations
// register themselves with RegisterCodec from an init function; importing
// format/all pulls in the standard set. Read must apply the open flags
// itself, whether during tokenization or as a pass over the parsed items.
type Codec interface {
	// CanLoad reports whether the codec handles files with the given
	// extension (lowercase, no dot).
	CanLoad(ext string) bool
	// Read parses the file into a catalog, honoring flags. Items must come
	// back ordered by ascending source line number.
	Read(path string, flags OpenFlags) (*Catalog, error)
	// Write serializes the catalog to the file.
	Write(c *Catalog, path string) error
}

type registeredCodec struct {
	priority int
	codec    Codec
}

var codecs []registeredCodec

// RegisterCodec makes a codec available to Open and Save. Codecs are probed
// in ascending priority order, so the ordering is stable no matter which
// order the format packages initialize in. Call from init only; the
// registry is not synchronized.
func RegisterCodec(priority int, c Codec) {
	pos := len(codecs)
	for pos > 0 && codecs[pos-1].priority > priority {
		pos--
	}
	codecs = append(codecs, registeredCodec{})
	copy(codecs[pos+1:], codecs[pos:])
	codecs[pos] = registeredCodec{priority: priority, codec: c}
}

func codecForExt(ext string) Codec {
	for _, rc := range codecs {
		if rc.codec.CanLoad(ext) {
			return rc.codec
		}
	}
	return nil
}

// CanLoadFile reports whether any registered codec handles the extension
// (with or without the leading dot, any case).
func CanLoadFile(ext string) bool {
	return codecForExt(normalizeExt(ext)) != nil
}
