// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package lang

import "unicode"

// Detector guesses the language of a text sample. Implementations are free
// to use whatever heuristics or models they like; the default one only
// looks at Unicode scripts.
type Detector interface {
	DetectFromText(text string) Language
}

// DefaultDetector is consulted by TryDetectFromText. Swap it out to plug in
// a smarter detector.
var DefaultDetector Detector = ScriptDetector{}

// TryDetectFromText guesses the language of text using DefaultDetector.
// Returns the unset language when the sample is inconclusive.
func TryDetectFromText(text string) Language {
	return DefaultDetector.DetectFromText(text)
}

// maxDetectBytes caps how much of a sample the script detector scans.
// Catalogs concatenate every string into the sample and can get large.
const maxDetectBytes = 64 * 1024

// ScriptDetector classifies text by its dominant Unicode script. It can
// tell scripts apart, not languages within a script: Latin-script text is
// reported as unknown, and Cyrillic, Han and Arabic map to their most
// common language.
type ScriptDetector struct{}

var scriptLanguages = []struct {
	ranges *unicode.RangeTable
	code   string
}{
	{unicode.Hiragana, "ja"},
	{unicode.Katakana, "ja"},
	{unicode.Hangul, "ko"},
	{unicode.Han, "zh"},
	{unicode.Cyrillic, "ru"},
	{unicode.Greek, "el"},
	{unicode.Hebrew, "he"},
	{unicode.Arabic, "ar"},
	{unicode.Thai, "th"},
	{unicode.Devanagari, "hi"},
	{unicode.Georgian, "ka"},
	{unicode.Armenian, "hy"},
}

func (ScriptDetector) DetectFromText(text string) Language {
	counts := make(map[string]int, len(scriptLanguages))
	total := 0

	for i, r := range text {
		if i > maxDetectBytes {
			break
		}
		if !unicode.IsLetter(r) {
			continue
		}
		total++
		for _, s := range scriptLanguages {
			if unicode.Is(s.ranges, r) {
				counts[s.code]++
				break
			}
		}
	}
	if total == 0 {
		return Language{}
	}

	// Kana settles Japanese even when Han characters dominate the count.
	if counts["ja"] > 0 && counts["ja"]+counts["zh"] > total/2 {
		return TryParse("ja")
	}

	best, bestCount := "", 0
	for code, n := range counts {
		if n > bestCount {
			best, bestCount = code, n
		}
	}
	if bestCount*2 <= total {
		return Language{}
	}
	return TryParse(best)
}
