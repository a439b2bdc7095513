// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package lang

import "strings"

// Legacy catalog headers spell languages and countries out as English names
// ("French", "BRAZIL") instead of codes. These tables cover the names that
// appear in the wild; lookups are case-insensitive.
var legacyLanguageNames = map[string]string{
	"afrikaans":  "af",
	"albanian":   "sq",
	"arabic":     "ar",
	"armenian":   "hy",
	"basque":     "eu",
	"belarusian": "be",
	"bengali":    "bn",
	"bosnian":    "bs",
	"bulgarian":  "bg",
	"catalan":    "ca",
	"chinese":    "zh",
	"croatian":   "hr",
	"czech":      "cs",
	"danish":     "da",
	"dutch":      "nl",
	"english":    "en",
	"estonian":   "et",
	"finnish":    "fi",
	"french":     "fr",
	"galician":   "gl",
	"georgian":   "ka",
	"german":     "de",
	"greek":      "el",
	"hebrew":     "he",
	"hindi":      "hi",
	"hungarian":  "hu",
	"icelandic":  "is",
	"indonesian": "id",
	"irish":      "ga",
	"italian":    "it",
	"japanese":   "ja",
	"kazakh":     "kk",
	"korean":     "ko",
	"latvian":    "lv",
	"lithuanian": "lt",
	"macedonian": "mk",
	"malay":      "ms",
	"norwegian":  "no",
	"persian":    "fa",
	"polish":     "pl",
	"portuguese": "pt",
	"romanian":   "ro",
	"russian":    "ru",
	"serbian":    "sr",
	"slovak":     "sk",
	"slovenian":  "sl",
	"spanish":    "es",
	"swedish":    "sv",
	"thai":       "th",
	"turkish":    "tr",
	"ukrainian":  "uk",
	"vietnamese": "vi",
	"welsh":      "cy",
}

var legacyCountryNames = map[string]string{
	"argentina":      "AR",
	"australia":      "AU",
	"austria":        "AT",
	"belgium":        "BE",
	"brazil":         "BR",
	"canada":         "CA",
	"china":          "CN",
	"czech republic": "CZ",
	"denmark":        "DK",
	"finland":        "FI",
	"france":         "FR",
	"germany":        "DE",
	"hong kong":      "HK",
	"india":          "IN",
	"ireland":        "IE",
	"italy":          "IT",
	"japan":          "JP",
	"korea":          "KR",
	"mexico":         "MX",
	"netherlands":    "NL",
	"norway":         "NO",
	"poland":         "PL",
	"portugal":       "PT",
	"russia":         "RU",
	"spain":          "ES",
	"sweden":         "SE",
	"switzerland":    "CH",
	"taiwan":         "TW",
	"ukraine":        "UA",
	"united kingdom": "GB",
	"united states":  "US",
}

// FromLegacyNames resolves the pre-2008 name-based header pair into a
// Language. An unknown language name yields the unset language; an unknown
// country name degrades to the bare language.
func FromLegacyNames(languageName, countryName string) Language {
	code, ok := legacyLanguageNames[strings.ToLower(strings.TrimSpace(languageName))]
	if !ok {
		return Language{}
	}
	if cc, ok := legacyCountryNames[strings.ToLower(strings.TrimSpace(countryName))]; ok {
		code += "_" + cc
	}
	return TryParse(code)
}
