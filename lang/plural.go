// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package lang

// Gettext Plural-Forms expressions for languages that need something other
// than a catalog-supplied rule. Region-qualified entries take precedence
// over the bare language.
var pluralFormsTable = map[string]string{
	"ar": "nplurals=6; plural=(n==0 ? 0 : n==1 ? 1 : n==2 ? 2 : n%100>=3 && n%100<=10 ? 3 : n%100>=11 ? 4 : 5);",
	"be": "nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);",
	"bg": "nplurals=2; plural=(n != 1);",
	"bs": "nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);",
	"ca": "nplurals=2; plural=(n != 1);",
	"cs": "nplurals=3; plural=(n==1) ? 0 : (n>=2 && n<=4) ? 1 : 2;",
	"cy": "nplurals=4; plural=(n==1) ? 0 : (n==2) ? 1 : (n != 8 && n != 11) ? 2 : 3;",
	"da": "nplurals=2; plural=(n != 1);",
	"de": "nplurals=2; plural=(n != 1);",
	"el": "nplurals=2; plural=(n != 1);",
	"en": "nplurals=2; plural=(n != 1);",
	"es": "nplurals=2; plural=(n != 1);",
	"et": "nplurals=2; plural=(n != 1);",
	"eu": "nplurals=2; plural=(n != 1);",
	"fa": "nplurals=2; plural=(n > 1);",
	"fi": "nplurals=2; plural=(n != 1);",
	"fr": "nplurals=2; plural=(n > 1);",
	"ga": "nplurals=5; plural=n==1 ? 0 : n==2 ? 1 : (n>2 && n<7) ? 2 :(n>6 && n<11) ? 3 : 4;",
	"he": "nplurals=2; plural=(n != 1);",
	"hi": "nplurals=2; plural=(n != 1);",
	"hr": "nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);",
	"hu": "nplurals=2; plural=(n != 1);",
	"id": "nplurals=1; plural=0;",
	"is": "nplurals=2; plural=(n%10!=1 || n%100==11);",
	"it": "nplurals=2; plural=(n != 1);",
	"ja": "nplurals=1; plural=0;",
	"ko": "nplurals=1; plural=0;",
	"lt": "nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n%10>=2 && (n%100<10 || n%100>=20) ? 1 : 2);",
	"lv": "nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n != 0 ? 1 : 2);",
	"mk": "nplurals=2; plural=(n==1 || n%10==1 ? 0 : 1);",
	"ms": "nplurals=1; plural=0;",
	"mt": "nplurals=4; plural=(n==1 ? 0 : n==0 || ( n%100>1 && n%100<11) ? 1 : (n%100>10 && n%100<20 ) ? 2 : 3);",
	"nl": "nplurals=2; plural=(n != 1);",
	"no": "nplurals=2; plural=(n != 1);",
	"pl": "nplurals=3; plural=(n==1 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);",
	"pt": "nplurals=2; plural=(n != 1);",
	"pt_BR": "nplurals=2; plural=(n > 1);",
	"ro": "nplurals=3; plural=(n==1 ? 0 : (n==0 || (n%100 > 0 && n%100 < 20)) ? 1 : 2);",
	"ru": "nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);",
	"sk": "nplurals=3; plural=(n==1) ? 0 : (n>=2 && n<=4) ? 1 : 2;",
	"sl": "nplurals=4; plural=(n%100==1 ? 1 : n%100==2 ? 2 : n%100==3 || n%100==4 ? 3 : 0);",
	"sq": "nplurals=2; plural=(n != 1);",
	"sr": "nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);",
	"sv": "nplurals=2; plural=(n != 1);",
	"th": "nplurals=1; plural=0;",
	"tr": "nplurals=2; plural=(n != 1);",
	"uk": "nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);",
	"vi": "nplurals=1; plural=0;",
	"zh": "nplurals=1; plural=0;",
}

// DefaultPluralForms returns the standard gettext Plural-Forms line for the
// language, or "" when none is on record.
func DefaultPluralForms(l Language) string {
	if !l.IsValid() {
		return ""
	}
	if pf, ok := pluralFormsTable[l.Code()]; ok {
		return pf
	}
	return pluralFormsTable[l.Base()]
}
