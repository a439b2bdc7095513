// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package all registers every built-in catalog codec. Import it for side
// effects:
//
//	import _ "codeberg.org/transcat/transcat/format/all"
package all

import (
	_ "codeberg.org/transcat/transcat/format/jsoncat"
	_ "codeberg.org/transcat/transcat/format/po"
	_ "codeberg.org/transcat/transcat/format/xliff"
)
