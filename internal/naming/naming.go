// Package naming builds storage-engine-safe table identifiers.
package naming

import (
	"encoding/hex"
	"unicode/utf8"

	"github.com/zeebo/blake3"
)

// MaxLength is the longest identifier PrepareTableName returns for any
// suffix shorter than MaxLength-hashWidth-2.
const MaxLength = 128

// hashWidth is the number of hex digits appended to a shortened name.
const hashWidth = 16

// PrepareTableName returns base joined with suffix by an underscore. When the
// result would exceed MaxLength, base is truncated on a character boundary
// and a hash of the full
// base name is appended, so distinct long names stay distinct and repeated
// calls return the same name.
func PrepareTableName(base, suffix string) string {
	budget := MaxLength
	if suffix != "" {
		budget -= len(suffix) + 1
	}

	name := base
	if len(base) > budget {
		keep := max(budget-hashWidth-1, 0)
		for keep > 0 && !utf8.RuneStart(base[keep]) {
			keep--
		}
		sum := blake3.Sum256([]byte(base))
		name = base[:keep] + "_" + hex.EncodeToString(sum[:hashWidth/2])
	}

	if suffix == "" {
		return name
	}
	return name + "_" + suffix
}
