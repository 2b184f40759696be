package merge

import "schemasynth/internal/core"

// ApplyOverride unlocks o and merges its columns, primary key, indexes,
// foreign keys and options wholesale into a copy of combined. Fallback
// columns of the override are ignored. A nil override is a no-op.
func ApplyOverride(combined *core.Table, o *core.LockedOverride) *core.Table {
	if o == nil {
		return combined.Clone()
	}
	ov := StripFallback(o.Unlock().Table())
	return core.MergeTable(combined, ov)
}
