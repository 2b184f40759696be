package merge

import (
	"slices"
	"strings"

	"schemasynth/internal/core"
)

// StripFallback returns a copy of t without Fallback-typed columns. The
// primary key, indexes and foreign keys that reference a removed column are
// dropped as well.
func StripFallback(t *core.Table) *core.Table {
	out := t.Clone()
	removed := map[string]struct{}{}
	out.Columns = slices.DeleteFunc(out.Columns, func(c *core.Column) bool {
		if c.IsFallback() {
			removed[lower(c.Name)] = struct{}{}
			return true
		}
		return false
	})
	if len(removed) == 0 {
		return out
	}

	out.Constraints = slices.DeleteFunc(out.Constraints, func(c *core.Constraint) bool {
		return referencesAny(c.Columns, removed)
	})
	out.Indexes = slices.DeleteFunc(out.Indexes, func(i *core.Index) bool {
		return referencesAny(i.Names(), removed)
	})
	return out
}

func referencesAny(columns []string, set map[string]struct{}) bool {
	for _, c := range columns {
		if _, ok := set[lower(c)]; ok {
			return true
		}
	}
	return false
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
