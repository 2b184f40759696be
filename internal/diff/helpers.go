package diff

import (
	"fmt"
	"strings"

	"schemasynth/internal/core"
)

type fieldChangeCollector struct {
	Changes []*FieldChange
}

func (c *fieldChangeCollector) Add(field, oldV, newV string) {
	if oldV == newV {
		return
	}
	c.Changes = append(c.Changes, &FieldChange{Field: field, Old: oldV, New: newV})
}

// mapColumnsByName creates a lookup map of columns keyed by lowercase name.
// Returns the map and any case-insensitive name collisions found.
func mapColumnsByName(columns []*core.Column) (map[string]*core.Column, []string) {
	m := make(map[string]*core.Column, len(columns))
	original := make(map[string]string, len(columns))
	var collisions []string

	for _, c := range columns {
		key := strings.ToLower(c.Name)
		if prev, ok := original[key]; ok {
			if prev != c.Name {
				collisions = append(collisions, fmt.Sprintf("case-insensitive name collision: %q vs %q", prev, c.Name))
			}
			continue
		}
		original[key] = c.Name
		m[key] = c
	}
	return m, collisions
}

// mapByKey creates a lookup map keyed by keyFn. The first item wins on duplicate keys.
func mapByKey[T any](items []T, keyFn func(T) string) map[string]T {
	m := make(map[string]T, len(items))
	for _, item := range items {
		k := keyFn(item)
		if _, ok := m[k]; ok {
			continue
		}
		m[k] = item
	}
	return m
}

func equalStringSliceCI(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalFoldTrim(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func ptrEq(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func ptrDisplay(p *string) string {
	if p == nil {
		return "NULL"
	}
	return fmt.Sprintf("%q", *p)
}

func formatNameList(items []string) string {
	return "(" + strings.Join(items, ", ") + ")"
}
