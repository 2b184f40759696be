package diff

import (
	"strconv"
	"strings"

	"schemasynth/internal/core"
)

func compareIndexes(oldItems, newItems []*core.Index, td *TableDiff) {
	oldMap := mapByKey(oldItems, indexKey)
	newMap := mapByKey(newItems, indexKey)

	for _, newItem := range newItems {
		key := indexKey(newItem)
		if newMap[key] != newItem {
			continue
		}
		oldItem, exists := oldMap[key]
		if !exists {
			td.AddedIndexes = append(td.AddedIndexes, newItem)
			continue
		}
		if !equalIndex(oldItem, newItem) {
			td.ModifiedIndexes = append(td.ModifiedIndexes, &IndexChange{
				Name:    newItem.Name,
				Old:     oldItem,
				New:     newItem,
				Changes: indexFieldChanges(oldItem, newItem),
			})
		}
	}

	for _, oldItem := range oldItems {
		if _, exists := newMap[indexKey(oldItem)]; !exists {
			td.RemovedIndexes = append(td.RemovedIndexes, oldItem)
		}
	}
}

func equalIndex(a, b *core.Index) bool {
	return len(indexFieldChanges(a, b)) == 0
}

func equalIndexColumns(a, b []core.IndexColumn) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !strings.EqualFold(a[i].Name, b[i].Name) || a[i].Length != b[i].Length {
			return false
		}
	}
	return true
}

func indexFieldChanges(oldI, newI *core.Index) []*FieldChange {
	c := &fieldChangeCollector{}

	c.Add("unique", strconv.FormatBool(oldI.Unique), strconv.FormatBool(newI.Unique))
	c.Add("type", indexTypeOf(oldI), indexTypeOf(newI))
	if !equalIndexColumns(oldI.Columns, newI.Columns) {
		c.Add("columns", formatIndexColumns(oldI.Columns), formatIndexColumns(newI.Columns))
	}

	return c.Changes
}

// An unspecified index type is a BTREE index.
func indexTypeOf(i *core.Index) string {
	if i.Type == "" {
		return string(core.IndexTypeBTree)
	}
	return strings.ToUpper(string(i.Type))
}

func formatIndexColumns(cols []core.IndexColumn) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
		if c.Length > 0 {
			names[i] += "(" + strconv.Itoa(c.Length) + ")"
		}
	}
	return "(" + strings.Join(names, ", ") + ")"
}

func indexKey(i *core.Index) string {
	name := strings.ToLower(strings.TrimSpace(i.Name))
	if name != "" {
		return name
	}
	uniq := "0"
	if i.Unique {
		uniq = "1"
	}
	cols := make([]string, len(i.Columns))
	for idx, c := range i.Columns {
		cols[idx] = strings.ToLower(c.Name)
	}
	return "idx:" + uniq + ":" + strings.ToLower(string(i.Type)) + ":" + strings.Join(cols, ",")
}
