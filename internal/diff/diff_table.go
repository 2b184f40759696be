package diff

import (
	"slices"
	"strconv"
	"strings"

	"schemasynth/internal/core"
)

func compareColumns(oldItems, newItems []*core.Column, td *TableDiff) {
	oldMap, oldCollisions := mapColumnsByName(oldItems)
	newMap, newCollisions := mapColumnsByName(newItems)
	for _, c := range oldCollisions {
		td.Warnings = append(td.Warnings, "old table columns: "+c)
	}
	for _, c := range newCollisions {
		td.Warnings = append(td.Warnings, "new table columns: "+c)
	}

	for _, newItem := range newItems {
		key := strings.ToLower(newItem.Name)
		if newMap[key] != newItem {
			continue
		}
		oldItem, exists := oldMap[key]
		if !exists {
			td.AddedColumns = append(td.AddedColumns, newItem)
			continue
		}
		if !EqualColumn(oldItem, newItem) {
			td.ModifiedColumns = append(td.ModifiedColumns, &ColumnChange{
				Name:    newItem.Name,
				Old:     oldItem,
				New:     newItem,
				Changes: columnFieldChanges(oldItem, newItem),
			})
		}
	}

	for _, oldItem := range oldItems {
		if _, exists := newMap[strings.ToLower(oldItem.Name)]; !exists {
			td.RemovedColumns = append(td.RemovedColumns, oldItem)
		}
	}
}

// EqualColumn reports whether two columns have the same definition.
func EqualColumn(a, b *core.Column) bool {
	return len(columnFieldChanges(a, b)) == 0
}

func columnFieldChanges(oldC, newC *core.Column) []*FieldChange {
	c := &fieldChangeCollector{}

	c.Add("type", core.NormalizeType(oldC.Type), core.NormalizeType(newC.Type))
	c.Add("length", strconv.Itoa(oldC.Length), strconv.Itoa(newC.Length))
	c.Add("scale", strconv.Itoa(oldC.Scale), strconv.Itoa(newC.Scale))
	c.Add("unsigned", strconv.FormatBool(oldC.Unsigned), strconv.FormatBool(newC.Unsigned))
	if !slices.Equal(oldC.Values, newC.Values) {
		c.Add("values", formatNameList(oldC.Values), formatNameList(newC.Values))
	}
	c.Add("nullable", strconv.FormatBool(oldC.Nullable), strconv.FormatBool(newC.Nullable))
	c.Add("auto_increment", strconv.FormatBool(oldC.AutoIncrement), strconv.FormatBool(newC.AutoIncrement))
	if !ptrEq(oldC.DefaultValue, newC.DefaultValue) {
		c.Add("default", ptrDisplay(oldC.DefaultValue), ptrDisplay(newC.DefaultValue))
	}
	c.Add("comment", oldC.Comment, newC.Comment)
	c.Add("charset", strings.ToLower(strings.TrimSpace(oldC.Charset)), strings.ToLower(strings.TrimSpace(newC.Charset)))
	c.Add("collate", strings.ToLower(strings.TrimSpace(oldC.Collate)), strings.ToLower(strings.TrimSpace(newC.Collate)))

	return c.Changes
}
