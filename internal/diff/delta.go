package diff

import (
	"strings"

	"schemasynth/internal/core"
)

// MinimalColumn is the single column a new table without any configured
// columns is created with.
func MinimalColumn() *core.Column {
	return &core.Column{Name: "uid", Type: "int", Length: 11}
}

// Calculate decides what has to be emitted for one table. baseline is nil
// when the table did not exist before. hasVariants reports whether any
// variant contributed to combined.
//
// The result is a synthetic diff table holding only the delta, or nil when
// nothing has to be emitted. A new table is always emitted.
func Calculate(baseline, combined *core.Table, hasVariants bool) *core.Table {
	isNew := baseline == nil

	if isNew && !hasVariants {
		if len(combined.Columns) == 0 {
			return minimalTable(combined)
		}
		out := combined.Clone()
		out.IsNew = true
		return out
	}

	old := baseline
	if isNew {
		old = core.NewTable(combined.Name)
	}

	td := Compare(old, combined)
	if td.IsEmpty() {
		if isNew {
			return minimalTable(combined)
		}
		return nil
	}

	return buildDiffTable(combined, td, isNew)
}

func minimalTable(combined *core.Table) *core.Table {
	out := combined.Shell()
	out.IsNew = true
	out.Columns = []*core.Column{MinimalColumn()}
	return out
}

// buildDiffTable copies the added and changed elements of combined into a
// fresh table, keeping the column order of combined.
func buildDiffTable(combined *core.Table, td *TableDiff, isNew bool) *core.Table {
	out := core.NewTable(combined.Name)
	if isNew {
		out = combined.Shell()
	}
	out.IsNew = isNew

	changed := make(map[string]struct{}, len(td.AddedColumns)+len(td.ModifiedColumns))
	for _, c := range td.AddedColumns {
		changed[strings.ToLower(c.Name)] = struct{}{}
	}
	for _, mc := range td.ModifiedColumns {
		changed[strings.ToLower(mc.Name)] = struct{}{}
	}
	for _, c := range combined.Columns {
		if _, ok := changed[strings.ToLower(c.Name)]; ok {
			out.Columns = append(out.Columns, c.Clone())
		}
	}

	for _, c := range td.AddedConstraints {
		out.Constraints = append(out.Constraints, c.Clone())
	}
	for _, cc := range td.ModifiedConstraints {
		out.Constraints = append(out.Constraints, cc.New.Clone())
	}
	for _, i := range td.AddedIndexes {
		out.Indexes = append(out.Indexes, i.Clone())
	}
	for _, ic := range td.ModifiedIndexes {
		out.Indexes = append(out.Indexes, ic.New.Clone())
	}

	return out
}
