// Package diff compares two descriptions of the same table and builds the
// synthetic diff table that holds only the delta to be emitted.
package diff

import (
	"schemasynth/internal/core"
)

// TableDiff represents the differences between two tables.
//
// Removed elements are reported for diagnostics only. Synthesis never emits
// them, so a column missing from the newer table is not a removal request.
type TableDiff struct {
	Name                string
	Warnings            []string `json:"warnings,omitempty"`
	AddedColumns        []*core.Column
	RemovedColumns      []*core.Column
	ModifiedColumns     []*ColumnChange
	AddedConstraints    []*core.Constraint
	RemovedConstraints  []*core.Constraint
	ModifiedConstraints []*ConstraintChange
	AddedIndexes        []*core.Index
	RemovedIndexes      []*core.Index
	ModifiedIndexes     []*IndexChange
}

// ColumnChange is a before/after pair of one column.
type ColumnChange struct {
	Name    string
	Old     *core.Column
	New     *core.Column
	Changes []*FieldChange
}

// ConstraintChange represents a constraint difference between old table and new table.
type ConstraintChange struct {
	Name    string
	Old     *core.Constraint
	New     *core.Constraint
	Changes []*FieldChange
}

// IndexChange represents the differences between indexes of old table and new table.
type IndexChange struct {
	Name    string
	Old     *core.Index
	New     *core.Index
	Changes []*FieldChange
}

// FieldChange represents the differences between two fields.
type FieldChange struct {
	Field string
	Old   string
	New   string
}

// Compare computes the structural difference between oldT and newT. Added
// and changed elements keep the order in which they appear in newT.
func Compare(oldT, newT *core.Table) *TableDiff {
	td := &TableDiff{Name: newT.Name}

	compareColumns(oldT.Columns, newT.Columns, td)
	compareConstraints(oldT.Constraints, newT.Constraints, td)
	compareIndexes(oldT.Indexes, newT.Indexes, td)

	return td
}

// IsEmpty reports whether nothing was added or changed. Removals do not count.
func (td *TableDiff) IsEmpty() bool {
	return len(td.AddedColumns) == 0 &&
		len(td.ModifiedColumns) == 0 &&
		len(td.AddedConstraints) == 0 &&
		len(td.ModifiedConstraints) == 0 &&
		len(td.AddedIndexes) == 0 &&
		len(td.ModifiedIndexes) == 0
}

// ModifiedColumn returns the change recorded for the named column, or nil.
func (td *TableDiff) ModifiedColumn(name string) *ColumnChange {
	for _, mc := range td.ModifiedColumns {
		if equalFoldTrim(mc.Name, name) {
			return mc
		}
	}
	return nil
}
