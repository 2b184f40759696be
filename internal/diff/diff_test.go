package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemasynth/internal/core"
)

func strPtr(s string) *string { return &s }

func baselineTable() *core.Table {
	t := core.NewTable("t")
	t.Columns = []*core.Column{
		{Name: "uid", Type: "int", Length: 11, AutoIncrement: true},
		{Name: "title", Type: "varchar", Length: 255},
		{Name: "hidden", Type: "tinyint", Length: 4, DefaultValue: strPtr("0")},
	}
	t.SetPrimaryKey("uid")
	t.Indexes = []*core.Index{{Name: "title", Columns: []core.IndexColumn{{Name: "title"}}}}
	return t
}

func TestCompareIdenticalTables(t *testing.T) {
	td := Compare(baselineTable(), baselineTable())
	assert.True(t, td.IsEmpty())
	assert.Empty(t, td.RemovedColumns)
	assert.Equal(t, "No differences detected.", td.String())
}

func TestCompareColumns(t *testing.T) {
	newT := baselineTable()
	newT.Columns[1] = &core.Column{Name: "title", Type: "varchar", Length: 512, Nullable: true}
	newT.Columns = append(newT.Columns, &core.Column{Name: "subtitle", Type: "varchar", Length: 100})
	newT.DropColumn("hidden")

	td := Compare(baselineTable(), newT)

	require.Len(t, td.AddedColumns, 1)
	assert.Equal(t, "subtitle", td.AddedColumns[0].Name)

	require.Len(t, td.ModifiedColumns, 1)
	mc := td.ModifiedColumns[0]
	assert.Equal(t, "title", mc.Name)
	assert.Equal(t, []*FieldChange{
		{Field: "length", Old: "255", New: "512"},
		{Field: "nullable", Old: "false", New: "true"},
	}, mc.Changes)

	require.Len(t, td.RemovedColumns, 1)
	assert.Equal(t, "hidden", td.RemovedColumns[0].Name)
	assert.False(t, td.IsEmpty())
	assert.Same(t, mc, td.ModifiedColumn("TITLE"))
}

func TestCompareIgnoresRemovalsForEmptiness(t *testing.T) {
	newT := baselineTable()
	newT.DropColumn("hidden")
	newT.Indexes = nil

	td := Compare(baselineTable(), newT)
	assert.True(t, td.IsEmpty())
	assert.Len(t, td.RemovedColumns, 1)
	assert.Len(t, td.RemovedIndexes, 1)
	assert.Contains(t, td.String(), "Missing columns (not emitted)")
}

func TestCompareColumnAttributes(t *testing.T) {
	base := &core.Column{Name: "c", Type: "varchar", Length: 10}
	tests := []struct {
		name  string
		mod   func(c *core.Column)
		field string
	}{
		{"type", func(c *core.Column) { c.Type = "char" }, "type"},
		{"scale", func(c *core.Column) { c.Scale = 2 }, "scale"},
		{"unsigned", func(c *core.Column) { c.Unsigned = true }, "unsigned"},
		{"values", func(c *core.Column) { c.Values = []string{"a"} }, "values"},
		{"auto increment", func(c *core.Column) { c.AutoIncrement = true }, "auto_increment"},
		{"default set", func(c *core.Column) { c.DefaultValue = strPtr("") }, "default"},
		{"comment", func(c *core.Column) { c.Comment = "x" }, "comment"},
		{"charset", func(c *core.Column) { c.Charset = "ascii" }, "charset"},
		{"collate", func(c *core.Column) { c.Collate = "utf8mb4_bin" }, "collate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := base.Clone()
			tt.mod(mod)
			changes := columnFieldChanges(base, mod)
			require.Len(t, changes, 1)
			assert.Equal(t, tt.field, changes[0].Field)
			assert.False(t, EqualColumn(base, mod))
		})
	}

	t.Run("type aliases are equal", func(t *testing.T) {
		a := &core.Column{Name: "c", Type: "INTEGER"}
		b := &core.Column{Name: "c", Type: "int"}
		assert.True(t, EqualColumn(a, b))
	})
}

func TestCompareIndexes(t *testing.T) {
	newT := baselineTable()
	newT.Indexes = []*core.Index{
		{Name: "title", Columns: []core.IndexColumn{{Name: "title", Length: 20}}},
		{Name: "hidden", Columns: []core.IndexColumn{{Name: "hidden"}}},
	}

	td := Compare(baselineTable(), newT)
	require.Len(t, td.ModifiedIndexes, 1)
	assert.Equal(t, "title", td.ModifiedIndexes[0].Name)
	assert.Equal(t, "columns", td.ModifiedIndexes[0].Changes[0].Field)
	require.Len(t, td.AddedIndexes, 1)
	assert.Equal(t, "hidden", td.AddedIndexes[0].Name)

	t.Run("btree is the default type", func(t *testing.T) {
		a := &core.Index{Name: "i", Columns: []core.IndexColumn{{Name: "a"}}}
		b := &core.Index{Name: "i", Type: core.IndexTypeBTree, Columns: []core.IndexColumn{{Name: "A"}}}
		assert.True(t, equalIndex(a, b))
	})
}

func TestCompareConstraints(t *testing.T) {
	newT := baselineTable()
	newT.SetPrimaryKey("uid", "title")
	newT.Constraints = append(newT.Constraints, &core.Constraint{
		Name: "fk_parent", Type: core.ConstraintForeignKey, Columns: []string{"uid"},
		ReferencedTable: "parent", ReferencedColumns: []string{"uid"},
	})

	td := Compare(baselineTable(), newT)
	require.Len(t, td.ModifiedConstraints, 1)
	assert.Equal(t, core.ConstraintPrimaryKey, td.ModifiedConstraints[0].New.Type)
	require.Len(t, td.AddedConstraints, 1)
	assert.Equal(t, "fk_parent", td.AddedConstraints[0].Name)

	t.Run("missing action equals restrict", func(t *testing.T) {
		a := &core.Constraint{Name: "fk", Type: core.ConstraintForeignKey, Columns: []string{"a"}, ReferencedTable: "p"}
		b := a.Clone()
		b.OnDelete = core.RefActionRestrict
		assert.True(t, equalConstraint(a, b))
		b.OnDelete = core.RefActionCascade
		assert.False(t, equalConstraint(a, b))
	})
}

func TestCompareWarnsOnCaseCollisions(t *testing.T) {
	newT := baselineTable()
	newT.Columns = append(newT.Columns, &core.Column{Name: "TITLE", Type: "text"})

	td := Compare(baselineTable(), newT)
	require.Len(t, td.Warnings, 1)
	assert.Contains(t, td.Warnings[0], "case-insensitive name collision")
	assert.Empty(t, td.AddedColumns)
}

func TestTableDiffString(t *testing.T) {
	newT := baselineTable()
	newT.Columns[1].Length = 512
	newT.Columns = append(newT.Columns, &core.Column{Name: "subtitle", Type: "varchar", Length: 100})

	out := Compare(baselineTable(), newT).String()
	assert.Contains(t, out, "Table t:")
	assert.Contains(t, out, "subtitle: varchar(100)")
	assert.Contains(t, out, `length: "255" -> "512"`)
}
