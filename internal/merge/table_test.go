package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemasynth/internal/core"
)

func baseline() *core.Table {
	t := core.NewTable("t")
	t.Columns = []*core.Column{
		{Name: "uid", Type: "int", Length: 11, AutoIncrement: true},
		{Name: "title", Type: "varchar", Length: 255},
	}
	t.SetPrimaryKey("uid")
	return t
}

func variant(cols ...*core.Column) *core.Table {
	v := core.NewTable("t")
	v.Columns = cols
	return v
}

func TestMergeVariantsScenario(t *testing.T) {
	a := variant(&core.Column{Name: "title", Type: "varchar", Length: 512, Nullable: true})
	b := variant(
		core.NewFallbackColumn("title"),
		&core.Column{Name: "subtitle", Type: "varchar", Length: 100},
	)

	got := MergeVariants(baseline(), []*core.Table{a, b})

	require.Len(t, got.Columns, 3)
	title := got.FindColumn("title")
	assert.Equal(t, 512, title.Length)
	assert.True(t, title.Nullable)
	assert.Equal(t, "varchar", title.Type)
	assert.Equal(t, "subtitle", got.Columns[2].Name)
	assert.Equal(t, []string{"uid"}, got.PrimaryKey().Columns, "missing primary key in a variant is not a removal")
}

func TestMergeVariantKeepsColumnsTheVariantOmits(t *testing.T) {
	base := baseline()
	v := variant(&core.Column{Name: "bodytext", Type: "text", Nullable: true})

	got := MergeVariant(base, v)

	names := make([]string, len(got.Columns))
	for i, c := range got.Columns {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"uid", "title", "bodytext"}, names)
	assert.Equal(t, base.FindColumn("title"), got.FindColumn("title"))
	assert.Len(t, v.Columns, 1, "the variant is not back-filled")
}

func TestMergeVariantsDoesNotMutateInputs(t *testing.T) {
	base := baseline()
	v := variant(&core.Column{Name: "title", Type: "varchar", Length: 512})

	got := MergeVariants(base, []*core.Table{v})
	got.FindColumn("title").Length = 1
	got.FindColumn("uid").Comment = "changed"

	assert.Equal(t, 255, base.FindColumn("title").Length)
	assert.Equal(t, 512, v.FindColumn("title").Length)
	assert.Empty(t, base.FindColumn("uid").Comment)
}

func TestMergeVariantsIsDeterministic(t *testing.T) {
	variants := []*core.Table{
		variant(&core.Column{Name: "flag", Type: "boolean"}),
		variant(&core.Column{Name: "flag", Type: "int", Length: 11}, &core.Column{Name: "x", Type: "text"}),
	}
	first := MergeVariants(baseline(), variants)
	second := MergeVariants(baseline(), variants)
	assert.Equal(t, first, second)
	assert.Equal(t, DefaultFallbackType, first.FindColumn("flag").Type)
}

func TestMergeVariantOrderIndependentLength(t *testing.T) {
	short := variant(&core.Column{Name: "slug", Type: "varchar", Length: 255})
	long := variant(&core.Column{Name: "slug", Type: "varchar", Length: 512})
	empty := core.NewTable("t")

	ab := MergeVariants(empty, []*core.Table{short, long})
	ba := MergeVariants(empty, []*core.Table{long, short})
	assert.Equal(t, 512, ab.FindColumn("slug").Length)
	assert.Equal(t, 512, ba.FindColumn("slug").Length)
}

func TestMergeVariantCopiesIndexesAndOptions(t *testing.T) {
	v := variant(&core.Column{Name: "pid", Type: "int"})
	v.Indexes = []*core.Index{{Name: "parent", Columns: []core.IndexColumn{{Name: "pid"}}}}
	v.Constraints = []*core.Constraint{{
		Name: "fk_parent", Type: core.ConstraintForeignKey, Columns: []string{"pid"},
		ReferencedTable: "t", ReferencedColumns: []string{"uid"},
	}}
	v.Options["ENGINE"] = "InnoDB"

	got := MergeVariant(baseline(), v)
	require.NotNil(t, got.FindIndex("parent"))
	require.Len(t, got.ForeignKeys(), 1)
	assert.Equal(t, "InnoDB", got.Options["ENGINE"])
	assert.NotNil(t, got.PrimaryKey())

	got.FindIndex("parent").Columns[0].Name = "other"
	assert.Equal(t, "pid", v.Indexes[0].Columns[0].Name)
}
