package registry

import (
	"context"

	"schemasynth/internal/core"
)

// JunctionVariant is the variant a junction table's columns live in.
const JunctionVariant = "junction"

// RegisterMMTable registers the fixed-shape many-to-many junction table name
// unless a table of that name already exists in the baseline or the
// registry. The name is shortened to the identifier budget first and the
// final name is returned.
func (r *Registry) RegisterMMTable(ctx context.Context, name string) (string, error) {
	if err := checkNames(name); err != nil {
		return "", err
	}
	name = r.PrepareTableName(name, "")

	def, err := r.Definition(ctx)
	if err != nil {
		return "", err
	}
	if def.Exists(name) {
		return name, nil
	}

	e := def.entry(name)
	v := e.variant(JunctionVariant, nil)
	v.table = junctionTable(name)
	r.logger.Debug("junction table registered", "table", name)
	return name, nil
}

func junctionTable(name string) *core.Table {
	intCol := func(n string) *core.Column {
		def := "0"
		return &core.Column{Name: n, Type: "int", Length: 11, DefaultValue: &def}
	}
	strCol := func(n string) *core.Column {
		def := ""
		return &core.Column{Name: n, Type: "varchar", Length: 64, DefaultValue: &def}
	}

	t := core.NewTable(name)
	t.Columns = []*core.Column{
		{Name: "uid", Type: "int", Length: 11, AutoIncrement: true},
		intCol("uid_local"),
		intCol("uid_foreign"),
		strCol("tablenames"),
		strCol("fieldname"),
		intCol("sorting"),
		intCol("sorting_foreign"),
	}
	t.SetPrimaryKey("uid")
	t.Indexes = []*core.Index{
		{Name: "uid_local", Columns: []core.IndexColumn{{Name: "uid_local"}}},
		{Name: "uid_foreign", Columns: []core.IndexColumn{{Name: "uid_foreign"}}},
	}
	return t
}
