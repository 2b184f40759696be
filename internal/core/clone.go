package core

import (
	"maps"
	"slices"
	"strings"
)

// NewFallbackColumn returns a requested but not yet configured column.
func NewFallbackColumn(name string) *Column {
	return &Column{Name: name, Type: FallbackType, Nullable: true}
}

// IsFallback reports whether the column still carries the placeholder type.
func (c *Column) IsFallback() bool {
	return NormalizeType(c.Type) == FallbackType
}

// Clone returns a deep copy of the column.
func (c *Column) Clone() *Column {
	if c == nil {
		return nil
	}
	out := *c
	out.Values = slices.Clone(c.Values)
	if c.DefaultValue != nil {
		v := *c.DefaultValue
		out.DefaultValue = &v
	}
	return &out
}

// Clone returns a deep copy of the constraint.
func (c *Constraint) Clone() *Constraint {
	if c == nil {
		return nil
	}
	out := *c
	out.Columns = slices.Clone(c.Columns)
	out.ReferencedColumns = slices.Clone(c.ReferencedColumns)
	return &out
}

// Clone returns a deep copy of the index.
func (i *Index) Clone() *Index {
	if i == nil {
		return nil
	}
	out := *i
	out.Columns = slices.Clone(i.Columns)
	return &out
}

// Clone returns a deep copy of the table. Nothing is shared with the
// receiver, so the copy can be modified freely.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := t.Shell()
	out.Columns = make([]*Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		out.Columns = append(out.Columns, c.Clone())
	}
	for _, c := range t.Constraints {
		out.Constraints = append(out.Constraints, c.Clone())
	}
	for _, i := range t.Indexes {
		out.Indexes = append(out.Indexes, i.Clone())
	}
	return out
}

// Shell returns a copy of the table's name, comment and options without any
// columns, indexes or constraints.
func (t *Table) Shell() *Table {
	out := NewTable(t.Name)
	out.Comment = t.Comment
	out.IsNew = t.IsNew
	maps.Copy(out.Options, t.Options)
	return out
}

// SetColumn replaces the same-named column in place, or appends c.
func (t *Table) SetColumn(c *Column) {
	for i, existing := range t.Columns {
		if strings.EqualFold(existing.Name, c.Name) {
			t.Columns[i] = c
			return
		}
	}
	t.Columns = append(t.Columns, c)
}

// DropColumn removes the named column. It reports whether a column was removed.
func (t *Table) DropColumn(name string) bool {
	for i, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			t.Columns = slices.Delete(t.Columns, i, i+1)
			return true
		}
	}
	return false
}

// SetIndex replaces the same-named index in place, or appends idx.
func (t *Table) SetIndex(idx *Index) {
	for i, existing := range t.Indexes {
		if strings.EqualFold(existing.Name, idx.Name) {
			t.Indexes[i] = idx
			return
		}
	}
	t.Indexes = append(t.Indexes, idx)
}

// SetConstraint replaces the same-named constraint (or the primary key) in
// place, or appends c.
func (t *Table) SetConstraint(c *Constraint) {
	for i, existing := range t.Constraints {
		samePK := c.Type == ConstraintPrimaryKey && existing.Type == ConstraintPrimaryKey
		if samePK || (existing.Type == c.Type && strings.EqualFold(existing.Name, c.Name)) {
			t.Constraints[i] = c
			return
		}
	}
	t.Constraints = append(t.Constraints, c)
}

// SetPrimaryKey sets the primary key to the given columns.
func (t *Table) SetPrimaryKey(columns ...string) {
	t.SetConstraint(&Constraint{
		Name:    PrimaryKeyName,
		Type:    ConstraintPrimaryKey,
		Columns: slices.Clone(columns),
	})
}

// DropPrimaryKey removes the primary key, if any.
func (t *Table) DropPrimaryKey() {
	t.Constraints = slices.DeleteFunc(t.Constraints, func(c *Constraint) bool {
		return c.Type == ConstraintPrimaryKey
	})
}

// MergeTable folds src into a copy of dst wholesale: columns, primary key,
// indexes, foreign keys and options of src replace same-named elements of
// dst, everything else is appended. Neither argument is modified.
func MergeTable(dst, src *Table) *Table {
	out := dst.Clone()
	if src == nil {
		return out
	}
	for _, c := range src.Columns {
		out.SetColumn(c.Clone())
	}
	for _, c := range src.Constraints {
		out.SetConstraint(c.Clone())
	}
	for _, i := range src.Indexes {
		out.SetIndex(i.Clone())
	}
	maps.Copy(out.Options, src.Options)
	if src.Comment != "" {
		out.Comment = src.Comment
	}
	return out
}
