package core

import (
	"fmt"
	"strings"
)

// LockedOverride is a hand-authored table override that is still collecting
// definitions. It only offers write access: reading columns back before every
// variant contributed would expose an incomplete picture, so the read
// accessors exist on UnlockedOverride alone.
type LockedOverride struct {
	table *Table
}

// UnlockedOverride is the finalized view of an override, obtained through
// LockedOverride.Unlock.
type UnlockedOverride struct {
	table *Table
}

// NewOverride returns a locked override for the named table.
func NewOverride(tableName string) *LockedOverride {
	return &LockedOverride{table: NewTable(tableName)}
}

// TableName returns the name of the overridden table.
func (o *LockedOverride) TableName() string {
	return o.table.Name
}

// AddColumn stores a copy of c, replacing a same-named column.
func (o *LockedOverride) AddColumn(c *Column) error {
	if c == nil || strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("override %q: column: %w", o.table.Name, ErrInvalidName)
	}
	if !IsKnownType(c.Type) {
		return fmt.Errorf("override %q: column %q type %q: %w", o.table.Name, c.Name, c.Type, ErrInvalidType)
	}
	o.table.SetColumn(c.Clone())
	return nil
}

// SetPrimaryKey sets the primary key columns of the override.
func (o *LockedOverride) SetPrimaryKey(columns ...string) error {
	if len(columns) == 0 {
		return fmt.Errorf("override %q: primary key without columns: %w", o.table.Name, ErrInvalidName)
	}
	o.table.SetPrimaryKey(columns...)
	return nil
}

// AddIndex stores a copy of idx, replacing a same-named index.
func (o *LockedOverride) AddIndex(idx *Index) error {
	if idx == nil || strings.TrimSpace(idx.Name) == "" || len(idx.Columns) == 0 {
		return fmt.Errorf("override %q: index: %w", o.table.Name, ErrInvalidName)
	}
	o.table.SetIndex(idx.Clone())
	return nil
}

// AddForeignKey stores a copy of fk, replacing a same-named foreign key.
func (o *LockedOverride) AddForeignKey(fk *Constraint) error {
	if fk == nil || strings.TrimSpace(fk.Name) == "" || len(fk.Columns) == 0 || fk.ReferencedTable == "" {
		return fmt.Errorf("override %q: foreign key: %w", o.table.Name, ErrInvalidName)
	}
	c := fk.Clone()
	c.Type = ConstraintForeignKey
	o.table.SetConstraint(c)
	return nil
}

// SetOption sets a free-form table option such as ENGINE.
func (o *LockedOverride) SetOption(key, value string) {
	o.table.Options[key] = value
}

// Unlock finalizes the override and returns its readable view. The locked
// handle stays valid and shares state with the returned view.
func (o *LockedOverride) Unlock() *UnlockedOverride {
	return &UnlockedOverride{table: o.table}
}

// Column returns the named column or nil.
func (o *UnlockedOverride) Column(name string) *Column {
	return o.table.FindColumn(name)
}

// HasColumn reports whether the override defines the named column.
func (o *UnlockedOverride) HasColumn(name string) bool {
	return o.table.HasColumn(name)
}

// Columns returns the override columns in insertion order.
func (o *UnlockedOverride) Columns() []*Column {
	return o.table.Columns
}

// DropColumn removes the named column from the override.
func (o *UnlockedOverride) DropColumn(name string) bool {
	return o.table.DropColumn(name)
}

// PrimaryKeyColumns returns the primary key columns, or nil.
func (o *UnlockedOverride) PrimaryKeyColumns() []string {
	if pk := o.table.PrimaryKey(); pk != nil {
		return pk.Columns
	}
	return nil
}

// Table returns a copy of the override as a table.
func (o *UnlockedOverride) Table() *Table {
	return o.table.Clone()
}
