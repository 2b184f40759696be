package registry

import (
	"fmt"
	"strings"

	"schemasynth/internal/core"
)

// Definition is the state of one dump cycle: the baseline tables, the names
// of tables the baseline does not know, and every registered table with its
// variants in registration order.
type Definition struct {
	baseline *core.Database
	isNew    map[string]bool
	tables   []*tableEntry
	index    map[string]*tableEntry
}

type tableEntry struct {
	name     string
	variants []*variant
	override *core.LockedOverride
}

type variant struct {
	name  string
	table *core.Table
}

func newDefinition(baseline *core.Database) *Definition {
	return &Definition{
		baseline: baseline,
		isNew:    map[string]bool{},
		index:    map[string]*tableEntry{},
	}
}

// Baseline returns the baseline table with the given name, or nil.
func (d *Definition) Baseline(name string) *core.Table {
	return d.baseline.FindTable(name)
}

// BaselineTables returns all baseline tables in declaration order.
func (d *Definition) BaselineTables() []*core.Table {
	return d.baseline.Tables
}

// IsNew reports whether the named table was registered without a baseline
// counterpart.
func (d *Definition) IsNew(name string) bool {
	return d.isNew[strings.ToLower(name)]
}

// Tables returns the names of the registered tables in registration order.
func (d *Definition) Tables() []string {
	names := make([]string, len(d.tables))
	for i, e := range d.tables {
		names[i] = e.name
	}
	return names
}

// Exists reports whether a table of that name is in the baseline or was
// registered.
func (d *Definition) Exists(name string) bool {
	return d.lookup(name) != nil || d.Baseline(name) != nil
}

func (d *Definition) lookup(name string) *tableEntry {
	return d.index[strings.ToLower(name)]
}

func (d *Definition) entry(name string) *tableEntry {
	key := strings.ToLower(name)
	if e, ok := d.index[key]; ok {
		return e
	}
	e := &tableEntry{name: name}
	d.index[key] = e
	d.tables = append(d.tables, e)
	d.isNew[key] = d.Baseline(name) == nil
	return e
}

func (d *Definition) drop(name string) {
	key := strings.ToLower(name)
	e, ok := d.index[key]
	if !ok {
		return
	}
	delete(d.index, key)
	delete(d.isNew, key)
	for i, t := range d.tables {
		if t == e {
			d.tables = append(d.tables[:i], d.tables[i+1:]...)
			break
		}
	}
}

// variant returns the named variant, creating an empty shell of the table
// when absent.
func (e *tableEntry) variant(name string, shellOf *core.Table) *variant {
	for _, v := range e.variants {
		if strings.EqualFold(v.name, name) {
			return v
		}
	}
	t := core.NewTable(e.name)
	if shellOf != nil {
		t = shellOf.Shell()
	}
	v := &variant{name: name, table: t}
	e.variants = append(e.variants, v)
	return v
}

// sibling returns the first column of that name defined by another variant.
func (e *tableEntry) sibling(except *variant, column string) *core.Column {
	for _, v := range e.variants {
		if v == except {
			continue
		}
		if c := v.table.FindColumn(column); c != nil {
			return c
		}
	}
	return nil
}

func (e *tableEntry) variantTables() []*core.Table {
	out := make([]*core.Table, len(e.variants))
	for i, v := range e.variants {
		out[i] = v.table
	}
	return out
}

// checkTypes rejects variant columns whose type was set to something the
// dialect does not know, e.g. through a column returned by GetColumn.
func (e *tableEntry) checkTypes() error {
	for _, v := range e.variants {
		for _, c := range v.table.Columns {
			if !core.IsKnownType(c.Type) {
				return fmt.Errorf("table %s: variant %q: column %q type %q: %w", e.name, v.name, c.Name, c.Type, core.ErrInvalidType)
			}
		}
	}
	return nil
}
