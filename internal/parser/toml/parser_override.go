package toml

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"schemasynth/internal/core"
)

// tomlOverride maps [[overrides]].
type tomlOverride struct {
	Table       string            `toml:"table"`
	PrimaryKey  []string          `toml:"primary_key"`
	Options     map[string]string `toml:"options"`
	Columns     []tomlColumn      `toml:"columns"`
	Indexes     []tomlIndex       `toml:"indexes"`
	ForeignKeys []tomlForeignKey  `toml:"foreign_keys"`
}

// tomlIndex maps [[overrides.indexes]]. A column may carry a prefix length,
// e.g. "title(20)".
type tomlIndex struct {
	Name    string   `toml:"name"`
	Columns []string `toml:"columns"`
	Unique  bool     `toml:"unique"`
	Type    string   `toml:"type"`
}

// tomlForeignKey maps [[overrides.foreign_keys]]. References is either
// "table.column", or just "table" when ReferencedColumns is set.
type tomlForeignKey struct {
	Name              string   `toml:"name"`
	Columns           []string `toml:"columns"`
	References        string   `toml:"references"`
	ReferencedColumns []string `toml:"referenced_columns"`
	OnDelete          string   `toml:"on_delete"`
	OnUpdate          string   `toml:"on_update"`
}

var reIndexColumn = regexp.MustCompile(`^\s*([^()\s]+)\s*(?:\(\s*(\d+)\s*\))?\s*$`)

func convertOverride(to *tomlOverride) (Override, error) {
	if err := validateName("table", to.Table); err != nil {
		return Override{}, err
	}
	o := Override{
		Table:      strings.TrimSpace(to.Table),
		PrimaryKey: to.PrimaryKey,
		Options:    to.Options,
	}

	for i := range to.Columns {
		col, err := convertColumn(&to.Columns[i], true)
		if err != nil {
			return Override{}, fmt.Errorf("table %q: %w", o.Table, err)
		}
		o.Columns = append(o.Columns, col)
	}

	for i := range to.Indexes {
		idx, err := convertIndex(&to.Indexes[i])
		if err != nil {
			return Override{}, fmt.Errorf("table %q: %w", o.Table, err)
		}
		o.Indexes = append(o.Indexes, idx)
	}

	for i := range to.ForeignKeys {
		fk, err := convertForeignKey(&to.ForeignKeys[i])
		if err != nil {
			return Override{}, fmt.Errorf("table %q: %w", o.Table, err)
		}
		o.ForeignKeys = append(o.ForeignKeys, fk)
	}

	return o, nil
}

func convertIndex(ti *tomlIndex) (*core.Index, error) {
	if err := validateName("index", ti.Name); err != nil {
		return nil, err
	}
	if len(ti.Columns) == 0 {
		return nil, fmt.Errorf("index %q has no columns", ti.Name)
	}

	idx := &core.Index{Name: strings.TrimSpace(ti.Name), Unique: ti.Unique}
	switch t := core.IndexType(strings.ToUpper(strings.TrimSpace(ti.Type))); t {
	case "", core.IndexTypeBTree:
	case core.IndexTypeFullText, core.IndexTypeSpatial:
		idx.Type = t
	default:
		return nil, fmt.Errorf("index %q: unknown type %q", ti.Name, ti.Type)
	}

	for _, raw := range ti.Columns {
		ic, err := parseIndexColumn(raw)
		if err != nil {
			return nil, fmt.Errorf("index %q: %w", ti.Name, err)
		}
		idx.Columns = append(idx.Columns, ic)
	}
	return idx, nil
}

func parseIndexColumn(raw string) (core.IndexColumn, error) {
	m := reIndexColumn.FindStringSubmatch(raw)
	if m == nil {
		return core.IndexColumn{}, fmt.Errorf("invalid index column %q", raw)
	}
	ic := core.IndexColumn{Name: m[1]}
	if m[2] != "" {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return core.IndexColumn{}, fmt.Errorf("invalid index column %q: %w", raw, err)
		}
		ic.Length = n
	}
	return ic, nil
}

func convertForeignKey(tf *tomlForeignKey) (*core.Constraint, error) {
	if err := validateName("foreign key", tf.Name); err != nil {
		return nil, err
	}
	if len(tf.Columns) == 0 {
		return nil, fmt.Errorf("foreign key %q has no columns", tf.Name)
	}

	refTable, refColumns := strings.TrimSpace(tf.References), tf.ReferencedColumns
	if len(refColumns) == 0 {
		table, column, ok := core.ParseReferences(tf.References)
		if !ok {
			return nil, fmt.Errorf("foreign key %q: invalid references %q: expected format \"table.column\"", tf.Name, tf.References)
		}
		refTable, refColumns = table, []string{column}
	}
	if refTable == "" {
		return nil, fmt.Errorf("foreign key %q: references is empty", tf.Name)
	}
	if len(refColumns) != len(tf.Columns) {
		return nil, fmt.Errorf("foreign key %q: %d columns reference %d columns", tf.Name, len(tf.Columns), len(refColumns))
	}

	onDelete, err := core.ParseReferentialAction(tf.OnDelete)
	if err != nil {
		return nil, fmt.Errorf("foreign key %q: on_delete: %w", tf.Name, err)
	}
	onUpdate, err := core.ParseReferentialAction(tf.OnUpdate)
	if err != nil {
		return nil, fmt.Errorf("foreign key %q: on_update: %w", tf.Name, err)
	}

	return &core.Constraint{
		Name:              strings.TrimSpace(tf.Name),
		Type:              core.ConstraintForeignKey,
		Columns:           tf.Columns,
		ReferencedTable:   refTable,
		ReferencedColumns: refColumns,
		OnDelete:          onDelete,
		OnUpdate:          onUpdate,
	}, nil
}
