// Package core contains the single source of truth for a table description.
// It provides a structured representation of tables, columns, indexes and
// constraints that every stage of schema synthesis (parsing, merging,
// diffing and DDL generation) operates on.
package core

import (
	"fmt"
	"strings"
)

// Dialect identifies a supported SQL dialect.
type Dialect string

const (
	DialectMySQL   Dialect = "mysql"
	DialectMariaDB Dialect = "mariadb"
)

// SupportedDialects returns a slice of all supported dialect values.
func SupportedDialects() []Dialect {
	return []Dialect{DialectMySQL, DialectMariaDB}
}

// IsValidDialect reports whether d is a recognized dialect string.
func IsValidDialect(d string) bool {
	for _, supported := range SupportedDialects() {
		if strings.EqualFold(string(supported), d) {
			return true
		}
	}
	return false
}

// Database is a name-keyed set of tables, e.g. a parsed baseline schema.
type Database struct {
	Name   string
	Tables []*Table
}

// Table represents a table in the schema.
//
// Columns keep their insertion order, which is observable in emitted DDL.
// IsNew is derived during synthesis: it is true when no baseline table of
// the same name existed.
type Table struct {
	Name        string            `json:"name"`
	Columns     []*Column         `json:"columns"`
	Constraints []*Constraint     `json:"constraints,omitempty"`
	Indexes     []*Index          `json:"indexes,omitempty"`
	Comment     string            `json:"comment,omitempty"`
	Options     map[string]string `json:"options,omitempty"`
	IsNew       bool              `json:"isNew,omitempty"`
}

// Column represents a single column inside a table.
//
// A column whose Type is FallbackType exists but is not configured yet.
// Length zero means the length is unspecified.
type Column struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Length        int      `json:"length,omitempty"`
	Scale         int      `json:"scale,omitempty"`
	Unsigned      bool     `json:"unsigned,omitempty"`
	Values        []string `json:"values,omitempty"`
	Nullable      bool     `json:"nullable"`
	AutoIncrement bool     `json:"autoIncrement,omitempty"`
	DefaultValue  *string  `json:"defaultValue,omitempty"`
	Comment       string   `json:"comment,omitempty"`
	Charset       string   `json:"charset,omitempty"`
	Collate       string   `json:"collate,omitempty"`
}

// Constraint holds a primary key or foreign key of a table.
type Constraint struct {
	Name    string         `json:"name,omitempty"`
	Type    ConstraintType `json:"type"`
	Columns []string       `json:"columns"`

	ReferencedTable   string            `json:"referencedTable,omitempty"`
	ReferencedColumns []string          `json:"referencedColumns,omitempty"`
	OnDelete          ReferentialAction `json:"onDelete,omitempty"`
	OnUpdate          ReferentialAction `json:"onUpdate,omitempty"`
}

// ConstraintType is an ENUM with all possible constraint types.
type ConstraintType string

const (
	ConstraintPrimaryKey ConstraintType = "PRIMARY KEY"
	ConstraintForeignKey ConstraintType = "FOREIGN KEY"
)

// PrimaryKeyName is the name MySQL reports for every primary key.
const PrimaryKeyName = "PRIMARY"

// ReferentialAction is an ENUM with all possible referential actions.
type ReferentialAction string

const (
	RefActionNone       ReferentialAction = ""
	RefActionCascade    ReferentialAction = "CASCADE"
	RefActionRestrict   ReferentialAction = "RESTRICT"
	RefActionSetNull    ReferentialAction = "SET NULL"
	RefActionSetDefault ReferentialAction = "SET DEFAULT"
	RefActionNoAction   ReferentialAction = "NO ACTION"
)

// ParseReferentialAction maps a textual action to a ReferentialAction.
func ParseReferentialAction(s string) (ReferentialAction, error) {
	switch a := ReferentialAction(strings.ToUpper(strings.TrimSpace(s))); a {
	case RefActionNone, RefActionCascade, RefActionRestrict, RefActionSetNull, RefActionSetDefault, RefActionNoAction:
		return a, nil
	default:
		return RefActionNone, fmt.Errorf("unknown referential action %q", s)
	}
}

// Index contains all index options.
type Index struct {
	Name    string        `json:"name,omitempty"`
	Columns []IndexColumn `json:"columns"`
	Unique  bool          `json:"unique,omitempty"`
	Type    IndexType     `json:"type,omitempty"`
}

// IndexColumn is one column of an index, with an optional prefix length.
type IndexColumn struct {
	Name   string `json:"name"`
	Length int    `json:"length,omitempty"`
}

// IndexType is an ENUM with all possible index types.
type IndexType string

const (
	IndexTypeBTree    IndexType = "BTREE"
	IndexTypeFullText IndexType = "FULLTEXT"
	IndexTypeSpatial  IndexType = "SPATIAL"
)

// NewTable returns an empty table shell.
func NewTable(name string) *Table {
	return &Table{Name: name, Options: map[string]string{}}
}

// FindTable looks for a table by name inside a database.
func (db *Database) FindTable(name string) *Table {
	for _, t := range db.Tables {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return nil
}

// FindColumn looks for a column by name inside a table.
func (t *Table) FindColumn(name string) *Column {
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	return t.FindColumn(name) != nil
}

// FindConstraint looks for a constraint by name inside a table.
func (t *Table) FindConstraint(name string) *Constraint {
	for _, c := range t.Constraints {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

// FindIndex looks for an index by name inside a table.
func (t *Table) FindIndex(name string) *Index {
	for _, i := range t.Indexes {
		if strings.EqualFold(i.Name, name) {
			return i
		}
	}
	return nil
}

// PrimaryKey returns the primary key constraint of the table.
func (t *Table) PrimaryKey() *Constraint {
	for _, c := range t.Constraints {
		if c.Type == ConstraintPrimaryKey {
			return c
		}
	}
	return nil
}

// ForeignKeys returns the foreign key constraints of the table in declaration order.
func (t *Table) ForeignKeys() []*Constraint {
	var fks []*Constraint
	for _, c := range t.Constraints {
		if c.Type == ConstraintForeignKey {
			fks = append(fks, c)
		}
	}
	return fks
}

// Names returns the names of the columns in the index.
func (i *Index) Names() []string {
	names := make([]string, len(i.Columns))
	for idx, col := range i.Columns {
		names[idx] = col.Name
	}
	return names
}

// String returns a string representation of a table.
func (t *Table) String() string {
	return fmt.Sprintf("Table: %s (%d cols, %d constraints, %d indexes)",
		t.Name, len(t.Columns), len(t.Constraints), len(t.Indexes))
}

// ParseReferences splits a "table.column" reference string into its two parts.
// It returns ("", "", false) if the format is invalid.
func ParseReferences(ref string) (table, column string, ok bool) {
	ref = strings.TrimSpace(ref)
	dot := strings.LastIndex(ref, ".")
	if dot <= 0 || dot >= len(ref)-1 {
		return "", "", false
	}
	return ref[:dot], ref[dot+1:], true
}
