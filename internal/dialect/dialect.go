// Package dialect provides a unified interface for the SQL dialects the
// synthesizer can parse baseline schemas from and render diff tables to.
package dialect

import (
	"fmt"
	"slices"
	"strings"

	"schemasynth/internal/core"
)

type Type string

const (
	MySQL   Type = "mysql"
	MariaDB Type = "mariadb"
)

// Generator renders tables as dialect-correct DDL.
type Generator interface {
	GenerateCreateTable(table *core.Table) (string, error)
	QuoteIdentifier(name string) string
	QuoteString(value string) string
}

// Parser interface is used to parse SQL statements into a database schema.
type Parser interface {
	Parse(sql string) (*core.Database, error)
}

// Dialect interface creates a way to interact with a specific SQL dialect.
type Dialect interface {
	Name() Type
	Generator() Generator
	Parser() Parser
}

var registry = map[Type]func() Dialect{}

// RegisterDialect creates a new registry entry for the specified dialect.
func RegisterDialect(d Type, ctor func() Dialect) {
	registry[d] = ctor
}

// GetDialect returns the dialect for the specified type from the registry.
func GetDialect(d Type) (Dialect, error) {
	ctor, ok := registry[Type(strings.ToLower(string(d)))]
	if !ok {
		return nil, fmt.Errorf("unsupported dialect %q (registered: %s)", d, strings.Join(Registered(), ", "))
	}
	return ctor(), nil
}

// Registered returns the names of all registered dialects, sorted.
func Registered() []string {
	names := make([]string, 0, len(registry))
	for d := range registry {
		names = append(names, string(d))
	}
	slices.Sort(names)
	return names
}
