// Package mysql provides MySQL dialect support: rendering diff tables as
// CREATE TABLE statements and parsing baseline schemas.
package mysql

import (
	"fmt"
	"strings"

	"schemasynth/internal/core"
	"schemasynth/internal/dialect"
	parser "schemasynth/internal/parser/mysql"
)

func init() {
	dialect.RegisterDialect(dialect.MySQL, func() dialect.Dialect {
		return NewMySQLDialect(dialect.MySQL)
	})
	dialect.RegisterDialect(dialect.MariaDB, func() dialect.Dialect {
		return NewMySQLDialect(dialect.MariaDB)
	})
}

// Dialect represents the MySQL dialect struct, with DDL generator and parser.
// MariaDB shares the implementation.
type Dialect struct {
	name      dialect.Type
	generator *Generator
	parser    *parser.Parser
}

// NewMySQLDialect initializes a new MySQL-family dialect instance.
func NewMySQLDialect(name dialect.Type) *Dialect {
	return &Dialect{
		name:      name,
		generator: NewMySQLGenerator(),
		parser:    parser.NewParser(),
	}
}

// Name returns the name of the dialect.
func (d *Dialect) Name() dialect.Type {
	return d.name
}

// Generator returns the DDL generator for the MySQL dialect.
func (d *Dialect) Generator() dialect.Generator {
	return d.generator
}

// Parser returns the schema parser for the MySQL dialect.
func (d *Dialect) Parser() dialect.Parser {
	return d.parser
}

// Generator is a stateless struct for generating MySQL DDL.
type Generator struct{}

// NewMySQLGenerator initializes a new MySQL DDL generator instance.
func NewMySQLGenerator() *Generator {
	return &Generator{}
}

// GenerateCreateTable renders t as a single CREATE TABLE statement with
// inline keys and foreign keys. Fallback-typed columns are rejected.
func (g *Generator) GenerateCreateTable(t *core.Table) (string, error) {
	name := g.QuoteIdentifier(t.Name)

	var lines []string
	for _, c := range t.Columns {
		if c == nil {
			continue
		}
		if c.IsFallback() {
			return "", fmt.Errorf("table %s column %s: %w", t.Name, c.Name, core.ErrFallbackColumn)
		}
		lines = append(lines, "  "+g.columnDefinition(c))
	}

	if pk := t.PrimaryKey(); pk != nil && len(pk.Columns) > 0 {
		lines = append(lines, "  "+g.primaryKeyDefinition(pk))
	}

	for _, idx := range t.Indexes {
		if idx == nil {
			continue
		}
		if line := g.indexDefinitionInline(idx); line != "" {
			lines = append(lines, "  "+line)
		}
	}

	for _, fk := range t.ForeignKeys() {
		if line := g.foreignKeyDefinition(fk); line != "" {
			lines = append(lines, "  "+line)
		}
	}

	if len(lines) == 0 {
		return "", nil
	}

	return fmt.Sprintf("CREATE TABLE %s (\n%s\n)%s;", name, strings.Join(lines, ",\n"), g.tableOptions(t)), nil
}

// QuoteIdentifier is a function used for quote identification inside an SQL dialect.
func (g *Generator) QuoteIdentifier(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "`", "``")
	return "`" + name + "`"
}

// QuoteString is a function used for quote string inside an SQL dialect.
func (g *Generator) QuoteString(value string) string {
	var b strings.Builder
	b.Grow(len(value) + len(value)/10 + 2)

	b.WriteByte('\'')
	for _, char := range value {
		switch char {
		case '\'':
			b.WriteString("''")
		case '\\':
			b.WriteString(`\\`)
		case '\x00':
			b.WriteString(`\0`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\x1A':
			b.WriteString(`\Z`)
		default:
			b.WriteRune(char)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
