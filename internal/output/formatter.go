// Package output turns the diff tables of a dump into text. It provides two
// formats: SQL DDL rendered by a dialect generator, and JSON.
package output

import (
	"fmt"
	"strings"

	"schemasynth/internal/core"
	"schemasynth/internal/dialect"
)

// Format is an enum type representing the available output formats.
type Format string

const (
	FormatSQL  Format = "sql"
	FormatJSON Format = "json"
)

// Formatter renders a list of diff tables.
type Formatter interface {
	Format(tables []*core.Table) (string, error)
}

// NewFormatter creates a new Formatter instance based on the given name.
// If no format is specified, defaults to SQL format. The SQL format needs a
// generator.
func NewFormatter(name string, gen dialect.Generator) (Formatter, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	switch format {
	case "", FormatSQL:
		if gen == nil {
			return nil, fmt.Errorf("format %s: no generator", FormatSQL)
		}
		return sqlFormatter{gen: gen}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s; use 'sql' or 'json'", name)
	}
}

// StatementFilter may rewrite the complete output before it is returned.
// tableNames lists every table handed to the emitter, in order.
type StatementFilter func(tableNames []string, text string) string

// Emitter renders diff tables with a Formatter and runs the result through
// an optional StatementFilter.
type Emitter struct {
	formatter Formatter
	filter    StatementFilter
}

// NewEmitter returns an emitter. filter may be nil.
func NewEmitter(f Formatter, filter StatementFilter) *Emitter {
	return &Emitter{formatter: f, filter: filter}
}

// Emit renders tables. A formatter error aborts the whole emission.
func (e *Emitter) Emit(tables []*core.Table) (string, error) {
	text, err := e.formatter.Format(tables)
	if err != nil {
		return "", err
	}
	if e.filter == nil {
		return text, nil
	}
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}
	return e.filter(names, text), nil
}

func normalizeStatement(stmt string) string {
	stmt = strings.TrimSpace(stmt)
	if stmt == "" {
		return ""
	}
	if !strings.HasSuffix(stmt, ";") {
		stmt += ";"
	}
	return stmt
}
