package mysql

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"schemasynth/internal/core"
)

// valueFamily groups column types by how MySQL reads a DEFAULT literal.
type valueFamily int

const (
	familyOther valueFamily = iota
	familyText
	familyNumeric
	familyTemporal
)

func familyOf(typ string) valueFamily {
	switch core.NormalizeType(typ) {
	case "char", "varchar", "tinytext", "text", "mediumtext", "longtext", "enum", "set":
		return familyText
	case "boolean", "tinyint", "smallint", "mediumint", "int", "bigint", "bit", "decimal", "float", "double":
		return familyNumeric
	case "date", "datetime", "timestamp", "time", "year":
		return familyTemporal
	default:
		return familyOther
	}
}

func supportsCharsetCollation(typ string) bool {
	return familyOf(typ) == familyText
}

// reTemporalKeyword matches CURRENT_TIMESTAMP and its synonyms, with an
// optional fractional seconds precision.
var reTemporalKeyword = regexp.MustCompile(`^(?i:CURRENT_TIMESTAMP|CURRENT_DATE|CURRENT_TIME|NOW|LOCALTIME|LOCALTIMESTAMP)(\(\s*\d*\s*\))?$`)

var reBitLiteral = regexp.MustCompile(`^(?i:b'[01]*'|0x[0-9a-f]+)$`)

func (g *Generator) addDefault(parts []string, c *core.Column) []string {
	if c.DefaultValue == nil {
		return parts
	}
	return append(parts, "DEFAULT", g.defaultLiteral(c.Type, *c.DefaultValue))
}

// defaultLiteral renders v as a DEFAULT value of a column of type typ.
// Text columns always get a quoted string, so "00" stays a string and
// "NULL" stays the four letters. Expression defaults in parentheses are
// passed through unchanged for every other type.
func (g *Generator) defaultLiteral(typ, v string) string {
	family := familyOf(typ)
	if family == familyText {
		return g.QuoteString(v)
	}

	v = strings.TrimSpace(v)
	upper := strings.ToUpper(v)
	switch {
	case upper == "NULL":
		return upper
	case strings.HasPrefix(v, "(") && strings.HasSuffix(v, ")"):
		return v
	}

	switch family {
	case familyNumeric:
		if upper == "TRUE" || upper == "FALSE" {
			return upper
		}
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			return v
		}
		if reBitLiteral.MatchString(v) {
			return v
		}
	case familyTemporal:
		if reTemporalKeyword.MatchString(v) {
			return upper
		}
	}
	return g.QuoteString(v)
}

func (g *Generator) formatColumns(cols []string) string {
	parts := make([]core.IndexColumn, len(cols))
	for i, c := range cols {
		parts[i] = core.IndexColumn{Name: c}
	}
	return g.formatIndexColumns(parts)
}

// formatIndexColumns renders a parenthesized column list, appending prefix
// lengths where set. Blank names are skipped.
func (g *Generator) formatIndexColumns(cols []core.IndexColumn) string {
	var sb strings.Builder
	sb.WriteByte('(')
	n := 0
	for _, c := range cols {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		if n > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(g.QuoteIdentifier(name))
		if c.Length > 0 {
			fmt.Fprintf(&sb, "(%d)", c.Length)
		}
		n++
	}
	sb.WriteByte(')')
	return sb.String()
}
