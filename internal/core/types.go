package core

import (
	"strconv"
	"strings"
)

// FallbackType is the placeholder type of a column that was requested but not
// configured. It must never reach a diff or emitted DDL.
const FallbackType = "fallback"

// Binding classifies the storage-level binding of a column type. The numeric
// order is the priority used to resolve type conflicts between variants.
type Binding int

const (
	BindingNull Binding = iota
	BindingBoolean
	BindingInteger
	BindingBinary
	BindingASCII
	BindingString
	BindingLargeObject
)

func (b Binding) String() string {
	switch b {
	case BindingNull:
		return "null"
	case BindingBoolean:
		return "boolean"
	case BindingInteger:
		return "integer"
	case BindingBinary:
		return "binary"
	case BindingASCII:
		return "ascii"
	case BindingString:
		return "string"
	case BindingLargeObject:
		return "large-object"
	default:
		return "unknown"
	}
}

var typeBindings = map[string]Binding{
	"boolean": BindingBoolean,

	"tinyint":   BindingInteger,
	"smallint":  BindingInteger,
	"mediumint": BindingInteger,
	"int":       BindingInteger,
	"bigint":    BindingInteger,

	"binary":    BindingBinary,
	"varbinary": BindingBinary,
	"bit":       BindingBinary,

	"char":       BindingString,
	"varchar":    BindingString,
	"tinytext":   BindingString,
	"text":       BindingString,
	"mediumtext": BindingString,
	"longtext":   BindingString,
	"enum":       BindingString,
	"set":        BindingString,
	"json":       BindingString,
	"date":       BindingString,
	"datetime":   BindingString,
	"timestamp":  BindingString,
	"time":       BindingString,
	"year":       BindingString,
	"decimal":    BindingString,
	"float":      BindingString,
	"double":     BindingString,

	"tinyblob":   BindingLargeObject,
	"blob":       BindingLargeObject,
	"mediumblob": BindingLargeObject,
	"longblob":   BindingLargeObject,
}

var typeAliases = map[string]string{
	"integer": "int",
	"bool":    "boolean",
	"dec":     "decimal",
	"numeric": "decimal",
	"fixed":   "decimal",
	"real":    "double",
}

// NormalizeType lower-cases a base type name and resolves common aliases,
// e.g. "INTEGER" -> "int".
func NormalizeType(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := typeAliases[lower]; ok {
		return alias
	}
	return lower
}

// IsKnownType reports whether name is a type the synthesizer can bind,
// including the fallback placeholder.
func IsKnownType(name string) bool {
	n := NormalizeType(name)
	if n == FallbackType {
		return true
	}
	_, ok := typeBindings[n]
	return ok
}

// IsTextType reports whether name is one of the generic text types.
func IsTextType(name string) bool {
	switch NormalizeType(name) {
	case "tinytext", "text", "mediumtext", "longtext":
		return true
	default:
		return false
	}
}

// BindingOf returns the storage binding of the column type. Character
// columns declared with the ascii charset bind as ascii strings.
func BindingOf(c *Column) Binding {
	t := NormalizeType(c.Type)
	b, ok := typeBindings[t]
	if !ok {
		return BindingNull
	}
	if b == BindingString && (t == "char" || t == "varchar") && strings.EqualFold(c.Charset, "ascii") {
		return BindingASCII
	}
	return b
}

// TypeString renders the column type with its length, scale, values and
// signedness, e.g. "varchar(255)" or "int(10) unsigned".
func (c *Column) TypeString() string {
	t := NormalizeType(c.Type)
	var sb strings.Builder
	sb.WriteString(t)
	switch {
	case len(c.Values) > 0:
		sb.WriteByte('(')
		for i, v := range c.Values {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('\'')
			sb.WriteString(strings.ReplaceAll(v, "'", "''"))
			sb.WriteByte('\'')
		}
		sb.WriteByte(')')
	case c.Length > 0 && c.Scale > 0:
		sb.WriteString("(" + strconv.Itoa(c.Length) + "," + strconv.Itoa(c.Scale) + ")")
	case c.Length > 0:
		sb.WriteString("(" + strconv.Itoa(c.Length) + ")")
	}
	if c.Unsigned {
		sb.WriteString(" unsigned")
	}
	return sb.String()
}
