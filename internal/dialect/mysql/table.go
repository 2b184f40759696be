package mysql

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"schemasynth/internal/core"
)

// leadingOptions are rendered first, in this order. Every other option
// follows sorted by name.
var leadingOptions = []string{"ENGINE", "CHARSET", "COLLATE", "ROW_FORMAT", "AUTO_INCREMENT"}

var optionAliases = map[string]string{
	"DEFAULT CHARSET":       "CHARSET",
	"CHARACTER SET":         "CHARSET",
	"DEFAULT CHARACTER SET": "CHARSET",
	"DEFAULT COLLATE":       "COLLATE",
}

// reValidOptionName matches only safe MySQL table option names (alphanumeric and underscores).
var reValidOptionName = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// NormalizeOptionName maps a table option name to the key the generator
// expects, e.g. "default charset" -> "CHARSET".
func NormalizeOptionName(name string) string {
	n := strings.Join(strings.Fields(strings.ToUpper(name)), " ")
	if alias, ok := optionAliases[n]; ok {
		return alias
	}
	return n
}

func (g *Generator) tableOptions(t *core.Table) string {
	opts := make(map[string]string, len(t.Options))
	for k, v := range t.Options {
		if v = strings.TrimSpace(v); v != "" {
			opts[NormalizeOptionName(k)] = v
		}
	}

	var parts []string
	for _, name := range leadingOptions {
		if v, ok := opts[name]; ok {
			parts = append(parts, g.tableOption(name, v))
			delete(opts, name)
		}
	}

	rest := make([]string, 0, len(opts))
	for name := range opts {
		rest = append(rest, name)
	}
	slices.Sort(rest)
	for _, name := range rest {
		if name == "COMMENT" || !reValidOptionName.MatchString(name) {
			continue
		}
		parts = append(parts, g.tableOption(name, opts[name]))
	}

	comment := strings.TrimSpace(t.Comment)
	if comment == "" {
		comment = opts["COMMENT"]
	}
	if comment != "" {
		parts = append(parts, "COMMENT="+g.QuoteString(comment))
	}

	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

func (g *Generator) tableOption(name, value string) string {
	switch name {
	case "ENGINE", "COLLATE", "ROW_FORMAT":
		return name + "=" + value
	case "CHARSET":
		return "DEFAULT CHARSET=" + value
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return name + "=" + value
	}
	return name + "=" + g.QuoteString(value)
}

func (g *Generator) columnDefinition(c *core.Column) string {
	parts := []string{g.QuoteIdentifier(c.Name), c.TypeString()}
	parts = g.addCharsetCollation(parts, c)
	parts = g.addNullability(parts, c)
	parts = g.addDefault(parts, c)
	if c.AutoIncrement {
		parts = append(parts, "AUTO_INCREMENT")
	}
	if comment := strings.TrimSpace(c.Comment); comment != "" {
		parts = append(parts, "COMMENT", g.QuoteString(comment))
	}
	return strings.Join(parts, " ")
}

func (g *Generator) addNullability(parts []string, c *core.Column) []string {
	if c.Nullable {
		return append(parts, "NULL")
	}
	return append(parts, "NOT NULL")
}

func (g *Generator) addCharsetCollation(parts []string, c *core.Column) []string {
	if !supportsCharsetCollation(c.Type) {
		return parts
	}
	if cs := strings.TrimSpace(c.Charset); cs != "" {
		parts = append(parts, "CHARACTER SET", cs)
	}
	if coll := strings.TrimSpace(c.Collate); coll != "" {
		parts = append(parts, "COLLATE", coll)
	}
	return parts
}

func (g *Generator) primaryKeyDefinition(pk *core.Constraint) string {
	return "PRIMARY KEY " + g.formatColumns(pk.Columns)
}

func (g *Generator) indexDefinitionInline(idx *core.Index) string {
	cols := g.formatIndexColumns(idx.Columns)
	name := strings.TrimSpace(idx.Name)
	if name == "" || len(idx.Columns) == 0 {
		return ""
	}

	typ := strings.ToUpper(strings.TrimSpace(string(idx.Type)))
	switch {
	case idx.Unique:
		return fmt.Sprintf("UNIQUE KEY %s %s", g.QuoteIdentifier(name), cols)
	case typ == string(core.IndexTypeFullText):
		return fmt.Sprintf("FULLTEXT KEY %s %s", g.QuoteIdentifier(name), cols)
	case typ == string(core.IndexTypeSpatial):
		return fmt.Sprintf("SPATIAL KEY %s %s", g.QuoteIdentifier(name), cols)
	default:
		return fmt.Sprintf("KEY %s %s", g.QuoteIdentifier(name), cols)
	}
}

func (g *Generator) foreignKeyDefinition(c *core.Constraint) string {
	if len(c.Columns) == 0 || strings.TrimSpace(c.ReferencedTable) == "" {
		return ""
	}
	var sb strings.Builder
	sb.Grow(128)
	if name := strings.TrimSpace(c.Name); name != "" {
		sb.WriteString("CONSTRAINT ")
		sb.WriteString(g.QuoteIdentifier(name))
		sb.WriteString(" ")
	}
	sb.WriteString("FOREIGN KEY ")
	sb.WriteString(g.formatColumns(c.Columns))
	sb.WriteString(" REFERENCES ")
	sb.WriteString(g.QuoteIdentifier(c.ReferencedTable))
	sb.WriteString(" ")
	sb.WriteString(g.formatColumns(c.ReferencedColumns))
	if del := strings.TrimSpace(string(c.OnDelete)); del != "" {
		sb.WriteString(" ON DELETE ")
		sb.WriteString(del)
	}
	if upd := strings.TrimSpace(string(c.OnUpdate)); upd != "" {
		sb.WriteString(" ON UPDATE ")
		sb.WriteString(upd)
	}
	return sb.String()
}
