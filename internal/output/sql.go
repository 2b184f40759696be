package output

import (
	"fmt"
	"strings"

	"schemasynth/internal/core"
	"schemasynth/internal/dialect"
)

type sqlFormatter struct {
	gen dialect.Generator
}

// Format renders one CREATE TABLE statement per table, each preceded by a
// header comment. Tables the generator renders as empty text are skipped.
func (f sqlFormatter) Format(tables []*core.Table) (string, error) {
	var sb strings.Builder
	for _, t := range tables {
		if t == nil {
			continue
		}
		stmt, err := f.gen.GenerateCreateTable(t)
		if err != nil {
			return "", fmt.Errorf("table %s: %w", t.Name, err)
		}
		stmt = normalizeStatement(stmt)
		if stmt == "" {
			continue
		}
		writeHeader(&sb, t)
		sb.WriteString(stmt)
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}

func writeHeader(sb *strings.Builder, t *core.Table) {
	sb.WriteString("--\n")
	if t.IsNew {
		fmt.Fprintf(sb, "-- Table structure for table '%s'\n", t.Name)
	} else {
		fmt.Fprintf(sb, "-- Changes for table '%s'\n", t.Name)
	}
	sb.WriteString("--\n")
}
