package diff

import (
	"fmt"
	"strings"
)

// String returns a human-readable summary of the table differences.
func (td *TableDiff) String() string {
	if td.IsEmpty() && len(td.RemovedColumns) == 0 && len(td.RemovedIndexes) == 0 && len(td.RemovedConstraints) == 0 {
		return "No differences detected."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Table %s:\n", td.Name)

	if len(td.Warnings) > 0 {
		sb.WriteString("  Warnings:\n")
		for _, w := range td.Warnings {
			w = strings.TrimSpace(w)
			if w == "" {
				continue
			}
			fmt.Fprintf(&sb, "    - %s\n", w)
		}
	}

	if len(td.AddedColumns) > 0 {
		sb.WriteString("  Added columns:\n")
		for _, ac := range td.AddedColumns {
			fmt.Fprintf(&sb, "    - %s: %s\n", ac.Name, ac.TypeString())
		}
	}

	if len(td.RemovedColumns) > 0 {
		sb.WriteString("  Missing columns (not emitted):\n")
		for _, rc := range td.RemovedColumns {
			fmt.Fprintf(&sb, "    - %s: %s\n", rc.Name, rc.TypeString())
		}
	}

	if len(td.ModifiedColumns) > 0 {
		sb.WriteString("  Modified columns:\n")
		for _, mc := range td.ModifiedColumns {
			fmt.Fprintf(&sb, "    - %s:\n", mc.Name)
			writeFieldChanges(&sb, mc.Changes)
		}
	}

	if len(td.AddedConstraints) > 0 {
		sb.WriteString("  Added constraints:\n")
		for _, c := range td.AddedConstraints {
			fmt.Fprintf(&sb, "    - %s (%s)\n", c.Name, c.Type)
		}
	}

	if len(td.ModifiedConstraints) > 0 {
		sb.WriteString("  Modified constraints:\n")
		for _, mc := range td.ModifiedConstraints {
			name := mc.Name
			if name == "" {
				name = string(mc.New.Type)
			}
			fmt.Fprintf(&sb, "    - %s:\n", name)
			writeFieldChanges(&sb, mc.Changes)
		}
	}

	if len(td.AddedIndexes) > 0 {
		sb.WriteString("  Added indexes:\n")
		for _, idx := range td.AddedIndexes {
			fmt.Fprintf(&sb, "    - %s %s\n", idx.Name, formatIndexColumns(idx.Columns))
		}
	}

	if len(td.ModifiedIndexes) > 0 {
		sb.WriteString("  Modified indexes:\n")
		for _, mi := range td.ModifiedIndexes {
			name := mi.Name
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Fprintf(&sb, "    - %s:\n", name)
			writeFieldChanges(&sb, mi.Changes)
		}
	}

	return sb.String()
}

func writeFieldChanges(sb *strings.Builder, changes []*FieldChange) {
	for _, fc := range changes {
		fmt.Fprintf(sb, "      - %s: %q -> %q\n", fc.Field, fc.Old, fc.New)
	}
}
