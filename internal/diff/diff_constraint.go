package diff

import (
	"strings"

	"schemasynth/internal/core"
)

func compareConstraints(oldItems, newItems []*core.Constraint, td *TableDiff) {
	oldMap := mapByKey(oldItems, constraintKey)
	newMap := mapByKey(newItems, constraintKey)

	for _, newItem := range newItems {
		key := constraintKey(newItem)
		if newMap[key] != newItem {
			continue
		}
		oldItem, exists := oldMap[key]
		if !exists {
			td.AddedConstraints = append(td.AddedConstraints, newItem)
			continue
		}
		if !equalConstraint(oldItem, newItem) {
			td.ModifiedConstraints = append(td.ModifiedConstraints, &ConstraintChange{
				Name:    newItem.Name,
				Old:     oldItem,
				New:     newItem,
				Changes: constraintFieldChanges(oldItem, newItem),
			})
		}
	}

	for _, oldItem := range oldItems {
		if _, exists := newMap[constraintKey(oldItem)]; !exists {
			td.RemovedConstraints = append(td.RemovedConstraints, oldItem)
		}
	}
}

func equalConstraint(a, b *core.Constraint) bool {
	if a.Type != b.Type {
		return false
	}
	if !equalStringSliceCI(a.Columns, b.Columns) {
		return false
	}
	if !strings.EqualFold(a.ReferencedTable, b.ReferencedTable) {
		return false
	}
	if !equalStringSliceCI(a.ReferencedColumns, b.ReferencedColumns) {
		return false
	}
	return normAction(a.OnDelete) == normAction(b.OnDelete) &&
		normAction(a.OnUpdate) == normAction(b.OnUpdate)
}

// MySQL treats a missing referential action as RESTRICT.
func normAction(a core.ReferentialAction) core.ReferentialAction {
	switch a {
	case core.RefActionNone, core.RefActionNoAction:
		return core.RefActionRestrict
	default:
		return a
	}
}

// constraintKey keys the primary key by type, since a table has at most one.
func constraintKey(c *core.Constraint) string {
	if c.Type == core.ConstraintPrimaryKey {
		return "pk"
	}
	name := strings.ToLower(strings.TrimSpace(c.Name))
	if name != "" {
		return name
	}
	var sb strings.Builder
	sb.Grow(32)
	sb.WriteString(strings.ToLower(string(c.Type)))
	sb.WriteByte(':')
	for i, col := range c.Columns {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strings.ToLower(col))
	}
	return sb.String()
}

func constraintFieldChanges(oldC, newC *core.Constraint) []*FieldChange {
	c := &fieldChangeCollector{}

	c.Add("type", string(oldC.Type), string(newC.Type))
	if !equalStringSliceCI(oldC.Columns, newC.Columns) {
		c.Add("columns", formatNameList(oldC.Columns), formatNameList(newC.Columns))
	}
	c.Add("referenced_table", strings.ToLower(oldC.ReferencedTable), strings.ToLower(newC.ReferencedTable))
	if !equalStringSliceCI(oldC.ReferencedColumns, newC.ReferencedColumns) {
		c.Add("referenced_columns", formatNameList(oldC.ReferencedColumns), formatNameList(newC.ReferencedColumns))
	}
	c.Add("on_delete", string(normAction(oldC.OnDelete)), string(normAction(newC.OnDelete)))
	c.Add("on_update", string(normAction(oldC.OnUpdate)), string(normAction(newC.OnUpdate)))

	return c.Changes
}
