package merge

import (
	"maps"

	"schemasynth/internal/core"
	"schemasynth/internal/diff"
)

// MergeVariants folds variants, in order, into a copy of combined.
func MergeVariants(combined *core.Table, variants []*core.Table) *core.Table {
	out := combined.Clone()
	for _, v := range variants {
		out = MergeVariant(out, v)
	}
	return out
}

// MergeVariant folds a single variant into a copy of combined. Columns the
// variant does not mention are kept; columns only the variant has are
// appended; columns on both sides go through ResolveColumn. Added or changed
// indexes and foreign keys are copied as-is.
func MergeVariant(combined, variant *core.Table) *core.Table {
	out := combined.Clone()
	td := diff.Compare(combined, variant)

	for _, c := range td.AddedColumns {
		out.SetColumn(c.Clone())
	}
	for _, mc := range td.ModifiedColumns {
		out.SetColumn(ResolveColumn(mc.Old, mc.New))
	}

	for _, c := range td.AddedConstraints {
		out.SetConstraint(c.Clone())
	}
	for _, cc := range td.ModifiedConstraints {
		out.SetConstraint(cc.New.Clone())
	}
	for _, i := range td.AddedIndexes {
		out.SetIndex(i.Clone())
	}
	for _, ic := range td.ModifiedIndexes {
		out.SetIndex(ic.New.Clone())
	}

	maps.Copy(out.Options, variant.Options)
	return out
}
