// Package merge folds independently contributed table variants into one
// combined table. Every function returns new values and leaves its inputs
// untouched.
package merge

import (
	"slices"

	"schemasynth/internal/core"
)

// DefaultFallbackType is the type an unresolvable column falls back to.
const DefaultFallbackType = "mediumtext"

// DefaultFallback returns c configured as a generic nullable text column
// without a default value.
func DefaultFallback(c *core.Column) *core.Column {
	return &core.Column{
		Name:     c.Name,
		Type:     DefaultFallbackType,
		Nullable: true,
		Comment:  c.Comment,
	}
}

// ResolveColumn merges candidate into target and returns the resolved column.
//
// A Fallback candidate never overwrites a concrete target. A concrete
// candidate replaces a Fallback target. Otherwise the candidate's attributes
// win, the larger length wins, and a type conflict is resolved through the
// binding priority: the candidate type is adopted only when it widens the
// target, anything else yields the default fallback configuration.
func ResolveColumn(target, candidate *core.Column) *core.Column {
	if candidate.IsFallback() {
		if target.IsFallback() {
			return DefaultFallback(target)
		}
		return target.Clone()
	}
	if target.IsFallback() {
		out := candidate.Clone()
		out.Name = target.Name
		return out
	}

	out := target.Clone()
	out.Nullable = candidate.Nullable
	out.DefaultValue = nil
	if candidate.DefaultValue != nil {
		v := *candidate.DefaultValue
		out.DefaultValue = &v
	}
	out.AutoIncrement = candidate.AutoIncrement
	out.Unsigned = candidate.Unsigned
	out.Comment = candidate.Comment
	out.Charset = candidate.Charset
	out.Collate = candidate.Collate

	if out.Length == 0 || candidate.Length > out.Length {
		out.Length = candidate.Length
	}
	if candidate.Scale > out.Scale {
		out.Scale = candidate.Scale
	}
	if len(candidate.Values) > 0 {
		out.Values = slices.Clone(candidate.Values)
	}

	if core.NormalizeType(target.Type) == core.NormalizeType(candidate.Type) {
		return out
	}
	return resolveType(out, target, candidate)
}

func resolveType(out, target, candidate *core.Column) *core.Column {
	tb, cb := core.BindingOf(target), core.BindingOf(candidate)

	if tb == core.BindingString && cb == core.BindingString && core.IsTextType(candidate.Type) {
		return DefaultFallback(out)
	}
	if cb > tb && canWiden(tb, cb) {
		out.Type = candidate.Type
		out.Length = candidate.Length
		out.Scale = candidate.Scale
		out.Values = slices.Clone(candidate.Values)
		return out
	}
	return DefaultFallback(out)
}

// canWiden reports whether a column bound as from may adopt a type bound as
// the higher binding to. Boolean and integer flags are not interchangeable,
// so that pair never widens.
func canWiden(from, to core.Binding) bool {
	return from != core.BindingBoolean || to != core.BindingInteger
}
