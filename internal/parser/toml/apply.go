package toml

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"schemasynth/internal/registry"
)

// Apply replays the contributions against reg: junction tables first, then
// variants, then overrides, each in document order.
func (c *Contributions) Apply(ctx context.Context, reg *registry.Registry) error {
	for _, name := range c.Junctions {
		if _, err := reg.RegisterMMTable(ctx, name); err != nil {
			return fmt.Errorf("junction %q: %w", name, err)
		}
	}

	for _, v := range c.Variants {
		if err := applyVariant(ctx, reg, v); err != nil {
			return err
		}
	}

	for _, o := range c.Overrides {
		if err := applyOverride(ctx, reg, o); err != nil {
			return err
		}
	}
	return nil
}

func applyVariant(ctx context.Context, reg *registry.Registry, v Variant) error {
	for _, want := range v.Columns {
		col, err := reg.GetColumn(ctx, v.Table, v.Name, want.Name)
		if err != nil {
			return fmt.Errorf("table %q variant %q: %w", v.Table, v.Name, err)
		}
		if want.Type == "" {
			continue
		}
		name := col.Name
		*col = *want.Clone()
		col.Name = name
	}
	return nil
}

func applyOverride(ctx context.Context, reg *registry.Registry, o Override) error {
	lo, err := reg.GetTableOverride(ctx, o.Table)
	if err != nil {
		return fmt.Errorf("override %q: %w", o.Table, err)
	}

	for _, c := range o.Columns {
		if err := lo.AddColumn(c); err != nil {
			return err
		}
	}
	if len(o.PrimaryKey) > 0 {
		if err := lo.SetPrimaryKey(o.PrimaryKey...); err != nil {
			return err
		}
	}
	for _, idx := range o.Indexes {
		if err := lo.AddIndex(idx); err != nil {
			return err
		}
	}
	for _, fk := range o.ForeignKeys {
		if err := lo.AddForeignKey(fk); err != nil {
			return err
		}
	}
	for _, k := range slices.Sorted(maps.Keys(o.Options)) {
		lo.SetOption(k, o.Options[k])
	}
	return nil
}
