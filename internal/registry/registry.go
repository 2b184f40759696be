// Package registry collects per-context column requirements for tables and
// turns them into the DDL delta against a baseline schema.
//
// A Registry is one dump cycle. The baseline is loaded on first use and kept
// until Clear is called. Registries are not safe for concurrent use.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"schemasynth/internal/baseline"
	"schemasynth/internal/core"
	"schemasynth/internal/dialect"
	"schemasynth/internal/diff"
	"schemasynth/internal/logging"
	"schemasynth/internal/merge"
	"schemasynth/internal/naming"
	"schemasynth/internal/output"
)

// OverrideVariant is the variant name reserved for table overrides.
const OverrideVariant = "__override"

// TableFilter may replace the diff table computed for a table, or cancel
// its emission by returning nil. original is the merged table.
type TableFilter func(original, diff *core.Table) *core.Table

// Registry owns the baseline and every registered variant.
type Registry struct {
	dialect dialect.Dialect
	source  baseline.Source
	logger  *slog.Logger
	format  string

	tableFilters     []TableFilter
	statementFilters []output.StatementFilter

	def *Definition
}

// Option configures a Registry.
type Option func(*Registry)

// WithBaseline sets the source the baseline schema is read from.
func WithBaseline(src baseline.Source) Option {
	return func(r *Registry) { r.source = src }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithFormat selects the output format of Dump, see output.NewFormatter.
func WithFormat(format string) Option {
	return func(r *Registry) { r.format = format }
}

// New returns a registry that parses the baseline and renders DDL with d.
func New(d dialect.Dialect, opts ...Option) *Registry {
	r := &Registry{
		dialect: d,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Definition returns the state of the current cycle, loading the baseline
// if needed.
func (r *Registry) Definition(ctx context.Context) (*Definition, error) {
	if r.def != nil {
		return r.def, nil
	}
	db, err := baseline.Load(ctx, r.source, r.dialect.Parser())
	if err != nil {
		return nil, err
	}
	r.logger.Debug("baseline loaded", "tables", len(db.Tables))
	r.def = newDefinition(db)
	return r.def, nil
}

// Loaded reports whether the baseline has been loaded in this cycle.
func (r *Registry) Loaded() bool {
	return r.def != nil
}

// GetColumn returns the column field of variant of table, creating table,
// variant and column as needed. A new column starts as a copy of the first
// same-named column of a sibling variant, or as a fallback column. The
// returned column belongs to the variant and is meant to be configured in
// place by the caller.
func (r *Registry) GetColumn(ctx context.Context, table, variantName, field string) (*core.Column, error) {
	if err := checkNames(table, variantName, field); err != nil {
		return nil, err
	}
	if strings.EqualFold(variantName, OverrideVariant) {
		return nil, fmt.Errorf("table %s: variant %q: %w", table, variantName, core.ErrReservedVariant)
	}

	def, err := r.Definition(ctx)
	if err != nil {
		return nil, err
	}

	e := def.entry(table)
	v := e.variant(variantName, def.Baseline(table))
	if c := v.table.FindColumn(field); c != nil {
		return c, nil
	}

	c := core.NewFallbackColumn(field)
	if s := e.sibling(v, field); s != nil {
		c = s.Clone()
		c.Name = field
	}
	v.table.Columns = append(v.table.Columns, c)
	return c, nil
}

// GetTableOverride returns the locked override of table, creating it on
// first access.
func (r *Registry) GetTableOverride(ctx context.Context, table string) (*core.LockedOverride, error) {
	if err := checkNames(table); err != nil {
		return nil, err
	}
	def, err := r.Definition(ctx)
	if err != nil {
		return nil, err
	}
	e := def.entry(table)
	if e.override == nil {
		e.override = core.NewOverride(e.name)
	}
	return e.override, nil
}

// PrepareTableName shortens base, with an optional suffix, to a name that
// fits the identifier budget. See naming.PrepareTableName.
func (r *Registry) PrepareTableName(base, suffix string) string {
	return naming.PrepareTableName(base, suffix)
}

// Clear drops the baseline and every registered table.
func (r *Registry) Clear() {
	r.def = nil
}

// ClearTable drops the variants and the override of one table. The
// baseline stays loaded.
func (r *Registry) ClearTable(name string) {
	if r.def != nil {
		r.def.drop(name)
	}
}

// OnTable registers a per-table filter. Filters run in registration order.
func (r *Registry) OnTable(f TableFilter) {
	r.tableFilters = append(r.tableFilters, f)
}

// OnStatements registers a filter over the final output. Filters run in
// registration order.
func (r *Registry) OnStatements(f output.StatementFilter) {
	r.statementFilters = append(r.statementFilters, f)
}

// Dump merges every registered table and renders the delta against the
// baseline. It returns "" when the baseline was never loaded.
func (r *Registry) Dump(ctx context.Context) (string, error) {
	if r.def == nil {
		return "", nil
	}

	tables, err := r.DiffTables(ctx)
	if err != nil {
		return "", err
	}

	f, err := output.NewFormatter(r.format, r.dialect.Generator())
	if err != nil {
		return "", err
	}
	text, err := output.NewEmitter(f, r.statementFilter()).Emit(tables)
	if err != nil {
		return "", fmt.Errorf("dump: %w", err)
	}
	return text, nil
}

// DiffTables returns the diff table of every registered table that has
// something to emit, in registration order.
func (r *Registry) DiffTables(ctx context.Context) ([]*core.Table, error) {
	def, err := r.Definition(ctx)
	if err != nil {
		return nil, err
	}

	var out []*core.Table
	for _, e := range def.tables {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		combined, dt, err := r.synthesize(def, e)
		if err != nil {
			return nil, err
		}
		for _, f := range r.tableFilters {
			if dt == nil {
				break
			}
			dt = f(combined, dt)
		}
		if dt == nil {
			r.logger.Debug("table unchanged", "table", e.name)
			continue
		}
		r.logger.Debug("table changed",
			"table", e.name,
			"new", dt.IsNew,
			"columns", len(dt.Columns),
			"indexes", len(dt.Indexes),
		)
		out = append(out, dt)
	}
	return out, nil
}

// Combined returns the merged table for name, or nil when it is not
// registered.
func (r *Registry) Combined(ctx context.Context, name string) (*core.Table, error) {
	def, err := r.Definition(ctx)
	if err != nil {
		return nil, err
	}
	e := def.lookup(name)
	if e == nil {
		return nil, nil
	}
	combined, _, err := r.synthesize(def, e)
	if err != nil {
		return nil, err
	}
	return combined, nil
}

func (r *Registry) synthesize(def *Definition, e *tableEntry) (combined, dt *core.Table, err error) {
	if err := e.checkTypes(); err != nil {
		return nil, nil, err
	}
	base := def.Baseline(e.name)

	start := core.NewTable(e.name)
	if base != nil {
		start = base.Clone()
	}
	start.IsNew = base == nil

	variants := e.variantTables()
	combined = merge.MergeVariants(start, variants)
	combined = merge.ApplyOverride(combined, e.override)
	combined = merge.StripFallback(combined)

	if base != nil {
		base = merge.StripFallback(base)
	}
	return combined, diff.Calculate(base, combined, len(variants) > 0), nil
}

func (r *Registry) statementFilter() output.StatementFilter {
	if len(r.statementFilters) == 0 {
		return nil
	}
	filters := r.statementFilters
	return func(names []string, text string) string {
		for _, f := range filters {
			text = f(names, text)
		}
		return text
	}
}

func checkNames(names ...string) error {
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			return fmt.Errorf("empty name: %w", core.ErrInvalidName)
		}
	}
	return nil
}
