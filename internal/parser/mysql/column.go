package mysql

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/pingcap/tidb/pkg/parser/ast"
	"github.com/pingcap/tidb/pkg/parser/format"
	tmysql "github.com/pingcap/tidb/pkg/parser/mysql"

	"schemasynth/internal/core"
)

var reCompactType = regexp.MustCompile(`^\s*([a-z0-9_]+)\s*(?:\(([^)]*)\))?`)

func (p *Parser) parseColumns(cols []*ast.ColumnDef, table *core.Table) error {
	for _, colDef := range cols {
		col, err := newColumnFromDef(colDef)
		if err != nil {
			return err
		}
		for _, opt := range colDef.Options {
			p.applyColumnOption(table, col, opt)
		}
		table.Columns = append(table.Columns, col)
	}
	return nil
}

func newColumnFromDef(colDef *ast.ColumnDef) (*core.Column, error) {
	col := &core.Column{
		Name:     colDef.Name.Name.O,
		Nullable: true,
	}
	if colDef.Tp == nil {
		return nil, fmt.Errorf("column %s without type: %w", col.Name, core.ErrInvalidType)
	}

	compact := strings.ToLower(colDef.Tp.CompactStr())
	m := reCompactType.FindStringSubmatch(compact)
	if m == nil {
		return nil, fmt.Errorf("column %s type %q: %w", col.Name, compact, core.ErrInvalidType)
	}
	col.Type = core.NormalizeType(m[1])

	switch col.Type {
	case "enum", "set":
		col.Values = slices.Clone(colDef.Tp.GetElems())
	default:
		col.Length, col.Scale = parseTypeArgs(m[2])
	}

	col.Unsigned = tmysql.HasUnsignedFlag(colDef.Tp.GetFlag())
	if cs := colDef.Tp.GetCharset(); cs != "" && cs != "binary" {
		col.Charset = cs
	}
	if coll := colDef.Tp.GetCollate(); coll != "" && coll != "binary" {
		col.Collate = coll
	}
	return col, nil
}

func parseTypeArgs(args string) (length, scale int) {
	if args == "" {
		return 0, 0
	}
	parts := strings.SplitN(args, ",", 2)
	length, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	if len(parts) == 2 {
		scale, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return max(length, 0), max(scale, 0)
}

func (p *Parser) applyColumnOption(table *core.Table, col *core.Column, opt *ast.ColumnOption) {
	if opt == nil {
		return
	}

	switch opt.Tp {
	case ast.ColumnOptionNotNull:
		col.Nullable = false
	case ast.ColumnOptionNull:
		col.Nullable = true
	case ast.ColumnOptionPrimaryKey:
		col.Nullable = false
		addPrimaryKeyColumn(table, col.Name)
	case ast.ColumnOptionAutoIncrement:
		col.AutoIncrement = true
	case ast.ColumnOptionDefaultValue:
		col.DefaultValue = p.defaultValue(opt.Expr)
	case ast.ColumnOptionUniqKey:
		table.Indexes = append(table.Indexes, &core.Index{
			Name:    col.Name,
			Unique:  true,
			Columns: []core.IndexColumn{{Name: col.Name}},
		})
	case ast.ColumnOptionComment:
		if s := p.exprToString(opt.Expr); s != nil {
			col.Comment = *s
		}
	case ast.ColumnOptionCollate:
		if opt.StrValue != "" {
			col.Collate = opt.StrValue
		} else if s := p.exprToString(opt.Expr); s != nil {
			col.Collate = *s
		}
	case ast.ColumnOptionFulltext:
		table.Indexes = append(table.Indexes, &core.Index{
			Name:    col.Name,
			Type:    core.IndexTypeFullText,
			Columns: []core.IndexColumn{{Name: col.Name}},
		})
	case ast.ColumnOptionReference:
		table.Constraints = append(table.Constraints, foreignKey("", []string{col.Name}, opt.Refer))
	default:
	}
}

func addPrimaryKeyColumn(table *core.Table, colName string) {
	if pk := table.PrimaryKey(); pk != nil {
		if !slices.ContainsFunc(pk.Columns, func(c string) bool { return strings.EqualFold(c, colName) }) {
			pk.Columns = append(pk.Columns, colName)
		}
		return
	}
	table.SetPrimaryKey(colName)
}

func (p *Parser) parseConstraints(constraints []*ast.Constraint, table *core.Table) {
	for _, constraint := range constraints {
		if constraint == nil {
			continue
		}
		columns, indexCols := constraintColumns(constraint)
		name := constraint.Name
		if name == "" && len(columns) > 0 {
			name = columns[0]
		}

		switch constraint.Tp {
		case ast.ConstraintPrimaryKey:
			table.SetPrimaryKey(columns...)
			for _, c := range columns {
				if col := table.FindColumn(c); col != nil {
					col.Nullable = false
				}
			}
		case ast.ConstraintUniq, ast.ConstraintUniqKey, ast.ConstraintUniqIndex:
			table.Indexes = append(table.Indexes, &core.Index{Name: name, Unique: true, Columns: indexCols})
		case ast.ConstraintForeignKey:
			if constraint.Refer != nil {
				table.Constraints = append(table.Constraints, foreignKey(constraint.Name, columns, constraint.Refer))
			}
		case ast.ConstraintIndex, ast.ConstraintKey:
			table.Indexes = append(table.Indexes, &core.Index{Name: name, Columns: indexCols})
		case ast.ConstraintFulltext:
			table.Indexes = append(table.Indexes, &core.Index{Name: name, Type: core.IndexTypeFullText, Columns: indexCols})
		default:
		}
	}
}

func constraintColumns(constraint *ast.Constraint) ([]string, []core.IndexColumn) {
	columns := make([]string, 0, len(constraint.Keys))
	indexCols := make([]core.IndexColumn, 0, len(constraint.Keys))
	for _, key := range constraint.Keys {
		if key.Column == nil {
			continue
		}
		columns = append(columns, key.Column.Name.O)
		indexCols = append(indexCols, core.IndexColumn{
			Name:   key.Column.Name.O,
			Length: max(key.Length, 0),
		})
	}
	return columns, indexCols
}

func foreignKey(name string, columns []string, refer *ast.ReferenceDef) *core.Constraint {
	c := &core.Constraint{
		Name:            name,
		Type:            core.ConstraintForeignKey,
		Columns:         columns,
		ReferencedTable: refer.Table.Name.O,
	}
	for _, spec := range refer.IndexPartSpecifications {
		if spec.Column != nil {
			c.ReferencedColumns = append(c.ReferencedColumns, spec.Column.Name.O)
		}
	}
	if refer.OnDelete != nil {
		c.OnDelete = core.ReferentialAction(refer.OnDelete.ReferOpt.String())
	}
	if refer.OnUpdate != nil {
		c.OnUpdate = core.ReferentialAction(refer.OnUpdate.ReferOpt.String())
	}
	return c
}

// defaultValue returns nil for DEFAULT NULL.
func (p *Parser) defaultValue(expr ast.ExprNode) *string {
	raw := p.restore(expr)
	if raw == nil || strings.EqualFold(*raw, "NULL") {
		return nil
	}
	return p.exprToString(expr)
}

func (p *Parser) restore(expr ast.ExprNode) *string {
	if expr == nil {
		return nil
	}
	var sb strings.Builder
	restoreCtx := format.NewRestoreCtx(format.DefaultRestoreFlags, &sb)
	if err := expr.Restore(restoreCtx); err != nil {
		return nil
	}
	s := strings.TrimSpace(sb.String())
	return &s
}

func (p *Parser) exprToString(expr ast.ExprNode) *string {
	s := p.restore(expr)
	if s == nil {
		return nil
	}
	if unquoted, ok := tryUnquoteSQLStringLiteral(*s); ok {
		return &unquoted
	}
	return s
}

func tryUnquoteSQLStringLiteral(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '\'' {
		return "", false
	}

	if s[0] == '\'' {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'"), true
	}

	q := strings.IndexByte(s, '\'')
	if q <= 0 {
		return "", false
	}
	prefix := strings.TrimSpace(s[:q])
	if !isSQLStringIntroducer(prefix) {
		return "", false
	}
	inner := s[q+1 : len(s)-1]
	return strings.ReplaceAll(inner, "''", "'"), true
}

func isSQLStringIntroducer(prefix string) bool {
	if strings.EqualFold(prefix, "N") {
		return true
	}
	if !strings.HasPrefix(prefix, "_") || len(prefix) == 1 {
		return false
	}
	for _, r := range prefix[1:] {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}
