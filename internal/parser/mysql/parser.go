// Package mysql parses MySQL CREATE TABLE statements into core tables. It
// reads the baseline schema the synthesizer diffs against.
package mysql

import (
	"fmt"
	"strings"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"

	"schemasynth/internal/core"
)

// Parser wraps the TiDB SQL parser.
type Parser struct {
	p *parser.Parser
}

// NewParser returns a ready to use parser.
func NewParser() *Parser {
	return &Parser{
		p: parser.New(),
	}
}

// Parse converts every CREATE TABLE statement in sql into a table. Other
// statements are ignored. Tables keep statement order; a table created twice
// appears twice.
func (p *Parser) Parse(sql string) (*core.Database, error) {
	stmtNodes, _, err := p.p.Parse(sql, "", "")
	if err != nil {
		return nil, fmt.Errorf("parse mysql schema: %w", err)
	}

	db := &core.Database{}
	for _, stmtNode := range stmtNodes {
		createStmt, ok := stmtNode.(*ast.CreateTableStmt)
		if !ok {
			continue
		}
		table, err := p.convertCreateTable(createStmt)
		if err != nil {
			return nil, err
		}
		db.Tables = append(db.Tables, table)
	}

	return db, nil
}

func (p *Parser) convertCreateTable(stmt *ast.CreateTableStmt) (*core.Table, error) {
	name := strings.TrimSpace(stmt.Table.Name.O)
	if name == "" {
		return nil, fmt.Errorf("create table without name: %w", core.ErrInvalidName)
	}
	table := core.NewTable(name)

	p.parseTableOptions(stmt.Options, table)
	if err := p.parseColumns(stmt.Cols, table); err != nil {
		return nil, fmt.Errorf("table %s: %w", name, err)
	}
	p.parseConstraints(stmt.Constraints, table)

	return table, nil
}
