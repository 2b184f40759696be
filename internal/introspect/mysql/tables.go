package mysql

import (
	"context"
	"database/sql"
	"strings"
)

func listTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func showCreateTable(ctx context.Context, db *sql.DB, name string) (string, error) {
	var table, stmt string
	quoted := "`" + strings.ReplaceAll(name, "`", "``") + "`"
	if err := db.QueryRowContext(ctx, "SHOW CREATE TABLE "+quoted).Scan(&table, &stmt); err != nil {
		return "", err
	}
	return stmt, nil
}
