// Package mysql reads the baseline schema from a live MySQL or MariaDB
// server. It only runs read queries: the table list and SHOW CREATE TABLE
// for each base table of the current database.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

// Source is a baseline source backed by a database connection.
type Source struct {
	DB *sql.DB
}

// Open opens a connection pool for dsn and pings it.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if pingErr := db.PingContext(ctx); pingErr != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping database: %v; additionally failed to close connection: %w", pingErr, closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", pingErr)
	}
	return db, nil
}

// SchemaText returns the CREATE TABLE statements of every base table of
// the current database, ordered by table name.
func (s Source) SchemaText(ctx context.Context) (string, error) {
	names, err := listTables(ctx, s.DB)
	if err != nil {
		return "", fmt.Errorf("introspect tables: %w", err)
	}

	var sb strings.Builder
	for _, name := range names {
		stmt, err := showCreateTable(ctx, s.DB, name)
		if err != nil {
			return "", fmt.Errorf("introspect table %s: %w", name, err)
		}
		sb.WriteString(strings.TrimRight(strings.TrimSpace(stmt), ";"))
		sb.WriteString(";\n")
	}
	return sb.String(), nil
}
