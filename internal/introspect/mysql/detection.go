package mysql

import (
	"context"
	"database/sql"
	"strings"

	"schemasynth/internal/dialect"
)

// DetectDialect reports whether the server is MySQL or MariaDB, along with
// its version without build suffix.
func DetectDialect(ctx context.Context, db *sql.DB) (dialect.Type, string, error) {
	var varName, comment string

	err := db.QueryRowContext(ctx, "SHOW VARIABLES LIKE 'version_comment'").Scan(&varName, &comment)
	if err != nil {
		return "", "", err
	}

	version := getVersion(ctx, db)
	if strings.Contains(strings.ToLower(comment), "mariadb") || strings.Contains(strings.ToLower(version), "mariadb") {
		return dialect.MariaDB, trimVersion(version), nil
	}
	return dialect.MySQL, trimVersion(version), nil
}

func getVersion(ctx context.Context, db *sql.DB) string {
	var version string
	_ = db.QueryRowContext(ctx, "SELECT VERSION()").Scan(&version)
	return version
}

func trimVersion(version string) string {
	if idx := strings.Index(version, "-"); idx > 0 {
		return version[:idx]
	}
	return version
}
