package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "schemasynth/internal/dialect/mysql"
)

func writeConfig(t *testing.T, content string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return dir, path
}

func TestLoad(t *testing.T) {
	dir, path := writeConfig(t, `
dialect = "MariaDB"
baseline = ["ext/*/ext_tables.sql", "/abs/schema.sql"]
contributions = ["config/*.toml"]
output = "build/schema.sql"
format = "json"

[database]
dsn = "root:secret@tcp(127.0.0.1:3306)/app"

[log]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mariadb", cfg.Dialect)
	assert.Equal(t, []string{filepath.Join(dir, "ext/*/ext_tables.sql"), "/abs/schema.sql"}, cfg.Baseline)
	assert.Equal(t, []string{filepath.Join(dir, "config/*.toml")}, cfg.Contributions)
	assert.Equal(t, filepath.Join(dir, "build/schema.sql"), cfg.Output)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "root:secret@tcp(127.0.0.1:3306)/app", cfg.Database.DSN)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)
}

func TestLoadDefaults(t *testing.T) {
	_, path := writeConfig(t, "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Dialect)
	assert.Equal(t, "sql", cfg.Format)
	assert.Empty(t, cfg.Output)
	assert.Equal(t, LogConfig{Level: "info", Format: "text"}, cfg.Log)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "syntax", content: "dialect = ", wantErr: "parse config"},
		{name: "unknown key", content: "dialekt = \"mysql\"", wantErr: "unknown config keys: dialekt"},
		{name: "dialect", content: "dialect = \"oracle\"", wantErr: "unsupported dialect"},
		{name: "format", content: "format = \"yaml\"", wantErr: "format must be one of"},
		{name: "dsn", content: "[database]\ndsn = \"not a dsn\"", wantErr: "database.dsn"},
		{name: "log level", content: "[log]\nlevel = \"loud\"", wantErr: "log.level"},
		{name: "log format", content: "[log]\nformat = \"xml\"", wantErr: "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, path := writeConfig(t, tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}
