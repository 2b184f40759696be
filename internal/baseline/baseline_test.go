package baseline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemasynth/internal/core"
	parser "schemasynth/internal/parser/mysql"
)

type failingSource struct{}

func (failingSource) SchemaText(context.Context) (string, error) {
	return "", errors.New("unavailable")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSourceReadsSortedMatches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b/ext_tables.sql", "CREATE TABLE b (uid int);")
	writeFile(t, dir, "a/ext_tables.sql", "CREATE TABLE a (uid int);")
	writeFile(t, dir, "a/other.txt", "ignored")

	src := FileSource{Patterns: []string{
		filepath.Join(dir, "*", "ext_tables.sql"),
		filepath.Join(dir, "a", "ext_tables.sql"),
	}}

	files, err := src.Files()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a", "ext_tables.sql"), files[0])

	text, err := src.SchemaText(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE a (uid int);\nCREATE TABLE b (uid int);\n", text)
}

func TestFileSourceMissingFile(t *testing.T) {
	src := FileSource{Patterns: []string{filepath.Join(t.TempDir(), "missing.sql")}}
	_, err := src.SchemaText(t.Context())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSourceEmptyGlob(t *testing.T) {
	src := FileSource{Patterns: []string{filepath.Join(t.TempDir(), "*.sql")}}
	text, err := src.SchemaText(t.Context())
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestLoadFoldsDuplicateTables(t *testing.T) {
	src := TextSource(`
CREATE TABLE pages (
	uid int(11) NOT NULL auto_increment,
	title varchar(255) DEFAULT '' NOT NULL,
	PRIMARY KEY (uid)
);
CREATE TABLE tt_content (uid int(11) NOT NULL);
CREATE TABLE pages (
	title varchar(512) DEFAULT '' NOT NULL,
	slug varchar(2048)
);
`)

	db, err := Load(t.Context(), src, parser.NewParser())
	require.NoError(t, err)
	require.Len(t, db.Tables, 2)

	pages := db.FindTable("pages")
	require.NotNil(t, pages)
	require.Len(t, pages.Columns, 3)
	assert.Equal(t, 512, pages.FindColumn("title").Length)
	assert.Equal(t, "slug", pages.Columns[2].Name)
	assert.Equal(t, []string{"uid"}, pages.PrimaryKey().Columns)
	assert.Equal(t, "tt_content", db.Tables[1].Name)
}

func TestLoadEmpty(t *testing.T) {
	db, err := Load(t.Context(), nil, parser.NewParser())
	require.NoError(t, err)
	assert.Empty(t, db.Tables)

	db, err = Load(t.Context(), TextSource("  \n"), parser.NewParser())
	require.NoError(t, err)
	assert.Equal(t, &core.Database{}, db)
}

func TestLoadPropagatesErrors(t *testing.T) {
	_, err := Load(t.Context(), failingSource{}, parser.NewParser())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unavailable")

	_, err = Load(t.Context(), TextSource("CREATE TABLE ("), parser.NewParser())
	require.Error(t, err)
}
