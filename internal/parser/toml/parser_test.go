package toml

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemasynth/internal/baseline"
	"schemasynth/internal/core"
	"schemasynth/internal/dialect"
	"schemasynth/internal/dialect/mysql"
	"schemasynth/internal/registry"
)

const contributionDoc = `
[[junctions]]
name = "t_category_mm"

[[variants]]
table = "t"
name = "news"

[[variants.columns]]
name = "title"
type = "VARCHAR"
length = 512
nullable = true

[[variants.columns]]
name = "hidden"
type = "smallint"
length = 5
unsigned = true
default = 0

[[variants]]
table = "t"
name = "blog"

[[variants.columns]]
name = "title"

[[variants.columns]]
name = "kind"
type = "enum"
values = ["a", "b"]
default = "a"

[[overrides]]
table = "t"
primary_key = ["uid"]
options = { ENGINE = "InnoDB" }

[[overrides.columns]]
name = "parent"
type = "int"
length = 11

[[overrides.indexes]]
name = "title_idx"
columns = ["title(20)", "parent"]

[[overrides.foreign_keys]]
name = "fk_parent"
columns = ["parent"]
references = "t.uid"
on_delete = "cascade"
`

func parse(t *testing.T, doc string) *Contributions {
	t.Helper()
	c, err := NewParser().Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return c
}

func TestParseContributions(t *testing.T) {
	c := parse(t, contributionDoc)

	assert.Equal(t, []string{"t_category_mm"}, c.Junctions)

	require.Len(t, c.Variants, 2)
	news := c.Variants[0]
	assert.Equal(t, "t", news.Table)
	assert.Equal(t, "news", news.Name)
	require.Len(t, news.Columns, 2)
	assert.Equal(t, &core.Column{Name: "title", Type: "varchar", Length: 512, Nullable: true}, news.Columns[0])

	hidden := news.Columns[1]
	assert.True(t, hidden.Unsigned)
	require.NotNil(t, hidden.DefaultValue)
	assert.Equal(t, "0", *hidden.DefaultValue)

	blog := c.Variants[1]
	assert.Equal(t, &core.Column{Name: "title"}, blog.Columns[0])
	assert.Equal(t, []string{"a", "b"}, blog.Columns[1].Values)

	require.Len(t, c.Overrides, 1)
	o := c.Overrides[0]
	assert.Equal(t, []string{"uid"}, o.PrimaryKey)
	assert.Equal(t, map[string]string{"ENGINE": "InnoDB"}, o.Options)
	require.Len(t, o.Indexes, 1)
	assert.Equal(t, []core.IndexColumn{{Name: "title", Length: 20}, {Name: "parent"}}, o.Indexes[0].Columns)
	require.Len(t, o.ForeignKeys, 1)
	fk := o.ForeignKeys[0]
	assert.Equal(t, core.ConstraintForeignKey, fk.Type)
	assert.Equal(t, "t", fk.ReferencedTable)
	assert.Equal(t, []string{"uid"}, fk.ReferencedColumns)
	assert.Equal(t, core.RefActionCascade, fk.OnDelete)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
		is      error
	}{
		{
			name:    "invalid toml",
			doc:     `[[variants]`,
			wantErr: "toml: decode error",
		},
		{
			name:    "unknown key",
			doc:     "[[variants]]\ntable = \"t\"\nname = \"a\"\ncolour = \"red\"\n",
			wantErr: "unknown keys: variants.colour",
		},
		{
			name: "missing table",
			doc:  "[[variants]]\nname = \"a\"\n",
			is:   core.ErrInvalidName,
		},
		{
			name: "unknown type",
			doc:  "[[variants]]\ntable = \"t\"\nname = \"a\"\n[[variants.columns]]\nname = \"x\"\ntype = \"geometry\"\n",
			is:   core.ErrInvalidType,
		},
		{
			name:    "duplicate column",
			doc:     "[[variants]]\ntable = \"t\"\nname = \"a\"\n[[variants.columns]]\nname = \"x\"\n[[variants.columns]]\nname = \"X\"\n",
			wantErr: "duplicate column",
		},
		{
			name: "override column without type",
			doc:  "[[overrides]]\ntable = \"t\"\n[[overrides.columns]]\nname = \"x\"\n",
			is:   core.ErrInvalidType,
		},
		{
			name:    "index without columns",
			doc:     "[[overrides]]\ntable = \"t\"\n[[overrides.indexes]]\nname = \"i\"\n",
			wantErr: "has no columns",
		},
		{
			name:    "bad index type",
			doc:     "[[overrides]]\ntable = \"t\"\n[[overrides.indexes]]\nname = \"i\"\ncolumns = [\"a\"]\ntype = \"HASHY\"\n",
			wantErr: "unknown type",
		},
		{
			name:    "bad references",
			doc:     "[[overrides]]\ntable = \"t\"\n[[overrides.foreign_keys]]\nname = \"fk\"\ncolumns = [\"a\"]\nreferences = \"t\"\n",
			wantErr: "invalid references",
		},
		{
			name:    "column count mismatch",
			doc:     "[[overrides]]\ntable = \"t\"\n[[overrides.foreign_keys]]\nname = \"fk\"\ncolumns = [\"a\", \"b\"]\nreferences = \"t\"\nreferenced_columns = [\"uid\"]\n",
			wantErr: "2 columns reference 1 columns",
		},
		{
			name:    "bad action",
			doc:     "[[overrides]]\ntable = \"t\"\n[[overrides.foreign_keys]]\nname = \"fk\"\ncolumns = [\"a\"]\nreferences = \"t.uid\"\non_delete = \"explode\"\n",
			wantErr: "on_delete",
		},
		{
			name: "empty junction",
			doc:  "[[junctions]]\nname = \" \"\n",
			is:   core.ErrInvalidName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestParseIndexColumn(t *testing.T) {
	ic, err := parseIndexColumn(" slug ( 127 ) ")
	require.NoError(t, err)
	assert.Equal(t, core.IndexColumn{Name: "slug", Length: 127}, ic)

	_, err = parseIndexColumn("a b")
	require.Error(t, err)
}

func TestNormalizeDefault(t *testing.T) {
	assert.Equal(t, "1", normalizeDefault(true))
	assert.Equal(t, "0", normalizeDefault(false))
	assert.Equal(t, "42", normalizeDefault(int64(42)))
	assert.Equal(t, "1.5", normalizeDefault(1.5))
	assert.Equal(t, "x", normalizeDefault("x"))
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.toml")
	require.NoError(t, os.WriteFile(path, []byte(contributionDoc), 0o644))

	c, err := NewParser().ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, c.Variants, 2)

	_, err = NewParser().ParseFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestApply(t *testing.T) {
	reg := registry.New(
		mysql.NewMySQLDialect(dialect.MySQL),
		registry.WithBaseline(baseline.TextSource(
			"CREATE TABLE t (uid int(11) NOT NULL auto_increment, title varchar(255) NOT NULL, PRIMARY KEY (uid));",
		)),
	)

	require.NoError(t, parse(t, contributionDoc).Apply(t.Context(), reg))

	def, err := reg.Definition(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"t_category_mm", "t"}, def.Tables())

	combined, err := reg.Combined(t.Context(), "t")
	require.NoError(t, err)
	names := make([]string, len(combined.Columns))
	for i, c := range combined.Columns {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"uid", "title", "hidden", "kind", "parent"}, names)
	assert.Equal(t, 512, combined.FindColumn("title").Length)
	assert.Equal(t, "InnoDB", combined.Options["ENGINE"])
	assert.NotNil(t, combined.FindIndex("title_idx"))
	assert.Len(t, combined.ForeignKeys(), 1)

	out, err := reg.Dump(t.Context())
	require.NoError(t, err)
	assert.Contains(t, out, "-- Table structure for table 't_category_mm'")
	assert.Contains(t, out, "-- Changes for table 't'")
	assert.Contains(t, out, "`title` varchar(512) NULL")
	assert.Contains(t, out, "`hidden` smallint(5) unsigned NOT NULL DEFAULT 0")
	assert.Contains(t, out, "CONSTRAINT `fk_parent` FOREIGN KEY (`parent`) REFERENCES `t` (`uid`) ON DELETE CASCADE")
}

func TestApplyKeepsSiblingConfigForRequestedColumns(t *testing.T) {
	reg := registry.New(mysql.NewMySQLDialect(dialect.MySQL))
	doc := `
[[variants]]
table = "tx_new"
name = "a"
[[variants.columns]]
name = "body"
type = "text"

[[variants]]
table = "tx_new"
name = "b"
[[variants.columns]]
name = "body"
`
	require.NoError(t, parse(t, doc).Apply(t.Context(), reg))

	col, err := reg.GetColumn(t.Context(), "tx_new", "b", "body")
	require.NoError(t, err)
	assert.Equal(t, "text", col.Type)
}
