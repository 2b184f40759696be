// Package toml reads contribution files: TOML documents that request and
// configure variant columns, declare table overrides and register junction
// tables. Parsed contributions are replayed against a registry.
package toml

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"schemasynth/internal/core"
)

// contributionFile is the top-level TOML document.
type contributionFile struct {
	Variants  []tomlVariant  `toml:"variants"`
	Overrides []tomlOverride `toml:"overrides"`
	Junctions []tomlJunction `toml:"junctions"`
}

// tomlVariant maps [[variants]].
type tomlVariant struct {
	Table   string       `toml:"table"`
	Name    string       `toml:"name"`
	Columns []tomlColumn `toml:"columns"`
}

// tomlJunction maps [[junctions]].
type tomlJunction struct {
	Name string `toml:"name"`
}

// Variant is the contribution of one usage context to a table. A column
// with an empty Type is only requested; every other column replaces the
// configuration of the variant's column wholesale.
type Variant struct {
	Table   string
	Name    string
	Columns []*core.Column
}

// Override is a hand-authored override of a table.
type Override struct {
	Table       string
	PrimaryKey  []string
	Options     map[string]string
	Columns     []*core.Column
	Indexes     []*core.Index
	ForeignKeys []*core.Constraint
}

// Contributions is a parsed contribution file.
type Contributions struct {
	Variants  []Variant
	Overrides []Override
	Junctions []string
}

// Parser reads contribution files.
type Parser struct{}

// NewParser creates a new contribution file parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile opens the file at the given path and parses it.
func (p *Parser) ParseFile(path string) (*Contributions, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("toml: open file %q: %w", path, err)
	}
	defer f.Close()

	c, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse reads TOML content from r. Unknown keys are rejected.
func (p *Parser) Parse(r io.Reader) (*Contributions, error) {
	var cf contributionFile
	md, err := toml.NewDecoder(r).Decode(&cf)
	if err != nil {
		return nil, fmt.Errorf("toml: decode error: %w", err)
	}
	if unknown := md.Undecoded(); len(unknown) > 0 {
		keys := make([]string, len(unknown))
		for i, k := range unknown {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("toml: unknown keys: %s", strings.Join(keys, ", "))
	}
	return convert(&cf)
}

func convert(cf *contributionFile) (*Contributions, error) {
	out := &Contributions{}

	for i := range cf.Variants {
		v, err := convertVariant(&cf.Variants[i])
		if err != nil {
			return nil, fmt.Errorf("toml: variants[%d]: %w", i, err)
		}
		out.Variants = append(out.Variants, v)
	}

	for i := range cf.Overrides {
		o, err := convertOverride(&cf.Overrides[i])
		if err != nil {
			return nil, fmt.Errorf("toml: overrides[%d]: %w", i, err)
		}
		out.Overrides = append(out.Overrides, o)
	}

	for i, j := range cf.Junctions {
		if err := validateName("junction", j.Name); err != nil {
			return nil, fmt.Errorf("toml: junctions[%d]: %w", i, err)
		}
		out.Junctions = append(out.Junctions, strings.TrimSpace(j.Name))
	}

	return out, nil
}

func convertVariant(tv *tomlVariant) (Variant, error) {
	if err := validateName("table", tv.Table); err != nil {
		return Variant{}, err
	}
	if err := validateName("variant", tv.Name); err != nil {
		return Variant{}, err
	}

	v := Variant{Table: strings.TrimSpace(tv.Table), Name: strings.TrimSpace(tv.Name)}
	seen := make(map[string]bool, len(tv.Columns))
	for i := range tv.Columns {
		col, err := convertColumn(&tv.Columns[i], false)
		if err != nil {
			return Variant{}, fmt.Errorf("table %q variant %q: %w", v.Table, v.Name, err)
		}
		key := strings.ToLower(col.Name)
		if seen[key] {
			return Variant{}, fmt.Errorf("table %q variant %q: duplicate column %q", v.Table, v.Name, col.Name)
		}
		seen[key] = true
		v.Columns = append(v.Columns, col)
	}
	return v, nil
}

func validateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s name is empty: %w", kind, core.ErrInvalidName)
	}
	return nil
}
