package toml

import (
	"fmt"
	"strconv"
	"strings"

	"schemasynth/internal/core"
)

// tomlColumn maps [[variants.columns]] and [[overrides.columns]].
type tomlColumn struct {
	Name          string   `toml:"name"`
	Type          string   `toml:"type"`
	Length        int      `toml:"length"`
	Scale         int      `toml:"scale"`
	Unsigned      bool     `toml:"unsigned"`
	Values        []string `toml:"values"`
	Nullable      bool     `toml:"nullable"`
	AutoIncrement bool     `toml:"auto_increment"`
	Comment       string   `toml:"comment"`
	Charset       string   `toml:"charset"`
	Collate       string   `toml:"collate"`

	// Default accepts string, bool, or number from TOML.
	// The converter normalizes everything to a string.
	Default any `toml:"default"`
}

func convertColumn(tc *tomlColumn, requireType bool) (*core.Column, error) {
	name := strings.TrimSpace(tc.Name)
	if name == "" {
		return nil, fmt.Errorf("column name is empty: %w", core.ErrInvalidName)
	}

	typ := strings.TrimSpace(tc.Type)
	if typ == "" {
		if requireType {
			return nil, fmt.Errorf("column %q: type is empty: %w", name, core.ErrInvalidType)
		}
		return &core.Column{Name: name}, nil
	}
	if !core.IsKnownType(typ) {
		return nil, fmt.Errorf("column %q: type %q: %w", name, typ, core.ErrInvalidType)
	}
	if tc.Length < 0 || tc.Scale < 0 {
		return nil, fmt.Errorf("column %q: negative length or scale", name)
	}

	col := &core.Column{
		Name:          name,
		Type:          core.NormalizeType(typ),
		Length:        tc.Length,
		Scale:         tc.Scale,
		Unsigned:      tc.Unsigned,
		Values:        tc.Values,
		Nullable:      tc.Nullable,
		AutoIncrement: tc.AutoIncrement,
		Comment:       tc.Comment,
		Charset:       tc.Charset,
		Collate:       tc.Collate,
	}
	if tc.Default != nil {
		s := normalizeDefault(tc.Default)
		col.DefaultValue = &s
	}
	return col, nil
}

func normalizeDefault(v any) string {
	switch val := v.(type) {
	case bool:
		if val {
			return "1"
		}
		return "0"
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
