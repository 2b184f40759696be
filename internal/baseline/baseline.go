// Package baseline loads the previously known schema that contributed
// tables are compared against.
package baseline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"schemasynth/internal/core"
	"schemasynth/internal/dialect"
)

// Source yields the raw declarative schema text of the baseline.
type Source interface {
	SchemaText(ctx context.Context) (string, error)
}

// FileSource reads schema files matching glob patterns. Files are read in
// sorted path order and concatenated. A pattern without glob characters must
// name an existing file; a glob matching nothing is skipped.
type FileSource struct {
	Patterns []string
}

// Files returns the deduplicated, sorted list of files the patterns match.
func (s FileSource) Files() ([]string, error) {
	var files []string
	for _, pattern := range s.Patterns {
		if !strings.ContainsAny(pattern, "*?[") {
			files = append(files, filepath.Clean(pattern))
			continue
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("baseline pattern %q: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// SchemaText reads and concatenates every matched file.
func (s FileSource) SchemaText(ctx context.Context) (string, error) {
	files, err := s.Files()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read baseline: %w", err)
		}
		sb.Write(data)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// TextSource is an in-memory schema.
type TextSource string

// SchemaText returns the text unchanged.
func (s TextSource) SchemaText(context.Context) (string, error) {
	return string(s), nil
}

// Load reads src and parses it with p. Tables declared more than once are
// folded into the first declaration with core.MergeTable, so later
// declarations extend or replace earlier ones. A nil source yields an empty
// database.
func Load(ctx context.Context, src Source, p dialect.Parser) (*core.Database, error) {
	db := &core.Database{}
	if src == nil {
		return db, nil
	}
	text, err := src.SchemaText(ctx)
	if err != nil {
		return nil, fmt.Errorf("load baseline: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return db, nil
	}

	parsed, err := p.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("load baseline: %w", err)
	}

	index := make(map[string]int, len(parsed.Tables))
	for _, t := range parsed.Tables {
		key := strings.ToLower(t.Name)
		if i, ok := index[key]; ok {
			db.Tables[i] = core.MergeTable(db.Tables[i], t)
			continue
		}
		index[key] = len(db.Tables)
		db.Tables = append(db.Tables, t.Clone())
	}
	return db, nil
}
