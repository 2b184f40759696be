// Package parser dispatches contribution files to the reader for their
// format.
package parser

import (
	"path/filepath"
	"strings"

	"schemasynth/internal/parser/toml"
)

// ParseContributionFile parses the contribution file at path, choosing the
// format by file extension.
func ParseContributionFile(path string) (*toml.Contributions, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.NewParser().ParseFile(path)
	default:
		return nil, &UnsupportedFormatError{Path: path}
	}
}

// UnsupportedFormatError reports a contribution file with an unknown
// extension.
type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return "unsupported file format: " + e.Path
}
