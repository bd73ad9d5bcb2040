package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a snapshot serialization format
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnsupportedFormat is returned for formats other than yaml and json
var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseFormat validates a format name, ignoring case. "yml" is accepted as
// yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q (must be yaml or json)", ErrUnsupportedFormat, s)
}

// FormatFromPath infers the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no file extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// Extension returns the file extension used for f, without the dot
func (f Format) Extension() string {
	return string(f)
}
