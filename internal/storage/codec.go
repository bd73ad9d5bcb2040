package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pfrederiksen/ietf-groups/internal/group"
	"gopkg.in/yaml.v3"
)

// document is the on-disk layout: {"groups": [...]}
type document struct {
	Groups []*group.Group `yaml:"groups" json:"groups"`
}

// Encode writes coll to w as a groups document
func Encode(w io.Writer, coll *group.Collection, format Format) error {
	doc := document{Groups: coll.All()}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Decode reads a groups document. Records keep their order and duplicates.
// An empty input decodes to an empty collection. Unknown keys and anything
// after the document are errors.
func Decode(r io.Reader, format Format) (*group.Collection, error) {
	var doc document

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("decoding YAML: %w", err)
			}
			break
		}
		var extra yaml.Node
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			if err != nil {
				return nil, fmt.Errorf("decoding YAML: %w", err)
			}
			return nil, errors.New("decoding YAML: more than one document")
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("decoding JSON: %w", err)
			}
			break
		}
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return nil, errors.New("decoding JSON: trailing data after document")
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return group.NewCollection(doc.Groups, group.DedupNone), nil
}

// EncodeNames writes names as a flat JSON array of strings
func EncodeNames(w io.Writer, names []string) error {
	if names == nil {
		names = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(names); err != nil {
		return fmt.Errorf("encoding names: %w", err)
	}
	return nil
}
