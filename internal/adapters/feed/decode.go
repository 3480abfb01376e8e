package feed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/okian/tianwen/internal/domain/analyzer"
	"github.com/okian/tianwen/internal/domain/model"
	"go.yaml.in/yaml/v3"
)

// Decode parses data as a sequence of records.
//
// A payload that is null, empty, not a sequence, or that holds non-object
// elements fails with *analyzer.InvalidInputError. Syntax errors and field
// type mismatches wrap ErrDecode. An empty sequence yields an empty, non-nil
// slice.
func Decode(data []byte, format Format) ([]model.CelestialRecord, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func decodeJSON(data []byte) ([]model.CelestialRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, analyzer.NewInvalidInput("empty payload")
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, analyzer.NewInvalidInput("expected a sequence of records, got %s", typeErr.Value)
		}
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if raw == nil {
		return nil, analyzer.NewInvalidInput("payload is null")
	}

	out := make([]model.CelestialRecord, 0, len(raw))
	for i, elem := range raw {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '{' {
			return nil, analyzer.NewInvalidInput("element %d is not an object", i)
		}
		var rec model.CelestialRecord
		if err := json.Unmarshal(elem, &rec); err != nil {
			return nil, fmt.Errorf("%w: element %d: %w", ErrDecode, i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func decodeYAML(data []byte) ([]model.CelestialRecord, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	root = resolveAlias(root)

	switch {
	case root.Kind == 0, root.Kind == yaml.DocumentNode:
		return nil, analyzer.NewInvalidInput("empty payload")
	case root.Kind == yaml.ScalarNode && root.Tag == "!!null":
		return nil, analyzer.NewInvalidInput("payload is null")
	case root.Kind != yaml.SequenceNode:
		return nil, analyzer.NewInvalidInput("expected a sequence of records, got %s", kindName(root))
	}

	out := make([]model.CelestialRecord, 0, len(root.Content))
	for i, item := range root.Content {
		item = resolveAlias(item)
		if item.Kind != yaml.MappingNode {
			return nil, analyzer.NewInvalidInput("element %d is not an object", i)
		}
		var rec model.CelestialRecord
		if err := item.Decode(&rec); err != nil {
			return nil, fmt.Errorf("%w: element %d: %w", ErrDecode, i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar " + n.Tag
	default:
		return "node"
	}
}

// Encode serializes records in the given format.
func Encode(records []model.CelestialRecord, format Format) ([]byte, error) {
	if records == nil {
		records = []model.CelestialRecord{}
	}
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(records)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
