package descriptor

import (
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Format identifies the encoding of a structured-data descriptor file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFile reads a structured-data descriptor file, checks its shape and
// decodes it into a RawDescriptor.
func ParseFile(path string, format Format) (RawDescriptor, error) {
	data, err := readFile(path)
	if err != nil {
		return RawDescriptor{}, err
	}

	raw, err := Parse(data, format)
	if err != nil {
		return RawDescriptor{}, fmt.Errorf("parsing descriptor %s: %w", path, err)
	}
	return raw, nil
}

// Parse checks data against the descriptor schema and decodes it.
func Parse(data []byte, format Format) (RawDescriptor, error) {
	switch format {
	case FormatJSON:
		return parseJSON(data)
	case FormatYAML:
		return parseYAML(data)
	default:
		return RawDescriptor{}, fmt.Errorf("unsupported descriptor format %q", format)
	}
}

func parseJSON(data []byte) (RawDescriptor, error) {
	if err := CheckShape(data); err != nil {
		return RawDescriptor{}, err
	}

	var raw RawDescriptor
	if err := json.Unmarshal(data, &raw); err != nil {
		return RawDescriptor{}, fmt.Errorf("unmarshaling JSON: %w", err)
	}
	return raw, nil
}

func parseYAML(data []byte) (RawDescriptor, error) {
	// The schema validator only understands JSON, so round-trip the generic
	// YAML document through encoding/json first.
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return RawDescriptor{}, fmt.Errorf("unmarshaling YAML: %w", err)
	}
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return RawDescriptor{}, fmt.Errorf("converting to JSON: %w", err)
	}
	if err := CheckShape(jsonData); err != nil {
		return RawDescriptor{}, err
	}

	var raw RawDescriptor
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return RawDescriptor{}, fmt.Errorf("unmarshaling YAML: %w", err)
	}
	return raw, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
