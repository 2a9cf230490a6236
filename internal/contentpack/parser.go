package contentpack

import (
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// SourceFileName is the conventional name of a package source file.
const SourceFileName = "package.yaml"

// LoadSource reads and parses a package source file.
func LoadSource(path string) (*Package, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	p, err := ParseSource(data)
	if err != nil {
		return nil, fmt.Errorf("parsing package %s: %w", path, err)
	}
	return p, nil
}

// ParseSource parses YAML source bytes into a package. Unset manifest fields
// keep the NewManifest defaults. Rule violations are not checked here; call
// Validate on the result.
func ParseSource(data []byte) (*Package, error) {
	p := NewPackage()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("unmarshaling YAML: %w", err)
	}
	for i := range p.Changes {
		for key, value := range p.Changes[i].Fields {
			p.Changes[i].Fields[key] = normalizeYAML(value)
		}
	}
	return p, nil
}

// MarshalSource renders p back into YAML source form.
func MarshalSource(p *Package) ([]byte, error) {
	out := *p
	out.Changes = make([]Patch, len(p.Changes))
	for i, change := range p.Changes {
		out.Changes[i] = change
		if change.Fields == nil {
			continue
		}
		out.Changes[i].Fields = make(map[string]any, len(change.Fields))
		for key, value := range change.Fields {
			out.Changes[i].Fields[key] = plainNumbers(value)
		}
	}
	data, err := yaml.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	return data, nil
}

// normalizeYAML converts YAML-decoded values to JSON-compatible types.
// Mappings with non-string keys come back from yaml as map[any]any, which
// encoding/json rejects.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[k] = normalizeYAML(v)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[fmt.Sprint(k)] = normalizeYAML(v)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, v := range val {
			a[i] = normalizeYAML(v)
		}
		return a
	default:
		return val
	}
}

// plainNumbers replaces json.Number values with int64 or float64 so they
// are written as YAML numbers rather than quoted strings.
func plainNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[k] = plainNumbers(v)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, v := range val {
			a[i] = plainNumbers(v)
		}
		return a
	default:
		return val
	}
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
