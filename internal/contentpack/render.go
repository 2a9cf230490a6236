package contentpack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Output file names inside a package directory.
const (
	ManifestFileName = "manifest.json"
	ContentFileName  = "content.json"
)

const indent = "  "

// Documents is the rendered document pair.
type Documents struct {
	Manifest []byte
	Content  []byte
}

// manifestDoc fixes the manifest.json key names and order.
type manifestDoc struct {
	Name              string            `json:"Name"`
	Author            string            `json:"Author"`
	Version           string            `json:"Version"`
	Description       string            `json:"Description"`
	UniqueID          string            `json:"UniqueID"`
	MinimumAPIVersion string            `json:"MinimumApiVersion"`
	UpdateKeys        []string          `json:"UpdateKeys"`
	ContentPackFor    contentPackForDoc `json:"ContentPackFor"`
}

type contentPackForDoc struct {
	UniqueID       string  `json:"UniqueID"`
	MinimumVersion *string `json:"MinimumVersion,omitempty"`
}

type contentDoc struct {
	Changes []Patch `json:"Changes"`
}

// Render converts p to its document pair. Validity is not checked, so drafts
// can be previewed.
func Render(p *Package) (*Documents, error) {
	if p == nil {
		return nil, fmt.Errorf("rendering package: nil package")
	}
	manifest, err := RenderManifest(&p.Manifest)
	if err != nil {
		return nil, err
	}
	content, err := RenderContent(p.Changes)
	if err != nil {
		return nil, err
	}
	return &Documents{Manifest: manifest, Content: content}, nil
}

// RenderManifest renders manifest.json. Every declared field is written;
// only ContentPackFor.MinimumVersion is dropped when absent.
func RenderManifest(m *Manifest) ([]byte, error) {
	doc := manifestDoc{
		Name:              m.Name,
		Author:            m.Author,
		Version:           m.Version,
		Description:       m.Description,
		UniqueID:          m.UniqueID,
		MinimumAPIVersion: m.MinimumAPIVersion,
		UpdateKeys:        m.UpdateKeys,
		ContentPackFor: contentPackForDoc{
			UniqueID:       m.ContentPackFor.UniqueID,
			MinimumVersion: m.ContentPackFor.MinimumVersion,
		},
	}
	if doc.UpdateKeys == nil {
		doc.UpdateKeys = []string{}
	}
	data, err := encode(doc, indent)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", ManifestFileName, err)
	}
	return data, nil
}

// RenderContent renders content.json with the changes in order.
func RenderContent(changes []Patch) ([]byte, error) {
	doc := contentDoc{Changes: changes}
	if doc.Changes == nil {
		doc.Changes = []Patch{}
	}
	data, err := encode(doc, indent)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", ContentFileName, err)
	}
	return data, nil
}

// MarshalJSON writes Action and Target, then the present payload fields in
// key order, then When if set.
func (p Patch) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	writeMember := func(key string, value any) error {
		v, err := encode(value, "")
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		k, err := encode(key, "")
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}

	if err := writeMember("Action", p.Action); err != nil {
		return nil, err
	}
	if err := writeMember("Target", p.Target); err != nil {
		return nil, err
	}
	for _, key := range sortedKeys(p.Fields) {
		value := p.Fields[key]
		if isAbsent(value) || isReservedKey(key) {
			continue
		}
		if err := writeMember(key, value); err != nil {
			return nil, err
		}
	}
	if p.When != nil {
		if err := writeMember("When", p.When); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encode marshals v without HTML escaping and without a trailing newline.
func encode(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func isReservedKey(key string) bool {
	for _, reserved := range reservedKeys {
		if strings.EqualFold(key, reserved) {
			return true
		}
	}
	return false
}
