package contentpack

import "reflect"

// Framework identity and defaults.
const (
	// FrameworkID is the unique ID every content pack must target.
	FrameworkID = "Pathoschild.ContentPatcher"

	// DefaultMinimumAPIVersion is the baseline SMAPI version written when the
	// author does not choose one.
	DefaultMinimumAPIVersion = "3.18.0"
)

// Known patch actions.
const (
	ActionLoad      = "Load"
	ActionEditData  = "EditData"
	ActionEditImage = "EditImage"
	ActionEditMap   = "EditMap"
	ActionInclude   = "Include"
)

// KnownActions lists the actions the framework understands.
var KnownActions = []string{
	ActionLoad,
	ActionEditData,
	ActionEditImage,
	ActionEditMap,
	ActionInclude,
}

// Manifest identifies a package and its compatibility target.
type Manifest struct {
	Name              string         `yaml:"name"`
	Author            string         `yaml:"author"`
	Version           string         `yaml:"version"`
	Description       string         `yaml:"description"`
	UniqueID          string         `yaml:"unique_id"`
	MinimumAPIVersion string         `yaml:"minimum_api_version"`
	UpdateKeys        []string       `yaml:"update_keys,omitempty"`
	ContentPackFor    ContentPackFor `yaml:"content_pack_for"`
}

// ContentPackFor names the framework a package is loaded by.
type ContentPackFor struct {
	UniqueID string `yaml:"unique_id"`
	// MinimumVersion is nil when absent.
	MinimumVersion *string `yaml:"minimum_version,omitempty"`
}

// Patch is one change instruction.
type Patch struct {
	Action string `yaml:"action"`
	Target string `yaml:"target"`
	// Fields holds the action-specific payload. Entries with a nil value are
	// treated as absent.
	Fields map[string]any `yaml:"fields,omitempty"`
	// When is nil when the patch has no conditions. A non-nil empty map is
	// present and rendered as {}.
	When map[string]string `yaml:"when,omitempty"`
}

// Package is the aggregate of one manifest and an ordered list of changes.
type Package struct {
	Manifest Manifest `yaml:",inline"`
	Changes  []Patch  `yaml:"changes"`
}

// NewManifest returns a manifest with the framework target and minimum API
// version filled in.
func NewManifest() Manifest {
	return Manifest{
		MinimumAPIVersion: DefaultMinimumAPIVersion,
		ContentPackFor:    ContentPackFor{UniqueID: FrameworkID},
	}
}

// NewPackage returns an empty draft package with a default manifest.
func NewPackage() *Package {
	return &Package{Manifest: NewManifest()}
}

// StringPtr returns a pointer to s, for optional fields such as
// ContentPackFor.MinimumVersion.
func StringPtr(s string) *string {
	return &s
}

// Set stores a payload field. A nil value marks the field absent.
func (p *Patch) Set(key string, value any) {
	if p.Fields == nil {
		p.Fields = make(map[string]any)
	}
	p.Fields[key] = value
}

// Field returns a payload field and whether it is present.
func (p *Patch) Field(key string) (any, bool) {
	v, ok := p.Fields[key]
	if !ok || isAbsent(v) {
		return nil, false
	}
	return v, true
}

// isAbsent reports whether a payload value counts as unset: nil, or a nil
// pointer, slice, map, interface, func, or chan stored in the interface.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
