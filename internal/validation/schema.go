package validation

import "strings"

// Field declares one field of an entity type T.
type Field[T any] struct {
	// Name is the field name used in issue paths.
	Name string
	// Required fields must hold a non-nil, non-empty, non-blank value.
	Required bool
	// Get returns the field's current value. It may be nil for fields that
	// are only declared to host Nested.
	Get func(T) any
	// Nested validates a child entity under the given path.
	Nested func(v T, path string) []Issue
}

// Schema is the ordered field table for an entity type.
type Schema[T any] []Field[T]

// Validate checks v against the schema and returns one issue per violated
// constraint, in field declaration order. Paths are prefix.Name.
func (s Schema[T]) Validate(v T, prefix string) []Issue {
	var issues []Issue
	for _, f := range s {
		path := Join(prefix, f.Name)
		if f.Required && f.Get != nil && IsBlank(f.Get(v)) {
			issues = append(issues, Issue{
				FieldPath: path,
				Message:   f.Name + " is required.",
				Code:      CodeRequired,
			})
		}
		if f.Nested != nil {
			issues = append(issues, f.Nested(v, path)...)
		}
	}
	return issues
}

// Embed adapts a child schema into a Nested hook. get returns the child
// entity for a parent value.
func Embed[T, C any](get func(T) C, child Schema[C]) func(T, string) []Issue {
	return func(v T, path string) []Issue {
		return child.Validate(get(v), path)
	}
}

// IsBlank reports whether v counts as missing: nil, a whitespace-only
// string, a nil or blank *string, or an empty slice or map of the listed
// types. Other types are never blank.
func IsBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case *string:
		return val == nil || strings.TrimSpace(*val) == ""
	case []string:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	case []any:
		return len(val) == 0
	case map[string]string:
		return len(val) == 0
	}
	return false
}
