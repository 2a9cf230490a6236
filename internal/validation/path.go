package validation

import "fmt"

// Join appends a field name to a path prefix using dot notation.
func Join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	if name == "" {
		return prefix
	}
	return prefix + "." + name
}

// Index appends a sequence index to a path, e.g. Index("Changes", 2) is
// "Changes[2]".
func Index(prefix string, i int) string {
	return fmt.Sprintf("%s[%d]", prefix, i)
}
