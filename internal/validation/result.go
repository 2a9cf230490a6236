package validation

import (
	"fmt"
	"strings"
)

// Issue codes produced by this package. Domain validators define their own.
const (
	CodeRequired = "required"
)

// Issue is a single field-path-tagged finding.
type Issue struct {
	FieldPath string `json:"field_path"`
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
}

// String formats the issue as "path: message".
func (i Issue) String() string {
	if i.FieldPath == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.FieldPath, i.Message)
}

// Result collects the errors and warnings of one validation run.
// Validity is derived from Errors and never stored separately.
type Result struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings,omitempty"`
}

// NewResult returns an empty result.
func NewResult() *Result {
	return &Result{Errors: []Issue{}}
}

// Valid reports whether the run produced no errors.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// AddError appends an error.
func (r *Result) AddError(path, code, message string) {
	r.Errors = append(r.Errors, Issue{FieldPath: path, Message: message, Code: code})
}

// AddWarning appends a warning.
func (r *Result) AddWarning(path, code, message string) {
	r.Warnings = append(r.Warnings, Issue{FieldPath: path, Message: message, Code: code})
}

// Merge appends issues as errors, keeping their order.
func (r *Result) Merge(issues []Issue) {
	r.Errors = append(r.Errors, issues...)
}

// ErrorsAt returns the errors recorded for exactly the given path.
func (r *Result) ErrorsAt(path string) []Issue {
	var out []Issue
	for _, issue := range r.Errors {
		if issue.FieldPath == path {
			out = append(out, issue)
		}
	}
	return out
}

// Summary summarises the errors as a single message. It returns "" for a
// valid result.
func (r *Result) Summary() string {
	if r.Valid() {
		return ""
	}
	lines := make([]string, len(r.Errors))
	for i, issue := range r.Errors {
		lines[i] = issue.String()
	}
	return fmt.Sprintf("%d validation error(s): %s", len(r.Errors), strings.Join(lines, "; "))
}

// Append adds the errors and warnings of other after those already in r.
func (r *Result) Append(other *Result) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}
