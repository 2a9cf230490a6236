package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/cpkit/cpkit/internal/contentpack"
	"github.com/cpkit/cpkit/internal/preview"
	"github.com/cpkit/cpkit/internal/validation"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
)

// printResult writes every error and warning, then a one-line verdict.
func printResult(w io.Writer, label string, result *validation.Result) {
	for _, issue := range result.Errors {
		errorColor.Fprint(w, "✗ ")
		fmt.Fprintln(w, issue.String())
	}
	for _, issue := range result.Warnings {
		warningColor.Fprint(w, "! ")
		fmt.Fprintln(w, issue.String())
	}

	if result.Valid() {
		successColor.Fprintf(w, "✓ %s is valid", label)
		if n := len(result.Warnings); n > 0 {
			fmt.Fprintf(w, " (%d warning(s))", n)
		}
		fmt.Fprintln(w)
		return
	}
	errorColor.Fprintf(w, "%s has %d error(s)", label, len(result.Errors))
	fmt.Fprintln(w)
}

// printResultJSON writes the result as indented JSON with a derived
// "valid" field.
func printResultJSON(w io.Writer, result *validation.Result) error {
	out := struct {
		Valid bool `json:"valid"`
		*validation.Result
	}{result.Valid(), result}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printError(w io.Writer, err error) {
	errorColor.Fprint(w, "Error: ")
	fmt.Fprintln(w, err)
}

// packageLabel names a package by its display name, falling back to its ID.
func packageLabel(p *contentpack.Package) string {
	switch {
	case p == nil:
		return "package"
	case p.Manifest.Name != "":
		return p.Manifest.Name
	case p.Manifest.UniqueID != "":
		return p.Manifest.UniqueID
	}
	return "package"
}

func printFileDiff(w io.Writer, d preview.FileDiff) {
	fmt.Fprint(w, d.Header())
	for _, l := range d.Lines {
		switch l.Kind {
		case preview.Added:
			successColor.Fprintln(w, l.String())
		case preview.Removed:
			errorColor.Fprintln(w, l.String())
		default:
			fmt.Fprintln(w, l.String())
		}
	}
}
