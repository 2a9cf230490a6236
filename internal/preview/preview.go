// Package preview compares rendered package documents with the files already
// on disk, so a build can show what it would change before writing.
package preview

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// LineKind classifies a diff line.
type LineKind int

const (
	Same LineKind = iota
	Added
	Removed
)

// Line is one line of a line-level diff.
type Line struct {
	Kind LineKind
	Text string
}

// FileDiff is the diff of one document.
type FileDiff struct {
	Name  string
	Lines []Line
}

// Changed reports whether the document differs from what is on disk.
func (d FileDiff) Changed() bool {
	for _, l := range d.Lines {
		if l.Kind != Same {
			return true
		}
	}
	return false
}

// Prefix returns the unified-diff marker for k.
func (k LineKind) Prefix() string {
	switch k {
	case Added:
		return "+"
	case Removed:
		return "-"
	}
	return " "
}

// String returns the line with its unified-diff marker.
func (l Line) String() string {
	return l.Kind.Prefix() + l.Text
}

// Header returns the "---"/"+++" file header lines.
func (d FileDiff) Header() string {
	return "--- " + d.Name + "\n+++ " + d.Name + "\n"
}

// Unified renders the header followed by every line.
func (d FileDiff) Unified() string {
	var b strings.Builder
	b.WriteString(d.Header())
	for _, l := range d.Lines {
		b.WriteString(l.String())
		b.WriteString("\n")
	}
	return b.String()
}

// Diff computes a line-level diff from old to new.
func Diff(name, old, new string) FileDiff {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	out := FileDiff{Name: name}
	for _, d := range diffs {
		kind := Same
		switch d.Type {
		case diffpatch.DiffInsert:
			kind = Added
		case diffpatch.DiffDelete:
			kind = Removed
		}
		for _, text := range splitLines(d.Text) {
			out.Lines = append(out.Lines, Line{Kind: kind, Text: text})
		}
	}
	return out
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
