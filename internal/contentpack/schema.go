package contentpack

import "github.com/cpkit/cpkit/internal/validation"

// Path roots used in issue paths.
const (
	ManifestPath = "Manifest"
	ChangesPath  = "Changes"
)

var contentPackForSchema = validation.Schema[*ContentPackFor]{
	{Name: "UniqueID", Required: true, Get: func(c *ContentPackFor) any { return c.UniqueID }},
	{Name: "MinimumVersion", Get: func(c *ContentPackFor) any { return c.MinimumVersion }},
}

var manifestSchema = validation.Schema[*Manifest]{
	{Name: "Name", Required: true, Get: func(m *Manifest) any { return m.Name }},
	{Name: "Author", Required: true, Get: func(m *Manifest) any { return m.Author }},
	{Name: "Version", Required: true, Get: func(m *Manifest) any { return m.Version }},
	{Name: "Description", Required: true, Get: func(m *Manifest) any { return m.Description }},
	{Name: "UniqueID", Required: true, Get: func(m *Manifest) any { return m.UniqueID }},
	{Name: "MinimumApiVersion", Required: true, Get: func(m *Manifest) any { return m.MinimumAPIVersion }},
	{Name: "UpdateKeys", Get: func(m *Manifest) any { return m.UpdateKeys }},
	{
		Name:   "ContentPackFor",
		Nested: validation.Embed(func(m *Manifest) *ContentPackFor { return &m.ContentPackFor }, contentPackForSchema),
	},
}

var patchSchema = validation.Schema[*Patch]{
	{Name: "Action", Required: true, Get: func(p *Patch) any { return p.Action }},
	{Name: "Target", Required: true, Get: func(p *Patch) any { return p.Target }},
	{Name: "Fields", Get: func(p *Patch) any { return p.Fields }},
	{Name: "When", Get: func(p *Patch) any { return p.When }},
}

// PatchPath returns the issue path prefix for the change at index i.
func PatchPath(i int) string {
	return validation.Index(ChangesPath, i)
}
