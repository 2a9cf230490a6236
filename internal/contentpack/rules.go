package contentpack

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cpkit/cpkit/internal/validation"
)

// Issue codes reported by the package validator.
const (
	CodeEmptyChanges   = "empty_changes"
	CodeUniqueIDFormat = "unique_id_format"
	CodeContentPackFor = "content_pack_for"
	CodeEditDataTarget = "edit_data_target"
	CodeReservedField  = "reserved_field"
	CodeSemver         = "semver"
	CodeUnknownAction  = "unknown_action"
	CodeUpdateKey      = "update_key"
)

// uniqueIDPattern is the "Namespace.ModName" convention.
var uniqueIDPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+\.[A-Za-z0-9_.-]+$`)

// updateKeyPattern matches "<Site>:<id>", e.g. "Nexus:1234" or "GitHub:user/repo".
var updateKeyPattern = regexp.MustCompile(`^[A-Za-z]+:\S+$`)

// reservedKeys are rendered from dedicated Patch fields.
var reservedKeys = []string{"Action", "Target", "When"}

// Rule is one compatibility check. A rule appends whatever it finds to r and
// never depends on other rules having run.
type Rule func(p *Package, r *validation.Result)

// DefaultRules is the rule set applied by Validate, in order.
var DefaultRules = []Rule{
	CheckUniqueIDFormat,
	CheckContentPackFor,
	CheckEditDataTarget,
	CheckReservedFieldKeys,
	CheckVersions,
	CheckKnownActions,
	CheckUpdateKeys,
}

// ValidUniqueID reports whether id follows the "Namespace.ModName" convention.
func ValidUniqueID(id string) bool {
	return uniqueIDPattern.MatchString(id)
}

// CheckUniqueIDFormat reports a non-blank UniqueID that does not follow the
// two-segment convention. Blank IDs are already reported as required.
func CheckUniqueIDFormat(p *Package, r *validation.Result) {
	id := p.Manifest.UniqueID
	if strings.TrimSpace(id) == "" || ValidUniqueID(id) {
		return
	}
	r.AddError(validation.Join(ManifestPath, "UniqueID"), CodeUniqueIDFormat,
		fmt.Sprintf("UniqueID %q must look like 'Author.ModName' (letters, digits, '_', '.', '-').", id))
}

// CheckContentPackFor requires the package to target the framework ID.
var CheckContentPackFor = CheckContentPackForAny(FrameworkID)

// CheckContentPackForAny builds a rule accepting any of the given framework
// IDs. Comparison is exact and case-sensitive.
func CheckContentPackForAny(ids ...string) Rule {
	allowed := slices.Clone(ids)
	return func(p *Package, r *validation.Result) {
		got := p.Manifest.ContentPackFor.UniqueID
		if slices.Contains(allowed, got) {
			return
		}
		r.AddError(validation.Join(ManifestPath, "ContentPackFor"), CodeContentPackFor,
			fmt.Sprintf("ContentPackFor.UniqueID must be %s, got %q.", strings.Join(quoteAll(allowed), " or "), got))
	}
}

// CheckEditDataTarget requires a target on every EditData patch.
func CheckEditDataTarget(p *Package, r *validation.Result) {
	for i, change := range p.Changes {
		if !strings.EqualFold(change.Action, ActionEditData) {
			continue
		}
		if strings.TrimSpace(change.Target) != "" {
			continue
		}
		r.AddError(validation.Join(PatchPath(i), "Target"), CodeEditDataTarget,
			"EditData requires a Target.")
	}
}

// CheckReservedFieldKeys rejects payload keys that collide with the keys
// rendered from Action, Target, and When.
func CheckReservedFieldKeys(p *Package, r *validation.Result) {
	for i, change := range p.Changes {
		for _, key := range sortedKeys(change.Fields) {
			for _, reserved := range reservedKeys {
				if strings.EqualFold(key, reserved) {
					r.AddError(validation.Join(PatchPath(i), "Fields."+key), CodeReservedField,
						fmt.Sprintf("Field %q collides with the %s property; set it on the change instead.", key, reserved))
				}
			}
		}
	}
}

// CheckVersions warns about version strings that are not semantic versions.
func CheckVersions(p *Package, r *validation.Result) {
	m := p.Manifest
	warnSemver(r, validation.Join(ManifestPath, "Version"), m.Version)
	warnSemver(r, validation.Join(ManifestPath, "MinimumApiVersion"), m.MinimumAPIVersion)
	if m.ContentPackFor.MinimumVersion != nil {
		warnSemver(r, validation.Join(ManifestPath, "ContentPackFor.MinimumVersion"), *m.ContentPackFor.MinimumVersion)
	}
}

// CheckKnownActions warns about actions the framework does not define.
func CheckKnownActions(p *Package, r *validation.Result) {
	for i, change := range p.Changes {
		if strings.TrimSpace(change.Action) == "" || IsKnownAction(change.Action) {
			continue
		}
		r.AddWarning(validation.Join(PatchPath(i), "Action"), CodeUnknownAction,
			fmt.Sprintf("Action %q is not one of %s.", change.Action, strings.Join(KnownActions, ", ")))
	}
}

// CheckUpdateKeys warns about update keys not written as "<Site>:<id>".
func CheckUpdateKeys(p *Package, r *validation.Result) {
	for i, key := range p.Manifest.UpdateKeys {
		if updateKeyPattern.MatchString(key) {
			continue
		}
		r.AddWarning(validation.Index(validation.Join(ManifestPath, "UpdateKeys"), i), CodeUpdateKey,
			fmt.Sprintf("Update key %q should look like 'Nexus:1234'.", key))
	}
}

// IsKnownAction reports whether action names a framework action, ignoring case.
func IsKnownAction(action string) bool {
	for _, known := range KnownActions {
		if strings.EqualFold(action, known) {
			return true
		}
	}
	return false
}

func warnSemver(r *validation.Result, path, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if _, err := semver.NewVersion(value); err != nil {
		r.AddWarning(path, CodeSemver, fmt.Sprintf("%q is not a semantic version: %v", value, err))
	}
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
