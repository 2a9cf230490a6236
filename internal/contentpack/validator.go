package contentpack

import (
	"slices"

	"github.com/cpkit/cpkit/internal/validation"
)

// Validator runs the structural checks and an ordered list of rules.
type Validator struct {
	rules []Rule
}

// NewValidator returns a validator applying rules in the given order after
// the structural checks.
func NewValidator(rules ...Rule) *Validator {
	return &Validator{rules: slices.Clone(rules)}
}

// DefaultValidator returns a validator with DefaultRules.
func DefaultValidator() *Validator {
	return NewValidator(DefaultRules...)
}

// Validate checks p with the default rule set.
func Validate(p *Package) *validation.Result {
	return DefaultValidator().Validate(p)
}

// Validate runs every check against p and returns a fresh result. All
// checks run even after earlier ones fail.
func (v *Validator) Validate(p *Package) *validation.Result {
	result := validation.NewResult()
	if p == nil {
		result.AddError("", validation.CodeRequired, "Package is required.")
		return result
	}

	result.Merge(manifestSchema.Validate(&p.Manifest, ManifestPath))
	for i := range p.Changes {
		result.Merge(patchSchema.Validate(&p.Changes[i], PatchPath(i)))
	}
	if len(p.Changes) == 0 {
		result.AddError(ChangesPath, CodeEmptyChanges, "A package needs at least one change.")
	}

	for _, rule := range v.rules {
		rule(p, result)
	}
	return result
}
