package validator

import (
	"libscribe-hq/libscribe/pkg/iec/ast"
	"libscribe-hq/libscribe/pkg/iec/errors"
)

// ExternalFunc reports whether a name is declared outside the library, for
// example by a dependency library found in the catalog.
type ExternalFunc func(name string) bool

// Validator orchestrates the validation passes over a library.
// It runs structural and semantic validation in sequence.
type Validator struct {
	structural *StructuralValidator
	semantic   *SemanticValidator
}

// Option configures a Validator.
type Option func(*Validator)

// WithExternal makes names known to fn count as declared.
func WithExternal(fn ExternalFunc) Option {
	return func(v *Validator) {
		v.semantic.external = fn
	}
}

// NewValidator creates a new validator with all validation passes.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		structural: NewStructuralValidator(),
		semantic:   NewSemanticValidator(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs all validation passes and returns every finding. Semantic
// validation only runs when the structural pass found no errors, which
// prevents cascading findings.
func (v *Validator) Validate(lib *ast.Library) *errors.ErrorList {
	findings := errors.NewErrorList()

	findings.Merge(v.structural.Validate(lib))

	if !findings.HasFailures() {
		findings.Merge(v.semantic.Validate(lib))
	}

	return findings
}

// ValidateStructural runs only structural validation.
func (v *Validator) ValidateStructural(lib *ast.Library) *errors.ErrorList {
	return v.structural.Validate(lib)
}

// ValidateSemantic runs only semantic validation.
func (v *Validator) ValidateSemantic(lib *ast.Library) *errors.ErrorList {
	return v.semantic.Validate(lib)
}
