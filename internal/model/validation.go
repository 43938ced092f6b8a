package model

import "fmt"

// FindingKind classifies what produced a validation finding.
type FindingKind string

const (
	KindConfiguration FindingKind = "configuration" // Inconsistent or out-of-range input
	KindDegenerate    FindingKind = "degenerate"    // Zero divisor or non-finite arithmetic
)

// Finding is a single validation message tied to the input field a user
// would change to resolve it.
type Finding struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Kind    FindingKind `json:"kind"`
}

// ValidationReport holds blocking errors and advisory warnings in the order
// the rules ran.
type ValidationReport struct {
	Valid    bool      `json:"valid"`
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
	Summary  string    `json:"summary"`
}

// NewValidationReport creates an empty valid report.
func NewValidationReport() ValidationReport {
	r := ValidationReport{
		Valid:    true,
		Errors:   []Finding{},
		Warnings: []Finding{},
	}
	r.updateSummary()
	return r
}

// AddError appends a blocking finding and marks the report invalid.
func (r *ValidationReport) AddError(f Finding) {
	if f.Kind == "" {
		f.Kind = KindConfiguration
	}
	r.Errors = append(r.Errors, f)
	r.Valid = false
	r.updateSummary()
}

// AddWarning appends an advisory finding.
func (r *ValidationReport) AddWarning(f Finding) {
	if f.Kind == "" {
		f.Kind = KindConfiguration
	}
	r.Warnings = append(r.Warnings, f)
	r.updateSummary()
}

// HasDegenerate reports whether any error came from degenerate arithmetic.
func (r ValidationReport) HasDegenerate() bool {
	for _, e := range r.Errors {
		if e.Kind == KindDegenerate {
			return true
		}
	}
	return false
}

func (r *ValidationReport) updateSummary() {
	r.Summary = fmt.Sprintf("%d errors, %d warnings", len(r.Errors), len(r.Warnings))
}
