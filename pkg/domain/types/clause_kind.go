package types

// ClauseKind discriminates the structured applicability-condition clauses
// attached to obligations. Conditions used to be matched by substring against
// free text; the typed variant removes that class of phrasing-drift bugs.
type ClauseKind string

const (
	// ClauseEmployeeMin requires the profile's employee-bracket midpoint to
	// meet a minimum head count.
	ClauseEmployeeMin ClauseKind = "employee_min"
	// ClauseHasContractor requires the company to use contractors.
	ClauseHasContractor ClauseKind = "has_contractor"
	// ClauseMachineLevel requires an exact machinery power bracket.
	ClauseMachineLevel ClauseKind = "machine_level"
)

// IsKnown reports whether the clause kind is part of the evaluator's
// vocabulary. Unknown kinds are treated as non-restrictive, not as rejections.
func (k ClauseKind) IsKnown() bool {
	switch k {
	case ClauseEmployeeMin, ClauseHasContractor, ClauseMachineLevel:
		return true
	default:
		return false
	}
}

// String returns the string representation of the clause kind
func (k ClauseKind) String() string {
	return string(k)
}
