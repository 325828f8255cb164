package types

import "fmt"

// AssessmentStatus represents the lifecycle stage of an assessment
type AssessmentStatus string

const (
	StatusProfiling   AssessmentStatus = "profiling"
	StatusMapping     AssessmentStatus = "mapping"
	StatusChecklist   AssessmentStatus = "checklist"
	StatusGapAnalysis AssessmentStatus = "gap_analysis"
	StatusCompleted   AssessmentStatus = "completed"
)

// AllAssessmentStatuses returns all valid assessment statuses
func AllAssessmentStatuses() []AssessmentStatus {
	return []AssessmentStatus{
		StatusProfiling,
		StatusMapping,
		StatusChecklist,
		StatusGapAnalysis,
		StatusCompleted,
	}
}

// IsValid checks if the assessment status is valid
func (s AssessmentStatus) IsValid() bool {
	switch s {
	case StatusProfiling,
		StatusMapping,
		StatusChecklist,
		StatusGapAnalysis,
		StatusCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status permits no further lifecycle
// transitions. A completed assessment is never reopened; a new cycle is a
// new assessment.
func (s AssessmentStatus) IsTerminal() bool {
	return s == StatusCompleted
}

// String returns the string representation of the assessment status
func (s AssessmentStatus) String() string {
	return string(s)
}

// ParseAssessmentStatus parses a string into an AssessmentStatus
func ParseAssessmentStatus(s string) (AssessmentStatus, error) {
	status := AssessmentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid assessment status: %s", s)
	}
	return status, nil
}
