package types

import "fmt"

// ComplianceStatus represents a self-reported answer for one obligation
type ComplianceStatus string

const (
	ComplianceYes           ComplianceStatus = "yes"
	CompliancePartial       ComplianceStatus = "partial"
	ComplianceNo            ComplianceStatus = "no"
	ComplianceNotApplicable ComplianceStatus = "na"
)

// AllComplianceStatuses returns all valid compliance statuses
func AllComplianceStatuses() []ComplianceStatus {
	return []ComplianceStatus{
		ComplianceYes,
		CompliancePartial,
		ComplianceNo,
		ComplianceNotApplicable,
	}
}

// IsValid checks if the compliance status is valid
func (s ComplianceStatus) IsValid() bool {
	switch s {
	case ComplianceYes,
		CompliancePartial,
		ComplianceNo,
		ComplianceNotApplicable:
		return true
	default:
		return false
	}
}

// String returns the string representation of the compliance status
func (s ComplianceStatus) String() string {
	return string(s)
}

// ParseComplianceStatus parses a string into a ComplianceStatus
func ParseComplianceStatus(s string) (ComplianceStatus, error) {
	status := ComplianceStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid compliance status: %s", s)
	}
	return status, nil
}
