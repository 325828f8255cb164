package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// AssessmentID identifies one assessment cycle of a company
type AssessmentID string

// NewAssessmentID generates a new time-ordered assessment ID
func NewAssessmentID() AssessmentID {
	return AssessmentID(uuid.Must(uuid.NewV7()).String())
}

// Validate checks if the AssessmentID is valid
func (id AssessmentID) Validate() error {
	if id == "" {
		return goerr.New("assessment ID cannot be empty")
	}
	return nil
}

// String returns the string representation of AssessmentID
func (id AssessmentID) String() string {
	return string(id)
}

// CompanyID identifies the company owning assessments
type CompanyID string

// String returns the string representation of CompanyID
func (id CompanyID) String() string {
	return string(id)
}

// LawID identifies a law in the legal knowledge base
type LawID string

// Validate checks if the LawID is valid
func (id LawID) Validate() error {
	if id == "" {
		return goerr.New("law ID cannot be empty")
	}
	return nil
}

// String returns the string representation of LawID
func (id LawID) String() string {
	return string(id)
}

// ObligationID identifies a single checkable duty under a law
type ObligationID string

// Validate checks if the ObligationID is valid
func (id ObligationID) Validate() error {
	if id == "" {
		return goerr.New("obligation ID cannot be empty")
	}
	return nil
}

// String returns the string representation of ObligationID
func (id ObligationID) String() string {
	return string(id)
}
