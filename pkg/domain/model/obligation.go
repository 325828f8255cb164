package model

import (
	"time"

	"github.com/sheqworks/themis/pkg/domain/types"
)

// ConditionClause is one typed applicability condition on an obligation.
// All clauses on an obligation must hold (conjunction) for it to apply.
type ConditionClause struct {
	Kind types.ClauseKind `json:"kind"`

	// MinEmployees is the head-count threshold for ClauseEmployeeMin.
	MinEmployees int `json:"min_employees,omitempty"`

	// MachineLevel is the required power bracket for ClauseMachineLevel.
	MachineLevel types.MachineLevel `json:"machine_level,omitempty"`
}

// Obligation is a single checkable duty under a law. Obligations are
// reference data, authored externally and read-only to the pipeline.
type Obligation struct {
	ID                    types.ObligationID `json:"obligation_id"`
	LawID                 types.LawID        `json:"law_id"`
	Category              types.Category     `json:"category"`
	RiskWeight            types.RiskWeight   `json:"risk_weight"`
	Conditions            []ConditionClause  `json:"conditions,omitempty"`
	RequiredEvidence      []string           `json:"required_evidence,omitempty"`
	Description           string             `json:"description"`
	SimplifiedDescription string             `json:"simplified_description,omitempty"`
	ChecklistQuestion     string             `json:"checklist_question"`
	GuidanceText          string             `json:"guidance_text,omitempty"`
	CreatedAt             time.Time          `json:"created_at"`
}

// Topic returns the short label used in gap reports
func (o *Obligation) Topic() string {
	if o.SimplifiedDescription != "" {
		return o.SimplifiedDescription
	}
	return o.ChecklistQuestion
}
