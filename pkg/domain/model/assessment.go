package model

import (
	"time"

	"github.com/sheqworks/themis/pkg/domain/types"
)

// ComplianceRecord is one answer per obligation per assessment. Records may
// be overwritten until the assessment is finalized, never deleted.
type ComplianceRecord struct {
	ObligationID types.ObligationID     `json:"obligation_id"`
	Status       types.ComplianceStatus `json:"status"`
	Note         string                 `json:"note,omitempty"`
	AnsweredAt   time.Time              `json:"answered_at"`
}

// Assessment is the aggregate root of one assessment cycle: the submitted
// profile, its derived tags, the resolved applicable obligation scope, the
// collected answers and at most one current gap summary.
type Assessment struct {
	ID                    types.AssessmentID                            `json:"assessment_id"`
	CompanyID             types.CompanyID                               `json:"company_id"`
	OwnerUID              string                                        `json:"owner_uid"`
	Profile               *Profile                                      `json:"profile"`
	ActivityTags          []types.Tag                                   `json:"activity_tags"`
	ApplicableLaws        []types.LawID                                 `json:"applicable_laws"`
	ApplicableObligations []types.ObligationID                          `json:"applicable_obligations"`
	ComplianceRecords     map[types.ObligationID]*ComplianceRecord      `json:"compliance_records"`
	GapSummary            *GapSummary                                   `json:"gap_summary,omitempty"`
	Status                types.AssessmentStatus                        `json:"status"`
	CreatedAt             time.Time                                     `json:"created_at"`
	UpdatedAt             time.Time                                     `json:"updated_at"`
}

// Clone returns a deep copy of the assessment
func (a *Assessment) Clone() *Assessment {
	if a == nil {
		return nil
	}
	copied := *a
	copied.Profile = a.Profile.Clone()
	copied.ActivityTags = append([]types.Tag(nil), a.ActivityTags...)
	copied.ApplicableLaws = append([]types.LawID(nil), a.ApplicableLaws...)
	copied.ApplicableObligations = append([]types.ObligationID(nil), a.ApplicableObligations...)
	copied.ComplianceRecords = make(map[types.ObligationID]*ComplianceRecord, len(a.ComplianceRecords))
	for id, rec := range a.ComplianceRecords {
		r := *rec
		copied.ComplianceRecords[id] = &r
	}
	copied.GapSummary = a.GapSummary.Clone()
	return &copied
}

// Answer upserts the compliance record for one obligation. The write
// replaces any previous answer for the same obligation atomically.
func (a *Assessment) Answer(rec *ComplianceRecord) {
	if a.ComplianceRecords == nil {
		a.ComplianceRecords = make(map[types.ObligationID]*ComplianceRecord)
	}
	a.ComplianceRecords[rec.ObligationID] = rec
}
