package scoring

import (
	"math"

	"github.com/sheqworks/themis/pkg/domain/model"
	"github.com/sheqworks/themis/pkg/domain/types"
)

// Progress summarizes the answered checklist of an assessment for display
// while the user is still working through it. Unlike the gap analysis it
// only counts what has been answered so far.
type Progress struct {
	TotalItems      int `json:"total_items"`
	Compliant       int `json:"compliant"`
	Partial         int `json:"partial"`
	NonCompliant    int `json:"non_compliant"`
	NotApplicable   int `json:"not_applicable"`
	ScorePercentage int `json:"score_percentage"`
}

// ComputeProgress scores answered records: yes counts 1, partial 0.5, and
// not-applicable answers are excluded from the denominator. With nothing
// scoreable the percentage is 100; with no records at all the result is the
// zero value.
func ComputeProgress(records map[types.ObligationID]*model.ComplianceRecord) Progress {
	var p Progress
	p.TotalItems = len(records)
	if p.TotalItems == 0 {
		return p
	}

	for _, rec := range records {
		switch rec.Status {
		case types.ComplianceYes:
			p.Compliant++
		case types.CompliancePartial:
			p.Partial++
		case types.ComplianceNo:
			p.NonCompliant++
		case types.ComplianceNotApplicable:
			p.NotApplicable++
		}
	}

	scoreable := p.TotalItems - p.NotApplicable
	if scoreable > 0 {
		p.ScorePercentage = int(math.Round((float64(p.Compliant) + float64(p.Partial)*0.5) / float64(scoreable) * 100))
	} else {
		p.ScorePercentage = 100
	}

	return p
}

// ComputeProgressByCategory groups records by obligation category and scores
// each group. Obligations missing from the index are skipped.
func ComputeProgressByCategory(records map[types.ObligationID]*model.ComplianceRecord, obligations map[types.ObligationID]*model.Obligation) map[types.Category]Progress {
	grouped := make(map[types.Category]map[types.ObligationID]*model.ComplianceRecord)
	for id, rec := range records {
		obl, ok := obligations[id]
		if !ok {
			continue
		}
		if grouped[obl.Category] == nil {
			grouped[obl.Category] = make(map[types.ObligationID]*model.ComplianceRecord)
		}
		grouped[obl.Category][id] = rec
	}

	result := make(map[types.Category]Progress, len(grouped))
	for cat, recs := range grouped {
		result[cat] = ComputeProgress(recs)
	}
	return result
}
