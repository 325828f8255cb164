package model

import (
	"time"

	"github.com/sheqworks/themis/pkg/domain/types"
)

// GapItem is the scored result for one applicable obligation. Items are
// recomputed on every scoring pass and never persisted independently of
// their parent summary.
type GapItem struct {
	ObligationID   types.ObligationID `json:"obligation_id"`
	LawID          types.LawID        `json:"law_id"`
	Category       types.Category     `json:"category"`
	Topic          string             `json:"topic"`
	GapLevel       types.GapLevel     `json:"gap_level"`
	RiskScore      int                `json:"risk_score"`
	Recommendation string             `json:"recommendation"`
}

// CategoryBreakdown holds the per-category slice of a gap summary
type CategoryBreakdown struct {
	Score  int `json:"score"`
	Red    int `json:"red"`
	Yellow int `json:"yellow"`
	Green  int `json:"green"`
}

// GapSummary aggregates all gap items of one assessment. A category absent
// from ByCategory was not assessed at all, which is distinct from a category
// present with zero issues.
type GapSummary struct {
	OverallScore int                                    `json:"overall_score"`
	RedCount     int                                    `json:"red_count"`
	YellowCount  int                                    `json:"yellow_count"`
	GreenCount   int                                    `json:"green_count"`
	ByCategory   map[types.Category]*CategoryBreakdown  `json:"by_category"`
	Items        []GapItem                              `json:"items"`
	Narrative    string                                 `json:"narrative,omitempty"`
	ComputedAt   time.Time                              `json:"computed_at"`
}

// Clone returns a deep copy of the summary
func (s *GapSummary) Clone() *GapSummary {
	if s == nil {
		return nil
	}
	copied := *s
	copied.Items = append([]GapItem(nil), s.Items...)
	copied.ByCategory = make(map[types.Category]*CategoryBreakdown, len(s.ByCategory))
	for cat, bd := range s.ByCategory {
		b := *bd
		copied.ByCategory[cat] = &b
	}
	return &copied
}
