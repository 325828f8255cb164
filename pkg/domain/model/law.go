package model

import (
	"time"

	"github.com/sheqworks/themis/pkg/domain/types"
)

// Law is one regulation in the legal knowledge base. Laws are reference
// data, authored externally and read-only to the pipeline.
type Law struct {
	ID             types.LawID    `json:"law_id"`
	Name           string         `json:"law_name"`
	Category       types.Category `json:"category"`
	Ministry       string         `json:"ministry"`
	EffectiveDate  string         `json:"effective_date"`
	SourceURL      string         `json:"source_url"`
	Summary        string         `json:"summary"`
	ApplicableTags []types.Tag    `json:"applicable_tags"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// MatchesAnyTag reports whether the law declares at least one of the given tags
func (l *Law) MatchesAnyTag(tags []types.Tag) bool {
	declared := make(map[types.Tag]struct{}, len(l.ApplicableTags))
	for _, t := range l.ApplicableTags {
		declared[t] = struct{}{}
	}
	for _, t := range tags {
		if _, ok := declared[t]; ok {
			return true
		}
	}
	return false
}
