package interfaces

import (
	"context"

	"github.com/sheqworks/themis/pkg/domain/model"
)

// NarrativeService generates the advisory prose attached to a gap summary.
// The narrative is supplementary: implementations must degrade to a static
// fallback on failure and must never affect the numeric gap analysis.
type NarrativeService interface {
	Summarize(ctx context.Context, profile *model.Profile, criticalItems []model.GapItem) string
}
