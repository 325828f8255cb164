package scoring

import (
	"math"
	"time"

	"github.com/sheqworks/themis/pkg/domain/model"
	"github.com/sheqworks/themis/pkg/domain/types"
)

func overallScore(items []model.GapItem) int {
	if len(items) == 0 {
		return 100
	}
	green := 0
	for _, item := range items {
		if item.GapLevel == types.GapGreen {
			green++
		}
	}
	return int(math.Round(float64(green) / float64(len(items)) * 100))
}

// Aggregate combines scored gap items into the assessment-level summary.
// The item list keeps its resolution order for stable presentation; the
// aggregate numbers are order-independent. Categories with no items are
// omitted from the breakdown: absent means not assessed, which is distinct
// from assessed with zero issues.
func Aggregate(items []model.GapItem, now time.Time) *model.GapSummary {
	summary := &model.GapSummary{
		OverallScore: overallScore(items),
		ByCategory:   make(map[types.Category]*model.CategoryBreakdown),
		Items:        append([]model.GapItem(nil), items...),
		ComputedAt:   now,
	}

	for _, item := range items {
		switch item.GapLevel {
		case types.GapRed:
			summary.RedCount++
		case types.GapYellow:
			summary.YellowCount++
		case types.GapGreen:
			summary.GreenCount++
		}
	}

	for _, cat := range types.AllCategories() {
		var catItems []model.GapItem
		for _, item := range items {
			if item.Category == cat {
				catItems = append(catItems, item)
			}
		}
		if len(catItems) == 0 {
			continue
		}

		bd := &model.CategoryBreakdown{Score: overallScore(catItems)}
		for _, item := range catItems {
			switch item.GapLevel {
			case types.GapRed:
				bd.Red++
			case types.GapYellow:
				bd.Yellow++
			case types.GapGreen:
				bd.Green++
			}
		}
		summary.ByCategory[cat] = bd
	}

	return summary
}
