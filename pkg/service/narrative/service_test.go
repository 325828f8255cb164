package narrative_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/sheqworks/themis/pkg/domain/model"
	"github.com/sheqworks/themis/pkg/domain/types"
	"github.com/sheqworks/themis/pkg/service/narrative"
)

func TestSummarizeFallback(t *testing.T) {
	ctx := context.Background()
	profile := &model.Profile{
		WorkplaceType:     types.WorkplaceFactory,
		EmployeeThreshold: types.Employee50to99,
	}
	items := []model.GapItem{
		{
			ObligationID: "obl-safety-officer",
			Category:     types.CategorySafety,
			Topic:        "เจ้าหน้าที่ความปลอดภัย",
			GapLevel:     types.GapRed,
			RiskScore:    100,
		},
	}

	t.Run("without LLM client", func(t *testing.T) {
		svc := narrative.New(nil)
		gt.Value(t, svc.Summarize(ctx, profile, items)).Equal(narrative.FallbackText)
	})

	t.Run("without critical findings", func(t *testing.T) {
		svc := narrative.New(nil)
		gt.Value(t, svc.Summarize(ctx, profile, nil)).Equal(narrative.FallbackText)
	})

	t.Run("nil service", func(t *testing.T) {
		var svc *narrative.Service
		gt.Value(t, svc.Summarize(ctx, profile, items)).Equal(narrative.FallbackText)
	})
}
