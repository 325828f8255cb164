package scoring_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/sheqworks/themis/pkg/domain/types"
	"github.com/sheqworks/themis/pkg/engine/scoring"
)

func TestGapLevel(t *testing.T) {
	cases := []struct {
		status types.ComplianceStatus
		weight types.RiskWeight
		want   types.GapLevel
	}{
		{types.ComplianceYes, types.RiskWeightLow, types.GapGreen},
		{types.ComplianceYes, types.RiskWeightHigh, types.GapGreen},
		{types.ComplianceNotApplicable, types.RiskWeightLow, types.GapGreen},
		{types.ComplianceNotApplicable, types.RiskWeightHigh, types.GapGreen},
		{types.CompliancePartial, types.RiskWeightLow, types.GapYellow},
		{types.CompliancePartial, types.RiskWeightMedium, types.GapYellow},
		{types.CompliancePartial, types.RiskWeightHigh, types.GapRed},
		{types.ComplianceNo, types.RiskWeightLow, types.GapYellow},
		{types.ComplianceNo, types.RiskWeightMedium, types.GapRed},
		{types.ComplianceNo, types.RiskWeightHigh, types.GapRed},
	}

	for _, tc := range cases {
		got := scoring.GapLevel(tc.status, tc.weight)
		gt.Value(t, got).Equal(tc.want)
	}
}

func TestRiskScore(t *testing.T) {
	t.Run("partial on high weight", func(t *testing.T) {
		// round(3 * 0.5 * 33.33) = 50
		gt.Number(t, scoring.RiskScore(types.CompliancePartial, types.RiskWeightHigh)).Equal(50)
	})

	t.Run("no on low weight", func(t *testing.T) {
		// round(1 * 1 * 33.33) = 33
		gt.Number(t, scoring.RiskScore(types.ComplianceNo, types.RiskWeightLow)).Equal(33)
	})

	t.Run("no on high weight caps near 100", func(t *testing.T) {
		gt.Number(t, scoring.RiskScore(types.ComplianceNo, types.RiskWeightHigh)).Equal(100)
	})

	t.Run("compliant answers carry no residual risk", func(t *testing.T) {
		gt.Number(t, scoring.RiskScore(types.ComplianceYes, types.RiskWeightHigh)).Equal(0)
		gt.Number(t, scoring.RiskScore(types.ComplianceNotApplicable, types.RiskWeightHigh)).Equal(0)
	})

	t.Run("unknown status treated as fully non-compliant", func(t *testing.T) {
		gt.Number(t, scoring.RiskScore(types.ComplianceStatus("bogus"), types.RiskWeightMedium)).Equal(67)
	})
}

func TestScore(t *testing.T) {
	level, score := scoring.Score(types.CompliancePartial, types.RiskWeightHigh)
	gt.Value(t, level).Equal(types.GapRed)
	gt.Number(t, score).Equal(50)

	level, score = scoring.Score(types.ComplianceNo, types.RiskWeightLow)
	gt.Value(t, level).Equal(types.GapYellow)
	gt.Number(t, score).Equal(33)
}
